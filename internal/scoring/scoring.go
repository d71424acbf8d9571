package scoring

import (
	"fmt"

	"github.com/marketlab/optioncore/internal/config"
	"github.com/marketlab/optioncore/internal/indicators"
	"github.com/marketlab/optioncore/internal/risk"
	"github.com/marketlab/optioncore/models"
)

// Inputs bundles everything one strategy's composite needs. All fields
// are required; a missing input fails the strategy instead of scoring
// a silent zero.
type Inputs struct {
	CurrentPrice   float64
	ATR            float64
	MovingAverages []indicators.MovingAverage
	Quote          *models.OptionQuote
	VRP            *models.VRPResult
	Payoff         *models.PayoffEstimate
	SafetyRatio    float64 // required buffer in ATR multiples
	RiskThresholds risk.Thresholds
}

// recommendation ladder over the composite score, first match wins.
var recommendationLadder = []struct {
	min  float64
	text string
}{
	{80, "strong setup"},
	{65, "favorable"},
	{45, "neutral"},
	{30, "weak"},
	{0, "avoid"},
}

func recommendationFor(score float64) string {
	for _, rung := range recommendationLadder {
		if score >= rung.min {
			return rung.text
		}
	}
	return "avoid"
}

// ScoreStrategy computes the weighted composite for one strategy.
func ScoreStrategy(strategy models.Strategy, in Inputs, weights config.StrategyWeights) (*models.StrategyScore, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidInput, strategy)
	}
	if in.Quote == nil {
		return nil, fmt.Errorf("%w: %s requires an option quote", models.ErrInvalidInput, strategy)
	}
	if err := in.Quote.Validate(); err != nil {
		return nil, err
	}
	if in.VRP == nil {
		return nil, fmt.Errorf("%w: %s requires a VRP evaluation", models.ErrInvalidInput, strategy)
	}
	if in.Payoff == nil {
		return nil, fmt.Errorf("%w: %s requires payoff estimates", models.ErrInvalidInput, strategy)
	}

	trend, err := TrendAlignment(in.MovingAverages, strategy)
	if err != nil {
		return nil, err
	}

	probability, err := ProbabilityOfProfit(strategy, in.Quote, in.CurrentPrice, in.ATR)
	if err != nil {
		return nil, err
	}

	safety, err := indicators.ATRSafetyMargin(in.CurrentPrice, in.Quote.Strike, in.ATR, in.SafetyRatio)
	if err != nil {
		return nil, err
	}

	liquidity, err := indicators.LiquidityScore(in.Quote.Volume, in.Quote.OpenInterest, in.Quote.Bid, in.Quote.Ask)
	if err != nil {
		return nil, err
	}

	vrpScore := VRPAlignment(in.VRP.Recommendation, strategy)

	components := models.ScoreComponents{
		Trend:       trend,
		Probability: probability,
		Safety:      safety.Score,
		Liquidity:   liquidity.Score,
		VRP:         vrpScore,
	}

	composite := weights.Trend*trend +
		weights.Probability*probability +
		weights.Safety*safety.Score +
		weights.Liquidity*liquidity.Score +
		weights.VRP*vrpScore

	riskAnalysis, err := risk.Analyze(*in.Payoff, in.RiskThresholds)
	if err != nil {
		return nil, err
	}

	return &models.StrategyScore{
		Envelope:       models.OK(),
		Strategy:       strategy,
		Score:          composite,
		Components:     components,
		Recommendation: recommendationFor(composite),
		RiskReturn: &models.RiskReturnProfile{
			Score:                  composite,
			RiskAdjustedExpectancy: riskAnalysis.RiskAdjustedExpectancy,
			Level:                  riskAnalysis.Level,
		},
	}, nil
}

// ScoreAll scores every requested strategy independently. One
// strategy's failure is folded into its envelope so the batch keeps
// going; the returned slice always has one entry per strategy.
func ScoreAll(strategies []models.Strategy, in Inputs, weights *config.WeightsConfig) []models.StrategyScore {
	if len(strategies) == 0 {
		strategies = models.AllStrategies
	}

	out := make([]models.StrategyScore, 0, len(strategies))
	for _, strategy := range strategies {
		score, err := ScoreStrategy(strategy, in, weights.For(strategy))
		if err != nil {
			out = append(out, models.StrategyScore{
				Envelope: models.Failure(err),
				Strategy: strategy,
			})
			continue
		}
		out = append(out, *score)
	}
	return out
}
