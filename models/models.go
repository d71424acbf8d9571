package models

import (
	"fmt"
	"time"
)

// Strategy identifies one of the four supported option strategies.
type Strategy string

const (
	StrategySellPut  Strategy = "sell_put"
	StrategySellCall Strategy = "sell_call"
	StrategyBuyCall  Strategy = "buy_call"
	StrategyBuyPut   Strategy = "buy_put"
)

// AllStrategies lists every supported strategy in scoring order.
var AllStrategies = []Strategy{StrategySellPut, StrategySellCall, StrategyBuyCall, StrategyBuyPut}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategySellPut, StrategySellCall, StrategyBuyCall, StrategyBuyPut:
		return true
	}
	return false
}

// Credit reports whether the strategy collects premium (income side).
func (s Strategy) Credit() bool {
	return s == StrategySellPut || s == StrategySellCall
}

// Bullish reports whether the strategy profits from rising prices.
func (s Strategy) Bullish() bool {
	return s == StrategySellPut || s == StrategyBuyCall
}

// Recommendation classifies a VRP reading.
type Recommendation string

const (
	RecommendBuy     Recommendation = "buy"
	RecommendSell    Recommendation = "sell"
	RecommendNeutral Recommendation = "neutral"
)

// RiskLevel is an ordered risk classification.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskExtreme
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskModerate:
		return "MODERATE"
	case RiskHigh:
		return "HIGH"
	case RiskExtreme:
		return "EXTREME"
	}
	return "UNKNOWN"
}

// MarshalJSON renders the level as its name so outer layers see the
// same labels the risk ladder documents.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// Candle represents a single daily price bar.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume,omitempty"`
}

// ValidateSeries checks the price-series invariants: non-empty,
// strictly increasing dates, all prices positive.
func ValidateSeries(candles []Candle) error {
	if len(candles) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInvalidInput)
	}
	for i, c := range candles {
		if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
			return fmt.Errorf("%w: non-positive price at bar %d", ErrInvalidInput, i)
		}
		if i > 0 && !candles[i-1].Date.Before(c.Date) {
			return fmt.Errorf("%w: dates not strictly increasing at bar %d", ErrInvalidInput, i)
		}
	}
	return nil
}

// Closes extracts the close series, oldest first.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// OptionQuote is a single option contract quote with optional Greeks.
type OptionQuote struct {
	Strike       float64  `json:"strike"`
	Bid          float64  `json:"bid"`
	Ask          float64  `json:"ask"`
	Last         float64  `json:"last"`
	Volume       int64    `json:"volume"`
	OpenInterest int64    `json:"open_interest"`
	ImpliedVol   float64  `json:"implied_volatility"`
	Delta        *float64 `json:"delta,omitempty"`
	Gamma        *float64 `json:"gamma,omitempty"`
	Theta        *float64 `json:"theta,omitempty"`
	Vega         *float64 `json:"vega,omitempty"`
	InTheMoney   bool     `json:"in_the_money"`
}

// Validate checks the quote invariant: bid must not exceed ask when
// both sides are quoted.
func (q *OptionQuote) Validate() error {
	if q.Bid > 0 && q.Ask > 0 && q.Bid > q.Ask {
		return fmt.Errorf("%w: bid %.2f above ask %.2f", ErrInvalidInput, q.Bid, q.Ask)
	}
	return nil
}

// VolatilityEstimate holds a realized-volatility reading.
type VolatilityEstimate struct {
	Daily      float64 `json:"daily_volatility"`
	Annualized float64 `json:"annualized_volatility"`
	Method     string  `json:"method,omitempty"`
	IVRank     float64 `json:"iv_rank"`
}

// VRPResult is the outcome of one volatility-risk-premium evaluation.
type VRPResult struct {
	VRP            float64            `json:"vrp"`
	Recommendation Recommendation     `json:"recommendation"`
	Estimate       VolatilityEstimate `json:"estimate"`
}

// PayoffEstimate carries the caller's strategy-model payoff inputs.
type PayoffEstimate struct {
	WinProbability float64 `json:"win_probability"`
	AvgProfit      float64 `json:"avg_profit"`
	AvgLoss        float64 `json:"avg_loss"`
	MaxLoss        float64 `json:"max_loss"`
}

// RiskAnalysis is the Risk Adjuster output.
type RiskAnalysis struct {
	ExpectedValue          float64   `json:"expected_value"`
	RiskAdjustedExpectancy float64   `json:"risk_adjusted_expectancy"`
	Level                  RiskLevel `json:"risk_level"`
	TailRiskWarning        string    `json:"tail_risk_warning,omitempty"`
}

// ScoreComponents are the per-factor sub-scores behind a composite.
type ScoreComponents struct {
	Trend       float64 `json:"trend_alignment"`
	Probability float64 `json:"probability"`
	Safety      float64 `json:"safety_margin"`
	Liquidity   float64 `json:"liquidity"`
	VRP         float64 `json:"vrp_alignment"`
}

// RiskReturnProfile pairs the composite score with the risk metrics.
type RiskReturnProfile struct {
	Score                  float64   `json:"score"`
	RiskAdjustedExpectancy float64   `json:"risk_adjusted_expectancy"`
	Level                  RiskLevel `json:"risk_level"`
}

// StrategyScore is the composite result for one strategy.
type StrategyScore struct {
	Envelope
	Strategy       Strategy           `json:"strategy"`
	Score          float64            `json:"score"`
	Components     ScoreComponents    `json:"components"`
	Recommendation string             `json:"recommendation"`
	RiskReturn     *RiskReturnProfile `json:"risk_return,omitempty"`
}

// AnalysisRequest is the full input bundle for one scoring run.
// All data is supplied by the caller; the engine fetches nothing.
type AnalysisRequest struct {
	Symbol     string          `json:"symbol"`
	Candles    []Candle        `json:"candles"`
	Option     *OptionQuote    `json:"option,omitempty"`
	ImpliedVol float64         `json:"implied_volatility"`
	IVHistory  []float64       `json:"iv_history,omitempty"`
	Payoff     *PayoffEstimate `json:"payoff,omitempty"`
	Beta       *float64        `json:"beta,omitempty"`
	Strategies []Strategy      `json:"strategies,omitempty"`
}
