package risk

import (
	"fmt"

	"github.com/marketlab/optioncore/models"
)

// Thresholds drive the risk-level ladder. Tail* compare the
// maxLoss/avgProfit ratio, RAE* compare risk-adjusted expectancy.
type Thresholds struct {
	RAEModerate  float64 // RAE below this is at least MODERATE
	RAEHigh      float64 // RAE below this is at least HIGH
	RAEExtreme   float64 // RAE below this is EXTREME
	TailModerate float64
	TailHigh     float64 // above this a tail-risk warning is attached
	TailExtreme  float64
}

// DefaultThresholds mirrors the engine defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RAEModerate:  0.05,
		RAEHigh:      0.02,
		RAEExtreme:   0.005,
		TailModerate: 10,
		TailHigh:     20,
		TailExtreme:  50,
	}
}

// ExpectedValue is the probability-weighted payoff:
// winProb*avgProfit - (1-winProb)*avgLoss.
func ExpectedValue(winProbability, avgProfit, avgLoss float64) (float64, error) {
	if winProbability < 0 || winProbability > 1 {
		return 0, fmt.Errorf("%w: win probability %.4f outside [0,1]", models.ErrInvalidInput, winProbability)
	}
	if avgProfit < 0 || avgLoss < 0 {
		return 0, fmt.Errorf("%w: profit and loss magnitudes must be non-negative", models.ErrInvalidInput)
	}
	return winProbability*avgProfit - (1-winProbability)*avgLoss, nil
}

// RiskAdjustedExpectancy is average profit per unit of maximum loss.
func RiskAdjustedExpectancy(avgProfit, maxLoss float64) (float64, error) {
	if maxLoss <= 0 {
		return 0, fmt.Errorf("%w: max loss must be positive, got %.4f", models.ErrInvalidInput, maxLoss)
	}
	if avgProfit < 0 {
		return 0, fmt.Errorf("%w: average profit must be non-negative", models.ErrInvalidInput)
	}
	return avgProfit / maxLoss, nil
}

// Analyze computes EV and RAE and classifies the position's risk.
// A rare large loss that dwarfs the typical profit gets a tail-risk
// warning even when expectancy is positive: positive EV does not mean
// safe to hold.
func Analyze(payoff models.PayoffEstimate, t Thresholds) (*models.RiskAnalysis, error) {
	ev, err := ExpectedValue(payoff.WinProbability, payoff.AvgProfit, payoff.AvgLoss)
	if err != nil {
		return nil, err
	}
	rae, err := RiskAdjustedExpectancy(payoff.AvgProfit, payoff.MaxLoss)
	if err != nil {
		return nil, err
	}

	// Tail ratio: how many typical profits one max loss wipes out.
	// Zero avgProfit means any loss is unrecoverable; treat as extreme.
	tailRatio := t.TailExtreme
	if payoff.AvgProfit > 0 {
		tailRatio = payoff.MaxLoss / payoff.AvgProfit
	}

	level := models.RiskLow
	switch {
	case tailRatio >= t.TailExtreme || rae < t.RAEExtreme:
		level = models.RiskExtreme
	case tailRatio >= t.TailHigh || rae < t.RAEHigh:
		level = models.RiskHigh
	case tailRatio >= t.TailModerate || rae < t.RAEModerate:
		level = models.RiskModerate
	}

	warning := ""
	if tailRatio >= t.TailHigh {
		warning = fmt.Sprintf("max loss is %.0fx the average profit; a single adverse move can erase %.0f winning trades", tailRatio, tailRatio)
	}

	return &models.RiskAnalysis{
		ExpectedValue:          ev,
		RiskAdjustedExpectancy: rae,
		Level:                  level,
		TailRiskWarning:        warning,
	}, nil
}
