package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/optioncore/models"
)

func TestExpectedValue(t *testing.T) {
	// 0.8*100 - 0.2*500 = -20: high win rate, negative expectancy.
	ev, err := ExpectedValue(0.8, 100, 500)
	require.NoError(t, err)
	assert.InDelta(t, -20.0, ev, 1e-9)

	ev, err = ExpectedValue(0.5, 200, 100)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, ev, 1e-9)
}

func TestExpectedValueDomain(t *testing.T) {
	_, err := ExpectedValue(1.2, 100, 100)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ExpectedValue(-0.1, 100, 100)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ExpectedValue(0.5, -100, 100)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRiskAdjustedExpectancy(t *testing.T) {
	rae, err := RiskAdjustedExpectancy(100, 5000)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, rae, 1e-9)

	_, err = RiskAdjustedExpectancy(100, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAnalyzeRiskLadder(t *testing.T) {
	tests := []struct {
		name        string
		payoff      models.PayoffEstimate
		wantLevel   models.RiskLevel
		wantWarning bool
	}{
		{
			name:      "comfortable income position",
			payoff:    models.PayoffEstimate{WinProbability: 0.7, AvgProfit: 100, AvgLoss: 80, MaxLoss: 500},
			wantLevel: models.RiskLow, // tail 5, RAE 0.2
		},
		{
			name:      "moderate tail",
			payoff:    models.PayoffEstimate{WinProbability: 0.7, AvgProfit: 100, AvgLoss: 80, MaxLoss: 1500},
			wantLevel: models.RiskModerate, // tail 15
		},
		{
			name:        "high tail despite positive expectancy",
			payoff:      models.PayoffEstimate{WinProbability: 0.9, AvgProfit: 100, AvgLoss: 50, MaxLoss: 2500},
			wantLevel:   models.RiskHigh, // tail 25; EV = 85 > 0
			wantWarning: true,
		},
		{
			name:        "extreme tail",
			payoff:      models.PayoffEstimate{WinProbability: 0.95, AvgProfit: 100, AvgLoss: 50, MaxLoss: 6000},
			wantLevel:   models.RiskExtreme, // tail 60
			wantWarning: true,
		},
		{
			name:      "small tail stays low",
			payoff:    models.PayoffEstimate{WinProbability: 0.5, AvgProfit: 10, AvgLoss: 5, MaxLoss: 80},
			wantLevel: models.RiskLow, // tail 8, RAE 0.125
		},
	}

	thresholds := DefaultThresholds()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze(tt.payoff, thresholds)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel.String(), res.Level.String())
			if tt.wantWarning {
				assert.NotEmpty(t, res.TailRiskWarning)
			} else {
				assert.Empty(t, res.TailRiskWarning)
			}
		})
	}
}

// Positive expected value and a tail warning are deliberately
// independent: a rare large loss must surface even when EV looks good.
func TestAnalyzePositiveEVWithTailWarning(t *testing.T) {
	payoff := models.PayoffEstimate{WinProbability: 0.9, AvgProfit: 100, AvgLoss: 50, MaxLoss: 2500}

	res, err := Analyze(payoff, DefaultThresholds())
	require.NoError(t, err)
	assert.Greater(t, res.ExpectedValue, 0.0)
	assert.NotEmpty(t, res.TailRiskWarning)
	assert.GreaterOrEqual(t, int(res.Level), int(models.RiskHigh))
}

func TestAnalyzeZeroProfitIsExtreme(t *testing.T) {
	payoff := models.PayoffEstimate{WinProbability: 0.5, AvgProfit: 0, AvgLoss: 100, MaxLoss: 1000}

	res, err := Analyze(payoff, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, models.RiskExtreme, res.Level)
}

func TestAnalyzeInvalidPayoff(t *testing.T) {
	_, err := Analyze(models.PayoffEstimate{WinProbability: 0.5, AvgProfit: 100, AvgLoss: 50, MaxLoss: 0}, DefaultThresholds())
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
