package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/optioncore/models"
)

func TestDefaultWeightsValidate(t *testing.T) {
	wc := DefaultWeights()
	require.NoError(t, wc.Validate())
	require.Len(t, wc.Strategies, 4)

	// Income profiles lean on safety and liquidity, directional ones on
	// trend and probability.
	income := wc.For(models.StrategySellPut)
	directional := wc.For(models.StrategyBuyCall)
	assert.Greater(t, income.Safety+income.Liquidity, directional.Safety+directional.Liquidity)
	assert.Greater(t, directional.Trend+directional.Probability, income.Trend+income.Probability)
}

func TestLoadWeightsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	content := `
strategies:
  sell_put:
    trend: 0.10
    probability: 0.20
    safety: 0.40
    liquidity: 0.20
    vrp: 0.10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	wc, err := LoadWeights(path)
	require.NoError(t, err)

	// Overridden profile applies; untouched strategies keep defaults.
	assert.InDelta(t, 0.40, wc.For(models.StrategySellPut).Safety, 1e-9)
	assert.InDelta(t, 0.30, wc.For(models.StrategySellCall).Safety, 1e-9)
}

func TestLoadWeightsRejectsBadSum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	content := `
strategies:
  buy_call:
    trend: 0.50
    probability: 0.50
    safety: 0.50
    liquidity: 0.00
    vrp: 0.00
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadWeights(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum")
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	wc := DefaultWeights()
	wc.Strategies[models.Strategy("straddle")] = StrategyWeights{Trend: 1}
	assert.Error(t, wc.Validate())
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	wc := DefaultWeights()
	wc.Strategies[models.StrategyBuyPut] = StrategyWeights{Trend: 1.2, Probability: -0.2}
	assert.Error(t, wc.Validate())
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 14, cfg.ATRPeriod)
	assert.Equal(t, []int{5, 20, 50, 200}, cfg.MAPeriods)
	assert.InDelta(t, 0.02, cfg.VRPNeutralBand, 1e-9)
	assert.Equal(t, "le-stable", cfg.IVRankTiePolicy)
	assert.Equal(t, "ewma", cfg.ForecastMethod)
}
