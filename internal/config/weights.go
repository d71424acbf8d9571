package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marketlab/optioncore/models"
)

// StrategyWeights defines the factor weight allocation for one
// strategy's composite score. Weights must sum to 1.
type StrategyWeights struct {
	Trend       float64 `yaml:"trend"`
	Probability float64 `yaml:"probability"`
	Safety      float64 `yaml:"safety"`
	Liquidity   float64 `yaml:"liquidity"`
	VRP         float64 `yaml:"vrp"`
}

// WeightsConfig maps each strategy to its weight profile.
type WeightsConfig struct {
	Strategies map[models.Strategy]StrategyWeights `yaml:"strategies"`
	// Tolerance for the weight-sum check. Zero means the default 0.001.
	SumTolerance float64 `yaml:"sum_tolerance"`
}

// DefaultWeights returns the compiled-in profiles. Income strategies
// lean on safety margin and liquidity; directional strategies lean on
// trend alignment and probability.
func DefaultWeights() *WeightsConfig {
	income := StrategyWeights{Trend: 0.15, Probability: 0.25, Safety: 0.30, Liquidity: 0.20, VRP: 0.10}
	directional := StrategyWeights{Trend: 0.35, Probability: 0.30, Safety: 0.10, Liquidity: 0.10, VRP: 0.15}
	return &WeightsConfig{
		Strategies: map[models.Strategy]StrategyWeights{
			models.StrategySellPut:  income,
			models.StrategySellCall: income,
			models.StrategyBuyCall:  directional,
			models.StrategyBuyPut:   directional,
		},
		SumTolerance: 0.001,
	}
}

// LoadWeights reads strategy weight profiles from a YAML file, falling
// back to defaults for any strategy the file omits.
func LoadWeights(path string) (*WeightsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights file %s: %w", path, err)
	}

	cfg := DefaultWeights()
	var loaded WeightsConfig
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing weights file %s: %w", path, err)
	}
	if loaded.SumTolerance > 0 {
		cfg.SumTolerance = loaded.SumTolerance
	}
	for strategy, w := range loaded.Strategies {
		cfg.Strategies[strategy] = w
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every profile: known strategy, non-negative weights,
// sum within tolerance of 1.
func (wc *WeightsConfig) Validate() error {
	tolerance := wc.SumTolerance
	if tolerance == 0 {
		tolerance = 0.001
	}
	for strategy, w := range wc.Strategies {
		if !strategy.Valid() {
			return fmt.Errorf("unknown strategy %q in weight profiles", strategy)
		}
		for name, v := range map[string]float64{
			"trend": w.Trend, "probability": w.Probability,
			"safety": w.Safety, "liquidity": w.Liquidity, "vrp": w.VRP,
		} {
			if v < 0 {
				return fmt.Errorf("strategy %s: negative %s weight %.3f", strategy, name, v)
			}
		}
		sum := w.Trend + w.Probability + w.Safety + w.Liquidity + w.VRP
		if math.Abs(sum-1.0) > tolerance {
			return fmt.Errorf("strategy %s: weights sum to %.4f, want 1.0", strategy, sum)
		}
	}
	return nil
}

// For returns the profile for a strategy, falling back to the default
// profile of its side when the map lacks an entry.
func (wc *WeightsConfig) For(strategy models.Strategy) StrategyWeights {
	if w, ok := wc.Strategies[strategy]; ok {
		return w
	}
	return DefaultWeights().Strategies[strategy]
}
