package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every tunable engine parameter. All values have
// defaults; the environment only overrides.
type Config struct {
	// Indicator windows
	ATRPeriod        int   // bars for ATR
	RSIPeriod        int   // bars for RSI
	VolatilityPeriod int   // trailing window for realized volatility
	MAPeriods        []int // SMA windows for trend alignment

	// Stop-loss parameters
	ATRMultiplier  float64 // base ATR stop distance multiplier
	MinStopLossPct float64 // floor: stop never below price*(1-pct)
	HighBeta       float64 // beta above this widens the stop x1.2
	LowBeta        float64 // beta below this tightens the stop x0.8

	// Safety margin
	ATRSafetyRatio float64 // required buffer in ATR multiples

	// Volatility forecast
	ForecastMethod string  // "ewma" or "stddev"
	EWMALambda     float64 // RiskMetrics decay factor

	// VRP classification. Band is the half-width around zero inside
	// which VRP reads neutral: vrp > +band => sell, vrp < -band => buy.
	VRPNeutralBand float64
	// IV-rank tie policy. "le-stable": a value equal to the history
	// minimum ranks 0, equal to the maximum ranks 100 (strict-below
	// count over len-1). The only supported policy; recorded here so
	// the choice is explicit and testable.
	IVRankTiePolicy string

	// Risk classification thresholds
	RAEModerate   float64 // RAE below this is at least MODERATE
	RAEHigh       float64 // RAE below this is at least HIGH
	RAEExtreme    float64 // RAE below this is EXTREME
	TailModerate  float64 // maxLoss/avgProfit above this is at least MODERATE
	TailHigh      float64 // above this: at least HIGH, plus warning
	TailExtreme   float64 // above this: EXTREME
	MinHistoryVol int     // minimum bars for volatility/VRP work

	WeightsFile string // optional YAML strategy weight profiles
	LogLevel    string
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		ATRPeriod:        getEnvIntWithDefault("ATR_PERIOD", 14),
		RSIPeriod:        getEnvIntWithDefault("RSI_PERIOD", 14),
		VolatilityPeriod: getEnvIntWithDefault("VOLATILITY_PERIOD", 30),
		MAPeriods:        getEnvIntsWithDefault("MA_PERIODS", []int{5, 20, 50, 200}),
		ATRMultiplier:    getEnvFloatWithDefault("ATR_MULTIPLIER", 2.5),
		MinStopLossPct:   getEnvFloatWithDefault("MIN_STOP_LOSS_PCT", 0.15),
		HighBeta:         getEnvFloatWithDefault("HIGH_BETA", 1.5),
		LowBeta:          getEnvFloatWithDefault("LOW_BETA", 0.8),
		ATRSafetyRatio:   getEnvFloatWithDefault("ATR_SAFETY_RATIO", 2.0),
		ForecastMethod:   getEnvWithDefault("FORECAST_METHOD", "ewma"),
		EWMALambda:       getEnvFloatWithDefault("EWMA_LAMBDA", 0.94),
		VRPNeutralBand:   getEnvFloatWithDefault("VRP_NEUTRAL_BAND", 0.02),
		IVRankTiePolicy:  getEnvWithDefault("IV_RANK_TIE_POLICY", "le-stable"),
		RAEModerate:      getEnvFloatWithDefault("RAE_MODERATE", 0.05),
		RAEHigh:          getEnvFloatWithDefault("RAE_HIGH", 0.02),
		RAEExtreme:       getEnvFloatWithDefault("RAE_EXTREME", 0.005),
		TailModerate:     getEnvFloatWithDefault("TAIL_MODERATE", 10),
		TailHigh:         getEnvFloatWithDefault("TAIL_HIGH", 20),
		TailExtreme:      getEnvFloatWithDefault("TAIL_EXTREME", 50),
		MinHistoryVol:    getEnvIntWithDefault("MIN_HISTORY_VOL", 30),
		WeightsFile:      os.Getenv("WEIGHTS_FILE"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Default returns the built-in parameter set without touching the
// environment. Used by tests and library callers.
func Default() *Config {
	return &Config{
		ATRPeriod:        14,
		RSIPeriod:        14,
		VolatilityPeriod: 30,
		MAPeriods:        []int{5, 20, 50, 200},
		ATRMultiplier:    2.5,
		MinStopLossPct:   0.15,
		HighBeta:         1.5,
		LowBeta:          0.8,
		ATRSafetyRatio:   2.0,
		ForecastMethod:   "ewma",
		EWMALambda:       0.94,
		VRPNeutralBand:   0.02,
		IVRankTiePolicy:  "le-stable",
		RAEModerate:      0.05,
		RAEHigh:          0.02,
		RAEExtreme:       0.005,
		TailModerate:     10,
		TailHigh:         20,
		TailExtreme:      50,
		MinHistoryVol:    30,
		LogLevel:         "info",
	}
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvIntsWithDefault(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	return out
}
