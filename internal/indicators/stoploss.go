package indicators

import (
	"fmt"

	"github.com/marketlab/optioncore/models"
)

// Stop-loss method tags: which of the two bounds produced the final stop.
const (
	StopMethodATR        = "atr"
	StopMethodMinimumPct = "minimum_percentage"
)

// StopLossOptions tunes the ATR stop-loss calculation.
type StopLossOptions struct {
	ATRMultiplier  float64  // stop distance in ATR multiples
	MinStopLossPct float64  // floor: stop never below buyPrice*(1-pct)
	Beta           *float64 // optional market beta for multiplier scaling
	HighBeta       float64  // beta above this widens the multiplier x1.2
	LowBeta        float64  // beta below this tightens it x0.8
}

// DefaultStopLossOptions mirrors the engine defaults: 2.5 ATR, 15% floor.
func DefaultStopLossOptions() StopLossOptions {
	return StopLossOptions{ATRMultiplier: 2.5, MinStopLossPct: 0.15, HighBeta: 1.5, LowBeta: 0.8}
}

// StopLossResult carries the chosen stop price and which bound won.
type StopLossResult struct {
	StopLoss        float64 `json:"stop_loss"`
	StopLossPercent float64 `json:"stop_loss_percent"` // loss at the stop, % of buy price
	Method          string  `json:"method"`
	Multiplier      float64 `json:"atr_multiplier"` // after beta scaling
}

// ATRStopLoss computes a stop price from ATR distance with a percentage
// floor: the stop is never looser than the ATR estimate and never
// tighter than the floor. High-beta names get a wider ATR distance,
// low-beta names a tighter one.
func ATRStopLoss(buyPrice, atr float64, opts StopLossOptions) (*StopLossResult, error) {
	if buyPrice <= 0 {
		return nil, fmt.Errorf("%w: buy price must be positive, got %.4f", models.ErrInvalidInput, buyPrice)
	}
	if atr <= 0 {
		return nil, fmt.Errorf("%w: ATR must be positive, got %.4f", models.ErrInvalidInput, atr)
	}

	multiplier := opts.ATRMultiplier
	if opts.Beta != nil {
		if *opts.Beta > opts.HighBeta {
			multiplier *= 1.2
		} else if *opts.Beta < opts.LowBeta {
			multiplier *= 0.8
		}
	}

	atrStop := buyPrice - atr*multiplier
	floorStop := buyPrice * (1 - opts.MinStopLossPct)

	// Pick the higher stop price: never risk more than the floor allows.
	stop := atrStop
	method := StopMethodATR
	if floorStop > atrStop {
		stop = floorStop
		method = StopMethodMinimumPct
	}

	return &StopLossResult{
		StopLoss:        stop,
		StopLossPercent: 100 * (buyPrice - stop) / buyPrice,
		Method:          method,
		Multiplier:      multiplier,
	}, nil
}
