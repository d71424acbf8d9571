package analyze

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/marketlab/optioncore/internal/config"
	"github.com/marketlab/optioncore/internal/indicators"
	"github.com/marketlab/optioncore/internal/risk"
	"github.com/marketlab/optioncore/internal/scoring"
	"github.com/marketlab/optioncore/internal/volatility"
	"github.com/marketlab/optioncore/models"
)

// IndicatorSnapshot is the flat technical-indicator block of a result.
type IndicatorSnapshot struct {
	ATR            float64                    `json:"atr"`
	ATRPercent     float64                    `json:"atr_percent"`
	RSI            float64                    `json:"rsi"`
	RSISignal      string                     `json:"rsi_signal"`
	MovingAverages []indicators.MovingAverage `json:"moving_averages"`
	DailyVol       float64                    `json:"daily_volatility"`
	AnnualizedVol  float64                    `json:"annualized_volatility"`
	StopLoss       *indicators.StopLossResult `json:"stop_loss,omitempty"`
}

// Result is the full analysis envelope for one request.
type Result struct {
	models.Envelope
	Symbol     string                 `json:"symbol"`
	Price      float64                `json:"price"`
	Indicators *IndicatorSnapshot     `json:"indicators,omitempty"`
	VRP        *models.VRPResult      `json:"vrp,omitempty"`
	Risk       *models.RiskAnalysis   `json:"risk,omitempty"`
	Scores     []models.StrategyScore `json:"scores,omitempty"`
}

// Engine wires configuration and weight profiles into one reusable,
// stateless scoring pipeline. Safe for concurrent use: it holds no
// mutable state.
type Engine struct {
	cfg     *config.Config
	weights *config.WeightsConfig
	logger  zerolog.Logger
}

// New builds an engine. Nil arguments fall back to defaults.
func New(cfg *config.Config, weights *config.WeightsConfig) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if weights == nil {
		weights = config.DefaultWeights()
	}
	return &Engine{
		cfg:     cfg,
		weights: weights,
		logger:  log.With().Str("component", "engine").Logger(),
	}
}

// Analyze runs the full pipeline for one request: indicator snapshot,
// VRP evaluation, risk analysis, and per-strategy composite scores.
// Failures are folded into the envelope, never raised across the
// boundary; a failed sub-block leaves the rest of the result intact
// where the data allows.
func (e *Engine) Analyze(req *models.AnalysisRequest) *Result {
	res := &Result{Envelope: models.OK(), Symbol: req.Symbol}

	if err := models.ValidateSeries(req.Candles); err != nil {
		res.Envelope = models.Failure(err)
		return res
	}
	closes := models.Closes(req.Candles)
	price := closes[len(closes)-1]
	res.Price = models.Round2(price)

	snapshot, atrValue, err := e.snapshot(req, closes, price)
	if err != nil {
		e.logger.Debug().Err(err).Str("symbol", req.Symbol).Msg("indicator snapshot failed")
		res.Envelope = models.Failure(err)
		return res
	}
	res.Indicators = snapshot

	vrp := e.evaluateVRP(req, closes)
	if vrp != nil {
		res.VRP = vrp
	}

	if req.Payoff != nil {
		analysis, err := risk.Analyze(*req.Payoff, e.riskThresholds())
		if err != nil {
			res.Envelope = models.Failure(err)
			return res
		}
		analysis.ExpectedValue = models.Round2(analysis.ExpectedValue)
		analysis.RiskAdjustedExpectancy = models.Round4(analysis.RiskAdjustedExpectancy)
		res.Risk = analysis
	}

	scores := scoring.ScoreAll(req.Strategies, scoring.Inputs{
		CurrentPrice:   price,
		ATR:            atrValue,
		MovingAverages: snapshot.MovingAverages,
		Quote:          req.Option,
		VRP:            vrp,
		Payoff:         req.Payoff,
		SafetyRatio:    e.cfg.ATRSafetyRatio,
		RiskThresholds: e.riskThresholds(),
	}, e.weights)
	for i := range scores {
		scores[i].Score = models.Round2(scores[i].Score)
		scores[i].Components = roundComponents(scores[i].Components)
		if scores[i].RiskReturn != nil {
			scores[i].RiskReturn.Score = models.Round2(scores[i].RiskReturn.Score)
			scores[i].RiskReturn.RiskAdjustedExpectancy = models.Round4(scores[i].RiskReturn.RiskAdjustedExpectancy)
		}
	}
	res.Scores = scores

	return res
}

// snapshot computes the technical block. ATR, RSI and volatility are
// required; the stop loss rides along when ATR is available.
func (e *Engine) snapshot(req *models.AnalysisRequest, closes []float64, price float64) (*IndicatorSnapshot, float64, error) {
	atr, err := indicators.ATR(req.Candles, e.cfg.ATRPeriod)
	if err != nil {
		return nil, 0, fmt.Errorf("atr: %w", err)
	}
	rsi, err := indicators.RSI(closes, e.cfg.RSIPeriod)
	if err != nil {
		return nil, 0, fmt.Errorf("rsi: %w", err)
	}
	vol, err := indicators.Volatility(closes, e.cfg.VolatilityPeriod)
	if err != nil {
		return nil, 0, fmt.Errorf("volatility: %w", err)
	}
	mas, err := indicators.MovingAverages(closes, e.cfg.MAPeriods)
	if err != nil {
		return nil, 0, fmt.Errorf("moving averages: %w", err)
	}

	stopOpts := indicators.StopLossOptions{
		ATRMultiplier:  e.cfg.ATRMultiplier,
		MinStopLossPct: e.cfg.MinStopLossPct,
		Beta:           req.Beta,
		HighBeta:       e.cfg.HighBeta,
		LowBeta:        e.cfg.LowBeta,
	}
	stop, err := indicators.ATRStopLoss(price, atr.ATR, stopOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("stop loss: %w", err)
	}
	stop.StopLoss = models.Round2(stop.StopLoss)
	stop.StopLossPercent = models.Round2(stop.StopLossPercent)

	for i := range mas {
		if !mas[i].Insufficient {
			mas[i].SMA = models.Round2(mas[i].SMA)
			mas[i].OffsetPercent = models.Round2(mas[i].OffsetPercent)
		}
	}

	return &IndicatorSnapshot{
		ATR:            models.Round2(atr.ATR),
		ATRPercent:     models.Round2(atr.ATRPercent),
		RSI:            models.Round2(rsi.RSI),
		RSISignal:      rsi.Signal,
		MovingAverages: mas,
		DailyVol:       models.Round4(vol.Daily),
		AnnualizedVol:  models.Round4(vol.Annualized),
		StopLoss:       stop,
	}, atr.ATR, nil
}

// evaluateVRP runs the VRP pipeline when the request carries IV data.
// Missing IV data is not an error at this level: the per-strategy
// scoring reports it for the strategies that need it.
func (e *Engine) evaluateVRP(req *models.AnalysisRequest, closes []float64) *models.VRPResult {
	if req.ImpliedVol <= 0 || len(req.IVHistory) == 0 {
		return nil
	}
	vrp, err := volatility.Evaluate(req.ImpliedVol, closes, req.IVHistory, volatility.EvaluateOptions{
		Forecast: volatility.ForecastOptions{
			Method:  e.cfg.ForecastMethod,
			Lambda:  e.cfg.EWMALambda,
			MinBars: e.cfg.MinHistoryVol,
		},
		NeutralBand: e.cfg.VRPNeutralBand,
	})
	if err != nil {
		e.logger.Debug().Err(err).Str("symbol", req.Symbol).Msg("VRP evaluation failed")
		return nil
	}
	vrp.VRP = models.Round4(vrp.VRP)
	vrp.Estimate.Daily = models.Round4(vrp.Estimate.Daily)
	vrp.Estimate.Annualized = models.Round4(vrp.Estimate.Annualized)
	vrp.Estimate.IVRank = models.Round2(vrp.Estimate.IVRank)
	return vrp
}

func (e *Engine) riskThresholds() risk.Thresholds {
	return risk.Thresholds{
		RAEModerate:  e.cfg.RAEModerate,
		RAEHigh:      e.cfg.RAEHigh,
		RAEExtreme:   e.cfg.RAEExtreme,
		TailModerate: e.cfg.TailModerate,
		TailHigh:     e.cfg.TailHigh,
		TailExtreme:  e.cfg.TailExtreme,
	}
}

func roundComponents(c models.ScoreComponents) models.ScoreComponents {
	c.Trend = models.Round2(c.Trend)
	c.Probability = models.Round2(c.Probability)
	c.Safety = models.Round2(c.Safety)
	c.Liquidity = models.Round2(c.Liquidity)
	c.VRP = models.Round2(c.VRP)
	return c
}
