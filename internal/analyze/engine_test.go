package analyze

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/optioncore/models"
)

func ptr(v float64) *float64 { return &v }

// testCandles produces n daily bars with exact alternating +1%/-1%
// closes, so realized volatility is a known quantity.
func testCandles(n int) []models.Candle {
	candles := make([]models.Candle, n)
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	close := 100.0
	for i := 0; i < n; i++ {
		if i > 0 {
			if i%2 == 1 {
				close *= 1.01
			} else {
				close *= 0.99
			}
		}
		candles[i] = models.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   close,
			High:   close * 1.02,
			Low:    close * 0.98,
			Close:  close,
			Volume: 1000,
		}
	}
	return candles
}

func testRequest() *models.AnalysisRequest {
	return &models.AnalysisRequest{
		Symbol:  "ACME",
		Candles: testCandles(60),
		Option: &models.OptionQuote{
			Strike: 92, Bid: 1.0, Ask: 1.1, Volume: 500, OpenInterest: 1500,
			ImpliedVol: 0.40, Delta: ptr(-0.20),
		},
		ImpliedVol: 0.40,
		IVHistory:  []float64{0.20, 0.30, 0.40, 0.50},
		Payoff:     &models.PayoffEstimate{WinProbability: 0.8, AvgProfit: 100, AvgLoss: 150, MaxLoss: 1000},
	}
}

func TestEngineAnalyze(t *testing.T) {
	res := New(nil, nil).Analyze(testRequest())

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "ACME", res.Symbol)

	require.NotNil(t, res.Indicators)
	assert.Greater(t, res.Indicators.ATR, 0.0)
	assert.InDelta(t, 0.01, res.Indicators.DailyVol, 1e-4)
	require.NotNil(t, res.Indicators.StopLoss)
	assert.Less(t, res.Indicators.StopLoss.StopLoss, res.Price)

	require.NotNil(t, res.VRP)
	assert.Equal(t, models.RecommendSell, res.VRP.Recommendation)
	assert.InDelta(t, 66.67, res.VRP.Estimate.IVRank, 0.01) // 2 of 3 history points below 0.40

	require.NotNil(t, res.Risk)
	assert.InDelta(t, 0.1, res.Risk.RiskAdjustedExpectancy, 1e-9)

	require.Len(t, res.Scores, 4)
	for _, s := range res.Scores {
		assert.True(t, s.Success, "strategy %s: %s", s.Strategy, s.Error)
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 100.0)
		// Scores are presented at 2 decimal places.
		assert.InDelta(t, s.Score, math.Round(s.Score*100)/100, 1e-9)
		require.NotNil(t, s.RiskReturn)
	}
}

func TestEngineAnalyzeWithoutOptionData(t *testing.T) {
	req := testRequest()
	req.Option = nil
	req.ImpliedVol = 0
	req.IVHistory = nil

	res := New(nil, nil).Analyze(req)

	// The technical block still computes; every strategy fails with an
	// explicit error instead of scoring a silent zero.
	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Indicators)
	assert.Nil(t, res.VRP)
	require.Len(t, res.Scores, 4)
	for _, s := range res.Scores {
		assert.False(t, s.Success)
		assert.Equal(t, "invalid_input", s.ErrorKind)
	}
}

func TestEngineAnalyzeShortHistory(t *testing.T) {
	req := testRequest()
	req.Candles = testCandles(10)

	res := New(nil, nil).Analyze(req)
	assert.False(t, res.Success)
	assert.Equal(t, "insufficient_data", res.ErrorKind)
}

func TestEngineAnalyzeBadSeries(t *testing.T) {
	req := testRequest()
	req.Candles[5].Date = req.Candles[4].Date // duplicate date

	res := New(nil, nil).Analyze(req)
	assert.False(t, res.Success)
	assert.Equal(t, "invalid_input", res.ErrorKind)
}

func TestResultJSONShape(t *testing.T) {
	res := New(nil, nil).Analyze(testRequest())

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["success"])

	risk, ok := decoded["risk"].(map[string]any)
	require.True(t, ok)
	// Risk level serializes as its label, not a number.
	assert.Contains(t, []any{"LOW", "MODERATE", "HIGH", "EXTREME"}, risk["risk_level"])
}

// Analyzing the same request twice yields identical results: the
// engine holds no state between calls.
func TestEngineAnalyzeIdempotent(t *testing.T) {
	engine := New(nil, nil)
	a := engine.Analyze(testRequest())
	b := engine.Analyze(testRequest())
	assert.Equal(t, a, b)
}
