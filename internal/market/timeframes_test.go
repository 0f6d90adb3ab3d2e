package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/profxlabs/fxterm/internal/domain"
)

func TestTrendMatrixWaitsWithoutData(t *testing.T) {
	m := TrendMatrix(nil)
	for _, tf := range domain.Timeframes {
		assert.Equal(t, domain.TrendWait, m[tf], "timeframe %s", tf)
	}
}

func TestTrendMatrixRisingSeries(t *testing.T) {
	prices := make([]float64, 150)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	m := TrendMatrix(series(prices...))

	for _, tf := range domain.Timeframes {
		assert.Equal(t, domain.TrendUp, m[tf], "timeframe %s", tf)
	}
}

func TestTrendMatrixFallingSeries(t *testing.T) {
	prices := make([]float64, 150)
	for i := range prices {
		prices[i] = 300 - float64(i)
	}
	m := TrendMatrix(series(prices...))

	for _, tf := range domain.Timeframes {
		assert.Equal(t, domain.TrendDown, m[tf], "timeframe %s", tf)
	}
}

func TestTrendMatrixShortSeriesMixes(t *testing.T) {
	prices := make([]float64, 10)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	m := TrendMatrix(series(prices...))

	assert.Equal(t, domain.TrendUp, m["1M"])
	assert.Equal(t, domain.TrendWait, m["1D"], "insufficient window reads WAIT")
	assert.Equal(t, domain.TrendWait, m["1W"])
}

func TestTrendMatrixFlatSeriesWaits(t *testing.T) {
	prices := make([]float64, 150)
	for i := range prices {
		prices[i] = 100
	}
	m := TrendMatrix(series(prices...))

	for _, tf := range domain.Timeframes {
		assert.Equal(t, domain.TrendWait, m[tf], "timeframe %s", tf)
	}
}
