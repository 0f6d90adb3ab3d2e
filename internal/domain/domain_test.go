package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionWindowIsOpen(t *testing.T) {
	london := SessionWindow{Name: "London", StartHour: 8, EndHour: 16}
	assert.True(t, london.IsOpen(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, london.IsOpen(time.Date(2026, 9, 1, 15, 59, 0, 0, time.UTC)))
	assert.False(t, london.IsOpen(time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC)))
	assert.False(t, london.IsOpen(time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)))
}

func TestSessionWindowWrapsMidnight(t *testing.T) {
	sydney := SessionWindow{Name: "Sydney", StartHour: 22, EndHour: 6}
	assert.True(t, sydney.IsOpen(time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)))
	assert.True(t, sydney.IsOpen(time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC)))
	assert.False(t, sydney.IsOpen(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)))
}

func TestZoneContains(t *testing.T) {
	z := Zone{Kind: ZoneDemand, Top: 991, Bottom: 989}
	assert.True(t, z.Contains(990))
	assert.True(t, z.Contains(989))
	assert.True(t, z.Contains(991))
	assert.False(t, z.Contains(991.01))
	assert.False(t, z.Contains(988.99))
}

func TestInstrumentFormatPrice(t *testing.T) {
	eur := Instrument{Decimals: 5}
	assert.Equal(t, "1.08540", eur.FormatPrice(1.0854))

	gold := Instrument{Decimals: 2}
	assert.Equal(t, "2352.40", gold.FormatPrice(2352.4))
}

func TestNeutralAnalysis(t *testing.T) {
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	res := NeutralAnalysis(at)
	assert.Equal(t, BiasNeutral, res.Bias)
	assert.Zero(t, res.Score)
	assert.NotEmpty(t, res.Reasoning)
	assert.Len(t, res.Insights, 3)
	assert.Equal(t, at, res.GeneratedAt)
}
