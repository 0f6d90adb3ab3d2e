package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profxlabs/fxterm/internal/domain"
)

var testNow = time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

func openBuy(b *OrderBook, entry, sl, tp, size, contract float64) domain.Order {
	return b.Open(domain.Order{
		Instrument:   "EURUSD",
		Side:         domain.SideBuy,
		EntryPrice:   entry,
		StopLoss:     sl,
		TakeProfit:   tp,
		Size:         size,
		ContractSize: contract,
	}, testNow)
}

func TestOpenAssignsIdentityAndStatus(t *testing.T) {
	b := NewOrderBook()
	o := openBuy(b, 1.0854, 1.0834, 1.0914, 0.5, 100000)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, domain.OrderStatusOpen, o.Status)
	assert.Equal(t, testNow, o.OpenedAt)
	assert.Nil(t, o.ClosedAt)
}

func TestBuyTakeProfitClosesWithFixedPnL(t *testing.T) {
	b := NewOrderBook()
	openBuy(b, 1.0854, 1.0834, 1.0914, 0.5, 100000)

	closed := b.RepriceAll(1.0914, testNow.Add(time.Minute))
	require.Len(t, closed, 1)
	assert.Equal(t, domain.OrderStatusClosed, closed[0].Status)
	assert.Equal(t, domain.CloseReasonTakeProfit, closed[0].CloseReason)
	assert.InDelta(t, 300.00, closed[0].PnL, 1e-9)
	require.NotNil(t, closed[0].ClosedAt)
}

func TestBuyStopLossCloses(t *testing.T) {
	b := NewOrderBook()
	openBuy(b, 1.0854, 1.0834, 1.0914, 0.5, 100000)

	closed := b.RepriceAll(1.0830, testNow.Add(time.Minute))
	require.Len(t, closed, 1)
	assert.Equal(t, domain.CloseReasonStopLoss, closed[0].CloseReason)
	assert.Less(t, closed[0].PnL, 0.0)
}

func TestSellExits(t *testing.T) {
	b := NewOrderBook()
	b.Open(domain.Order{
		Instrument:   "XAUUSD",
		Side:         domain.SideSell,
		EntryPrice:   2352.40,
		StopLoss:     2362.00,
		TakeProfit:   2332.00,
		Size:         0.1,
		ContractSize: 100,
	}, testNow)

	closed := b.RepriceAll(2332.00, testNow.Add(time.Minute))
	require.Len(t, closed, 1)
	assert.Equal(t, domain.CloseReasonTakeProfit, closed[0].CloseReason)
	assert.InDelta(t, (2352.40-2332.00)*0.1*100, closed[0].PnL, 1e-9)
}

func TestClosedOrderNeverReopens(t *testing.T) {
	b := NewOrderBook()
	openBuy(b, 1.0854, 1.0834, 1.0914, 0.5, 100000)

	closed := b.RepriceAll(1.0914, testNow.Add(time.Minute))
	require.Len(t, closed, 1)
	final := closed[0].PnL

	// Subsequent ticks in either direction leave it untouched.
	assert.Empty(t, b.RepriceAll(1.0800, testNow.Add(2*time.Minute)))
	assert.Empty(t, b.RepriceAll(1.1000, testNow.Add(3*time.Minute)))

	orders := b.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusClosed, orders[0].Status)
	assert.Equal(t, final, orders[0].PnL)
}

func TestRepriceUpdatesFloatingPnL(t *testing.T) {
	b := NewOrderBook()
	openBuy(b, 1.0854, 1.0834, 1.0914, 0.5, 100000)

	b.RepriceAll(1.0874, testNow.Add(time.Minute))
	assert.InDelta(t, 100.00, b.FloatingPnL(), 1e-9)

	b.RepriceAll(1.0844, testNow.Add(2*time.Minute))
	assert.InDelta(t, -50.00, b.FloatingPnL(), 1e-9)
}

func TestCloseAllThenRepriceLeavesNothingFloating(t *testing.T) {
	b := NewOrderBook()
	openBuy(b, 1.0854, 1.0834, 1.0914, 0.5, 100000)
	openBuy(b, 1.0860, 1.0840, 1.0920, 0.3, 100000)

	closed := b.CloseAll(1.0870, testNow.Add(time.Minute))
	require.Len(t, closed, 2)
	for _, o := range closed {
		assert.Equal(t, domain.CloseReasonManual, o.CloseReason)
	}

	for i := 0; i < 5; i++ {
		b.RepriceAll(1.0800+float64(i)*0.01, testNow.Add(time.Duration(i+2)*time.Minute))
	}
	assert.Zero(t, b.FloatingPnL())
	assert.Empty(t, b.OpenOrders())
}

func TestManualCloseSingle(t *testing.T) {
	b := NewOrderBook()
	o := openBuy(b, 1.0854, 1.0834, 1.0914, 0.5, 100000)

	closed, closedNow, err := b.Close(o.ID, 1.0864, testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, closedNow)
	assert.Equal(t, domain.CloseReasonManual, closed.CloseReason)
	assert.InDelta(t, 50.00, closed.PnL, 1e-9)

	// Closing again is a no-op returning the settled order.
	again, closedNow, err := b.Close(o.ID, 1.0500, testNow.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, closedNow)
	assert.Equal(t, closed.PnL, again.PnL)
}

func TestCloseUnknownID(t *testing.T) {
	b := NewOrderBook()
	_, _, err := b.Close("nope", 1.0, testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
