package lob

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return New(WithCapacities(Capacities{
		MaxBooks:      4,
		MaxLevels:     16,
		MaxOrders:     64,
		MaxPriceIndex: 8,
	}))
}

func TestSingleAddDelete(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})

	price, qty, ok := e.Top(0, Bid)
	require.True(t, ok)
	assert.EqualValues(t, 100, price)
	assert.EqualValues(t, 10, qty)

	e.Delete(DeleteEvent{ExternalID: 1})

	_, _, ok = e.Top(0, Bid)
	assert.False(t, ok)
	_, ok = e.OrderQty(1)
	assert.False(t, ok)
	assert.Equal(t, 0, e.dir.Len())
	assert.EqualValues(t, 1, e.book(0).levels.FreeCount())
}

func TestAggregationAtALevel(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	e.Add(AddEvent{ExternalID: 2, BookID: 0, SignedPrice: 100, Qty: 5})

	qty, ok := e.LevelQty(0, Bid, 100)
	require.True(t, ok)
	assert.EqualValues(t, 15, qty)
	assert.Equal(t, 1, e.book(0).bids.size)

	e.Execute(ExecuteEvent{ExternalID: 1, Qty: 10}) // full execution -> delete path

	qty, ok = e.LevelQty(0, Bid, 100)
	require.True(t, ok, "level must survive, order 2 still resting")
	assert.EqualValues(t, 5, qty)
	assert.Equal(t, 1, e.book(0).bids.size)
}

func TestOrderingAcrossPrices(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 1})
	e.Add(AddEvent{ExternalID: 2, BookID: 0, SignedPrice: 102, Qty: 1})
	e.Add(AddEvent{ExternalID: 3, BookID: 0, SignedPrice: 101, Qty: 1})

	b := e.book(0)
	require.Equal(t, 3, b.bids.size)
	assert.Equal(t, Price(102), b.bids.entries[0].price)
	assert.Equal(t, Price(101), b.bids.entries[1].price)
	assert.Equal(t, Price(100), b.bids.entries[2].price)
}

func TestOfferSideSignConvention(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: -200, Qty: 5})

	price, qty, ok := e.Top(0, Offer)
	require.True(t, ok)
	assert.EqualValues(t, 200, price)
	assert.EqualValues(t, 5, qty)
}

func TestReplaceAcrossPricesSameSide(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	e.Replace(ReplaceEvent{OldID: 1, NewID: 2, NewPriceMagnitude: 101, NewQty: 7})

	_, ok := e.OrderQty(1)
	assert.False(t, ok)
	qty, ok := e.OrderQty(2)
	require.True(t, ok)
	assert.EqualValues(t, 7, qty)

	_, ok = e.LevelQty(0, Bid, 100)
	assert.False(t, ok)
	qty, ok = e.LevelQty(0, Bid, 101)
	require.True(t, ok)
	assert.EqualValues(t, 7, qty)
}

func TestPartialThenFullExecute(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})

	e.Execute(ExecuteEvent{ExternalID: 1, Qty: 3})
	qty, ok := e.OrderQty(1)
	require.True(t, ok)
	assert.EqualValues(t, 7, qty)
	qty, ok = e.LevelQty(0, Bid, 100)
	require.True(t, ok)
	assert.EqualValues(t, 7, qty)

	e.Execute(ExecuteEvent{ExternalID: 1, Qty: 7})
	_, ok = e.OrderQty(1)
	assert.False(t, ok)
	assert.Equal(t, 0, e.dir.Len())
	assert.Equal(t, 0, e.book(0).bids.size)
	assert.EqualValues(t, 1, e.book(0).orders.FreeCount())
	assert.EqualValues(t, 1, e.book(0).levels.FreeCount())
}

func TestReduceNeverFreesLevel(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	e.Reduce(ReduceEvent{ExternalID: 1, Qty: 10})

	qty, ok := e.LevelQty(0, Bid, 100)
	require.True(t, ok, "reduce must not free the level even when it empties it")
	assert.EqualValues(t, 0, qty)
}

func TestReduceZeroIsNoOp(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	e.Reduce(ReduceEvent{ExternalID: 1, Qty: 0})

	qty, _ := e.OrderQty(1)
	assert.EqualValues(t, 10, qty)
}

func TestReplaceSamePriceAndQtyRenamesID(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	e.Replace(ReplaceEvent{OldID: 1, NewID: 2, NewPriceMagnitude: 100, NewQty: 10})

	_, ok := e.OrderQty(1)
	assert.False(t, ok)
	qty, ok := e.OrderQty(2)
	require.True(t, ok)
	assert.EqualValues(t, 10, qty)
	price, topQty, ok := e.Top(0, Bid)
	require.True(t, ok)
	assert.EqualValues(t, 100, price)
	assert.EqualValues(t, 10, topQty)
}

func TestAddDuplicateExternalIDPanics(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	assert.Panics(t, func() {
		e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 101, Qty: 1})
	})
}

func TestReduceUnknownExternalIDPanics(t *testing.T) {
	e := testEngine()
	assert.Panics(t, func() {
		e.Reduce(ReduceEvent{ExternalID: 99, Qty: 1})
	})
}

func TestReduceExceedingOrderQtyPanics(t *testing.T) {
	e := testEngine()
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	assert.Panics(t, func() {
		e.Reduce(ReduceEvent{ExternalID: 1, Qty: 11})
	})
}

func TestBookIDOutsideRangePanics(t *testing.T) {
	e := testEngine()
	assert.Panics(t, func() {
		e.Add(AddEvent{ExternalID: 1, BookID: 99, SignedPrice: 100, Qty: 10})
	})
}

func TestSampleTracksDirectoryAndBookCounts(t *testing.T) {
	e := New(WithCapacities(Capacities{MaxBooks: 2, MaxLevels: 4, MaxOrders: 8, MaxPriceIndex: 4}),
		WithMetrics(NewMetrics(newTestRegistry())))
	e.Add(AddEvent{ExternalID: 1, BookID: 0, SignedPrice: 100, Qty: 10})
	e.Sample()
	assert.Equal(t, 1, e.dir.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.directorySize))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.booksActive))
}
