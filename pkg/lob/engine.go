package lob

import "fmt"

// Option configures an Engine at construction.
type Option func(*Engine)

// WithTracer attaches a Tracer; every applied event emits one trace line.
func WithTracer(t *Tracer) Option {
	return func(e *Engine) { e.trace = t }
}

// WithMetrics attaches a Metrics instance; every applied event increments
// its per-kind counter.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithCapacities overrides DefaultCapacities. All fields must be powers
// of two; New panics otherwise.
func WithCapacities(c Capacities) Option {
	return func(e *Engine) { e.cap = c }
}

// WithDirectorySizeHint preallocates the directory's hash map.
func WithDirectorySizeHint(n int) Option {
	return func(e *Engine) { e.dirSizeHint = n }
}

// Engine is a process-local, single-threaded limit order book engine: a
// lazily realized book table plus the one global order directory. All
// mutating methods must run on a single driving goroutine per §5; the
// query methods may be called concurrently with each other but not with
// a mutation in flight.
//
// Adapted from the quantcup Engine (engine.go) and itch-order-book's
// order_book static fields, encapsulated as an explicit construct/apply/
// destruct object instead of process-wide statics, per §9's design note.
type Engine struct {
	cap         Capacities
	dirSizeHint int

	books []*Book
	dir   *Directory

	trace   *Tracer
	metrics *Metrics
}

// New constructs an Engine with DefaultCapacities unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{cap: DefaultCapacities}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cap.validate(); err != nil {
		panic(err)
	}
	e.books = make([]*Book, e.cap.MaxBooks)
	e.dir = NewDirectory(e.dirSizeHint)
	return e
}

func (e *Engine) book(id BookID) *Book {
	if int(id) >= len(e.books) {
		panicViolation("book", fmt.Sprintf("book id %d outside provisioned range [0,%d)", id, len(e.books)))
	}
	b := e.books[id]
	if b == nil {
		b = newBook(id, e.cap)
		e.books[id] = b
	}
	return b
}

// bookOrNil looks up id without realizing it, so read-only queries
// against a book that has never had an event applied to it stay
// allocation-free and side-effect-free.
func (e *Engine) bookOrNil(id BookID) *Book {
	if int(id) >= len(e.books) {
		panicViolation("book", fmt.Sprintf("book id %d outside provisioned range [0,%d)", id, len(e.books)))
	}
	return e.books[id]
}

// Add applies an AddEvent, returning the new order's handle. Panics if
// ExternalID is already present in the directory.
func (e *Engine) Add(ev AddEvent) Handle {
	if _, exists := e.dir.Lookup(ev.ExternalID); exists {
		panicViolation("add", "external id already present")
	}
	b := e.book(ev.BookID)
	h := b.add(ev.SignedPrice, ev.Qty)
	h.Book = ev.BookID
	e.dir.Insert(ev.ExternalID, h)

	if e.trace.enabled() {
		e.trace.add(ev.ExternalID, ev.BookID, ev.SignedPrice, ev.Qty, h, b.levelQtyAt(h))
	}
	e.metrics.observe("add")
	return h
}

// Reduce applies a ReduceEvent. Panics if ExternalID is absent, or if
// Qty exceeds the order's or its level's remaining quantity.
func (e *Engine) Reduce(ev ReduceEvent) {
	h := e.dir.MustLookup("reduce", ev.ExternalID)
	e.book(h.Book).reduce(h, ev.Qty)

	if e.trace.enabled() {
		e.trace.reduce(ev.ExternalID, ev.Qty)
	}
	e.metrics.observe("reduce")
}

// Execute applies an ExecuteEvent: a full execution (Qty equal to the
// order's remaining quantity) delegates to Delete; a partial execution
// delegates to Reduce. Panics if ExternalID is absent.
func (e *Engine) Execute(ev ExecuteEvent) {
	h := e.dir.MustLookup("execute", ev.ExternalID)
	b := e.book(h.Book)

	if ev.Qty == b.orderQty(h) {
		b.delete(h)
		e.dir.Remove(ev.ExternalID)
	} else {
		b.reduce(h, ev.Qty)
	}

	if e.trace.enabled() {
		e.trace.execute(ev.ExternalID, ev.Qty)
	}
	e.metrics.observe("execute")
}

// Delete applies a DeleteEvent, freeing the order (and its level, if
// that empties it) and dropping the directory entry. Panics if
// ExternalID is absent.
func (e *Engine) Delete(ev DeleteEvent) {
	h := e.dir.MustLookup("delete", ev.ExternalID)
	e.book(h.Book).delete(h)
	e.dir.Remove(ev.ExternalID)

	if e.trace.enabled() {
		e.trace.delete(ev.ExternalID)
	}
	e.metrics.observe("delete")
}

// Replace applies a ReplaceEvent: deletes OldID, then adds NewID at
// NewPriceMagnitude/NewQty on OldID's original side. Panics if OldID is
// absent or if NewID is already present.
func (e *Engine) Replace(ev ReplaceEvent) Handle {
	h := e.dir.MustLookup("replace", ev.OldID)
	b := e.book(h.Book)
	side := b.sideOf(h)

	b.delete(h)
	e.dir.Remove(ev.OldID)

	if _, exists := e.dir.Lookup(ev.NewID); exists {
		panicViolation("replace", "new id already present")
	}
	newHandle := b.add(SignedPrice(side, ev.NewPriceMagnitude), ev.NewQty)
	newHandle.Book = h.Book
	e.dir.Insert(ev.NewID, newHandle)

	if e.trace.enabled() {
		e.trace.replace(ev.OldID, ev.NewID, ev.NewPriceMagnitude, ev.NewQty)
	}
	e.metrics.observe("replace")
	return newHandle
}

// Top returns the most aggressive resting price on side of bookID and
// its aggregate quantity, if any.
func (e *Engine) Top(bookID BookID, side Side) (priceMagnitude uint32, qty Qty, ok bool) {
	b := e.bookOrNil(bookID)
	if b == nil {
		return 0, 0, false
	}
	return b.top(side)
}

// LevelQty returns the aggregate resting quantity at priceMagnitude on
// side of bookID, if a level exists there.
func (e *Engine) LevelQty(bookID BookID, side Side, priceMagnitude uint32) (Qty, bool) {
	b := e.bookOrNil(bookID)
	if b == nil {
		return 0, false
	}
	return b.levelQty(side, priceMagnitude)
}

// OrderQty returns externalID's order's current remaining quantity, if
// it is still live.
func (e *Engine) OrderQty(externalID ExternalID) (Qty, bool) {
	h, ok := e.dir.Lookup(externalID)
	if !ok {
		return 0, false
	}
	b := e.bookOrNil(h.Book)
	if b == nil {
		return 0, false
	}
	return b.orderQty(h), true
}

// Sample refreshes the off-hot-path gauges (active books, directory
// size, per-book arena high-water marks) on m. Intended to be called
// periodically by a driver, not after every event.
func (e *Engine) Sample() {
	if e.metrics == nil {
		return
	}
	active := 0
	for id, b := range e.books {
		if b == nil {
			continue
		}
		active++
		label := fmt.Sprintf("%d", id)
		e.metrics.levelArenaHWM.WithLabelValues(label).Set(float64(b.levels.Len()))
		e.metrics.orderArenaHWM.WithLabelValues(label).Set(float64(b.orders.Len()))
	}
	e.metrics.booksActive.Set(float64(active))
	e.metrics.directorySize.Set(float64(e.dir.Len()))
}
