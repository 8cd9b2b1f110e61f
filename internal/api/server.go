// Package api exposes the engine's read-only query surface (top of
// book, level quantity, order quantity) over HTTP, plus health and
// Prometheus endpoints. It never mutates a book: event application
// remains the exclusive job of the replay driver running on the
// engine's owning goroutine (§5 of the specification forbids
// cross-thread mutation of a single book).
//
// Adapted from abdoElHodaky-tradSys/internal/trading/app/app.go's gin
// wiring (router, /health, /metrics via promhttp.Handler()).
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lightsgoout/quantcup-lob/pkg/lob"
)

// Queryer is the subset of *lob.Engine's methods the API reads from. A
// single Queryer must be driven from one goroutine; Server serializes
// all reads onto that goroutine via a request channel so it is safe to
// call Engine methods that are not otherwise goroutine-safe.
type Queryer interface {
	Top(bookID lob.BookID, side lob.Side) (uint32, lob.Qty, bool)
	LevelQty(bookID lob.BookID, side lob.Side, priceMagnitude uint32) (lob.Qty, bool)
	OrderQty(externalID lob.ExternalID) (lob.Qty, bool)
}

type query func()

// Server wraps a gin.Engine and forwards every handler's engine access
// through a single worker goroutine, so Queryer methods only ever run
// on that one goroutine regardless of how many HTTP requests are
// in flight concurrently.
type Server struct {
	router *gin.Engine
	engine Queryer
	log    *zap.Logger
	work   chan query
}

// New builds a Server over engine. Call Run to start serving and
// draining its work queue.
func New(engine Queryer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		router: gin.New(),
		engine: engine,
		log:    log,
		work:   make(chan query, 256),
	}
	s.router.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/books/:id/top/:side", s.handleTop)
	s.router.GET("/books/:id/levels/:side/:price", s.handleLevelQty)
	s.router.GET("/orders/:id", s.handleOrderQty)
}

// run drains the work queue on the calling goroutine. Call it once,
// typically in its own goroutine started alongside the HTTP listener.
func (s *Server) run(done <-chan struct{}) {
	for {
		select {
		case fn := <-s.work:
			fn()
		case <-done:
			return
		}
	}
}

// do submits fn to the worker goroutine and blocks until it completes.
func (s *Server) do(fn func()) {
	result := make(chan struct{})
	s.work <- func() {
		fn()
		close(result)
	}
	<-result
}

// Run starts the worker goroutine and serves HTTP on addr until the
// process exits or ListenAndServe returns an error.
func (s *Server) Run(addr string) error {
	done := make(chan struct{})
	go s.run(done)
	defer close(done)
	return s.router.Run(addr)
}

func parseSide(raw string) (lob.Side, bool) {
	switch raw {
	case "bid":
		return lob.Bid, true
	case "offer", "ask":
		return lob.Offer, true
	default:
		return 0, false
	}
}

func (s *Server) handleTop(c *gin.Context) {
	bookID, side, ok := s.parseBookSide(c)
	if !ok {
		return
	}

	var price uint32
	var qty lob.Qty
	var found bool
	s.do(func() {
		price, qty, found = s.engine.Top(bookID, side)
	})

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no resting interest on that side"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price, "qty": qty})
}

func (s *Server) handleLevelQty(c *gin.Context) {
	bookID, side, ok := s.parseBookSide(c)
	if !ok {
		return
	}
	price64, err := strconv.ParseUint(c.Param("price"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	var qty lob.Qty
	var found bool
	s.do(func() {
		qty, found = s.engine.LevelQty(bookID, side, uint32(price64))
	})

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no level at that price"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"qty": qty})
}

func (s *Server) handleOrderQty(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var qty lob.Qty
	var found bool
	s.do(func() {
		qty, found = s.engine.OrderQty(lob.ExternalID(id64))
	})

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown order id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"qty": qty})
}

func (s *Server) parseBookSide(c *gin.Context) (lob.BookID, lob.Side, bool) {
	bookID64, err := strconv.ParseUint(c.Param("id"), 10, 16)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return 0, 0, false
	}
	side, ok := parseSide(c.Param("side"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid side %q", c.Param("side"))})
		return 0, 0, false
	}
	return lob.BookID(bookID64), side, true
}
