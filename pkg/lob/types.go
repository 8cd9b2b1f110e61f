// Package lob implements an in-memory limit order book engine: fixed-capacity
// arenas and sorted price indices maintaining resting bid/ask interest for
// many instruments, mutated by add/reduce/execute/delete/replace events.
//
// Adapted from the quantcup price-time matching engine (engine.go, types.go)
// and from supersonicnumbers/itch-order-book's arena/handle design, with
// matching dropped: this package maintains book state, it does not cross
// buy and sell interest against each other.
package lob

import "fmt"

// Price is a signed price. A non-negative value denotes a bid at that
// price; a negative value denotes an offer at magnitude -Price.
type Price int32

// Qty is a resting order or level quantity. Additive; the caller must
// never drive it below zero (see ViolationError).
type Qty uint32

// Side names which side of the book a price or query refers to.
type Side uint8

const (
	Bid Side = iota
	Offer
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "offer"
}

// SideOf reports the side implied by a signed price.
func SideOf(p Price) Side {
	if p >= 0 {
		return Bid
	}
	return Offer
}

// SignedPrice converts a side and a non-negative price magnitude into the
// engine's internal signed representation.
func SignedPrice(side Side, magnitude uint32) Price {
	if side == Offer {
		return -Price(magnitude)
	}
	return Price(magnitude)
}

// Magnitude returns the real (always non-negative) price a signed price
// represents.
func (p Price) Magnitude() uint32 {
	if p < 0 {
		return uint32(-p)
	}
	return uint32(p)
}

// BookID addresses one instrument's book within an Engine's book table.
type BookID uint16

// LevelID addresses one level record within a single book's level arena.
type LevelID uint16

// OrderID addresses one order record within a single book's order arena.
type OrderID uint32

// ExternalID is the externally visible order identifier carried on the
// wire; it is the sole key of the Directory.
type ExternalID uint64

// Handle is the canonical, non-owning reference to a resting order: the
// book, the level within that book, and the order within that book's
// order arena. It is never a pointer.
type Handle struct {
	Book  BookID
	Level LevelID
	Order OrderID
}

// Capacities are the compile-time-equivalent fixed sizes of one engine's
// arenas. All fields must be powers of two.
type Capacities struct {
	MaxBooks      int
	MaxLevels     uint32
	MaxOrders     uint32
	MaxPriceIndex int
}

// DefaultCapacities matches the sizes named in the specification: 32768
// books, 1024 levels/book, 32768 orders/book, 512 price-index slots/side.
var DefaultCapacities = Capacities{
	MaxBooks:      32768,
	MaxLevels:     1024,
	MaxOrders:     32768,
	MaxPriceIndex: 512,
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

func (c Capacities) validate() error {
	if !isPowerOfTwo(uint64(c.MaxBooks)) {
		return fmt.Errorf("lob: MaxBooks %d is not a power of two", c.MaxBooks)
	}
	if !isPowerOfTwo(uint64(c.MaxLevels)) {
		return fmt.Errorf("lob: MaxLevels %d is not a power of two", c.MaxLevels)
	}
	if !isPowerOfTwo(uint64(c.MaxOrders)) {
		return fmt.Errorf("lob: MaxOrders %d is not a power of two", c.MaxOrders)
	}
	if !isPowerOfTwo(uint64(c.MaxPriceIndex)) {
		return fmt.Errorf("lob: MaxPriceIndex %d is not a power of two", c.MaxPriceIndex)
	}
	return nil
}
