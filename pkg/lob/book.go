package lob

// levelRecord is one distinct (book, price) pair currently carrying
// resting orders: its price and the aggregate quantity of those orders.
type levelRecord struct {
	price Price
	qty   Qty
}

// orderRecord is one resting order's remaining quantity. Its identity is
// external (the directory); its position is a Handle.
type orderRecord struct {
	qty Qty
}

// Book is one instrument's state: a level arena, an order arena, and two
// per-side sorted price indices. Books do not reference one another and
// own their arenas and indices exclusively.
//
// Adapted from the quantcup engine's per-engine pricePoints/bookEntries
// (engine.go), split one-per-instrument as itch-order-book's order_book
// class does, with FIFO intrusive order lists dropped: a level stores
// only an aggregate quantity, never per-order queue positions (see
// Non-goals).
type Book struct {
	id     BookID
	levels *Arena[levelRecord]
	orders *Arena[orderRecord]
	bids   *priceIndex
	offers *priceIndex
}

func newBook(id BookID, cap Capacities) *Book {
	return &Book{
		id:     id,
		levels: NewArena[levelRecord](cap.MaxLevels),
		orders: NewArena[orderRecord](cap.MaxOrders),
		bids:   newPriceIndex(cap.MaxPriceIndex),
		offers: newPriceIndex(cap.MaxPriceIndex),
	}
}

func (b *Book) indexFor(side Side) *priceIndex {
	if side == Bid {
		return b.bids
	}
	return b.offers
}

// add implements §4.3.1: locate or create the level at signedPrice,
// accumulate qty into it, and allocate a fresh order slot.
func (b *Book) add(signedPrice Price, qty Qty) Handle {
	side := SideOf(signedPrice)
	idx := b.indexFor(side)

	pos, found, levelID := idx.find(signedPrice)
	if !found {
		levelID = LevelID(b.levels.Alloc())
		*b.levels.Get(uint32(levelID)) = levelRecord{price: signedPrice, qty: 0}
		idx.insert(pos, priceLevelEntry{price: signedPrice, level: levelID})
	}

	lvl := b.levels.Get(uint32(levelID))
	lvl.qty += qty

	orderID := OrderID(b.orders.Alloc())
	*b.orders.Get(uint32(orderID)) = orderRecord{qty: qty}

	return Handle{Level: levelID, Order: orderID}
}

// reduce implements §4.3.2: decrement both the order's and its level's
// quantity. It never removes the level even if this drives its
// aggregate to zero — only delete/execute-full do that.
func (b *Book) reduce(h Handle, qty Qty) {
	order := b.orders.Get(uint32(h.Order))
	lvl := b.levels.Get(uint32(h.Level))
	if qty > order.qty {
		panicViolation("reduce", "qty exceeds order's remaining quantity")
	}
	if qty > lvl.qty {
		panicViolation("reduce", "qty exceeds level's aggregate quantity")
	}
	order.qty -= qty
	lvl.qty -= qty
}

// delete implements §4.3.3: subtract the order's entire remaining
// quantity from its level, freeing the level (and its price-index
// entry) if that empties it, and always freeing the order slot.
func (b *Book) delete(h Handle) {
	order := b.orders.Get(uint32(h.Order))
	lvl := b.levels.Get(uint32(h.Level))

	lvl.qty -= order.qty
	if lvl.qty == 0 {
		side := SideOf(lvl.price)
		idx := b.indexFor(side)
		if pos, found, _ := idx.find(lvl.price); found {
			idx.erase(pos)
		}
		b.levels.Free(uint32(h.Level))
	}

	b.orders.Free(uint32(h.Order))
}

// sideOf reports the side of the level a handle currently resolves to.
func (b *Book) sideOf(h Handle) Side {
	return SideOf(b.levels.Get(uint32(h.Level)).price)
}

// orderQty returns the order's current remaining quantity.
func (b *Book) orderQty(h Handle) Qty {
	return b.orders.Get(uint32(h.Order)).qty
}

// levelQtyAt returns the aggregate quantity of the level a handle
// resolves to.
func (b *Book) levelQtyAt(h Handle) Qty {
	return b.levels.Get(uint32(h.Level)).qty
}

// top implements the top-of-book half of §4.3.6.
func (b *Book) top(side Side) (magnitude uint32, qty Qty, ok bool) {
	entry, ok := b.indexFor(side).top()
	if !ok {
		return 0, 0, false
	}
	lvl := b.levels.Get(uint32(entry.level))
	return entry.price.Magnitude(), lvl.qty, true
}

// levelQty implements the level-lookup half of §4.3.6.
func (b *Book) levelQty(side Side, magnitude uint32) (Qty, bool) {
	price := SignedPrice(side, magnitude)
	_, found, level := b.indexFor(side).find(price)
	if !found {
		return 0, false
	}
	return b.levels.Get(uint32(level)).qty, true
}
