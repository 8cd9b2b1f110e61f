package lob

// priceLevelEntry is one element of a side's sorted price index: the
// level's price (duplicated here for cache-local linear scans) and the
// level handle it resolves to.
type priceLevelEntry struct {
	price Price
	level LevelID
}

// priceIndex is a small fixed-capacity vector kept strictly decreasing by
// signed price. Because offers are stored with negated prices, index 0
// is always the most aggressive price on its side regardless of which
// side the index belongs to: the best bid (highest price) or the best
// offer (least-negative, i.e. lowest real price).
//
// Adapted from itch-order-book's fixed_size_array<price_level, ...> and
// from the quantcup engine's pricePoints scan (engine.go), generalized
// from a flat price-indexed array to an insertion-sorted vector per §4.2
// of the specification.
type priceIndex struct {
	entries []priceLevelEntry
	cap     int
	size    int
}

func newPriceIndex(capacity int) *priceIndex {
	return &priceIndex{
		entries: make([]priceLevelEntry, capacity),
		cap:     capacity,
	}
}

// find scans from the tail toward the head looking for price. If found,
// it returns the entry's position and level. If not found, it returns
// the insertion position a new entry at price would occupy (0 is most
// aggressive, size is least aggressive).
func (p *priceIndex) find(price Price) (pos int, found bool, level LevelID) {
	i := p.size - 1
	for ; i >= 0; i-- {
		cur := p.entries[i]
		if cur.price == price {
			return i, true, cur.level
		}
		if price < cur.price {
			break
		}
	}
	return i + 1, false, 0
}

// insert shifts the tail right by one and writes entry at pos.
func (p *priceIndex) insert(pos int, entry priceLevelEntry) {
	if p.size >= p.cap {
		panicViolation("priceIndex.insert", "price index exhausted")
	}
	copy(p.entries[pos+1:p.size+1], p.entries[pos:p.size])
	p.entries[pos] = entry
	p.size++
}

// erase shifts the tail left by one, removing the entry at pos.
func (p *priceIndex) erase(pos int) {
	copy(p.entries[pos:p.size-1], p.entries[pos+1:p.size])
	p.size--
}

// top returns the entry at index 0, if any.
func (p *priceIndex) top() (priceLevelEntry, bool) {
	if p.size == 0 {
		return priceLevelEntry{}, false
	}
	return p.entries[0], true
}
