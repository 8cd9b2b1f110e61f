package lob

// Directory maps externally visible order identifiers to the composite
// Handle that resolves them within a book. It is the sole cross-book
// index; the arenas and price indices within each book remain the
// source of truth for existence (§3, invariant 4).
//
// Adapted from itch-order-book's global
// unordered_map<order_id_t, order_ptr_t>, scoped to one Engine instance
// instead of process-wide static state per §9's design note.
type Directory struct {
	index map[ExternalID]Handle
}

// NewDirectory preallocates a hash map with capacity for sizeHint
// entries; the map may still grow past that, rehashing being outside
// the latency-critical path (§5).
func NewDirectory(sizeHint int) *Directory {
	return &Directory{index: make(map[ExternalID]Handle, sizeHint)}
}

// Insert records the handle for id. Panics if id is already present.
func (d *Directory) Insert(id ExternalID, h Handle) {
	if _, exists := d.index[id]; exists {
		panicViolation("directory.insert", "external id already present")
	}
	d.index[id] = h
}

// Lookup resolves id to its handle, if any.
func (d *Directory) Lookup(id ExternalID) (Handle, bool) {
	h, ok := d.index[id]
	return h, ok
}

// MustLookup resolves id to its handle, panicking if absent.
func (d *Directory) MustLookup(op string, id ExternalID) Handle {
	h, ok := d.index[id]
	if !ok {
		panicViolation(op, "external id not present in directory")
	}
	return h
}

// Remove drops id's entry, if present.
func (d *Directory) Remove(id ExternalID) {
	delete(d.index, id)
}

// Len reports the number of live directory entries.
func (d *Directory) Len() int {
	return len(d.index)
}
