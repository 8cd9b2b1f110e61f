package lob

// AddEvent introduces a new resting order, creating its level if needed.
type AddEvent struct {
	ExternalID  ExternalID
	BookID      BookID
	SignedPrice Price
	Qty         Qty
}

// ReduceEvent partially cancels a resting order without removing it.
type ReduceEvent struct {
	ExternalID ExternalID
	Qty        Qty
}

// ExecuteEvent trades against a resting order; a full execution removes
// it, a partial execution behaves like ReduceEvent.
type ExecuteEvent struct {
	ExternalID ExternalID
	Qty        Qty
}

// DeleteEvent removes a resting order outright.
type DeleteEvent struct {
	ExternalID ExternalID
}

// ReplaceEvent atomically (from the caller's view) retires OldID and
// adds NewID at NewPriceMagnitude/NewQty on the same side as OldID.
type ReplaceEvent struct {
	OldID             ExternalID
	NewID             ExternalID
	NewPriceMagnitude uint32
	NewQty            Qty
}
