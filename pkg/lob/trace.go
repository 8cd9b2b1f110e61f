package lob

import "go.uber.org/zap"

// Tracer emits one structured log line per applied event when attached
// to an Engine. The field set is stable across releases so downstream
// golden-file tests can diff trace output (§6). A nil *Tracer, or one
// built with a nil logger, is a valid no-op.
type Tracer struct {
	log *zap.Logger
}

// NewTracer wraps a zap logger for event tracing.
func NewTracer(log *zap.Logger) *Tracer {
	return &Tracer{log: log}
}

func (t *Tracer) enabled() bool {
	return t != nil && t.log != nil
}

func (t *Tracer) add(extID ExternalID, bookID BookID, price Price, qty Qty, h Handle, levelQty Qty) {
	if !t.enabled() {
		return
	}
	t.log.Info("add",
		zap.Uint64("external_id", uint64(extID)),
		zap.Uint16("book_id", uint16(bookID)),
		zap.Int32("price", int32(price)),
		zap.Uint32("qty", uint32(qty)),
		zap.Uint16("level_id", uint16(h.Level)),
		zap.Uint32("order_id", uint32(h.Order)),
		zap.Uint32("level_qty", uint32(levelQty)),
	)
}

func (t *Tracer) reduce(extID ExternalID, qty Qty) {
	if !t.enabled() {
		return
	}
	t.log.Info("reduce",
		zap.Uint64("external_id", uint64(extID)),
		zap.Uint32("qty", uint32(qty)),
	)
}

func (t *Tracer) execute(extID ExternalID, qty Qty) {
	if !t.enabled() {
		return
	}
	t.log.Info("execute",
		zap.Uint64("external_id", uint64(extID)),
		zap.Uint32("qty", uint32(qty)),
	)
}

func (t *Tracer) delete(extID ExternalID) {
	if !t.enabled() {
		return
	}
	t.log.Info("delete",
		zap.Uint64("external_id", uint64(extID)),
	)
}

func (t *Tracer) replace(oldID, newID ExternalID, newPriceMagnitude uint32, newQty Qty) {
	if !t.enabled() {
		return
	}
	t.log.Info("replace",
		zap.Uint64("old_id", uint64(oldID)),
		zap.Uint64("new_id", uint64(newID)),
		zap.Uint32("new_price_magnitude", newPriceMagnitude),
		zap.Uint32("new_qty", uint32(newQty)),
	)
}
