package eventstore

import (
	"math/rand"
)

// GeneratorConfig controls the synthetic event stream GenerateEvents
// produces, grounded on the teacher's types.go (GenerateRandomOrder) and
// db.go's cancelChance constant.
type GeneratorConfig struct {
	Books        int
	MaxPriceMag  uint32
	MaxQty       uint32
	CancelChance float64 // probability an already-resting order is reduced/executed/deleted/replaced instead of a fresh add
}

// DefaultGeneratorConfig mirrors the teacher's defaults (cancelChance =
// 0.05, a single symbol's worth of price/qty range).
var DefaultGeneratorConfig = GeneratorConfig{
	Books:        1,
	MaxPriceMag:  65535,
	MaxQty:       1000,
	CancelChance: 0.05,
}

// GenerateEvents produces n synthetic events: mostly adds, with a
// cancelChance-weighted mix of reduce/execute/delete/replace against
// previously added, still-resting orders. Orders are tracked in-memory
// only to keep the generator a pure function of (n, cfg, rng); it never
// consults an Engine.
func GenerateEvents(n int, cfg GeneratorConfig, rng *rand.Rand) []Event {
	if cfg.Books <= 0 {
		cfg.Books = 1
	}

	type resting struct {
		externalID uint64
		bookID     uint16
		side       int // 0 = bid, 1 = offer
		priceMag   uint32
		qty        uint32
	}

	var live []resting
	var nextID uint64 = 1
	events := make([]Event, 0, n)

	for len(events) < n {
		if len(live) > 0 && rng.Float64() < cfg.CancelChance {
			i := rng.Intn(len(live))
			o := live[i]

			switch rng.Intn(4) {
			case 0: // partial reduce
				reduceQty := uint32(rng.Int63n(int64(o.qty))) + 1
				if reduceQty >= o.qty {
					reduceQty = o.qty - 1
				}
				if reduceQty == 0 {
					continue
				}
				events = append(events, Event{BookID: o.bookID, Kind: KindReduce, ExternalID: o.externalID, Qty: reduceQty})
				o.qty -= reduceQty
				live[i] = o
			case 1: // partial or full execute
				execQty := uint32(rng.Int63n(int64(o.qty))) + 1
				events = append(events, Event{BookID: o.bookID, Kind: KindExecute, ExternalID: o.externalID, Qty: execQty})
				if execQty == o.qty {
					live = append(live[:i], live[i+1:]...)
				} else {
					o.qty -= execQty
					live[i] = o
				}
			case 2: // full delete
				events = append(events, Event{BookID: o.bookID, Kind: KindDelete, ExternalID: o.externalID})
				live = append(live[:i], live[i+1:]...)
			default: // replace to a nearby price
				newID := nextID
				nextID++
				delta := int32(rng.Intn(5)) - 2
				newPrice := int32(o.priceMag) + delta
				if newPrice < 1 {
					newPrice = 1
				}
				events = append(events, Event{
					Kind:              KindReplace,
					OldID:             o.externalID,
					NewID:             newID,
					NewPriceMagnitude: uint32(newPrice),
					Qty:               o.qty,
				})
				live[i] = resting{externalID: newID, bookID: o.bookID, side: o.side, priceMag: uint32(newPrice), qty: o.qty}
			}
			continue
		}

		side := rng.Intn(2)
		priceMag := uint32(rng.Int63n(int64(cfg.MaxPriceMag-1))) + 1
		qty := uint32(rng.Int63n(int64(cfg.MaxQty-1))) + 1
		bookID := uint16(rng.Intn(cfg.Books))
		externalID := nextID
		nextID++

		signed := int32(priceMag)
		if side == 1 {
			signed = -signed
		}

		events = append(events, Event{BookID: bookID, Kind: KindAdd, ExternalID: externalID, SignedPrice: signed, Qty: qty})
		live = append(live, resting{externalID: externalID, bookID: bookID, side: side, priceMag: priceMag, qty: qty})
	}

	return events
}
