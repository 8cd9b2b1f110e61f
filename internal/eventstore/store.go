package eventstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Kind names one of the five event-lifecycle operations.
type Kind string

const (
	KindAdd     Kind = "add"
	KindReduce  Kind = "reduce"
	KindExecute Kind = "execute"
	KindDelete  Kind = "delete"
	KindReplace Kind = "replace"
)

// Event is the persisted, wire-shaped form of one lob event, one-for-one
// with the field table in the specification's external interfaces
// section. Only the fields relevant to Kind carry meaning; FetchEvents
// fills both SignedPrice and NewPriceMagnitude from the one stored price
// column for every kind.
type Event struct {
	BookID            uint16
	Kind              Kind
	ExternalID        uint64
	OldID             uint64
	NewID             uint64
	SignedPrice       int32
	NewPriceMagnitude uint32
	Qty               uint32
}

// SnapshotRow is one (book, side, price, qty) line of a point-in-time
// book snapshot.
type SnapshotRow struct {
	BookID uint16
	Side   string
	Price  int32
	Qty    int64
}

// Store persists events and snapshots to Postgres via lib/pq, mirroring
// the teacher's db.go use of pq.CopyIn for bulk load and FOR UPDATE
// NOWAIT for single-consumer replay claims.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New wraps an open *sql.DB. The caller owns the DB's lifecycle.
func New(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// InsertEvents bulk-loads events via a COPY statement, grounded on
// FillTestData's use of pq.CopyIn.
func (s *Store) InsertEvents(ctx context.Context, events []Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("eventstore: begin insert events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("lob_events",
		"book_id", "kind", "external_id", "old_id", "new_id", "signed_price", "qty"))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("eventstore: prepare copy-in: %w", err)
	}

	for _, ev := range events {
		price := ev.SignedPrice
		if ev.Kind == KindReplace {
			price = int32(ev.NewPriceMagnitude)
		}
		if _, err := stmt.ExecContext(ctx, ev.BookID, string(ev.Kind), ev.ExternalID, ev.OldID, ev.NewID, price, ev.Qty); err != nil {
			tx.Rollback()
			return fmt.Errorf("eventstore: copy-in row: %w", err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		tx.Rollback()
		return fmt.Errorf("eventstore: flush copy-in: %w", err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("eventstore: close copy-in: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("eventstore: commit insert events: %w", err)
	}

	s.log.Info("events inserted", zap.Int("count", len(events)))
	return nil
}

const fetchEventsSQL = `
	SELECT book_id, kind, external_id, old_id, new_id, signed_price, qty
	FROM lob_events ORDER BY seq ASC
	FOR UPDATE NOWAIT
`

// FetchEvents claims and returns the full event log in arrival order,
// grounded on FetchOrders's locked, ordered read.
func (s *Store) FetchEvents(ctx context.Context) ([]Event, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("eventstore: begin fetch events: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, fetchEventsSQL)
	if err != nil {
		return nil, fmt.Errorf("eventstore: fetch events: %w", err)
	}
	defer rows.Close()

	var result []Event
	for rows.Next() {
		var ev Event
		var kind string
		var price int32
		if err := rows.Scan(&ev.BookID, &kind, &ev.ExternalID, &ev.OldID, &ev.NewID, &price, &ev.Qty); err != nil {
			return nil, fmt.Errorf("eventstore: scan event: %w", err)
		}
		ev.Kind = Kind(kind)
		ev.SignedPrice = price
		ev.NewPriceMagnitude = uint32(price)
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eventstore: iterate events: %w", err)
	}
	return result, tx.Commit()
}

// PersistSnapshot bulk-writes one point-in-time book snapshot tagged
// with runID, grounded on PersistDeals's batch-COPY pattern (its
// post-hoc "blocked size" update has no analogue here: this engine
// maintains resting interest, it does not execute trades against it).
func (s *Store) PersistSnapshot(ctx context.Context, runID uuid.UUID, rows []SnapshotRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("eventstore: begin persist snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("lob_book_snapshots",
		"run_id", "book_id", "side", "price", "qty"))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("eventstore: prepare snapshot copy-in: %w", err)
	}

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, runID, r.BookID, r.Side, r.Price, r.Qty); err != nil {
			tx.Rollback()
			return fmt.Errorf("eventstore: copy-in snapshot row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		tx.Rollback()
		return fmt.Errorf("eventstore: flush snapshot copy-in: %w", err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("eventstore: close snapshot copy-in: %w", err)
	}

	s.log.Info("book snapshot persisted", zap.String("run_id", runID.String()), zap.Int("rows", len(rows)))
	return tx.Commit()
}
