// Package eventstore persists the inbound lob event stream and periodic
// book snapshots to Postgres, and generates synthetic event streams for
// replay/load testing. Adapted from the quantcup engine's db.go
// (ResetSchema, FillTestData, FetchOrders, PersistDeals), with the
// schema redrawn around book-maintenance events instead of resting
// orders that get matched: this engine never produces deals.
package eventstore

import (
	"context"
	"fmt"
)

const schemaDDL = `
	DROP TYPE IF EXISTS lob_event_kind CASCADE;
	CREATE TYPE lob_event_kind AS ENUM ('add', 'reduce', 'execute', 'delete', 'replace');

	DROP TABLE IF EXISTS lob_events CASCADE;
	CREATE TABLE lob_events (
		seq          bigserial primary key,
		book_id      integer not null,
		kind         lob_event_kind not null,
		external_id  bigint,
		old_id       bigint,
		new_id       bigint,
		signed_price integer,
		qty          bigint
	) with (fillfactor=90);

	DROP TABLE IF EXISTS lob_book_snapshots CASCADE;
	CREATE TABLE lob_book_snapshots (
		id         bigserial primary key,
		run_id     uuid not null,
		book_id    integer not null,
		side       varchar(8) not null,
		price      integer not null,
		qty        bigint not null,
		captured_at timestamptz not null default now()
	);
`

// ResetSchema drops and recreates the event log and snapshot tables.
func (s *Store) ResetSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("eventstore: reset schema: %w", err)
	}
	s.log.Info("event store schema reset")
	return nil
}
