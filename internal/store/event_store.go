package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/glassgovernment/legistar-sync/internal/domain"
)

const eventColumns = `id, COALESCE(external_id, ''), title, start_time, venue_id, source_tag, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.CalendarEvent, error) {
	var ev domain.CalendarEvent
	err := row.Scan(
		&ev.ID, &ev.ExternalID, &ev.Title, &ev.Start,
		&ev.VenueID, &ev.SourceTag, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *PostgresStore) FindEventByExternalID(ctx context.Context, externalID string) (*domain.CalendarEvent, error) {
	ev, err := scanEvent(s.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM calendar_events WHERE external_id = $1
	`, externalID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying event by external id: %w", err)
	}
	return ev, nil
}

func (s *PostgresStore) UpsertEvent(ctx context.Context, p UpsertEventParams) (*domain.CalendarEvent, error) {
	if p.ExternalID == "" {
		return nil, fmt.Errorf("upsert requires an external id")
	}

	ev, err := scanEvent(s.pool.QueryRow(ctx, `
		INSERT INTO calendar_events (external_id, title, start_time, venue_id, source_tag)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_id) WHERE external_id IS NOT NULL
		DO UPDATE SET
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			venue_id = EXCLUDED.venue_id,
			source_tag = EXCLUDED.source_tag,
			updated_at = NOW()
		RETURNING `+eventColumns+`
	`, p.ExternalID, p.Title, p.Start, p.VenueID, p.SourceTag))
	if err != nil {
		return nil, fmt.Errorf("upserting event %s: %w", p.ExternalID, err)
	}
	return ev, nil
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting event %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) ListEventsOlderThan(ctx context.Context, cutoff time.Time, managedOnly bool) ([]domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE start_time < $1`
	if managedOnly {
		query += ` AND external_id IS NOT NULL`
	}
	query += ` ORDER BY start_time`

	rows, err := s.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying old events: %w", err)
	}
	defer rows.Close()

	var events []domain.CalendarEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, *ev)
	}
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	return events, rows.Err()
}
