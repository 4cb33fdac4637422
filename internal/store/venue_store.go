package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/glassgovernment/legistar-sync/internal/domain"
)

func (s *PostgresStore) FindVenueByKey(ctx context.Context, canonicalKey string) (*domain.Venue, error) {
	var v domain.Venue
	err := s.pool.QueryRow(ctx, `
		SELECT id, display_name, canonical_key, created_at
		FROM venues WHERE canonical_key = $1
		ORDER BY created_at, id
		LIMIT 1
	`, canonicalKey).Scan(&v.ID, &v.DisplayName, &v.CanonicalKey, &v.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying venue by key: %w", err)
	}
	return &v, nil
}

func (s *PostgresStore) CreateVenue(ctx context.Context, displayName, canonicalKey string) (*domain.Venue, error) {
	var v domain.Venue
	err := s.pool.QueryRow(ctx, `
		INSERT INTO venues (display_name, canonical_key)
		VALUES ($1, $2)
		RETURNING id, display_name, canonical_key, created_at
	`, displayName, canonicalKey).Scan(&v.ID, &v.DisplayName, &v.CanonicalKey, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting venue: %w", err)
	}
	return &v, nil
}

func (s *PostgresStore) ReassignEventsVenue(ctx context.Context, fromVenueID, toVenueID string) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE calendar_events SET venue_id = $2, updated_at = NOW()
		WHERE venue_id = $1
	`, fromVenueID, toVenueID)
	if err != nil {
		return 0, fmt.Errorf("reassigning events from venue %s: %w", fromVenueID, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) DeleteVenue(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting venue %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAllVenues enumerates venues oldest first, so "first venue wins" in the
// deduplicator resolves to the oldest record rather than an arbitrary one.
func (s *PostgresStore) ListAllVenues(ctx context.Context) ([]domain.Venue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, display_name, canonical_key, created_at
		FROM venues ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.DisplayName, &v.CanonicalKey, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning venue: %w", err)
		}
		venues = append(venues, v)
	}
	if venues == nil {
		venues = []domain.Venue{}
	}
	return venues, rows.Err()
}
