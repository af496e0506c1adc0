package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
)

// donationStore implements driven.DonationStore.
type donationStore struct {
	store *Store
}

var _ driven.DonationStore = (*donationStore)(nil)

// Save stores or replaces a donation.
func (s *donationStore) Save(ctx context.Context, d domain.Donation) error {
	if d.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO donations (id, key, session_id, platform, payload, payload_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			key = excluded.key,
			session_id = excluded.session_id,
			platform = excluded.platform,
			payload = excluded.payload,
			payload_bytes = excluded.payload_bytes,
			created_at = excluded.created_at
	`, d.ID, d.Key, d.SessionID, d.Platform, d.Payload, len(d.Payload), d.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving donation: %w", err)
	}
	return nil
}

// Get retrieves a donation by ID.
func (s *donationStore) Get(ctx context.Context, id string) (*domain.Donation, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, key, session_id, platform, payload, created_at
		FROM donations WHERE id = ?
	`, id)
	d, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning donation: %w", err)
	}
	return d, nil
}

// List returns donations ordered by creation time.
func (s *donationStore) List(ctx context.Context, sessionID string) ([]domain.Donation, error) {
	query := `SELECT id, key, session_id, platform, payload, created_at FROM donations`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at, key`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing donations: %w", err)
	}
	defer rows.Close()

	result := []domain.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning donation: %w", err)
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

// Delete removes a donation.
func (s *donationStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM donations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting donation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting donation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDonation(row scanner) (*domain.Donation, error) {
	var d domain.Donation
	var createdAt sql.NullTime
	if err := row.Scan(&d.ID, &d.Key, &d.SessionID, &d.Platform, &d.Payload, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		d.CreatedAt = createdAt.Time.UTC()
	}
	return &d, nil
}
