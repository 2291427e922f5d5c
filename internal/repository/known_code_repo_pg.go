package repository

import (
	"context"

	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/georgysavva/scany/v2/pgxscan"
)

type KnownCodeRepository interface {
	Exists(ctx context.Context, qrURL string) (bool, error)
	ExistingAmong(ctx context.Context, qrURLs []string) (map[string]struct{}, error)
	List(ctx context.Context) ([]domain.KnownCode, error)
}

type PGKnownCodeRepository struct {
	db Querier
}

func NewKnownCodeRepository(db Querier) KnownCodeRepository {
	return &PGKnownCodeRepository{db: db}
}

// Exists reports an exact, case-sensitive match on qr_url.
func (r *PGKnownCodeRepository) Exists(ctx context.Context, qrURL string) (bool, error) {
	rows, err := r.db.Query(ctx, `SELECT qr_url FROM known_qr_codes WHERE qr_url = $1 LIMIT 1`, qrURL)
	if err != nil {
		return false, mapError(err, "lookup known qr code")
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, mapError(err, "lookup known qr code")
	}
	return found, nil
}

func (r *PGKnownCodeRepository) ExistingAmong(ctx context.Context, qrURLs []string) (map[string]struct{}, error) {
	known := make(map[string]struct{}, len(qrURLs))
	if len(qrURLs) == 0 {
		return known, nil
	}

	rows, err := r.db.Query(ctx, `SELECT qr_url FROM known_qr_codes WHERE qr_url = ANY($1)`, qrURLs)
	if err != nil {
		return nil, mapError(err, "lookup known qr codes")
	}
	defer rows.Close()

	for rows.Next() {
		var qr string
		if err := rows.Scan(&qr); err != nil {
			return nil, mapError(err, "scan known qr code")
		}
		known[qr] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "lookup known qr codes")
	}
	return known, nil
}

func (r *PGKnownCodeRepository) List(ctx context.Context) ([]domain.KnownCode, error) {
	codes := make([]domain.KnownCode, 0)
	err := pgxscan.Select(ctx, r.db, &codes, `SELECT id, COALESCE(beverage_name, '') AS beverage_name, qr_url, created_at, updated_at
		FROM known_qr_codes
		ORDER BY beverage_name`)
	if err != nil {
		return nil, mapError(err, "list known qr codes")
	}
	return codes, nil
}

var _ KnownCodeRepository = (*PGKnownCodeRepository)(nil)
