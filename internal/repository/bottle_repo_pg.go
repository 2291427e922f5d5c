package repository

import (
	"context"

	"github.com/Domenick1991/inflight/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

type BottleRepository interface {
	FindByQR(ctx context.Context, qrURL string) (*domain.BottleSnapshot, error)
	FindByQRs(ctx context.Context, qrURLs []string) (map[string]domain.BottleSnapshot, error)
	ListQRReferences(ctx context.Context, filter domain.QRReferenceFilter) ([]domain.QRCodeReference, error)
}

type PGBottleRepository struct {
	db Querier
}

func NewBottleRepository(db Querier) BottleRepository {
	return &PGBottleRepository{db: db}
}

const bottleSnapshotSelect = `SELECT bi.id, bi.qr_url, i.name, a.name, bi.current_pct, bi.status, COALESCE(bi.batch_code, '')
	FROM bottle_instances bi
	JOIN items i ON bi.beverage_item_id = i.id
	JOIN airlines a ON bi.airline_id = a.id`

func (r *PGBottleRepository) FindByQR(ctx context.Context, qrURL string) (*domain.BottleSnapshot, error) {
	row := r.db.QueryRow(ctx, bottleSnapshotSelect+` WHERE bi.qr_url = $1 LIMIT 1`, qrURL)
	var b domain.BottleSnapshot
	if err := row.Scan(&b.BottleID, &b.QRURL, &b.ItemName, &b.AirlineName, &b.CurrentPct, &b.Status, &b.BatchCode); err != nil {
		return nil, mapError(err, "find bottle by qr")
	}
	return &b, nil
}

func (r *PGBottleRepository) FindByQRs(ctx context.Context, qrURLs []string) (map[string]domain.BottleSnapshot, error) {
	bottles := make(map[string]domain.BottleSnapshot, len(qrURLs))
	if len(qrURLs) == 0 {
		return bottles, nil
	}

	rows, err := r.db.Query(ctx, bottleSnapshotSelect+` WHERE bi.qr_url = ANY($1)`, qrURLs)
	if err != nil {
		return nil, mapError(err, "find bottles by qr")
	}
	defer rows.Close()

	for rows.Next() {
		var b domain.BottleSnapshot
		if err := rows.Scan(&b.BottleID, &b.QRURL, &b.ItemName, &b.AirlineName, &b.CurrentPct, &b.Status, &b.BatchCode); err != nil {
			return nil, mapError(err, "scan bottle")
		}
		bottles[b.QRURL] = b
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "find bottles by qr")
	}
	return bottles, nil
}

func (r *PGBottleRepository) ListQRReferences(ctx context.Context, filter domain.QRReferenceFilter) ([]domain.QRCodeReference, error) {
	query := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"bi.id AS bottle_id",
			"bi.qr_url",
			"bi.qr_code",
			"COALESCE(bi.batch_code, '') AS batch_code",
			"bi.status",
			"bi.current_pct",
			"i.name AS item_name",
			"i.id AS item_id",
			"a.name AS airline_name",
			"a.id AS airline_id",
		).
		From("bottle_instances bi").
		Join("items i ON bi.beverage_item_id = i.id").
		Join("airlines a ON bi.airline_id = a.id").
		Where("bi.qr_url IS NOT NULL")

	if filter.AirlineID != nil {
		query = query.Where(sq.Eq{"bi.airline_id": *filter.AirlineID})
	}
	if filter.Status != nil {
		query = query.Where(sq.Eq{"bi.status": string(*filter.Status)})
	}
	if filter.BeverageID != nil {
		query = query.Where(sq.Eq{"bi.beverage_item_id": *filter.BeverageID})
	}
	query = query.OrderBy("a.name", "i.name")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, mapError(err, "build qr reference query")
	}

	refs := make([]domain.QRCodeReference, 0)
	if err := pgxscan.Select(ctx, r.db, &refs, sql, args...); err != nil {
		return nil, mapError(err, "list qr references")
	}
	return refs, nil
}

var _ BottleRepository = (*PGBottleRepository)(nil)
