package repository

import (
	"context"

	"github.com/Domenick1991/inflight/internal/domain"
)

type BottleEventRepository interface {
	Create(ctx context.Context, event *domain.BottleEvent) error
}

type PGBottleEventRepository struct {
	db Querier
}

func NewBottleEventRepository(db Querier) BottleEventRepository {
	return &PGBottleEventRepository{db: db}
}

// Create appends an event row; the id and created_at are assigned by the database.
func (r *PGBottleEventRepository) Create(ctx context.Context, event *domain.BottleEvent) error {
	row := r.db.QueryRow(ctx, `INSERT INTO bottle_events (bottle_id, flight_id, user_id, event_type, amount_ml, pct_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, created_at`,
		event.BottleID, event.FlightID, event.UserID, string(event.EventType), event.AmountML, event.PctAfter)
	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		return mapError(err, "insert bottle event")
	}
	return nil
}

var _ BottleEventRepository = (*PGBottleEventRepository)(nil)
