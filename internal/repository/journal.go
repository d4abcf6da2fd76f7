package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"driverhub/internal/domain"
)

// JournalRepo persists the session's deliveries as a write-through
// journal. The in-memory registry stays authoritative; this table only
// survives restarts and feeds the session restore.
type JournalRepo struct {
	db *pgxpool.Pool
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(db *pgxpool.Pool) *JournalRepo {
	return &JournalRepo{db: db}
}

// InsertDelivery journals a newly accepted delivery. Duplicate
// identifiers are ignored, mirroring the registry's idempotent add.
func (r *JournalRepo) InsertDelivery(ctx context.Context, d domain.Delivery) error {
	var batchID *string
	var batchStop, batchTotal *int
	if d.Batch != nil {
		batchID = &d.Batch.ID
		batchStop = &d.Batch.Stop
		batchTotal = &d.Batch.TotalStops
	}

	_, err := r.db.Exec(ctx, `
        INSERT INTO driver_deliveries (
            id, order_id, customer, phone, pickup, dropoff,
            delivery_window, distance_km, instructions, status,
            accepted_at, batch_id, batch_stop, batch_total
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        ON CONFLICT (id) DO NOTHING
    `, d.ID, d.OrderID, d.Customer, d.Phone, d.Pickup, d.Dropoff,
		d.Window, d.DistanceKM, d.Instructions, string(d.Status),
		d.AcceptedAt, batchID, batchStop, batchTotal)
	if err != nil {
		return fmt.Errorf("insert delivery %q: %w", d.ID, err)
	}
	return nil
}

// UpdateStatus journals a status change.
func (r *JournalRepo) UpdateStatus(ctx context.Context, id string, status domain.DeliveryStatus) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE driver_deliveries
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, id, string(status))
	if err != nil {
		return fmt.Errorf("update delivery status %q: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %q not journaled", id)
	}
	return nil
}

// ListActive returns journaled deliveries that have not reached a
// terminal status, in acceptance order.
func (r *JournalRepo) ListActive(ctx context.Context) ([]domain.Delivery, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, customer, phone, pickup, dropoff,
               delivery_window, distance_km, instructions, status,
               accepted_at, batch_id, batch_stop, batch_total
        FROM driver_deliveries
        WHERE status NOT IN ('delivered', 'failed', 'cancelled')
        ORDER BY accepted_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("list active deliveries: %w", err)
	}
	defer rows.Close()

	var out []domain.Delivery
	for rows.Next() {
		var d domain.Delivery
		var status string
		var batchID *string
		var batchStop, batchTotal *int
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.Customer, &d.Phone, &d.Pickup, &d.Dropoff,
			&d.Window, &d.DistanceKM, &d.Instructions, &status,
			&d.AcceptedAt, &batchID, &batchStop, &batchTotal,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.Status = domain.DeliveryStatus(status)
		if batchID != nil {
			b := domain.BatchRef{ID: *batchID}
			if batchStop != nil {
				b.Stop = *batchStop
			}
			if batchTotal != nil {
				b.TotalStops = *batchTotal
			}
			d.Batch = &b
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active deliveries: %w", err)
	}
	return out, nil
}
