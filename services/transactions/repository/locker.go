package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
)

const lockerColumns = `id, number, type, status, device_token, control_pin, last_opened_by, updated_at`

// GetLocker retrieves a locker by ID
func (r *TransactionRepo) GetLocker(ctx context.Context, id uuid.UUID) (*models.Locker, error) {
	query := `SELECT ` + lockerColumns + ` FROM lockers WHERE id = $1`

	var locker models.Locker
	if err := r.db.GetContext(ctx, &locker, query, id); err != nil {
		return nil, notFound(err, "locker")
	}
	return &locker, nil
}

// UpsertLocker registers a locker by number, refreshing its device binding but keeping occupancy
func (r *TransactionRepo) UpsertLocker(ctx context.Context, locker *models.Locker) error {
	if locker.ID == uuid.Nil {
		locker.ID = uuid.New()
	}
	if locker.Status == "" {
		locker.Status = models.LockerStatusAvailable
	}

	query := `
		INSERT INTO lockers (id, number, type, status, device_token, control_pin, updated_at)
		VALUES (:id, :number, :type, :status, :device_token, :control_pin, NOW())
		ON CONFLICT (number) DO UPDATE SET
			type = EXCLUDED.type,
			device_token = EXCLUDED.device_token,
			control_pin = EXCLUDED.control_pin,
			updated_at = NOW()
	`
	if _, err := r.db.NamedExecContext(ctx, query, locker); err != nil {
		return fmt.Errorf("failed to upsert locker %s: %w", locker.Number, err)
	}
	return nil
}
