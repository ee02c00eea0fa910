package repositories

import (
	"database/sql"
	"fmt"

	"ispark/internal/models"
)

type DeviceRepository interface {
	Upsert(device *models.Device) error
	ListTokensByUser(userID int64) ([]string, error)
}

type deviceRepository struct {
	DB *sql.DB
}

func NewDeviceRepository(db *sql.DB) DeviceRepository {
	return &deviceRepository{DB: db}
}

// Upsert — повторная регистрация того же токена обновляет тип, не плодит строк.
func (r *deviceRepository) Upsert(device *models.Device) error {
	const q = `
		INSERT INTO devices (user_id, registration_id, type, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, registration_id)
		DO UPDATE SET type = EXCLUDED.type
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, device.UserID, device.RegistrationID, device.Type).
		Scan(&device.ID, &device.CreatedAt); err != nil {
		return fmt.Errorf("upsert device: %w", err)
	}
	return nil
}

func (r *deviceRepository) ListTokensByUser(userID int64) ([]string, error) {
	const q = `
		SELECT registration_id FROM devices
		WHERE user_id = $1 AND registration_id <> ''
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
