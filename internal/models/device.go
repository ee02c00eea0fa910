package models

import "time"

// Device — push-токен мобильного устройства.
// Пара (user_id, registration_id) уникальна, повторная регистрация
// обновляет только тип устройства.
type Device struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	RegistrationID string    `json:"registration_id"`
	Type           string    `json:"type"` // android / ios
	CreatedAt      time.Time `json:"created_at"`
}
