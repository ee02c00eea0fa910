package models

import "time"

type User struct {
	ID           int64  `json:"id"`
	PhoneNumber  string `json:"phone_number"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"-"` // не отдаём наружу

	IsActive    bool `json:"is_active"`
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"-"`

	// refresh-хранение в БД
	RefreshToken     *string    `json:"-"` // храним opaque строку
	RefreshExpiresAt *time.Time `json:"-"` // срок действия

	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}
