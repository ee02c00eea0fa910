package models

import "time"

// VerificationCode — одноразовый код, ключ — номер телефона.
// На номер живёт максимум одна запись: новая отправка затирает старую.
type VerificationCode struct {
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
