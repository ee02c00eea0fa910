package repositories

import (
	"database/sql"
	"fmt"

	"ispark/internal/models"
)

// VerificationCodeRepository — хранилище одноразовых кодов, ключ — телефон.
//
// NB: пара Validate+Delete в сервисе НЕ атомарна: двум параллельным запросам
// на один номер может повезти пройти проверку по одной строке. Гонка принята
// осознанно — последующая проверка уникальности аккаунта закрывает исход.
type VerificationCodeRepository interface {
	Create(code *models.VerificationCode) error
	GetByPhone(phone string) (*models.VerificationCode, error)
	DeleteByPhone(phone string) error
}

type verificationCodeRepository struct {
	DB *sql.DB
}

func NewVerificationCodeRepository(db *sql.DB) VerificationCodeRepository {
	return &verificationCodeRepository{DB: db}
}

func (r *verificationCodeRepository) Create(code *models.VerificationCode) error {
	const q = `
		INSERT INTO verification_codes (phone_number, code, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.DB.Exec(q, code.PhoneNumber, code.Code, code.CreatedAt); err != nil {
		return fmt.Errorf("create verification code: %w", err)
	}
	return nil
}

func (r *verificationCodeRepository) GetByPhone(phone string) (*models.VerificationCode, error) {
	const q = `
		SELECT phone_number, code, created_at
		FROM verification_codes
		WHERE phone_number = $1
	`
	row := r.DB.QueryRow(q, phone)

	var vc models.VerificationCode
	if err := row.Scan(&vc.PhoneNumber, &vc.Code, &vc.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get verification code: %w", err)
	}
	return &vc, nil
}

func (r *verificationCodeRepository) DeleteByPhone(phone string) error {
	if _, err := r.DB.Exec(`DELETE FROM verification_codes WHERE phone_number = $1`, phone); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}
