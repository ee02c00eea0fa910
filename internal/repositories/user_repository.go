package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"ispark/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	ExistsByPhone(phone string) (bool, error)
	UpdatePassword(userID int64, passwordHash string) error

	// refresh helpers
	UpdateRefresh(userID int64, token string, expiresAt time.Time) error
	GetByRefreshToken(token string) (*models.User, error)
	ClearRefresh(userID int64) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, phone_number, full_name, password_hash,
	is_active, is_staff, is_superuser,
	refresh_token, refresh_expires_at, created_at
`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (phone_number, full_name, password_hash, is_active, is_staff, is_superuser, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.PhoneNumber, user.FullName, user.PasswordHash,
		user.IsActive, user.IsStaff, user.IsSuperuser,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		rt  sql.NullString
		rte sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.PhoneNumber, &u.FullName, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser,
		&rt, &rte, &u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if rt.Valid {
		u.RefreshToken = &rt.String
	}
	if rte.Valid {
		u.RefreshExpiresAt = &rte.Time
	}
	return u, nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.scanUser(r.DB.QueryRow(q, phone))
}

func (r *userRepository) ExistsByPhone(phone string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE phone_number = $1)`
	var exists bool
	if err := r.DB.QueryRow(q, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by phone: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UpdatePassword(userID int64, passwordHash string) error {
	if _, err := r.DB.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateRefresh(userID int64, token string, expiresAt time.Time) error {
	const q = `UPDATE users SET refresh_token = $1, refresh_expires_at = $2 WHERE id = $3`
	if _, err := r.DB.Exec(q, token, expiresAt, userID); err != nil {
		return fmt.Errorf("update refresh: %w", err)
	}
	return nil
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE refresh_token = $1`
	return r.scanUser(r.DB.QueryRow(q, token))
}

func (r *userRepository) ClearRefresh(userID int64) error {
	const q = `UPDATE users SET refresh_token = NULL, refresh_expires_at = NULL WHERE id = $1`
	if _, err := r.DB.Exec(q, userID); err != nil {
		return fmt.Errorf("clear refresh: %w", err)
	}
	return nil
}
