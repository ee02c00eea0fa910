package repositories

import (
	"database/sql"
	"fmt"

	"ispark/internal/models"
)

type NewsRepository interface {
	Create(news *models.News) error
	GetByID(id int64) (*models.News, error)
	List(limit int) ([]*models.News, error)
	Update(news *models.News) error
	Delete(id int64) error
}

type newsRepository struct {
	DB *sql.DB
}

func NewNewsRepository(db *sql.DB) NewsRepository {
	return &newsRepository{DB: db}
}

func (r *newsRepository) Create(news *models.News) error {
	const q = `
		INSERT INTO news (title, text, image_path, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, news.Title, news.Text, news.ImagePath).
		Scan(&news.ID, &news.CreatedAt); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

func (r *newsRepository) GetByID(id int64) (*models.News, error) {
	const q = `SELECT id, title, text, COALESCE(image_path, ''), created_at FROM news WHERE id = $1`
	var n models.News
	if err := r.DB.QueryRow(q, id).Scan(&n.ID, &n.Title, &n.Text, &n.ImagePath, &n.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get news: %w", err)
	}
	return &n, nil
}

func (r *newsRepository) List(limit int) ([]*models.News, error) {
	const q = `
		SELECT id, title, text, COALESCE(image_path, ''), created_at
		FROM news
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	var items []*models.News
	for rows.Next() {
		var n models.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.ImagePath, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}

func (r *newsRepository) Update(news *models.News) error {
	const q = `UPDATE news SET title = $1, text = $2, image_path = $3 WHERE id = $4`
	if _, err := r.DB.Exec(q, news.Title, news.Text, news.ImagePath, news.ID); err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	return nil
}

func (r *newsRepository) Delete(id int64) error {
	if _, err := r.DB.Exec(`DELETE FROM news WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	return nil
}
