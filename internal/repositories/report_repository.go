package repositories

import (
	"database/sql"
	"fmt"

	"ispark/internal/models"
)

type ReportRepository interface {
	Create(report *models.Report) error
	GetByID(id int64) (*models.Report, error)
	ListByUser(userID int64, limit int) ([]*models.Report, error)
	ListAll(limit int) ([]*models.Report, error)
	UpdateStatus(id int64, status string, errorCode, errorText *string) error
}

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{DB: db}
}

const reportColumns = `
	id, user_id, city, street, description, video_path,
	was_at_date, was_at_time, status, error_code, error_text, uploaded_at
`

func (r *reportRepository) Create(report *models.Report) error {
	const q = `
		INSERT INTO reports (user_id, city, street, description, video_path, was_at_date, was_at_time, status, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, uploaded_at
	`
	if err := r.DB.QueryRow(q,
		report.UserID, report.City, report.Street, report.Description, report.VideoPath,
		report.WasAtDate, report.WasAtTime, report.Status,
	).Scan(&report.ID, &report.UploadedAt); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func scanReport(scan func(dest ...any) error) (*models.Report, error) {
	var (
		rep       models.Report
		video     sql.NullString
		errCode   sql.NullString
		errText   sql.NullString
	)
	if err := scan(
		&rep.ID, &rep.UserID, &rep.City, &rep.Street, &rep.Description, &video,
		&rep.WasAtDate, &rep.WasAtTime, &rep.Status, &errCode, &errText, &rep.UploadedAt,
	); err != nil {
		return nil, err
	}
	rep.VideoPath = video.String
	if errCode.Valid {
		rep.ErrorCode = &errCode.String
	}
	if errText.Valid {
		rep.ErrorText = &errText.String
	}
	return &rep, nil
}

func (r *reportRepository) GetByID(id int64) (*models.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	rep, err := scanReport(r.DB.QueryRow(q, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

func (r *reportRepository) list(q string, args ...any) ([]*models.Report, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		rep, err := scanReport(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *reportRepository) ListByUser(userID int64, limit int) ([]*models.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports WHERE user_id = $1 ORDER BY uploaded_at DESC LIMIT $2`
	return r.list(q, userID, limit)
}

func (r *reportRepository) ListAll(limit int) ([]*models.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports ORDER BY uploaded_at DESC LIMIT $1`
	return r.list(q, limit)
}

func (r *reportRepository) UpdateStatus(id int64, status string, errorCode, errorText *string) error {
	const q = `
		UPDATE reports
		SET status = $1, error_code = $2, error_text = $3
		WHERE id = $4
	`
	if _, err := r.DB.Exec(q, status, errorCode, errorText, id); err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	return nil
}
