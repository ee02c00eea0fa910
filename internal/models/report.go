package models

import "time"

// Статусы заявки. Done/Fail — терминальные, по ним уходит push.
const (
	ReportStatusWaiting = "Waiting"
	ReportStatusDone    = "Done"
	ReportStatusFail    = "Fail"
)

type Report struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	City        string    `json:"city"`
	Street      string    `json:"street"`
	Description string    `json:"description"`
	VideoPath   string    `json:"video_file,omitempty"`
	WasAtDate   string    `json:"was_at_date"`
	WasAtTime   string    `json:"was_at_time"`
	Status      string    `json:"status"`
	ErrorCode   *string   `json:"error_code,omitempty"`
	ErrorText   *string   `json:"error_text,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
