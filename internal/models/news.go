package models

import "time"

type News struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	ImagePath string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
