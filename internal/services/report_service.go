package services

import (
	"errors"
	"fmt"
	"log"

	"ispark/internal/models"
	"ispark/internal/repositories"
)

var ErrBadTransition = errors.New("status transition not allowed")

// Допустимые переходы статусов заявки. Done/Fail — финалки,
// выставляются бэк-офисом.
var ReportTransitions = map[string]map[string]bool{
	models.ReportStatusWaiting: {models.ReportStatusDone: true, models.ReportStatusFail: true},
	models.ReportStatusDone:    {},
	models.ReportStatusFail:    {},
}

func canTransition(current, to string) bool {
	nexts, ok := ReportTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}

type ReportService struct {
	Repo     repositories.ReportRepository
	Notifier StatusNotifier   // может быть nil
	Telegram *TelegramService // алерт бэк-офису о новой заявке, может быть nil
}

func NewReportService(repo repositories.ReportRepository, notifier StatusNotifier, telegram *TelegramService) *ReportService {
	return &ReportService{Repo: repo, Notifier: notifier, Telegram: telegram}
}

// Create — новая заявка всегда стартует в Waiting; уведомление владельцу
// при создании не уходит (нет предыдущего статуса).
func (s *ReportService) Create(report *models.Report) error {
	report.Status = models.ReportStatusWaiting
	if err := s.Repo.Create(report); err != nil {
		return err
	}

	if s.Telegram != nil {
		text := fmt.Sprintf("Новая заявка #%d: %s, %s", report.ID, report.City, report.Street)
		if err := s.Telegram.SendOpsMessage(text); err != nil {
			log.Printf("[report][create] telegram alert failed: report_id=%d err=%v", report.ID, err)
		}
	}
	return nil
}

func (s *ReportService) GetByID(id int64) (*models.Report, error) {
	rep, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrNotFound
	}
	return rep, nil
}

func (s *ReportService) ListByUser(userID int64, limit int) ([]*models.Report, error) {
	return s.Repo.ListByUser(userID, limit)
}

func (s *ReportService) ListAll(limit int) ([]*models.Report, error) {
	return s.Repo.ListAll(limit)
}

// UpdateStatus — снимаем пред-образ, пишем новый статус, после успешной
// записи зовём нотификатор. Его исход на ответ бэк-офису не влияет.
// Повторное сохранение того же статуса — no-op для уведомлений.
func (s *ReportService) UpdateStatus(id int64, newStatus string, errorCode, errorText *string) (*models.Report, error) {
	old, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, ErrNotFound
	}

	if old.Status != newStatus && !canTransition(old.Status, newStatus) {
		return nil, ErrBadTransition
	}

	if err := s.Repo.UpdateStatus(id, newStatus, errorCode, errorText); err != nil {
		return nil, err
	}

	updated := *old
	updated.Status = newStatus
	updated.ErrorCode = errorCode
	updated.ErrorText = errorText

	if s.Notifier != nil {
		s.Notifier.OnStatusChanged(&updated, old.Status)
	}
	return &updated, nil
}
