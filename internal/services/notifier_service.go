package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"ispark/internal/models"
	"ispark/internal/push"
	"ispark/internal/repositories"
)

// StatusNotifier — хук «статус заявки изменился», дергается слоем
// сохранения после успешной записи.
type StatusNotifier interface {
	OnStatusChanged(report *models.Report, oldStatus string)
}

type NotifierService struct {
	Devices repositories.DeviceRepository
	Push    push.Sender
}

func NewNotifierService(devices repositories.DeviceRepository, sender push.Sender) *NotifierService {
	return &NotifierService{Devices: devices, Push: sender}
}

// OnStatusChanged — push владельцу заявки при переходе в терминальный статус.
// Любая ошибка доставки логируется и глотается: сохранение статуса она
// откатить не должна.
func (n *NotifierService) OnStatusChanged(report *models.Report, oldStatus string) {
	if n == nil || report == nil {
		return
	}
	if oldStatus == report.Status {
		return
	}

	var (
		title string
		body  string
		data  map[string]string
	)
	switch report.Status {
	case models.ReportStatusDone:
		title = "Заявка выполнена"
		body = fmt.Sprintf("Ваша заявка отработана. ID: %d", report.ID)
		data = map[string]string{"id": strconv.FormatInt(report.ID, 10)}
	case models.ReportStatusFail:
		title = "Заявка отклонена"
		errorCode := "Не указан"
		if report.ErrorCode != nil && *report.ErrorCode != "" {
			errorCode = *report.ErrorCode
		}
		errorText := "Не указана"
		if report.ErrorText != nil && *report.ErrorText != "" {
			errorText = *report.ErrorText
		}
		body = fmt.Sprintf("Ваша заявка отклонена. ID: %d, Код: %s, Ошибка: %s", report.ID, errorCode, errorText)
		data = map[string]string{
			"id":         strconv.FormatInt(report.ID, 10),
			"error_code": errorCode,
			"error_text": errorText,
		}
	default:
		return
	}

	tokens, err := n.Devices.ListTokensByUser(report.UserID)
	if err != nil {
		log.Printf("[notify][err] list tokens failed: user_id=%d err=%v", report.UserID, err)
		return
	}
	if len(tokens) == 0 {
		// нет устройств — молча пропускаем, это не ошибка
		log.Printf("[notify][skip] no devices: user_id=%d report_id=%d", report.UserID, report.ID)
		return
	}
	if n.Push == nil {
		log.Printf("[notify][skip] push sender is nil: report_id=%d", report.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	success, failure, err := n.Push.SendMulticast(ctx, tokens, title, body, data)
	if err != nil {
		log.Printf("[notify][err] multicast failed: user_id=%d report_id=%d err=%v", report.UserID, report.ID, err)
		return
	}
	log.Printf("[notify][send] user_id=%d report_id=%d success=%d failure=%d", report.UserID, report.ID, success, failure)
}
