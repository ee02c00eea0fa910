package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ispark/internal/models"
)

func strPtr(s string) *string { return &s }

func reportFixture(id, userID int64, status string) *models.Report {
	return &models.Report{
		ID:          id,
		UserID:      userID,
		City:        "Алматы",
		Street:      "Абая 10",
		Description: "не работает светофор",
		Status:      status,
	}
}

func TestNotifier_DoneSendsPush(t *testing.T) {
	devices := newFakeDeviceRepo()
	devices.tokens[7] = []string{"tok-a", "tok-b"}
	sender := &fakePush{}
	n := NewNotifierService(devices, sender)

	rep := reportFixture(42, 7, models.ReportStatusDone)
	n.OnStatusChanged(rep, models.ReportStatusWaiting)

	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, []string{"tok-a", "tok-b"}, call.Tokens)
	assert.Equal(t, "Заявка выполнена", call.Title)
	assert.Equal(t, "Ваша заявка отработана. ID: 42", call.Body)
	assert.Equal(t, map[string]string{"id": "42"}, call.Data)
}

func TestNotifier_SameStatusIsNoop(t *testing.T) {
	devices := newFakeDeviceRepo()
	devices.tokens[7] = []string{"tok-a"}
	sender := &fakePush{}
	n := NewNotifierService(devices, sender)

	rep := reportFixture(42, 7, models.ReportStatusDone)
	n.OnStatusChanged(rep, models.ReportStatusDone)

	assert.Empty(t, sender.calls)
}

func TestNotifier_FailWithDetails(t *testing.T) {
	devices := newFakeDeviceRepo()
	devices.tokens[3] = []string{"tok-x"}
	sender := &fakePush{}
	n := NewNotifierService(devices, sender)

	rep := reportFixture(17, 3, models.ReportStatusFail)
	rep.ErrorCode = strPtr("E42")
	rep.ErrorText = strPtr("Видео не читается")
	n.OnStatusChanged(rep, models.ReportStatusWaiting)

	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, "Заявка отклонена", call.Title)
	assert.Equal(t, "Ваша заявка отклонена. ID: 17, Код: E42, Ошибка: Видео не читается", call.Body)
	assert.Equal(t, map[string]string{
		"id":         "17",
		"error_code": "E42",
		"error_text": "Видео не читается",
	}, call.Data)
}

func TestNotifier_FailWithoutDetailsUsesDefaults(t *testing.T) {
	devices := newFakeDeviceRepo()
	devices.tokens[3] = []string{"tok-x"}
	sender := &fakePush{}
	n := NewNotifierService(devices, sender)

	rep := reportFixture(18, 3, models.ReportStatusFail)
	n.OnStatusChanged(rep, models.ReportStatusWaiting)

	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, "Ваша заявка отклонена. ID: 18, Код: Не указан, Ошибка: Не указана", call.Body)
	assert.Equal(t, "Не указан", call.Data["error_code"])
	assert.Equal(t, "Не указана", call.Data["error_text"])
}

func TestNotifier_NoDevicesSkips(t *testing.T) {
	devices := newFakeDeviceRepo()
	sender := &fakePush{}
	n := NewNotifierService(devices, sender)

	rep := reportFixture(5, 99, models.ReportStatusDone)
	n.OnStatusChanged(rep, models.ReportStatusWaiting)

	assert.Empty(t, sender.calls)
}

func TestNotifier_NonTerminalStatusSkips(t *testing.T) {
	devices := newFakeDeviceRepo()
	devices.tokens[1] = []string{"tok"}
	sender := &fakePush{}
	n := NewNotifierService(devices, sender)

	rep := reportFixture(6, 1, models.ReportStatusWaiting)
	n.OnStatusChanged(rep, "Something")

	assert.Empty(t, sender.calls)
}

func TestNotifier_ErrorsAreSwallowed(t *testing.T) {
	devices := newFakeDeviceRepo()
	devices.tokens[1] = []string{"tok"}
	sender := &fakePush{err: errors.New("fcm unavailable")}
	n := NewNotifierService(devices, sender)

	rep := reportFixture(9, 1, models.ReportStatusDone)
	// не должно паниковать и не должно возвращать ошибку наружу
	n.OnStatusChanged(rep, models.ReportStatusWaiting)

	devices.err = errors.New("db down")
	n.OnStatusChanged(rep, models.ReportStatusWaiting)
}
