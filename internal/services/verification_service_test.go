package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ispark/internal/models"
)

func userFixture(phone string) *models.User {
	return &models.User{
		PhoneNumber:  phone,
		FullName:     "Тестовый Пользователь",
		PasswordHash: "$2a$10$fixture",
		IsActive:     true,
	}
}

func newTestVerification() (*VerificationService, *fakeCodeRepo, *fakeUserRepo, *fakeSMS) {
	codes := newFakeCodeRepo()
	users := newFakeUserRepo()
	sender := &fakeSMS{}
	svc := NewVerificationService(codes, users, sender, NewAuthService())
	return svc, codes, users, sender
}

func TestIssueCode_SupersedesPrevious(t *testing.T) {
	svc, codes, _, _ := newTestVerification()

	first, err := svc.IssueCode("+77001112233")
	require.NoError(t, err)

	second, err := svc.IssueCode("+77001112233")
	require.NoError(t, err)

	// на номер живёт ровно одна запись
	assert.Len(t, codes.codes, 1)

	if first != second {
		ok, err := svc.ValidateCode("+77001112233", first)
		require.NoError(t, err)
		assert.False(t, ok, "старый код должен быть погашен")
	}
	ok, err := svc.ValidateCode("+77001112233", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateCode_Expiry(t *testing.T) {
	svc, _, _, _ := newTestVerification()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	svc.Now = func() time.Time { return now }

	code, err := svc.IssueCode("+10000000001")
	require.NoError(t, err)

	// ровно на границе ещё валиден
	now = base.Add(300 * time.Second)
	ok, err := svc.ValidateCode("+10000000001", code)
	require.NoError(t, err)
	assert.True(t, ok)

	// секундой позже — уже нет
	now = base.Add(301 * time.Second)
	ok, err = svc.ValidateCode("+10000000001", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateCode_FailClosed(t *testing.T) {
	svc, _, _, _ := newTestVerification()

	// кода вообще нет
	ok, err := svc.ValidateCode("+77005556677", "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	code, err := svc.IssueCode("+77005556677")
	require.NoError(t, err)

	// не тот код
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	ok, err = svc.ValidateCode("+77005556677", wrong)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestRegisterCode(t *testing.T) {
	svc, codes, users, sender := newTestVerification()

	err := svc.RequestRegisterCode("+77009998877")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+77009998877", sender.sent[0].To)

	rec, err := codes.GetByPhone("+77009998877")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, rec.Code, sender.sent[0].Code, "в SMS уходит тот же код, что сохранён")

	// занятый номер — конфликт, SMS не уходит
	users.add(userFixture("+77001234567"))
	err = svc.RequestRegisterCode("+77001234567")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, sender.sent, 1)
}

func TestRequestRegisterCode_DispatchFailure(t *testing.T) {
	svc, _, _, sender := newTestVerification()
	sender.err = errors.New("provider says: 402 payment required")

	err := svc.RequestRegisterCode("+77000001122")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDispatch)
	assert.Contains(t, err.Error(), "402 payment required")
}

func TestRequestResetCode_RequiresAccount(t *testing.T) {
	svc, codes, users, sender := newTestVerification()

	// аккаунта нет — код не выдаётся и SMS не уходит
	err := svc.RequestResetCode("+77007770000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, codes.creates)
	assert.Empty(t, sender.sent)

	users.add(userFixture("+77007770000"))
	err = svc.RequestResetCode("+77007770000")
	require.NoError(t, err)
	assert.Len(t, sender.sent, 1)
}

func TestVerifyAndRegister(t *testing.T) {
	svc, codes, users, _ := newTestVerification()

	code, err := svc.IssueCode("+77003334455")
	require.NoError(t, err)

	user, err := svc.VerifyAndRegister("+77003334455", code, "Иван Иванов", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Иван Иванов", user.FullName)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// код одноразовый: повтор с тем же кодом проваливается
	_, err = svc.VerifyAndRegister("+77003334455", code, "Иван Иванов", "secret123")
	assert.ErrorIs(t, err, ErrBadCode)

	// и в хранилище кода больше нет
	rec, err := codes.GetByPhone("+77003334455")
	require.NoError(t, err)
	assert.Nil(t, rec)

	assert.Len(t, users.byID, 1)
}

func TestVerifyAndRegister_ConflictAfterConsume(t *testing.T) {
	svc, codes, users, _ := newTestVerification()

	code, err := svc.IssueCode("+77008880011")
	require.NoError(t, err)

	// аккаунт появился, пока код был на руках
	users.add(userFixture("+77008880011"))

	user, err := svc.VerifyAndRegister("+77008880011", code, "Кто-то", "pass12345")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, user)

	// код погашен до проверки существования — дубликата не возникло
	rec, err := codes.GetByPhone("+77008880011")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Len(t, users.byID, 1)
}

func TestConfirmReset(t *testing.T) {
	svc, codes, users, _ := newTestVerification()

	u := users.add(userFixture("+77006660099"))
	oldHash := u.PasswordHash

	code, err := svc.IssueCode("+77006660099")
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmReset("+77006660099", code, "newpass777"))
	assert.NotEqual(t, oldHash, users.byID[u.ID].PasswordHash)

	// код погашен, повторный сброс тем же кодом невозможен
	rec, err := codes.GetByPhone("+77006660099")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.ErrorIs(t, svc.ConfirmReset("+77006660099", code, "another999"), ErrBadCode)
}

func TestConfirmReset_NoAccount(t *testing.T) {
	svc, codes, _, _ := newTestVerification()

	code, err := svc.IssueCode("+77002220033")
	require.NoError(t, err)

	// аккаунта нет: ошибка уходит ДО любой работы с кодом
	deletesBefore := codes.deletes
	err = svc.ConfirmReset("+70000000000", code, "whatever1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, deletesBefore, codes.deletes)
}
