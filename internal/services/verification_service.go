package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ispark/internal/models"
	"ispark/internal/repositories"
	"ispark/internal/sms"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("account already exists")
	ErrBadCode  = errors.New("invalid or expired code")
	ErrDispatch = errors.New("sms dispatch failed")
)

// На номер живёт один код, срок жизни — 300 секунд с момента выдачи.
const defaultCodeTTL = 300 * time.Second

type VerificationService struct {
	Codes repositories.VerificationCodeRepository
	Users repositories.UserRepository
	SMS   sms.Sender
	Auth  AuthService

	CodeTTL time.Duration // если 0 — возьмём defaultCodeTTL
	Now     func() time.Time
}

func NewVerificationService(
	codes repositories.VerificationCodeRepository,
	users repositories.UserRepository,
	sender sms.Sender,
	auth AuthService,
) *VerificationService {
	return &VerificationService{
		Codes:   codes,
		Users:   users,
		SMS:     sender,
		Auth:    auth,
		CodeTTL: defaultCodeTTL,
		Now:     time.Now,
	}
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *VerificationService) ttl() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return defaultCodeTTL
}

// --- утилита генерации 6-значного кода ---
func (s *VerificationService) generateCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return fmt.Sprintf("%06d", rnd.Intn(1000000))
}

// IssueCode — гасит предыдущий код для номера (без льготного периода)
// и сохраняет новый с текущим временем.
func (s *VerificationService) IssueCode(phone string) (string, error) {
	if err := s.Codes.DeleteByPhone(phone); err != nil {
		return "", err
	}
	code := s.generateCode()
	rec := &models.VerificationCode{
		PhoneNumber: phone,
		Code:        code,
		CreatedAt:   s.now(),
	}
	if err := s.Codes.Create(rec); err != nil {
		return "", err
	}
	return code, nil
}

// ValidateCode — fail-closed: нет строки, код не совпал или просрочен → false.
// Гашение кода здесь НЕ происходит, его делает вызывающий поток.
func (s *VerificationService) ValidateCode(phone, submitted string) (bool, error) {
	rec, err := s.Codes.GetByPhone(phone)
	if err != nil {
		return false, err
	}
	if rec == nil || rec.Code != submitted {
		return false, nil
	}
	if s.now().Sub(rec.CreatedAt) > s.ttl() {
		return false, nil
	}
	return true, nil
}

// RequestRegisterCode — шаг 1 регистрации: номер должен быть свободен.
func (s *VerificationService) RequestRegisterCode(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	exists, err := s.Users.ExistsByPhone(phone)
	if err != nil {
		return err
	}
	if exists {
		return ErrConflict
	}
	return s.issueAndDispatch(phone)
}

// RequestResetCode — шаг 1 сброса пароля: аккаунт обязан существовать.
func (s *VerificationService) RequestResetCode(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	user, err := s.Users.GetByPhone(phone)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return s.issueAndDispatch(phone)
}

func (s *VerificationService) issueAndDispatch(phone string) error {
	code, err := s.IssueCode(phone)
	if err != nil {
		return err
	}
	// Ретраев нет: одна неудачная отправка сразу уходит вызывающему
	// вместе с текстом провайдера.
	msgID, err := s.SMS.Send(phone, code)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDispatch, err)
	}
	log.Printf("[verify][send] ok: phone=%s messageID=%s", phone, msgID)
	return nil
}

// VerifyAndRegister — шаг 2 регистрации. Код гасится ДО создания аккаунта:
// провалившаяся мутация не оставляет повторно используемый код.
func (s *VerificationService) VerifyAndRegister(phone, code, fullName, password string) (*models.User, error) {
	ok, err := s.ValidateCode(phone, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBadCode
	}
	if err := s.Codes.DeleteByPhone(phone); err != nil {
		return nil, err
	}

	// повторная проверка: аккаунт мог появиться, пока код был на руках
	exists, err := s.Users.ExistsByPhone(phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := s.Auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		PhoneNumber:  phone,
		FullName:     fullName,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	log.Printf("[verify][register] ok: user_id=%d phone=%s", user.ID, phone)
	return user, nil
}

// ConfirmReset — шаг 2 сброса пароля, код гасится до записи нового хэша.
func (s *VerificationService) ConfirmReset(phone, code, newPassword string) error {
	user, err := s.Users.GetByPhone(phone)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	ok, err := s.ValidateCode(phone, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadCode
	}
	if err := s.Codes.DeleteByPhone(phone); err != nil {
		return err
	}

	hash, err := s.Auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[verify][reset] ok: user_id=%d phone=%s", user.ID, phone)
	return nil
}
