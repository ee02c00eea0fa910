package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ispark/internal/models"
	"ispark/internal/repositories"
	"ispark/internal/services"
)

// Мини-фейки под ручки верификации. Неиспользуемые методы интерфейсов
// закрыты встраиванием и в тестах не вызываются.

type stubCodeRepo struct {
	repositories.VerificationCodeRepository
	codes map[string]models.VerificationCode
}

func (s *stubCodeRepo) Create(code *models.VerificationCode) error {
	s.codes[code.PhoneNumber] = *code
	return nil
}

func (s *stubCodeRepo) GetByPhone(phone string) (*models.VerificationCode, error) {
	c, ok := s.codes[phone]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *stubCodeRepo) DeleteByPhone(phone string) error {
	delete(s.codes, phone)
	return nil
}

type stubUserRepo struct {
	repositories.UserRepository
	users map[string]*models.User
}

func (s *stubUserRepo) Create(user *models.User) error {
	user.ID = int64(len(s.users) + 1)
	s.users[user.PhoneNumber] = user
	return nil
}

func (s *stubUserRepo) GetByPhone(phone string) (*models.User, error) {
	return s.users[phone], nil
}

func (s *stubUserRepo) ExistsByPhone(phone string) (bool, error) {
	_, ok := s.users[phone]
	return ok, nil
}

func (s *stubUserRepo) UpdatePassword(userID int64, hash string) error {
	for _, u := range s.users {
		if u.ID == userID {
			u.PasswordHash = hash
			return nil
		}
	}
	return errors.New("user not found")
}

type stubSMS struct {
	err  error
	sent int
}

func (s *stubSMS) Send(to, code string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent++
	return "stub-msg", nil
}

func newVerifyRouter(smsErr error) (*gin.Engine, *stubCodeRepo, *stubUserRepo) {
	gin.SetMode(gin.TestMode)

	codes := &stubCodeRepo{codes: map[string]models.VerificationCode{}}
	users := &stubUserRepo{users: map[string]*models.User{}}
	svc := services.NewVerificationService(codes, users, &stubSMS{err: smsErr}, services.NewAuthService())
	h := NewVerifyHandler(svc)

	r := gin.New()
	r.POST("/send-code", h.SendCode)
	r.POST("/verify-code", h.VerifyAndRegister)
	r.POST("/password-reset/send-code", h.SendResetCode)
	r.POST("/password-reset/confirm", h.ConfirmReset)
	return r, codes, users
}

func doJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendCode_OK(t *testing.T) {
	r, codes, _ := newVerifyRouter(nil)

	w := doJSON(t, r, "/send-code", gin.H{"phone_number": "+77001112233"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, codes.codes, "+77001112233")
}

func TestSendCode_ExistingPhoneConflicts(t *testing.T) {
	r, _, users := newVerifyRouter(nil)
	users.users["+77001112233"] = &models.User{ID: 1, PhoneNumber: "+77001112233"}

	w := doJSON(t, r, "/send-code", gin.H{"phone_number": "+77001112233"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendCode_DispatchFailureSurfacesDetail(t *testing.T) {
	r, _, _ := newVerifyRouter(errors.New("mobizon error code=4: Недостаточно средств"))

	w := doJSON(t, r, "/send-code", gin.H{"phone_number": "+77001112233"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Недостаточно средств")
}

func TestSendCode_MissingPhone(t *testing.T) {
	r, _, _ := newVerifyRouter(nil)

	w := doJSON(t, r, "/send-code", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyCode_RegistersUser(t *testing.T) {
	r, codes, users := newVerifyRouter(nil)

	w := doJSON(t, r, "/send-code", gin.H{"phone_number": "+77004445566"})
	require.Equal(t, http.StatusOK, w.Code)
	code := codes.codes["+77004445566"].Code

	w = doJSON(t, r, "/verify-code", gin.H{
		"phone_number": "+77004445566",
		"code":         code,
		"full_name":    "Петр Петров",
		"password":     "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, users.users, "+77004445566")
	assert.Equal(t, "Петр Петров", users.users["+77004445566"].FullName)

	// хэш пароля наружу не уходит
	assert.NotContains(t, w.Body.String(), "password_hash")

	// тот же код второй раз — отлуп
	w = doJSON(t, r, "/verify-code", gin.H{
		"phone_number": "+77004445566",
		"code":         code,
		"full_name":    "Петр Петров",
		"password":     "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	r, _, _ := newVerifyRouter(nil)

	w := doJSON(t, r, "/verify-code", gin.H{
		"phone_number": "+77004445566",
		"code":         "999999",
		"full_name":    "Петр Петров",
		"password":     "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetCode_UnknownPhone(t *testing.T) {
	r, _, _ := newVerifyRouter(nil)

	w := doJSON(t, r, "/password-reset/send-code", gin.H{"phone_number": "+70000000000"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "/password-reset/confirm", gin.H{
		"phone_number": "+70000000000",
		"code":         "123456",
		"new_password": "newpass777",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetFlow(t *testing.T) {
	r, codes, users := newVerifyRouter(nil)
	users.users["+77009990011"] = &models.User{ID: 1, PhoneNumber: "+77009990011", PasswordHash: "old"}

	w := doJSON(t, r, "/password-reset/send-code", gin.H{"phone_number": "+77009990011"})
	require.Equal(t, http.StatusOK, w.Code)
	code := codes.codes["+77009990011"].Code

	w = doJSON(t, r, "/password-reset/confirm", gin.H{
		"phone_number": "+77009990011",
		"code":         code,
		"new_password": "newpass777",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "old", users.users["+77009990011"].PasswordHash)
}
