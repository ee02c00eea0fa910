package services

import (
	"context"
	"fmt"
	"time"

	"ispark/internal/models"
)

// --- фейковые репозитории и адаптеры (без сети и БД) ---

type fakeCodeRepo struct {
	codes   map[string]models.VerificationCode
	creates int
	deletes int
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: map[string]models.VerificationCode{}}
}

func (f *fakeCodeRepo) Create(code *models.VerificationCode) error {
	if _, ok := f.codes[code.PhoneNumber]; ok {
		return fmt.Errorf("duplicate code for %s", code.PhoneNumber)
	}
	f.codes[code.PhoneNumber] = *code
	f.creates++
	return nil
}

func (f *fakeCodeRepo) GetByPhone(phone string) (*models.VerificationCode, error) {
	c, ok := f.codes[phone]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCodeRepo) DeleteByPhone(phone string) error {
	delete(f.codes, phone)
	f.deletes++
	return nil
}

type fakeUserRepo struct {
	byID    map[int64]*models.User
	byPhone map[string]*models.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*models.User{}, byPhone: map[string]*models.User{}}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	f.byPhone[u.PhoneNumber] = u
	return u
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if _, ok := f.byPhone[user.PhoneNumber]; ok {
		return fmt.Errorf("phone %s already exists", user.PhoneNumber)
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(id int64) (*models.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByPhone(phone string) (*models.User, error) {
	return f.byPhone[phone], nil
}

func (f *fakeUserRepo) ExistsByPhone(phone string) (bool, error) {
	_, ok := f.byPhone[phone]
	return ok, nil
}

func (f *fakeUserRepo) UpdatePassword(userID int64, passwordHash string) error {
	u, ok := f.byID[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateRefresh(userID int64, token string, expiresAt time.Time) error {
	u, ok := f.byID[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.RefreshToken = &token
	u.RefreshExpiresAt = &expiresAt
	return nil
}

func (f *fakeUserRepo) GetByRefreshToken(token string) (*models.User, error) {
	for _, u := range f.byID {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ClearRefresh(userID int64) error {
	if u, ok := f.byID[userID]; ok {
		u.RefreshToken = nil
		u.RefreshExpiresAt = nil
	}
	return nil
}

type sentSMS struct {
	To   string
	Code string
}

type fakeSMS struct {
	sent []sentSMS
	err  error
}

func (f *fakeSMS) Send(to, code string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentSMS{To: to, Code: code})
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

type fakeDeviceRepo struct {
	tokens map[int64][]string
	err    error
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{tokens: map[int64][]string{}}
}

func (f *fakeDeviceRepo) Upsert(device *models.Device) error {
	for _, t := range f.tokens[device.UserID] {
		if t == device.RegistrationID {
			return nil
		}
	}
	f.tokens[device.UserID] = append(f.tokens[device.UserID], device.RegistrationID)
	return nil
}

func (f *fakeDeviceRepo) ListTokensByUser(userID int64) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[userID], nil
}

type pushCall struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

type fakePush struct {
	calls []pushCall
	err   error
}

func (f *fakePush) SendMulticast(_ context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	if f.err != nil {
		return 0, len(tokens), f.err
	}
	f.calls = append(f.calls, pushCall{Tokens: tokens, Title: title, Body: body, Data: data})
	return len(tokens), 0, nil
}

type fakeReportRepo struct {
	reports map[int64]*models.Report
	nextID  int64
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[int64]*models.Report{}}
}

func (f *fakeReportRepo) Create(report *models.Report) error {
	f.nextID++
	report.ID = f.nextID
	report.UploadedAt = time.Now()
	cp := *report
	f.reports[report.ID] = &cp
	return nil
}

func (f *fakeReportRepo) GetByID(id int64) (*models.Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReportRepo) ListByUser(userID int64, limit int) ([]*models.Report, error) {
	var out []*models.Report
	for _, r := range f.reports {
		if r.UserID == userID && len(out) < limit {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) ListAll(limit int) ([]*models.Report, error) {
	var out []*models.Report
	for _, r := range f.reports {
		if len(out) < limit {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateStatus(id int64, status string, errorCode, errorText *string) error {
	r, ok := f.reports[id]
	if !ok {
		return fmt.Errorf("report %d not found", id)
	}
	r.Status = status
	r.ErrorCode = errorCode
	r.ErrorText = errorText
	return nil
}

type notifyCall struct {
	ReportID  int64
	OldStatus string
	NewStatus string
}

type recordingNotifier struct {
	calls []notifyCall
}

func (r *recordingNotifier) OnStatusChanged(report *models.Report, oldStatus string) {
	r.calls = append(r.calls, notifyCall{ReportID: report.ID, OldStatus: oldStatus, NewStatus: report.Status})
}
