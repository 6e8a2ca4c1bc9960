package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/patients"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

type fakeAdminStore struct {
	Store
	account *Admin
}

func (f *fakeAdminStore) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	if f.account != nil && f.account.Username == username {
		return f.account, nil
	}
	return nil, ErrNotFound
}

type fakeApptStore struct {
	appointments.Store
	updated *appointments.Appointment
}

func (f *fakeApptStore) UpdateStatus(ctx context.Context, id, status string) (*appointments.Appointment, error) {
	if f.updated == nil {
		return nil, appointments.ErrNotFound
	}
	f.updated.Status = status
	return f.updated, nil
}

type fakePatientStore struct {
	patients.Store
	appendErr error
	appended  *patients.MedicalRecord
	created   *patients.Patient
}

func (f *fakePatientStore) AppendMedicalRecord(ctx context.Context, phone string, rec patients.MedicalRecord) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = &rec
	return nil
}

func (f *fakePatientStore) Create(ctx context.Context, p *patients.Patient) error {
	f.created = p
	return nil
}

func newTestAccount(t *testing.T, active bool) *Admin {
	t.Helper()
	a := &Admin{
		ID:       primitive.NewObjectID(),
		Username: "lethu",
		FullName: "Lê Thị Thu",
		Role:     RoleStaff,
		IsActive: active,
	}
	require.NoError(t, a.SetPassword("mat-khau-6"))
	return a
}

func login(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	store := &fakeAdminStore{account: newTestAccount(t, true)}
	h := NewHandler(store, NewTokenIssuer("test-secret"), nil, nil, nil, logging.New("error"))

	t.Run("valid credentials", func(t *testing.T) {
		rec := login(h, `{"username":"lethu","password":"mat-khau-6"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token"`)
		assert.Contains(t, rec.Body.String(), RoleStaff)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := login(h, `{"username":"lethu","password":"sai"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown username", func(t *testing.T) {
		rec := login(h, `{"username":"khac","password":"mat-khau-6"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := login(h, `{"username":"lethu"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	store := &fakeAdminStore{account: newTestAccount(t, false)}
	h := NewHandler(store, NewTokenIssuer("test-secret"), nil, nil, nil, logging.New("error"))

	// Correct password, deactivated account: same response as bad
	// credentials.
	rec := login(h, `{"username":"lethu","password":"mat-khau-6"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tên đăng nhập hoặc mật khẩu không đúng")
}

func completeAppointment(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/appointments/"+id+"/status", strings.NewReader(`{"status":"completed"}`))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.UpdateAppointmentStatus(rec, req)
	return rec
}

func TestCompleteAppointmentFilesVisit(t *testing.T) {
	appt := &appointments.Appointment{
		ID:        primitive.NewObjectID(),
		FullName:  "Nguyễn Văn A",
		Phone:     "0912345678",
		Specialty: "Da liễu",
		Status:    appointments.StatusConfirmed,
	}
	appts := &fakeApptStore{updated: appt}
	pats := &fakePatientStore{}
	h := NewHandler(&fakeAdminStore{}, NewTokenIssuer("test-secret"), nil, appts, pats, logging.New("error"))

	rec := completeAppointment(h, appt.ID.Hex())

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, pats.appended)
	assert.Equal(t, "Da liễu", pats.appended.Treatment)
	assert.Nil(t, pats.created)
}

func TestCompleteAppointmentCreatesPatientOnFirstVisit(t *testing.T) {
	appt := &appointments.Appointment{
		ID:        primitive.NewObjectID(),
		FullName:  "Nguyễn Văn A",
		Phone:     "0912345678",
		Specialty: "Nhi khoa",
		Status:    appointments.StatusConfirmed,
	}
	appts := &fakeApptStore{updated: appt}
	pats := &fakePatientStore{appendErr: patients.ErrNotFound}
	h := NewHandler(&fakeAdminStore{}, NewTokenIssuer("test-secret"), nil, appts, pats, logging.New("error"))

	rec := completeAppointment(h, appt.ID.Hex())

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, pats.created)
	assert.Equal(t, "Nguyễn Văn A", pats.created.FullName)
	assert.Equal(t, "0912345678", pats.created.Phone)
	assert.True(t, pats.created.IsActive)
	require.Len(t, pats.created.MedicalHistory, 1)
	assert.Equal(t, "Nhi khoa", pats.created.MedicalHistory[0].Treatment)
}

func TestCompleteAppointmentSurvivesPatientStoreFailure(t *testing.T) {
	appt := &appointments.Appointment{
		ID:     primitive.NewObjectID(),
		Phone:  "0912345678",
		Status: appointments.StatusConfirmed,
	}
	appts := &fakeApptStore{updated: appt}
	pats := &fakePatientStore{appendErr: errors.New("mongo down")}
	h := NewHandler(&fakeAdminStore{}, NewTokenIssuer("test-secret"), nil, appts, pats, logging.New("error"))

	rec := completeAppointment(h, appt.ID.Hex())

	// The status update succeeded; the history side effect only logs.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), appointments.StatusCompleted)
}

func TestNonCompletedStatusSkipsPatientRecord(t *testing.T) {
	appt := &appointments.Appointment{
		ID:     primitive.NewObjectID(),
		Phone:  "0912345678",
		Status: appointments.StatusPending,
	}
	appts := &fakeApptStore{updated: appt}
	pats := &fakePatientStore{}
	h := NewHandler(&fakeAdminStore{}, NewTokenIssuer("test-secret"), nil, appts, pats, logging.New("error"))

	req := httptest.NewRequest(http.MethodPatch, "/appointments/"+appt.ID.Hex()+"/status", strings.NewReader(`{"status":"confirmed"}`))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", appt.ID.Hex())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.UpdateAppointmentStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, pats.appended)
	assert.Nil(t, pats.created)
}
