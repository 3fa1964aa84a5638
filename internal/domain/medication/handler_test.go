package medication

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/auth"
)

type allowAllAccess struct{ allowed bool }

func (a allowAllAccess) HasApprovedAccess(ctx context.Context, seniorID, caregiverID uuid.UUID) (bool, error) {
	return a.allowed, nil
}

func newHandlerTest(access AccessChecker) (*Handler, *mockMedicationRepo, *mockUsageRepo) {
	meds := newMockMedicationRepo()
	usage := &mockUsageRepo{}
	return NewHandler(NewService(meds, usage), access), meds, usage
}

func requestAs(method, target string, body string, userID uuid.UUID, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), auth.UserIDKey, userID)
	ctx = context.WithValue(ctx, auth.UserRoleKey, role)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateMedicationHandler(t *testing.T) {
	h, _, _ := newHandlerTest(allowAllAccess{})
	userID := uuid.New()

	body := `{"name":"Metformin","dosage":"500mg","type":"pill","frequency":"twice daily","is_daily":true,"times":["08:00","20:00"]}`
	c, rec := requestAs(http.MethodPost, "/api/v1/medications", body, userID, auth.RoleSenior)

	if err := h.CreateMedication(c); err != nil {
		t.Fatalf("CreateMedication: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var m Medication
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if m.UserID != userID {
		t.Errorf("owner = %s, want caller %s", m.UserID, userID)
	}
	if !m.IsActive {
		t.Error("new medication not active")
	}
}

func TestCreateMedicationHandler_Invalid(t *testing.T) {
	h, _, _ := newHandlerTest(allowAllAccess{})

	body := `{"name":"","dosage":"500mg","type":"pill","frequency":"daily","is_daily":true,"times":["08:00"]}`
	c, _ := requestAs(http.MethodPost, "/api/v1/medications", body, uuid.New(), auth.RoleSenior)

	err := h.CreateMedication(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestGetTodayScheduleHandler(t *testing.T) {
	h, meds, _ := newHandlerTest(allowAllAccess{})
	userID := uuid.New()

	m := dailyMed("Metformin", "08:00")
	m.UserID = userID
	if err := meds.Create(context.Background(), m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, rec := requestAs(http.MethodGet, "/api/v1/schedule/today", "", userID, auth.RoleSenior)
	if err := h.GetTodaySchedule(c); err != nil {
		t.Fatalf("GetTodaySchedule: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entries []ScheduleEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestGetTodayScheduleHandler_EmptyIsArray(t *testing.T) {
	h, _, _ := newHandlerTest(allowAllAccess{})

	c, rec := requestAs(http.MethodGet, "/api/v1/schedule/today", "", uuid.New(), auth.RoleSenior)
	if err := h.GetTodaySchedule(c); err != nil {
		t.Fatalf("GetTodaySchedule: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestCaregiverAccess(t *testing.T) {
	seniorID := uuid.New()
	caregiverID := uuid.New()

	// approved caregiver reads the senior's stats
	h, meds, _ := newHandlerTest(allowAllAccess{allowed: true})
	m := dailyMed("Metformin", "08:00")
	m.UserID = seniorID
	if err := meds.Create(context.Background(), m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, rec := requestAs(http.MethodGet,
		"/api/v1/medications/stats?senior_id="+seniorID.String(), "", caregiverID, auth.RoleCaregiver)
	if err := h.GetStats(c); err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.TotalMedications != 1 {
		t.Errorf("TotalMedications = %d, want 1", stats.TotalMedications)
	}

	// unapproved caregiver is rejected
	h2, _, _ := newHandlerTest(allowAllAccess{allowed: false})
	c2, _ := requestAs(http.MethodGet,
		"/api/v1/medications/stats?senior_id="+seniorID.String(), "", caregiverID, auth.RoleCaregiver)
	err := h2.GetStats(c2)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}

	// caregiver without senior_id is rejected
	c3, _ := requestAs(http.MethodGet, "/api/v1/medications/stats", "", caregiverID, auth.RoleCaregiver)
	err = h.GetStats(c3)
	he, ok = err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestGetMedicationHandler_OtherUsersMedication(t *testing.T) {
	h, meds, _ := newHandlerTest(allowAllAccess{})
	m := dailyMed("Metformin", "08:00")
	if err := meds.Create(context.Background(), m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, _ := requestAs(http.MethodGet, "/api/v1/medications/"+m.ID.String(), "", uuid.New(), auth.RoleSenior)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	err := h.GetMedication(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
