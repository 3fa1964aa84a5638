package medication

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/auth"
	"github.com/careloop/careloop/pkg/pagination"
)

// AccessChecker reports whether a caregiver may read a senior's data. It is
// implemented by the caregiver service and injected here to avoid a package
// cycle.
type AccessChecker interface {
	HasApprovedAccess(ctx context.Context, seniorID, caregiverID uuid.UUID) (bool, error)
}

type Handler struct {
	svc    *Service
	access AccessChecker
}

func NewHandler(svc *Service, access AccessChecker) *Handler {
	return &Handler{svc: svc, access: access}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleSenior, auth.RoleCaregiver))
	read.GET("/medications", h.ListMedications)
	read.GET("/medications/stats", h.GetStats)
	read.GET("/medications/:id", h.GetMedication)
	read.GET("/medications/:id/usage", h.ListUsage)
	read.GET("/schedule/today", h.GetTodaySchedule)

	write := api.Group("", auth.RequireRole(auth.RoleSenior))
	write.POST("/medications", h.CreateMedication)
	write.PUT("/medications/:id", h.UpdateMedication)
	write.POST("/medications/:id/deactivate", h.DeactivateMedication)
	write.DELETE("/medications/:id", h.DeleteMedication)
	write.POST("/medications/:id/usage", h.LogUsage)
}

// subjectUserID resolves which user's data the request targets. Seniors act
// on their own data. A caregiver passes ?senior_id= and must hold an
// approved access grant. Admins may pass any senior_id.
func (h *Handler) subjectUserID(c echo.Context) (uuid.UUID, error) {
	ctx := c.Request().Context()
	callerID := auth.UserIDFromContext(ctx)
	role := auth.RoleFromContext(ctx)

	seniorParam := c.QueryParam("senior_id")
	if seniorParam == "" {
		if role == auth.RoleCaregiver {
			return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "senior_id is required for caregivers")
		}
		return callerID, nil
	}

	seniorID, err := uuid.Parse(seniorParam)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid senior_id")
	}
	if role == auth.RoleAdmin || seniorID == callerID {
		return seniorID, nil
	}
	if role != auth.RoleCaregiver {
		return uuid.Nil, echo.NewHTTPError(http.StatusForbidden, "cannot access another user's data")
	}
	ok, err := h.access.HasApprovedAccess(ctx, seniorID, callerID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusForbidden, "caregiver access not approved")
	}
	return seniorID, nil
}

// ownedMedication loads the medication and verifies the caller may act on it.
func (h *Handler) ownedMedication(c echo.Context) (*Medication, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.GetMedication(c.Request().Context(), id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	ctx := c.Request().Context()
	if auth.RoleFromContext(ctx) != auth.RoleAdmin && m.UserID != auth.UserIDFromContext(ctx) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not your medication")
	}
	return m, nil
}

func (h *Handler) CreateMedication(c echo.Context) error {
	var m Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.UserID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.CreateMedication(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetMedication(c echo.Context) error {
	m, err := h.ownedMedication(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMedications(c echo.Context) error {
	userID, err := h.subjectUserID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	activeOnly := c.QueryParam("active") == "true"
	items, total, err := h.svc.ListMedications(c.Request().Context(), userID, activeOnly, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateMedication(c echo.Context) error {
	existing, err := h.ownedMedication(c)
	if err != nil {
		return err
	}
	var m Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.ID = existing.ID
	if err := h.svc.UpdateMedication(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeactivateMedication(c echo.Context) error {
	m, err := h.ownedMedication(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeactivateMedication(c.Request().Context(), m.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteMedication(c echo.Context) error {
	m, err := h.ownedMedication(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMedication(c.Request().Context(), m.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) LogUsage(c echo.Context) error {
	m, err := h.ownedMedication(c)
	if err != nil {
		return err
	}
	var u UsageLog
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u.MedicationID = m.ID
	if err := h.svc.LogUsage(c.Request().Context(), &u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) ListUsage(c echo.Context) error {
	m, err := h.ownedMedication(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListUsageByMedication(c.Request().Context(), m.ID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetTodaySchedule(c echo.Context) error {
	userID, err := h.subjectUserID(c)
	if err != nil {
		return err
	}
	entries, err := h.svc.TodaySchedule(c.Request().Context(), userID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if entries == nil {
		entries = []ScheduleEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetStats(c echo.Context) error {
	userID, err := h.subjectUserID(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.DashboardStats(c.Request().Context(), userID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
