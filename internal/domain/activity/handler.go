package activity

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/auth"
	"github.com/careloop/careloop/pkg/pagination"
)

// AccessChecker reports whether a caregiver may read a senior's data.
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
	read.GET("/activities", h.ListActivities)
	read.GET("/activities/today", h.GetTodaySummary)
	read.GET("/activities/:id", h.GetActivity)

	write := api.Group("", auth.RequireRole(auth.RoleSenior))
	write.POST("/activities", h.LogActivity)
	write.DELETE("/activities/:id", h.DeleteActivity)
}

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

func (h *Handler) ownedActivity(c echo.Context) (*ActivityLog, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetActivity(c.Request().Context(), id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "activity not found")
	}
	ctx := c.Request().Context()
	if auth.RoleFromContext(ctx) != auth.RoleAdmin && a.UserID != auth.UserIDFromContext(ctx) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not your activity")
	}
	return a, nil
}

func (h *Handler) LogActivity(c echo.Context) error {
	var a ActivityLog
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.UserID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.LogActivity(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetActivity(c echo.Context) error {
	a, err := h.ownedActivity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListActivities(c echo.Context) error {
	userID, err := h.subjectUserID(c)
	if err != nil {
		return err
	}
	var day time.Time
	if d := c.QueryParam("day"); d != "" {
		day, err = time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day, expected YYYY-MM-DD")
		}
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListActivities(c.Request().Context(), userID, day, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetTodaySummary(c echo.Context) error {
	userID, err := h.subjectUserID(c)
	if err != nil {
		return err
	}
	summary, err := h.svc.TodaySummary(c.Request().Context(), userID, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) DeleteActivity(c echo.Context) error {
	a, err := h.ownedActivity(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteActivity(c.Request().Context(), a.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
