package vitals

import (
	"context"
	"net/http"

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
	read.GET("/vitals", h.ListVitals)
	read.GET("/vitals/latest", h.GetLatest)
	read.GET("/vitals/:id", h.GetVital)

	write := api.Group("", auth.RequireRole(auth.RoleSenior))
	write.POST("/vitals", h.RecordVital)
	write.DELETE("/vitals/:id", h.DeleteVital)
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

func (h *Handler) ownedVital(c echo.Context) (*VitalReading, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.GetVital(c.Request().Context(), id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "vital reading not found")
	}
	ctx := c.Request().Context()
	if auth.RoleFromContext(ctx) != auth.RoleAdmin && v.UserID != auth.UserIDFromContext(ctx) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not your reading")
	}
	return v, nil
}

func (h *Handler) RecordVital(c echo.Context) error {
	var v VitalReading
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.UserID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.RecordVital(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) GetVital(c echo.Context) error {
	v, err := h.ownedVital(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListVitals(c echo.Context) error {
	userID, err := h.subjectUserID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListVitals(c.Request().Context(), userID, c.QueryParam("type"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetLatest(c echo.Context) error {
	userID, err := h.subjectUserID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.LatestByType(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*VitalReading{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteVital(c echo.Context) error {
	v, err := h.ownedVital(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteVital(c.Request().Context(), v.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
