package caregiver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/caregivers", auth.RequireRole(auth.RoleSenior, auth.RoleCaregiver))
	g.POST("/requests", h.RequestAccess, auth.RequireRole(auth.RoleCaregiver))
	g.GET("/grants", h.ListGrants)
	g.POST("/grants/:id/approve", h.Approve, auth.RequireRole(auth.RoleSenior))
	g.POST("/grants/:id/revoke", h.Revoke)
}

type requestAccessInput struct {
	SeniorID     uuid.UUID `json:"senior_id"`
	Relationship string    `json:"relationship"`
}

func (h *Handler) RequestAccess(c echo.Context) error {
	var in requestAccessInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	caregiverID := auth.UserIDFromContext(c.Request().Context())
	g, err := h.svc.RequestAccess(c.Request().Context(), in.SeniorID, caregiverID, in.Relationship)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, g)
}

// ListGrants returns the caller's grants: requests against them for seniors,
// their own requests for caregivers.
func (h *Handler) ListGrants(c echo.Context) error {
	ctx := c.Request().Context()
	callerID := auth.UserIDFromContext(ctx)

	var (
		grants []*AccessGrant
		err    error
	)
	if auth.RoleFromContext(ctx) == auth.RoleCaregiver {
		grants, err = h.svc.ListForCaregiver(ctx, callerID)
	} else {
		grants, err = h.svc.ListForSenior(ctx, callerID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if grants == nil {
		grants = []*AccessGrant{}
	}
	return c.JSON(http.StatusOK, grants)
}

func (h *Handler) grantForCaller(c echo.Context, seniorOnly bool) (*AccessGrant, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	g, err := h.svc.GetGrant(c.Request().Context(), id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "grant not found")
	}
	ctx := c.Request().Context()
	callerID := auth.UserIDFromContext(ctx)
	if auth.RoleFromContext(ctx) == auth.RoleAdmin {
		return g, nil
	}
	if seniorOnly {
		if g.SeniorID != callerID {
			return nil, echo.NewHTTPError(http.StatusForbidden, "only the senior may respond to this request")
		}
		return g, nil
	}
	if g.SeniorID != callerID && g.CaregiverID != callerID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not your grant")
	}
	return g, nil
}

func (h *Handler) Approve(c echo.Context) error {
	g, err := h.grantForCaller(c, true)
	if err != nil {
		return err
	}
	g, err = h.svc.Approve(c.Request().Context(), g.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, g)
}

// Revoke may be called by either side of the grant.
func (h *Handler) Revoke(c echo.Context) error {
	g, err := h.grantForCaller(c, false)
	if err != nil {
		return err
	}
	g, err = h.svc.Revoke(c.Request().Context(), g.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, g)
}
