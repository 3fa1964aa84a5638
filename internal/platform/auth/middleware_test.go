package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(testKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return rec, h(c)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	_, err := doRequest(t, mw, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	tok := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: RoleSenior,
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	h := mw(func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := UserIDFromContext(ctx); got != userID {
			t.Errorf("expected user id %s, got %s", userID, got)
		}
		if got := RoleFromContext(ctx); got != RoleSenior {
			t.Errorf("expected role senior, got %s", got)
		}
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	tok := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Role: RoleSenior,
	})

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	_, err := doRequest(t, mw, "Bearer "+tok)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", err)
	}
}

func TestJWTMiddleware_BadSubject(t *testing.T) {
	tok := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	_, err := doRequest(t, mw, "Bearer "+tok)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad subject, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role string, required ...string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			ctx := context.WithValue(c.Request().Context(), UserRoleKey, role)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		h := RequireRole(required...)(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
		return h(c)
	}

	if err := run(RoleSenior, RoleSenior); err != nil {
		t.Errorf("senior should access senior routes: %v", err)
	}
	if err := run(RoleAdmin, RoleSenior); err != nil {
		t.Errorf("admin should access any route: %v", err)
	}
	if err := run(RoleCaregiver, RoleSenior); err == nil {
		t.Error("caregiver should not access senior-only routes")
	}
	if err := run("", RoleSenior); err == nil {
		t.Error("unauthenticated request should be rejected")
	}
}

func TestDevAuthMiddleware_InjectsIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := DevAuthMiddleware()(func(c echo.Context) error {
		if UserIDFromContext(c.Request().Context()) == uuid.Nil {
			t.Error("expected dev user id to be injected")
		}
		if RoleFromContext(c.Request().Context()) != RoleAdmin {
			t.Error("expected dev role admin")
		}
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
