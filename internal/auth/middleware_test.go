package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	apperrors "eventboard/internal/errors"
)

// newProtectedEcho mounts a single protected route echoing the injected identity.
func newProtectedEcho(jwtService *JWTService, tokens TokenStoreInterface) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		httpErr := apperrors.MapErrorToHTTP(err)
		_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	mw := NewMiddleware(jwtService, tokens)
	e.GET("/protected", func(c echo.Context) error {
		id, ok := IdentityFromContext(c.Request().Context())
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, map[string]string{"id": id.UserID, "name": id.Name})
	}, mw.Handler())
	return e
}

func TestMiddleware_ValidToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "")
	token, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	apitest.New().
		Handler(newProtectedEcho(svc, nil)).
		Get("/protected").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.id", testUser().ID)).
		Assert(jsonpath.Equal("$.name", "Ada")).
		End()
}

func TestMiddleware_Failures(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "")
	valid, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	stale := NewJWTService("test-secret", time.Hour, "")
	stale.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, err := stale.GenerateAccessToken(testUser())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "NO_TOKEN"},
		{"raw token without scheme", valid, "MALFORMED_TOKEN"},
		{"garbage token", "Bearer abc.def.ghi", "MALFORMED_TOKEN"},
		{"expired token", "Bearer " + expired, "TOKEN_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := apitest.New().
				Handler(newProtectedEcho(svc, nil)).
				Get("/protected")
			if tt.header != "" {
				req = req.Header("Authorization", tt.header)
			}
			req.Expect(t).
				Status(http.StatusUnauthorized).
				Assert(jsonpath.Equal("$.code", tt.code)).
				End()
		})
	}
}

func TestMiddleware_RevokedToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "")
	token, claims, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	tokens := NewMemoryTokenStore()
	require.NoError(t, tokens.Revoke(context.Background(), claims.ID, time.Hour))

	apitest.New().
		Handler(newProtectedEcho(svc, tokens)).
		Get("/protected").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.code", "TOKEN_REVOKED")).
		End()
}
