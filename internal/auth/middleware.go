package auth

import (
	"errors"
	"fmt"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "eventboard/internal/errors"
	"eventboard/internal/logging"
)

// Middleware verifies bearer tokens on protected routes.
type Middleware struct {
	jwt    *JWTService
	tokens TokenStoreInterface
}

// NewMiddleware builds the token verification middleware. tokens may be nil
// to disable revocation checks.
func NewMiddleware(jwtService *JWTService, tokens TokenStoreInterface) *Middleware {
	return &Middleware{jwt: jwtService, tokens: tokens}
}

// Handler returns the echo middleware. On success the claims are stored under
// ClaimsContextKey and the Identity is injected into the request context.
// Failures are returned as ErrNoToken, ErrMalformedToken, ErrTokenExpired or
// ErrTokenRevoked for the HTTP error handler to render.
func (m *Middleware) Handler() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:     ClaimsContextKey,
		TokenLookup:    "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: m.parseToken,
		ErrorHandler:   classifyError,
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(injectIdentity(next))
	}
}

func (m *Middleware) parseToken(c echo.Context, token string) (interface{}, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if m.tokens != nil && claims.ID != "" {
		revoked, err := m.tokens.IsRevoked(c.Request().Context(), claims.ID)
		if err != nil {
			logger := logging.FromContext(c.Request().Context())
			logger.Warn().Err(err).Msg("revocation lookup failed")
		}
		if revoked {
			return nil, apperrors.ErrTokenRevoked
		}
	}
	return claims, nil
}

func classifyError(c echo.Context, err error) error {
	for _, known := range []error{apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked, apperrors.ErrMalformedToken} {
		if errors.Is(err, known) {
			return err
		}
	}
	// Anything else comes from header extraction.
	if strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization)) == "" {
		return apperrors.ErrNoToken
	}
	return fmt.Errorf("%w: expected bearer scheme", apperrors.ErrMalformedToken)
}

func injectIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return apperrors.ErrMalformedToken
		}
		req := c.Request()
		c.SetRequest(req.WithContext(WithIdentity(req.Context(), claims.Identity())))
		return next(c)
	}
}
