package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "eventboard/internal/errors"
	"eventboard/internal/logging"
)

// normalizer is implemented by requests that clean their fields before
// validation.
type normalizer interface {
	Normalize()
}

// bindAndValidate decodes the request body into req, normalizes it and runs
// the validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrInvalidInput)
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	return c.Validate(req)
}

// ErrorHandler is the echo HTTPErrorHandler. Every error returned by a
// handler or middleware is rendered here exactly once as an ErrorResponse.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *apperrors.HTTPError
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && !errors.Is(err, apperrors.ErrInvalidInput) {
		httpErr = fromEchoError(echoErr)
	} else {
		httpErr = apperrors.MapErrorToHTTP(err)
	}

	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger := logging.FromContext(c.Request().Context())
		logger.Error().Err(err).Str("code", httpErr.Code).Msg("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.StatusCode)
	} else {
		writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if writeErr != nil {
		logger := logging.FromContext(c.Request().Context())
		logger.Error().Err(writeErr).Msg("write error response")
	}
}

// fromEchoError renders framework errors (unknown route, wrong method,
// oversized body) in the same shape as domain errors.
func fromEchoError(he *echo.HTTPError) *apperrors.HTTPError {
	if he.Internal != nil {
		var inner *echo.HTTPError
		if errors.As(he.Internal, &inner) {
			he = inner
		}
	}
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	code := "HTTP_ERROR"
	switch he.Code {
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		code = "PAYLOAD_TOO_LARGE"
	case http.StatusUnauthorized:
		code = "UNAUTHORIZED"
	}
	if he.Code >= http.StatusInternalServerError {
		return apperrors.NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	return apperrors.NewHTTPError(he.Code, msg, code)
}
