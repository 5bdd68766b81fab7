package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"validation", NewValidationError(map[string]string{"email": "Email is invalid"}), http.StatusBadRequest, "INVALID_INPUT", "email"},
		{"duplicate email", ErrDuplicateEmail, http.StatusBadRequest, "DUPLICATE_EMAIL", "email"},
		{"wrapped duplicate email", fmt.Errorf("create user: %w", ErrDuplicateEmail), http.StatusBadRequest, "DUPLICATE_EMAIL", "email"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", "email"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS", "password"},
		{"no token", ErrNoToken, http.StatusUnauthorized, "NO_TOKEN", ""},
		{"malformed token", ErrMalformedToken, http.StatusUnauthorized, "MALFORMED_TOKEN", ""},
		{"expired token", ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED", ""},
		{"revoked token", ErrTokenRevoked, http.StatusUnauthorized, "TOKEN_REVOKED", ""},
		{"event not found", ErrEventNotFound, http.StatusNotFound, "EVENT_NOT_FOUND", "noeventfound"},
		{"storage", fmt.Errorf("find user: %w: %w", ErrStorageUnavailable, errors.New("dial tcp: refused")), http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			if tt.wantField != "" {
				assert.Contains(t, httpErr.Fields, tt.wantField)
			} else {
				assert.Empty(t, httpErr.Fields)
			}
		})
	}
}

func TestMapErrorToHTTP_HidesInfrastructureDetail(t *testing.T) {
	err := fmt.Errorf("insert user: %w: %w", ErrStorageUnavailable, errors.New("connection reset by peer"))
	resp := MapErrorToHTTP(err).ToErrorResponse()
	assert.NotContains(t, resp.Error, "connection reset")
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError(map[string]string{"name": "Name field is required"}))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "invalid input: name: Name field is required", errors.Unwrap(err).Error())
}
