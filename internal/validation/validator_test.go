package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "eventboard/internal/errors"
)

type registerForm struct {
	Name      string `json:"name" validate:"required,min=2,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=30,maxbytes=72"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{Name: "Ada", Email: "ada@example.com", Password: "secret", Password2: "secret"})
	assert.NoError(t, err)
}

func TestValidator_FieldMessages(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{Name: "A", Email: "nope", Password: "abc", Password2: "abd"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"name":      "Name must be at least 2 characters",
		"email":     "Email is invalid",
		"password":  "Password must be at least 6 characters",
		"password2": "Passwords must match",
	}, verr.Fields)
}

func TestValidator_Required(t *testing.T) {
	v := New()
	err := v.Validate(&registerForm{})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Email field is required", verr.Fields["email"])
	assert.Equal(t, "Confirm Password field is required", verr.Fields["password2"])
}

func TestValidator_MaxBytes(t *testing.T) {
	v := New()

	long := strings.Repeat("😀", 30)
	err := v.Validate(&registerForm{Name: "Ada", Email: "ada@example.com", Password: long, Password2: long})
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"password": "Password must be at most 72 bytes"}, verr.Fields)

	fits := strings.Repeat("é", 30)
	assert.NoError(t, v.Validate(&registerForm{Name: "Ada", Email: "ada@example.com", Password: fits, Password2: fits}))
}
