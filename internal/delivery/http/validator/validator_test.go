package validator

import (
	"testing"

	domainerrors "usersync/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactInput struct {
	UserID  string  `json:"user_id" validate:"required"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,min=5"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := New()
	good := "b@x.com"
	bad := "not-an-email"
	short := "abc"

	assert.NoError(t, v.Validate(&contactInput{UserID: "u1"}))
	assert.NoError(t, v.Validate(&contactInput{UserID: "u1", Email: &good}))

	err := v.Validate(&contactInput{Email: &bad, Address: &short})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Contains(t, err.Error(), "user_id is required")
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "address must be at least 5 characters")
}
