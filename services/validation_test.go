package services

import (
	"testing"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValidator_Credentials(t *testing.T) {
	fv := NewFormValidator()

	assert.NoError(t, fv.Check(models.Credentials{Email: "test@example.com", Password: "123456"}))

	err := fv.Check(models.Credentials{Email: "not-an-email", Password: "123"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"email":    "Email is invalid",
		"password": "Password must be at least 6 characters",
	}, verr.Fields)
	assert.ErrorIs(t, err, models.ErrBadRequest)

	err = fv.Check(models.Credentials{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email is required", verr.Fields["email"])
	assert.Equal(t, "Password is required", verr.Fields["password"])
}

func TestFormValidator_Profile(t *testing.T) {
	fv := NewFormValidator()

	assert.NoError(t, fv.Check(validProfile()))

	err := fv.Check(models.Profile{Name: "A", Email: "a@b.co", Password: "123456"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name must be at least 2 characters", verr.Fields["name"])
	assert.Equal(t, "Password confirmation is required", verr.Fields["confirm_password"])
	assert.Contains(t, err.Error(), "name: Name must be at least 2 characters")
}
