package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirehub/internal/models"
)

func TestValidateRegisterInput(t *testing.T) {
	v := New()

	err := v.Validate(models.RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "secret1",
		Role:     models.UserRoleSeeker,
	})
	assert.NoError(t, err)

	err = v.Validate(models.RegisterInput{
		Name:     "A",
		Email:    "not-an-email",
		Password: "123",
		Role:     "recruiter",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "name")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors, "password")
	assert.Equal(t, "Must be one of: seeker, employer, admin", vErr.Errors["role"])
}

func TestValidateJobInput(t *testing.T) {
	v := New()

	in := models.JobInput{
		Title:       "Go Developer",
		Company:     "Acme",
		Location:    "Remote",
		Type:        models.JobTypeFullTime,
		Description: "Build things",
	}
	assert.NoError(t, v.Validate(in))

	in.Type = "gig"
	in.Status = "archived"
	err := v.Validate(in)
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "type")
	assert.Contains(t, vErr.Errors, "status")
}

func TestValidateApplicationMeta(t *testing.T) {
	v := New()
	rating := 7
	err := v.Validate(models.ApplicationMeta{EmployerRating: &rating})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employerRating")

	ok := 4
	assert.NoError(t, v.Validate(models.ApplicationMeta{EmployerRating: &ok}))
	assert.NoError(t, v.Validate(models.ApplicationMeta{}))
}
