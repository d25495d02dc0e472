package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirehub/internal/models"
)

func TestLoadIsConsistent(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	require.NotEmpty(t, s.Users)
	require.NotEmpty(t, s.Jobs)
	require.NotEmpty(t, s.Applications)

	users := map[string]models.User{}
	for _, u := range s.Users {
		users[u.ID] = u
	}
	jobs := map[string]bool{}
	for _, j := range s.Jobs {
		jobs[j.ID] = true
		assert.Equal(t, models.UserRoleEmployer, users[j.EmployerID].Role, "job %s", j.ID)
	}

	for _, a := range s.Applications {
		assert.True(t, jobs[a.JobID], "application %s points to a known job", a.ID)
		last, ok := a.LastEntry()
		require.True(t, ok)
		assert.Equal(t, a.Status, last.Status, "application %s status matches newest timeline entry", a.ID)
	}
}

func TestDemoUser(t *testing.T) {
	s := MustLoad()

	u, ok := s.DemoUser("SEEKER@demo.com", models.UserRoleSeeker)
	require.True(t, ok)
	assert.Equal(t, "seeker1", u.ID)

	_, ok = s.DemoUser("seeker@demo.com", models.UserRoleEmployer)
	assert.False(t, ok)
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	a := MustLoad()
	b := MustLoad()
	a.Jobs[0].Title = "changed"
	assert.NotEqual(t, "changed", b.Jobs[0].Title)
}
