package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirehub/internal/models"
	"hirehub/internal/store"
	"hirehub/pkg/apperrors"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.ApplicationStatus
		ok       bool
	}{
		{models.StatusApplied, models.StatusScreening, true},
		{models.StatusApplied, models.StatusInterview, true},
		{models.StatusApplied, models.StatusOffer, true},
		{models.StatusScreening, models.StatusInterview, true},
		{models.StatusInterview, models.StatusOffer, true},
		{models.StatusInterview, models.StatusInterview, true},
		{models.StatusApplied, models.StatusRejected, true},
		{models.StatusInterview, models.StatusRejected, true},
		{models.StatusInterview, models.StatusScreening, true},
		{models.StatusOffer, models.StatusScreening, true},
		{models.StatusRejected, models.StatusScreening, true},

		{models.StatusScreening, models.StatusApplied, false},
		{models.StatusOffer, models.StatusRejected, false},
		{models.StatusRejected, models.StatusRejected, false},
		{models.StatusRejected, models.StatusOffer, false},
		{models.StatusOffer, models.StatusInterview, false},
		{models.StatusApplied, models.StatusApplied, false},
		{models.StatusScreening, models.StatusScreening, false},
	}
	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s → %s", tc.from, tc.to)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s → %s", tc.from, tc.to)
		}
	}

	err := CanTransition(models.StatusApplied, "hired")
	assert.Equal(t, apperrors.CodeInvalidStatus, apperrors.CodeOf(err))
}

func TestSubmitAndAdvance(t *testing.T) {
	te := newTestEnv(t)
	seeker, _ := te.env.Stores.Users.Get("seeker1")

	app, err := te.Applications.Submit(seeker, models.ApplicationInput{JobID: "job1", CoverLetter: "hi"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, app.Status)
	require.Len(t, app.Timeline, 1)
	assert.Equal(t, models.StatusApplied, app.Timeline[0].Status)

	// работодатель получил уведомление о новом отклике
	assert.Equal(t, 1, te.Notifications.UnreadCount("emp1"))

	before := len(te.Notifications.ForUser("seeker1"))
	updated, err := te.Applications.Transition(app.ID, models.StatusScreening, models.TransitionExtra{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScreening, updated.Status)
	assert.Len(t, updated.Timeline, 2)

	notes := te.Notifications.ForUser("seeker1")
	require.Len(t, notes, before+1)
	last := notes[len(notes)-1]
	assert.Equal(t, models.NotificationApplication, last.Kind)
	assert.Equal(t, "/dashboard/seeker", last.Link)
	assert.Contains(t, last.Message, "Senior React Developer")
	assert.False(t, last.IsRead)

	assert.Equal(t, 1, te.rec.count(store.NameApplications, ActionCreated))
	assert.Equal(t, 1, te.rec.count(store.NameApplications, ActionUpdated))
}

func TestTimelineStaysAppendOnlyAndAgreesWithStatus(t *testing.T) {
	te := newTestEnv(t)
	seeker, _ := te.env.Stores.Users.Get("seeker1")
	app, err := te.Applications.Submit(seeker, models.ApplicationInput{JobID: "job1"})
	require.NoError(t, err)

	steps := []struct {
		to    models.ApplicationStatus
		extra models.TransitionExtra
	}{
		{models.StatusScreening, models.TransitionExtra{}},
		{models.StatusInterview, models.TransitionExtra{InterviewDate: "2024-06-01", InterviewTime: "10:00"}},
		{models.StatusInterview, models.TransitionExtra{InterviewDate: "2024-06-03", InterviewMessage: "Moved to Monday"}},
		{models.StatusOffer, models.TransitionExtra{}},
		{models.StatusScreening, models.TransitionExtra{Note: "Offer withdrawn, back to review"}},
		{models.StatusRejected, models.TransitionExtra{}},
	}

	prevLen := 1
	prevTimeline := app.Timeline
	for _, step := range steps {
		updated, err := te.Applications.Transition(app.ID, step.to, step.extra)
		require.NoError(t, err, "→ %s", step.to)

		require.Len(t, updated.Timeline, prevLen+1)
		last, _ := updated.LastEntry()
		assert.Equal(t, updated.Status, last.Status)
		// старые записи не переписаны
		assert.Equal(t, []models.TimelineEntry(prevTimeline), []models.TimelineEntry(updated.Timeline[:prevLen]))

		prevLen = len(updated.Timeline)
		prevTimeline = updated.Timeline
	}

	final, _ := te.env.Stores.Applications.Get(app.ID)
	assert.Equal(t, "2024-06-03", final.InterviewDate)
	assert.Equal(t, "Moved to Monday", final.InterviewMessage)
	assert.Equal(t, "Moved to Monday", final.Timeline[3].Note)
	assert.Equal(t, "Offer withdrawn, back to review", final.Timeline[5].Note)
	assert.Equal(t, app.JobID, final.JobID)
	assert.Equal(t, app.SeekerID, final.SeekerID)
	assert.Equal(t, app.Date, final.Date)
}

func TestRejectWithAndWithoutReason(t *testing.T) {
	te := newTestEnv(t)

	withReason, err := te.Applications.Transition("app1", models.StatusRejected, models.TransitionExtra{RejectionReason: "Position filled"})
	require.NoError(t, err)
	assert.Equal(t, "Position filled", withReason.RejectionReason)
	assert.Equal(t, "Position filled", withReason.Timeline[len(withReason.Timeline)-1].Note)

	without, err := te.Applications.Transition("app2", models.StatusRejected, models.TransitionExtra{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, without.Status)
	assert.Empty(t, without.RejectionReason)
}

func TestInvalidTransitionChangesNothing(t *testing.T) {
	te := newTestEnv(t)
	before, _ := te.env.Stores.Applications.Get("app1")
	notes := te.env.Stores.Notifications.Len()

	_, err := te.Applications.Transition("app1", models.StatusApplied, models.TransitionExtra{})
	assert.Equal(t, apperrors.CodeInvalidTransition, apperrors.CodeOf(err))

	_, err = te.Applications.Transition("missing", models.StatusScreening, models.TransitionExtra{})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	after, _ := te.env.Stores.Applications.Get("app1")
	assert.Equal(t, before, after)
	assert.Equal(t, notes, te.env.Stores.Notifications.Len())
}

func TestSubmitRejectsDuplicateAndUnknownJob(t *testing.T) {
	te := newTestEnv(t)
	seeker, _ := te.env.Stores.Users.Get("seeker1")

	// app1 уже связывает seeker1 и job2
	_, err := te.Applications.Submit(seeker, models.ApplicationInput{JobID: "job2"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)

	_, err = te.Applications.Submit(seeker, models.ApplicationInput{JobID: "nope"})
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	_, err = te.Applications.Submit(seeker, models.ApplicationInput{})
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
}

func TestWithdrawRemovesWithoutNotification(t *testing.T) {
	te := newTestEnv(t)
	seeker, _ := te.env.Stores.Users.Get("seeker1")
	app, err := te.Applications.Submit(seeker, models.ApplicationInput{JobID: "job1"})
	require.NoError(t, err)
	notes := te.env.Stores.Notifications.Len()

	require.NoError(t, te.Applications.Withdraw(app.ID))

	_, ok := te.env.Stores.Applications.Get(app.ID)
	assert.False(t, ok)
	assert.Equal(t, notes, te.env.Stores.Notifications.Len())
	assert.Equal(t, 1, te.rec.count(store.NameApplications, ActionDeleted))

	assert.Error(t, te.Applications.Withdraw(app.ID))
}

func TestUpdateMetaLeavesTimelineAlone(t *testing.T) {
	te := newTestEnv(t)
	before, _ := te.env.Stores.Applications.Get("app1")
	notes := te.env.Stores.Notifications.Len()

	text := "Strong portfolio"
	rating := 4
	updated, err := te.Applications.UpdateMeta("app1", models.ApplicationMeta{EmployerNotes: &text, EmployerRating: &rating})
	require.NoError(t, err)

	assert.Equal(t, "Strong portfolio", updated.EmployerNotes)
	assert.Equal(t, 4, updated.EmployerRating)
	assert.Equal(t, before.Status, updated.Status)
	assert.Equal(t, before.Timeline, updated.Timeline)
	assert.Equal(t, notes, te.env.Stores.Notifications.Len())

	bad := 9
	_, err = te.Applications.UpdateMeta("app1", models.ApplicationMeta{EmployerRating: &bad})
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
}

func TestOrphanedApplicationsAreFiltered(t *testing.T) {
	te := newTestEnv(t)
	require.Len(t, te.Applications.ForSeeker("seeker1"), 1)

	require.NoError(t, te.Jobs.Delete("job2"))

	assert.Empty(t, te.Applications.ForSeeker("seeker1"))
	assert.Empty(t, te.Applications.ForJob("job2"))
	_, stillStored := te.env.Stores.Applications.Get("app1")
	assert.True(t, stillStored)
}
