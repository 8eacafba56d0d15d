package services

import (
	"testing"

	"github.com/Dosada05/playoff-system/models"
	"github.com/stretchr/testify/assert"
)

func TestIsValidStatusTransition(t *testing.T) {
	tests := []struct {
		current models.TournamentStatus
		next    models.TournamentStatus
		want    bool
	}{
		{models.StatusSoon, models.StatusRegistration, true},
		{models.StatusSoon, models.StatusCanceled, true},
		{models.StatusSoon, models.StatusActive, false},
		{models.StatusRegistration, models.StatusActive, true},
		{models.StatusRegistration, models.StatusCanceled, true},
		{models.StatusRegistration, models.StatusCompleted, false},
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusCanceled, true},
		{models.StatusActive, models.StatusRegistration, false},
		{models.StatusCompleted, models.StatusActive, false},
		{models.StatusCanceled, models.StatusRegistration, false},
		// Same-state updates are allowed as no-ops.
		{models.StatusActive, models.StatusActive, true},
	}
	for _, tt := range tests {
		got := isValidStatusTransition(tt.current, tt.next)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.current, tt.next)
	}
}

func TestBracketResolved(t *testing.T) {
	active := &models.Tournament{Status: models.StatusActive}
	completed := &models.Tournament{Status: models.StatusCompleted}
	successor := &models.Match{ID: "t1_r1_m1"}

	// Only a final (no successor) of a running tournament closes it.
	assert.True(t, bracketResolved(nil, active))
	assert.False(t, bracketResolved(successor, active))
	assert.False(t, bracketResolved(nil, completed))
}

func TestHasPendingSubmission(t *testing.T) {
	assert.False(t, hasPendingSubmission(nil))
	assert.False(t, hasPendingSubmission([]*models.Submission{
		{Status: models.SubmissionRejected},
		{Status: models.SubmissionApproved},
	}))
	assert.True(t, hasPendingSubmission([]*models.Submission{
		{Status: models.SubmissionRejected},
		{Status: models.SubmissionPending},
	}))
}

func TestIsKnownStatus(t *testing.T) {
	assert.True(t, isKnownStatus(models.StatusSoon))
	assert.True(t, isKnownStatus(models.StatusCompleted))
	assert.False(t, isKnownStatus(models.TournamentStatus("paused")))
	assert.False(t, isKnownStatus(models.TournamentStatus("")))
}
