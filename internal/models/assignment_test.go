package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func dueOn(t time.Time) *datatypes.Date {
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}

func TestAssignmentIsOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	cases := []struct {
		name       string
		assignment Assignment
		expected   bool
	}{
		{name: "pending due yesterday", assignment: Assignment{Status: AssignmentStatusPending, DueDate: dueOn(yesterday)}, expected: true},
		{name: "pending due today", assignment: Assignment{Status: AssignmentStatusPending, DueDate: dueOn(now)}, expected: false},
		{name: "completed due yesterday", assignment: Assignment{Status: AssignmentStatusCompleted, DueDate: dueOn(yesterday)}, expected: false},
		{name: "graded due last month", assignment: Assignment{Status: AssignmentStatusGraded, DueDate: dueOn(now.AddDate(0, -1, 0))}, expected: false},
		{name: "pending due tomorrow", assignment: Assignment{Status: AssignmentStatusPending, DueDate: dueOn(now.AddDate(0, 0, 1))}, expected: false},
		{name: "pending without due date", assignment: Assignment{Status: AssignmentStatusPending}, expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.assignment.IsOverdue(now))
		})
	}
}

func TestAssignmentIsOverdueUsesUTCDay(t *testing.T) {
	due := dueOn(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	pending := Assignment{Status: AssignmentStatusPending, DueDate: due}

	// 01:30 on the 11th in Tokyo is still the 10th in UTC.
	tokyo := time.Date(2026, time.March, 11, 1, 30, 0, 0, time.FixedZone("JST", 9*60*60))
	require.False(t, pending.IsOverdue(tokyo))

	// 21:00 on the 10th in New York is already the 11th in UTC.
	newYork := time.Date(2026, time.March, 10, 21, 0, 0, 0, time.FixedZone("EST", -5*60*60))
	require.True(t, pending.IsOverdue(newYork))
}

func TestAssignmentGradeUnsetIsDistinctFromZero(t *testing.T) {
	zero := 0.0
	require.False(t, Assignment{}.IsGraded())
	require.True(t, Assignment{Grade: &zero}.IsGraded())
}

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Now()
	revoked := now.Add(-time.Minute)

	require.True(t, RefreshToken{ExpiresAt: now.Add(time.Hour)}.Usable(now))
	require.False(t, RefreshToken{ExpiresAt: now.Add(-time.Second)}.Usable(now))
	require.False(t, RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked}.Usable(now))
}
