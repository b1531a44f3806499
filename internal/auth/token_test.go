package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestIssueAndParseTeacherToken(t *testing.T) {
	manager := newTestManager()

	token, expiresAt, err := manager.IssueAccess(Identity{Role: RoleTeacher, ID: 7, Email: "teacher@example.com"})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := manager.ParseAccess(token)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, uint(0), claims.StudentID)
	require.Equal(t, "teacher@example.com", claims.Email)
	require.Equal(t, RoleTeacher, claims.Role)
	require.Equal(t, uint(7), claims.SubjectID())
	require.NotNil(t, claims.ExpiresAt)
}

func TestIssueAndParseStudentToken(t *testing.T) {
	manager := newTestManager()

	token, _, err := manager.IssueAccess(Identity{Role: RoleStudent, ID: 3, Email: "student@example.com"})
	require.NoError(t, err)

	claims, err := manager.ParseAccess(token)
	require.NoError(t, err)
	require.Equal(t, uint(3), claims.StudentID)
	require.Equal(t, "student", claims.Type)
	require.Equal(t, uint(3), claims.SubjectID())
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	manager := newTestManager().WithClock(func() time.Time { return issuedAt })

	token, _, err := manager.IssueAccess(Identity{Role: RoleTeacher, ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	manager.WithClock(time.Now)
	_, err = manager.ParseAccess(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecretAndKind(t *testing.T) {
	manager := newTestManager()

	refresh, _, err := manager.IssueRefresh(Identity{Role: RoleTeacher, ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	_, err = manager.ParseAccess(refresh)
	require.ErrorIs(t, err, ErrInvalidToken)

	claims, err := manager.ParseRefresh(refresh)
	require.NoError(t, err)
	require.Equal(t, uint(1), claims.UserID)
}

func TestParseRejectsTokenWithoutExpiry(t *testing.T) {
	manager := newTestManager()

	unbounded := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 1, "email": "a@b.c", "role": RoleTeacher})
	signed, err := unbounded.SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = manager.ParseAccess(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := newTestManager().ParseAccess("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	_, _, err := newTestManager().IssueAccess(Identity{Role: "guest", ID: 1})
	require.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	require.Equal(t, HashToken("abc"), HashToken("abc"))
	require.NotEqual(t, HashToken("abc"), HashToken("abd"))
	require.Len(t, HashToken("abc"), 64)
}
