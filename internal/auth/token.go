package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// RoleTeacher marks tokens issued to teacher accounts.
	RoleTeacher = "teacher"
	// RoleStudent marks tokens issued to students.
	RoleStudent = "student"
)

// ErrInvalidToken is returned for any token that fails signature, method or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the claim set embedded in access and refresh tokens.
type Claims struct {
	UserID    uint   `json:"userId,omitempty"`
	StudentID uint   `json:"studentId,omitempty"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// SubjectID returns the identifier of the teacher or student the token was issued to.
func (c Claims) SubjectID() uint {
	if c.Role == RoleStudent {
		return c.StudentID
	}
	return c.UserID
}

// Identity describes who a token is issued for.
type Identity struct {
	Role  string
	ID    uint
	Email string
}

// TokenManager issues and verifies HMAC-signed tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager constructs a manager; both TTLs must be positive.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock overrides the time source, used by tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// AccessTTL reports the lifetime of access tokens.
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// IssueAccess signs a short-lived access token for identity.
func (m *TokenManager) IssueAccess(identity Identity) (string, time.Time, error) {
	return m.issue(identity, m.accessSecret, m.accessTTL)
}

// IssueRefresh signs a refresh token for identity.
func (m *TokenManager) IssueRefresh(identity Identity) (string, time.Time, error) {
	return m.issue(identity, m.refreshSecret, m.refreshTTL)
}

// ParseAccess verifies an access token and returns its claims.
func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return m.parse(token, m.accessSecret)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	return m.parse(token, m.refreshSecret)
}

func (m *TokenManager) issue(identity Identity, secret []byte, ttl time.Duration) (string, time.Time, error) {
	if identity.Role != RoleTeacher && identity.Role != RoleStudent {
		return "", time.Time{}, fmt.Errorf("unsupported role %q", identity.Role)
	}

	now := m.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Email: identity.Email,
		Type:  identity.Role,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(identity.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	if identity.Role == RoleStudent {
		claims.StudentID = identity.ID
	} else {
		claims.UserID = identity.ID
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (m *TokenManager) parse(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != RoleTeacher && claims.Role != RoleStudent {
		return nil, ErrInvalidToken
	}
	if claims.SubjectID() == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// HashToken returns the hex sha256 digest under which refresh tokens are stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
