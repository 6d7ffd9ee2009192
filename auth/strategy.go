// Package auth implements the admin session guard: credential checking for
// the login handler plus the two cookie token strategies used by the API
// and page guards.
package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Cookie names used by the admin surface. The API guard accepts either of
// the first two; page navigation checks use the timestamped cookie.
const (
	CookieAPISession         = "admin-session"
	CookieAPISessionFallback = "admin-api-session"
	CookiePageAuth           = "admin-auth"
)

const timestampMarker = "authenticated"

// ErrInvalidToken covers every validation failure: absent, malformed,
// expired, or simply wrong. Callers must not distinguish between them.
var ErrInvalidToken = errors.New("invalid session token")

// ErrNotConfigured means the server is missing admin credentials. Handlers
// map it to a 500; the guards fold it into a plain unauthorized so callers
// cannot tell "not logged in" from "server misconfigured".
var ErrNotConfigured = errors.New("admin credentials not configured")

// ErrInvalidCredentials is the single login failure, regardless of which
// field was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is proof of a validated admin credential. ExpiresAt is zero when
// the credential carries no expiry information of its own.
type Session struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenStrategy is one way of encoding the admin credential into a cookie
// value. The two implementations below are interchangeable behind the
// guards.
type TokenStrategy interface {
	CookieName() string
	Issue(now time.Time) string
	Validate(value string, now time.Time) (Session, error)
}

// SecretStrategy authorizes a request when the cookie value equals the
// configured secret byte-for-byte. Used by the JSON API routes.
type SecretStrategy struct {
	secret string
	ttl    time.Duration
}

func NewSecretStrategy(secret string, ttl time.Duration) *SecretStrategy {
	return &SecretStrategy{secret: secret, ttl: ttl}
}

func (s *SecretStrategy) CookieName() string { return CookieAPISession }

func (s *SecretStrategy) Issue(now time.Time) string { return s.secret }

func (s *SecretStrategy) Validate(value string, now time.Time) (Session, error) {
	if s.secret == "" || value != s.secret {
		return Session{}, ErrInvalidToken
	}
	return Session{IssuedAt: now}, nil
}

// TimestampStrategy issues self-describing tokens of the form
// "authenticated.<issue-epoch-ms>" and validates them against a fixed
// window measured from issuance. Used by page-level navigation checks.
type TimestampStrategy struct {
	ttl time.Duration
}

func NewTimestampStrategy(ttl time.Duration) *TimestampStrategy {
	return &TimestampStrategy{ttl: ttl}
}

func (s *TimestampStrategy) CookieName() string { return CookiePageAuth }

func (s *TimestampStrategy) Issue(now time.Time) string {
	return timestampMarker + "." + strconv.FormatInt(now.UnixMilli(), 10)
}

func (s *TimestampStrategy) Validate(value string, now time.Time) (Session, error) {
	marker, ts, ok := strings.Cut(value, ".")
	if !ok || marker != timestampMarker {
		return Session{}, ErrInvalidToken
	}
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	issuedAt := time.UnixMilli(ms)
	if now.Sub(issuedAt) >= s.ttl {
		return Session{}, ErrInvalidToken
	}
	return Session{IssuedAt: issuedAt, ExpiresAt: issuedAt.Add(s.ttl)}, nil
}
