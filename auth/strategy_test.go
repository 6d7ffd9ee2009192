package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretStrategy_Validate(t *testing.T) {
	s := NewSecretStrategy("the-secret", 24*time.Hour)
	now := time.Now()

	t.Run("exact match authorizes", func(t *testing.T) {
		sess, err := s.Validate("the-secret", now)
		require.NoError(t, err)
		assert.True(t, sess.ExpiresAt.IsZero())
	})

	t.Run("any mismatch is the same error", func(t *testing.T) {
		for _, value := range []string{"", "wrong", "the-secret ", "THE-SECRET"} {
			_, err := s.Validate(value, now)
			assert.ErrorIs(t, err, ErrInvalidToken)
		}
	})

	t.Run("empty configured secret never authorizes", func(t *testing.T) {
		unconfigured := NewSecretStrategy("", 24*time.Hour)
		_, err := unconfigured.Validate("", now)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTimestampStrategy_IssueValidateRoundTrip(t *testing.T) {
	s := NewTimestampStrategy(24 * time.Hour)
	now := time.Now()

	token := s.Issue(now)
	assert.Equal(t, fmt.Sprintf("authenticated.%d", now.UnixMilli()), token)

	sess, err := s.Validate(token, now)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), sess.IssuedAt.UnixMilli())
	assert.Equal(t, now.Add(24*time.Hour).UnixMilli(), sess.ExpiresAt.UnixMilli())
}

func TestTimestampStrategy_Validate_Failures(t *testing.T) {
	s := NewTimestampStrategy(24 * time.Hour)
	now := time.Now()

	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no separator", "authenticated"},
		{"wrong marker", fmt.Sprintf("authorized.%d", now.UnixMilli())},
		{"non-numeric timestamp", "authenticated.yesterday"},
		{"empty timestamp", "authenticated."},
		{"expired exactly at window", s.Issue(now.Add(-24 * time.Hour))},
		{"expired past window", s.Issue(now.Add(-25 * time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Validate(tc.value, now)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTimestampStrategy_Validate_WithinWindow(t *testing.T) {
	s := NewTimestampStrategy(24 * time.Hour)
	now := time.Now()

	for _, age := range []time.Duration{0, time.Minute, 12 * time.Hour, 24*time.Hour - time.Second} {
		token := s.Issue(now.Add(-age))
		_, err := s.Validate(token, now)
		assert.NoError(t, err, "token aged %s should still be valid", age)
	}
}
