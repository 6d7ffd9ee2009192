package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio/api/config"
)

// Cookie is a name/value pair plus lifetime for the handler to set. The
// handler applies the shared attributes (HTTP-only, SameSite=Strict,
// path "/") so that logout clears exactly what login set.
type Cookie struct {
	Name   string
	Value  string
	MaxAge int
}

// Authenticator validates login credentials against the configured admin
// account and issues or clears the session cookies. It touches no storage;
// side effects are confined to the cookie values it returns.
type Authenticator struct {
	cfg    config.AdminConfig
	Secret *SecretStrategy
	Page   *TimestampStrategy
}

func NewAuthenticator(cfg config.AdminConfig) *Authenticator {
	return &Authenticator{
		cfg:    cfg,
		Secret: NewSecretStrategy(cfg.SessionSecret, cfg.SessionTTL),
		Page:   NewTimestampStrategy(cfg.SessionTTL),
	}
}

// Authenticate checks the username by exact match and the password against
// the configured bcrypt hash. The failure error never says which field was
// wrong.
func (a *Authenticator) Authenticate(username, password string) error {
	if a.cfg.Username == "" || a.cfg.PasswordHash == "" || a.cfg.SessionSecret == "" {
		return ErrNotConfigured
	}
	if username != a.cfg.Username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.cfg.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueCookies returns the session cookies a successful login sets: the
// shared-secret API cookie and the timestamped page cookie.
func (a *Authenticator) IssueCookies(now time.Time) []Cookie {
	maxAge := int(a.cfg.SessionTTL / time.Second)
	return []Cookie{
		{Name: CookieAPISession, Value: a.Secret.Issue(now), MaxAge: maxAge},
		{Name: CookiePageAuth, Value: a.Page.Issue(now), MaxAge: maxAge},
	}
}

// ClearCookies returns every admin cookie with an immediate expiry,
// including the fallback name a previous deployment may have set.
func (a *Authenticator) ClearCookies() []Cookie {
	return []Cookie{
		{Name: CookieAPISession, Value: "", MaxAge: -1},
		{Name: CookieAPISessionFallback, Value: "", MaxAge: -1},
		{Name: CookiePageAuth, Value: "", MaxAge: -1},
	}
}
