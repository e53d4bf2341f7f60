package adminauth

import (
	"crypto/subtle"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned for a wrong password. The check is a
// placeholder gate for the admin page, not a security boundary.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service gates the admin surface behind a single shared password and issues
// session tokens that live only in process memory, so they vanish on restart
// the same way the original session flag did.
type Service struct {
	password string
	ttl      time.Duration
	tokens   *tokenManager
}

func New(password string, ttl time.Duration) *Service {
	return &Service{
		password: password,
		ttl:      ttl,
		tokens:   newTokenManager(),
	}
}

// Login checks the password and issues a session token on success.
func (s *Service) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(s.ttl)
}

// Validate reports whether the token belongs to a live admin session.
func (s *Service) Validate(token string) bool {
	return s.tokens.Validate(token)
}

// Logout revokes the token. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.tokens.Revoke(token)
}
