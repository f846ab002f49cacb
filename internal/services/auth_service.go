package services

import (
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"brocante/internal/repos"
)

var ErrBadPassword = errors.New("invalid password")

// AuthService is the admin gate. The shop has a single shared admin
// credential; success mints a random server-side session instead of the
// forgeable client token the gate could otherwise degenerate into.
type AuthService struct {
	Sessions *repos.SessionRepo
	Password string // plain secret, used when no hash is configured
	Hash     string // bcrypt hash, preferred
}

// Login checks the submitted password and returns a fresh session id.
func (s *AuthService) Login(password string) (string, error) {
	if password == "" {
		return "", ErrBadPassword
	}
	if s.Hash != "" {
		if bcrypt.CompareHashAndPassword([]byte(s.Hash), []byte(password)) != nil {
			return "", ErrBadPassword
		}
	} else {
		if s.Password == "" {
			return "", ErrBadPassword
		}
		if subtle.ConstantTimeCompare([]byte(s.Password), []byte(password)) != 1 {
			return "", ErrBadPassword
		}
	}

	sid := uuid.NewString()
	if err := s.Sessions.Create(sid); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Delete(sid)
}

// IsAdmin reports whether sid names a live admin session.
func (s *AuthService) IsAdmin(sid string) bool {
	if sid == "" {
		return false
	}
	ok, err := s.Sessions.Exists(sid)
	return err == nil && ok
}
