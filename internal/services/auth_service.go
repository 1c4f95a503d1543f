package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"printshop/internal/domain"
	"printshop/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService signs back-office staff in and out. Shoppers never get
// accounts; the sessions table doubles as the anonymous cart session store,
// so Login binds the visitor's existing sid to a user row and Logout unbinds
// it without destroying the session (the cart keeps working).
type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

// CurrentUser resolves the sid cookie to its bound user, refreshing the
// session's last_seen stamp so idle admin sessions are visible in the table.
func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	u, err := s.Users.SessionUser(sid)
	if err != nil {
		return nil, err
	}
	_ = s.Users.TouchSession(sid)
	return u, nil
}
