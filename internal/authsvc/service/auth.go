package service

import (
	"context"
	"time"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/models"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/repo"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/hash"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/tokens"
)

type LoginResult struct {
	Token     string
	ExpiresIn int64 // milliseconds
	Username  string
	Email     string
}

// Login authenticates by email or username. Missing user, disabled account,
// OAuth2-only account and wrong password all collapse into
// ErrInvalidCredentials so the response does not leak which one it was.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "user.login")

	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.ByEmailOrUsername(ctx, identifier)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !user.Enabled || !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login denied", "username", user.Username)
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	l.Info("login successful", "username", user.Username)
	return &LoginResult{
		Token:     token,
		ExpiresIn: s.TokenTTL.Milliseconds(),
		Username:  user.Username,
		Email:     user.Email,
	}, nil
}

func (s *UserService) IssueToken(user *models.User) (string, error) {
	return tokens.Issue(s.JWTSecret, user.ID, user.Username, user.RoleList(), s.TokenTTL)
}

// TTL is exposed for handlers that need expiresIn outside a login result.
func (s *UserService) TTL() time.Duration {
	return s.TokenTTL
}
