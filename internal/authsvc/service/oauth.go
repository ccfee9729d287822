package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/models"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/repo"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
var whitespace = regexp.MustCompile(`\s+`)

// OAuthLogin finds or creates the local account for a provider principal and
// issues a token. Linking is keyed by provider email; a new account gets a
// unique username derived from the display name.
func (s *UserService) OAuthLogin(ctx context.Context, email, name string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "user.oauth", "email", email)

	if email == "" {
		return nil, "", fmt.Errorf("%w: provider returned no email", ErrInvalidInput)
	}

	user, err := s.Repo.ByEmail(ctx, email)
	if err == repo.ErrNotFound {
		user, err = s.createOAuthUser(ctx, email, name)
		if err != nil {
			return nil, "", err
		}
		l.Info("created oauth2 user", "username", user.Username)
	} else if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// createOAuthUser inserts a new enabled, passwordless account. A duplicate
// email means another login for the same address committed first: re-read
// and use that row. A duplicate username means the uniqueness search raced;
// advance the counter and retry.
func (s *UserService) createOAuthUser(ctx context.Context, email, name string) (*models.User, error) {
	base := baseUsername(name, email)

	for attempt := 0; attempt < 20; attempt++ {
		username, err := s.uniqueUsername(ctx, base, email, attempt)
		if err != nil {
			return nil, err
		}

		user := &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: "",
			Enabled:      true,
		}
		user.SetRoles([]string{"USER"})

		err = s.Repo.Create(ctx, user)
		if err == nil {
			s.publish(ctx, user, "user_registered")
			return user, nil
		}
		if err != repo.ErrDuplicate {
			return nil, err
		}

		// The email may have been taken by a concurrent login.
		if existing, lookupErr := s.Repo.ByEmail(ctx, email); lookupErr == nil {
			return existing, nil
		}
		// Username collision: loop with the next candidate.
	}
	return nil, fmt.Errorf("could not allocate a unique username for %s", email)
}

// uniqueUsername implements the username search: base, then
// base_emailprefix, then base_emailprefix_k for k=1,2,...
// minAttempt skips candidates already found to collide.
func (s *UserService) uniqueUsername(ctx context.Context, base, email string, minAttempt int) (string, error) {
	emailPrefix := strings.ToLower(nonAlnum.ReplaceAllString(localPart(email), ""))
	withEmail := base + "_" + emailPrefix

	candidates := func(k int) string {
		switch k {
		case 0:
			return base
		case 1:
			return withEmail
		default:
			return fmt.Sprintf("%s_%d", withEmail, k-1)
		}
	}

	for k := minAttempt; ; k++ {
		candidate := candidates(k)
		taken, err := s.Repo.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func baseUsername(name, email string) string {
	if name != "" {
		return strings.ToLower(whitespace.ReplaceAllString(name, "_"))
	}
	return localPart(email)
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
