package service

import (
	"context"
	"fmt"
	netmail "net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/events"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/mail"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/models"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/repo"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/hash"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

const (
	minUsernameLen = 2
	maxUsernameLen = 50
	minPasswordLen = 6

	verificationTTL = time.Hour
)

type UserService struct {
	Repo   *repo.GormRepo
	Mailer mail.Sender
	Events events.Publisher

	JWTSecret []byte
	TokenTTL  time.Duration
}

type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates a disabled account with a fresh verification token and
// sends the activation mail. The row is persisted before mail is attempted:
// a mail failure is reported distinctly so the user can retry via resend.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register", "email", in.Email)

	if err := validateRegistration(in); err != nil {
		return nil, err
	}
	if _, err := s.Repo.ByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if err != repo.ErrNotFound {
		return nil, err
	}
	if taken, err := s.Repo.UsernameTaken(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token := uuid.NewString()
	exp := time.Now().Add(verificationTTL)
	user := &models.User{
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      pwHash,
		Enabled:           false,
		VerificationToken: &token,
		TokenExpiration:   &exp,
	}
	user.SetRoles([]string{"USER"})

	if err := s.Repo.Create(ctx, user); err != nil {
		if err == repo.ErrDuplicate {
			// The pre-checks raced a concurrent insert; report whichever
			// column actually conflicts.
			if _, lookupErr := s.Repo.ByEmail(ctx, in.Email); lookupErr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.publish(ctx, user, "user_registered")

	if err := s.Mailer.SendVerification(ctx, user.Email, user.Username, token); err != nil {
		l.Error("activation mail failed", "error", err)
		return user, ErrMailSend
	}
	l.Info("activation mail sent")
	return user, nil
}

// Verify enables the account behind a token. A second call with the same
// token fails: verification clears the token.
func (s *UserService) Verify(ctx context.Context, token string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "user.verify")

	user, err := s.Repo.ByVerificationToken(ctx, token)
	if err != nil {
		if err == repo.ErrNotFound {
			return "", ErrInvalidToken
		}
		return "", err
	}

	if user.TokenExpiration == nil || user.TokenExpiration.Before(time.Now()) {
		return "", ErrExpiredToken
	}

	user.Enabled = true
	user.VerificationToken = nil
	user.TokenExpiration = nil
	if err := s.Repo.Save(ctx, user); err != nil {
		return "", err
	}

	s.publish(ctx, user, "user_verified")
	l.Info("user verified", "username", user.Username)
	return user.Username + " has been successfully verified. You can now log in.", nil
}

// ResendVerification assigns a fresh token and re-sends the mail.
func (s *UserService) ResendVerification(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "user.resend", "email", email)

	user, err := s.Repo.ByEmail(ctx, email)
	if err != nil {
		if err == repo.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	if user.Enabled {
		return ErrAlreadyVerified
	}

	token := uuid.NewString()
	exp := time.Now().Add(verificationTTL)
	user.VerificationToken = &token
	user.TokenExpiration = &exp
	if err := s.Repo.Save(ctx, user); err != nil {
		return err
	}

	if err := s.Mailer.SendVerification(ctx, user.Email, user.Username, token); err != nil {
		l.Error("activation mail failed", "error", err)
		return ErrMailSend
	}
	return nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.ByID(ctx, id)
	if err == repo.ErrNotFound {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Repo.ByUsername(ctx, username)
	if err == repo.ErrNotFound {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *UserService) List(ctx context.Context, page, size int) ([]models.User, int64, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return s.Repo.List(ctx, page, size)
}

type UpdateInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Update applies a partial profile change. A supplied password is re-hashed
// unconditionally, matching the original service.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateInput) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if len(in.Username) < minUsernameLen || len(in.Username) > maxUsernameLen {
			return nil, fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLen, maxUsernameLen)
		}
		user.Username = in.Username
	}
	if in.Email != "" {
		if _, err := netmail.ParseAddress(in.Email); err != nil {
			return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
		user.Email = in.Email
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
		}
		pwHash, err := hash.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.Save(ctx, user); err != nil {
		if err == repo.ErrDuplicate {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, user); err != nil {
		return err
	}
	s.publish(ctx, user, "user_deleted")
	return nil
}

func (s *UserService) publish(ctx context.Context, u *models.User, eventType string) {
	if s.Events == nil {
		return
	}
	err := s.Events.Publish(ctx, fmt.Sprint(u.ID), map[string]any{
		"type":     eventType,
		"userId":   u.ID,
		"username": u.Username,
		"email":    u.Email,
	})
	if err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "type", eventType, "error", err)
	}
}

func validateRegistration(in RegisterInput) error {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if len(in.Username) < minUsernameLen || len(in.Username) > maxUsernameLen {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	if _, err := netmail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if in.Password != in.ConfirmPassword {
		return fmt.Errorf("%w: password and confirm password do not match", ErrInvalidInput)
	}
	return nil
}
