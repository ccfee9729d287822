package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/models"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/repo"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/tokens"
)

type fakeMailer struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	To       string
	Username string
	Token    string
}

func (m *fakeMailer) SendVerification(_ context.Context, to, username, token string) error {
	if m.fail {
		return errors.New("smtp refused")
	}
	m.sent = append(m.sent, sentMail{To: to, Username: username, Token: token})
	return nil
}

func newTestService(t *testing.T) (*UserService, *fakeMailer) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mailer := &fakeMailer{}
	svc := &UserService{
		Repo:      &repo.GormRepo{DB: db},
		Mailer:    mailer,
		JWTSecret: []byte("test-jwt-secret"),
		TokenTTL:  24 * time.Hour,
	}
	return svc, mailer
}

func registerAlice(t *testing.T, svc *UserService) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "a@x.io",
		Password:        "pw12345",
		ConfirmPassword: "pw12345",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_CreatesPendingUser(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestService(t)
	user := registerAlice(t, svc)

	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.Enabled)
	assert.Equal(t, []string{"ROLE_USER"}, user.RoleList())
	assert.NotEqual(t, "pw12345", user.PasswordHash)
	require.NotNil(t, user.VerificationToken)
	require.NotNil(t, user.TokenExpiration)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *user.TokenExpiration, time.Minute)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@x.io", mailer.sent[0].To)
	assert.Equal(t, *user.VerificationToken, mailer.sent[0].Token)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"missing fields", RegisterInput{Username: "alice"}},
		{"password mismatch", RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw12345", ConfirmPassword: "other"}},
		{"short username", RegisterInput{Username: "a", Email: "a@x.io", Password: "pw12345", ConfirmPassword: "pw12345"}},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "pw12345", ConfirmPassword: "pw12345"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw", ConfirmPassword: "pw"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice2", Email: "a@x.io", Password: "pw12345", ConfirmPassword: "pw12345",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_UsernameTaken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a2@x.io", Password: "pw12345", ConfirmPassword: "pw12345",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_MailFailureKeepsUser(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestService(t)
	mailer.fail = true

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.io", Password: "pw12345", ConfirmPassword: "pw12345",
	})
	assert.ErrorIs(t, err, ErrMailSend)

	// The row survives so resend can recover.
	mailer.fail = false
	require.NoError(t, svc.ResendVerification(context.Background(), "a@x.io"))
	require.Len(t, mailer.sent, 1)
}

func TestVerify_EnablesOnce(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	msg, err := svc.Verify(ctx, *user.VerificationToken)
	require.NoError(t, err)
	assert.Equal(t, "alice has been successfully verified. You can now log in.", msg)

	verified, err := svc.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, verified.Enabled)
	assert.Nil(t, verified.VerificationToken)
	assert.Nil(t, verified.TokenExpiration)

	// Same token again: the token was cleared on first use.
	_, err = svc.Verify(ctx, *user.VerificationToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	user.TokenExpiration = &past
	require.NoError(t, svc.Repo.Save(ctx, user))

	_, err := svc.Verify(ctx, *user.VerificationToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	stale, err := svc.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, stale.Enabled)
}

func TestVerify_UnknownToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Verify(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResend_AlreadyVerified(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	_, err := svc.Verify(ctx, *user.VerificationToken)
	require.NoError(t, err)

	err = svc.ResendVerification(ctx, "a@x.io")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestResend_RotatesToken(t *testing.T) {
	t.Parallel()

	svc, mailer := newTestService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()
	oldToken := *user.VerificationToken

	require.NoError(t, svc.ResendVerification(ctx, "a@x.io"))
	require.Len(t, mailer.sent, 2)
	assert.NotEqual(t, oldToken, mailer.sent[1].Token)

	_, err := svc.Verify(ctx, oldToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Verify(ctx, mailer.sent[1].Token)
	assert.NoError(t, err)
}

func TestLogin_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	_, err := svc.Verify(ctx, *user.VerificationToken)
	require.NoError(t, err)

	res, err := svc.Login(ctx, "a@x.io", "pw12345")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "a@x.io", res.Email)
	assert.EqualValues(t, (24 * time.Hour).Milliseconds(), res.ExpiresIn)

	claims, err := tokens.Parse(res.Token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Contains(t, claims.Roles, "ROLE_USER")
	assert.Equal(t, int64(24*60*60), claims.ExpiresAt.Unix()-claims.IssuedAt.Unix())

	// Username works as the identifier too.
	_, err = svc.Login(ctx, "alice", "pw12345")
	assert.NoError(t, err)
}

func TestLogin_CollapsedFailures(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	user := registerAlice(t, svc) // not verified yet

	// OAuth2-only account.
	oauthUser, _, err := svc.OAuthLogin(ctx, "bob@x.io", "Bob Jones")
	require.NoError(t, err)
	require.Empty(t, oauthUser.PasswordHash)

	tests := []struct {
		name       string
		identifier string
		password   string
	}{
		{"unknown user", "nobody@x.io", "pw12345"},
		{"wrong password", "a@x.io", "wrong"},
		{"not enabled", "a@x.io", "pw12345"},
		{"oauth2-only account", "bob@x.io", "anything"},
		{"empty password", "a@x.io", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.identifier, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}

	_ = user
}

func TestOAuthLogin_LinkingSequence(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, token, err := svc.OAuthLogin(ctx, "bob@x.io", "Bob Jones")
	require.NoError(t, err)
	assert.Equal(t, "bob_jones", first.Username)
	assert.True(t, first.Enabled)
	assert.Empty(t, first.PasswordHash)
	assert.NotEmpty(t, token)

	second, _, err := svc.OAuthLogin(ctx, "other@x.io", "Bob Jones")
	require.NoError(t, err)
	assert.Equal(t, "bob_jones_other", second.Username)

	third, _, err := svc.OAuthLogin(ctx, "yet@x.io", "Bob Jones")
	require.NoError(t, err)
	assert.Equal(t, "bob_jones_yet", third.Username)

	// Re-login with a known email reuses the row.
	again, _, err := svc.OAuthLogin(ctx, "bob@x.io", "Completely Different Name")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestOAuthLogin_CounterSuffix(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	// Occupy both the base and the email-prefixed candidate.
	for _, u := range []*models.User{
		{Username: "bob_jones", Email: "x1@x.io"},
		{Username: "bob_jones_yet", Email: "x2@x.io"},
	} {
		u.SetRoles([]string{"USER"})
		require.NoError(t, svc.Repo.Create(ctx, u))
	}

	user, _, err := svc.OAuthLogin(ctx, "yet@x.io", "Bob Jones")
	require.NoError(t, err)
	assert.Equal(t, "bob_jones_yet_1", user.Username)
}

func TestOAuthLogin_NameMissingUsesLocalPart(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user, _, err := svc.OAuthLogin(context.Background(), "carol@x.io", "")
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
}

func TestUpdate_PartialAndRehash(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()
	oldHash := user.PasswordHash

	updated, err := svc.Update(ctx, user.ID, UpdateInput{Email: "new@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "new@x.io", updated.Email)
	assert.Equal(t, oldHash, updated.PasswordHash)

	// Supplying the same password still re-hashes it.
	updated, err = svc.Update(ctx, user.ID, UpdateInput{Password: "pw12345"})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	_, err = svc.Update(ctx, user.ID, UpdateInput{Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user := registerAlice(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err := svc.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, user.ID), ErrNotFound)
}
