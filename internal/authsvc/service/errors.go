package service

import "errors"

// Error kinds surfaced by the user service. Handlers map them onto the
// transport taxonomy.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid verification token")
	ErrExpiredToken       = errors.New("verification token has expired")
	ErrAlreadyVerified    = errors.New("user is already verified")
	ErrMailSend           = errors.New("failed to send activation email")
)
