package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a user lookup finds no matching record.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when signing up with an email that already
	// belongs to another account.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrInvalidCredentials is returned on sign-in when the email/password
	// pair does not match. The message is surfaced verbatim to the user and
	// deliberately does not say which half was wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Email)
}

type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet strength requirements: %s", e.Reason)
}
