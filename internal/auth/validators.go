// File: internal/auth/validators.go
package auth

import (
	"context"
	"regexp"

	"converse_backend/internal/common"
	"converse_backend/internal/user"
)

var (
	emailRegex = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}))$`)

	// Usernames are ASCII letters, digits, hyphen and underscore only.
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// validEmail checks the address format before touching the store, then
// rejects addresses that already belong to a row. Each validator returns at
// most one field error; callers short-circuit on the first non-empty result.
func validEmail(ctx context.Context, email string, users user.Repository) ([]common.FieldError, error) {
	if !emailRegex.MatchString(email) {
		return common.FieldErrors("email", "Please check your email address"), nil
	}
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return common.FieldErrors("email", "User already exists. Please sign in."), nil
	}
	return nil, nil
}

// validUsername is the registration-time check: charset first, then the
// (username, login type) uniqueness lookup.
func validUsername(ctx context.Context, username string, loginType user.LoginType, users user.Repository) ([]common.FieldError, error) {
	if !usernameRegex.MatchString(username) {
		return common.FieldErrors("username", "Please choose a username with only letters, numbers, underscores and hyphens."), nil
	}
	existing, err := users.FindByUsernameAndLoginType(ctx, username, loginType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return common.FieldErrors("username", "Username is not currently available, please choose another."), nil
	}
	return nil, nil
}

// validLoginUsername runs the charset check only. The login workflow handles
// the store lookup itself so a missing row and a wrong password produce the
// same response.
func validLoginUsername(username string) []common.FieldError {
	if !usernameRegex.MatchString(username) {
		return common.FieldErrors("username", "Please check your username.")
	}
	return nil
}
