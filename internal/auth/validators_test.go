// File: internal/auth/validators_test.go
package auth

import (
	"context"
	"testing"

	"converse_backend/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmailFormat(t *testing.T) {
	// A failing format check must never reach the store.
	users := &fakeUserRepo{
		findByEmail: func(ctx context.Context, email string) (*user.User, error) {
			t.Fatalf("store consulted for malformed email %q", email)
			return nil, nil
		},
	}

	badEmails := []string{
		"",
		"plainaddress",
		"no at sign.com",
		"user@@example.com",
		"user@nodot",
		"user name@example.com",
		"user@exam ple.com",
		"<user>@example.com",
		"user@example.com ",
		"back\\slash@example.com",
	}
	for _, email := range badEmails {
		fieldErrs, err := validEmail(context.Background(), email, users)
		require.NoError(t, err, email)
		require.Len(t, fieldErrs, 1, email)
		assert.Equal(t, "email", fieldErrs[0].Field, email)
		assert.Equal(t, "Please check your email address", fieldErrs[0].Message, email)
	}
}

func TestValidEmailAlreadyExists(t *testing.T) {
	existing := &user.User{Email: "taken@example.com"}
	users := &fakeUserRepo{
		findByEmail: func(ctx context.Context, email string) (*user.User, error) {
			return existing, nil
		},
	}

	fieldErrs, err := validEmail(context.Background(), "taken@example.com", users)
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "email", fieldErrs[0].Field)
	assert.Equal(t, "User already exists. Please sign in.", fieldErrs[0].Message)
}

func TestValidEmailAccepted(t *testing.T) {
	users := &fakeUserRepo{}

	goodEmails := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"user-name_1@example.io",
	}
	for _, email := range goodEmails {
		fieldErrs, err := validEmail(context.Background(), email, users)
		require.NoError(t, err, email)
		assert.Nil(t, fieldErrs, email)
	}
}

func TestValidUsernameCharset(t *testing.T) {
	users := &fakeUserRepo{
		findByUsernameAndLoginType: func(ctx context.Context, username string, lt user.LoginType) (*user.User, error) {
			t.Fatalf("store consulted for malformed username %q", username)
			return nil, nil
		},
	}

	badUsernames := []string{"", "has space", "semi;colon", "ümlaut", "at@sign", "dot.name", "comma,name"}
	for _, username := range badUsernames {
		fieldErrs, err := validUsername(context.Background(), username, user.LoginTypeEmail, users)
		require.NoError(t, err, username)
		require.Len(t, fieldErrs, 1, username)
		assert.Equal(t, "username", fieldErrs[0].Field, username)
		assert.Equal(t, "Please choose a username with only letters, numbers, underscores and hyphens.", fieldErrs[0].Message, username)

		// The login-time check applies the same charset rule.
		loginErrs := validLoginUsername(username)
		require.Len(t, loginErrs, 1, username)
		assert.Equal(t, "username", loginErrs[0].Field, username)
		assert.Equal(t, "Please check your username.", loginErrs[0].Message, username)
	}
}

func TestValidUsernameTaken(t *testing.T) {
	users := &fakeUserRepo{
		findByUsernameAndLoginType: func(ctx context.Context, username string, lt user.LoginType) (*user.User, error) {
			assert.Equal(t, user.LoginTypeEmail, lt)
			return &user.User{Username: username, LoginType: lt}, nil
		},
	}

	fieldErrs, err := validUsername(context.Background(), "alice", user.LoginTypeEmail, users)
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "username", fieldErrs[0].Field)
	assert.Equal(t, "Username is not currently available, please choose another.", fieldErrs[0].Message)
}

func TestValidUsernameAccepted(t *testing.T) {
	users := &fakeUserRepo{}

	for _, username := range []string{"alice", "a", "under_score", "hy-phen", "Mixed123"} {
		fieldErrs, err := validUsername(context.Background(), username, user.LoginTypeEmail, users)
		require.NoError(t, err, username)
		assert.Nil(t, fieldErrs, username)
		assert.Nil(t, validLoginUsername(username), username)
	}
}
