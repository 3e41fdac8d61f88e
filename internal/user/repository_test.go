// File: internal/user/repository_test.go
package user

import (
	"context"
	"fmt"
	"testing"

	"converse_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) Repository {
	t.Helper()
	// A named shared-cache DSN keeps the in-memory database alive across
	// the pool's connections without leaking state between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return NewGORMRepository(db)
}

func newUser(username, email string, loginType LoginType) *User {
	return &User{
		ExternalID: "ext-" + username,
		Username:   username,
		Email:      email,
		LoginType:  loginType,
	}
}

func TestCreateAndFind(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created := newUser("alice", "Alice@Example.com", LoginTypeEmail)
	require.NoError(t, repo.Create(ctx, created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)

	byEmail, err := repo.FindByEmail(ctx, "  ALICE@example.COM ")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := repo.FindByUsernameAndLoginType(ctx, "alice", LoginTypeEmail)
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, created.ID, byUsername.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)
}

func TestFindMissingReturnsNil(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	byEmail, err := repo.FindByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)

	byUsername, err := repo.FindByUsernameAndLoginType(ctx, "ghost", LoginTypeEmail)
	require.NoError(t, err)
	assert.Nil(t, byUsername)

	byID, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, byID)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com", LoginTypeEmail)))

	err := repo.Create(ctx, newUser("alice2", "alice@example.com", LoginTypeEmail))
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)

	// The losing row was not persisted.
	dup, findErr := repo.FindByUsernameAndLoginType(ctx, "alice2", LoginTypeEmail)
	require.NoError(t, findErr)
	assert.Nil(t, dup)
}

func TestCreateDuplicateUsernamePerLoginType(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com", LoginTypeEmail)))

	// Same (username, loginType) pair is rejected.
	err := repo.Create(ctx, newUser("alice", "other@example.com", LoginTypeEmail))
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.Code, apiErr.Code)

	// Same username under a different login type coexists.
	github := newUser("alice", "alice-gh@example.com", LoginTypeGitHub)
	require.NoError(t, repo.Create(ctx, github))

	found, err := repo.FindByUsernameAndLoginType(ctx, "alice", LoginTypeGitHub)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, github.ID, found.ID)
}
