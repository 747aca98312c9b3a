package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"github.com/vitalog-app/vitalog-backend/internal/dto"
	"github.com/vitalog-app/vitalog-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`
	Note   string
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func openAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Subscription{}, &testEntry{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
		db.Exec("DELETE FROM refresh_tokens")
		db.Exec("DELETE FROM subscriptions")
		db.Exec("DELETE FROM test_entries")
	})
	return db
}

func newTestAuthService(db *gorm.DB, steps []account.Step) *AuthService {
	return NewAuthService(db, testConfig(), account.NewOrchestrator(db, steps))
}

func TestRegisterAndLogin(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, nil)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:       "jamie@example.com",
		Password:    "correct horse",
		DisplayName: "Jamie",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "jamie@example.com", resp.User.Email)

	login, err := svc.Login(&dto.LoginRequest{Email: "jamie@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "jamie@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, nil)

	_, err := svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, nil)

	reg, err := svc.Register(&dto.RegisterRequest{Email: "rot@example.com", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The old token is single-use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, nil)

	reg, err := svc.Register(&dto.RegisterRequest{Email: "out@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, []account.Step{
		{Label: "entries", Delete: account.DeleteOwned(&testEntry{})},
		{Label: "sessions", Delete: account.DeleteOwned(&models.RefreshToken{})},
	})

	reg, err := svc.Register(&dto.RegisterRequest{Email: "gone@example.com", Password: "password1"})
	require.NoError(t, err)
	userID := reg.User.ID

	require.NoError(t, db.Create(&testEntry{ID: uuid.New(), UserID: userID, Note: "hello"}).Error)

	results, err := svc.DeleteAccount(userID, "password1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "entries", results[0].Step)
	assert.True(t, results[0].Success)
	require.NotNil(t, results[0].Count)
	assert.Equal(t, int64(1), *results[0].Count)

	var users int64
	db.Model(&models.User{}).Where("id = ?", userID).Count(&users)
	assert.Zero(t, users)

	var entries int64
	db.Model(&testEntry{}).Where("user_id = ?", userID).Count(&entries)
	assert.Zero(t, entries)
}

func TestDeleteAccountWrongPasswordDeletesNothing(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, []account.Step{
		{Label: "entries", Delete: account.DeleteOwned(&testEntry{})},
	})

	reg, err := svc.Register(&dto.RegisterRequest{Email: "safe@example.com", Password: "password1"})
	require.NoError(t, err)
	userID := reg.User.ID

	require.NoError(t, db.Create(&testEntry{ID: uuid.New(), UserID: userID, Note: "keep me"}).Error)

	results, err := svc.DeleteAccount(userID, "not the password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, results)

	var entries int64
	db.Model(&testEntry{}).Where("user_id = ?", userID).Count(&entries)
	assert.Equal(t, int64(1), entries)

	var users int64
	db.Model(&models.User{}).Where("id = ?", userID).Count(&users)
	assert.Equal(t, int64(1), users)
}

func TestDeleteAccountEmptyPassword(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, nil)

	reg, err := svc.Register(&dto.RegisterRequest{Email: "blank@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.DeleteAccount(reg.User.ID, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	db := openAuthTestDB(t)
	svc := newTestAuthService(db, nil)

	_, err := svc.DeleteAccount(uuid.New(), "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
