package account

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testNote struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`
	Body   string
}

type testReading struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`
	Value  float64
}

type testUser struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testNote{}, &testReading{}, &testUser{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM test_notes")
		db.Exec("DELETE FROM test_readings")
		db.Exec("DELETE FROM test_users")
	})
	return db
}

func revokeUser(db *gorm.DB, userID uuid.UUID) error {
	result := db.Where("id = ?", userID).Delete(&testUser{})
	return result.Error
}

func TestRunDeletesAllCategoriesAndUser(t *testing.T) {
	db := openTestDB(t)
	userID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, db.Create(&testUser{ID: userID, Email: "a@b.c"}).Error)
	require.NoError(t, db.Create(&testNote{ID: uuid.New(), UserID: userID, Body: "one"}).Error)
	require.NoError(t, db.Create(&testNote{ID: uuid.New(), UserID: userID, Body: "two"}).Error)
	require.NoError(t, db.Create(&testNote{ID: uuid.New(), UserID: otherID, Body: "keep"}).Error)
	require.NoError(t, db.Create(&testReading{ID: uuid.New(), UserID: userID, Value: 72.5}).Error)

	o := NewOrchestrator(db, []Step{
		{Label: "notes", Delete: DeleteOwned(&testNote{})},
		{Label: "readings", Delete: DeleteOwned(&testReading{})},
	})

	results, err := o.Run(userID, revokeUser)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.True(t, r.Success, "step %s", r.Step)
		require.NotNil(t, r.Count)
	}
	assert.Equal(t, int64(2), *results[0].Count)
	assert.Equal(t, int64(1), *results[1].Count)

	// Other users' rows untouched, user row gone.
	var remaining int64
	db.Model(&testNote{}).Count(&remaining)
	assert.Equal(t, int64(1), remaining)

	var users int64
	db.Model(&testUser{}).Count(&users)
	assert.Zero(t, users)
}

func TestRunContinuesPastFailedCategory(t *testing.T) {
	db := openTestDB(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&testUser{ID: userID, Email: "a@b.c"}).Error)
	require.NoError(t, db.Create(&testReading{ID: uuid.New(), UserID: userID, Value: 98.6}).Error)

	o := NewOrchestrator(db, []Step{
		{Label: "notes", Delete: func(db *gorm.DB, userID uuid.UUID) (int64, error) {
			return 0, errors.New("table locked")
		}},
		{Label: "readings", Delete: DeleteOwned(&testReading{})},
	})

	results, err := o.Run(userID, revokeUser)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.False(t, results[0].Success)
	assert.Nil(t, results[0].Count)

	assert.True(t, results[1].Success)
	require.NotNil(t, results[1].Count)
	assert.Equal(t, int64(1), *results[1].Count)
}

func TestRunZeroMatchingRowsIsSuccess(t *testing.T) {
	db := openTestDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&testUser{ID: userID, Email: "a@b.c"}).Error)

	o := NewOrchestrator(db, []Step{
		{Label: "notes", Delete: DeleteOwned(&testNote{})},
	})

	results, err := o.Run(userID, revokeUser)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	require.NotNil(t, results[0].Count)
	assert.Zero(t, *results[0].Count)
}

func TestRunRevocationFailureReturnsResults(t *testing.T) {
	db := openTestDB(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&testUser{ID: userID, Email: "a@b.c"}).Error)
	require.NoError(t, db.Create(&testNote{ID: uuid.New(), UserID: userID, Body: "one"}).Error)

	o := NewOrchestrator(db, []Step{
		{Label: "notes", Delete: DeleteOwned(&testNote{})},
	})

	results, err := o.Run(userID, func(db *gorm.DB, userID uuid.UUID) error {
		return errors.New("identity backend unavailable")
	})
	require.Error(t, err)

	// Category cleanup already happened; results must say so.
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	require.NotNil(t, results[0].Count)
	assert.Equal(t, int64(1), *results[0].Count)
}

func TestRunProcessesStepsInOrder(t *testing.T) {
	db := openTestDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&testUser{ID: userID, Email: "a@b.c"}).Error)

	labels := []string{"messages", "conversations", "doses", "logs", "profile"}
	steps := make([]Step, 0, len(labels))
	for _, l := range labels {
		steps = append(steps, Step{Label: l, Delete: func(db *gorm.DB, userID uuid.UUID) (int64, error) {
			return 0, nil
		}})
	}

	results, err := NewOrchestrator(db, steps).Run(userID, revokeUser)
	require.NoError(t, err)
	require.Len(t, results, len(labels))
	for i, r := range results {
		assert.Equal(t, labels[i], r.Step)
	}
}
