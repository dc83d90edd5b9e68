package ledger

import (
	"testing"

	"loop-backend/internal/apperr"
	"loop-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, balance, locked int64) *models.User {
	t.Helper()
	user := models.User{
		Name:           "Test",
		Email:          uuid.NewString() + "@loop.test",
		PasswordHash:   "x",
		Role:           models.RoleMember,
		CreditsBalance: balance,
		CreditsLocked:  locked,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func requireCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperr.Error)
	require.True(t, ok, "apperr.Error bekleniyordu, gelen: %v", err)
	require.Equal(t, code, appErr.Code)
}

func requireCredits(t *testing.T, db *gorm.DB, userID uuid.UUID, balance, locked int64) {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	require.Equal(t, balance, user.CreditsBalance)
	require.Equal(t, locked, user.CreditsLocked)
}

func TestAdjust(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, 100, 0)

	// balance -> locked rezervasyonu
	require.NoError(t, Adjust(db, user.ID, -40, 40))
	requireCredits(t, db, user.ID, 60, 40)

	// rezervin serbest bırakılması
	require.NoError(t, Adjust(db, user.ID, 40, -40))
	requireCredits(t, db, user.ID, 100, 0)

	// sıfır delta no-op
	require.NoError(t, Adjust(db, user.ID, 0, 0))
	requireCredits(t, db, user.ID, 100, 0)
}

func TestAdjustNegativeGuard(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, 30, 10)

	requireCode(t, Adjust(db, user.ID, -31, 0), apperr.CodeInsufficientCredits)
	requireCredits(t, db, user.ID, 30, 10)

	requireCode(t, Adjust(db, user.ID, 0, -11), apperr.CodeInsufficientCredits)
	requireCredits(t, db, user.ID, 30, 10)

	// İki delta birlikte değerlendirilir: balance yeterli, locked değilse reddedilir
	requireCode(t, Adjust(db, user.ID, -10, -11), apperr.CodeInsufficientCredits)
	requireCredits(t, db, user.ID, 30, 10)
}

func TestAdjustMissingUser(t *testing.T) {
	db := newTestDB(t)
	requireCode(t, Adjust(db, uuid.New(), 10, 0), apperr.CodeNotFound)
}

func TestTransfer(t *testing.T) {
	db := newTestDB(t)
	from := createUser(t, db, 100, 0)
	to := createUser(t, db, 5, 0)

	require.NoError(t, Transfer(db, from.ID, to.ID, 25))
	requireCredits(t, db, from.ID, 75, 0)
	requireCredits(t, db, to.ID, 30, 0)

	requireCode(t, Transfer(db, from.ID, to.ID, 0), apperr.CodeInvalidInput)
	requireCode(t, Transfer(db, from.ID, from.ID, 10), apperr.CodeInvalidInput)
	requireCode(t, Transfer(db, from.ID, to.ID, 1000), apperr.CodeInsufficientCredits)
}

func TestBalance(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, 42, 7)

	balance, locked, err := Balance(db, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(42), balance)
	require.Equal(t, int64(7), locked)

	_, _, err = Balance(db, uuid.New())
	requireCode(t, err, apperr.CodeNotFound)
}
