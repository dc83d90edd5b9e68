package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loop-backend/internal/common"
	"loop-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CreditMovement{}))
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

func adjustCredits(t *testing.T, app *fiber.App, userID uuid.UUID, body AdjustCreditsRequest) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest("POST", "/admin/users/"+userID.String()+"/credits", &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAdjustCredits(t *testing.T) {
	db := newTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: common.ErrorHandler})
	app.Post("/admin/users/:id/credits", AdjustCreditsHandler(db))

	user := createUser(t, db, 100, 20)

	resp := adjustCredits(t, app, user.ID, AdjustCreditsRequest{
		BalanceDelta: 50,
		Reason:       "Destek düzeltmesi",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	require.Equal(t, int64(150), got.CreditsBalance)
	require.Equal(t, int64(20), got.CreditsLocked)
}

// Sadece locked alanına dokunan düzeltme hareket kaydında yapısal olarak
// görünmeli; amount 0, locked_amount delta.
func TestAdjustCreditsLockedOnly(t *testing.T) {
	db := newTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: common.ErrorHandler})
	app.Post("/admin/users/:id/credits", AdjustCreditsHandler(db))

	user := createUser(t, db, 100, 20)

	resp := adjustCredits(t, app, user.ID, AdjustCreditsRequest{
		LockedDelta: -15,
		Reason:      "Takılı rezerv temizliği",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	require.Equal(t, int64(100), got.CreditsBalance)
	require.Equal(t, int64(5), got.CreditsLocked)

	var movement models.CreditMovement
	require.NoError(t, db.First(&movement, "to_user_id = ?", user.ID).Error)
	require.Equal(t, models.MovementAdminAdjust, movement.Type)
	require.Equal(t, int64(0), movement.Amount)
	require.Equal(t, int64(-15), movement.LockedAmount)
}

func TestAdjustCreditsValidation(t *testing.T) {
	db := newTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: common.ErrorHandler})
	app.Post("/admin/users/:id/credits", AdjustCreditsHandler(db))

	user := createUser(t, db, 10, 0)

	// İki delta da sıfır olamaz
	resp := adjustCredits(t, app, user.ID, AdjustCreditsRequest{Reason: "boş"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Negatif sonuç guard'a takılır, bakiye değişmez
	resp = adjustCredits(t, app, user.ID, AdjustCreditsRequest{BalanceDelta: -11, Reason: "fazla düşüm"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	require.Equal(t, int64(10), got.CreditsBalance)
}
