package admin

import (
	"fmt"
	"time"

	"loop-backend/internal/common"
	"loop-backend/internal/ledger"
	"loop-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdjustCreditsRequest struct {
	BalanceDelta int64  `json:"balance_delta"`
	LockedDelta  int64  `json:"locked_delta"`
	Reason       string `json:"reason"`
}

type AdminUserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	CreditsBalance int64  `json:"credits_balance"`
	CreditsLocked  int64  `json:"credits_locked"`
	CreatedAt      string `json:"created_at"`
}

// POST /api/admin/users/:id/credits
// Manuel kredi düzeltmesi; hareket kaydıyla birlikte tek transaction'da.
func AdjustCreditsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}

		var body AdjustCreditsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.BalanceDelta == 0 && body.LockedDelta == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir delta sıfırdan farklı olmalı")
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := ledger.Adjust(tx, userID, body.BalanceDelta, body.LockedDelta); err != nil {
				return err
			}

			toID := userID
			movement := models.CreditMovement{
				ToUserID:     &toID,
				Amount:       body.BalanceDelta,
				LockedAmount: body.LockedDelta,
				Type:         models.MovementAdminAdjust,
				Description:  fmt.Sprintf("Admin düzeltmesi: %s", body.Reason),
			}
			return tx.Create(&movement).Error
		})
		if txErr != nil {
			return txErr
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı sorgulanamadı")
		}

		return common.OK(c, fiber.Map{
			"id":              user.ID.String(),
			"credits_balance": user.CreditsBalance,
			"credits_locked":  user.CreditsLocked,
		})
	}
}

// GET /api/admin/users
func ListUsersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize := common.PageParams(c)

		var total int64
		if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar sayılamadı")
		}

		var users []models.User
		if err := db.Order("created_at desc").
			Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		resp := make([]AdminUserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, AdminUserResponse{
				ID:             u.ID.String(),
				Name:           u.Name,
				Email:          u.Email,
				Role:           string(u.Role),
				CreditsBalance: u.CreditsBalance,
				CreditsLocked:  u.CreditsLocked,
				CreatedAt:      u.CreatedAt.Format(time.RFC3339),
			})
		}

		return common.Paginated(c, resp, common.BuildPagination(total, page, pageSize))
	}
}
