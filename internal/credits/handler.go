package credits

import (
	"time"

	"loop-backend/internal/auth"
	"loop-backend/internal/common"
	"loop-backend/internal/ledger"
	"loop-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRequest struct {
	ToUserID string `json:"to_user_id"`
	Amount   int64  `json:"amount"`
}

type MovementResponse struct {
	ID           string  `json:"id"`
	FromUserID   *string `json:"from_user_id"`
	ToUserID     *string `json:"to_user_id"`
	Amount       int64   `json:"amount"`
	LockedAmount int64   `json:"locked_amount"`
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
}

func toMovementResponse(m *models.CreditMovement) MovementResponse {
	resp := MovementResponse{
		ID:           m.ID.String(),
		Amount:       m.Amount,
		LockedAmount: m.LockedAmount,
		Type:         string(m.Type),
		Description:  m.Description,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
	if m.FromUserID != nil {
		from := m.FromUserID.String()
		resp.FromUserID = &from
	}
	if m.ToUserID != nil {
		to := m.ToUserID.String()
		resp.ToUserID = &to
	}
	return resp
}

// POST /api/donations
// Balance'tan balance'a bağış; locked alanlarına dokunmaz.
func CreateDonationHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body DonationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		toUserID, err := uuid.Parse(body.ToUserID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı id")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		var movement models.CreditMovement
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := ledger.Transfer(tx, userID, toUserID, body.Amount); err != nil {
				return err
			}

			fromID := userID
			toID := toUserID
			movement = models.CreditMovement{
				FromUserID:  &fromID,
				ToUserID:    &toID,
				Amount:      body.Amount,
				Type:        models.MovementDonation,
				Description: "Bağış",
			}
			return tx.Create(&movement).Error
		})
		if txErr != nil {
			return txErr
		}

		return common.Created(c, toMovementResponse(&movement))
	}
}

// GET /api/credits/movements
func ListMovementsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		page, pageSize := common.PageParams(c)

		dbq := db.Model(&models.CreditMovement{}).
			Where("from_user_id = ? OR to_user_id = ?", userID, userID)

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler sayılamadı")
		}

		var movements []models.CreditMovement
		if err := dbq.Order("created_at desc").
			Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		resp := make([]MovementResponse, 0, len(movements))
		for i := range movements {
			resp = append(resp, toMovementResponse(&movements[i]))
		}

		return common.Paginated(c, resp, common.BuildPagination(total, page, pageSize))
	}
}
