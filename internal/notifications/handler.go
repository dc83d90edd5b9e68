package notifications

import (
	"time"

	"loop-backend/internal/auth"
	"loop-backend/internal/common"
	"loop-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationResponse struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Read      bool        `json:"read"`
	CreatedAt string      `json:"created_at"`
}

// GET /api/notifications
func ListNotificationsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		page, pageSize := common.PageParams(c)

		var total int64
		if err := db.Model(&models.Notification{}).
			Where("user_id = ?", userID).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirimler sayılamadı")
		}

		var items []models.Notification
		if err := db.Where("user_id = ?", userID).
			Order("created_at desc").
			Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirimler listelenemedi")
		}

		resp := make([]NotificationResponse, 0, len(items))
		for i := range items {
			payload, err := Decode(&items[i])
			if err != nil {
				// Bozuk kaydı atla, listeyi düşürme
				continue
			}
			resp = append(resp, NotificationResponse{
				ID:        items[i].ID.String(),
				Type:      string(items[i].Type),
				Payload:   payload,
				Read:      items[i].Read,
				CreatedAt: items[i].CreatedAt.Format(time.RFC3339),
			})
		}

		return common.Paginated(c, resp, common.BuildPagination(total, page, pageSize))
	}
}

// POST /api/notifications/:id/read
func MarkReadHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz bildirim id")
		}

		res := db.Model(&models.Notification{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("read", true)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirim güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Bildirim bulunamadı")
		}

		return common.OK(c, fiber.Map{"read": true})
	}
}
