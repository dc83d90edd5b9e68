package listings

import (
	"strings"
	"time"

	"loop-backend/internal/auth"
	"loop-backend/internal/common"
	"loop-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateListingRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	CategoryID    string `json:"category_id"`
	ProductStatus string `json:"product_status"` // new / like_new / used / worn
}

type UpdateListingRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	CategoryID    *string `json:"category_id"`
	ProductStatus *string `json:"product_status"`
}

type ListingResponse struct {
	ID             string  `json:"id"`
	SellerID       string  `json:"seller_id"`
	BuyerID        *string `json:"buyer_id"`
	CategoryID     string  `json:"category_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          int64   `json:"price"`
	ProductStatus  string  `json:"product_status"`
	ListingStatus  string  `json:"listing_status"`
	OfferedCredits *int64  `json:"offered_credits"`
	CreatedAt      string  `json:"created_at"`
}

func toListingResponse(l *models.Listing) ListingResponse {
	resp := ListingResponse{
		ID:             l.ID.String(),
		SellerID:       l.SellerID.String(),
		CategoryID:     l.CategoryID.String(),
		Title:          l.Title,
		Description:    l.Description,
		Price:          l.Price,
		ProductStatus:  string(l.ProductStatus),
		ListingStatus:  string(l.ListingStatus),
		OfferedCredits: l.OfferedCredits,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
	if l.BuyerID != nil {
		buyerID := l.BuyerID.String()
		resp.BuyerID = &buyerID
	}
	return resp
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ilan id")
	}
	return id, nil
}

// POST /api/listings
func CreateListingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateListingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Başlık zorunlu")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}
		if !models.ValidProductStatus(models.ProductStatus(body.ProductStatus)) {
			return fiber.NewError(fiber.StatusBadRequest, "product_status 'new', 'like_new', 'used' veya 'worn' olmalı")
		}

		categoryID, err := uuid.Parse(body.CategoryID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori id")
		}
		var catCount int64
		db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&catCount)
		if catCount == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori bulunamadı")
		}

		listing := models.Listing{
			SellerID:      userID,
			CategoryID:    categoryID,
			Title:         body.Title,
			Description:   strings.TrimSpace(body.Description),
			Price:         body.Price,
			ProductStatus: models.ProductStatus(body.ProductStatus),
			ListingStatus: models.ListingPublished,
		}

		if err := db.Create(&listing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlan oluşturulamadı")
		}

		return common.Created(c, toListingResponse(&listing))
	}
}

// GET /api/listings?category_id=...&status=...&seller_id=...
func ListListingsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize := common.PageParams(c)

		dbq := db.Model(&models.Listing{}).Where("disabled = ?", false)

		if categoryID := c.Query("category_id"); categoryID != "" {
			id, err := uuid.Parse(categoryID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori id")
			}
			dbq = dbq.Where("category_id = ?", id)
		}
		if status := c.Query("status"); status != "" {
			switch models.ListingStatus(status) {
			case models.ListingPublished, models.ListingOffered, models.ListingAccepted, models.ListingReceived:
				dbq = dbq.Where("listing_status = ?", status)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ilan durumu")
			}
		}
		if sellerID := c.Query("seller_id"); sellerID != "" {
			id, err := uuid.Parse(sellerID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satıcı id")
			}
			dbq = dbq.Where("seller_id = ?", id)
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlanlar sayılamadı")
		}

		var items []models.Listing
		if err := dbq.Order("created_at desc").
			Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlanlar listelenemedi")
		}

		resp := make([]ListingResponse, 0, len(items))
		for i := range items {
			resp = append(resp, toListingResponse(&items[i]))
		}

		return common.Paginated(c, resp, common.BuildPagination(total, page, pageSize))
	}
}

// GET /api/listings/:id
func GetListingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var listing models.Listing
		if err := db.First(&listing, "id = ? AND disabled = ?", id, false).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
		}

		return common.OK(c, toListingResponse(&listing))
	}
}

// PUT /api/listings/:id
// Sadece satıcı ve sadece published durumdayken; aktif teklifli ilan düzenlenemez.
func UpdateListingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var listing models.Listing
		if err := db.First(&listing, "id = ? AND disabled = ?", id, false).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
		}
		if listing.SellerID != userID {
			return fiber.NewError(fiber.StatusUnauthorized, "Bu ilanı sadece satıcı düzenleyebilir")
		}
		if listing.ListingStatus != models.ListingPublished {
			return fiber.NewError(fiber.StatusBadRequest, "Aktif teklifi olan ilan düzenlenemez")
		}

		var body UpdateListingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		updates := map[string]interface{}{}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Başlık boş olamaz")
			}
			updates["title"] = title
		}
		if body.Description != nil {
			updates["description"] = strings.TrimSpace(*body.Description)
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
			}
			updates["price"] = *body.Price
		}
		if body.ProductStatus != nil {
			if !models.ValidProductStatus(models.ProductStatus(*body.ProductStatus)) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün durumu")
			}
			updates["product_status"] = *body.ProductStatus
		}
		if body.CategoryID != nil {
			categoryID, err := uuid.Parse(*body.CategoryID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori id")
			}
			var catCount int64
			db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&catCount)
			if catCount == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Kategori bulunamadı")
			}
			updates["category_id"] = categoryID
		}

		if len(updates) > 0 {
			// Durum WHERE'de tekrar doğrulanır; yarışan teklif kazanırsa satır değişmez
			res := db.Model(&models.Listing{}).
				Where("id = ? AND listing_status = ?", id, models.ListingPublished).
				Updates(updates)
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "İlan güncellenemedi")
			}
			if res.RowsAffected != 1 {
				return fiber.NewError(fiber.StatusConflict, "İlan durumu bu sırada değişti")
			}
		}

		if err := db.First(&listing, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlan sorgulanamadı")
		}
		return common.OK(c, toListingResponse(&listing))
	}
}

// DELETE /api/listings/:id
// Soft delete: sadece published durumdaki ilan kapatılabilir.
func DeleteListingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var listing models.Listing
		if err := db.First(&listing, "id = ? AND disabled = ?", id, false).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
		}
		if listing.SellerID != userID {
			return fiber.NewError(fiber.StatusUnauthorized, "Bu ilanı sadece satıcı kaldırabilir")
		}
		if listing.ListingStatus != models.ListingPublished {
			return fiber.NewError(fiber.StatusBadRequest, "Aktif takası olan ilan kaldırılamaz")
		}

		res := db.Model(&models.Listing{}).
			Where("id = ? AND listing_status = ?", id, models.ListingPublished).
			Update("disabled", true)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlan kaldırılamadı")
		}
		if res.RowsAffected != 1 {
			return fiber.NewError(fiber.StatusConflict, "İlan durumu bu sırada değişti")
		}

		return common.OK(c, fiber.Map{"deleted": true})
	}
}
