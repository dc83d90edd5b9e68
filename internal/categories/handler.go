package categories

import (
	"strings"

	"loop-backend/internal/common"
	"loop-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kategori ağacında izin verilen en fazla derinlik.
const MaxDepth = 20

type CategoryNode struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Children []*CategoryNode `json:"children"`
}

type CreateCategoryRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

// BuildTree - Düz kategori listesinden ağaç kurar. Özyineleme yok:
// parent haritası üzerinden iteratif kurulum, MaxDepth'ten derin dallar budanır.
func BuildTree(categories []models.Category) []*CategoryNode {
	nodes := make(map[uuid.UUID]*CategoryNode, len(categories))
	depths := make(map[uuid.UUID]int, len(categories))
	parents := make(map[uuid.UUID]*uuid.UUID, len(categories))

	for i := range categories {
		cat := &categories[i]
		nodes[cat.ID] = &CategoryNode{
			ID:       cat.ID.String(),
			Name:     cat.Name,
			Children: []*CategoryNode{},
		}
		parents[cat.ID] = cat.ParentID
	}

	// Her düğümün derinliğini parent zincirini izleyerek bul;
	// zincir MaxDepth'i aşarsa ya da döngüye girerse düğüm atlanır.
	depthOf := func(id uuid.UUID) int {
		if d, ok := depths[id]; ok {
			return d
		}
		depth := 0
		cur := id
		for {
			parent := parents[cur]
			if parent == nil {
				break
			}
			if _, ok := nodes[*parent]; !ok {
				break
			}
			depth++
			if depth > MaxDepth {
				return -1
			}
			cur = *parent
		}
		depths[id] = depth
		return depth
	}

	roots := []*CategoryNode{}
	for i := range categories {
		cat := &categories[i]
		d := depthOf(cat.ID)
		if d < 0 || d > MaxDepth {
			continue
		}
		if cat.ParentID != nil {
			if parent, ok := nodes[*cat.ParentID]; ok {
				parent.Children = append(parent.Children, nodes[cat.ID])
				continue
			}
		}
		roots = append(roots, nodes[cat.ID])
	}
	return roots
}

// GET /api/categories
func ListCategoriesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := db.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return common.OK(c, BuildTree(categories))
	}
}

// POST /api/admin/categories
func CreateCategoryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		cat := models.Category{Name: body.Name}

		if body.ParentID != nil {
			parentID, err := uuid.Parse(*body.ParentID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz üst kategori id")
			}

			// Üst zincirin derinliğini kontrol et; yeni düğüm sınırı aşmamalı
			depth := 1
			cur := parentID
			for {
				var parent models.Category
				if err := db.First(&parent, "id = ?", cur).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Üst kategori bulunamadı")
				}
				if parent.ParentID == nil {
					break
				}
				depth++
				if depth >= MaxDepth {
					return fiber.NewError(fiber.StatusBadRequest, "Kategori ağacı çok derin")
				}
				cur = *parent.ParentID
			}
			cat.ParentID = &parentID
		}

		if err := db.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori oluşturulamadı")
		}

		return common.Created(c, fiber.Map{
			"id":        cat.ID.String(),
			"name":      cat.Name,
			"parent_id": body.ParentID,
		})
	}
}

// PUT /api/admin/categories/:id
func UpdateCategoryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori id")
		}

		var cat models.Category
		if err := db.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kategori adı boş olamaz")
			}
			cat.Name = name
		}

		if err := db.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori güncellenemedi")
		}

		return common.OK(c, fiber.Map{
			"id":   cat.ID.String(),
			"name": cat.Name,
		})
	}
}

// DELETE /api/admin/categories/:id
func DeleteCategoryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori id")
		}

		var cat models.Category
		if err := db.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var childCount int64
		db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount)
		if childCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Alt kategorisi olan kategori silinemez")
		}

		var listingCount int64
		db.Model(&models.Listing{}).Where("category_id = ?", id).Count(&listingCount)
		if listingCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "İlanı olan kategori silinemez")
		}

		if err := db.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
