package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingStatus - İlan durum makinesi
// published -> offered -> accepted -> received
// offered durumundan reddetme/geri çekme ile published'a dönülür.
type ListingStatus string

const (
	ListingPublished ListingStatus = "published"
	ListingOffered   ListingStatus = "offered"
	ListingAccepted  ListingStatus = "accepted"
	ListingReceived  ListingStatus = "received" // Terminal durum
)

// ProductStatus - Ürünün fiziksel durumu
type ProductStatus string

const (
	ProductNew     ProductStatus = "new"
	ProductLikeNew ProductStatus = "like_new"
	ProductUsed    ProductStatus = "used"
	ProductWorn    ProductStatus = "worn"
)

func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductNew, ProductLikeNew, ProductUsed, ProductWorn:
		return true
	}
	return false
}

type Listing struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Seller     *User     `gorm:"foreignKey:SellerID"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null"`
	Category   *Category `gorm:"foreignKey:CategoryID"`

	Title         string        `gorm:"size:150;not null"`
	Description   string        `gorm:"size:2000"`
	Price         int64         `gorm:"not null"` // Satıcının istediği kredi (tam sayı)
	ProductStatus ProductStatus `gorm:"size:20;not null"`

	// Teklif alanları: published durumunda ikisi de null,
	// diğer tüm durumlarda buyer_id dolu olmak zorunda.
	ListingStatus  ListingStatus `gorm:"size:20;not null;index"`
	BuyerID        *uuid.UUID    `gorm:"type:uuid;index"`
	Buyer          *User         `gorm:"foreignKey:BuyerID"`
	OfferedCredits *int64        // Teklife bağlı net kredi; takas farkıyla negatif olabilir

	Disabled  bool `gorm:"not null;default:false"` // Soft delete
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
