package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListingTrade - Kabul edilen teklifte ana ilana bağlanan takas ilanları.
// Kabul anında yazılır, sonradan değiştirilmez.
type ListingTrade struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ListingID      uuid.UUID `gorm:"type:uuid;index;not null"` // Ana ilan
	Listing        *Listing  `gorm:"foreignKey:ListingID"`
	TradeListingID uuid.UUID `gorm:"type:uuid;index;not null"` // Takasa verilen ilan
	TradeListing   *Listing  `gorm:"foreignKey:TradeListingID"`
	CreatedAt      time.Time
}

func (t *ListingTrade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
