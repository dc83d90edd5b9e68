package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType - Dört bildirim türü; payload türü bu alana göre çözülür.
type NotificationType string

const (
	NotificationNewOffer        NotificationType = "new_offer"
	NotificationOfferRejected   NotificationType = "offer_rejected"
	NotificationOfferAccepted   NotificationType = "offer_accepted"
	NotificationListingReceived NotificationType = "listing_received"
)

type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID        `gorm:"type:uuid;index;not null"` // Bildirimin alıcısı
	Type      NotificationType `gorm:"size:30;not null"`
	Payload   string           `gorm:"type:text;not null"` // Türüne göre JSON gövde
	Read      bool             `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
