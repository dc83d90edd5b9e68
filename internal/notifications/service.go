package notifications

import (
	"encoding/json"
	"fmt"

	"loop-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payload - Bildirim gövdesi; dört tür dışında bir şey yazılamaz.
type Payload interface {
	Kind() models.NotificationType
}

type NewOfferPayload struct {
	ListingID      uuid.UUID `json:"listing_id"`
	ListingTitle   string    `json:"listing_title"`
	BuyerID        uuid.UUID `json:"buyer_id"`
	OfferedCredits int64     `json:"offered_credits"`
}

func (NewOfferPayload) Kind() models.NotificationType { return models.NotificationNewOffer }

type OfferRejectedPayload struct {
	ListingID    uuid.UUID `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
}

func (OfferRejectedPayload) Kind() models.NotificationType { return models.NotificationOfferRejected }

type OfferAcceptedPayload struct {
	ListingID       uuid.UUID   `json:"listing_id"`
	ListingTitle    string      `json:"listing_title"`
	TotalPrice      int64       `json:"total_price"`
	TradeListingIDs []uuid.UUID `json:"trade_listing_ids,omitempty"`
}

func (OfferAcceptedPayload) Kind() models.NotificationType { return models.NotificationOfferAccepted }

type ListingReceivedPayload struct {
	ListingID      uuid.UUID `json:"listing_id"`
	ListingTitle   string    `json:"listing_title"`
	SettledCredits int64     `json:"settled_credits"`
}

func (ListingReceivedPayload) Kind() models.NotificationType {
	return models.NotificationListingReceived
}

// Notify - Bildirimi kaydeder. Durum geçişi commit edildikten sonra çağrılır;
// başarısızlık isteği bozmaz, çağıran loglamakla yetinir.
func Notify(db *gorm.DB, userID uuid.UUID, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bildirim gövdesi serileştirilemedi: %w", err)
	}

	n := models.Notification{
		UserID:  userID,
		Type:    payload.Kind(),
		Payload: string(body),
	}

	if err := db.Create(&n).Error; err != nil {
		return fmt.Errorf("bildirim kaydedilemedi: %w", err)
	}
	return nil
}

// Decode - Kayıtlı bildirimi türüne göre çözer. Dört tür için exhaustive;
// tanınmayan tür veri bozulması demektir.
func Decode(n *models.Notification) (Payload, error) {
	var payload Payload
	switch n.Type {
	case models.NotificationNewOffer:
		payload = &NewOfferPayload{}
	case models.NotificationOfferRejected:
		payload = &OfferRejectedPayload{}
	case models.NotificationOfferAccepted:
		payload = &OfferAcceptedPayload{}
	case models.NotificationListingReceived:
		payload = &ListingReceivedPayload{}
	default:
		return nil, fmt.Errorf("bilinmeyen bildirim türü: %s", n.Type)
	}

	if err := json.Unmarshal([]byte(n.Payload), payload); err != nil {
		return nil, fmt.Errorf("bildirim gövdesi çözülemedi: %w", err)
	}
	return payload, nil
}
