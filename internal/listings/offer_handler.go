package listings

import (
	"log"

	"loop-backend/internal/auth"
	"loop-backend/internal/common"
	"loop-backend/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewOfferRequest struct {
	Price int64 `json:"price"`
}

type AcceptOfferRequest struct {
	TradingListingIDs []string `json:"tradingListingIds"`
}

// POST /api/listings/:id/offer
func NewOfferHandler(db *gorm.DB, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body NewOfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		listing, err := svc.NewOffer(id, userID, body.Price)
		if err != nil {
			return err
		}

		// Satıcıya teklif bildirimi; commit sonrası, best effort
		if notifyErr := notifications.Notify(db, listing.SellerID, &notifications.NewOfferPayload{
			ListingID:      listing.ID,
			ListingTitle:   listing.Title,
			BuyerID:        userID,
			OfferedCredits: body.Price,
		}); notifyErr != nil {
			log.Printf("Bildirim yazılamadı: %v", notifyErr)
		}

		return common.Created(c, toListingResponse(listing))
	}
}

// DELETE /api/listings/:id/offer
func DeleteOfferHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		listing, err := svc.DeleteOffer(id, userID)
		if err != nil {
			return err
		}

		return common.OK(c, toListingResponse(listing))
	}
}

// POST /api/listings/:id/offer/reject
func RejectOfferHandler(db *gorm.DB, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		listing, buyerID, err := svc.RejectOffer(id, userID)
		if err != nil {
			return err
		}

		if notifyErr := notifications.Notify(db, buyerID, &notifications.OfferRejectedPayload{
			ListingID:    listing.ID,
			ListingTitle: listing.Title,
		}); notifyErr != nil {
			log.Printf("Bildirim yazılamadı: %v", notifyErr)
		}

		return common.OK(c, toListingResponse(listing))
	}
}

// POST /api/listings/:id/offer/accept
func AcceptOfferHandler(db *gorm.DB, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body AcceptOfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		tradingIDs := make([]uuid.UUID, 0, len(body.TradingListingIDs))
		for _, raw := range body.TradingListingIDs {
			tradingID, err := uuid.Parse(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz takas ilanı id")
			}
			tradingIDs = append(tradingIDs, tradingID)
		}

		listing, err := svc.AcceptOffer(id, userID, tradingIDs)
		if err != nil {
			return err
		}

		if listing.BuyerID != nil {
			var totalPrice int64
			if listing.OfferedCredits != nil {
				totalPrice = *listing.OfferedCredits
			}
			if notifyErr := notifications.Notify(db, *listing.BuyerID, &notifications.OfferAcceptedPayload{
				ListingID:       listing.ID,
				ListingTitle:    listing.Title,
				TotalPrice:      totalPrice,
				TradeListingIDs: tradingIDs,
			}); notifyErr != nil {
				log.Printf("Bildirim yazılamadı: %v", notifyErr)
			}
		}

		return common.OK(c, toListingResponse(listing))
	}
}

// POST /api/listings/:id/receive
func ReceiveListingHandler(db *gorm.DB, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		listing, settled, err := svc.ReceiveListing(id, userID)
		if err != nil {
			return err
		}

		if notifyErr := notifications.Notify(db, listing.SellerID, &notifications.ListingReceivedPayload{
			ListingID:      listing.ID,
			ListingTitle:   listing.Title,
			SettledCredits: settled,
		}); notifyErr != nil {
			log.Printf("Bildirim yazılamadı: %v", notifyErr)
		}

		return common.OK(c, toListingResponse(listing))
	}
}
