package listings

import (
	"errors"

	"loop-backend/internal/apperr"
	"loop-backend/internal/ledger"
	"loop-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service - İlan durum makinesi ve takas kapanış motoru. Tüm çok adımlı
// işlemler tek transaction içinde koşar; herhangi bir hata tam rollback demek.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) loadListing(tx *gorm.DB, listingID uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := tx.First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidInput("İlan bulunamadı")
		}
		return nil, apperr.Internal("İlan sorgulanamadı")
	}
	return &listing, nil
}

// NewOffer - published durumundaki ilana teklif bağlar.
// 0 <= price <= ilan fiyatı; alıcı ilan fiyatının üstünü teklif edemez.
// Bu aşamada Ledger'a dokunulmaz; rezervasyon kabul anında yapılır.
func (s *Service) NewOffer(listingID, buyerID uuid.UUID, price int64) (*models.Listing, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		listing, err := s.loadListing(tx, listingID)
		if err != nil {
			return err
		}
		if listing.Disabled {
			return apperr.InvalidInput("İlan bulunamadı")
		}
		if listing.SellerID == buyerID {
			return apperr.InvalidInput("Kendi ilanınıza teklif veremezsiniz")
		}
		if listing.ListingStatus != models.ListingPublished {
			return apperr.InvalidInput("İlan teklif için uygun durumda değil")
		}
		if price < 0 || price > listing.Price {
			return apperr.InvalidInput("Teklif tutarı 0 ile ilan fiyatı arasında olmalı")
		}

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND listing_status = ?", listingID, models.ListingPublished).
			Updates(map[string]interface{}{
				"buyer_id":        buyerID,
				"offered_credits": price,
				"listing_status":  models.ListingOffered,
			})
		if res.Error != nil {
			return apperr.Internal("Teklif kaydedilemedi")
		}
		// Yarışan istek ilanı bu arada başka duruma taşıdıysa satır değişmez
		if res.RowsAffected != 1 {
			return apperr.InvalidInput("İlan teklif için uygun durumda değil")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(listingID)
}

// withdrawOffer - offered -> published geri dönüşü. Alıcının geri çekmesi ve
// satıcının reddi aynı mekanizmayı kullanır, sadece yetki kontrolü değişir.
func (s *Service) withdrawOffer(listingID, callerID uuid.UUID, bySeller bool) (*models.Listing, uuid.UUID, error) {
	var buyerID uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		listing, err := s.loadListing(tx, listingID)
		if err != nil {
			return err
		}

		if bySeller {
			if listing.SellerID != callerID {
				return apperr.Unauthorized("Bu işlemi sadece satıcı yapabilir")
			}
		} else {
			if listing.BuyerID == nil || *listing.BuyerID != callerID {
				return apperr.Unauthorized("Bu işlemi sadece teklif sahibi yapabilir")
			}
		}

		if listing.ListingStatus != models.ListingOffered {
			return apperr.InvalidInput("İlanda aktif bir teklif yok")
		}
		if listing.BuyerID == nil {
			return apperr.OfferedCreditsNotFound("Teklif sahibi kayıtlı değil")
		}
		buyerID = *listing.BuyerID

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND listing_status = ?", listingID, models.ListingOffered).
			Updates(map[string]interface{}{
				"buyer_id":        nil,
				"offered_credits": nil,
				"listing_status":  models.ListingPublished,
			})
		if res.Error != nil {
			return apperr.Internal("Teklif kaldırılamadı")
		}
		if res.RowsAffected != 1 {
			return apperr.Conflict("İlan durumu bu sırada değişti")
		}
		return nil
	})
	if err != nil {
		return nil, uuid.Nil, err
	}

	listing, err := s.reload(listingID)
	return listing, buyerID, err
}

// DeleteOffer - Alıcı teklifini geri çeker.
func (s *Service) DeleteOffer(listingID, callerID uuid.UUID) (*models.Listing, error) {
	listing, _, err := s.withdrawOffer(listingID, callerID, false)
	return listing, err
}

// RejectOffer - Satıcı teklifi reddeder; bildirim için eski alıcıyı da döner.
func (s *Service) RejectOffer(listingID, callerID uuid.UUID) (*models.Listing, uuid.UUID, error) {
	return s.withdrawOffer(listingID, callerID, true)
}

// ReceiveListing - Alıcı ürünü teslim aldığını bildirir; kilitli kredi
// satıcının bakiyesine geçer ve ilan terminal received durumuna taşınır.
//
// offered_credits null ya da negatifse ana ilan üzerinden kredi akmaz:
// null, kabul sırasında krediye bağlanmamış takas ilanı demektir; negatif
// fark ise takas ilanlarının kendi teslimlerinde kapanır.
func (s *Service) ReceiveListing(listingID, callerID uuid.UUID) (*models.Listing, int64, error) {
	var settled int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		listing, err := s.loadListing(tx, listingID)
		if err != nil {
			return err
		}
		if listing.BuyerID == nil || *listing.BuyerID != callerID {
			return apperr.Unauthorized("Bu işlemi sadece alıcı yapabilir")
		}
		if listing.ListingStatus != models.ListingAccepted {
			return apperr.InvalidInput("İlan teslim için uygun durumda değil")
		}

		if listing.OfferedCredits != nil && *listing.OfferedCredits > 0 {
			amount := *listing.OfferedCredits

			// Alıcının rezervi düşer, satıcının bakiyesi artar;
			// alıcının balance'ına dokunulmaz çünkü kredi zaten kilitliydi.
			if err := ledger.Adjust(tx, callerID, 0, -amount); err != nil {
				return err
			}
			if err := ledger.Adjust(tx, listing.SellerID, amount, 0); err != nil {
				return err
			}

			buyerID := callerID
			sellerID := listing.SellerID
			movement := models.CreditMovement{
				FromUserID:  &buyerID,
				ToUserID:    &sellerID,
				Amount:      amount,
				Type:        models.MovementSettlement,
				Description: "Takas kapanışı: " + listing.Title,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return apperr.Internal("Kredi hareketi kaydedilemedi")
			}
			settled = amount
		}

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND listing_status = ?", listingID, models.ListingAccepted).
			Update("listing_status", models.ListingReceived)
		if res.Error != nil {
			return apperr.Internal("İlan güncellenemedi")
		}
		if res.RowsAffected != 1 {
			return apperr.Conflict("İlan durumu bu sırada değişti")
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	listing, err := s.reload(listingID)
	return listing, settled, err
}

func (s *Service) reload(listingID uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.First(&listing, "id = ?", listingID).Error; err != nil {
		return nil, apperr.Internal("İlan sorgulanamadı")
	}
	return &listing, nil
}
