package listings

import (
	"math/bits"

	"loop-backend/internal/apperr"
	"loop-backend/internal/ledger"
	"loop-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcceptOffer - Satıcı teklifi, alıcının takasa sunduğu ilanlarla birlikte
// kabul eder. Net fark (totalPrice) ilan fiyatından takas ilanlarının toplam
// fiyatı düşülerek bulunur:
//
//   totalPrice > 0  -> alıcı farkı borçlanır; kabul anında balance'ından
//                      locked'a rezerve edilir, teslimde satıcıya geçer.
//   totalPrice < 0  -> takas ilanları ana ilandan değerli; farkı satıcı öder.
//                      Satıcının balance'ından locked'a rezerve edilir ve
//                      takas ilanlarının offered_credits alanlarına fiyat
//                      oranlı dağıtılır, kalan küsurat son ilana yazılır.
//
// Tüm adımlar tek transaction: herhangi bir hata tam rollback.
func (s *Service) AcceptOffer(listingID, callerID uuid.UUID, tradingListingIDs []uuid.UUID) (*models.Listing, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		primary, err := s.loadListing(tx, listingID)
		if err != nil {
			return err
		}
		if primary.SellerID != callerID {
			return apperr.Unauthorized("Teklifi sadece satıcı kabul edebilir")
		}
		if primary.ListingStatus != models.ListingOffered {
			return apperr.InvalidInput("İlanda kabul edilecek bir teklif yok")
		}
		if primary.BuyerID == nil || primary.OfferedCredits == nil {
			return apperr.OfferedCreditsNotFound("Teklif tutarı kayıtlı değil")
		}
		buyerID := *primary.BuyerID

		tradingListings, err := s.loadTradingListings(tx, primary, buyerID, tradingListingIDs)
		if err != nil {
			return err
		}

		// Net kredi farkı: ilan fiyatı - takas ilanlarının toplam değeri
		totalPrice := primary.Price
		for _, t := range tradingListings {
			totalPrice -= t.Price
		}

		// Alıcı teklif ettiğinden fazlasını borçlanamaz
		if totalPrice > *primary.OfferedCredits {
			return apperr.TotalPriceExceeded("Net tutar teklif edilen krediyi aşıyor")
		}

		switch {
		case totalPrice > 0:
			// Alıcının borcu teslim anına kadar rezerve edilir
			if err := ledger.Adjust(tx, buyerID, -totalPrice, totalPrice); err != nil {
				return err
			}
		case totalPrice < 0:
			// Farkı satıcı öder; takas ilanları teslim edilene kadar kilitte bekler
			if err := ledger.Adjust(tx, primary.SellerID, totalPrice, -totalPrice); err != nil {
				return err
			}
		}

		allocations := distributeCredits(tradingListings, totalPrice)

		for i, t := range tradingListings {
			trade := models.ListingTrade{
				ListingID:      primary.ID,
				TradeListingID: t.ID,
			}
			if err := tx.Create(&trade).Error; err != nil {
				return apperr.Internal("Takas kaydı oluşturulamadı")
			}

			// Takas ilanı satılmış sayılır; kabul eden satıcı bu ilanların
			// alıcısı rolüne geçer.
			updates := map[string]interface{}{
				"listing_status":  models.ListingAccepted,
				"buyer_id":        callerID,
				"offered_credits": nil,
			}
			if allocations != nil {
				updates["offered_credits"] = allocations[i]
			}

			res := tx.Model(&models.Listing{}).
				Where("id = ? AND listing_status = ?", t.ID, models.ListingPublished).
				Updates(updates)
			if res.Error != nil {
				return apperr.Internal("Takas ilanı güncellenemedi")
			}
			if res.RowsAffected != 1 {
				return apperr.Conflict("Takas ilanının durumu bu sırada değişti")
			}
		}

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND listing_status = ?", primary.ID, models.ListingOffered).
			Updates(map[string]interface{}{
				"listing_status":  models.ListingAccepted,
				"offered_credits": totalPrice,
			})
		if res.Error != nil {
			return apperr.Internal("İlan güncellenemedi")
		}
		if res.RowsAffected != 1 {
			return apperr.Conflict("İlan durumu bu sırada değişti")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(listingID)
}

// loadTradingListings - Takasa sunulan ilanları istek sırasını koruyarak
// doğrular: hepsi var olmalı, alıcıya ait olmalı ve published durumda olmalı.
// Herhangi biri geçersizse hiçbir mutasyon yapılmadan hata döner.
func (s *Service) loadTradingListings(tx *gorm.DB, primary *models.Listing, buyerID uuid.UUID, ids []uuid.UUID) ([]*models.Listing, error) {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]*models.Listing, 0, len(ids))

	for _, id := range ids {
		if id == primary.ID {
			return nil, apperr.InvalidInput("Ana ilan takas listesinde olamaz")
		}
		if seen[id] {
			return nil, apperr.InvalidInput("Takas listesinde tekrar eden ilan var")
		}
		seen[id] = true

		t, err := s.loadListing(tx, id)
		if err != nil {
			return nil, err
		}
		if t.SellerID != buyerID {
			return nil, apperr.Unauthorized("Takas ilanı teklif sahibine ait değil")
		}
		if t.Disabled || t.ListingStatus != models.ListingPublished {
			return nil, apperr.InvalidInput("Takas ilanı uygun durumda değil")
		}
		result = append(result, t)
	}
	return result, nil
}

// distributeCredits - totalPrice negatifse satıcının ödediği farkı takas
// ilanlarına fiyat oranlı böler. İlk n-1 ilan taban (floor) payını alır,
// küsurat son ilana yazılır; paylar her zaman tam olarak -totalPrice eder.
// totalPrice >= 0 için nil döner: takas ilanlarına kredi bağlanmaz.
func distributeCredits(tradingListings []*models.Listing, totalPrice int64) []int64 {
	if totalPrice >= 0 || len(tradingListings) == 0 {
		return nil
	}

	payout := -totalPrice
	var sumPrices int64
	for _, t := range tradingListings {
		sumPrices += t.Price
	}

	allocations := make([]int64, len(tradingListings))
	var allocated int64
	for i, t := range tradingListings {
		if i == len(tradingListings)-1 {
			// Son ilan kalan her şeyi alır; tam sayı bölmeden doğan
			// kayıp burada kapanır.
			allocations[i] = payout - allocated
			break
		}
		share := mulDiv(t.Price, payout, sumPrices)
		allocations[i] = share
		allocated += share
	}
	return allocations
}

// mulDiv - a*b/c, ara çarpım 128 bitte tutulur; a*b int64 taşsa bile sonuç
// doğru kalır. payout <= sumPrices olduğundan bölüm her zaman a'yı aşmaz.
func mulDiv(a, b, c int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	q, _ := bits.Div64(hi, lo, uint64(c))
	return int64(q)
}
