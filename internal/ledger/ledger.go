package ledger

import (
	"errors"

	"loop-backend/internal/apperr"
	"loop-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Adjust - Bir kullanıcının balance ve locked alanlarına deltaları tek
// UPDATE ile uygular. Sonuç negatif olacaksa satır güncellenmez ve
// InsufficientCredits döner; rollback çağırana kalır. Çağıran zaten açık
// bir transaction içinden gelmelidir.
//
// Ayrı bir SELECT ... FOR UPDATE yok: negatiflik koruması WHERE koşulunda,
// satır kilidi UPDATE'in kendisinde.
func Adjust(tx *gorm.DB, userID uuid.UUID, balanceDelta, lockedDelta int64) error {
	if balanceDelta == 0 && lockedDelta == 0 {
		return nil
	}

	res := tx.Model(&models.User{}).
		Where("id = ? AND credits_balance + ? >= 0 AND credits_locked + ? >= 0",
			userID, balanceDelta, lockedDelta).
		Updates(map[string]interface{}{
			"credits_balance": gorm.Expr("credits_balance + ?", balanceDelta),
			"credits_locked":  gorm.Expr("credits_locked + ?", lockedDelta),
		})
	if res.Error != nil {
		return apperr.Internal("Kredi hareketi uygulanamadı")
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Satır değişmedi: kullanıcı mı yok, bakiye mi yetersiz?
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperr.Internal("Kullanıcı sorgulanamadı")
	}
	if count == 0 {
		return apperr.NotFound("Kullanıcı bulunamadı")
	}
	return apperr.InsufficientCredits("Yetersiz kredi")
}

// Balance - Kullanıcının güncel balance/locked değerlerini okur.
func Balance(tx *gorm.DB, userID uuid.UUID) (balance, locked int64, err error) {
	var user models.User
	if err := tx.Select("credits_balance", "credits_locked").
		First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, apperr.NotFound("Kullanıcı bulunamadı")
		}
		return 0, 0, apperr.Internal("Kullanıcı sorgulanamadı")
	}
	return user.CreditsBalance, user.CreditsLocked, nil
}

// Transfer - Bir kullanıcının balance'ından diğerinin balance'ına aktarım.
// Bağış ve admin akışları için; locked alanlarına dokunmaz.
func Transfer(tx *gorm.DB, fromID, toID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return apperr.InvalidInput("Tutar 0'dan büyük olmalı")
	}
	if fromID == toID {
		return apperr.InvalidInput("Gönderen ve alıcı aynı olamaz")
	}
	if err := Adjust(tx, fromID, -amount, 0); err != nil {
		return err
	}
	return Adjust(tx, toID, amount, 0)
}
