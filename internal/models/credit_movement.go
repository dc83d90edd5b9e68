package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditMovementType - Takas dışı kredi hareket türleri
type CreditMovementType string

const (
	MovementDonation    CreditMovementType = "donation"
	MovementAdminAdjust CreditMovementType = "admin_adjust"
	MovementSettlement  CreditMovementType = "trade_settlement"
)

// CreditMovement - Kredi hareket geçmişi (bağış, admin düzeltmesi, takas kapanışı)
type CreditMovement struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	FromUserID   *uuid.UUID         `gorm:"type:uuid;index"` // Admin düzeltmesinde null olabilir
	ToUserID     *uuid.UUID         `gorm:"type:uuid;index"`
	Amount       int64              `gorm:"not null"`
	LockedAmount int64              `gorm:"not null;default:0"` // Locked alanına uygulanan delta (admin düzeltmesi)
	Type         CreditMovementType `gorm:"size:30;not null;index"`
	Description  string             `gorm:"size:500"`
	CreatedAt    time.Time
}

func (m *CreditMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
