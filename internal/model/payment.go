package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the status of a membership payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusAccepted PaymentStatus = "accepted"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// Payment represents a confirmed membership payment reported by the gateway.
type Payment struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	MemberID  uuid.UUID       `json:"member_id" gorm:"type:char(36);not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Currency  string          `json:"currency" gorm:"size:10;not null;default:'RWF'"`
	TxRef     string          `json:"tx_ref" gorm:"uniqueIndex;size:255;not null"`
	Status    PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Member Member `json:"-" gorm:"foreignKey:MemberID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
