package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies the access level of a member account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// MembershipStatus represents the payment state of a membership.
type MembershipStatus string

const (
	StatusUnpaid MembershipStatus = "unpaid"
	StatusPaid   MembershipStatus = "paid"
)

// Valid reports whether the status is one of the known values.
func (s MembershipStatus) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Member represents a registered member or admin account.
type Member struct {
	ID               uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string           `json:"name" gorm:"size:255;not null;index"`
	Email            string           `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string           `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role             Role             `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	MembershipStatus MembershipStatus `json:"membershipStatus" gorm:"type:varchar(20);not null;default:'unpaid';index"`
	MembershipExpiry *time.Time       `json:"membershipExpiry,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt   `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// EffectiveStatus returns the membership status with expiry applied: a paid
// membership whose expiry date has passed counts as unpaid regardless of the
// stored flag.
func (m *Member) EffectiveStatus(now time.Time) MembershipStatus {
	if m.MembershipExpiry != nil && m.MembershipExpiry.Before(now) {
		return StatusUnpaid
	}
	return m.MembershipStatus
}

// WithEffectiveStatus returns a copy of the member whose stored status is
// folded to the effective one, for responses that must not show stale state.
func (m *Member) WithEffectiveStatus(now time.Time) Member {
	out := *m
	out.MembershipStatus = m.EffectiveStatus(now)
	return out
}
