package model

import (
	"time"

	"github.com/google/uuid"
)

// MembershipClaim is the payload embedded in a member QR code. Only UserID is
// authoritative; the remaining fields are display hints and must be
// revalidated against the live member record.
type MembershipClaim struct {
	UserID           string `json:"userId"`
	Name             string `json:"name,omitempty"`
	Email            string `json:"email,omitempty"`
	MembershipStatus string `json:"membershipStatus,omitempty"`
}

// ScanVerdict is the outcome of validating a scanned claim.
type ScanVerdict string

const (
	ScanVerdictValid   ScanVerdict = "valid"
	ScanVerdictInvalid ScanVerdict = "invalid"
)

// ScanRecord captures a single scan decision for operator review. Records are
// volatile and kept in a bounded in-memory history only.
type ScanRecord struct {
	ID               uuid.UUID        `json:"id"`
	ScannedAt        time.Time        `json:"scanned_at"`
	MemberID         uuid.UUID        `json:"member_id,omitempty"`
	Name             string           `json:"name,omitempty"`
	Email            string           `json:"email,omitempty"`
	MembershipStatus MembershipStatus `json:"membership_status,omitempty"`
	Verdict          ScanVerdict      `json:"verdict"`
	Reason           string           `json:"reason,omitempty"`
}
