package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
)

// scanHistoryCap bounds the volatile scan history buffer.
const scanHistoryCap = 25

// ScanService validates scanned membership claims against the live directory
// and keeps a bounded, most-recent-first history of verdicts for operator
// review. The history lives in process memory only.
type ScanService interface {
	Validate(ctx context.Context, payload []byte) (*model.ScanRecord, error)
	Recent() []model.ScanRecord
}

type scanService struct {
	members MemberService

	// mu guards history and serializes validations: one in-flight
	// validation per service instance, overlapping scans queue behind it.
	mu      sync.Mutex
	history []model.ScanRecord
}

// NewScanService creates a scan validation service backed by the directory.
func NewScanService(members MemberService) ScanService {
	return &scanService{members: members}
}

// Validate decodes a QR payload and checks the claimed membership against
// the live member record. Only the claim's userId is trusted; the embedded
// status may be stale or forged, so the verdict always comes from the
// resolved record's effective status. Every attempt that carries a
// resolvable id is recorded in the history, including invalid ones.
func (s *scanService) Validate(ctx context.Context, payload []byte) (*model.ScanRecord, error) {
	var claim model.MembershipClaim
	if err := json.Unmarshal(payload, &claim); err != nil {
		return nil, errors.ErrMalformedClaim
	}
	if claim.UserID == "" {
		return nil, errors.ErrMalformedClaim
	}
	memberID, err := uuid.Parse(claim.UserID)
	if err != nil {
		return nil, errors.ErrMalformedClaim
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if err == errors.ErrMemberNotFound {
			log.Printf("scan: member %s not found", memberID)
			rec := s.record(model.ScanRecord{
				MemberID: memberID,
				Verdict:  model.ScanVerdictInvalid,
				Reason:   "member not found",
			})
			return rec, errors.ErrMemberNotFound
		}
		return nil, err
	}

	now := time.Now()
	rec := model.ScanRecord{
		MemberID:         member.ID,
		Name:             member.Name,
		Email:            member.Email,
		MembershipStatus: member.EffectiveStatus(now),
		Verdict:          model.ScanVerdictInvalid,
	}
	if member.EffectiveStatus(now) == model.StatusPaid {
		rec.Verdict = model.ScanVerdictValid
	} else if member.MembershipStatus == model.StatusPaid {
		rec.Reason = "membership expired"
	} else {
		rec.Reason = "membership not paid"
	}

	return s.record(rec), nil
}

// record stamps and prepends a scan record, trimming the history to its cap.
// Callers must hold mu.
func (s *scanService) record(rec model.ScanRecord) *model.ScanRecord {
	rec.ID = uuid.New()
	rec.ScannedAt = time.Now()

	s.history = append([]model.ScanRecord{rec}, s.history...)
	if len(s.history) > scanHistoryCap {
		s.history = s.history[:scanHistoryCap]
	}
	return &rec
}

// Recent returns a copy of the scan history, newest first.
func (s *scanService) Recent() []model.ScanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ScanRecord, len(s.history))
	copy(out, s.history)
	return out
}
