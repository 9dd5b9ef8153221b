package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/cache"
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
	"github.com/blessing250/Membership/internal/repository"
)

const (
	memberCacheTTL   = 5 * time.Minute
	recentMembersMax = 5
)

// Filter values accepted by List.
const (
	FilterAll    = "all"
	FilterPaid   = "paid"
	FilterUnpaid = "unpaid"
)

// Stats aggregates directory counts and revenue for the admin dashboard.
// JSON keys match the stats endpoint contract.
type Stats struct {
	TotalMembers  int64           `json:"totalMembers"`
	PaidMembers   int64           `json:"paidMembers"`
	UnpaidMembers int64           `json:"unpaidMembers"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	RecentMembers []model.Member  `json:"recentUsers"`
}

// MemberService owns the searchable member directory. List and GetByID are
// pure projections; every mutation takes the caller's session and runs the
// access-control guard before touching the record.
type MemberService interface {
	List(ctx context.Context, filter, search string) ([]model.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	Delete(ctx context.Context, session *auth.Session, id uuid.UUID) error
	UpdateRole(ctx context.Context, session *auth.Session, id uuid.UUID, role model.Role) (*model.Member, error)
	UpdateStatus(ctx context.Context, session *auth.Session, id uuid.UUID, status model.MembershipStatus) (*model.Member, error)
	Stats(ctx context.Context) (*Stats, error)
}

type memberService struct {
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
	cache       *cache.Client
}

// NewMemberService builds a MemberService with repositories and cache.
func NewMemberService(memberRepo repository.MemberRepository, paymentRepo repository.PaymentRepository, cache *cache.Client) MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

func memberCacheKey(id uuid.UUID) string {
	return "member:" + id.String()
}

// List returns members matching the filter and search term.
func (s *memberService) List(ctx context.Context, filter, search string) ([]model.Member, error) {
	var status model.MembershipStatus
	switch filter {
	case "", FilterAll:
		status = ""
	case FilterPaid:
		status = model.StatusPaid
	case FilterUnpaid:
		status = model.StatusUnpaid
	default:
		return nil, errors.ErrInvalidFilter
	}

	members, err := s.memberRepo.List(ctx, status, search)
	if err != nil {
		return nil, fmt.Errorf("%w: list members: %v", errors.ErrStorageUnavailable, err)
	}
	return members, nil
}

// GetByID returns a member, reading through the cache first. The cache is a
// secondary source only: a miss or a stale decode always falls back to the
// database, and a final failure reports the database error.
func (s *memberService) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	if data, _ := s.cache.Get(ctx, memberCacheKey(id)); data != nil {
		var cached model.Member
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: find member: %v", errors.ErrStorageUnavailable, err)
	}

	if payload, err := json.Marshal(member); err == nil {
		_ = s.cache.Set(ctx, memberCacheKey(id), payload, memberCacheTTL)
	}
	return member, nil
}

// Delete removes a member. Not idempotent: deleting an already-deleted id
// fails with ErrMemberNotFound.
func (s *memberService) Delete(ctx context.Context, session *auth.Session, id uuid.UUID) error {
	if _, err := auth.Authorize(session, model.RoleAdmin); err != nil {
		return err
	}

	if err := s.memberRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrMemberNotFound
		}
		return fmt.Errorf("%w: delete member: %v", errors.ErrStorageUnavailable, err)
	}

	_ = s.cache.Delete(ctx, memberCacheKey(id))
	return nil
}

// UpdateRole changes a member's role. Only admins may call it, the target
// role must be a known value, and an admin can never change their own role:
// demoting the session's own account is rejected at this layer so a client
// cannot bypass the check.
func (s *memberService) UpdateRole(ctx context.Context, session *auth.Session, id uuid.UUID, role model.Role) (*model.Member, error) {
	if _, err := auth.Authorize(session, model.RoleAdmin); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, errors.ErrInvalidRole
	}
	if session.MemberID == id && role != model.RoleAdmin {
		return nil, errors.ErrSelfDemotion
	}

	member, err := s.findForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Role = role
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("%w: update role: %v", errors.ErrStorageUnavailable, err)
	}

	_ = s.cache.Delete(ctx, memberCacheKey(id))
	return member, nil
}

// UpdateStatus transitions a member's membership status. Admins may move any
// member in either direction; a member may mark only their own membership
// paid (the payment-confirmation path). Everything else is forbidden.
func (s *memberService) UpdateStatus(ctx context.Context, session *auth.Session, id uuid.UUID, status model.MembershipStatus) (*model.Member, error) {
	if _, err := auth.Authorize(session); err != nil {
		return nil, err
	}
	if !session.IsAdmin() && !(session.MemberID == id && status == model.StatusPaid) {
		return nil, errors.ErrForbidden
	}

	member, err := s.findForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := Transition(member.MembershipStatus, status)
	if err != nil {
		return nil, err
	}

	member.MembershipStatus = next
	if next == model.StatusPaid {
		// A lapsed expiry would immediately fold a fresh upgrade back to
		// unpaid, so it is cleared on upgrade.
		member.MembershipExpiry = nil
	}
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("%w: update status: %v", errors.ErrStorageUnavailable, err)
	}

	_ = s.cache.Delete(ctx, memberCacheKey(id))
	return member, nil
}

// Stats returns aggregate member counts, total revenue and the most recent
// registrations.
func (s *memberService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count members: %v", errors.ErrStorageUnavailable, err)
	}
	paid, err := s.memberRepo.CountByStatus(ctx, model.StatusPaid)
	if err != nil {
		return nil, fmt.Errorf("%w: count paid members: %v", errors.ErrStorageUnavailable, err)
	}
	unpaid, err := s.memberRepo.CountByStatus(ctx, model.StatusUnpaid)
	if err != nil {
		return nil, fmt.Errorf("%w: count unpaid members: %v", errors.ErrStorageUnavailable, err)
	}
	revenue, err := s.paymentRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: total revenue: %v", errors.ErrStorageUnavailable, err)
	}
	recent, err := s.memberRepo.ListRecent(ctx, recentMembersMax)
	if err != nil {
		return nil, fmt.Errorf("%w: recent members: %v", errors.ErrStorageUnavailable, err)
	}

	return &Stats{
		TotalMembers:  total,
		PaidMembers:   paid,
		UnpaidMembers: unpaid,
		TotalRevenue:  revenue,
		RecentMembers: recent,
	}, nil
}

func (s *memberService) findForUpdate(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: find member: %v", errors.ErrStorageUnavailable, err)
	}
	return member, nil
}
