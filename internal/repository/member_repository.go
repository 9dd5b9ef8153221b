package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blessing250/Membership/internal/model"
)

// MemberRepository defines member persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	List(ctx context.Context, status model.MembershipStatus, search string) ([]model.Member, error)
	ListRecent(ctx context.Context, limit int) ([]model.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.MembershipStatus) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a GORM-backed member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member.
func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Update updates an existing member.
func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// FindByID finds a member by ID.
func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByEmail finds a member by email.
func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns members matching the given status and search term. A zero
// status means all statuses; the search term matches case-insensitively
// against name or email substrings. The two conditions compose with AND.
func (r *memberRepository) List(ctx context.Context, status model.MembershipStatus, search string) ([]model.Member, error) {
	q := r.db.WithContext(ctx).Model(&model.Member{})
	if status != "" {
		q = q.Where("membership_status = ?", status)
	}
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	var members []model.Member
	if err := q.Order("created_at DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListRecent returns the most recently registered members.
func (r *memberRepository) ListRecent(ctx context.Context, limit int) ([]model.Member, error) {
	var members []model.Member
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Delete soft-deletes a member. Deleting an absent member returns
// gorm.ErrRecordNotFound; a second delete of the same id is not idempotent.
func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Member{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of members.
func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of members with the given status.
func (r *memberRepository) CountByStatus(ctx context.Context, status model.MembershipStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("membership_status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
