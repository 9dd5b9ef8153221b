package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
	"github.com/blessing250/Membership/internal/repository"
)

const bcryptCost = 10

// AuthService handles credential exchange and session issuance.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (accessToken, refreshToken string, member *model.Member, err error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, member *model.Member, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, memberID uuid.UUID) (*model.Member, error)
}

type authService struct {
	memberRepo repository.MemberRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(memberRepo repository.MemberRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		memberRepo: memberRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new member with hashed password and logs them in.
// New members start as role=user with an unpaid membership.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, string, *model.Member, error) {
	existing, err := s.memberRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", "", nil, errors.ErrDuplicateEmail
	}
	// A storage error here must not be mistaken for a free email.
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", "", nil, fmt.Errorf("%w: check email: %v", errors.ErrStorageUnavailable, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", "", nil, fmt.Errorf("hash password: %w", err)
	}

	member := &model.Member{
		Name:             name,
		Email:            email,
		PasswordHash:     string(hashedPassword),
		Role:             model.RoleUser,
		MembershipStatus: model.StatusUnpaid,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return "", "", nil, fmt.Errorf("%w: create member: %v", errors.ErrStorageUnavailable, err)
	}

	return s.issueTokens(ctx, member)
}

// Login authenticates a member and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.Member, error) {
	member, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", "", nil, errors.ErrInvalidCredentials
		}
		// Backend failures stay distinguishable from bad credentials.
		return "", "", nil, fmt.Errorf("%w: find member: %v", errors.ErrStorageUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, member)
}

func (s *authService) issueTokens(ctx context.Context, member *model.Member) (string, string, *model.Member, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(member.ID, member.Email, string(member.Role))
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(member.ID, member.Email, string(member.Role))
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, member.ID, member.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, member, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	storedMemberID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	if storedMemberID.String() != claims.MemberID || storedEmail != claims.Email {
		return "", errors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(storedMemberID, claims.Email, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token. Logging out with an unknown or already
// expired token is a no-op.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return nil
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// Profile returns the live member record for the given id.
func (s *authService) Profile(ctx context.Context, memberID uuid.UUID) (*model.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: find member: %v", errors.ErrStorageUnavailable, err)
	}
	return member, nil
}
