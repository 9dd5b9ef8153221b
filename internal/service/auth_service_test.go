package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
)

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context, status model.MembershipStatus, search string) ([]model.Member, error) {
	args := m.Called(ctx, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockMemberRepository) ListRecent(ctx context.Context, limit int) ([]model.Member, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) CountByStatus(ctx context.Context, status model.MembershipStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, memberID uuid.UUID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, memberID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		memberName    string
		email         string
		password      string
		setupMock     func(*MockMemberRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:       "successful registration",
			memberName: "Jane Doe",
			email:      "jane@x.com",
			password:   "password123",
			setupMock: func(mRepo *MockMemberRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "jane@x.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:       "duplicate email",
			memberName: "Existing Member",
			email:      "existing@x.com",
			password:   "password123",
			setupMock: func(mRepo *MockMemberRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "existing@x.com").Return(&model.Member{Email: "existing@x.com"}, nil)
			},
			expectedError: errors.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemberRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, member, err := service.Register(context.Background(), tt.memberName, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, member)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, member)
				assert.Equal(t, tt.email, member.Email)
				assert.Equal(t, tt.memberName, member.Name)
				assert.NotEmpty(t, member.PasswordHash)
				assert.Equal(t, model.RoleUser, member.Role)
				assert.Equal(t, model.StatusUnpaid, member.MembershipStatus)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockMemberRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jane@x.com",
			password: "password123",
			setupMock: func(mRepo *MockMemberRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				memberID := uuid.New()
				mRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(&model.Member{
					ID:               memberID,
					Email:            "jane@x.com",
					PasswordHash:     string(hashedPassword),
					Role:             model.RoleUser,
					MembershipStatus: model.StatusUnpaid,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, memberID, "jane@x.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "invalid credentials - member not found",
			email:    "notfound@x.com",
			password: "password123",
			setupMock: func(mRepo *MockMemberRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - wrong password",
			email:    "jane@x.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockMemberRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(&model.Member{
					ID:           uuid.New(),
					Email:        "jane@x.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemberRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, member, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, member)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, member)
				assert.Equal(t, tt.email, member.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_DistinguishesStorageFailure(t *testing.T) {
	mockRepo := new(MockMemberRepository)
	mockTokenStore := new(MockTokenStore)
	mockRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, gorm.ErrInvalidDB)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
	_, _, _, err := service.Login(context.Background(), "jane@x.com", "password123")

	assert.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, errors.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Logout_UnknownTokenIsNoOp(t *testing.T) {
	mockRepo := new(MockMemberRepository)
	mockTokenStore := new(MockTokenStore)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
	err := service.Logout(context.Background(), "not-a-token")

	assert.NoError(t, err)
	mockTokenStore.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything)
}
