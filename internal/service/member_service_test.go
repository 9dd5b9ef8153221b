package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
)

func adminSession() *auth.Session {
	return &auth.Session{
		MemberID: uuid.New(),
		Email:    "admin@x.com",
		Role:     model.RoleAdmin,
		IssuedAt: time.Now(),
	}
}

func userSession() *auth.Session {
	return &auth.Session{
		MemberID: uuid.New(),
		Email:    "user@x.com",
		Role:     model.RoleUser,
		IssuedAt: time.Now(),
	}
}

func TestMemberService_List(t *testing.T) {
	tests := []struct {
		name           string
		filter         string
		search         string
		expectedStatus model.MembershipStatus
		expectedError  error
	}{
		{name: "no filter lists all", filter: "", search: "", expectedStatus: ""},
		{name: "all filter lists all", filter: "all", search: "", expectedStatus: ""},
		{name: "paid filter", filter: "paid", search: "", expectedStatus: model.StatusPaid},
		{name: "unpaid filter with search", filter: "unpaid", search: "jane", expectedStatus: model.StatusUnpaid},
		{name: "unknown filter rejected", filter: "expired", search: "", expectedError: errors.ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemberRepository)
			if tt.expectedError == nil {
				mockRepo.On("List", mock.Anything, tt.expectedStatus, tt.search).Return([]model.Member{}, nil)
			}

			service := NewMemberService(mockRepo, new(MockPaymentRepository), nil)
			members, err := service.List(context.Background(), tt.filter, tt.search)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, members)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, members)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMemberService_Delete(t *testing.T) {
	memberID := uuid.New()

	tests := []struct {
		name          string
		session       *auth.Session
		setupMock     func(*MockMemberRepository)
		expectedError error
	}{
		{
			name:    "admin deletes member",
			session: adminSession(),
			setupMock: func(m *MockMemberRepository) {
				m.On("Delete", mock.Anything, memberID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:    "second delete of same id fails with not found",
			session: adminSession(),
			setupMock: func(m *MockMemberRepository) {
				m.On("Delete", mock.Anything, memberID).Return(gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrMemberNotFound,
		},
		{
			name:          "non-admin forbidden",
			session:       userSession(),
			setupMock:     func(m *MockMemberRepository) {},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "nil session unauthenticated",
			session:       nil,
			setupMock:     func(m *MockMemberRepository) {},
			expectedError: errors.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemberRepository)
			tt.setupMock(mockRepo)

			service := NewMemberService(mockRepo, new(MockPaymentRepository), nil)
			err := service.Delete(context.Background(), tt.session, memberID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMemberService_UpdateRole(t *testing.T) {
	targetID := uuid.New()

	tests := []struct {
		name          string
		session       func() *auth.Session
		id            uuid.UUID
		role          model.Role
		setupMock     func(*MockMemberRepository)
		expectedError error
	}{
		{
			name:    "admin promotes member",
			session: adminSession,
			id:      targetID,
			role:    model.RoleAdmin,
			setupMock: func(m *MockMemberRepository) {
				m.On("FindByID", mock.Anything, targetID).Return(&model.Member{ID: targetID, Role: model.RoleUser}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
			},
		},
		{
			name:    "admin demotes other admin",
			session: adminSession,
			id:      targetID,
			role:    model.RoleUser,
			setupMock: func(m *MockMemberRepository) {
				m.On("FindByID", mock.Anything, targetID).Return(&model.Member{ID: targetID, Role: model.RoleAdmin}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
			},
		},
		{
			name:          "non-admin forbidden",
			session:       userSession,
			id:            targetID,
			role:          model.RoleAdmin,
			setupMock:     func(m *MockMemberRepository) {},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "unknown role rejected",
			session:       adminSession,
			id:            targetID,
			role:          model.Role("superuser"),
			setupMock:     func(m *MockMemberRepository) {},
			expectedError: errors.ErrInvalidRole,
		},
		{
			name:          "target not found",
			session:       adminSession,
			id:            targetID,
			role:          model.RoleUser,
			setupMock: func(m *MockMemberRepository) {
				m.On("FindByID", mock.Anything, targetID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemberRepository)
			tt.setupMock(mockRepo)

			service := NewMemberService(mockRepo, new(MockPaymentRepository), nil)
			member, err := service.UpdateRole(context.Background(), tt.session(), tt.id, tt.role)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, member)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, member.Role)
				assert.True(t, member.Role.Valid())
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMemberService_UpdateRole_SelfDemotionRejected(t *testing.T) {
	session := adminSession()

	mockRepo := new(MockMemberRepository)
	service := NewMemberService(mockRepo, new(MockPaymentRepository), nil)

	member, err := service.UpdateRole(context.Background(), session, session.MemberID, model.RoleUser)

	assert.Equal(t, errors.ErrSelfDemotion, err)
	assert.Nil(t, member)
	// The check runs before any lookup, so no mutation can slip through.
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMemberService_UpdateStatus(t *testing.T) {
	targetID := uuid.New()

	selfSession := func() *auth.Session {
		return &auth.Session{MemberID: targetID, Email: "jane@x.com", Role: model.RoleUser}
	}

	tests := []struct {
		name          string
		session       func() *auth.Session
		status        model.MembershipStatus
		setupMock     func(*MockMemberRepository)
		expectedError error
	}{
		{
			name:    "admin marks member paid",
			session: adminSession,
			status:  model.StatusPaid,
			setupMock: func(m *MockMemberRepository) {
				m.On("FindByID", mock.Anything, targetID).Return(&model.Member{ID: targetID, MembershipStatus: model.StatusUnpaid}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
			},
		},
		{
			name:    "admin downgrades to unpaid",
			session: adminSession,
			status:  model.StatusUnpaid,
			setupMock: func(m *MockMemberRepository) {
				m.On("FindByID", mock.Anything, targetID).Return(&model.Member{ID: targetID, MembershipStatus: model.StatusPaid}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
			},
		},
		{
			name:    "member upgrades self after payment",
			session: selfSession,
			status:  model.StatusPaid,
			setupMock: func(m *MockMemberRepository) {
				m.On("FindByID", mock.Anything, targetID).Return(&model.Member{ID: targetID, MembershipStatus: model.StatusUnpaid}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
			},
		},
		{
			name:          "member cannot downgrade self",
			session:       selfSession,
			status:        model.StatusUnpaid,
			setupMock:     func(m *MockMemberRepository) {},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "member cannot change another member",
			session:       userSession,
			status:        model.StatusPaid,
			setupMock:     func(m *MockMemberRepository) {},
			expectedError: errors.ErrForbidden,
		},
		{
			name:    "self transition is a no-op",
			session: adminSession,
			status:  model.StatusPaid,
			setupMock: func(m *MockMemberRepository) {
				m.On("FindByID", mock.Anything, targetID).Return(&model.Member{ID: targetID, MembershipStatus: model.StatusPaid}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMemberRepository)
			tt.setupMock(mockRepo)

			service := NewMemberService(mockRepo, new(MockPaymentRepository), nil)
			member, err := service.UpdateStatus(context.Background(), tt.session(), targetID, tt.status)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, member)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.status, member.MembershipStatus)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMemberService_UpdateStatus_ClearsExpiryOnUpgrade(t *testing.T) {
	targetID := uuid.New()
	expired := time.Now().Add(-24 * time.Hour)

	mockRepo := new(MockMemberRepository)
	mockRepo.On("FindByID", mock.Anything, targetID).Return(&model.Member{
		ID:               targetID,
		MembershipStatus: model.StatusUnpaid,
		MembershipExpiry: &expired,
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)

	service := NewMemberService(mockRepo, new(MockPaymentRepository), nil)
	member, err := service.UpdateStatus(context.Background(), adminSession(), targetID, model.StatusPaid)

	assert.NoError(t, err)
	assert.Nil(t, member.MembershipExpiry)
	assert.Equal(t, model.StatusPaid, member.EffectiveStatus(time.Now()))
}

func TestMemberService_Stats(t *testing.T) {
	mockRepo := new(MockMemberRepository)
	mockPayRepo := new(MockPaymentRepository)

	recent := []model.Member{{ID: uuid.New(), Name: "Jane Doe"}}
	mockRepo.On("Count", mock.Anything).Return(int64(10), nil)
	mockRepo.On("CountByStatus", mock.Anything, model.StatusPaid).Return(int64(7), nil)
	mockRepo.On("CountByStatus", mock.Anything, model.StatusUnpaid).Return(int64(3), nil)
	mockRepo.On("ListRecent", mock.Anything, recentMembersMax).Return(recent, nil)
	mockPayRepo.On("TotalRevenue", mock.Anything).Return(decimal.NewFromInt(700), nil)

	service := NewMemberService(mockRepo, mockPayRepo, nil)
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalMembers)
	assert.Equal(t, int64(7), stats.PaidMembers)
	assert.Equal(t, int64(3), stats.UnpaidMembers)
	assert.True(t, decimal.NewFromInt(700).Equal(stats.TotalRevenue))
	assert.Equal(t, recent, stats.RecentMembers)
}
