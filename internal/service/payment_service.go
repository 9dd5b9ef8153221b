package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
	"github.com/blessing250/Membership/internal/repository"
)

// PaymentService records confirmed membership payments and upgrades the
// paying member. Payment verification itself happens at the external gateway;
// this service records the reported result and applies the status change.
type PaymentService interface {
	Confirm(ctx context.Context, session *auth.Session, memberID uuid.UUID, amount decimal.Decimal, currency, txRef string) (*model.Payment, error)
}

type paymentService struct {
	members     MemberService
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new payment service.
func NewPaymentService(members MemberService, paymentRepo repository.PaymentRepository) PaymentService {
	return &paymentService{
		members:     members,
		paymentRepo: paymentRepo,
	}
}

// Confirm records a gateway-confirmed payment and moves the member to paid.
// Members may confirm only their own payments; admins may confirm for anyone.
// Failed attempts are recorded too, for reconciliation against the gateway.
func (s *paymentService) Confirm(ctx context.Context, session *auth.Session, memberID uuid.UUID, amount decimal.Decimal, currency, txRef string) (*model.Payment, error) {
	if _, err := auth.Authorize(session); err != nil {
		return nil, err
	}
	if session.MemberID != memberID && !session.IsAdmin() {
		return nil, errors.ErrForbidden
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrInvalidAmount
	}

	payment := &model.Payment{
		MemberID: memberID,
		Amount:   amount,
		Currency: currency,
		TxRef:    txRef,
		Status:   model.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("%w: create payment: %v", errors.ErrStorageUnavailable, err)
	}

	if _, err := s.members.UpdateStatus(ctx, session, memberID, model.StatusPaid); err != nil {
		payment.Status = model.PaymentStatusFailed
		if uerr := s.paymentRepo.Update(ctx, payment); uerr != nil {
			log.Printf("payment %s: mark failed: %v", payment.ID, uerr)
		}
		return payment, err
	}

	payment.Status = model.PaymentStatusAccepted
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		// The member is already upgraded; the row stays pending for
		// reconciliation rather than rolling the upgrade back.
		log.Printf("payment %s: mark accepted: %v", payment.ID, err)
	}

	return payment, nil
}
