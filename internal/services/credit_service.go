package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/repository"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"

	"github.com/shopspring/decimal"
)

// Pricing is the informational per-message price of each channel.
type Pricing struct {
	SMS      decimal.Decimal `json:"sms"`
	WhatsApp decimal.Decimal `json:"whatsapp"`
	Currency string          `json:"currency"`
}

func (p Pricing) PerMessage(channel domain.Channel) decimal.Decimal {
	switch channel {
	case domain.ChannelSMS:
		return p.SMS
	case domain.ChannelWhatsApp:
		return p.WhatsApp
	default:
		return decimal.Zero
	}
}

func (p Pricing) Estimate(channel domain.Channel, messages int) decimal.Decimal {
	return p.PerMessage(channel).Mul(decimal.NewFromInt(int64(messages)))
}

// CreditService is the per-tenant, per-channel prepaid ledger. One credit buys one message.
type CreditService interface {
	GetBalance(ctx context.Context, tenantID string, channel domain.Channel) (int64, error)
	// Returns both channel balances; a tenant without an account has zero credits.
	GetBalances(ctx context.Context, tenantID string) (*domain.CreditAccount, error)
	HasSufficientCredit(ctx context.Context, tenantID string, channel domain.Channel, required int64) (bool, error)
	// Atomic check-and-decrement. Fails with *types.InsufficientCreditError when count exceeds the balance.
	Debit(ctx context.Context, tenantID string, channel domain.Channel, count int64, reference string) error
	Refund(ctx context.Context, tenantID string, channel domain.Channel, count int64, reference string) error
	Pricing() Pricing
}

type creditService struct {
	repo    repository.CreditRepository
	pricing Pricing
}

func NewCreditService(repo repository.CreditRepository, pricing Pricing) CreditService {
	return &creditService{repo: repo, pricing: pricing}
}

func (s *creditService) GetBalance(ctx context.Context, tenantID string, channel domain.Channel) (int64, error) {
	if !channel.Valid() {
		return 0, types.NewValidationError("channel", fmt.Sprintf("unsupported channel %q", channel))
	}

	balance, err := s.repo.GetBalance(ctx, tenantID, channel)
	if err != nil {
		return 0, fmt.Errorf("unexpected error occurred while reading %s balance: %w", channel, err)
	}
	return balance, nil
}

func (s *creditService) GetBalances(ctx context.Context, tenantID string) (*domain.CreditAccount, error) {
	acc, err := s.repo.GetAccount(ctx, tenantID)
	if errors.Is(err, types.ErrNotFound) {
		return &domain.CreditAccount{TenantID: tenantID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unexpected error occurred while reading credit account: %w", err)
	}
	return acc, nil
}

func (s *creditService) HasSufficientCredit(ctx context.Context, tenantID string, channel domain.Channel, required int64) (bool, error) {
	balance, err := s.GetBalance(ctx, tenantID, channel)
	if err != nil {
		return false, err
	}
	return balance >= required, nil
}

func (s *creditService) Debit(ctx context.Context, tenantID string, channel domain.Channel, count int64, reference string) error {
	if count <= 0 {
		return nil
	}
	if !channel.Valid() {
		return types.NewValidationError("channel", fmt.Sprintf("unsupported channel %q", channel))
	}

	if _, err := s.repo.Debit(ctx, tenantID, channel, count, reference); err != nil {
		if errors.Is(err, types.ErrInsufficientCredit) {
			return err
		}
		return fmt.Errorf("unexpected error occurred while debiting %s credits: %w", channel, err)
	}
	return nil
}

func (s *creditService) Refund(ctx context.Context, tenantID string, channel domain.Channel, count int64, reference string) error {
	if count <= 0 {
		return nil
	}

	if _, err := s.repo.Refund(ctx, tenantID, channel, count, reference); err != nil {
		return fmt.Errorf("unexpected error occurred while refunding %d %s credits: %w", count, channel, err)
	}
	return nil
}

func (s *creditService) Pricing() Pricing {
	return s.pricing
}
