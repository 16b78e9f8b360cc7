package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/repository"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"
)

type RecipientResolver interface {
	// Turns a selector into concrete recipients. Customer status is not filtered.
	Resolve(ctx context.Context, tenantID string, selector domain.RecipientSelector) ([]domain.Recipient, error)
}

type recipientResolver struct {
	customers repository.CustomerRepository
}

func NewRecipientResolver(customers repository.CustomerRepository) RecipientResolver {
	return &recipientResolver{customers: customers}
}

func (r *recipientResolver) Resolve(ctx context.Context, tenantID string, selector domain.RecipientSelector) ([]domain.Recipient, error) {
	switch selector.Kind {
	case domain.SelectorAllCustomers:
		customers, err := r.customers.ListCustomers(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("unexpected error occurred while listing customers: %w", err)
		}

		recipients := make([]domain.Recipient, len(customers))
		for i, c := range customers {
			recipients[i] = c.Recipient()
		}
		return recipients, nil

	case domain.SelectorSpecificUsername:
		if selector.Username == "" {
			return nil, types.NewValidationError("specificUsername", "a username is required for a specific recipient")
		}

		customer, err := r.customers.FindCustomer(ctx, tenantID, selector.Username)
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: no customer with username %q", types.ErrRecipientNotFound, selector.Username)
		}
		if err != nil {
			return nil, fmt.Errorf("unexpected error occurred while looking up customer: %w", err)
		}
		return []domain.Recipient{customer.Recipient()}, nil

	default:
		return nil, types.NewValidationError("recipientType", fmt.Sprintf("unsupported recipient selector %q", selector.Kind))
	}
}
