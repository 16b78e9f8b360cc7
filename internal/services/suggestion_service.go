package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/cache"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/repository"

	"go.uber.org/zap"
)

// MinSuggestQueryLength is the shortest query that reaches the directory.
const MinSuggestQueryLength = 2

// DefaultSuggestLimit applies when no positive limit is configured.
const DefaultSuggestLimit = 10

type SuggestionService interface {
	// Advisory username lookup. Read-only; results are unranked.
	Suggest(ctx context.Context, tenantID, query string) ([]domain.Customer, error)
}

type suggestionService struct {
	customers repository.CustomerRepository
	cache     cache.SuggestionCache
	limit     int
	logger    *zap.Logger
}

// NewSuggestionService accepts a nil cache.
func NewSuggestionService(customers repository.CustomerRepository, suggestionCache cache.SuggestionCache, limit int, logger *zap.Logger) SuggestionService {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	return &suggestionService{
		customers: customers,
		cache:     suggestionCache,
		limit:     limit,
		logger:    logger.Named("suggestions"),
	}
}

func (s *suggestionService) Suggest(ctx context.Context, tenantID, query string) ([]domain.Customer, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSuggestQueryLength {
		return []domain.Customer{}, nil
	}

	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, tenantID, query)
		if err != nil {
			s.logger.Warn("suggestion cache read failed", zap.String("tenant_id", tenantID), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	customers, err := s.customers.SearchCustomers(ctx, tenantID, query, s.limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected error occurred while searching customers: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, query, customers); err != nil {
			s.logger.Warn("suggestion cache write failed", zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}

	return customers, nil
}
