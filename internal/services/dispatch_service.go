package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/cache"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/gateway"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/metrics"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DispatchService interface {
	// Sends body to every resolved recipient over the channel and charges
	// only for the messages the gateway accepted.
	Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DispatchResult, error)
	// Validates and resolves like Dispatch but sends nothing and charges nothing.
	Estimate(ctx context.Context, req domain.DispatchRequest) (*domain.DispatchEstimate, error)
	RecentDispatches(ctx context.Context, tenantID string, page int, pageSize int) ([]domain.DispatchRecord, int64, error)
}

type DispatchOptions struct {
	// Upper bound for a single gateway call.
	SendTimeout time.Duration
}

type dispatchService struct {
	resolver    RecipientResolver
	credits     CreditService
	transports  gateway.Registry
	pool        *worker.Pool
	history     cache.DispatchCache
	sendTimeout time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewDispatchService accepts a nil history cache.
func NewDispatchService(
	resolver RecipientResolver,
	credits CreditService,
	transports gateway.Registry,
	pool *worker.Pool,
	history cache.DispatchCache,
	opts DispatchOptions,
	logger *zap.Logger,
) DispatchService {
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	return &dispatchService{
		resolver:    resolver,
		credits:     credits,
		transports:  transports,
		pool:        pool,
		history:     history,
		sendTimeout: opts.SendTimeout,
		logger:      logger.Named("dispatch"),
		now:         time.Now,
	}
}

func validateRequest(req domain.DispatchRequest) error {
	if strings.TrimSpace(req.TenantID) == "" {
		return types.NewValidationError("tenantId", "is required")
	}
	if req.Channel == "" {
		return types.NewValidationError("channel", "is required")
	}
	if !req.Channel.Valid() {
		return types.NewValidationError("channel", fmt.Sprintf("unsupported channel %q", req.Channel))
	}
	if strings.TrimSpace(req.Body) == "" {
		return types.NewValidationError("body", "message body must not be empty")
	}
	switch req.Selector.Kind {
	case domain.SelectorAllCustomers:
	case domain.SelectorSpecificUsername:
		if strings.TrimSpace(req.Selector.Username) == "" {
			return types.NewValidationError("specificUsername", "a username is required for a specific recipient")
		}
	default:
		return types.NewValidationError("recipientType", fmt.Sprintf("unsupported recipient selector %q", req.Selector.Kind))
	}
	return nil
}

func (s *dispatchService) Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DispatchResult, error) {
	start := s.now()

	if err := validateRequest(req); err != nil {
		metrics.DispatchesTotal.WithLabelValues(channelLabel(req.Channel), "invalid").Inc()
		return domain.DispatchResult{}, err
	}

	transport, err := s.transports.For(req.Channel)
	if err != nil {
		s.logger.Error("dispatch rejected", zap.String("channel", string(req.Channel)), zap.Error(err))
		metrics.DispatchesTotal.WithLabelValues(string(req.Channel), outcomeLabel(err)).Inc()
		return domain.DispatchResult{}, err
	}

	recipients, err := s.resolver.Resolve(ctx, req.TenantID, req.Selector)
	if err != nil {
		metrics.DispatchesTotal.WithLabelValues(string(req.Channel), outcomeLabel(err)).Inc()
		return domain.DispatchResult{}, err
	}

	dispatchID := uuid.NewString()
	logger := s.logger.With(
		zap.String("dispatch_id", dispatchID),
		zap.String("tenant_id", req.TenantID),
		zap.String("channel", string(req.Channel)),
		zap.String("selector", req.Selector.String()),
	)

	if len(recipients) == 0 {
		logger.Info("no recipients resolved, nothing to send")
		metrics.DispatchesTotal.WithLabelValues(string(req.Channel), "empty").Inc()
		s.record(ctx, logger, dispatchID, req, domain.DispatchResult{})
		return domain.DispatchResult{}, nil
	}

	required := int64(len(recipients))

	// Reserve everything; whatever is not sent is refunded below.
	if err := s.credits.Debit(ctx, req.TenantID, req.Channel, required, dispatchID); err != nil {
		logger.Info("dispatch rejected before sending", zap.Int64("required", required), zap.Error(err))
		metrics.DispatchesTotal.WithLabelValues(string(req.Channel), outcomeLabel(err)).Inc()
		return domain.DispatchResult{}, err
	}

	body := strings.TrimSpace(req.Body)
	outcome := worker.Run(ctx, s.pool, recipients, func(ctx context.Context, r domain.Recipient) error {
		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()

		if err := transport.Send(sendCtx, r.PhoneNumber, body); err != nil {
			return fmt.Errorf("send to %s: %w", r.Username, err)
		}
		return nil
	})

	result := domain.DispatchResult{Sent: outcome.Succeeded, Failed: outcome.Failed}

	// Settlement outlives the caller's context.
	settleCtx := context.WithoutCancel(ctx)
	if unused := required - int64(result.Sent); unused > 0 {
		if err := s.credits.Refund(settleCtx, req.TenantID, req.Channel, unused, dispatchID); err != nil {
			logger.Error("failed to refund unused credits",
				zap.Int64("unused", unused),
				zap.Error(err),
			)
		}
	}

	metrics.DispatchDuration.WithLabelValues(string(req.Channel)).Observe(s.now().Sub(start).Seconds())
	metrics.MessagesSent.WithLabelValues(string(req.Channel)).Add(float64(result.Sent))
	metrics.MessagesFailed.WithLabelValues(string(req.Channel)).Add(float64(result.Failed))
	metrics.CreditsDebited.WithLabelValues(string(req.Channel)).Add(float64(result.Sent))

	if result.Sent == 0 && allUnavailable(outcome.Errors) {
		logger.Warn("gateway unavailable for every recipient", zap.Int("attempted", result.Failed))
		metrics.DispatchesTotal.WithLabelValues(string(req.Channel), "gateway_unavailable").Inc()
		return domain.DispatchResult{}, fmt.Errorf("%w: %s gateway could not be reached", types.ErrGatewayUnavailable, req.Channel)
	}

	for _, sendErr := range outcome.Errors {
		logger.Debug("recipient send failed", zap.Error(sendErr))
	}
	logger.Info("dispatch completed",
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", s.now().Sub(start)),
	)
	metrics.DispatchesTotal.WithLabelValues(string(req.Channel), "completed").Inc()
	s.record(settleCtx, logger, dispatchID, req, result)

	return result, nil
}

func (s *dispatchService) Estimate(ctx context.Context, req domain.DispatchRequest) (*domain.DispatchEstimate, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	recipients, err := s.resolver.Resolve(ctx, req.TenantID, req.Selector)
	if err != nil {
		return nil, err
	}

	available, err := s.credits.GetBalance(ctx, req.TenantID, req.Channel)
	if err != nil {
		return nil, err
	}

	pricing := s.credits.Pricing()
	return &domain.DispatchEstimate{
		Recipients: len(recipients),
		Available:  available,
		Sufficient: available >= int64(len(recipients)),
		Cost:       pricing.Estimate(req.Channel, len(recipients)),
		Currency:   pricing.Currency,
	}, nil
}

func (s *dispatchService) RecentDispatches(ctx context.Context, tenantID string, page int, pageSize int) ([]domain.DispatchRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	if s.history == nil {
		return []domain.DispatchRecord{}, 0, nil
	}

	return s.history.GetDispatches(ctx, tenantID, page, pageSize)
}

// record keeps a summary for the dispatch listing. Failures are logged only.
func (s *dispatchService) record(ctx context.Context, logger *zap.Logger, id string, req domain.DispatchRequest, result domain.DispatchResult) {
	if s.history == nil {
		return
	}

	rec := domain.DispatchRecord{
		ID:        id,
		TenantID:  req.TenantID,
		Channel:   req.Channel,
		Selector:  req.Selector.String(),
		Sent:      result.Sent,
		Failed:    result.Failed,
		CreatedAt: s.now(),
	}
	if err := s.history.AddDispatch(ctx, rec); err != nil {
		logger.Warn("failed to record dispatch summary", zap.Error(err))
	}
}

func allUnavailable(errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		if !errors.Is(err, gateway.ErrUnavailable) {
			return false
		}
	}
	return true
}

func channelLabel(channel domain.Channel) string {
	if !channel.Valid() {
		return "unknown"
	}
	return string(channel)
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, types.ErrValidation):
		return "invalid"
	case errors.Is(err, types.ErrRecipientNotFound):
		return "recipient_not_found"
	case errors.Is(err, types.ErrInsufficientCredit):
		return "insufficient_credit"
	case errors.Is(err, types.ErrChannelNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}
