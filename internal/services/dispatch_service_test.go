package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/gateway"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const tenant = "isp-1"

type dispatchFixture struct {
	customers *memCustomers
	credits   *memCredits
	sms       *countingTransport
	whatsapp  *countingTransport
	svc       DispatchService
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()
	f := &dispatchFixture{
		customers: newMemCustomers(),
		credits:   newMemCredits(),
		sms:       &countingTransport{fail: map[string]error{}},
		whatsapp:  &countingTransport{fail: map[string]error{}},
	}
	pricing := Pricing{SMS: decimal.RequireFromString("0.80"), WhatsApp: decimal.RequireFromString("0.50"), Currency: "KES"}
	f.svc = NewDispatchService(
		NewRecipientResolver(f.customers),
		NewCreditService(f.credits, pricing),
		gateway.Registry{domain.ChannelSMS: f.sms, domain.ChannelWhatsApp: f.whatsapp},
		worker.NewPool(8, zap.NewNop()),
		nil,
		DispatchOptions{SendTimeout: time.Second},
		zap.NewNop(),
	)
	return f
}

func smsToAll(body string) domain.DispatchRequest {
	return domain.DispatchRequest{TenantID: tenant, Channel: domain.ChannelSMS, Body: body, Selector: domain.AllCustomers()}
}

func TestDispatch_AllCustomersSucceeds(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 50)
	f.credits.set(tenant, domain.ChannelSMS, 100)

	res, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchResult{Sent: 50, Failed: 0}, res)
	assert.Equal(t, int64(50), f.credits.get(tenant, domain.ChannelSMS))
	assert.Len(t, f.sms.sent, 50)
	assert.Zero(t, f.whatsapp.calls)
}

func TestDispatch_IncludesSuspendedAndInactiveCustomers(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 3)
	f.credits.set(tenant, domain.ChannelSMS, 3)

	res, err := f.svc.Dispatch(context.Background(), smsToAll("Maintenance tonight"))

	require.NoError(t, err)
	assert.Equal(t, 3, res.Sent)
}

func TestDispatch_InsufficientCreditSendsNothing(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 50)
	f.credits.set(tenant, domain.ChannelSMS, 10)

	_, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInsufficientCredit))
	var credErr *types.InsufficientCreditError
	require.True(t, errors.As(err, &credErr))
	assert.Equal(t, int64(40), credErr.Shortfall())
	assert.Equal(t, int64(10), f.credits.get(tenant, domain.ChannelSMS))
	assert.Zero(t, f.sms.calls)
}

func TestDispatch_UnknownSpecificRecipient(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 5)
	f.credits.set(tenant, domain.ChannelSMS, 100)

	_, err := f.svc.Dispatch(context.Background(), domain.DispatchRequest{
		TenantID: tenant,
		Channel:  domain.ChannelSMS,
		Body:     "Hello",
		Selector: domain.SpecificUsername("ghost"),
	})

	assert.ErrorIs(t, err, types.ErrRecipientNotFound)
	assert.Equal(t, int64(100), f.credits.get(tenant, domain.ChannelSMS))
	assert.Zero(t, f.credits.debits)
	assert.Zero(t, f.sms.calls)
}

func TestDispatch_SpecificRecipientChargesOne(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 5)
	f.credits.set(tenant, domain.ChannelWhatsApp, 4)

	res, err := f.svc.Dispatch(context.Background(), domain.DispatchRequest{
		TenantID: tenant,
		Channel:  domain.ChannelWhatsApp,
		Body:     "Your package expires tomorrow",
		Selector: domain.SpecificUsername("cust03"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchResult{Sent: 1}, res)
	assert.Equal(t, int64(3), f.credits.get(tenant, domain.ChannelWhatsApp))
	assert.Equal(t, []string{"254700000003"}, f.whatsapp.sent)
}

func TestDispatch_PartialFailureChargesOnlySent(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 50)
	f.credits.set(tenant, domain.ChannelSMS, 100)
	for _, n := range []int{7, 19, 42} {
		f.sms.fail[fmt.Sprintf("2547000000%02d", n)] = errors.New("invalid mobile")
	}

	res, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchResult{Sent: 47, Failed: 3}, res)
	assert.Equal(t, int64(53), f.credits.get(tenant, domain.ChannelSMS))
}

func TestDispatch_ValidationRejectsBeforeResolution(t *testing.T) {
	cases := map[string]domain.DispatchRequest{
		"empty body":       {TenantID: tenant, Channel: domain.ChannelSMS, Body: "   ", Selector: domain.AllCustomers()},
		"missing channel":  {TenantID: tenant, Body: "Hi", Selector: domain.AllCustomers()},
		"unknown channel":  {TenantID: tenant, Channel: "telegram", Body: "Hi", Selector: domain.AllCustomers()},
		"missing username": {TenantID: tenant, Channel: domain.ChannelSMS, Body: "Hi", Selector: domain.SpecificUsername(" ")},
		"missing tenant":   {Channel: domain.ChannelSMS, Body: "Hi", Selector: domain.AllCustomers()},
		"unknown selector": {TenantID: tenant, Channel: domain.ChannelSMS, Body: "Hi", Selector: domain.RecipientSelector{Kind: "everyone"}},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			f := newDispatchFixture(t)
			f.customers.seed(tenant, 5)
			f.credits.set(tenant, domain.ChannelSMS, 100)

			_, err := f.svc.Dispatch(context.Background(), req)

			assert.ErrorIs(t, err, types.ErrValidation)
			assert.Zero(t, f.customers.listCalls)
			assert.Zero(t, f.customers.findCalls)
			assert.Zero(t, f.credits.debits)
			assert.Equal(t, int64(100), f.credits.get(tenant, domain.ChannelSMS))
		})
	}
}

func TestDispatch_EmptyBroadcastIsNotAnError(t *testing.T) {
	f := newDispatchFixture(t)
	f.credits.set(tenant, domain.ChannelSMS, 5)

	res, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchResult{}, res)
	assert.Zero(t, f.credits.debits)
	assert.Equal(t, int64(5), f.credits.get(tenant, domain.ChannelSMS))
}

func TestDispatch_ConcurrentDispatchesNeverOverdraw(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 50)
	f.credits.set(tenant, domain.ChannelSMS, 60)

	var wg sync.WaitGroup
	results := make([]domain.DispatchResult, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.svc.Dispatch(context.Background(), smsToAll("Hi"))
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for i := range errs {
		switch {
		case errs[i] == nil:
			succeeded++
			assert.Equal(t, domain.DispatchResult{Sent: 50}, results[i])
		case errors.Is(errs[i], types.ErrInsufficientCredit):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", errs[i])
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, int64(10), f.credits.get(tenant, domain.ChannelSMS))
	assert.Len(t, f.sms.sent, 50)
}

func TestDispatch_GatewayWhollyUnavailable(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 4)
	f.credits.set(tenant, domain.ChannelSMS, 10)
	for i := 1; i <= 4; i++ {
		f.sms.fail[fmt.Sprintf("2547000000%02d", i)] = fmt.Errorf("%w: connection refused", gateway.ErrUnavailable)
	}

	_, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))

	assert.ErrorIs(t, err, types.ErrGatewayUnavailable)
	assert.Equal(t, int64(10), f.credits.get(tenant, domain.ChannelSMS))
}

func TestDispatch_AllRejectedIsAResultNotAnError(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 2)
	f.credits.set(tenant, domain.ChannelSMS, 10)
	f.sms.fail["254700000001"] = errors.New("invalid mobile")
	f.sms.fail["254700000002"] = fmt.Errorf("%w: status 503", gateway.ErrUnavailable)

	res, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchResult{Sent: 0, Failed: 2}, res)
	assert.Equal(t, int64(10), f.credits.get(tenant, domain.ChannelSMS))
}

func TestDispatch_SendTimeoutsAreOrdinaryFailures(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 3)
	f.credits.set(tenant, domain.ChannelSMS, 10)
	blocking := gateway.TransportFunc(func(ctx context.Context, _, _ string) error {
		<-ctx.Done()
		return ctx.Err()
	})
	svc := NewDispatchService(
		NewRecipientResolver(f.customers),
		NewCreditService(f.credits, Pricing{}),
		gateway.Registry{domain.ChannelSMS: blocking},
		worker.NewPool(3, zap.NewNop()),
		nil,
		DispatchOptions{SendTimeout: 50 * time.Millisecond},
		zap.NewNop(),
	)

	res, err := svc.Dispatch(context.Background(), smsToAll("Hi"))

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchResult{Sent: 0, Failed: 3}, res)
	assert.Equal(t, int64(10), f.credits.get(tenant, domain.ChannelSMS))
}

func TestDispatch_RefundFailureStillReturnsResult(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 10)
	f.credits.set(tenant, domain.ChannelSMS, 100)
	f.credits.refundErr = errors.New("connection reset")
	for _, n := range []int{2, 4, 6, 8} {
		f.sms.fail[fmt.Sprintf("2547000000%02d", n)] = errors.New("invalid mobile")
	}

	res, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))

	require.NoError(t, err)
	assert.Equal(t, domain.DispatchResult{Sent: 6, Failed: 4}, res)
	assert.Equal(t, int32(1), f.credits.refunds)
	// The reservation stands until reconciled.
	assert.Equal(t, int64(90), f.credits.get(tenant, domain.ChannelSMS))
}

func TestDispatch_SuggestionsDoNotAffectOutcome(t *testing.T) {
	run := func(suggestCalls int) (domain.DispatchResult, int64) {
		f := newDispatchFixture(t)
		f.customers.seed(tenant, 12)
		f.credits.set(tenant, domain.ChannelSMS, 20)

		suggest := NewSuggestionService(f.customers, nil, 10, zap.NewNop())
		for i := 0; i < suggestCalls; i++ {
			_, err := suggest.Suggest(context.Background(), tenant, "cust")
			require.NoError(t, err)
		}

		res, err := f.svc.Dispatch(context.Background(), smsToAll("Hi"))
		require.NoError(t, err)
		return res, f.credits.get(tenant, domain.ChannelSMS)
	}

	baseRes, baseBalance := run(0)
	res, balance := run(5)

	assert.Equal(t, baseRes, res)
	assert.Equal(t, baseBalance, balance)
}

func TestDispatch_MissingTransportTouchesNothing(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 2)
	f.credits.set(tenant, domain.ChannelSMS, 10)
	svc := NewDispatchService(
		NewRecipientResolver(f.customers),
		NewCreditService(f.credits, Pricing{}),
		gateway.Registry{},
		worker.NewPool(2, zap.NewNop()),
		nil,
		DispatchOptions{},
		zap.NewNop(),
	)

	_, err := svc.Dispatch(context.Background(), smsToAll("Hi"))

	assert.ErrorIs(t, err, types.ErrChannelNotConfigured)
	assert.Zero(t, f.credits.debits)
}

func TestEstimate(t *testing.T) {
	f := newDispatchFixture(t)
	f.customers.seed(tenant, 50)
	f.credits.set(tenant, domain.ChannelSMS, 10)

	est, err := f.svc.Estimate(context.Background(), smsToAll("Hi"))

	require.NoError(t, err)
	assert.Equal(t, 50, est.Recipients)
	assert.Equal(t, int64(10), est.Available)
	assert.False(t, est.Sufficient)
	assert.True(t, decimal.RequireFromString("40").Equal(est.Cost))
	assert.Equal(t, "KES", est.Currency)
	assert.Zero(t, f.credits.debits)
	assert.Zero(t, f.sms.calls)
}

func TestRecentDispatchesWithoutHistory(t *testing.T) {
	f := newDispatchFixture(t)

	records, total, err := f.svc.RecentDispatches(context.Background(), tenant, 0, 0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, total)
}
