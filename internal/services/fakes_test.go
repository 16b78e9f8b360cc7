package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"
)

// memCustomers is a deterministic in-memory customer directory.
type memCustomers struct {
	byTenant map[string][]domain.Customer

	listCalls   int32
	findCalls   int32
	searchCalls int32
}

func newMemCustomers() *memCustomers {
	return &memCustomers{byTenant: map[string][]domain.Customer{}}
}

// seed adds n customers named cust01..custNN with alternating statuses.
func (m *memCustomers) seed(tenantID string, n int) {
	statuses := []domain.CustomerStatus{domain.CustomerActive, domain.CustomerSuspended, domain.CustomerInactive}
	for i := 1; i <= n; i++ {
		m.byTenant[tenantID] = append(m.byTenant[tenantID], domain.Customer{
			TenantID:    tenantID,
			Username:    fmt.Sprintf("cust%02d", i),
			FullName:    fmt.Sprintf("Customer %02d", i),
			PhoneNumber: fmt.Sprintf("2547000000%02d", i),
			Status:      statuses[i%len(statuses)],
		})
	}
}

func (m *memCustomers) ListCustomers(_ context.Context, tenantID string) ([]domain.Customer, error) {
	atomic.AddInt32(&m.listCalls, 1)
	return append([]domain.Customer(nil), m.byTenant[tenantID]...), nil
}

func (m *memCustomers) FindCustomer(_ context.Context, tenantID, username string) (*domain.Customer, error) {
	atomic.AddInt32(&m.findCalls, 1)
	for _, c := range m.byTenant[tenantID] {
		if c.Username == username {
			c := c
			return &c, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *memCustomers) SearchCustomers(_ context.Context, tenantID, query string, limit int) ([]domain.Customer, error) {
	atomic.AddInt32(&m.searchCalls, 1)
	q := strings.ToLower(query)
	out := make([]domain.Customer, 0)
	for _, c := range m.byTenant[tenantID] {
		if strings.Contains(strings.ToLower(c.Username), q) || strings.Contains(strings.ToLower(c.FullName), q) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// memCredits mirrors the conditional UPDATE of the SQL repository under a mutex.
type memCredits struct {
	mu       sync.Mutex
	balances map[string]int64
	debits   int32
	refunds  int32

	refundErr error
}

func newMemCredits() *memCredits {
	return &memCredits{balances: map[string]int64{}}
}

func creditKey(tenantID string, channel domain.Channel) string {
	return tenantID + "/" + string(channel)
}

func (m *memCredits) set(tenantID string, channel domain.Channel, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[creditKey(tenantID, channel)] = balance
}

func (m *memCredits) get(tenantID string, channel domain.Channel) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[creditKey(tenantID, channel)]
}

func (m *memCredits) GetAccount(_ context.Context, tenantID string) (*domain.CreditAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sms, okSMS := m.balances[creditKey(tenantID, domain.ChannelSMS)]
	wa, okWA := m.balances[creditKey(tenantID, domain.ChannelWhatsApp)]
	if !okSMS && !okWA {
		return nil, types.ErrNotFound
	}
	return &domain.CreditAccount{TenantID: tenantID, SMSCredits: sms, WhatsAppCredits: wa}, nil
}

func (m *memCredits) GetBalance(_ context.Context, tenantID string, channel domain.Channel) (int64, error) {
	return m.get(tenantID, channel), nil
}

func (m *memCredits) Debit(_ context.Context, tenantID string, channel domain.Channel, amount int64, _ string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.AddInt32(&m.debits, 1)
	key := creditKey(tenantID, channel)
	if m.balances[key] < amount {
		return 0, &types.InsufficientCreditError{Channel: string(channel), Required: amount, Available: m.balances[key]}
	}
	m.balances[key] -= amount
	return m.balances[key], nil
}

func (m *memCredits) Refund(_ context.Context, tenantID string, channel domain.Channel, amount int64, _ string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.AddInt32(&m.refunds, 1)
	if m.refundErr != nil {
		return 0, m.refundErr
	}
	key := creditKey(tenantID, channel)
	m.balances[key] += amount
	return m.balances[key], nil
}

// countingTransport records every phone number it was asked to send to.
type countingTransport struct {
	mu    sync.Mutex
	sent  []string
	fail  map[string]error
	calls int32
}

func (t *countingTransport) Send(_ context.Context, phoneNumber, _ string) error {
	atomic.AddInt32(&t.calls, 1)
	if err, ok := t.fail[phoneNumber]; ok {
		return err
	}
	t.mu.Lock()
	t.sent = append(t.sent, phoneNumber)
	t.mu.Unlock()
	return nil
}
