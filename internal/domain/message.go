package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SelectorKind string

const (
	SelectorAllCustomers     SelectorKind = "all-customers"
	SelectorSpecificUsername SelectorKind = "specific-username"
)

// RecipientSelector picks who a dispatch goes to. Username is only
// meaningful for SelectorSpecificUsername.
type RecipientSelector struct {
	Kind     SelectorKind
	Username string
}

func AllCustomers() RecipientSelector {
	return RecipientSelector{Kind: SelectorAllCustomers}
}

func SpecificUsername(username string) RecipientSelector {
	return RecipientSelector{Kind: SelectorSpecificUsername, Username: strings.TrimSpace(username)}
}

func (s RecipientSelector) String() string {
	if s.Kind == SelectorSpecificUsername {
		return string(s.Kind) + ":" + s.Username
	}
	return string(s.Kind)
}

type DispatchRequest struct {
	TenantID string
	Channel  Channel
	Body     string
	Selector RecipientSelector
}

// DispatchResult holds the outcome of a dispatch. Sent+Failed equals the
// number of resolved recipients.
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// DispatchRecord is the summary kept for the recent-dispatches listing.
type DispatchRecord struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Channel   Channel   `json:"channel"`
	Selector  string    `json:"selector"`
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
}

type DispatchEstimate struct {
	Recipients int
	Available  int64
	Sufficient bool
	Cost       decimal.Decimal
	Currency   string
}
