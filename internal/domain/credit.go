package domain

import "time"

type CreditAccount struct {
	TenantID        string    `json:"tenant_id" db:"tenant_id"`
	SMSCredits      int64     `json:"sms_credits" db:"sms_credits"`
	WhatsAppCredits int64     `json:"whatsapp_credits" db:"whatsapp_credits"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Balance returns the credit count for the given channel.
func (a CreditAccount) Balance(channel Channel) int64 {
	switch channel {
	case ChannelSMS:
		return a.SMSCredits
	case ChannelWhatsApp:
		return a.WhatsAppCredits
	default:
		return 0
	}
}

type TransactionReason string

const (
	ReasonDispatchReserve TransactionReason = "dispatch_reserve"
	ReasonDispatchRefund  TransactionReason = "dispatch_refund"
)

// CreditTransaction is the audit row written alongside every balance change.
// Amount is negative for debits.
type CreditTransaction struct {
	ID           int64             `json:"id" db:"id"`
	TenantID     string            `json:"tenant_id" db:"tenant_id"`
	Channel      Channel           `json:"channel" db:"channel"`
	Amount       int64             `json:"amount" db:"amount"`
	BalanceAfter int64             `json:"balance_after" db:"balance_after"`
	Reason       TransactionReason `json:"reason" db:"reason"`
	Reference    string            `json:"reference" db:"reference"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}
