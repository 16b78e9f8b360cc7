package dto

import "time"

// DispatchRequest is what the dashboard posts to send a message.
type DispatchRequest struct {
	TenantID         string `json:"tenantId" example:"isp-1"`
	Channel          string `json:"channel" example:"sms" enums:"sms,whatsapp"`
	Body             string `json:"body" example:"Your internet package expires tomorrow"`
	RecipientType    string `json:"recipientType" example:"all" enums:"all,specific"`
	SpecificUsername string `json:"specificUsername,omitempty" example:"john"`
}

type DispatchResponse struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}

type EstimateResponse struct {
	Success    bool   `json:"success"`
	Recipients int    `json:"recipients"`
	Available  int64  `json:"available"`
	Sufficient bool   `json:"sufficient"`
	Cost       string `json:"cost"`
	Currency   string `json:"currency"`
}

type DispatchRecordResponse struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Selector  string    `json:"selector"`
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt"`
}

type DispatchesResponse struct {
	Success    bool                     `json:"success"`
	Dispatches []DispatchRecordResponse `json:"dispatches"`
	Total      int64                    `json:"total"`
}

// ErrorResponse carries the credit numbers only for insufficient-credit failures.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Required  *int64 `json:"required,omitempty"`
	Available *int64 `json:"available,omitempty"`
	Shortfall *int64 `json:"shortfall,omitempty"`
}
