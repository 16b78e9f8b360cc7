package domain

type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "active"
	CustomerSuspended CustomerStatus = "suspended"
	CustomerInactive  CustomerStatus = "inactive"
)

// Customer is owned by the customer-management subsystem. This service only reads it.
type Customer struct {
	TenantID    string         `json:"tenant_id" db:"tenant_id"`
	Username    string         `json:"username" db:"username"`
	FullName    string         `json:"full_name" db:"full_name"`
	PhoneNumber string         `json:"phone_number" db:"phone_number"`
	Status      CustomerStatus `json:"status" db:"status"`
}

// Recipient is a resolved message target.
type Recipient struct {
	Username    string
	FullName    string
	PhoneNumber string
}

func (c Customer) Recipient() Recipient {
	return Recipient{
		Username:    c.Username,
		FullName:    c.FullName,
		PhoneNumber: c.PhoneNumber,
	}
}
