package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"

	"github.com/jackc/pgx/v5"
)

// CustomerRepository is a read-only view of the customer directory.
type CustomerRepository interface {
	ListCustomers(ctx context.Context, tenantID string) ([]domain.Customer, error)
	// Exact username match within the tenant. Returns types.ErrNotFound on a miss.
	FindCustomer(ctx context.Context, tenantID, username string) (*domain.Customer, error)
	// Case-insensitive substring match on username, full name and phone number.
	SearchCustomers(ctx context.Context, tenantID, query string, limit int) ([]domain.Customer, error)
}

type customerRepository struct {
	db DB
}

func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) ListCustomers(ctx context.Context, tenantID string) ([]domain.Customer, error) {
	sql := `SELECT tenant_id, username, full_name, phone_number, status
			FROM customers
			WHERE tenant_id = $1
			ORDER BY username ASC`

	rows, err := r.db.Query(ctx, sql, tenantID)
	if err != nil {
		return nil, err
	}
	return scanCustomers(rows)
}

func (r *customerRepository) FindCustomer(ctx context.Context, tenantID, username string) (*domain.Customer, error) {
	sql := `SELECT tenant_id, username, full_name, phone_number, status
			FROM customers
			WHERE tenant_id = $1 AND username = $2`

	var c domain.Customer
	var status string
	err := r.db.QueryRow(ctx, sql, tenantID, username).Scan(
		&c.TenantID,
		&c.Username,
		&c.FullName,
		&c.PhoneNumber,
		&status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	c.Status = domain.CustomerStatus(status)
	return &c, nil
}

func (r *customerRepository) SearchCustomers(ctx context.Context, tenantID, query string, limit int) ([]domain.Customer, error) {
	sql := `SELECT tenant_id, username, full_name, phone_number, status
			FROM customers
			WHERE tenant_id = $1
			  AND (username ILIKE $2 OR full_name ILIKE $2 OR phone_number ILIKE $2)
			ORDER BY username ASC
			LIMIT $3`

	rows, err := r.db.Query(ctx, sql, tenantID, likePattern(query), limit)
	if err != nil {
		return nil, err
	}
	return scanCustomers(rows)
}

func scanCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		var status string
		if err := rows.Scan(&c.TenantID, &c.Username, &c.FullName, &c.PhoneNumber, &status); err != nil {
			return nil, err
		}
		c.Status = domain.CustomerStatus(status)
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
