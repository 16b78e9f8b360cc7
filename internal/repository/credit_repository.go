package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"
	"github.com/dennismutuku2005/stream-wisp-sub001/internal/types"

	"github.com/jackc/pgx/v5"
)

type CreditRepository interface {
	GetAccount(ctx context.Context, tenantID string) (*domain.CreditAccount, error)
	// Returns 0 for a tenant without a credit account.
	GetBalance(ctx context.Context, tenantID string, channel domain.Channel) (int64, error)
	// Atomically decrements the balance if it covers amount. Returns the balance after.
	Debit(ctx context.Context, tenantID string, channel domain.Channel, amount int64, reference string) (int64, error)
	// Gives back credits reserved by Debit that were not consumed.
	Refund(ctx context.Context, tenantID string, channel domain.Channel, amount int64, reference string) (int64, error)
}

type creditRepository struct {
	db DB
}

func NewCreditRepository(db DB) CreditRepository {
	return &creditRepository{db: db}
}

// balanceColumn maps a channel to its column. Channel values never reach SQL text directly.
func balanceColumn(channel domain.Channel) (string, error) {
	switch channel {
	case domain.ChannelSMS:
		return "sms_credits", nil
	case domain.ChannelWhatsApp:
		return "whatsapp_credits", nil
	default:
		return "", types.NewValidationError("channel", fmt.Sprintf("unsupported channel %q", channel))
	}
}

func (r *creditRepository) GetAccount(ctx context.Context, tenantID string) (*domain.CreditAccount, error) {
	sql := `SELECT tenant_id, sms_credits, whatsapp_credits, updated_at
			FROM credit_accounts
			WHERE tenant_id = $1`

	var acc domain.CreditAccount
	err := r.db.QueryRow(ctx, sql, tenantID).Scan(
		&acc.TenantID,
		&acc.SMSCredits,
		&acc.WhatsAppCredits,
		&acc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

func (r *creditRepository) GetBalance(ctx context.Context, tenantID string, channel domain.Channel) (int64, error) {
	column, err := balanceColumn(channel)
	if err != nil {
		return 0, err
	}

	sql := fmt.Sprintf(`SELECT %s FROM credit_accounts WHERE tenant_id = $1`, column)

	var balance int64
	err = r.db.QueryRow(ctx, sql, tenantID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (r *creditRepository) Debit(ctx context.Context, tenantID string, channel domain.Channel, amount int64, reference string) (int64, error) {
	column, err := balanceColumn(channel)
	if err != nil {
		return 0, err
	}

	// The WHERE guard makes check-and-decrement one statement; concurrent
	// debits on the same row serialize on the row lock and re-evaluate it.
	sql := fmt.Sprintf(`UPDATE credit_accounts
			SET %[1]s = %[1]s - $1, updated_at = NOW()
			WHERE tenant_id = $2 AND %[1]s >= $1
			RETURNING %[1]s`, column)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}

	var balanceAfter int64
	err = tx.QueryRow(ctx, sql, amount, tenantID).Scan(&balanceAfter)
	if errors.Is(err, pgx.ErrNoRows) {
		available, lookupErr := r.balanceInTx(ctx, tx, column, tenantID)
		_ = tx.Rollback(ctx)
		if lookupErr != nil {
			return 0, lookupErr
		}
		return 0, &types.InsufficientCreditError{
			Channel:   string(channel),
			Required:  amount,
			Available: available,
		}
	}
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, err
	}

	if err := insertTransaction(ctx, tx, tenantID, channel, -amount, balanceAfter, domain.ReasonDispatchReserve, reference); err != nil {
		_ = tx.Rollback(ctx)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return balanceAfter, nil
}

func (r *creditRepository) Refund(ctx context.Context, tenantID string, channel domain.Channel, amount int64, reference string) (int64, error) {
	column, err := balanceColumn(channel)
	if err != nil {
		return 0, err
	}

	sql := fmt.Sprintf(`UPDATE credit_accounts
			SET %[1]s = %[1]s + $1, updated_at = NOW()
			WHERE tenant_id = $2
			RETURNING %[1]s`, column)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}

	var balanceAfter int64
	err = tx.QueryRow(ctx, sql, amount, tenantID).Scan(&balanceAfter)
	if err != nil {
		_ = tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, types.ErrNotFound
		}
		return 0, err
	}

	if err := insertTransaction(ctx, tx, tenantID, channel, amount, balanceAfter, domain.ReasonDispatchRefund, reference); err != nil {
		_ = tx.Rollback(ctx)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return balanceAfter, nil
}

// A missing account row reads as zero credits.
func (r *creditRepository) balanceInTx(ctx context.Context, tx pgx.Tx, column, tenantID string) (int64, error) {
	sql := fmt.Sprintf(`SELECT %s FROM credit_accounts WHERE tenant_id = $1`, column)

	var balance int64
	err := tx.QueryRow(ctx, sql, tenantID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return balance, err
}

func insertTransaction(ctx context.Context, tx pgx.Tx, tenantID string, channel domain.Channel, amount, balanceAfter int64, reason domain.TransactionReason, reference string) error {
	sql := `INSERT INTO credit_transactions (tenant_id, channel, amount, balance_after, reason, reference)
			VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, sql, tenantID, string(channel), amount, balanceAfter, string(reason), reference)
	return err
}
