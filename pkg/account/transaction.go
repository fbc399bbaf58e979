package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pokerverse-server/pkg/db"
)

// TransactionType classifies a chip ledger entry
type TransactionType string

// transaction type constants
const (
	TransactionDeposit TransactionType = "DEPOSIT"
	TransactionBuyIn   TransactionType = "GAME_BUY_IN"
	TransactionPayout  TransactionType = "GAME_PAYOUT"
)

// Transaction is a record in the `transactions` chip ledger
type Transaction struct {
	ID      int64           `json:"id"`
	UUID    string          `json:"uuid"`
	UserID  int64           `json:"userId"`
	Amount  int64           `json:"amount"`
	Type    TransactionType `json:"type"`
	Created time.Time       `json:"created"`
}

// Deposit credits the user's chip balance and records a ledger entry.
// The balance update and the ledger row commit atomically.
func (u *User) Deposit(ctx context.Context, amount int64) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return u.recordTransaction(ctx, amount, TransactionDeposit)
}

func (u *User) recordTransaction(ctx context.Context, amount int64, txType TransactionType) (*Transaction, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const insert = `
INSERT INTO transactions (uuid, user_id, amount, transaction_type)
VALUES ($1, $2, $3, $4)
RETURNING id, created`

	record := &Transaction{
		UUID:   uuid.New().String(),
		UserID: u.ID,
		Amount: amount,
		Type:   txType,
	}

	row := tx.QueryRowContext(ctx, insert, record.UUID, u.ID, amount, txType)
	if err := row.Scan(&record.ID, &record.Created); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	const update = `
UPDATE users
SET chips = chips + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
RETURNING chips`

	if err := tx.QueryRowContext(ctx, update, amount, u.ID).Scan(&u.Chips); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return record, nil
}

// GetTransactions returns the user's most recent ledger entries
func (u *User) GetTransactions(ctx context.Context, limit int) ([]*Transaction, error) {
	const query = `
SELECT id, uuid, user_id, amount, transaction_type, created
FROM transactions
WHERE user_id = $1
ORDER BY created DESC, id DESC
LIMIT $2`

	rows, err := db.Instance().QueryContext(ctx, query, u.ID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*Transaction, 0, limit)
	for rows.Next() {
		var record Transaction
		if err := rows.Scan(&record.ID, &record.UUID, &record.UserID, &record.Amount, &record.Type, &record.Created); err != nil {
			return nil, err
		}

		transactions = append(transactions, &record)
	}

	return transactions, rows.Err()
}
