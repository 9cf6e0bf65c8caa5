package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

// stockTx answers the lock and upsert statements of receive from memory.
// Locking deadlockOn fails with a deadlock.
type stockTx struct {
	pgx.Tx
	nextID     int64
	stock      map[string]int
	deadlockOn string
}

func (tx *stockTx) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	if args[0] == tx.deadlockOn {
		return pgconn.CommandTag{}, &pgconn.PgError{Code: sqlStateDeadlockDetected}
	}
	return pgconn.NewCommandTag("SELECT 1"), nil
}

func (tx *stockTx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	name := args[0].(string)
	tx.stock[name] += args[1].(int)
	tx.nextID++
	return stockRow{values: []any{tx.nextID, name, tx.stock[name], 0, tx.stock[name], time.Now()}}
}

type stockRow struct {
	values []any
}

func (r stockRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch d := d.(type) {
		case *int64:
			*d = r.values[i].(int64)
		case *string:
			*d = r.values[i].(string)
		case *int:
			*d = r.values[i].(int)
		case *time.Time:
			*d = r.values[i].(time.Time)
		default:
			return fmt.Errorf("unexpected scan target %T", d)
		}
	}
	return nil
}

func TestReceiveLines_RetriedAttemptStartsClean(t *testing.T) {
	ctx := context.Background()
	receipts := []domain.StockReceipt{
		{ItemName: "Cable", Quantity: 5},
		{ItemName: "Mouse", Quantity: 2},
	}
	tx := &stockTx{stock: map[string]int{}, deadlockOn: "Mouse"}

	// same shape as the ReceiveBatch transaction body
	var items []domain.InventoryItem
	attempt := func(tx pgx.Tx) error {
		var err error
		items, err = receiveLines(ctx, tx, receipts)
		return err
	}

	err := attempt(tx)
	require.Error(t, err)
	assert.True(t, isRetryable(err))
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, items)

	tx.deadlockOn = ""
	require.NoError(t, attempt(tx))
	require.Len(t, items, 2)
	assert.Equal(t, "Cable", items[0].ItemName)
	assert.Equal(t, "Mouse", items[1].ItemName)
	assert.Equal(t, 2, items[1].CurrentStock)
}
