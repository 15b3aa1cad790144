package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle threaded through repository calls.
// Passing NoTX executes against the pool directly.
type Tx = any

var NoTX Tx = nil

// TransactionManager runs a callback inside a database transaction.
// The callback receives the live tx handle to pass back into repositories.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
