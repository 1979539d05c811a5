package mocks

import (
	"context"

	"github.com/adboard/adboard-api/internal/store"
)

// NoopTransactor implements store.Transactor by calling fn with a nil
// transaction. Stores are expected to be used as is when tx is nil.
type NoopTransactor struct {
	// Err, when set, is returned instead of calling fn.
	Err error

	// Calls counts RunInTx invocations.
	Calls int
}

// RunInTx implements store.Transactor
func (t *NoopTransactor) RunInTx(ctx context.Context, fn store.TxFn) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx, nil)
}
