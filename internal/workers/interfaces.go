// Package workers runs the application's background jobs.
//
// A [Worker] starts its own goroutine in Run and stops when the context is
// done; [Workers] starts a set of them together.
package workers

import "context"

// Worker is a background job. Run must not block: implementations start a
// goroutine and return. The goroutine exits when ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// TokenPruner removes revocation entries of expired tokens and reports how
// many were removed.
type TokenPruner interface {
	PruneRevokedTokens(ctx context.Context) (int64, error)
}
