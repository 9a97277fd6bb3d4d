package database

import "context"

// Transactor runs fn as a single atomic unit of work. Every repository call
// made with the context passed to fn joins the same transaction; a non-nil
// error from fn (or a panic) discards all of its writes.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
