package store

import (
	"context"
	"time"

	"github.com/abhisek/dass21/internal/record"
)

// QueryOpts configures submission queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Variant string    // exact variant id ("" = any)
	Latest  bool      // with Limit, keep the newest matches instead of the oldest
}

// Sink is an append-only destination for submission records.
// Append must return nil only once the record is durably written.
type Sink interface {
	Append(ctx context.Context, s *record.Submission) error
	Close() error
}

// Pending is a staged write that is either committed or rolled back.
type Pending interface {
	Commit() error
	Rollback() error
}

// Stager is a Sink whose append can be held open until every other sink
// of a Tee has accepted the record.
type Stager interface {
	Sink
	Stage(ctx context.Context, s *record.Submission) (Pending, error)
}

// SubmissionRepo reads back the submissions log.
type SubmissionRepo interface {
	// List returns submissions in append order.
	List(ctx context.Context, opts QueryOpts) ([]*Entry, error)

	// Count returns the number of stored submissions.
	Count(ctx context.Context) (int, error)
}

// Entry is a stored submission with its log sequence number.
type Entry struct {
	Sequence int64
	*record.Submission
}
