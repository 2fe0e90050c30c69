package store

import (
	"context"
	"errors"

	"github.com/abhisek/dass21/internal/record"
)

type teeSink struct {
	sinks []Sink
}

// Tee returns a Sink that appends to every sink or to none of them.
// Sinks implementing Stager are staged first, plain sinks are then
// appended in order, and the staged writes are committed last. Any
// failure rolls back the writes not yet committed. Close closes every
// sink and joins their errors.
func Tee(sinks ...Sink) Sink {
	return &teeSink{sinks: sinks}
}

func (t *teeSink) Append(ctx context.Context, s *record.Submission) error {
	if len(t.sinks) == 0 {
		return errors.New("no persistence sink configured")
	}

	var staged []Pending
	abort := func(err error) error {
		for i := len(staged) - 1; i >= 0; i-- {
			if rerr := staged[i].Rollback(); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}
		return err
	}

	for _, sink := range t.sinks {
		st, ok := sink.(Stager)
		if !ok {
			continue
		}
		p, err := st.Stage(ctx, s)
		if err != nil {
			return abort(err)
		}
		staged = append(staged, p)
	}
	for _, sink := range t.sinks {
		if _, ok := sink.(Stager); ok {
			continue
		}
		if err := sink.Append(ctx, s); err != nil {
			return abort(err)
		}
	}
	for len(staged) > 0 {
		p := staged[0]
		staged = staged[1:]
		if err := p.Commit(); err != nil {
			return abort(err)
		}
	}
	return nil
}

func (t *teeSink) Close() error {
	var errs []error
	for _, sink := range t.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
