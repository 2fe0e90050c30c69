// Package intake runs the submission workflow: score, record, persist.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/record"
	"github.com/abhisek/dass21/internal/store"
)

// ErrNotRecorded wraps every persistence failure. A caller seeing it must
// not tell the respondent their answers were recorded.
var ErrNotRecorded = errors.New("submission not recorded")

// ErrUnknownVariant is returned for a request naming an unloaded bank.
var ErrUnknownVariant = questionnaire.ErrUnknownVariant

// Request is one submission attempt from a form collector.
type Request struct {
	Variant   string // "" selects the bank default
	Identity  questionnaire.Identity
	Responses questionnaire.Responses
}

// Receipt is returned once a submission is scored and durably stored.
type Receipt struct {
	SubmissionID string
	Variant      *questionnaire.Variant
	Result       *questionnaire.Result
	Recorded     bool
	Submission   *record.Submission
}

// Service scores submissions and appends them to a sink.
type Service struct {
	bank   *questionnaire.Bank
	sink   store.Sink
	logger *slog.Logger

	now         func() time.Time
	idGenerator func() string
}

// NewService creates a Service. A nil logger uses slog.Default().
func NewService(bank *questionnaire.Bank, sink store.Sink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		bank:        bank,
		sink:        sink,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: uuid.NewString,
	}
}

// Bank returns the question banks the service scores against.
func (s *Service) Bank() *questionnaire.Bank {
	return s.bank
}

// Engine resolves the engine for a variant id ("" = default).
func (s *Service) Engine(variant string) (*questionnaire.Engine, error) {
	if variant == "" {
		return s.bank.Default(), nil
	}
	return s.bank.Get(variant)
}

// Submit validates and scores req, then appends the record to the sink.
// A *questionnaire.ValidationError is returned unchanged and nothing is
// stored. Persistence failures wrap ErrNotRecorded.
func (s *Service) Submit(ctx context.Context, req Request) (*Receipt, error) {
	eng, err := s.Engine(req.Variant)
	if err != nil {
		return nil, err
	}
	v := eng.Variant()

	in := questionnaire.Input{Identity: req.Identity, Responses: req.Responses.Clone()}
	res, err := eng.Compute(in)
	if err != nil {
		var ve *questionnaire.ValidationError
		if errors.As(err, &ve) {
			s.logger.Debug("submission rejected",
				"variant", v.ID, "reason", ve.Reason, "field", ve.Field, "position", ve.Position)
		}
		return nil, err
	}

	sub, err := record.New(s.idGenerator(), s.now(), v, in, res)
	if err != nil {
		return nil, fmt.Errorf("build record: %w", err)
	}

	if err := s.sink.Append(ctx, sub); err != nil {
		s.logger.Error("failed to persist submission",
			"submission_id", sub.ID, "variant", v.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNotRecorded, err)
	}

	s.logger.Info("submission recorded",
		"submission_id", sub.ID,
		"variant", v.ID,
		"stress", sub.Score(questionnaire.Stress).Label,
		"anxiety", sub.Score(questionnaire.Anxiety).Label,
		"depression", sub.Score(questionnaire.Depression).Label,
	)

	return &Receipt{
		SubmissionID: sub.ID,
		Variant:      v,
		Result:       res,
		Recorded:     true,
		Submission:   sub,
	}, nil
}
