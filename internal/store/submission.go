package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/record"
)

const submissionsTable = "submissions"

// timeLayout is fixed-width UTC so stored timestamps compare lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned when a submission id is not in the log.
var ErrNotFound = errors.New("submission not found")

func answerColumn(pos int) string { return "q" + strconv.Itoa(pos) }

func migrate(ctx context.Context, db *sql.DB) error {
	var b strings.Builder
	b.WriteString(`CREATE TABLE IF NOT EXISTS submissions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		variant TEXT NOT NULL,
		fields TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		student_id TEXT NOT NULL DEFAULT '',
		campus TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT ''`)
	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		fmt.Fprintf(&b, ",\n\t\t%s INTEGER NOT NULL CHECK (%s BETWEEN 0 AND %d)", answerColumn(pos), answerColumn(pos), questionnaire.MaxAnswer)
	}
	for _, id := range questionnaire.AllSubscales() {
		fmt.Fprintf(&b, ",\n\t\t%s_total INTEGER NOT NULL", id)
	}
	for _, id := range questionnaire.AllSubscales() {
		fmt.Fprintf(&b, ",\n\t\t%s_label TEXT NOT NULL", id)
	}
	b.WriteString("\n\t)")

	stmts := []string{
		b.String(),
		`CREATE INDEX IF NOT EXISTS submissions_created_at ON submissions (created_at)`,
		`CREATE INDEX IF NOT EXISTS submissions_variant ON submissions (variant)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create submissions schema: %w", err)
		}
	}
	return nil
}

// submissionColumns lists every column except seq, in insert order.
func submissionColumns() []string {
	cols := []string{"id", "created_at", "variant", "fields", "name", "student_id", "campus", "phone"}
	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		cols = append(cols, answerColumn(pos))
	}
	for _, id := range questionnaire.AllSubscales() {
		cols = append(cols, string(id)+"_total")
	}
	for _, id := range questionnaire.AllSubscales() {
		cols = append(cols, string(id)+"_label")
	}
	return cols
}

func joinFields(fields []questionnaire.IdentityField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func splitFields(s string) []questionnaire.IdentityField {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]questionnaire.IdentityField, len(parts))
	for i, p := range parts {
		out[i] = questionnaire.IdentityField(p)
	}
	return out
}

// Append inserts one submission. The log is append-only: an id that is
// already stored is rejected rather than overwritten.
func (s *Store) Append(ctx context.Context, sub *record.Submission) error {
	query, args, err := insertSubmission(sub)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert submission %s: %w", sub.ID, err)
	}
	return nil
}

// Stage inserts sub inside a transaction that the caller commits or
// rolls back. The row is invisible to readers until Commit.
func (s *Store) Stage(ctx context.Context, sub *record.Submission) (Pending, error) {
	query, args, err := insertSubmission(sub)
	if err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin submission %s: %w", sub.ID, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("insert submission %s: %w", sub.ID, err)
	}
	return tx, nil
}

func insertSubmission(sub *record.Submission) (string, []any, error) {
	if len(sub.Answers) != questionnaire.ItemCount {
		return "", nil, fmt.Errorf("submission %s has %d answers, want %d", sub.ID, len(sub.Answers), questionnaire.ItemCount)
	}

	vals := []any{
		sub.ID,
		sub.Timestamp.UTC().Format(timeLayout),
		sub.Variant,
		joinFields(sub.Fields),
		sub.Identity.Name,
		sub.Identity.StudentID,
		sub.Identity.Campus,
		sub.Identity.Phone,
	}
	for _, a := range sub.Answers {
		vals = append(vals, a)
	}
	for _, id := range questionnaire.AllSubscales() {
		vals = append(vals, sub.Score(id).Total)
	}
	for _, id := range questionnaire.AllSubscales() {
		vals = append(vals, sub.Score(id).Label)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(submissionsTable).
		Columns(submissionColumns()...).
		Values(vals...).
		Query()
	return query, args, nil
}

// SubmissionRepo returns a read view over the submissions log.
func (s *Store) SubmissionRepo() SubmissionRepo {
	return s
}

// List returns submissions matching opts in append order.
func (s *Store) List(ctx context.Context, opts QueryOpts) ([]*Entry, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(append([]string{"seq"}, submissionColumns()...)...).
		From(entsql.Table(submissionsTable))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("seq", opts.After))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UTC().Format(timeLayout)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UTC().Format(timeLayout)))
	}
	if opts.Variant != "" {
		preds = append(preds, entsql.EQ("variant", opts.Variant))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Latest {
		sel.OrderBy(entsql.Desc("seq"))
	} else {
		sel.OrderBy(entsql.Asc("seq"))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	if opts.Latest {
		slices.Reverse(out)
	}
	return out, nil
}

// Get returns the submission with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(append([]string{"seq"}, submissionColumns()...)...).
		From(entsql.Table(submissionsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submission: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query submission: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return scanEntry(rows)
}

// Count returns the number of stored submissions.
func (s *Store) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(submissionsTable)).
		Query()

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var (
		e       Entry
		sub     record.Submission
		created string
		fields  string
	)
	sub.Answers = make([]int, questionnaire.ItemCount)
	totals := make([]int, len(questionnaire.AllSubscales()))
	labels := make([]string, len(questionnaire.AllSubscales()))

	dest := []any{
		&e.Sequence,
		&sub.ID,
		&created,
		&sub.Variant,
		&fields,
		&sub.Identity.Name,
		&sub.Identity.StudentID,
		&sub.Identity.Campus,
		&sub.Identity.Phone,
	}
	for i := range sub.Answers {
		dest = append(dest, &sub.Answers[i])
	}
	for i := range totals {
		dest = append(dest, &totals[i])
	}
	for i := range labels {
		dest = append(dest, &labels[i])
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan submission: %w", err)
	}

	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("submission %s: parse created_at: %w", sub.ID, err)
	}
	sub.Timestamp = ts
	sub.Fields = splitFields(fields)
	for i, id := range questionnaire.AllSubscales() {
		sub.Scores = append(sub.Scores, questionnaire.SubscaleScore{
			ID:    id,
			Total: totals[i],
			Label: labels[i],
		})
	}

	e.Submission = &sub
	return &e, nil
}
