package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/record"
)

// CSVHeader returns the header of the CSV log and export format. Every
// identity column is present so files mixing variants stay rectangular.
func CSVHeader() []string {
	return append([]string{"submission_id", "variant"}, record.Header(questionnaire.AllIdentityFields())...)
}

func csvRow(s *record.Submission) []string {
	row := append([]string{s.ID, s.Variant}, s.Flatten(questionnaire.AllIdentityFields())...)
	for i, cell := range row {
		row[i] = escapeFormula(cell)
	}
	return row
}

// escapeFormula quotes cells a spreadsheet would evaluate as a formula.
func escapeFormula(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@':
		return "'" + cell
	}
	return cell
}

// CSVSink appends submissions to a flat file, one row per Append.
// Rows are only ever appended; the file is never rewritten.
type CSVSink struct {
	mu   sync.Mutex
	path string
	f    *os.File
	w    *csv.Writer
}

// OpenCSV opens (or creates) the CSV log at path. The header is written
// when the file is empty; an existing file must carry the same header.
func OpenCSV(path string) (*CSVSink, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create csv dir: %w", err)
	}
	if err := checkCSVHeader(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open csv log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat csv log: %w", err)
	}

	s := &CSVSink{path: path, f: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := s.writeRow(CSVHeader()); err != nil {
			f.Close()
			return nil, err
		}
	}
	return s, nil
}

// checkCSVHeader fails if path exists with a header other than CSVHeader.
func checkCSVHeader(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open csv log: %w", err)
	}
	defer f.Close()

	got, err := csv.NewReader(f).Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	if !slices.Equal(got, CSVHeader()) {
		return fmt.Errorf("csv log %s has an unexpected header", path)
	}
	return nil
}

func (s *CSVSink) writeRow(row []string) error {
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flush csv row: %w", err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync csv log: %w", err)
	}
	return nil
}

// Append writes one submission row and syncs it to disk.
func (s *CSVSink) Append(ctx context.Context, sub *record.Submission) error {
	p, err := s.Stage(ctx, sub)
	if err != nil {
		return err
	}
	return p.Commit()
}

// Stage writes and syncs one row but keeps the log locked until the
// returned Pending is resolved. Rollback truncates the file back to its
// size before the row.
func (s *CSVSink) Stage(ctx context.Context, sub *record.Submission) (Pending, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.f == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("csv log %s is closed", s.path)
	}
	info, err := s.f.Stat()
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("stat csv log: %w", err)
	}

	p := &csvPending{sink: s, offset: info.Size()}
	if err := s.writeRow(csvRow(sub)); err != nil {
		return nil, errors.Join(err, p.Rollback())
	}
	return p, nil
}

type csvPending struct {
	sink   *CSVSink
	offset int64
	done   bool
}

func (p *csvPending) Commit() error {
	if p.done {
		return nil
	}
	p.done = true
	p.sink.mu.Unlock()
	return nil
}

func (p *csvPending) Rollback() error {
	if p.done {
		return nil
	}
	p.done = true
	s := p.sink
	defer s.mu.Unlock()

	// Drop anything still buffered from the failed row.
	s.w = csv.NewWriter(s.f)
	if err := s.f.Truncate(p.offset); err != nil {
		return fmt.Errorf("truncate csv log: %w", err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync csv log: %w", err)
	}
	return nil
}

// Path returns the file the sink appends to.
func (s *CSVSink) Path() string {
	return s.path
}

// Close closes the underlying file.
func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// WriteCSV renders submissions as CSV with a header row.
func WriteCSV(w io.Writer, subs []*record.Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return err
	}
	for _, s := range subs {
		if err := cw.Write(csvRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
