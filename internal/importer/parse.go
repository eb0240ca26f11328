package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/alexanderramin/throughput/internal/domain"
)

// Rows reads the header from r and returns a single-use sequence over the
// data rows. Each step yields either a validated Row or the error for that
// line; the caller decides whether to stop. Blank rows are skipped.
//
// A missing or too-narrow header is reported as *TemplateError before any
// data row is read.
func Rows(r io.Reader) (iter.Seq2[Row, error], error) {
	cr := csv.NewReader(stripUTF8BOM(bufio.NewReader(r)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &TemplateError{Err: errors.New("missing header")}
		}
		return nil, &TemplateError{Err: err}
	}
	if len(header) < minHeaderColumns {
		return nil, &TemplateError{Columns: len(header)}
	}

	return func(yield func(Row, error) bool) {
		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var pe *csv.ParseError
				if !errors.As(err, &pe) {
					yield(Row{}, fmt.Errorf("reading input: %w", err))
					return
				}
				if !yield(Row{}, &RowValidationError{Line: pe.StartLine, Reason: pe.Err.Error()}) {
					return
				}
				continue
			}
			if isBlank(record) {
				continue
			}
			line, _ := cr.FieldPos(0)
			if !yield(validateRecord(line, record)) {
				return
			}
		}
	}, nil
}

// ReadAll validates every data row of r, stopping at the first failure.
// It returns ErrEmptyImport when the input holds no data rows.
func ReadAll(r io.Reader) ([]Row, error) {
	seq, err := Rows(r)
	if err != nil {
		return nil, err
	}
	var rows []Row
	for row, err := range seq {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	return rows, nil
}

// Parse reads and validates r and folds the rows into a batch.
func Parse(r io.Reader) (*domain.Batch, error) {
	rows, err := ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Aggregate(rows), nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
