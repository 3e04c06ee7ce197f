package wordbank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/lingua/internal/vocab"
)

// ErrTooFewColumns is returned when the header row has fewer than two columns.
var ErrTooFewColumns = errors.New("word bank needs at least two columns")

// Parse reads a word bank in the given format and returns its words.
func Parse(r io.Reader, format Format) ([]vocab.Word, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		rows, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}
	return rowsToWords(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// readXLSX returns the rows of the first sheet.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// rowsToWords treats the first non-empty row as the header. The first two
// columns are the original and the translation; a row missing either value
// is dropped, and ids count retained rows only.
func rowsToWords(rows [][]string) ([]vocab.Word, error) {
	rows = dropBlank(rows)
	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows[0]) < 2 {
		return nil, fmt.Errorf("%w: header %q", ErrTooFewColumns, strings.Join(rows[0], ","))
	}

	words := make([]vocab.Word, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		original := strings.TrimSpace(row[0])
		translation := strings.TrimSpace(row[1])
		if original == "" || translation == "" {
			continue
		}
		words = append(words, vocab.Word{
			ID:          len(words) + 1,
			Original:    original,
			Translation: translation,
		})
	}
	return words, nil
}

func dropBlank(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
