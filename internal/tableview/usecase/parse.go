package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

var (
	// ErrEmptyInput is returned when the text has no non-blank line.
	ErrEmptyInput = errors.New("csv file is empty")
	// ErrMissingHeader is returned when the header line yields no fields.
	ErrMissingHeader = errors.New("could not read header")
)

type sourceLine struct {
	number int // 1-based position in the original text
	text   string
}

// Parse turns delimited text into a Table.
//
// Rows whose width differs from the header are dropped and reported in
// Table.Errors with their original line number; they never abort parsing.
func Parse(text string) (*entity.Table, error) {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	delim := DetectDelimiter(lines[0].text)
	columns := SplitLine(lines[0].text, delim)
	if len(columns) == 0 {
		return nil, ErrMissingHeader
	}

	tbl := &entity.Table{
		Columns:   columns,
		Rows:      make([][]string, 0, len(lines)-1),
		Delimiter: delim,
		Errors:    []string{},
	}

	for _, line := range lines[1:] {
		cells := SplitLine(line.text, delim)
		if len(cells) != len(columns) {
			tbl.InvalidRows++
			tbl.Errors = append(tbl.Errors, fmt.Sprintf(
				"line %d: expected %d columns, found %d", line.number, len(columns), len(cells),
			))
			continue
		}
		tbl.Rows = append(tbl.Rows, cells)
	}

	tbl.TotalRows = len(tbl.Rows) + tbl.InvalidRows

	return tbl, nil
}

// nonBlankLines splits on "\r\n", "\n" and "\r", dropping lines that are
// empty or whitespace only while remembering where each kept line was.
func nonBlankLines(text string) []sourceLine {
	var out []sourceLine

	for number := 1; len(text) > 0; number++ {
		var line string
		i := strings.IndexAny(text, "\r\n")
		switch {
		case i < 0:
			line, text = text, ""
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			line, text = text[:i], text[i+2:]
		default:
			line, text = text[:i], text[i+1:]
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, sourceLine{number: number, text: line})
	}

	return out
}
