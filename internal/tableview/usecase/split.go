package usecase

import (
	"strings"

	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

const quote = '"'

// SplitLine splits one line into trimmed fields.
//
// A double quote toggles quoted mode; inside quotes a doubled quote is a
// literal quote and the delimiter is an ordinary character. An unterminated
// quote is not an error, the rest of the line simply stays in the last field.
func SplitLine(line string, delim entity.Delimiter) []string {
	sep := byte(delim)
	fields := make([]string, 0, strings.Count(line, string(sep))+1)

	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == quote:
			if inQuotes && i+1 < len(line) && line[i+1] == quote {
				current.WriteByte(quote)
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == sep && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}

// DetectDelimiter picks ';' when the header line contains one, ',' otherwise.
// Only the header is inspected.
func DetectDelimiter(header string) entity.Delimiter {
	if strings.ContainsRune(header, rune(entity.DelimiterSemicolon)) {
		return entity.DelimiterSemicolon
	}
	return entity.DelimiterComma
}
