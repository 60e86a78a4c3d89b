package entity

// Delimiter separates fields on a line. Only comma and semicolon are detected.
type Delimiter rune

const (
	DelimiterComma     Delimiter = ','
	DelimiterSemicolon Delimiter = ';'
)

func (d Delimiter) String() string {
	return string(rune(d))
}

// Table is a parsed delimited-text file. It is never mutated after the parser
// returns it, so it can be shared by concurrent readers without locking.
type Table struct {
	Columns     []string
	Rows        [][]string // valid rows only, each exactly len(Columns) wide
	TotalRows   int        // valid + invalid
	InvalidRows int
	Delimiter   Delimiter
	Errors      []string // one message per invalid row, in source order
}

// ColumnIndex returns the position of the first column named name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
