package usecase

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

func mustParse(t *testing.T, text string) *entity.Table {
	t.Helper()
	tbl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) err = %v", text, err)
	}
	return tbl
}

func TestParseCommaTable(t *testing.T) {
	t.Parallel()

	tbl := mustParse(t, "id,name,city\n1,Ann,Berlin\n2,\"Doe, John\",Paris\n")

	if want := []string{"id", "name", "city"}; !reflect.DeepEqual(tbl.Columns, want) {
		t.Fatalf("columns = %q, want %q", tbl.Columns, want)
	}
	if want := [][]string{{"1", "Ann", "Berlin"}, {"2", "Doe, John", "Paris"}}; !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
	if tbl.Delimiter != entity.DelimiterComma {
		t.Fatalf("delimiter = %q", tbl.Delimiter)
	}
	if tbl.TotalRows != 2 || tbl.InvalidRows != 0 || len(tbl.Errors) != 0 {
		t.Fatalf("unexpected counts total=%d invalid=%d errors=%v", tbl.TotalRows, tbl.InvalidRows, tbl.Errors)
	}
}

func TestParseSemicolonTable(t *testing.T) {
	t.Parallel()

	tbl := mustParse(t, "a;b;c\r\n1;2,5;3\r\n")

	if tbl.Delimiter != entity.DelimiterSemicolon {
		t.Fatalf("delimiter = %q", tbl.Delimiter)
	}
	if want := [][]string{{"1", "2,5", "3"}}; !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
}

func TestParseHeaderDrivesDelimiter(t *testing.T) {
	t.Parallel()

	tbl := mustParse(t, "a,b\n\"x;y\",z\n")

	if tbl.Delimiter != entity.DelimiterComma {
		t.Fatalf("delimiter = %q", tbl.Delimiter)
	}
	if want := [][]string{{"x;y", "z"}}; !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	t.Parallel()

	tbl := mustParse(t, "id,name\n\n   \n")

	if want := []string{"id", "name"}; !reflect.DeepEqual(tbl.Columns, want) {
		t.Fatalf("columns = %q, want %q", tbl.Columns, want)
	}
	if len(tbl.Rows) != 0 || tbl.TotalRows != 0 {
		t.Fatalf("expected no rows, got %d (total %d)", len(tbl.Rows), tbl.TotalRows)
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "\n\n", "  \r\n\t\n"} {
		if _, err := Parse(in); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("Parse(%q) err = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestParseInvalidRowsUseSourceLineNumbers(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"id,name,city",  // line 1
		"",              // line 2
		"1,Ann,Berlin",  // line 3
		"2,Bob",         // line 4
		"   ",           // line 5
		"3,Cy,Rome,Ext", // line 6
		"4,Di,Oslo",     // line 7
	}, "\n")

	tbl := mustParse(t, text)

	if want := [][]string{{"1", "Ann", "Berlin"}, {"4", "Di", "Oslo"}}; !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
	if tbl.InvalidRows != 2 || tbl.TotalRows != 4 {
		t.Fatalf("unexpected counts total=%d invalid=%d", tbl.TotalRows, tbl.InvalidRows)
	}
	want := []string{
		"line 4: expected 3 columns, found 2",
		"line 6: expected 3 columns, found 4",
	}
	if !reflect.DeepEqual(tbl.Errors, want) {
		t.Fatalf("errors = %q, want %q", tbl.Errors, want)
	}
}

func TestParseLineEndings(t *testing.T) {
	t.Parallel()

	tbl := mustParse(t, "a,b\r1,2\r\n3\n5,6")

	if want := [][]string{{"1", "2"}, {"5", "6"}}; !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %q, want %q", tbl.Rows, want)
	}
	if want := []string{"line 3: expected 2 columns, found 1"}; !reflect.DeepEqual(tbl.Errors, want) {
		t.Fatalf("errors = %q, want %q", tbl.Errors, want)
	}
}

func TestParseInvariants(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a,b,c\n1,2,3\n1,2\n\"1,2\",3,4\n,,\n",
		"x;y\n1;2;3\n;\n\"a;b\";c\n",
		"solo\nv1\nv2,v3\n",
		"h1,h2\n\"unterminated,1\n2,3\n",
	}

	for _, in := range inputs {
		tbl := mustParse(t, in)

		for _, row := range tbl.Rows {
			if len(row) != len(tbl.Columns) {
				t.Fatalf("input %q: row %q has %d fields, header has %d", in, row, len(row), len(tbl.Columns))
			}
		}
		if tbl.TotalRows != len(tbl.Rows)+tbl.InvalidRows {
			t.Fatalf("input %q: total %d != valid %d + invalid %d", in, tbl.TotalRows, len(tbl.Rows), tbl.InvalidRows)
		}
		if len(tbl.Errors) != tbl.InvalidRows {
			t.Fatalf("input %q: %d errors for %d invalid rows", in, len(tbl.Errors), tbl.InvalidRows)
		}
	}
}
