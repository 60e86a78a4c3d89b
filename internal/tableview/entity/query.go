package entity

// AllColumns is the SearchColumn sentinel for matching against every cell.
const AllColumns = "all"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection returns SortDesc for exactly "desc" and SortAsc otherwise.
func ParseSortDirection(value string) SortDirection {
	if value == string(SortDesc) {
		return SortDesc
	}
	return SortAsc
}

type QueryParams struct {
	Search        string
	SearchColumn  string
	SortBy        string
	SortDirection SortDirection
	Page          int
	PageSize      int
}

type QueryResult struct {
	Columns    []string
	Rows       [][]string
	Page       int
	PageSize   int
	TotalRows  int // rows left after filtering, not the page length
	TotalPages int
	HasMore    bool
}
