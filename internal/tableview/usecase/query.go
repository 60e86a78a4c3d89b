package usecase

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

// MaxPageSize caps QueryParams.PageSize.
const MaxPageSize = 100

// Query filters, sorts and paginates tbl, in that order. It never mutates tbl.
//
// Page is raised to at least 1 and PageSize is clamped to [1, MaxPageSize];
// a page past the end yields no rows rather than an error.
func Query(tbl *entity.Table, params entity.QueryParams) entity.QueryResult {
	rows := filterRows(tbl, params.Search, params.SearchColumn)
	rows = sortRows(tbl, rows, params.SortBy, params.SortDirection)

	page := max(1, params.Page)
	pageSize := min(max(1, params.PageSize), MaxPageSize)
	total := len(rows)

	pageRows := [][]string{}
	hasMore := false
	if page-1 <= total/pageSize {
		start := (page - 1) * pageSize
		end := start + pageSize
		hasMore = end < total
		pageRows = append(pageRows, rows[start:min(end, total)]...)
	}

	return entity.QueryResult{
		Columns:    slices.Clone(tbl.Columns),
		Rows:       pageRows,
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: (total + pageSize - 1) / pageSize,
		HasMore:    hasMore,
	}
}

func filterRows(tbl *entity.Table, search, column string) [][]string {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return tbl.Rows
	}

	idx := -1
	if column != entity.AllColumns {
		idx = tbl.ColumnIndex(column)
	}

	out := make([][]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		if idx >= 0 {
			if strings.Contains(strings.ToLower(row[idx]), term) {
				out = append(out, row)
			}
			continue
		}
		if slices.ContainsFunc(row, func(cell string) bool {
			return strings.Contains(strings.ToLower(cell), term)
		}) {
			out = append(out, row)
		}
	}

	return out
}

// sortKey is a cell reduced to either a number or a string.
type sortKey struct {
	numeric bool
	num     float64
	str     string
}

func newSortKey(cell string) sortKey {
	// hex floats ("0x1p4") are accepted by ParseFloat but are not decimal numbers
	if strings.ContainsAny(cell, "xX") {
		return sortKey{str: cell}
	}

	f, err := strconv.ParseFloat(cell, 64)
	if (err == nil || errors.Is(err, strconv.ErrRange)) && !math.IsNaN(f) {
		return sortKey{numeric: true, num: f}
	}

	return sortKey{str: cell}
}

// compareSortKeys orders every numeric key before every string key; numbers
// compare by value and strings bytewise.
func compareSortKeys(a, b sortKey) int {
	switch {
	case a.numeric && b.numeric:
		return cmp.Compare(a.num, b.num)
	case a.numeric:
		return -1
	case b.numeric:
		return 1
	default:
		return strings.Compare(a.str, b.str)
	}
}

func sortRows(tbl *entity.Table, rows [][]string, sortBy string, dir entity.SortDirection) [][]string {
	if sortBy == "" {
		return rows
	}
	idx := tbl.ColumnIndex(sortBy)
	if idx < 0 {
		return rows
	}

	type keyed struct {
		key sortKey
		row []string
	}

	items := make([]keyed, len(rows))
	for i, row := range rows {
		items[i] = keyed{key: newSortKey(row[idx]), row: row}
	}

	desc := dir == entity.SortDesc
	slices.SortStableFunc(items, func(a, b keyed) int {
		if desc {
			return compareSortKeys(b.key, a.key)
		}
		return compareSortKeys(a.key, b.key)
	})

	out := make([][]string, len(items))
	for i, item := range items {
		out[i] = item.row
	}

	return out
}
