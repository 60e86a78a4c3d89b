package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/tableview/internal/tableview/entity"
	"github.com/shandysiswandi/tableview/internal/tableview/usecase"
)

type inspectOptions struct {
	search      string
	column      string
	sortBy      string
	desc        bool
	page        int
	pageSize    int
	maxErrors   int
	concurrency int
}

type inspected struct {
	path  string
	table *entity.Table
}

func newInspectCommand(fs afero.Fs) *cobra.Command {
	opts := inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Parse CSV files and print a page of each",
		Long: `Parse one or more CSV files with the same rules the server applies to uploads,
then print a summary and one page of rows for each file.

Example:
  tableview inspect people.csv --search berlin --column city --sort age --desc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), fs, cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "Case-insensitive substring to filter rows by")
	cmd.Flags().StringVar(&opts.column, "column", entity.AllColumns, "Column to search in, or \"all\"")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "Column to sort by")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page to print")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 20, "Rows per page (max 100)")
	cmd.Flags().IntVar(&opts.maxErrors, "max-errors", usecase.DefaultMaxErrors, "Row errors to print per file")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Files parsed in parallel")

	return cmd
}

func runInspect(ctx context.Context, fs afero.Fs, out io.Writer, paths []string, opts inspectOptions) error {
	results := make([]inspected, len(paths))
	runner := pkgroutine.NewManager(opts.concurrency)

	for i, path := range paths {
		i, path := i, path
		runner.Go(ctx, func(context.Context) error {
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			tbl, err := usecase.Parse(usecase.DecodeText(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = inspected{path: path, table: tbl}
			return nil
		})
	}

	err := runner.Wait()

	params := entity.QueryParams{
		Search:       opts.search,
		SearchColumn: opts.column,
		SortBy:       opts.sortBy,
		Page:         opts.page,
		PageSize:     opts.pageSize,
	}
	if opts.desc {
		params.SortDirection = entity.SortDesc
	}

	for _, res := range results {
		if res.table == nil {
			continue
		}
		if werr := writeTable(out, res, usecase.Query(res.table, params), opts.maxErrors); werr != nil {
			return werr
		}
	}

	return err
}

func writeTable(out io.Writer, res inspected, page entity.QueryResult, maxErrors int) error {
	tbl := res.table

	fmt.Fprintf(out, "== %s\n", res.path)
	fmt.Fprintf(out, "delimiter %q, %d columns, %d rows, %d invalid\n",
		tbl.Delimiter.String(), len(tbl.Columns), tbl.TotalRows, tbl.InvalidRows)
	for _, msg := range tbl.Errors[:min(len(tbl.Errors), max(0, maxErrors))] {
		fmt.Fprintf(out, "  %s\n", msg)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(page.Columns, "\t"))
	for _, row := range page.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "page %d/%d, %d matching rows\n\n", page.Page, page.TotalPages, page.TotalRows)
	return nil
}
