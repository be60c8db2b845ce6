package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgx pool/conn behavior the runner needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Result is one report's ordered result set. Cell values are Go natives
// (string, int64, float64, bool); a nil cell is the NULL sentinel emitted by
// guarded rate and score computations.
type Result struct {
	Name    string
	Title   string
	Columns []string
	Rows    [][]any
}

// Run executes a single report by name.
func Run(ctx context.Context, q Querier, name string) (*Result, error) {
	rep, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown report %q", name)
	}

	rows, err := q.Query(ctx, rep.SQL)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", rep.Name, err)
	}
	defer rows.Close()

	data, err := collect(rows, rep.newRow)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", rep.Name, err)
	}

	return &Result{
		Name:    rep.Name,
		Title:   rep.Title,
		Columns: rep.Columns,
		Rows:    data,
	}, nil
}

// RunAll executes the named reports in order; an empty names slice means all
// reports in canonical order.
func RunAll(ctx context.Context, q Querier, names []string) ([]*Result, error) {
	if len(names) == 0 {
		names = Names()
	}
	results := make([]*Result, 0, len(names))
	for _, name := range names {
		res, err := Run(ctx, q, name)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// collect scans every row through the report's destination prototype and
// flattens the scanned values into plain cells.
func collect(rows pgx.Rows, newRow func() []any) ([][]any, error) {
	out := [][]any{}
	for rows.Next() {
		dest := newRow()
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]any, len(dest))
		for i, d := range dest {
			row[i] = deref(d)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// deref unwraps a scan destination into a plain cell value. Nullable
// destinations (**float64) become nil when the column was NULL.
func deref(d any) any {
	switch v := d.(type) {
	case *string:
		return *v
	case *int64:
		return *v
	case *float64:
		return *v
	case *bool:
		return *v
	case **float64:
		if *v == nil {
			return nil
		}
		return **v
	}
	return d
}
