// Package present turns a run's retained functions into a table and renders
// it as CSV, a PNG heat-map, or a coloured terminal grid. It only reads the
// core result.
package present

import (
	"strconv"

	"github.com/dd0wney/regnet-monotone/pkg/engine"
)

// Table has one row per retained function and one column per config.
type Table struct {
	Columns []string // "(activator, repressor)" in space order
	IDs     []string // config ids in space order
	Labels  []string // original "func<ordinal>" labels
	Rows    [][]int
}

// NewTable copies the result into a Table.
func NewTable(res *engine.Result) *Table {
	return &Table{
		Columns: res.Space.Columns(),
		IDs:     res.Space.IDs(),
		Labels:  res.Set.Labels(),
		Rows:    res.Set.Rows(),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the 1-based display index of every row.
func (t *Table) Index() []string {
	idx := make([]string, len(t.Rows))
	for i := range t.Rows {
		idx[i] = strconv.Itoa(i + 1)
	}
	return idx
}
