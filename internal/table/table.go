// =============================================================================
// Meter Reading Populator - Table Module
// =============================================================================
//
// This package provides the shared tabular data model used by both sides of a
// population pass. Billing files and target readings files are loaded into
// the same structure, so the matching engine never needs to know whether a
// table came from a CSV file or an XLSX sheet.
//
// DESIGN:
//   - Columns are addressed by exact header name.
//   - Cell reads are explicit optional-value reads: a Cell is Present only
//     when the column exists in the table AND the trimmed value is non-empty.
//     A missing column is never an error at read time.
//   - Output columns are added with EnsureColumn, which never disturbs values
//     already stored in other columns.
//
// =============================================================================

package table

import "strings"

// =============================================================================
// CELL
// =============================================================================

// Cell is the result of reading a single cell from a table.
// Present is false when the column does not exist in the table, or when the
// stored value is empty after trimming whitespace. Both cases mean the same
// thing to the matching engine: there is no value here.
type Cell struct {
	// Value is the trimmed cell value. Empty when Present is false.
	Value string

	// Present indicates whether the cell holds a usable value.
	Present bool
}

// =============================================================================
// TABLE
// =============================================================================

// Table represents one parsed tabular input.
type Table struct {
	// Headers contains the column headers in their original order.
	Headers []string

	// Rows contains the data rows. Rows may be shorter than Headers; a
	// missing trailing cell reads as absent.
	Rows [][]string

	// SourceFile is the path the table was loaded from. Informational only.
	SourceFile string

	// SourceSheet is the XLSX sheet name the table was loaded from.
	// Empty for CSV sources.
	SourceSheet string

	// headerIndex maps header name to column position. Built lazily.
	headerIndex map[string]int
}

// New creates a Table from headers and rows.
func New(headers []string, rows [][]string) *Table {
	return &Table{
		Headers: headers,
		Rows:    rows,
	}
}

// index returns the header lookup map, building it on first use.
// On duplicate header names the first occurrence wins, matching the
// behavior of addressing columns by name in the source spreadsheets.
func (t *Table) index() map[string]int {
	if t.headerIndex == nil {
		t.headerIndex = make(map[string]int, len(t.Headers))
		for i, h := range t.Headers {
			if _, exists := t.headerIndex[h]; !exists {
				t.headerIndex[h] = i
			}
		}
	}
	return t.headerIndex
}

// HasColumn reports whether the table has a column with the given header.
// Lookup is by exact string match.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index()[name]
	return ok
}

// Cell reads the cell at (rowIdx, column name) as an optional value.
//
// The returned Cell is absent when:
//   - the column does not exist,
//   - the row is shorter than the column position,
//   - the stored value is empty after trimming.
func (t *Table) Cell(rowIdx int, column string) Cell {
	col, ok := t.index()[column]
	if !ok {
		return Cell{}
	}
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return Cell{}
	}
	row := t.Rows[rowIdx]
	if col >= len(row) {
		return Cell{}
	}
	value := strings.TrimSpace(row[col])
	if value == "" {
		return Cell{}
	}
	return Cell{Value: value, Present: true}
}

// EnsureColumn adds a column with the given header if it is not already
// present, padding every row with an empty cell. Existing columns and their
// values are left untouched.
func (t *Table) EnsureColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Headers = append(t.Headers, name)
	t.headerIndex = nil // Rebuild on next access.
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// Set writes a value into the cell at (rowIdx, column name). The column must
// exist; Set is a no-op for unknown columns so callers guard with EnsureColumn.
// Short rows are padded out to the column position first.
func (t *Table) Set(rowIdx int, column, value string) {
	col, ok := t.index()[column]
	if !ok {
		return
	}
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return
	}
	for len(t.Rows[rowIdx]) <= col {
		t.Rows[rowIdx] = append(t.Rows[rowIdx], "")
	}
	t.Rows[rowIdx][col] = value
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table. Useful for comparing a table
// before and after a population pass.
func (t *Table) Clone() *Table {
	headers := make([]string, len(t.Headers))
	copy(headers, t.Headers)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}

	return &Table{
		Headers:     headers,
		Rows:        rows,
		SourceFile:  t.SourceFile,
		SourceSheet: t.SourceSheet,
	}
}
