// =============================================================================
// Meter Reading Populator - Target Populator
// =============================================================================
//
// This file implements the population pass over the target readings table.
// Each target row carries a composite identifier ("Meter No.") formed by
// appending a one-character suffix to an NMI. The pass splits the composite
// identifier, looks up the billing index, and writes the "Reading From" /
// "Reading To" output fields.
//
// The scan itself is read-only: cell writes are collected as a list of
// pending updates and applied only after the whole table has been scanned.
// The output table keeps the input's row count and row order exactly.
//
// =============================================================================

package populate

import (
	"github.com/ginjaninja78/meter-reading-populator/internal/schema"
	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

// Target table column names.
const (
	// ColumnMeterNo is the target-side composite identifier column.
	ColumnMeterNo = "Meter No."

	// ColumnReadingFrom and ColumnReadingTo are the output columns.
	ColumnReadingFrom = "Reading From"
	ColumnReadingTo   = "Reading To"
)

// cellUpdate is one pending write recorded during the read-only scan.
type cellUpdate struct {
	rowIdx int
	column string
	value  string
}

// Populate scans the target table row by row and writes the output fields
// for every row matched in the billing index. The target table is mutated in
// place; it is owned by the caller before and after the call.
//
// PARAMETERS:
//   - target: The target readings table.
//   - index: The billing index built for this pass.
//
// RETURNS:
//   - The number of matched rows, i.e. rows for which at least one output
//     field was written.
//   - A MissingColumnError if the target lacks the "Meter No." column. The
//     check runs before any mutation, so a failed pass writes nothing.
//
// PER-ROW RULES:
//   - An identifier shorter than 2 characters after normalization cannot
//     hold both a base and a suffix; the row is skipped.
//   - The suffix is the last character, the base is everything before it.
//   - A base missing from the index, or a suffix not stored for that base,
//     skips the row.
//   - Quantity data writes From=0 and To=value when the value is present.
//   - Reading range data writes From and To independently, one per present
//     bound; a bound that is absent leaves the prior field value untouched.
//     The row counts as matched when at least one field was written.
//   - A lookup hit whose data carries no present value writes nothing and
//     does not count.
func Populate(target *table.Table, index Index) (int, error) {
	if !target.HasColumn(ColumnMeterNo) {
		return 0, &MissingColumnError{TableKind: TableTarget, Column: ColumnMeterNo}
	}

	target.EnsureColumn(ColumnReadingFrom)
	target.EnsureColumn(ColumnReadingTo)

	var updates []cellUpdate
	matches := 0

	for rowIdx := 0; rowIdx < target.RowCount(); rowIdx++ {
		meter := Normalize(target.Cell(rowIdx, ColumnMeterNo).Value)
		if len(meter) < 2 {
			continue
		}

		suffix := meter[len(meter)-1:]
		base := meter[:len(meter)-1]

		perSuffix, ok := index[base]
		if !ok {
			continue
		}
		data, ok := perSuffix[suffix]
		if !ok {
			continue
		}

		switch data.Kind {
		case schema.RuleQuantity:
			if data.Value.Present {
				updates = append(updates,
					cellUpdate{rowIdx, ColumnReadingFrom, "0"},
					cellUpdate{rowIdx, ColumnReadingTo, data.Value.Value},
				)
				matches++
			}

		case schema.RuleReadingRange:
			updated := false
			if data.Start.Present {
				updates = append(updates, cellUpdate{rowIdx, ColumnReadingFrom, data.Start.Value})
				updated = true
			}
			if data.End.Present {
				updates = append(updates, cellUpdate{rowIdx, ColumnReadingTo, data.End.Value})
				updated = true
			}
			if updated {
				matches++
			}
		}
	}

	for _, u := range updates {
		target.Set(u.rowIdx, u.column, u.value)
	}

	return matches, nil
}
