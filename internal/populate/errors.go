// =============================================================================
// Meter Reading Populator - Engine Errors
// =============================================================================
//
// Error taxonomy for a population pass:
//   - schema.UnknownFormatError : requested format is not registered.
//   - MissingColumnError        : a required identifier column is absent.
//   - loader.LoadError          : the external loader could not parse a file.
//
// All three are detected before any mutation of the target table begins, so
// a failed pass leaves the target exactly as it was. Per-row anomalies
// (unmatched identifier, absent value, too-short identifier) are never
// errors: a badly formed row must not abort an otherwise-successful bulk
// pass, so those rows are silently skipped.
//
// =============================================================================

package populate

import "fmt"

// Table kinds used in MissingColumnError.
const (
	// TableBilling identifies the billing input table.
	TableBilling = "billing"

	// TableTarget identifies the target readings table.
	TableTarget = "target"
)

// MissingColumnError is returned when a required column is absent: the
// identifier column on the billing side, or the composite-identifier column
// on the target side. Suffix-mapped columns are optional and never produce
// this error.
type MissingColumnError struct {
	// TableKind is TableBilling or TableTarget.
	TableKind string

	// Column is the missing column header.
	Column string
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s table is missing required column %q", e.TableKind, e.Column)
}
