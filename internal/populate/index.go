// =============================================================================
// Meter Reading Populator - Billing Index Builder
// =============================================================================
//
// This file builds the billing lookup index: a single scan over the billing
// table that reduces each row to its per-suffix data, keyed by the
// normalized NMI. The index is created fresh for every population pass and
// discarded when the pass completes.
//
// =============================================================================

package populate

import (
	"github.com/ginjaninja78/meter-reading-populator/internal/schema"
	"github.com/ginjaninja78/meter-reading-populator/internal/table"
)

// =============================================================================
// SUFFIX DATA
// =============================================================================

// SuffixData holds the billing values resolved for one (NMI, suffix) pair.
// It mirrors the schema.SuffixRule variants with the configured columns read
// from the row. Cells read from columns absent in the billing table are
// simply not Present; absence is resolved later, per suffix, by the
// populator.
type SuffixData struct {
	// Kind selects the variant, copied from the suffix rule.
	Kind schema.RuleKind

	// Start and End are the reading range bounds.
	// Only meaningful when Kind is RuleReadingRange.
	Start table.Cell
	End   table.Cell

	// Value is the quantity value.
	// Only meaningful when Kind is RuleQuantity.
	Value table.Cell
}

// =============================================================================
// BILLING INDEX
// =============================================================================

// Index maps a normalized NMI to its per-suffix billing data.
// Keys are unique; when the billing table contains duplicate NMIs the last
// row wins, intentionally and without error.
type Index map[string]map[string]SuffixData

// BuildIndex scans the billing table once and produces the lookup index for
// the given format.
//
// PARAMETERS:
//   - billing: The parsed billing table.
//   - format: The active billing format.
//
// RETURNS:
//   - The billing index.
//   - A MissingColumnError if the format's identifier column is absent.
//
// Rows whose identifier normalizes to the empty string are not indexed.
// No row is rejected for having absent suffix-mapped values.
func BuildIndex(billing *table.Table, format *schema.BillingFormat) (Index, error) {
	if !billing.HasColumn(format.IdentifierColumn) {
		return nil, &MissingColumnError{TableKind: TableBilling, Column: format.IdentifierColumn}
	}

	index := make(Index)

	for rowIdx := 0; rowIdx < billing.RowCount(); rowIdx++ {
		nmi := Normalize(billing.Cell(rowIdx, format.IdentifierColumn).Value)
		if nmi == "" {
			continue
		}

		perSuffix := make(map[string]SuffixData, len(format.SuffixRules))
		for code, rule := range format.SuffixRules {
			switch rule.Kind {
			case schema.RuleReadingRange:
				perSuffix[code] = SuffixData{
					Kind:  schema.RuleReadingRange,
					Start: billing.Cell(rowIdx, rule.StartColumn),
					End:   billing.Cell(rowIdx, rule.EndColumn),
				}
			case schema.RuleQuantity:
				perSuffix[code] = SuffixData{
					Kind:  schema.RuleQuantity,
					Value: billing.Cell(rowIdx, rule.Column),
				}
			}
		}

		// Last write wins on duplicate NMIs.
		index[nmi] = perSuffix
	}

	return index, nil
}
