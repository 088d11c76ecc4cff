// =============================================================================
// Meter Reading Populator - Identifier Normalizer
// =============================================================================

package populate

import "strings"

// Normalize canonicalizes a raw identifier value into a comparable key.
//
// Spreadsheet tooling commonly stores an integer-like NMI as a floating
// value, which round-trips through text as "1234567890.0". Normalize strips
// that artifact, so the billing NMI and the target Meter No. compare equal
// regardless of how the cell was typed.
//
// RULES:
//   - Surrounding whitespace is trimmed.
//   - Trailing ".0" float artifacts are removed.
//   - An empty or absent input normalizes to "".
//
// Normalize is pure and idempotent, and must be applied identically to both
// the billing identifier column and the target composite identifier.
func Normalize(value string) string {
	s := strings.TrimSpace(value)
	for strings.HasSuffix(s, ".0") {
		s = s[:len(s)-2]
	}
	return strings.TrimSpace(s)
}
