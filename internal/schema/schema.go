// =============================================================================
// Meter Reading Populator - Billing Schema Registry
// =============================================================================
//
// This package defines the billing format registry. A billing format
// describes the layout of one kind of billing export:
//   - The header row offset (billing exports carry a banner row above the
//     real column headers).
//   - The column holding the NMI (the billing-side identifier).
//   - The suffix rules: a mapping from one-character suffix codes to either a
//     reading range (start and end columns) or a single quantity column.
//
// The registry is static configuration, populated once at startup and never
// mutated afterwards. Adding a new billing format is a data change: either
// extend the builtin table below or drop a YAML file into the formats
// directory (see load.go). No code change is required.
//
// =============================================================================

package schema

import (
	"fmt"
	"sort"
)

// =============================================================================
// SUFFIX RULES
// =============================================================================

// RuleKind discriminates the two suffix rule variants.
type RuleKind int

const (
	// RuleReadingRange maps a suffix to a (start column, end column) pair of
	// meter readings, e.g. Peak kWh start/end.
	RuleReadingRange RuleKind = iota

	// RuleQuantity maps a suffix to a single scalar column, e.g. an
	// availability charge. Quantities are emitted as a [0, value] range.
	RuleQuantity
)

// SuffixRule describes how to resolve the billing data for one suffix code.
// The variant is decided once when the format is defined, never re-inspected
// per row.
type SuffixRule struct {
	// Kind selects the variant.
	Kind RuleKind

	// StartColumn and EndColumn are the reading range columns.
	// Only meaningful when Kind is RuleReadingRange.
	StartColumn string
	EndColumn   string

	// Column is the quantity column.
	// Only meaningful when Kind is RuleQuantity.
	Column string
}

// Range constructs a reading range rule.
func Range(startColumn, endColumn string) SuffixRule {
	return SuffixRule{Kind: RuleReadingRange, StartColumn: startColumn, EndColumn: endColumn}
}

// Quantity constructs a quantity rule.
func Quantity(column string) SuffixRule {
	return SuffixRule{Kind: RuleQuantity, Column: column}
}

// =============================================================================
// BILLING FORMAT
// =============================================================================

// BillingFormat describes the layout of one billing file format.
type BillingFormat struct {
	// Name is the registry key and the human-readable format name.
	Name string

	// HeaderRowOffset is the 0-based row index at which column headers
	// begin. Billing exports typically carry a banner row, so this is 1
	// for all builtin formats.
	HeaderRowOffset int

	// IdentifierColumn is the header of the column holding the NMI.
	IdentifierColumn string

	// SuffixRules maps one-character suffix codes (e.g. "P", "S", "O",
	// "A", "D") to their resolution rule. Codes are unique within a format.
	SuffixRules map[string]SuffixRule
}

// Validate checks the structural invariants of a format descriptor.
// It is called for every format at registration time, so a malformed
// descriptor fails at startup rather than mid-pass.
func (f *BillingFormat) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("billing format has no name")
	}
	if f.HeaderRowOffset < 0 {
		return fmt.Errorf("format %q: header row offset must be non-negative", f.Name)
	}
	if f.IdentifierColumn == "" {
		return fmt.Errorf("format %q: identifier column is required", f.Name)
	}
	if len(f.SuffixRules) == 0 {
		return fmt.Errorf("format %q: at least one suffix rule is required", f.Name)
	}

	for code, rule := range f.SuffixRules {
		if len(code) != 1 {
			return fmt.Errorf("format %q: suffix code %q must be a single character", f.Name, code)
		}
		switch rule.Kind {
		case RuleReadingRange:
			if rule.StartColumn == "" || rule.EndColumn == "" {
				return fmt.Errorf("format %q, suffix %q: reading range needs both start and end columns", f.Name, code)
			}
		case RuleQuantity:
			if rule.Column == "" {
				return fmt.Errorf("format %q, suffix %q: quantity rule needs a column", f.Name, code)
			}
		default:
			return fmt.Errorf("format %q, suffix %q: unknown rule kind %d", f.Name, code, rule.Kind)
		}
	}

	return nil
}

// =============================================================================
// UNKNOWN FORMAT ERROR
// =============================================================================

// UnknownFormatError is returned when a requested billing format is not in
// the registry.
type UnknownFormatError struct {
	// Name is the requested format name.
	Name string
}

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown billing format: %q", e.Name)
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the known billing formats, keyed by format name.
// It is populated once at startup and treated as read-only afterwards, so a
// single Registry can safely serve independent population passes.
type Registry struct {
	formats map[string]*BillingFormat
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]*BillingFormat)}
}

// Register adds a format to the registry after validating it.
// Registering a format with an existing name replaces the previous entry.
func (r *Registry) Register(format *BillingFormat) error {
	if err := format.Validate(); err != nil {
		return err
	}
	r.formats[format.Name] = format
	return nil
}

// Lookup returns the format registered under the given name.
//
// RETURNS:
//   - The format, if registered.
//   - An UnknownFormatError if the name is not registered.
func (r *Registry) Lookup(name string) (*BillingFormat, error) {
	format, ok := r.formats[name]
	if !ok {
		return nil, &UnknownFormatError{Name: name}
	}
	return format, nil
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// BUILTIN FORMATS
// =============================================================================

// Builtin returns a registry pre-populated with the three canonical billing
// formats. These mirror the layouts of the retailer exports the tool was
// built for.
func Builtin() *Registry {
	r := NewRegistry()

	builtins := []*BillingFormat{
		{
			Name:             "Power Smart Billing",
			HeaderRowOffset:  1,
			IdentifierColumn: "NMI",
			SuffixRules: map[string]SuffixRule{
				"P": Range("Peak kWh reading", "Peak kWh reading.1"),
				"S": Range("Shoulder kWh reading", "Shoulder kWh reading.1"),
				"O": Range("Off peak kWh reading", "Off peak kWh reading.1"),
				"A": Quantity("Availability"),
			},
		},
		{
			Name:             "Load Smart Billing",
			HeaderRowOffset:  1,
			IdentifierColumn: "NMI",
			SuffixRules: map[string]SuffixRule{
				"P": Range("Peak kWh reading", "Peak kWh reading.1"),
				"S": Range("Shoulder kWh reading", "Shoulder kWh reading.1"),
				"O": Range("Off peak kWh reading", "Off peak kWh reading.1"),
				"D": Quantity("DEMAND"),
				"A": Quantity("Availability"),
			},
		},
		{
			Name:             "Quarterly Billing",
			HeaderRowOffset:  1,
			IdentifierColumn: "NMI",
			SuffixRules: map[string]SuffixRule{
				"P": Range("PEAK_KWH", "PEAK_KWH.1"),
				"A": Quantity("Availability charge Quantity"),
			},
		},
	}

	for _, format := range builtins {
		// Builtin formats are defined above and validated in tests; a
		// registration failure here is a programming error.
		if err := r.Register(format); err != nil {
			panic(fmt.Sprintf("invalid builtin billing format: %v", err))
		}
	}

	return r
}
