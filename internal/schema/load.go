// =============================================================================
// Meter Reading Populator - Format File Loading
// =============================================================================
//
// This file loads additional billing formats from YAML files. Each YAML file
// in the formats directory describes one billing format:
//
//   format_name: "Example Billing"
//   header_row_offset: 1
//   identifier_column: "NMI"
//   suffixes:
//     P: { start: "Peak kWh reading", end: "Peak kWh reading.1" }
//     A: { qty: "Availability" }
//
// A suffix entry declares either a reading range (start + end) or a quantity
// (qty), never both. The start-vs-qty decision is made once here, when the
// file is decoded into the tagged SuffixRule variant.
//
// =============================================================================

package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// YAML FORMAT FILE STRUCTURE
// =============================================================================

// formatFile is the on-disk YAML representation of a billing format.
type formatFile struct {
	// FormatName is the registry key for this format.
	FormatName string `yaml:"format_name"`

	// HeaderRowOffset is the 0-based row index of the column headers.
	HeaderRowOffset int `yaml:"header_row_offset"`

	// IdentifierColumn is the header of the NMI column.
	IdentifierColumn string `yaml:"identifier_column"`

	// Suffixes maps suffix codes to their column mapping.
	Suffixes map[string]suffixEntry `yaml:"suffixes"`
}

// suffixEntry is the YAML form of a suffix rule. Exactly one of
// (Start, End) or Qty must be set.
type suffixEntry struct {
	// Start and End are the reading range columns.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`

	// Qty is the quantity column.
	Qty string `yaml:"qty,omitempty"`
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// LoadFormats loads all YAML format files from a directory into the registry.
//
// PARAMETERS:
//   - dir: The directory containing *.yaml / *.yml format files.
//
// RETURNS:
//   - An error if the directory cannot be listed or any file fails to load.
//
// A missing directory is not an error: the builtin formats alone are a valid
// configuration.
func (r *Registry) LoadFormats(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to list format files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to list format files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		format, err := loadFormatFile(file)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
		if err := r.Register(format); err != nil {
			return fmt.Errorf("failed to register %s: %w", file, err)
		}
	}

	return nil
}

// loadFormatFile reads and decodes a single YAML format file.
func loadFormatFile(path string) (*BillingFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var ff formatFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	return ff.toBillingFormat()
}

// toBillingFormat converts the YAML representation to a BillingFormat,
// deciding the rule variant for each suffix entry.
func (ff *formatFile) toBillingFormat() (*BillingFormat, error) {
	format := &BillingFormat{
		Name:             ff.FormatName,
		HeaderRowOffset:  ff.HeaderRowOffset,
		IdentifierColumn: ff.IdentifierColumn,
		SuffixRules:      make(map[string]SuffixRule, len(ff.Suffixes)),
	}

	for code, entry := range ff.Suffixes {
		hasRange := entry.Start != "" || entry.End != ""
		hasQty := entry.Qty != ""

		switch {
		case hasRange && hasQty:
			return nil, fmt.Errorf("suffix %q: declares both a reading range and a quantity", code)
		case hasRange:
			format.SuffixRules[code] = Range(entry.Start, entry.End)
		case hasQty:
			format.SuffixRules[code] = Quantity(entry.Qty)
		default:
			return nil, fmt.Errorf("suffix %q: declares neither a reading range nor a quantity", code)
		}
	}

	return format, nil
}
