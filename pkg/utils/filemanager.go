// =============================================================================
// Meter Reading Populator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities around a population run:
//   - Output file naming from a configurable pattern
//   - Directory management
//
// NAMING:
//   Output names are derived from a pattern with placeholders:
//     {format}    - Billing format name, spaces replaced with underscores
//     {timestamp} - Run timestamp (YYYYMMDD_HHMMSS)
//     {uuid}      - A random UUID, for collision-free batch output
//   The default pattern is "Populated_{format}", giving names like
//   "Populated_Quarterly_Billing.csv".
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultNamePattern is the output naming pattern used when the
// configuration does not set one.
const DefaultNamePattern = "Populated_{format}"

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// OutputFileName derives an output file name from the naming pattern.
//
// PARAMETERS:
//   - pattern: The naming pattern. Empty selects DefaultNamePattern.
//   - formatName: The billing format name for the {format} placeholder.
//   - ext: The output extension including the dot (".csv" or ".xlsx").
//
// RETURNS:
//   - The derived file name, always carrying the requested extension.
func OutputFileName(pattern, formatName, ext string) string {
	if pattern == "" {
		pattern = DefaultNamePattern
	}

	name := pattern
	name = strings.ReplaceAll(name, "{format}", strings.ReplaceAll(formatName, " ", "_"))
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())

	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the given directories if they do not exist.
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
