// =============================================================================
// Meter Reading Populator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Meter Reading Populator CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   meterpop populate    - Match a billing file against a readings template
//   meterpop formats     - List the registered billing formats
//   meterpop version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/          : CLI command definitions (Cobra)
//   - internal/     : Core business logic (not for external import)
//   - pkg/          : Shared utilities
//   - formats/      : Optional YAML billing format definitions
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/meter-reading-populator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
