// =============================================================================
// Meter Reading Populator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (meterpop)
//   ├── populateCmd (meterpop populate)
//   ├── formatsCmd  (meterpop formats)
//   └── versionCmd  (meterpop version)
//
// The root command owns the global flags (--config, --verbose) and the
// shared startup path: loading the main configuration and building the
// billing format registry (builtin formats plus any YAML format files in
// the configured formats directory).
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/meter-reading-populator/internal/config"
	"github.com/ginjaninja78/meter-reading-populator/internal/schema"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "meterpop",

	Short: "Meter Reading Populator - Match billing NMIs to a readings template",

	Long: `Meter Reading Populator matches meter billing records to a target readings
template by NMI plus a one-character suffix (P/S/O/A/D for Peak, Shoulder,
Off-peak, Availability and Demand) and copies the reading values into the
template's "Reading From" and "Reading To" columns.

Key Features:
  - Billing layouts described as data: builtin formats plus YAML format files
  - CSV and XLSX input and output
  - Batch operation over a multi-sheet workbook, one sheet per billing format
  - Per-row anomalies are skipped, never fatal

Example Usage:
  meterpop populate --billing bill.xlsx --target readings.csv --format "Quarterly Billing"
  meterpop populate --workbook bills.xlsx --target readings.csv
  meterpop formats`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED STARTUP
// =============================================================================

// loadConfigAndRegistry loads the main configuration and builds the billing
// format registry: builtin formats first, then any YAML format files from
// the configured formats directory (which may override builtins by name).
func loadConfigAndRegistry() (*config.MainConfig, *schema.Registry, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	registry := schema.Builtin()
	if err := registry.LoadFormats(cfg.FormatsDir); err != nil {
		return nil, nil, fmt.Errorf("failed to load format files: %w", err)
	}

	return cfg, registry, nil
}
