// =============================================================================
// Meter Reading Populator - Populate Command
// =============================================================================
//
// This file defines the 'populate' command, which runs the matching engine.
//
// COMMAND USAGE:
//   meterpop populate [flags]
//
// FLAGS:
//   --billing   : Path to the billing file (.csv, .xlsx or .xlsm)
//   --target    : Path to the target readings file
//   --format    : Billing format name (see 'meterpop formats')
//   --output    : Explicit output path (default: derived name in output_dir)
//   --xlsx      : Write XLSX output instead of CSV
//   --workbook  : Batch mode - multi-sheet billing workbook, one sheet per
//                 billing format, matched to the registry by sheet name
//
// SINGLE PASS:
//   One (billing file, target file, format) triple is processed with a
//   single build-index-then-populate pass and one output file is written.
//
// BATCH MODE:
//   Every workbook sheet whose name matches a registered billing format is
//   processed as its own independent pass against the same target file.
//   Passes share nothing; each builds its own index and writes its own
//   output file. Sheets that match no format are reported and skipped.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/meter-reading-populator/internal/loader"
	"github.com/ginjaninja78/meter-reading-populator/internal/populate"
	"github.com/ginjaninja78/meter-reading-populator/internal/schema"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// billingPath is the billing input file.
var billingPath string

// targetPath is the target readings file.
var targetPath string

// formatName selects the billing format.
var formatName string

// outputPath overrides the derived output location.
var outputPath string

// writeXLSX selects workbook output instead of CSV.
var writeXLSX bool

// workbookPath enables batch mode over a multi-sheet billing workbook.
var workbookPath string

// =============================================================================
// POPULATE COMMAND DEFINITION
// =============================================================================

// populateCmd represents the 'populate' command.
var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Populate Reading From/To on a readings template from a billing file",
	Long: `The populate command matches billing rows to target rows by NMI plus a
one-character suffix and writes the "Reading From" and "Reading To" columns
of the target template.

The billing file's layout is described by the selected billing format: the
header row offset, the NMI column, and the suffix-to-column rules. Target
rows that cannot be matched (unknown NMI, unknown suffix, identifier too
short, no billed value) are left untouched and do not abort the run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if workbookPath != "" {
			return runBatch()
		}
		return runSingle()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(populateCmd)

	populateCmd.Flags().StringVar(&billingPath, "billing", "", "Path to the billing file (.csv, .xlsx, .xlsm)")
	populateCmd.Flags().StringVar(&targetPath, "target", "", "Path to the target readings file")
	populateCmd.Flags().StringVar(&formatName, "format", "", "Billing format name (see 'meterpop formats')")
	populateCmd.Flags().StringVar(&outputPath, "output", "", "Explicit output path (default: derived name in output_dir)")
	populateCmd.Flags().BoolVar(&writeXLSX, "xlsx", false, "Write XLSX output instead of CSV")
	populateCmd.Flags().StringVar(&workbookPath, "workbook", "", "Batch mode: multi-sheet billing workbook, one sheet per format")

	populateCmd.MarkFlagRequired("target")
}

// =============================================================================
// SINGLE PASS
// =============================================================================

// runSingle executes one population pass.
func runSingle() error {
	if billingPath == "" {
		return fmt.Errorf("--billing is required (or use --workbook for batch mode)")
	}

	cfg, registry, err := loadConfigAndRegistry()
	if err != nil {
		return err
	}

	name := formatName
	if name == "" {
		name = cfg.DefaultFormat
	}
	if name == "" {
		return fmt.Errorf("--format is required (no default_format configured)")
	}

	engine := populate.NewEngine(registry, cfg)
	engine.BillingPath = billingPath
	engine.TargetPath = targetPath
	engine.FormatName = name
	engine.OutputPath = outputPath
	engine.WriteXLSX = writeXLSX
	engine.SetLogger(populate.NewLogger(verbose))

	result := engine.Run()
	if !result.Success {
		return result.Error
	}

	printResult(result)
	return nil
}

// =============================================================================
// BATCH MODE
// =============================================================================

// runBatch executes one pass per workbook sheet whose name matches a
// registered billing format. No index is shared across passes.
func runBatch() error {
	cfg, registry, err := loadConfigAndRegistry()
	if err != nil {
		return err
	}

	sheets, err := loader.SheetNames(workbookPath)
	if err != nil {
		return err
	}

	logger := populate.NewLogger(verbose)
	var processed, failed int

	for _, sheet := range sheets {
		if _, err := registry.Lookup(sheet); err != nil {
			var unknown *schema.UnknownFormatError
			if errors.As(err, &unknown) {
				fmt.Printf("  - %s: no matching billing format, skipped\n", sheet)
				continue
			}
			return err
		}

		engine := populate.NewEngine(registry, cfg)
		engine.BillingPath = workbookPath
		engine.BillingSheet = sheet
		engine.TargetPath = targetPath
		engine.FormatName = sheet
		engine.WriteXLSX = writeXLSX
		engine.SetLogger(logger)

		result := engine.Run()
		if !result.Success {
			failed++
			fmt.Printf("  ✗ %s: %v\n", sheet, result.Error)
			continue
		}

		processed++
		fmt.Printf("  ✓ %s: %d match(es) -> %s\n", sheet, result.Stats.MatchCount, result.OutputFile)
	}

	fmt.Printf("\nBatch complete: %d processed, %d failed, %d sheet(s) total\n", processed, failed, len(sheets))
	if failed > 0 {
		return fmt.Errorf("%d pass(es) failed", failed)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// printResult prints the summary of a successful pass.
func printResult(result populate.Result) {
	fmt.Println("=== Population Complete ===")
	fmt.Printf("Format:        %s\n", result.FormatName)
	fmt.Printf("NMIs indexed:  %d\n", result.Stats.RowsIndexed)
	fmt.Printf("Target rows:   %d\n", result.Stats.TargetRows)
	fmt.Printf("Matched rows:  %d\n", result.Stats.MatchCount)
	fmt.Printf("Output:        %s\n", result.OutputFile)
	fmt.Printf("Time elapsed:  %s\n", result.Stats.ProcessingTime)
}
