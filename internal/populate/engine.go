// =============================================================================
// Meter Reading Populator - Population Engine
// =============================================================================
//
// This module orchestrates one population pass end to end:
//   1. Look up the billing format in the registry
//   2. Load the billing table (applying the format's header row offset)
//   3. Load the target readings table
//   4. Build the billing index
//   5. Populate the target's output fields and count matches
//   6. Write the populated table to the output directory
//
// Each pass is a single blocking call over its own index and its own target
// table. Nothing is shared between passes, so a batch job may run several
// engines over independent inputs without coordination.
//
// =============================================================================

package populate

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/meter-reading-populator/internal/config"
	"github.com/ginjaninja78/meter-reading-populator/internal/loader"
	"github.com/ginjaninja78/meter-reading-populator/internal/schema"
	"github.com/ginjaninja78/meter-reading-populator/internal/table"
	"github.com/ginjaninja78/meter-reading-populator/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one population pass.
type Result struct {
	// FormatName is the billing format the pass ran with.
	FormatName string

	// OutputFile is the path of the written output file.
	// Empty if the pass failed or output writing was disabled.
	OutputFile string

	// Success indicates whether the pass completed.
	Success bool

	// Error contains the failure if Success is false.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about one pass.
type Stats struct {
	// RowsIndexed is the number of billing rows indexed (rows with an
	// empty identifier are not counted).
	RowsIndexed int

	// TargetRows is the number of rows in the target table.
	TargetRows int

	// MatchCount is the number of target rows for which at least one
	// output field was written.
	MatchCount int

	// ProcessingTime is the time taken for the whole pass.
	ProcessingTime time.Duration
}

// =============================================================================
// ENGINE STRUCTURE
// =============================================================================

// Engine runs one population pass over a (billing, target) input pair.
type Engine struct {
	// BillingPath is the billing input file (.csv, .xlsx or .xlsm).
	BillingPath string

	// BillingSheet selects a workbook sheet for the billing input.
	// Empty selects the first sheet. Ignored for CSV inputs.
	BillingSheet string

	// TargetPath is the target readings file.
	TargetPath string

	// FormatName is the billing format to run with.
	FormatName string

	// OutputPath overrides the derived output location when non-empty.
	OutputPath string

	// WriteXLSX selects workbook output instead of CSV.
	WriteXLSX bool

	registry *schema.Registry
	cfg      *config.MainConfig
	logger   Logger
}

// NewEngine creates an engine for one pass.
func NewEngine(registry *schema.Registry, cfg *config.MainConfig) *Engine {
	return &Engine{
		registry: registry,
		cfg:      cfg,
		logger:   NewNopLogger(),
	}
}

// SetLogger installs a logger. The engine defaults to a silent one.
func (e *Engine) SetLogger(logger Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the population pass and returns its Result.
//
// Fatal errors (unknown format, load failure, missing identifier column) are
// all raised before the target table is mutated, so a failed pass never
// leaves a partially populated output behind.
func (e *Engine) Run() Result {
	startTime := time.Now()
	result := Result{FormatName: e.FormatName}

	// Step 1: resolve the billing format.
	format, err := e.registry.Lookup(e.FormatName)
	if err != nil {
		result.Error = err
		return result
	}
	e.logger.Debug("Using billing format %q (%d suffix rule(s))", format.Name, len(format.SuffixRules))

	// Step 2: load the billing table with the format's header offset.
	var billing *table.Table
	if e.BillingSheet != "" {
		billing, err = loader.LoadSheet(e.BillingPath, e.BillingSheet, format.HeaderRowOffset)
	} else {
		billing, err = loader.Load(e.BillingPath, format.HeaderRowOffset)
	}
	if err != nil {
		result.Error = err
		return result
	}
	e.logger.Debug("Loaded %d billing row(s) from %s", billing.RowCount(), e.BillingPath)

	// Step 3: load the target table. Target files carry their headers on
	// the first row.
	target, err := loader.Load(e.TargetPath, 0)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.TargetRows = target.RowCount()
	e.logger.Debug("Loaded %d target row(s) from %s", target.RowCount(), e.TargetPath)

	// Step 4: build the billing index.
	index, err := BuildIndex(billing, format)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.RowsIndexed = len(index)
	e.logger.Debug("Indexed %d NMI(s)", len(index))

	// Step 5: populate the target.
	matches, err := Populate(target, index)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.MatchCount = matches
	e.logger.Info("Matched %d of %d target row(s)", matches, target.RowCount())

	// Step 6: write the output file.
	outputPath, err := e.writeOutput(target, format.Name)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// writeOutput serializes the populated table. The location is either the
// explicit OutputPath or a name derived from the configured pattern inside
// the output directory.
func (e *Engine) writeOutput(t *table.Table, formatName string) (string, error) {
	ext := ".csv"
	if e.WriteXLSX {
		ext = ".xlsx"
	}

	outputPath := e.OutputPath
	if outputPath == "" {
		if err := utils.EnsureDirectories(e.cfg.OutputDir); err != nil {
			return "", err
		}
		fileName := utils.OutputFileName(e.cfg.OutputNameFormat, formatName, ext)
		outputPath = filepath.Join(e.cfg.OutputDir, fileName)
	}

	if e.WriteXLSX {
		if err := loader.WriteXLSX(t, outputPath); err != nil {
			return "", err
		}
	} else {
		if err := loader.WriteCSV(t, outputPath); err != nil {
			return "", err
		}
	}

	return outputPath, nil
}
