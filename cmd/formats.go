// =============================================================================
// Meter Reading Populator - Formats Command
// =============================================================================
//
// This file defines the 'formats' command, which lists the registered
// billing formats and their suffix rules. Useful for checking that a YAML
// format file in the formats directory was picked up.
//
// COMMAND USAGE:
//   meterpop formats
//
// OUTPUT:
//   Quarterly Billing (header row 1, identifier "NMI")
//     A -> quantity "Availability charge Quantity"
//     P -> range "PEAK_KWH" .. "PEAK_KWH.1"
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/meter-reading-populator/internal/schema"
)

// formatsCmd represents the 'formats' command.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered billing formats",
	Long:  `List every registered billing format with its header row offset, identifier column and suffix rules, including formats loaded from the formats directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormats()
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

// runFormats prints the registry contents in sorted order.
func runFormats() error {
	_, registry, err := loadConfigAndRegistry()
	if err != nil {
		return err
	}

	for _, name := range registry.Names() {
		format, err := registry.Lookup(name)
		if err != nil {
			return err
		}

		fmt.Printf("%s (header row %d, identifier %q)\n", format.Name, format.HeaderRowOffset, format.IdentifierColumn)

		codes := make([]string, 0, len(format.SuffixRules))
		for code := range format.SuffixRules {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		for _, code := range codes {
			rule := format.SuffixRules[code]
			switch rule.Kind {
			case schema.RuleReadingRange:
				fmt.Printf("  %s -> range %q .. %q\n", code, rule.StartColumn, rule.EndColumn)
			case schema.RuleQuantity:
				fmt.Printf("  %s -> quantity %q\n", code, rule.Column)
			}
		}
	}

	return nil
}
