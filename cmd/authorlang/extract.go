// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract unique first authors from the paper tables",
	Long: `Extract scans the per-year paper tables, takes the first name of each
paper's author list, and writes the deduplicated author list consumed by
the fetch stage. Years whose table is missing are skipped with a warning.`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)

	authors, summary, err := extract.UniqueAuthors(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Years == 0 {
		return fmt.Errorf("no paper tables found under %s", cfg.DataDir)
	}
	if err := extract.WriteAuthors(cfg, authors); err != nil {
		return err
	}
	fmt.Printf("Wrote %d authors to %s\n", summary.Unique, dataset.UniqueAuthorsFile(cfg))
	return nil
}
