// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/label"
	"github.com/pdiddy/authorlang/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge speaker labels back onto the paper tables",
	Long: `Merge left-joins the labeled profiles onto every year's paper table on
the normalized first-author name. Every paper survives the join; papers
whose author has no label get the unknown speaker value. Each year is
written to its own CSV, plus one combined table across all years.`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)

	labels, err := label.ReadLabels(dataset.LabeledProfilesFile(cfg))
	if err != nil {
		return fmt.Errorf("loading labels (run \"authorlang label\" first): %w", err)
	}

	_, err = merge.Run(cfg, labels, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote combined table to %s\n", dataset.CombinedFile(cfg))
	return nil
}
