// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/extract"
	"github.com/pdiddy/authorlang/internal/fetch"
	"github.com/pdiddy/authorlang/internal/label"
	"github.com/pdiddy/authorlang/internal/merge"
	"github.com/pdiddy/authorlang/internal/tokenize"
	"github.com/pdiddy/authorlang/pkg/types"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run every stage in order: extract, fetch, label, merge, tokenize",
	Long: `Pipeline runs the full dataset build. The fetch stage checkpoints as it
goes, so an interrupted pipeline can simply be rerun: completed lookups
are skipped and the remaining stages are recomputed from the artifacts.`,
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	pipelineCmd.Flags().Duration("delay", 0, "delay between consecutive profile lookups (default 50ms)")
	pipelineCmd.Flags().Int("save-interval", 0, "profiles per checkpoint commit (default 10)")
	pipelineCmd.Flags().Int("max-retries", 0, "retries on transient service errors (default 5)")
	pipelineCmd.Flags().String("token", "", "OpenReview API token (default: .secrets/openreview-token)")
	pipelineCmd.Flags().String("universities", "", "university directory JSON (default data/world_universities_and_domains.json)")
	pipelineCmd.Flags().String("toefl", "", "TOEFL requirement CSV (default data/toefl_requirements.csv)")

	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := types.PipelineConfig{
		Dataset: datasetConfig(cmd),
		Fetch:   fetchConfig(cmd),
		Label:   labelConfig(cmd),
	}

	// Extract.
	fmt.Println("==> extract")
	authors, extractSummary, err := extract.UniqueAuthors(cfg.Dataset, os.Stdout)
	if err != nil {
		return err
	}
	if extractSummary.Years == 0 {
		return fmt.Errorf("no paper tables found under %s", cfg.Dataset.DataDir)
	}
	if err := extract.WriteAuthors(cfg.Dataset, authors); err != nil {
		return err
	}

	// Fetch.
	fmt.Println("\n==> fetch")
	store, err := fetch.OpenStore(dataset.CheckpointFile(cfg.Dataset))
	if err != nil {
		return err
	}
	defer store.Close()

	fetchSummary, err := fetch.Run(cmd.Context(), fetch.NewClient(cfg.Fetch), store, authors, cfg.Fetch, os.Stdout)
	if err != nil {
		return err
	}
	if _, err := fetch.Export(cmd.Context(), store, dataset.ProfilesFile(cfg.Dataset)); err != nil {
		return err
	}
	if err := fetch.WriteSummary(dataset.FetchSummaryFile(cfg.Dataset), fetchSummary); err != nil {
		return err
	}

	// Label.
	fmt.Println("\n==> label")
	_, err = label.Run(cfg.Label,
		dataset.ProfilesFile(cfg.Dataset), dataset.LabeledProfilesFile(cfg.Dataset), os.Stdout)
	if err != nil {
		return err
	}

	// Merge.
	fmt.Println("\n==> merge")
	labels, err := label.ReadLabels(dataset.LabeledProfilesFile(cfg.Dataset))
	if err != nil {
		return err
	}
	if _, err := merge.Run(cfg.Dataset, labels, os.Stdout); err != nil {
		return err
	}

	// Tokenize.
	fmt.Println("\n==> tokenize")
	if _, err := tokenize.Run(cfg.Dataset, cfg.Tokenize, os.Stdout); err != nil {
		return err
	}

	fmt.Printf("\nPipeline complete; artifacts under %s\n", cfg.Dataset.OutputDir)
	return nil
}
