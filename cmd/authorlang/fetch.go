// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/extract"
	"github.com/pdiddy/authorlang/internal/fetch"
	"github.com/pdiddy/authorlang/pkg/types"
)

const (
	defaultTimeout      = 60 * time.Second
	defaultDelay        = 50 * time.Millisecond
	defaultSaveInterval = 10
	defaultUserAgent    = "authorlang/0.1"
)

// extractAuthors loads the author list artifact written by the extract stage.
func extractAuthors(cfg types.DatasetConfig) ([]string, error) {
	authors, err := extract.ReadAuthors(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading author list (run \"authorlang extract\" first): %w", err)
	}
	return authors, nil
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch OpenReview profiles for the extracted authors",
	Long: `Fetch looks up every extracted author on OpenReview and checkpoints the
results in a local database. Interrupted runs resume where they left off:
authors already checkpointed are never fetched twice. The full profile
table is exported to CSV after every run.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive profile lookups (default 50ms)")
	fetchCmd.Flags().Int("save-interval", 0, "profiles per checkpoint commit (default 10)")
	fetchCmd.Flags().Int("max-retries", 0, "retries on transient service errors (default 5)")
	fetchCmd.Flags().String("token", "", "OpenReview API token (default: .secrets/openreview-token)")

	rootCmd.AddCommand(fetchCmd)
}

// fetchConfig resolves the fetch stage settings from flags and secrets.
func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		RequestDelay: defaultDelay,
		SaveInterval: defaultSaveInterval,
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetDuration("delay"); v > 0 {
		cfg.RequestDelay = v
	}
	if v, _ := cmd.Flags().GetInt("save-interval"); v > 0 {
		cfg.SaveInterval = v
	}
	cfg.MaxRetries, _ = cmd.Flags().GetInt("max-retries")
	token, _ := cmd.Flags().GetString("token")
	cfg.Token = secretDefault("openreview-token", token)
	return cfg
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)
	fcfg := fetchConfig(cmd)

	authors, err := extractAuthors(cfg)
	if err != nil {
		return err
	}

	store, err := fetch.OpenStore(dataset.CheckpointFile(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := fetch.Run(cmd.Context(), fetch.NewClient(fcfg), store, authors, fcfg, os.Stdout)
	if err != nil {
		return err
	}

	n, err := fetch.Export(cmd.Context(), store, dataset.ProfilesFile(cfg))
	if err != nil {
		return err
	}
	if err := fetch.WriteSummary(dataset.FetchSummaryFile(cfg), summary); err != nil {
		return err
	}
	fmt.Printf("Exported %d profiles to %s\n", n, dataset.ProfilesFile(cfg))
	return nil
}
