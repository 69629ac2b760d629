// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/label"
	"github.com/pdiddy/authorlang/pkg/types"
)

const (
	defaultUniversitiesFile = "data/world_universities_and_domains.json"
	defaultTOEFLFile        = "data/toefl_requirements.csv"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Label fetched profiles with English-speaker status",
	Long: `Label resolves each profile's candidate countries from its education
history, email domains, and current affiliation, then joins them against
the TOEFL exemption table. An author with at least one exempt country is
labeled an English speaker; an author with no usable signal is labeled
unknown. Every profile gets a label.`,
	RunE: runLabel,
}

func init() {
	labelCmd.Flags().String("universities", "", "university directory JSON (default data/world_universities_and_domains.json)")
	labelCmd.Flags().String("toefl", "", "TOEFL requirement CSV (default data/toefl_requirements.csv)")

	rootCmd.AddCommand(labelCmd)
}

// labelConfig resolves the label stage settings from flags.
func labelConfig(cmd *cobra.Command) types.LabelConfig {
	cfg := types.LabelConfig{
		UniversitiesFile: defaultUniversitiesFile,
		TOEFLFile:        defaultTOEFLFile,
	}
	if v, _ := cmd.Flags().GetString("universities"); v != "" {
		cfg.UniversitiesFile = v
	}
	if v, _ := cmd.Flags().GetString("toefl"); v != "" {
		cfg.TOEFLFile = v
	}
	return cfg
}

func runLabel(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)

	_, err := label.Run(labelConfig(cmd),
		dataset.ProfilesFile(cfg), dataset.LabeledProfilesFile(cfg), os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote labeled profiles to %s\n", dataset.LabeledProfilesFile(cfg))
	return nil
}
