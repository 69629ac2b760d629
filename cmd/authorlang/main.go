// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the authorlang CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/authorlang/internal/secrets"
	"github.com/pdiddy/authorlang/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the authorlang CLI.
var rootCmd = &cobra.Command{
	Use:   "authorlang",
	Short: "Label ICLR papers by the first author's English-speaker status",
	Long: `authorlang builds a language-background dataset from ICLR paper tables.
The pipeline extracts unique first authors, fetches their OpenReview
profiles, infers each author's country from institutions and email
domains, joins the countries against a TOEFL exemption table, merges the
resulting speaker labels back onto the papers, and tokenizes abstracts
into per-sentence parquet partitions split by speaker group.

Each stage is a subcommand: extract, fetch, label, merge, and tokenize.
The pipeline subcommand runs them all in order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./authorlang.yaml or ~/.config/authorlang/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the per-year paper tables (default: data)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for pipeline artifacts (default: output)")
	rootCmd.PersistentFlags().IntSlice("years", nil, "years to process (default: 2018 through 2025)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("authorlang")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "authorlang"))
		}
	}

	viper.SetDefault("dataset.data_dir", "data")
	viper.SetDefault("dataset.output_dir", "output")
	viper.SetDefault("dataset.years", []int{2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025})

	viper.SetEnvPrefix("AUTHORLANG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// datasetConfig resolves the dataset settings shared by every stage.
// Flags win over the config file, which wins over the defaults.
func datasetConfig(cmd *cobra.Command) types.DatasetConfig {
	cfg := types.DatasetConfig{
		DataDir:   viper.GetString("dataset.data_dir"),
		OutputDir: viper.GetString("dataset.output_dir"),
		Years:     viper.GetIntSlice("dataset.years"),
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.OutputDir = v
	}
	if v, _ := cmd.Flags().GetIntSlice("years"); len(v) > 0 {
		cfg.Years = v
	}
	for year, name := range viper.GetStringMapString("dataset.files") {
		var y int
		if _, err := fmt.Sscanf(year, "%d", &y); err == nil {
			if cfg.Files == nil {
				cfg.Files = map[int]string{}
			}
			cfg.Files[y] = name
		}
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
