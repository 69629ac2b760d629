// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/tokenize"
	"github.com/pdiddy/authorlang/pkg/types"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize",
	Short: "Tokenize abstracts into per-sentence parquet partitions",
	Long: `Tokenize segments each merged paper's abstract into sentences of tokens
and writes three parquet files per year: all sentences, sentences from
English-speaker papers, and sentences from non-English-speaker papers.
Short abstracts and short sentences are dropped.`,
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().Int("min-abstract-len", 0, "minimum abstract length in bytes (default 50)")
	tokenizeCmd.Flags().Int("min-sentence-tokens", 0, "drop sentences with this many tokens or fewer (default 5)")

	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)

	minAbstract, _ := cmd.Flags().GetInt("min-abstract-len")
	minSentence, _ := cmd.Flags().GetInt("min-sentence-tokens")
	tcfg := types.TokenizeConfig{
		MinAbstractLen:    minAbstract,
		MinSentenceTokens: minSentence,
	}

	_, err := tokenize.Run(cfg, tcfg, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote tokenized partitions to %s\n", dataset.TokenizedDir(cfg))
	return nil
}
