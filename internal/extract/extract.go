// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract derives the unique set of first authors from the
// per-year paper tables.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/pkg/types"
)

// Summary holds the outcome of an extraction run.
type Summary struct {
	Years   int
	Papers  int
	Skipped int
	Entries int
	Unique  int
}

// FirstAuthor returns the first name in a comma-delimited authors field,
// or "" when the field is empty.
func FirstAuthor(authors string) string {
	authors = strings.TrimSpace(authors)
	if authors == "" {
		return ""
	}
	first, _, _ := strings.Cut(authors, ",")
	return strings.TrimSpace(first)
}

// NormalizeName returns the dedup/join key for an author name: lowercased
// with runs of whitespace collapsed. Display strings keep their original
// form; only keys are normalized.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// UniqueAuthors scans the configured years and returns the unique first
// authors in first-seen order. Rows without a usable author are counted
// as skipped, not fatal; a missing year file produces a warning and the
// year is dropped.
func UniqueAuthors(cfg types.DatasetConfig, w io.Writer) ([]string, Summary, error) {
	var (
		summary Summary
		seen    = make(map[string]bool)
		authors []string
	)

	for _, year := range cfg.Years {
		path := dataset.PaperFile(cfg, year)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(w, "warning: no table for year %d (%s)\n", year, path)
			continue
		}

		tbl, err := dataset.ReadTable(path)
		if err != nil {
			return nil, summary, fmt.Errorf("year %d: %w", year, err)
		}
		summary.Years++
		summary.Papers += len(tbl.Rows)

		if !tbl.HasField("authors") && !tbl.HasField("first_author") {
			fmt.Fprintf(w, "warning: year %d has no authors column, skipping\n", year)
			summary.Skipped += len(tbl.Rows)
			continue
		}

		yearAuthors := 0
		for _, row := range tbl.Rows {
			name := row["first_author"]
			if name == "" {
				name = FirstAuthor(row["authors"])
			}
			if name == "" {
				summary.Skipped++
				continue
			}
			summary.Entries++
			key := NormalizeName(name)
			if !seen[key] {
				seen[key] = true
				authors = append(authors, name)
				yearAuthors++
			}
		}
		fmt.Fprintf(w, "year %d: %d papers, %d new first authors\n", year, len(tbl.Rows), yearAuthors)
	}

	summary.Unique = len(authors)
	fmt.Fprintf(w, "\nExtract summary: %d years, %d papers, %d skipped rows, %d unique first authors\n",
		summary.Years, summary.Papers, summary.Skipped, summary.Unique)
	return authors, summary, nil
}

// WriteAuthors persists the author list artifact consumed by the fetch stage.
func WriteAuthors(cfg types.DatasetConfig, authors []string) error {
	tbl := &dataset.Table{Fields: []string{"author_name"}}
	for _, name := range authors {
		tbl.Rows = append(tbl.Rows, dataset.Row{"author_name": name})
	}
	return dataset.WriteCSV(dataset.UniqueAuthorsFile(cfg), tbl)
}

// ReadAuthors loads the author list written by WriteAuthors.
func ReadAuthors(cfg types.DatasetConfig) ([]string, error) {
	tbl, err := dataset.ReadCSV(dataset.UniqueAuthorsFile(cfg))
	if err != nil {
		return nil, err
	}
	authors := make([]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		if name := row["author_name"]; name != "" {
			authors = append(authors, name)
		}
	}
	return authors, nil
}
