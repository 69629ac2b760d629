// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge joins speaker labels back onto the per-year paper tables.
package merge

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/extract"
	"github.com/pdiddy/authorlang/internal/label"
	"github.com/pdiddy/authorlang/pkg/types"
)

// Summary counts join outcomes across all merged years.
type Summary struct {
	Years     int `yaml:"years"`
	Papers    int `yaml:"papers"`
	Matched   int `yaml:"matched"`
	Unmatched int `yaml:"unmatched"`
}

// Run merges labels onto every configured year. The join is a left join
// on the normalized first-author name: every paper row survives, and a
// paper whose author has no label gets the unknown speaker value. Each
// year is written to its own CSV artifact, plus one combined table with
// a year column.
func Run(cfg types.DatasetConfig, labels map[string]types.LanguageLabel, w io.Writer) (Summary, error) {
	var summary Summary
	combined := &dataset.Table{Fields: []string{"year"}}

	for _, year := range cfg.Years {
		path := dataset.PaperFile(cfg, year)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(w, "warning: no table for year %d (%s)\n", year, path)
			continue
		}

		tbl, err := dataset.ReadTable(path)
		if err != nil {
			return summary, fmt.Errorf("year %d: %w", year, err)
		}
		matched := mergeYear(tbl, labels)

		if err := dataset.WriteCSV(dataset.MergedFile(cfg, year), tbl); err != nil {
			return summary, fmt.Errorf("year %d: %w", year, err)
		}

		summary.Years++
		summary.Papers += len(tbl.Rows)
		summary.Matched += matched
		summary.Unmatched += len(tbl.Rows) - matched
		fmt.Fprintf(w, "year %d: %d papers, %d labeled\n", year, len(tbl.Rows), matched)

		appendYear(combined, tbl, year)
	}

	if summary.Years == 0 {
		return summary, fmt.Errorf("no paper tables found under %s", cfg.DataDir)
	}
	if err := dataset.WriteCSV(dataset.CombinedFile(cfg), combined); err != nil {
		return summary, fmt.Errorf("writing combined table: %w", err)
	}

	fmt.Fprintf(w, "\nMerge summary: %d years, %d papers, %d labeled, %d unknown\n",
		summary.Years, summary.Papers, summary.Matched, summary.Unmatched)
	return summary, nil
}

// mergeYear labels one year's table in place and returns the number of
// rows whose author matched a label.
func mergeYear(tbl *dataset.Table, labels map[string]types.LanguageLabel) int {
	tbl.EnsureField("first_author")
	tbl.EnsureField(label.SpeakerField)

	matched := 0
	for _, row := range tbl.Rows {
		if row["first_author"] == "" {
			row["first_author"] = extract.FirstAuthor(row["authors"])
		}

		speaker := types.SpeakerUnknown
		if lbl, ok := labels[extract.NormalizeName(row["first_author"])]; ok {
			speaker = lbl.Speaker
			matched++
		}
		row[label.SpeakerField] = strconv.Itoa(int(speaker))
	}
	return matched
}

// appendYear adds one year's rows to the combined table, growing the
// combined field set with any columns this year introduces.
func appendYear(combined, tbl *dataset.Table, year int) {
	for _, f := range tbl.Fields {
		combined.EnsureField(f)
	}
	y := strconv.Itoa(year)
	for _, row := range tbl.Rows {
		row["year"] = y
		combined.Rows = append(combined.Rows, row)
	}
}
