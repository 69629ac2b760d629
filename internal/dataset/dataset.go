// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads and writes the pipeline's tabular artifacts. Input
// paper tables come in two encodings, row-oriented CSV and columnar
// Parquet, selected by file extension; every stage consumes them through
// the same Table of named-field rows.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/authorlang/pkg/types"
)

const (
	// CSVExt and ParquetExt select the table encoding.
	CSVExt     = ".csv"
	ParquetExt = ".parquet"
)

// Row is one record keyed by field name. Missing fields read as "".
type Row map[string]string

// Table is an ordered sequence of rows with named fields. Fields preserves
// the source column order; rows may omit fields.
type Table struct {
	Fields []string
	Rows   []Row
}

// HasField reports whether the table declares the named column.
func (t *Table) HasField(name string) bool {
	for _, f := range t.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// EnsureField appends the column to the field list if absent.
func (t *Table) EnsureField(name string) {
	if !t.HasField(name) {
		t.Fields = append(t.Fields, name)
	}
}

// ReadTable loads a table, dispatching on the file extension.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case CSVExt:
		return ReadCSV(path)
	case ParquetExt:
		return ReadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported table format %q", filepath.Ext(path))
	}
}

// ReadCSV loads a headered CSV file into a Table.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table %s: missing header row", path)
	}

	t := &Table{Fields: records[0]}
	for _, rec := range records[1:] {
		row := make(Row, len(t.Fields))
		for i, field := range t.Fields {
			if i < len(rec) {
				row[field] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteCSV writes the table to path via a temporary file so a crash
// mid-write never leaves a truncated artifact.
func WriteCSV(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".table-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	w := csv.NewWriter(tmpFile)
	writeErr := w.Write(t.Fields)
	if writeErr == nil {
		rec := make([]string, len(t.Fields))
		for _, row := range t.Rows {
			for i, field := range t.Fields {
				rec[i] = row[field]
			}
			if writeErr = w.Write(rec); writeErr != nil {
				break
			}
		}
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}

	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// PaperFile returns the input table path for a year. Years absent from the
// config map use the historical naming scheme: detailed CSV exports
// through 2023, Parquet dumps afterwards.
func PaperFile(cfg types.DatasetConfig, year int) string {
	if name, ok := cfg.Files[year]; ok {
		return filepath.Join(cfg.DataDir, name)
	}
	if year <= 2023 {
		return filepath.Join(cfg.DataDir, fmt.Sprintf("iclr_%d_detailed.csv", year))
	}
	return filepath.Join(cfg.DataDir, fmt.Sprintf("iclr%02d.parquet", year%100))
}

// yearSpan renders the "2018_2025" portion of the shared artifact names.
func yearSpan(cfg types.DatasetConfig) string {
	if len(cfg.Years) == 0 {
		return "all"
	}
	return fmt.Sprintf("%d_%d", cfg.Years[0], cfg.Years[len(cfg.Years)-1])
}

// UniqueAuthorsFile is the author-list artifact written by the extract stage.
func UniqueAuthorsFile(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("unique_first_authors_%s.csv", yearSpan(cfg)))
}

// ProfilesFile is the profile table exported by the fetch stage.
func ProfilesFile(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("author_profiles_%s.csv", yearSpan(cfg)))
}

// CheckpointFile is the fetch stage's durable SQLite checkpoint.
func CheckpointFile(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.OutputDir, "profiles.db")
}

// FetchSummaryFile is the fetch stage's YAML run summary.
func FetchSummaryFile(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.OutputDir, "fetch_summary.yaml")
}

// LabeledProfilesFile is the labeled profile table written by the label stage.
func LabeledProfilesFile(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("author_profiles_%s_with_language.csv", yearSpan(cfg)))
}

// MergedFile is the per-year paper table with language labels.
func MergedFile(cfg types.DatasetConfig, year int) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("iclr_%d_with_language.csv", year))
}

// CombinedFile is the all-years merged table.
func CombinedFile(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("iclr_%s_with_language.csv", yearSpan(cfg)))
}

// TokenizedDir holds the tokenized parquet partitions.
func TokenizedDir(cfg types.DatasetConfig) string {
	return filepath.Join(cfg.OutputDir, "tokenized_data")
}

// TokenizedFile names one tokenized partition for a year. An empty
// suffix names the unpartitioned file, e.g. 2019_1.parquet; a suffix
// names a speaker split, e.g. 2019_1_english.parquet.
func TokenizedFile(cfg types.DatasetConfig, year int, suffix string) string {
	name := fmt.Sprintf("%d_1.parquet", year)
	if suffix != "" {
		name = fmt.Sprintf("%d_1_%s.parquet", year, suffix)
	}
	return filepath.Join(TokenizedDir(cfg), name)
}
