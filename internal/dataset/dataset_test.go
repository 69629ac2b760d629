// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/authorlang/pkg/types"
)

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papers.csv")
	content := "id,authors,abstract\n" +
		"p1,\"Jane Doe, John Smith\",An abstract.\n" +
		"p2,Solo Author,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	wantFields := []string{"id", "authors", "abstract"}
	if !reflect.DeepEqual(tbl.Fields, wantFields) {
		t.Errorf("Fields = %v, want %v", tbl.Fields, wantFields)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}
	if got := tbl.Rows[0]["authors"]; got != "Jane Doe, John Smith" {
		t.Errorf("row 0 authors = %q", got)
	}
	if got := tbl.Rows[1]["abstract"]; got != "" {
		t.Errorf("row 1 abstract = %q, want empty", got)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "table.csv")

	in := &Table{
		Fields: []string{"author_name", "english_speaker"},
		Rows: []Row{
			{"author_name": "Jane Doe", "english_speaker": "1"},
			{"author_name": "Wei Chen", "english_speaker": "0"},
			// Field missing from the row writes as empty.
			{"author_name": "Nobody"},
		},
	}
	if err := WriteCSV(path, in); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(out.Rows) != len(in.Rows) {
		t.Fatalf("got %d rows, want %d", len(out.Rows), len(in.Rows))
	}
	if got := out.Rows[2]["english_speaker"]; got != "" {
		t.Errorf("missing field read back as %q, want empty", got)
	}
	if got := out.Rows[1]["author_name"]; got != "Wei Chen" {
		t.Errorf("row 1 author_name = %q", got)
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestReadTableUnsupportedFormat(t *testing.T) {
	if _, err := ReadTable("papers.xlsx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestPaperFile(t *testing.T) {
	cfg := types.DatasetConfig{
		DataDir: "data",
		Files:   map[int]string{2020: "custom_2020.csv"},
	}

	tests := []struct {
		year int
		want string
	}{
		{2018, filepath.Join("data", "iclr_2018_detailed.csv")},
		{2020, filepath.Join("data", "custom_2020.csv")},
		{2023, filepath.Join("data", "iclr_2023_detailed.csv")},
		{2024, filepath.Join("data", "iclr24.parquet")},
		{2025, filepath.Join("data", "iclr25.parquet")},
	}
	for _, tt := range tests {
		if got := PaperFile(cfg, tt.year); got != tt.want {
			t.Errorf("PaperFile(%d) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

func TestArtifactNames(t *testing.T) {
	cfg := types.DatasetConfig{
		OutputDir: "out",
		Years:     []int{2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025},
	}

	if got, want := UniqueAuthorsFile(cfg), filepath.Join("out", "unique_first_authors_2018_2025.csv"); got != want {
		t.Errorf("UniqueAuthorsFile = %q, want %q", got, want)
	}
	if got, want := LabeledProfilesFile(cfg), filepath.Join("out", "author_profiles_2018_2025_with_language.csv"); got != want {
		t.Errorf("LabeledProfilesFile = %q, want %q", got, want)
	}
	if got, want := MergedFile(cfg, 2021), filepath.Join("out", "iclr_2021_with_language.csv"); got != want {
		t.Errorf("MergedFile = %q, want %q", got, want)
	}
	if got, want := TokenizedFile(cfg, 2019, ""), filepath.Join("out", "tokenized_data", "2019_1.parquet"); got != want {
		t.Errorf("TokenizedFile = %q, want %q", got, want)
	}
	if got, want := TokenizedFile(cfg, 2019, "non_english"), filepath.Join("out", "tokenized_data", "2019_1_non_english.parquet"); got != want {
		t.Errorf("TokenizedFile = %q, want %q", got, want)
	}
}

func TestTokenizedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024_1.parquet")

	in := []TokenizedRow{
		{
			Sentence:    []string{"We", "propose", "a", "new", "method", "for", "training", "."},
			PaperID:     "p1",
			FirstAuthor: "Jane Doe",
		},
		{
			Sentence:    []string{"Results", "improve", "on", "strong", "baselines", "significantly", "."},
			PaperID:     "p1",
			FirstAuthor: "Jane Doe",
		},
		{
			Sentence:    []string{"A", "second", "paper", "sentence", "with", "tokens", "."},
			PaperID:     "p2",
			FirstAuthor: "Wei Chen",
		},
	}
	if err := WriteTokenized(path, in); err != nil {
		t.Fatalf("WriteTokenized: %v", err)
	}

	out, err := ReadTokenized(path)
	if err != nil {
		t.Fatalf("ReadTokenized: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %v\nout: %v", in, out)
	}
}

func TestReadParquetAsTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.parquet")

	in := []TokenizedRow{
		{Sentence: []string{"one", "two"}, PaperID: "p1", FirstAuthor: "A"},
		{Sentence: []string{"three"}, PaperID: "p2", FirstAuthor: "B"},
	}
	if err := WriteTokenized(path, in); err != nil {
		t.Fatalf("WriteTokenized: %v", err)
	}

	tbl, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}
	if got := tbl.Rows[1]["paper_id"]; got != "p2" {
		t.Errorf("row 1 paper_id = %q, want p2", got)
	}
	if !tbl.HasField("first_author") {
		t.Error("missing first_author field")
	}
}
