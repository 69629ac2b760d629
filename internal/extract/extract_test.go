// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/authorlang/pkg/types"
)

func TestFirstAuthor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe, John Smith, Wei Chen", "Jane Doe"},
		{"Solo Author", "Solo Author"},
		{"  Padded Name , Other", "Padded Name"},
		{"", ""},
		{"   ", ""},
		{", starts with comma", ""},
	}
	for _, tt := range tests {
		if got := FirstAuthor(tt.in); got != tt.want {
			t.Errorf("FirstAuthor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane doe"},
		{"  Jane   DOE ", "jane doe"},
		{"JANE\tDoe", "jane doe"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeYear(t *testing.T, dir string, year int, content string) {
	t.Helper()
	name := filepath.Join(dir, fmt.Sprintf("iclr_%d_detailed.csv", year))
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUniqueAuthors(t *testing.T) {
	dir := t.TempDir()
	writeYear(t, dir, 2018, "id,authors\n"+
		"a,\"Jane Doe, John Smith\"\n"+
		"b,\"Wei Chen, Li Wang\"\n"+
		"c,\n")
	writeYear(t, dir, 2019, "id,authors\n"+
		"d,\"jane   doe, Somebody Else\"\n"+ // dup of Jane Doe after normalization
		"e,\"Ana Lima\"\n")

	cfg := types.DatasetConfig{
		DataDir:   dir,
		OutputDir: dir,
		Years:     []int{2018, 2019, 2020}, // 2020 file is absent
	}

	authors, summary, err := UniqueAuthors(cfg, io.Discard)
	if err != nil {
		t.Fatalf("UniqueAuthors: %v", err)
	}

	want := []string{"Jane Doe", "Wei Chen", "Ana Lima"}
	if !reflect.DeepEqual(authors, want) {
		t.Errorf("authors = %v, want %v", authors, want)
	}
	if summary.Years != 2 {
		t.Errorf("Years = %d, want 2", summary.Years)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Unique != 3 {
		t.Errorf("Unique = %d, want 3", summary.Unique)
	}
}

func TestUniqueAuthorsPrefersExistingColumn(t *testing.T) {
	dir := t.TempDir()
	writeYear(t, dir, 2018, "id,authors,first_author\n"+
		"a,\"Ignored Name, Other\",Preset Author\n")

	cfg := types.DatasetConfig{DataDir: dir, OutputDir: dir, Years: []int{2018}}
	authors, _, err := UniqueAuthors(cfg, io.Discard)
	if err != nil {
		t.Fatalf("UniqueAuthors: %v", err)
	}
	if len(authors) != 1 || authors[0] != "Preset Author" {
		t.Errorf("authors = %v, want [Preset Author]", authors)
	}
}

func TestWriteReadAuthorsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := types.DatasetConfig{OutputDir: dir, Years: []int{2018, 2025}}

	in := []string{"Jane Doe", "Wei Chen"}
	if err := WriteAuthors(cfg, in); err != nil {
		t.Fatalf("WriteAuthors: %v", err)
	}
	out, err := ReadAuthors(cfg)
	if err != nil {
		t.Fatalf("ReadAuthors: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}
