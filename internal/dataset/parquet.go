// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// TokenizedSchema is the layout of the tokenized abstract partitions:
// one row per sentence, tokens as a string list.
var TokenizedSchema = arrow.NewSchema([]arrow.Field{
	{Name: "sentence", Type: arrow.ListOf(arrow.BinaryTypes.String)},
	{Name: "paper_id", Type: arrow.BinaryTypes.String},
	{Name: "first_author", Type: arrow.BinaryTypes.String},
}, nil)

// TokenizedRow is one tokenized sentence with its paper provenance.
type TokenizedRow struct {
	Sentence    []string
	PaperID     string
	FirstAuthor string
}

// ReadParquet loads a parquet file into a Table, rendering every column
// as strings so the stages can treat both encodings uniformly.
func ReadParquet(path string) (*Table, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tbl, err := reader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer tbl.Release()

	t := &Table{}
	for i := 0; i < int(tbl.NumCols()); i++ {
		t.Fields = append(t.Fields, tbl.Schema().Field(i).Name)
	}

	t.Rows = make([]Row, tbl.NumRows())
	for i := range t.Rows {
		t.Rows[i] = make(Row, len(t.Fields))
	}

	for c := 0; c < int(tbl.NumCols()); c++ {
		field := t.Fields[c]
		rowIdx := 0
		for _, chunk := range tbl.Column(c).Data().Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				if !chunk.IsNull(j) {
					t.Rows[rowIdx][field] = chunk.ValueStr(j)
				}
				rowIdx++
			}
		}
	}
	return t, nil
}

// WriteTokenized writes sentence rows to a parquet file via a temporary
// file, matching the durability convention of the CSV artifacts.
func WriteTokenized(path string, rows []TokenizedRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	bldr := array.NewRecordBuilder(memory.DefaultAllocator, TokenizedSchema)
	defer bldr.Release()

	sentB := bldr.Field(0).(*array.ListBuilder)
	tokB := sentB.ValueBuilder().(*array.StringBuilder)
	paperB := bldr.Field(1).(*array.StringBuilder)
	authorB := bldr.Field(2).(*array.StringBuilder)

	for _, row := range rows {
		sentB.Append(true)
		for _, tok := range row.Sentence {
			tokB.Append(tok)
		}
		paperB.Append(row.PaperID)
		authorB.Append(row.FirstAuthor)
	}

	rec := bldr.NewRecord()
	defer rec.Release()

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tokenized-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	w, err := pqarrow.NewFileWriter(TokenizedSchema, tmpFile,
		parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("creating parquet writer: %w", err)
	}

	writeErr := w.Write(rec)
	closeErr := w.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing parquet writer: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadTokenized loads a tokenized partition back into rows.
func ReadTokenized(path string) ([]TokenizedRow, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tbl, err := reader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer tbl.Release()

	var rows []TokenizedRow
	sentChunks := tbl.Column(0).Data().Chunks()
	paperChunks := tbl.Column(1).Data().Chunks()
	authorChunks := tbl.Column(2).Data().Chunks()

	for ci, chunk := range sentChunks {
		list, ok := chunk.(*array.List)
		if !ok {
			return nil, fmt.Errorf("%s: sentence column is %T, want list", path, chunk)
		}
		tokens, ok := list.ListValues().(*array.String)
		if !ok {
			return nil, fmt.Errorf("%s: sentence values are %T, want string", path, list.ListValues())
		}
		papers := paperChunks[ci].(*array.String)
		authors := authorChunks[ci].(*array.String)

		for j := 0; j < list.Len(); j++ {
			start, end := list.ValueOffsets(j)
			row := TokenizedRow{
				PaperID:     papers.Value(j),
				FirstAuthor: authors.Value(j),
			}
			for k := start; k < end; k++ {
				row.Sentence = append(row.Sentence, tokens.Value(int(k)))
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
