// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokenize segments paper abstracts into per-sentence token rows
// partitioned by the first author's speaker label.
package tokenize

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/label"
	"github.com/pdiddy/authorlang/pkg/types"
)

// Defaults applied when the config leaves a threshold unset.
const (
	defaultMinAbstractLen    = 50
	defaultMinSentenceTokens = 5
)

// Partition suffixes of the speaker splits.
const (
	SuffixEnglish    = "english"
	SuffixNonEnglish = "non_english"
)

// Summary counts tokenization outcomes over one run.
type Summary struct {
	Years      int `yaml:"years"`
	Papers     int `yaml:"papers"`
	Skipped    int `yaml:"skipped"`
	Sentences  int `yaml:"sentences"`
	English    int `yaml:"english_sentences"`
	NonEnglish int `yaml:"non_english_sentences"`
}

// Segmenter splits abstracts into sentences of tokens, dropping material
// too short to carry a usable signal.
type Segmenter struct {
	minAbstractLen    int
	minSentenceTokens int
}

// NewSegmenter builds a segmenter from the config, falling back to the
// default thresholds for unset values.
func NewSegmenter(cfg types.TokenizeConfig) *Segmenter {
	s := &Segmenter{
		minAbstractLen:    cfg.MinAbstractLen,
		minSentenceTokens: cfg.MinSentenceTokens,
	}
	if s.minAbstractLen <= 0 {
		s.minAbstractLen = defaultMinAbstractLen
	}
	if s.minSentenceTokens <= 0 {
		s.minSentenceTokens = defaultMinSentenceTokens
	}
	return s
}

// Sentences splits an abstract into token lists, one per sentence.
// Abstracts below the length threshold and sentences at or below the
// token threshold are dropped; a nil result means the abstract
// contributed nothing.
func (s *Segmenter) Sentences(abstract string) ([][]string, error) {
	abstract = strings.TrimSpace(abstract)
	if len(abstract) < s.minAbstractLen {
		return nil, nil
	}

	doc, err := prose.NewDocument(abstract,
		prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segmenting abstract: %w", err)
	}

	var out [][]string
	for _, sent := range doc.Sentences() {
		tokens, err := tokenizeSentence(sent.Text)
		if err != nil {
			return nil, err
		}
		if len(tokens) > s.minSentenceTokens {
			out = append(out, tokens)
		}
	}
	return out, nil
}

func tokenizeSentence(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false), prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tokenizing sentence: %w", err)
	}
	tokens := make([]string, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		tokens = append(tokens, tok.Text)
	}
	return tokens, nil
}

// paperID picks the paper identifier column present in this year's table.
func paperID(row dataset.Row) string {
	for _, field := range []string{"paper_id", "id", "forum"} {
		if v := row[field]; v != "" {
			return v
		}
	}
	return ""
}

// Run tokenizes every configured year's merged table and writes three
// parquet partitions per year: all sentences, English-speaker sentences,
// and non-English-speaker sentences. Unknown-speaker papers appear only
// in the unpartitioned file.
func Run(cfg types.DatasetConfig, tcfg types.TokenizeConfig, w io.Writer) (Summary, error) {
	seg := NewSegmenter(tcfg)
	var summary Summary

	for _, year := range cfg.Years {
		path := dataset.MergedFile(cfg, year)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(w, "warning: no merged table for year %d (%s)\n", year, path)
			continue
		}

		tbl, err := dataset.ReadCSV(path)
		if err != nil {
			return summary, fmt.Errorf("year %d: %w", year, err)
		}

		var all, english, nonEnglish []dataset.TokenizedRow
		for _, row := range tbl.Rows {
			sentences, err := seg.Sentences(row["abstract"])
			if err != nil {
				return summary, fmt.Errorf("year %d: %w", year, err)
			}
			if len(sentences) == 0 {
				summary.Skipped++
				continue
			}
			summary.Papers++

			speaker := types.SpeakerUnknown
			if n, err := strconv.Atoi(strings.TrimSpace(row[label.SpeakerField])); err == nil {
				speaker = types.Speaker(n)
			}

			id := paperID(row)
			author := row["first_author"]
			for _, tokens := range sentences {
				rec := dataset.TokenizedRow{Sentence: tokens, PaperID: id, FirstAuthor: author}
				all = append(all, rec)
				switch speaker {
				case types.SpeakerEnglish:
					english = append(english, rec)
					summary.English++
				case types.SpeakerNonEnglish:
					nonEnglish = append(nonEnglish, rec)
					summary.NonEnglish++
				}
			}
			summary.Sentences += len(sentences)
		}

		for _, part := range []struct {
			suffix string
			rows   []dataset.TokenizedRow
		}{
			{"", all},
			{SuffixEnglish, english},
			{SuffixNonEnglish, nonEnglish},
		} {
			out := dataset.TokenizedFile(cfg, year, part.suffix)
			if err := dataset.WriteTokenized(out, part.rows); err != nil {
				return summary, fmt.Errorf("year %d: %w", year, err)
			}
		}

		summary.Years++
		fmt.Fprintf(w, "year %d: %d abstracts, %d sentences (%d english, %d non-english)\n",
			year, len(tbl.Rows), len(all), len(english), len(nonEnglish))
	}

	if summary.Years == 0 {
		return summary, fmt.Errorf("no merged tables found under %s", cfg.OutputDir)
	}
	fmt.Fprintf(w, "\nTokenize summary: %d years, %d abstracts kept, %d skipped, %d sentences\n",
		summary.Years, summary.Papers, summary.Skipped, summary.Sentences)
	return summary, nil
}
