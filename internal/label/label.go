// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package label

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/internal/extract"
	"github.com/pdiddy/authorlang/internal/fetch"
	"github.com/pdiddy/authorlang/internal/geo"
	"github.com/pdiddy/authorlang/pkg/types"
)

// Columns appended to the profile table by this stage.
const (
	CountriesField = "education_countries"
	SpeakerField   = "english_speaker"
)

// countrySep joins multiple country codes in one CSV cell.
const countrySep = "; "

// Summary counts classifier outcomes over one labeling run.
type Summary struct {
	Profiles   int `yaml:"profiles"`
	English    int `yaml:"english"`
	NonEnglish int `yaml:"non_english"`
	Unknown    int `yaml:"unknown"`
}

// Run loads the configured reference tables, labels every profile in the
// table at inPath, and writes the table back out with the country and
// speaker columns appended. Every input row produces exactly one output
// row; profiles with no usable signal are labeled unknown rather than
// dropped. Either reference file missing is fatal.
func Run(cfg types.LabelConfig, inPath, outPath string, w io.Writer) (Summary, error) {
	dir, err := geo.LoadDirectory(cfg.UniversitiesFile)
	if err != nil {
		return Summary{}, err
	}
	requirements, err := LoadTOEFL(cfg.TOEFLFile)
	if err != nil {
		return Summary{}, err
	}
	classifier := NewClassifier(dir, requirements)

	institutions, domains := dir.Size()
	fmt.Fprintf(w, "Loaded %d institutions, %d domains, %d exempt countries\n",
		institutions, domains, classifier.ExemptCodes())

	return run(geo.NewResolver(dir), classifier, inPath, outPath, w)
}

// run labels with an already-built resolver and classifier.
func run(resolver *geo.Resolver, classifier *Classifier, inPath, outPath string, w io.Writer) (Summary, error) {
	tbl, err := dataset.ReadCSV(inPath)
	if err != nil {
		return Summary{}, fmt.Errorf("loading profile table: %w", err)
	}
	tbl.EnsureField(CountriesField)
	tbl.EnsureField(SpeakerField)

	var summary Summary
	for _, row := range tbl.Rows {
		profile := fetch.RowToProfile(row)
		resolved := resolver.Resolve(profile)
		speaker := classifier.Classify(resolved.Countries)

		row[CountriesField] = strings.Join(resolved.Countries, countrySep)
		row[SpeakerField] = strconv.Itoa(int(speaker))

		summary.Profiles++
		switch speaker {
		case types.SpeakerEnglish:
			summary.English++
		case types.SpeakerNonEnglish:
			summary.NonEnglish++
		default:
			summary.Unknown++
		}
	}

	if err := dataset.WriteCSV(outPath, tbl); err != nil {
		return summary, fmt.Errorf("writing labeled profiles: %w", err)
	}
	fmt.Fprintf(w, "Labeled %d profiles: %d english, %d non-english, %d unknown\n",
		summary.Profiles, summary.English, summary.NonEnglish, summary.Unknown)
	return summary, nil
}

// ReadLabels loads a labeled profile table and keys each label by the
// author's normalized name, the join key used when merging labels back
// onto paper tables.
func ReadLabels(path string) (map[string]types.LanguageLabel, error) {
	tbl, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("loading labeled profiles: %w", err)
	}
	if !tbl.HasField(SpeakerField) {
		return nil, fmt.Errorf("loading labeled profiles: %s has no %q column", path, SpeakerField)
	}

	labels := make(map[string]types.LanguageLabel, len(tbl.Rows))
	for _, row := range tbl.Rows {
		name := row["author_name"]
		if name == "" {
			continue
		}
		lbl := types.LanguageLabel{AuthorName: name, Speaker: types.SpeakerUnknown}
		if n, err := strconv.Atoi(strings.TrimSpace(row[SpeakerField])); err == nil {
			lbl.Speaker = types.Speaker(n)
		}
		if cell := strings.TrimSpace(row[CountriesField]); cell != "" {
			for _, code := range strings.Split(cell, ";") {
				if code = strings.TrimSpace(code); code != "" {
					lbl.Countries = append(lbl.Countries, code)
				}
			}
		}
		labels[extract.NormalizeName(name)] = lbl
	}
	return labels, nil
}
