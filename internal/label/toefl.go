// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package label decides whether an author is a native English speaker by
// joining resolved countries against a TOEFL exemption table.
package label

import (
	"fmt"
	"strings"

	"github.com/pdiddy/authorlang/internal/dataset"
)

// Column names of the exemption table artifact.
const (
	toeflCountryField     = "Country"
	toeflRequirementField = "TOEFL requirement"
)

// exemptRequirement marks countries whose nationals are not asked for a
// TOEFL score, the proxy used for native English speakers.
const exemptRequirement = "exempt"

// LoadTOEFL reads the per-country TOEFL requirement table. Keys are
// lowercased country names so the join with the university directory is
// case-insensitive.
func LoadTOEFL(path string) (map[string]string, error) {
	tbl, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("loading TOEFL table: %w", err)
	}
	if !tbl.HasField(toeflCountryField) || !tbl.HasField(toeflRequirementField) {
		return nil, fmt.Errorf("loading TOEFL table: %s is missing %q or %q columns",
			path, toeflCountryField, toeflRequirementField)
	}

	requirements := make(map[string]string, len(tbl.Rows))
	for _, row := range tbl.Rows {
		country := strings.ToLower(strings.TrimSpace(row[toeflCountryField]))
		if country == "" {
			continue
		}
		requirements[country] = strings.TrimSpace(row[toeflRequirementField])
	}
	if len(requirements) == 0 {
		return nil, fmt.Errorf("loading TOEFL table: %s has no usable rows", path)
	}
	return requirements, nil
}

// Exempt reports whether a requirement cell marks the country as TOEFL
// exempt.
func Exempt(requirement string) bool {
	return strings.EqualFold(strings.TrimSpace(requirement), exemptRequirement)
}
