// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geo maps free-text institution names and email domains to
// candidate country codes using the university directory and a fixed
// ccTLD table. Lookups are exact after normalization; unmatched inputs
// contribute nothing rather than guesses.
package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFolder strips combining marks so "Universität" and
// "Universitat" normalize identically.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeInstitution returns the lookup key for an institution name:
// lowercased, diacritics folded, trailing campus qualifiers dropped,
// punctuation removed, whitespace collapsed. Both the directory and the
// queried names go through this function, so the key only has to be
// stable, not pretty.
func NormalizeInstitution(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(diacriticFolder, s); err == nil {
		s = folded
	}
	s = stripCampusQualifier(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stripCampusQualifier drops a trailing comma-delimited segment that
// names a campus ("X University, Y Campus" matches as "X University").
func stripCampusQualifier(s string) string {
	idx := strings.LastIndex(s, ",")
	if idx < 0 {
		return s
	}
	tail := strings.TrimSpace(s[idx+1:])
	if strings.HasSuffix(tail, "campus") {
		return s[:idx]
	}
	return s
}

// NormalizeDomain returns the lookup key for an email domain.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
