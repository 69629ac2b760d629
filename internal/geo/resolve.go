// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geo

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/authorlang/pkg/types"
)

// publicProviders are generic email hosts that carry no affiliation
// signal and are dropped before domain lookup.
var publicProviders = map[string]bool{
	"gmail.com": true, "yahoo.com": true, "hotmail.com": true,
	"outlook.com": true, "icloud.com": true, "aol.com": true,
	"live.com": true, "msn.com": true, "protonmail.com": true,
	"yandex.com": true, "mail.ru": true, "qq.com": true,
	"163.com": true, "sina.com": true, "sohu.com": true,
}

// domainPattern extracts the domain portion of an email address.
var domainPattern = regexp.MustCompile(`@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)

// ExtractDomains returns the ordered unique domains found in the emails.
func ExtractDomains(emails []string) []string {
	var (
		seen    = make(map[string]bool)
		domains []string
	)
	for _, email := range emails {
		for _, m := range domainPattern.FindAllStringSubmatch(email, -1) {
			d := NormalizeDomain(m[1])
			if d != "" && !seen[d] {
				seen[d] = true
				domains = append(domains, d)
			}
		}
	}
	return domains
}

// FilterDomains drops deny-listed public providers.
func FilterDomains(domains []string) []string {
	var kept []string
	for _, d := range domains {
		if !publicProviders[d] {
			kept = append(kept, d)
		}
	}
	return kept
}

// countryCodePattern matches a bare ISO alpha-2 code.
var countryCodePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

// Resolver maps profiles to candidate country sets against a loaded
// university directory.
type Resolver struct {
	dir *Directory
}

// NewResolver wraps a directory.
func NewResolver(dir *Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve computes the candidate-country set for a profile from three
// unweighted signals: education institutions (exact normalized lookup),
// filtered email domains (directory lookup, then ccTLD fallback), and the
// profile's declared current country. The signals are unioned; one hit
// from any of them counts the same as many.
func (r *Resolver) Resolve(p types.Profile) types.CountryLabel {
	set := make(map[string]bool)
	var eduHit, emailHit, currentHit bool

	for _, entry := range p.Education {
		if code, ok := r.dir.InstitutionCountry(entry.Institution); ok {
			set[code] = true
			eduHit = true
		}
	}

	for _, domain := range FilterDomains(ExtractDomains(p.AllEmails)) {
		if code, ok := r.dir.DomainCountry(domain); ok {
			set[code] = true
			emailHit = true
			continue
		}
		if code, ok := CountryFromTLD(domain); ok {
			set[code] = true
			emailHit = true
		}
	}

	// The profile's own current-country field widens the set when the
	// service supplied a usable code.
	if cc := strings.TrimSpace(p.CurrentCountry); countryCodePattern.MatchString(cc) {
		set[strings.ToUpper(cc)] = true
		currentHit = true
	}

	label := types.CountryLabel{Source: types.SourceNone}
	switch {
	case eduHit:
		label.Source = types.SourceEducation
	case emailHit:
		label.Source = types.SourceEmail
	case currentHit:
		label.Source = types.SourceCurrent
	}

	for code := range set {
		label.Countries = append(label.Countries, code)
	}
	sort.Strings(label.Countries)
	return label
}
