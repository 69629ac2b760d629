// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// university is one entry of the world-universities directory JSON.
type university struct {
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	AlphaTwoCode string   `json:"alpha_two_code"`
	Domains      []string `json:"domains"`
}

// Directory is the loaded university directory with normalized lookup
// tables. Built once at stage start; read-only afterwards.
type Directory struct {
	institutionToCountry map[string]string
	domainToCountry      map[string]string
	codeToName           map[string]string
}

// LoadDirectory reads and indexes the university directory JSON. A
// missing or unparsable file is fatal: no record can be classified
// without it.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading university directory %s: %w", path, err)
	}

	var unis []university
	if err := json.Unmarshal(data, &unis); err != nil {
		return nil, fmt.Errorf("parsing university directory %s: %w", path, err)
	}

	d := &Directory{
		institutionToCountry: make(map[string]string, len(unis)),
		domainToCountry:      make(map[string]string, len(unis)),
		codeToName:           make(map[string]string),
	}
	for _, u := range unis {
		if u.AlphaTwoCode == "" {
			continue
		}
		if key := NormalizeInstitution(u.Name); key != "" {
			d.institutionToCountry[key] = u.AlphaTwoCode
		}
		for _, dom := range u.Domains {
			if key := NormalizeDomain(dom); key != "" {
				d.domainToCountry[key] = u.AlphaTwoCode
			}
		}
		if u.Country != "" {
			if _, ok := d.codeToName[u.AlphaTwoCode]; !ok {
				d.codeToName[u.AlphaTwoCode] = u.Country
			}
		}
	}
	return d, nil
}

// Size returns the number of indexed institutions and domains.
func (d *Directory) Size() (institutions, domains int) {
	return len(d.institutionToCountry), len(d.domainToCountry)
}

// InstitutionCountry looks up an institution name after normalization.
func (d *Directory) InstitutionCountry(name string) (string, bool) {
	key := NormalizeInstitution(name)
	if key == "" {
		return "", false
	}
	code, ok := d.institutionToCountry[key]
	return code, ok
}

// DomainCountry looks up an email domain, walking parent suffixes so
// institutional subdomains still match ("cs.stanford.edu" hits the
// directory entry for "stanford.edu").
func (d *Directory) DomainCountry(domain string) (string, bool) {
	key := NormalizeDomain(domain)
	for key != "" {
		if code, ok := d.domainToCountry[key]; ok {
			return code, true
		}
		_, rest, found := strings.Cut(key, ".")
		if !found || !strings.Contains(rest, ".") {
			return "", false
		}
		key = rest
	}
	return "", false
}

// CountryName maps an alpha-2 code back to its directory country name.
func (d *Directory) CountryName(code string) (string, bool) {
	name, ok := d.codeToName[code]
	return name, ok
}

// Countries returns a copy of the code-to-name table.
func (d *Directory) Countries() map[string]string {
	out := make(map[string]string, len(d.codeToName))
	for code, name := range d.codeToName {
		out[code] = name
	}
	return out
}
