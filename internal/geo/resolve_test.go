// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geo

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/authorlang/pkg/types"
)

const sampleDirectory = `[
  {
    "name": "University of Toronto",
    "country": "Canada",
    "alpha_two_code": "CA",
    "domains": ["utoronto.ca"]
  },
  {
    "name": "Stanford University",
    "country": "United States",
    "alpha_two_code": "US",
    "domains": ["stanford.edu"]
  },
  {
    "name": "Tsinghua University",
    "country": "China",
    "alpha_two_code": "CN",
    "domains": ["tsinghua.edu.cn"]
  },
  {
    "name": "Universität Tübingen",
    "country": "Germany",
    "alpha_two_code": "DE",
    "domains": ["uni-tuebingen.de"]
  }
]`

func testDirectory(t *testing.T) *Directory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "universities.json")
	if err := os.WriteFile(path, []byte(sampleDirectory), 0o644); err != nil {
		t.Fatal(err)
	}
	dir, err := LoadDirectory(path)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	return dir
}

func TestLoadDirectoryMissingFile(t *testing.T) {
	if _, err := LoadDirectory(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing directory file")
	}
}

func TestLoadDirectoryMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universities.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDirectory(path); err == nil {
		t.Fatal("expected error for malformed directory file")
	}
}

func TestInstitutionCountry(t *testing.T) {
	dir := testDirectory(t)

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"University of Toronto", "CA", true},
		{"  university of TORONTO ", "CA", true},
		{"Universitat Tubingen", "DE", true}, // accents folded on both sides
		{"Stanford University, Main Campus", "US", true},
		{"Unknown Institute of Nowhere", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := dir.InstitutionCountry(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("InstitutionCountry(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDomainCountry(t *testing.T) {
	dir := testDirectory(t)

	tests := []struct {
		domain string
		want   string
		ok     bool
	}{
		{"stanford.edu", "US", true},
		{"cs.stanford.edu", "US", true},      // subdomain walks to parent
		{"mail.cs.stanford.edu", "US", true}, // deeper subdomain
		{"tsinghua.edu.cn", "CN", true},
		{"unknown.example", "", false},
	}
	for _, tt := range tests {
		got, ok := dir.DomainCountry(tt.domain)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DomainCountry(%q) = %q, %v; want %q, %v", tt.domain, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCountryName(t *testing.T) {
	dir := testDirectory(t)
	if name, ok := dir.CountryName("CA"); !ok || name != "Canada" {
		t.Errorf("CountryName(CA) = %q, %v", name, ok)
	}
	if _, ok := dir.CountryName("ZZ"); ok {
		t.Error("CountryName(ZZ) should miss")
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testDirectory(t))

	tests := []struct {
		name          string
		profile       types.Profile
		wantCountries []string
		wantSource    types.CountrySource
	}{
		{
			name: "education match",
			profile: types.Profile{
				Education: []types.EducationEntry{{Institution: "University of Toronto"}},
			},
			wantCountries: []string{"CA"},
			wantSource:    types.SourceEducation,
		},
		{
			name: "public provider contributes nothing",
			profile: types.Profile{
				AllEmails: []string{"user@gmail.com"},
			},
			wantCountries: nil,
			wantSource:    types.SourceNone,
		},
		{
			name: "email directory match",
			profile: types.Profile{
				AllEmails: []string{"user@cs.stanford.edu"},
			},
			wantCountries: []string{"US"},
			wantSource:    types.SourceEmail,
		},
		{
			name: "TLD fallback for unknown institutional domain",
			profile: types.Profile{
				AllEmails: []string{"user@uni.de"},
			},
			wantCountries: []string{"DE"},
			wantSource:    types.SourceEmail,
		},
		{
			name: "signals union, multiple countries retained",
			profile: types.Profile{
				AllEmails: []string{"user@tsinghua.edu.cn", "u2@stanford.edu"},
				Education: []types.EducationEntry{{Institution: "University of Toronto"}},
			},
			wantCountries: []string{"CA", "CN", "US"},
			wantSource:    types.SourceEducation,
		},
		{
			name: "unmatched institution is dropped, not guessed",
			profile: types.Profile{
				Education: []types.EducationEntry{{Institution: "Invented College of Examples"}},
			},
			wantCountries: nil,
			wantSource:    types.SourceNone,
		},
		{
			name: "current country alone reports its own source",
			profile: types.Profile{
				CurrentCountry: "sg",
			},
			wantCountries: []string{"SG"},
			wantSource:    types.SourceCurrent,
		},
		{
			name: "education outranks current country",
			profile: types.Profile{
				CurrentCountry: "sg",
				Education:      []types.EducationEntry{{Institution: "University of Toronto"}},
			},
			wantCountries: []string{"CA", "SG"},
			wantSource:    types.SourceEducation,
		},
		{
			name: "email outranks current country",
			profile: types.Profile{
				CurrentCountry: "sg",
				AllEmails:      []string{"user@stanford.edu"},
			},
			wantCountries: []string{"SG", "US"},
			wantSource:    types.SourceEmail,
		},
		{
			name: "invalid current country ignored",
			profile: types.Profile{
				CurrentCountry: "Singapore",
			},
			wantCountries: nil,
			wantSource:    types.SourceNone,
		},
		{
			name:          "empty profile",
			profile:       types.Profile{},
			wantCountries: nil,
			wantSource:    types.SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.profile)
			if !reflect.DeepEqual(got.Countries, tt.wantCountries) {
				t.Errorf("Countries = %v, want %v", got.Countries, tt.wantCountries)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", got.Source, tt.wantSource)
			}
		})
	}
}
