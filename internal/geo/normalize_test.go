// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geo

import "testing"

func TestNormalizeInstitution(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Stanford University", "stanford university"},
		{"extra whitespace", "  Stanford   University ", "stanford university"},
		{"punctuation", "University of California, Berkeley", "university of california berkeley"},
		{"diacritics", "Universität Tübingen", "universitat tubingen"},
		{"accented", "École Polytechnique Fédérale de Lausanne", "ecole polytechnique federale de lausanne"},
		{"campus qualifier", "National University of Singapore, Kent Ridge Campus", "national university of singapore"},
		{"campus qualifier keeps other commas", "University of Illinois, Urbana-Champaign", "university of illinois urbana champaign"},
		{"hyphen splits words", "Carnegie-Mellon University", "carnegie mellon university"},
		{"empty", "", ""},
		{"only punctuation", "...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeInstitution(tt.in); got != tt.want {
				t.Errorf("NormalizeInstitution(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	if got := NormalizeDomain("  CS.Stanford.EDU "); got != "cs.stanford.edu" {
		t.Errorf("NormalizeDomain = %q", got)
	}
}

func TestCountryFromTLD(t *testing.T) {
	tests := []struct {
		domain string
		want   string
		ok     bool
	}{
		{"uni.de", "DE", true},
		{"example.ac.uk", "GB", true},
		{"tsinghua.edu.cn", "CN", true},
		{"example.com", "", false},
		{"example.org", "", false},
		{"example.edu", "", false},
		{"example.net", "", false},
		{"nodots", "", false},
		{"trailing.", "", false},
	}
	for _, tt := range tests {
		got, ok := CountryFromTLD(tt.domain)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CountryFromTLD(%q) = %q, %v; want %q, %v", tt.domain, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractDomains(t *testing.T) {
	emails := []string{
		"jane@cs.stanford.edu",
		"jane.doe@gmail.com",
		"jane@cs.stanford.edu", // duplicate
		"not-an-email",
		"j@uni-tuebingen.de",
	}
	got := ExtractDomains(emails)
	want := []string{"cs.stanford.edu", "gmail.com", "uni-tuebingen.de"}
	if len(got) != len(want) {
		t.Fatalf("ExtractDomains = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("domain %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterDomains(t *testing.T) {
	in := []string{"gmail.com", "stanford.edu", "qq.com", "163.com", "mit.edu"}
	got := FilterDomains(in)
	want := []string{"stanford.edu", "mit.edu"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("FilterDomains = %v, want %v", got, want)
	}
}
