// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geo

import "strings"

// tldToCountry maps country-code TLDs to ISO alpha-2 codes. Generic TLDs
// (.com, .org, .edu, .net) are deliberately absent: they resolve to no
// country.
var tldToCountry = map[string]string{
	"cn": "CN", "in": "IN", "uk": "GB", "ca": "CA", "au": "AU",
	"de": "DE", "fr": "FR", "jp": "JP", "kr": "KR", "sg": "SG",
	"hk": "HK", "tw": "TW", "my": "MY", "th": "TH", "ph": "PH",
	"id": "ID", "vn": "VN", "bd": "BD", "pk": "PK", "lk": "LK",
	"np": "NP", "mm": "MM", "kh": "KH", "la": "LA", "bn": "BN",
	"mx": "MX", "br": "BR", "ar": "AR", "cl": "CL", "co": "CO",
	"pe": "PE", "ve": "VE", "ec": "EC", "uy": "UY", "py": "PY",
	"bo": "BO", "za": "ZA", "ng": "NG", "ke": "KE", "eg": "EG",
	"ma": "MA", "tn": "TN", "dz": "DZ", "ru": "RU", "ua": "UA",
	"by": "BY", "kz": "KZ", "uz": "UZ", "kg": "KG", "tj": "TJ",
	"tm": "TM", "af": "AF", "ir": "IR", "iq": "IQ", "sy": "SY",
	"lb": "LB", "jo": "JO", "il": "IL", "ps": "PS", "sa": "SA",
	"ae": "AE", "qa": "QA", "kw": "KW", "bh": "BH", "om": "OM",
	"ye": "YE", "tr": "TR", "cy": "CY", "gr": "GR", "bg": "BG",
	"ro": "RO", "md": "MD", "hu": "HU", "sk": "SK", "cz": "CZ",
	"pl": "PL", "lt": "LT", "lv": "LV", "ee": "EE", "fi": "FI",
	"se": "SE", "no": "NO", "dk": "DK", "is": "IS", "ie": "IE",
	"pt": "PT", "es": "ES", "it": "IT", "ch": "CH", "at": "AT",
	"be": "BE", "nl": "NL", "lu": "LU", "nz": "NZ",
}

// CountryFromTLD infers a country code from a domain's top-level suffix.
// It reports false for generic and unknown TLDs.
func CountryFromTLD(domain string) (string, bool) {
	domain = NormalizeDomain(domain)
	idx := strings.LastIndex(domain, ".")
	if idx < 0 || idx == len(domain)-1 {
		return "", false
	}
	code, ok := tldToCountry[domain[idx+1:]]
	return code, ok
}
