// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package label

import (
	"strings"

	"github.com/pdiddy/authorlang/internal/geo"
	"github.com/pdiddy/authorlang/pkg/types"
)

// Classifier maps resolved country codes to a speaker label. The exempt
// set is built once by joining the directory's country names against the
// TOEFL requirement table.
type Classifier struct {
	exempt map[string]bool
}

// NewClassifier joins the directory's code-to-name table with the TOEFL
// requirements. Codes whose country name is marked exempt classify as
// English-speaking.
func NewClassifier(dir *geo.Directory, requirements map[string]string) *Classifier {
	exempt := make(map[string]bool)
	for code, name := range dir.Countries() {
		req, ok := requirements[strings.ToLower(name)]
		if ok && Exempt(req) {
			exempt[code] = true
		}
	}
	return &Classifier{exempt: exempt}
}

// ExemptCodes reports how many country codes classify as exempt.
func (c *Classifier) ExemptCodes() int {
	return len(c.exempt)
}

// Classify labels a set of candidate country codes. No candidates means
// no signal, and any exempt candidate wins: an author with both exempt
// and non-exempt affiliations counts as an English speaker.
func (c *Classifier) Classify(countries []string) types.Speaker {
	if len(countries) == 0 {
		return types.SpeakerUnknown
	}
	for _, code := range countries {
		if c.exempt[strings.ToUpper(code)] {
			return types.SpeakerEnglish
		}
	}
	return types.SpeakerNonEnglish
}
