// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Speaker is the tri-state English-speaker label attached to authors and
// papers. The numeric values are part of the output schema.
type Speaker int

const (
	SpeakerEnglish    Speaker = 1
	SpeakerNonEnglish Speaker = 0
	SpeakerUnknown    Speaker = -1
)

func (s Speaker) String() string {
	switch s {
	case SpeakerEnglish:
		return "english"
	case SpeakerNonEnglish:
		return "non_english"
	default:
		return "unknown"
	}
}

// EducationEntry is one position in a profile's education/employment
// history, oldest first as returned by the profile service.
type EducationEntry struct {
	// Institution is the free-text institution name.
	Institution string `json:"institution" yaml:"institution"`

	// Degree is the position or degree held (e.g. "PhD student").
	Degree string `json:"degree,omitempty" yaml:"degree,omitempty"`

	// Country is the institution country code when the service provides one.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	// StartYear and EndYear bound the entry; zero means unknown or ongoing.
	StartYear int `json:"start_year,omitempty" yaml:"start_year,omitempty"`
	EndYear   int `json:"end_year,omitempty" yaml:"end_year,omitempty"`
}

// Profile holds the public metadata fetched for one author. An author
// without a resolvable profile keeps the zero values for every field
// except AuthorName; such rows still appear in the profile table.
type Profile struct {
	// AuthorName is the queried author name, the join key for the pipeline.
	AuthorName string `json:"author_name" yaml:"author_name"`

	// ProfileID is the service-side identifier (e.g. "~Jane_Doe1").
	ProfileID string `json:"profile_id" yaml:"profile_id"`

	// ProfileName is the preferred display name registered on the profile.
	ProfileName string `json:"profile_name" yaml:"profile_name"`

	// PrimaryEmail is the first confirmed email, empty when none.
	PrimaryEmail string `json:"email_primary" yaml:"email_primary"`

	// AllEmails lists every email on the profile in service order.
	AllEmails []string `json:"all_emails" yaml:"all_emails"`

	// CurrentPosition, CurrentInstitution and CurrentCountry describe the
	// history entry with no end date, when one exists.
	CurrentPosition    string `json:"current_position" yaml:"current_position"`
	CurrentInstitution string `json:"current_institution" yaml:"current_institution"`
	CurrentCountry     string `json:"current_country" yaml:"current_country"`

	// Education lists the history entries that carry a position.
	Education []EducationEntry `json:"education_background" yaml:"education_background"`

	// TotalPositions counts every history entry on the profile, including
	// entries without a position that Education omits.
	TotalPositions int `json:"total_positions" yaml:"total_positions"`
}

// Empty reports whether the profile carries no fetched data.
func (p Profile) Empty() bool {
	return p.ProfileID == "" && len(p.AllEmails) == 0 && len(p.Education) == 0 &&
		p.CurrentInstitution == "" && p.CurrentCountry == ""
}

// CountrySource identifies which signal produced a candidate-country set.
type CountrySource string

const (
	SourceEducation CountrySource = "education"
	SourceEmail     CountrySource = "email"
	SourceCurrent   CountrySource = "current"
	SourceNone      CountrySource = "none"
)

// CountryLabel is the resolved candidate-country set for a profile.
// It is derived per run and never persisted on its own.
type CountryLabel struct {
	// Countries is the sorted set of candidate ISO alpha-2 codes.
	Countries []string

	// Source records the strongest contributing signal: education when any
	// education entry matched, else email, else the profile's own current
	// country, else none.
	Source CountrySource
}

// LanguageLabel pairs an author with the classifier outcome and the
// candidate countries that produced it.
type LanguageLabel struct {
	AuthorName string   `json:"author_name" yaml:"author_name"`
	Speaker    Speaker  `json:"english_speaker" yaml:"english_speaker"`
	Countries  []string `json:"education_countries,omitempty" yaml:"education_countries,omitempty"`
}
