// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pdiddy/authorlang/internal/dataset"
	"github.com/pdiddy/authorlang/pkg/types"
)

// emailSep joins multiple emails in one CSV cell.
const emailSep = "; "

// ProfileFields is the column order of the profile table artifact.
var ProfileFields = []string{
	"author_name", "profile_name", "profile_id",
	"email_primary", "all_emails",
	"current_position", "current_institution", "current_country",
	"education_background", "total_positions",
}

// ProfileToRow renders a profile as a table row. Education entries are
// embedded as JSON so the cell survives the round trip through CSV.
func ProfileToRow(p types.Profile) dataset.Row {
	row := dataset.Row{
		"author_name":         p.AuthorName,
		"profile_name":        p.ProfileName,
		"profile_id":          p.ProfileID,
		"email_primary":       p.PrimaryEmail,
		"all_emails":          strings.Join(p.AllEmails, emailSep),
		"current_position":    p.CurrentPosition,
		"current_institution": p.CurrentInstitution,
		"current_country":     p.CurrentCountry,
		"total_positions":     strconv.Itoa(p.TotalPositions),
	}
	if len(p.Education) > 0 {
		data, err := json.Marshal(p.Education)
		if err == nil {
			row["education_background"] = string(data)
		}
	} else {
		row["education_background"] = ""
	}
	return row
}

// RowToProfile parses a table row back into a profile. Malformed
// education cells degrade to no entries, matching the "no signal, not an
// error" policy for downstream resolution.
func RowToProfile(row dataset.Row) types.Profile {
	p := types.Profile{
		AuthorName:         row["author_name"],
		ProfileName:        row["profile_name"],
		ProfileID:          row["profile_id"],
		PrimaryEmail:       row["email_primary"],
		CurrentPosition:    row["current_position"],
		CurrentInstitution: row["current_institution"],
		CurrentCountry:     row["current_country"],
	}
	if cell := strings.TrimSpace(row["all_emails"]); cell != "" {
		for _, email := range strings.Split(cell, ";") {
			if email = strings.TrimSpace(email); email != "" {
				p.AllEmails = append(p.AllEmails, email)
			}
		}
	}
	if cell := strings.TrimSpace(row["education_background"]); cell != "" {
		json.Unmarshal([]byte(cell), &p.Education)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(row["total_positions"])); err == nil {
		p.TotalPositions = n
	}
	return p
}

// Export writes every checkpointed profile to the CSV artifact consumed
// by the label stage.
func Export(ctx context.Context, store *Store, path string) (int, error) {
	records, err := store.All(ctx)
	if err != nil {
		return 0, err
	}

	tbl := &dataset.Table{Fields: ProfileFields}
	for _, rec := range records {
		tbl.Rows = append(tbl.Rows, ProfileToRow(rec.Profile))
	}
	if err := dataset.WriteCSV(path, tbl); err != nil {
		return 0, err
	}
	return len(tbl.Rows), nil
}
