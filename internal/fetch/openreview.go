// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/authorlang/internal/extract"
	"github.com/pdiddy/authorlang/internal/httputil"
	"github.com/pdiddy/authorlang/pkg/types"
)

// openReviewAPIBase is the OpenReview profile search endpoint. Declared
// as a var so tests can substitute an httptest server.
var openReviewAPIBase = "https://api2.openreview.net"

// Client queries the OpenReview profile service.
type Client struct {
	HTTP *http.Client

	// UserAgent is sent on every request.
	UserAgent string

	// Token is an optional bearer token for authenticated access.
	Token string

	// MaxRetries bounds retries on 429/5xx responses (0 uses the
	// httputil default).
	MaxRetries int
}

// NewClient builds a service client from the fetch configuration.
func NewClient(cfg types.FetchConfig) *Client {
	return &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		UserAgent:  cfg.UserAgent,
		Token:      cfg.Token,
		MaxRetries: cfg.MaxRetries,
	}
}

// SearchProfile looks up an author by full name and returns the selected
// profile converted to the pipeline's Profile shape. A name with no
// profile returns (Profile{AuthorName: name}, false, nil): not found is
// not an error.
func (c *Client) SearchProfile(ctx context.Context, name string) (types.Profile, bool, error) {
	empty := types.Profile{AuthorName: name}

	params := url.Values{"fullname": {name}, "es": {"true"}}
	reqURL := openReviewAPIBase + "/profiles/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return empty, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		return empty, false, fmt.Errorf("profile search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return empty, false, fmt.Errorf("profile search returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return empty, false, fmt.Errorf("parsing profile search response: %w", err)
	}

	if len(sr.Profiles) == 0 {
		return empty, false, nil
	}
	return convertProfile(name, pickProfile(name, sr.Profiles)), true, nil
}

// pickProfile applies the tie-break for ambiguous searches: the first
// profile whose preferred or registered name equals the queried name
// after case/whitespace normalization wins; otherwise the first result
// as ranked by the service.
func pickProfile(name string, profiles []orProfile) orProfile {
	key := extract.NormalizeName(name)
	for _, p := range profiles {
		for _, n := range p.Content.Names {
			if extract.NormalizeName(n.Fullname) == key {
				return p
			}
		}
	}
	return profiles[0]
}

// convertProfile maps the service's profile shape onto types.Profile.
func convertProfile(name string, p orProfile) types.Profile {
	out := types.Profile{
		AuthorName:     name,
		ProfileID:      p.ID,
		ProfileName:    preferredName(p),
		TotalPositions: len(p.Content.History),
	}

	// Confirmed emails are more trustworthy; fall back to the full list.
	emails := p.Content.EmailsConfirmed
	if len(emails) == 0 {
		emails = p.Content.Emails
	}
	out.AllEmails = emails
	if len(emails) > 0 {
		out.PrimaryEmail = emails[0]
	}

	for _, h := range p.Content.History {
		if h.End == nil {
			out.CurrentPosition = h.Position
			out.CurrentInstitution = h.Institution.Name
			out.CurrentCountry = h.Institution.Country
			break
		}
	}

	for _, h := range p.Content.History {
		if h.Position == "" {
			continue
		}
		entry := types.EducationEntry{
			Institution: h.Institution.Name,
			Degree:      h.Position,
			Country:     h.Institution.Country,
		}
		if h.Start != nil {
			entry.StartYear = *h.Start
		}
		if h.End != nil {
			entry.EndYear = *h.End
		}
		out.Education = append(out.Education, entry)
	}
	return out
}

func preferredName(p orProfile) string {
	for _, n := range p.Content.Names {
		if n.Preferred && n.Fullname != "" {
			return n.Fullname
		}
	}
	for _, n := range p.Content.Names {
		if n.Fullname != "" {
			return n.Fullname
		}
	}
	return strings.TrimPrefix(p.ID, "~")
}

// OpenReview API JSON structures.
type searchResponse struct {
	Profiles []orProfile `json:"profiles"`
	Count    int         `json:"count"`
}

type orProfile struct {
	ID      string    `json:"id"`
	Content orContent `json:"content"`
}

type orContent struct {
	Names           []orName    `json:"names"`
	Emails          []string    `json:"emails"`
	EmailsConfirmed []string    `json:"emailsConfirmed"`
	History         []orHistory `json:"history"`
}

type orName struct {
	Fullname  string `json:"fullname"`
	Preferred bool   `json:"preferred"`
}

type orHistory struct {
	Position    string        `json:"position"`
	Start       *int          `json:"start"`
	End         *int          `json:"end"`
	Institution orInstitution `json:"institution"`
}

type orInstitution struct {
	Domain  string `json:"domain"`
	Name    string `json:"name"`
	Country string `json:"country"`
}
