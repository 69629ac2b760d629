// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/authorlang/pkg/types"
)

// Summary holds the outcome of a fetch run.
type Summary struct {
	Authors  int `yaml:"authors"`
	Skipped  int `yaml:"skipped"`
	Resolved int `yaml:"resolved"`
	Empty    int `yaml:"empty"`
	Failed   int `yaml:"failed"`
}

// Fetched returns the number of authors processed this run.
func (s Summary) Fetched() int {
	return s.Resolved + s.Empty + s.Failed
}

const defaultSaveInterval = 10

// Run fetches a profile for every author not yet checkpointed. Service
// errors degrade the affected record to a failed (empty) profile rather
// than aborting the batch; only checkpoint write failures are fatal,
// since continuing would lose work silently. A zero SaveInterval falls
// back to the default; a crash loses at most one interval of work.
func Run(ctx context.Context, client *Client, store *Store, authors []string, cfg types.FetchConfig, w io.Writer) (Summary, error) {
	saveInterval := cfg.SaveInterval
	if saveInterval <= 0 {
		saveInterval = defaultSaveInterval
	}

	done, err := store.FetchedNames(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Authors: len(authors)}
	var batch []StoredProfile

	// The cancellation paths flush with a fresh context: the whole point
	// of the final commit is that it must outlive the canceled one.
	flush := func(ctx context.Context) error {
		if err := store.PutBatch(ctx, batch); err != nil {
			return fmt.Errorf("committing checkpoint: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	first := true
	for _, name := range authors {
		if done[name] {
			summary.Skipped++
			continue
		}

		select {
		case <-ctx.Done():
			// Commit what we have so the next run resumes here.
			if flushErr := flush(context.Background()); flushErr != nil {
				return summary, flushErr
			}
			return summary, ctx.Err()
		default:
		}

		if !first && cfg.RequestDelay > 0 {
			select {
			case <-time.After(cfg.RequestDelay):
			case <-ctx.Done():
				if flushErr := flush(context.Background()); flushErr != nil {
					return summary, flushErr
				}
				return summary, ctx.Err()
			}
		}
		first = false

		rec := StoredProfile{FetchedAt: time.Now()}
		profile, found, err := client.SearchProfile(ctx, name)
		rec.Profile = profile
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			rec.Status = StatusFailed
			summary.Failed++
		case !found:
			rec.Status = StatusEmpty
			summary.Empty++
		default:
			rec.Status = StatusResolved
			summary.Resolved++
		}

		batch = append(batch, rec)
		if len(batch) >= saveInterval {
			if err := flush(ctx); err != nil {
				return summary, err
			}
		}

		if n := summary.Fetched(); n%100 == 0 {
			fmt.Fprintf(w, "fetched %d/%d (resolved %d, empty %d, failed %d)\n",
				n, len(authors)-summary.Skipped, summary.Resolved, summary.Empty, summary.Failed)
		}
	}

	if err := flush(ctx); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "\nFetch summary: %d authors, %d already checkpointed, %d resolved, %d empty, %d failed\n",
		summary.Authors, summary.Skipped, summary.Resolved, summary.Empty, summary.Failed)
	return summary, nil
}

// summaryFile is the on-disk YAML form of a fetch run summary.
type summaryFile struct {
	Summary   Summary   `yaml:"summary"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteSummary saves the run summary next to the other artifacts.
func WriteSummary(path string, s Summary) error {
	data, err := yaml.Marshal(&summaryFile{Summary: s, Timestamp: time.Now()})
	if err != nil {
		return fmt.Errorf("marshaling fetch summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSummary loads a previously written run summary.
func ReadSummary(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading fetch summary: %w", err)
	}
	var sf summaryFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return Summary{}, fmt.Errorf("parsing fetch summary: %w", err)
	}
	return sf.Summary, nil
}
