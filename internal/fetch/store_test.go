// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/authorlang/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	batch := []StoredProfile{
		{
			Profile: types.Profile{
				AuthorName:         "Jane Doe",
				ProfileID:          "~Jane_Doe1",
				ProfileName:        "Jane Doe",
				PrimaryEmail:       "jane@cs.toronto.edu",
				AllEmails:          []string{"jane@cs.toronto.edu", "jane.doe@gmail.com"},
				CurrentPosition:    "Assistant Professor",
				CurrentInstitution: "University of Toronto",
				CurrentCountry:     "CA",
				Education: []types.EducationEntry{
					{Institution: "MIT", Degree: "PhD student", StartYear: 2016, EndYear: 2022},
				},
				TotalPositions: 3,
			},
			Status:    StatusResolved,
			FetchedAt: time.Now(),
		},
		{
			Profile: types.Profile{AuthorName: "Nobody Anywhere"},
			Status:  StatusEmpty,
		},
	}
	require.NoError(t, s.PutBatch(ctx, batch))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, batch[0].Profile, all[0].Profile)
	assert.Equal(t, StatusResolved, all[0].Status)
	assert.False(t, all[0].FetchedAt.IsZero())

	assert.Equal(t, "Nobody Anywhere", all[1].AuthorName)
	assert.Equal(t, StatusEmpty, all[1].Status)
	assert.Empty(t, all[1].Education)
}

func TestStoreFetchedNames(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	names, err := s.FetchedNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.PutBatch(ctx, []StoredProfile{
		{Profile: types.Profile{AuthorName: "Jane Doe"}, Status: StatusResolved},
		{Profile: types.Profile{AuthorName: "John Smith"}, Status: StatusFailed},
	}))

	names, err = s.FetchedNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Jane Doe": true, "John Smith": true}, names)
}

func TestStorePutBatchReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.PutBatch(ctx, []StoredProfile{
		{Profile: types.Profile{AuthorName: "Jane Doe"}, Status: StatusFailed},
	}))
	require.NoError(t, s.PutBatch(ctx, []StoredProfile{
		{Profile: types.Profile{AuthorName: "Jane Doe", ProfileID: "~Jane_Doe1"}, Status: StatusResolved},
	}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, StatusResolved, all[0].Status)
	assert.Equal(t, "~Jane_Doe1", all[0].ProfileID)
}

func TestStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profiles.db")

	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.PutBatch(ctx, []StoredProfile{
		{Profile: types.Profile{AuthorName: "Jane Doe"}, Status: StatusResolved},
	}))
	require.NoError(t, s.Close())

	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()

	names, err := s.FetchedNames(ctx)
	require.NoError(t, err)
	assert.True(t, names["Jane Doe"])
}
