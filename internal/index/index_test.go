package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestAdd_FillsRunIDAndTime(t *testing.T) {
	idx := openTemp(t)

	e, err := idx.Add(Entry{InputHash: "abc", InputPath: "input.txt", Deltas: 5, PartOne: 1, PartTwo: 14, Steps: 13, Passes: 3})
	require.NoError(t, err)

	_, err = uuid.Parse(e.RunID)
	assert.NoError(t, err, "RunID should be a UUID")
	assert.False(t, e.CreatedAt.IsZero())
}

func TestLookup_RoundTrip(t *testing.T) {
	idx := openTemp(t)
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	want := Entry{
		RunID:     "run-1",
		InputHash: "abc",
		InputPath: "/tmp/input.txt",
		Deltas:    5,
		PartOne:   1,
		PartTwo:   14,
		Steps:     13,
		Passes:    3,
		CreatedAt: created,
	}
	_, err := idx.Add(want)
	require.NoError(t, err)

	got, ok, err := idx.Lookup("abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestLookup_Missing(t *testing.T) {
	idx := openTemp(t)

	_, ok, err := idx.Lookup("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookup_NewestWins(t *testing.T) {
	idx := openTemp(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	_, err := idx.Add(Entry{RunID: "old", InputHash: "h", PartOne: 1, CreatedAt: base})
	require.NoError(t, err)
	_, err = idx.Add(Entry{RunID: "new", InputHash: "h", PartOne: 2, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	got, ok, err := idx.Lookup("h")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.RunID)
}

func TestList(t *testing.T) {
	idx := openTemp(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		_, err := idx.Add(Entry{RunID: id, InputHash: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	all, err := idx.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].RunID, all[1].RunID, all[2].RunID})

	top, err := idx.List(2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOpen_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	idx, err := Open(path)
	require.NoError(t, err)
	_, err = idx.Add(Entry{RunID: "keep", InputHash: "h"})
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, path, reopened.Path())
	_, ok, err := reopened.Lookup("h")
	require.NoError(t, err)
	assert.True(t, ok)
}
