package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suykerbuyk/chronal/internal/config"
	"github.com/suykerbuyk/chronal/internal/delta"
	"github.com/suykerbuyk/chronal/internal/frequency"
	"github.com/suykerbuyk/chronal/internal/index"
	"github.com/suykerbuyk/chronal/internal/solve"
)

const sample = "+7\n+7\n-2\n-7\n-4\n"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()
	return cfg
}

func TestProcess_FreshThenCached(t *testing.T) {
	cfg := testConfig(t)

	first, err := Process("input.txt", []byte(sample), cfg, Options{}, nil)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, solve.Answer{PartOne: 1, PartTwo: 14, Deltas: 5, Steps: 13, Passes: 3}, first.Answer)
	assert.NotEmpty(t, first.RunID)
	assert.FileExists(t, first.ArchivePath)

	second, err := Process("copy.txt", []byte(sample), cfg, Options{}, nil)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, first.Answer, second.Answer)

	idx, err := index.Open(cfg.HistoryPath())
	require.NoError(t, err)
	defer idx.Close()
	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestProcess_Force(t *testing.T) {
	cfg := testConfig(t)

	first, err := Process("input.txt", []byte(sample), cfg, Options{}, nil)
	require.NoError(t, err)

	again, err := Process("input.txt", []byte(sample), cfg, Options{Force: true}, nil)
	require.NoError(t, err)
	assert.False(t, again.Cached)
	assert.NotEqual(t, first.RunID, again.RunID)
}

func TestProcess_HistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false
	cfg.Archive.Compress = false

	res, err := Process("input.txt", []byte(sample), cfg, Options{}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.RunID)
	assert.Empty(t, res.ArchivePath)

	_, statErr := os.Stat(cfg.HistoryPath())
	assert.True(t, os.IsNotExist(statErr), "history.db should not be created")
	_, statErr = os.Stat(cfg.ArchiveDir())
	assert.True(t, os.IsNotExist(statErr), "archive dir should not be created")
}

func TestProcess_Malformed(t *testing.T) {
	cfg := testConfig(t)

	res, err := Process("bad.txt", []byte("+1\nx5\n"), cfg, Options{}, nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, delta.ErrMalformedLine)
	assert.Contains(t, err.Error(), "bad.txt")

	// Failed runs leave no trace
	idx, err := index.Open(cfg.HistoryPath())
	require.NoError(t, err)
	defer idx.Close()
	n, err := idx.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcess_Empty(t *testing.T) {
	_, err := Process("empty.txt", nil, testConfig(t), Options{}, nil)
	assert.ErrorIs(t, err, solve.ErrEmptyInput)
}

func TestProcess_MaxSteps(t *testing.T) {
	cfg := testConfig(t)
	cfg.Detect.MaxSteps = 5

	_, err := Process("input.txt", []byte(sample), cfg, Options{}, nil)
	assert.ErrorIs(t, err, frequency.ErrNoRepeat)

	res, err := Process("input.txt", []byte(sample), cfg, Options{MaxSteps: 100}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(14), res.Answer.PartTwo)
}

func TestProcess_CachedAnswerRespectsCap(t *testing.T) {
	cfg := testConfig(t)

	// Needs 13 steps to repeat.
	first, err := Process("input.txt", []byte(sample), cfg, Options{}, nil)
	require.NoError(t, err)
	require.Equal(t, 13, first.Answer.Steps)

	_, err = Process("input.txt", []byte(sample), cfg, Options{MaxSteps: 5}, nil)
	assert.ErrorIs(t, err, frequency.ErrNoRepeat)

	cfg.Detect.MaxSteps = 12
	_, err = Process("input.txt", []byte(sample), cfg, Options{}, nil)
	assert.ErrorIs(t, err, frequency.ErrNoRepeat)

	// A cap the cached run fits within still hits the cache.
	res, err := Process("input.txt", []byte(sample), cfg, Options{MaxSteps: 13}, nil)
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, int64(14), res.Answer.PartTwo)
}

func TestProcess_UnwritableStateDegrades(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(cfg.StateDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))
	cfg.StateDir = blocker

	res, err := Process("input.txt", []byte(sample), cfg, Options{}, nil)
	require.NoError(t, err, "history and archive failures are warnings")
	assert.Equal(t, int64(14), res.Answer.PartTwo)
	assert.Empty(t, res.RunID)
	assert.Empty(t, res.ArchivePath)
}
