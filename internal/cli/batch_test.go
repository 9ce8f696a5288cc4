package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/pipeline"
	"github.com/matzehuels/starposter/pkg/render/sink"
	"github.com/matzehuels/starposter/pkg/rng"
)

func quietRunner() *pipeline.Runner {
	return pipeline.NewRunner(log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel}))
}

func TestBatchSeeds(t *testing.T) {
	seeds, err := batchSeeds(10, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 11, 12}, seeds)

	_, err = batchSeeds(rng.MaxSeed, 2)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = batchSeeds(0, 0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestRandomStartLeavesRoom(t *testing.T) {
	for range 500 {
		start := randomStart(maxBatch)
		assert.LessOrEqual(t, start, uint64(rng.MaxSeed-maxBatch+1))
		_, err := batchSeeds(start, maxBatch)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, randomStart(1), uint64(rng.MaxSeed))
}

func TestVariantFilename(t *testing.T) {
	assert.Equal(t, "pastel_stars_42.png", variantFilename(sink.FormatPNG, false, 42))
	assert.Equal(t, "generative_star_poster_7.json", variantFilename(sink.FormatJSON, true, 7))
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Stars = 3

	var done atomic.Int32
	jobs, err := runBatch(context.Background(), quietRunner(), cfg,
		[]sink.Format{sink.FormatSVG, sink.FormatJSON}, []uint64{5, 6, 7},
		batchConfig{dir: dir, jobs: 2, done: func() { done.Add(1) }})
	require.NoError(t, err)

	require.Len(t, jobs, 3)
	assert.EqualValues(t, 3, done.Load())
	for i, seed := range []uint64{5, 6, 7} {
		assert.Equal(t, seed, jobs[i].seed)
		assert.Len(t, jobs[i].files, 2)
		assert.Positive(t, jobs[i].bytes)
	}
	for _, name := range []string{"pastel_stars_5.svg", "pastel_stars_6.json", "pastel_stars_7.svg"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunBatchReproducible(t *testing.T) {
	cfg := config.Default()
	cfg.Stars = 4
	formats := []sink.Format{sink.FormatJSON}

	fingerprint := func(dir string) string {
		_, err := runBatch(context.Background(), quietRunner(), cfg, formats, []uint64{11}, batchConfig{dir: dir, jobs: 1})
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "pastel_stars_11.json"))
		require.NoError(t, err)
		var manifest struct {
			Seed        uint64 `json:"seed"`
			Fingerprint string `json:"fingerprint"`
		}
		require.NoError(t, json.Unmarshal(data, &manifest))
		assert.Equal(t, uint64(11), manifest.Seed)
		return manifest.Fingerprint
	}
	assert.Equal(t, fingerprint(t.TempDir()), fingerprint(t.TempDir()))
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runBatch(ctx, quietRunner(), config.Default(), []sink.Format{sink.FormatJSON},
		[]uint64{1, 2, 3}, batchConfig{dir: t.TempDir(), jobs: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
