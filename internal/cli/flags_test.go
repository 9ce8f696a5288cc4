package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/errors"
)

func resolveArgs(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := &cobra.Command{Use: "test"}
	f := bindConfigFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	cfg, _, err := f.resolve()
	return cfg, err
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := resolveArgs(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveFlags(t *testing.T) {
	cfg, err := resolveArgs(t,
		"--stars", "3",
		"--points", "5,6",
		"--wobble-policy", "half",
		"--title", "Pastel Stars",
		"--seed", "7",
		"--no-vertices",
	)
	require.NoError(t, err)
	assert.True(t, cfg.NoVertices)
	assert.Equal(t, 3, cfg.Stars)
	assert.Equal(t, []int{5, 6}, cfg.Points)
	assert.Equal(t, "half", cfg.WobblePolicy)
	assert.True(t, cfg.ShowText, "--title implies --text")
	assert.Equal(t, "Pastel Stars", cfg.Title)
	assert.True(t, cfg.UseSeed)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestResolveFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.toml")
	require.NoError(t, os.WriteFile(path, []byte("stars = 20\npalette = \"vivid\"\nuse_seed = true\nseed = 9\n"), 0o644))

	cfg, err := resolveArgs(t, "--config", path, "--stars", "4")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Stars, "flag overrides file")
	assert.Equal(t, "vivid", cfg.Palette, "file overrides default")
	assert.True(t, cfg.UseSeed)

	cfg, err = resolveArgs(t, "--config", path, "--random")
	require.NoError(t, err)
	assert.False(t, cfg.UseSeed)
}

func TestResolveUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, "starposter")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("stars = 33\n"), 0o644))

	cmd := &cobra.Command{Use: "test"}
	f := bindConfigFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))
	cfg, from, err := f.resolve()
	require.NoError(t, err)
	assert.Equal(t, 33, cfg.Stars)
	assert.Equal(t, filepath.Join(dir, "config.toml"), from)
}

func TestResolveRejects(t *testing.T) {
	_, err := resolveArgs(t, "--points", "2")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = resolveArgs(t, "--width", "20", "--dpi", "1200")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "raster too large")

	_, err = resolveArgs(t, "--palette", "neon")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPalette))

	_, err = resolveArgs(t, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestFlagFieldsAreBound(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	bindConfigFlags(cmd)
	for _, field := range flagFields {
		assert.NotNil(t, cmd.Flags().Lookup(field.name), field.name)
	}
}
