package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/render/sink"
)

func TestParseFormats(t *testing.T) {
	got, err := parseFormats("")
	require.NoError(t, err)
	assert.Equal(t, []sink.Format{sink.FormatPNG}, got)

	got, err = parseFormats("svg,PDF,svg")
	require.NoError(t, err)
	assert.Equal(t, []sink.Format{sink.FormatSVG, sink.FormatPDF}, got)

	_, err = parseFormats("png,gif")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"poster.png", "poster"},
		{"out/poster.svg", "out/poster"},
		{"poster", "poster"},
		{"poster.v2", "poster.v2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, basePath(tt.in), tt.in)
	}
}

func TestOutputPaths(t *testing.T) {
	both := []sink.Format{sink.FormatPNG, sink.FormatSVG}

	assert.Equal(t, map[sink.Format]string{
		sink.FormatPNG: "pastel_stars.png",
		sink.FormatSVG: "pastel_stars.svg",
	}, outputPaths("", both, false))

	assert.Equal(t, map[sink.Format]string{
		sink.FormatPNG: "generative_star_poster.png",
	}, outputPaths("", []sink.Format{sink.FormatPNG}, true))

	assert.Equal(t, map[sink.Format]string{
		sink.FormatPDF: "my.file",
	}, outputPaths("my.file", []sink.Format{sink.FormatPDF}, false))

	assert.Equal(t, map[sink.Format]string{
		sink.FormatPNG: "out/poster.png",
		sink.FormatSVG: "out/poster.svg",
	}, outputPaths("out/poster.png", both, false))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "a.txt")
	require.NoError(t, writeFile(path, []byte("hi")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	err = writeFile(dir+string(filepath.Separator), []byte("x"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "2.0 MiB", formatBytes(2<<20))
}

func TestPosterKind(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "pastel stars", posterKind(cfg))
	cfg.ShowText, cfg.Title = true, "Hi"
	assert.Equal(t, "star poster", posterKind(cfg))
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show", "--stars", "40", "--palette", "vivid")
	require.NoError(t, err)

	cfg, err := config.Decode([]byte(out), ".toml")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Stars)
	assert.Equal(t, "vivid", cfg.Palette)
	assert.Equal(t, config.DefaultSizeMax, cfg.SizeMax)
}

func TestConfigShowRejectsInvalid(t *testing.T) {
	_, err := execute(t, "config", "show", "--alpha-max", "2")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("starposter", "config.toml"))
}

func TestSeedAndRandomExclusive(t *testing.T) {
	_, err := execute(t, "config", "show", "--seed", "3", "--random")
	assert.Error(t, err)
}
