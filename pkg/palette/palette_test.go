package palette

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/rng"
)

const tol = 1e-9

func TestGenerate_PastelSeededReproducible(t *testing.T) {
	a, err := Generate(6, Pastel, rng.New(42))
	require.NoError(t, err)
	b, err := Generate(6, Pastel, rng.New(42))
	require.NoError(t, err)

	require.Len(t, a, 6)
	assert.Equal(t, a.Hex(), b.Hex())
	assert.Equal(t, a, b)
}

func TestGenerate_ModeRanges(t *testing.T) {
	for _, mode := range []Mode{Pastel, Vivid, Mixed} {
		t.Run(string(mode), func(t *testing.T) {
			sat, ok := mode.SaturationRange()
			require.True(t, ok)
			val, ok := mode.ValueRange()
			require.True(t, ok)

			p, err := Generate(200, mode, rng.New(7))
			require.NoError(t, err)
			for i, c := range p {
				h, s, v := c.HSV()
				assert.True(t, h >= 0 && h < 1, "color %d hue %v", i, h)
				assert.True(t, sat.Contains(s, tol), "color %d saturation %v outside %v", i, s, sat)
				assert.True(t, val.Contains(v, tol), "color %d value %v outside %v", i, v, val)
			}
		})
	}
}

func TestGenerate_Fixed(t *testing.T) {
	r := rng.New(1)
	before := rng.New(1).Uint64()

	p, err := Generate(8, Fixed, r)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"#ffb3ba", "#ffdfba", "#ffffba", "#baffc9", "#bae1ff", "#e2baff", "#ffb3ba", "#ffdfba",
	}, p.Hex())
	assert.Equal(t, before, r.Uint64(), "fixed mode must not consume draws")

	_, err = Generate(3, Fixed, nil)
	assert.NoError(t, err)
}

func TestGenerate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		k    int
		mode Mode
		code errors.Code
	}{
		{"zero size", 0, Pastel, errors.ErrCodeInvalidConfig},
		{"too large", MaxSize + 1, Pastel, errors.ErrCodeInvalidConfig},
		{"unknown mode", 6, Mode("neon"), errors.ErrCodeInvalidPalette},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.k, tt.mode, rng.New(1))
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}

	_, err := Generate(6, Vivid, nil)
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("Pastel")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPalette))
}

func TestModeNext(t *testing.T) {
	assert.Equal(t, Vivid, Pastel.Next())
	assert.Equal(t, Pastel, Fixed.Next())
}

func TestPick(t *testing.T) {
	p, err := Generate(6, Fixed, nil)
	require.NoError(t, err)

	r := rng.New(3)
	seen := map[string]bool{}
	for range 500 {
		seen[p.Pick(r).Hex()] = true
	}
	assert.Len(t, seen, 6)
}

func TestColorHexRoundTrip(t *testing.T) {
	c, err := ParseHex("#BAE1FF")
	require.NoError(t, err)
	assert.Equal(t, "#bae1ff", c.Hex())

	_, err = ParseHex("blue")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	data, err := json.Marshal(struct{ C Color }{c})
	require.NoError(t, err)
	assert.JSONEq(t, `{"C":"#bae1ff"}`, string(data))
}

func TestColorNRGBA(t *testing.T) {
	c, err := ParseHex("#ff0000")
	require.NoError(t, err)

	n := c.NRGBA(0.8)
	assert.Equal(t, uint8(255), n.R)
	assert.Equal(t, uint8(0), n.G)
	assert.Equal(t, uint8(204), n.A)
	assert.True(t, c.Finite())
}
