package scene

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/geom"
	"github.com/matzehuels/starposter/pkg/palette"
	"github.com/matzehuels/starposter/pkg/rng"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Stars = 3
	cfg.SizeMin, cfg.SizeMax = 0.3, 0.3
	cfg.WobbleMin, cfg.WobbleMax = 0, 0
	cfg.UseSeed, cfg.Seed = true, 7
	return cfg
}

func TestComposeRegularStars(t *testing.T) {
	cfg := smallConfig()
	s, err := Compose(cfg, rng.New(cfg.Seed))
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, uint64(7), s.Seed())
	assert.Equal(t, geom.WobbleFull, s.WobblePolicy())

	fixed, err := palette.Generate(palette.DefaultSize, palette.Fixed, nil)
	require.NoError(t, err)
	assert.Equal(t, fixed, s.Palette())

	area := cfg.Bounds().Inset(cfg.Margin)
	for i, sh := range s.Shapes() {
		require.Len(t, sh.Polygon, 11, "shape %d", i)
		assert.True(t, sh.Polygon.Closed())
		assert.True(t, area.Contains(sh.Center), "center %v outside %v", sh.Center, area)
		assert.Contains(t, fixed, sh.Color)
		assert.Equal(t, 0.8, sh.Alpha)
		assert.Equal(t, 5, sh.Points)

		for k, p := range sh.Polygon[:10] {
			want := 0.3
			if k%2 == 1 {
				want = 0.3 * config.DefaultInnerRatio
			}
			assert.InDelta(t, want, p.Dist(sh.Center), 1e-9, "shape %d vertex %d", i, k)
		}
	}
	assert.Empty(t, s.Texts())
}

func TestComposeDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Palette = "pastel"
	cfg.Points = []int{5, 6, 7}

	a, err := Compose(cfg, rng.New(42))
	require.NoError(t, err)
	b, err := Compose(cfg, rng.New(42))
	require.NoError(t, err)
	c, err := Compose(cfg, rng.New(43))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Shapes(), b.Shapes())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestComposeZeroStars(t *testing.T) {
	cfg := config.Default()
	cfg.Stars = 0
	s, err := Compose(cfg, rng.New(1))
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	assert.Equal(t, palette.White, s.Background())
}

func TestComposeWobbleBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Stars = 50
	cfg.SizeMin, cfg.SizeMax = 0.5, 0.5
	cfg.WobbleMin, cfg.WobbleMax = 0.1, 0.1

	for _, policy := range []string{"full", "half"} {
		cfg.WobblePolicy = policy
		slack := 0.1
		if policy == "half" {
			slack = 0.05
		}

		s, err := Compose(cfg, rng.New(3))
		require.NoError(t, err)
		for _, sh := range s.Shapes() {
			for k, p := range sh.Polygon {
				r := 0.5
				if k%2 == 1 {
					r = 0.5 * config.DefaultInnerRatio
				}
				d := p.Dist(sh.Center)
				assert.GreaterOrEqual(t, d, r*(1-slack)-1e-9, "policy %s", policy)
				assert.LessOrEqual(t, d, r*(1+slack)+1e-9, "policy %s", policy)
			}
		}
	}
}

func TestComposePointChoices(t *testing.T) {
	cfg := config.Default()
	cfg.Stars = 200
	cfg.Points = []int{4, 8}

	s, err := Compose(cfg, rng.New(11))
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, sh := range s.Shapes() {
		seen[sh.Points] = true
		assert.Len(t, sh.Polygon, 2*sh.Points+1)
	}
	assert.Equal(t, map[int]bool{4: true, 8: true}, seen)
}

func TestComposeText(t *testing.T) {
	cfg := smallConfig()
	cfg.ShowText = true
	cfg.Title = "Pastel Stars"

	s, err := Compose(cfg, rng.New(cfg.Seed))
	require.NoError(t, err)

	// empty subtitle is skipped
	require.Len(t, s.Texts(), 1)
	title := s.Texts()[0]
	assert.Equal(t, "Pastel Stars", title.Content)
	assert.True(t, title.Bold)
	assert.Equal(t, TitleY, title.RelY)

	plain, err := Compose(smallConfig(), rng.New(cfg.Seed))
	require.NoError(t, err)
	assert.Equal(t, plain.Shapes(), s.Shapes(), "overlay must not change geometry")
	assert.NotEqual(t, plain.Fingerprint(), s.Fingerprint())
}

func TestComposeRejects(t *testing.T) {
	_, err := Compose(config.Default(), nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	cfg := config.Default()
	cfg.Points = []int{2}
	_, err = Compose(cfg, rng.New(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)

	cfg = config.Default()
	cfg.Background = "nope"
	_, err = Compose(cfg, rng.New(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestBuilderRejectsBadShapes(t *testing.T) {
	b, err := NewBuilder(geom.Rect{MaxX: 1, MaxY: 1}, 4, 4)
	require.NoError(t, err)

	tri := geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	require.NoError(t, b.Fill(Shape{Polygon: tri, Color: palette.White, Alpha: 1}))

	bad := geom.Polygon{{X: 0, Y: 0}, {X: math.NaN(), Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	err = b.Fill(Shape{Polygon: bad, Color: palette.White, Alpha: 1})
	assert.True(t, errors.Is(err, errors.ErrCodeRender), "got %v", err)

	err = b.Fill(Shape{Polygon: tri[:2], Color: palette.White, Alpha: 1})
	assert.True(t, errors.Is(err, errors.ErrCodeRender))

	err = b.Fill(Shape{Polygon: tri, Color: palette.White, Alpha: 1.5})
	assert.True(t, errors.Is(err, errors.ErrCodeRender))

	assert.Equal(t, 1, b.Len())
}

func TestBuilderFreezes(t *testing.T) {
	b, err := NewBuilder(geom.Rect{MaxX: 1, MaxY: 1}, 4, 4)
	require.NoError(t, err)

	s := b.Build()
	assert.Same(t, s, b.Build())

	tri := geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	assert.Error(t, b.Fill(Shape{Polygon: tri, Color: palette.White, Alpha: 1}))
	assert.Error(t, b.SetBackground(palette.White))
	assert.Error(t, b.AddText(Text{Content: "x", Size: 10}))
	assert.Zero(t, s.Len())
}

func TestNewBuilderRejects(t *testing.T) {
	_, err := NewBuilder(geom.Rect{MaxX: 0, MaxY: 1}, 4, 4)
	assert.Error(t, err)
	_, err = NewBuilder(geom.Rect{MaxX: 1, MaxY: 1}, 0, 4)
	assert.Error(t, err)
}

func TestSceneConcurrentReads(t *testing.T) {
	s, err := Compose(config.Default(), rng.New(5))
	require.NoError(t, err)
	want := s.Fingerprint()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, s.Fingerprint())
		}()
	}
	wg.Wait()
}
