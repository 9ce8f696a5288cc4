package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/observability"
	"github.com/matzehuels/starposter/pkg/pipeline"
	"github.com/matzehuels/starposter/pkg/render/sink"
	"github.com/matzehuels/starposter/pkg/rng"
)

// maxBatch bounds the number of variants one batch may render.
const maxBatch = 1000

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	count   int    // number of seeded variants
	jobs    int    // concurrent renders
	dir     string // output directory
	formats string // comma-separated output formats
	flags   *configFlags
}

// batchJob describes one seeded variant and where its files went.
type batchJob struct {
	index int
	seed  uint64
	files []string
	bytes int
}

// batchCommand creates the batch command for rendering seeded variants concurrently.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{count: 8, jobs: runtime.GOMAXPROCS(0), dir: "."}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render several seeded variants concurrently",
		Long: `Render --count variants of the same configuration with consecutive seeds
starting at --seed. Each variant is written as <name>_<seed>.<ext> into --dir.`,
		Example: `  starposter batch --count 12 --seed 100 --dir out
  starposter batch --count 4 --random -f png,svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatchCommand(cmd.Context(), &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "k", opts.count, "number of variants")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "concurrent renders")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", opts.dir, "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), svg, pdf, json (comma-separated)")
	opts.flags = bindConfigFlags(cmd)
	registerValueCompletions(cmd)
	_ = cmd.MarkFlagDirname("dir")

	return cmd
}

func (c *CLI) runBatchCommand(ctx context.Context, opts *batchOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	cfg, _, err := opts.flags.resolve()
	if err != nil {
		return err
	}
	if opts.flags.random {
		cfg.Seed = randomStart(opts.count)
	}
	seeds, err := batchSeeds(cfg.Seed, opts.count)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(seeds),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	prog := newProgress(logger)
	jobs, err := runBatch(ctx, c.newRunner(), cfg, formats, seeds, batchConfig{
		dir:  opts.dir,
		jobs: opts.jobs,
		done: func() { _ = bar.Add(1) },
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d variants", len(jobs)))

	total := 0
	for _, j := range jobs {
		total += j.bytes
	}
	printSuccess("Rendered %s variants into %s", StyleNumber.Render(fmt.Sprint(len(jobs))), StyleValue.Render(opts.dir))
	printDetail("seeds %d..%d · %s · %s", seeds[0], seeds[len(seeds)-1], formatList(formats), formatBytes(total))
	return nil
}

// randomStart draws a fresh start seed that leaves room for count consecutive seeds.
func randomStart(count int) uint64 {
	_, seed := rng.Fresh()
	if count < 1 || count > maxBatch {
		return seed
	}
	return seed % (rng.MaxSeed - uint64(count) + 2)
}

// batchSeeds returns count consecutive seeds starting at start.
func batchSeeds(start uint64, count int) ([]uint64, error) {
	if err := errors.ValidateIntRange("count", count, 1, maxBatch); err != nil {
		return nil, err
	}
	last := start + uint64(count) - 1
	if last > rng.MaxSeed {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"seeds %d..%d exceed the maximum seed %d", start, last, rng.MaxSeed)
	}
	seeds := make([]uint64, count)
	for i := range seeds {
		seeds[i] = start + uint64(i)
	}
	return seeds, nil
}

// batchConfig controls how runBatch schedules and stores jobs.
type batchConfig struct {
	dir  string
	jobs int
	done func() // called after each finished job; must be safe for concurrent use
}

// runBatch renders one variant per seed with at most cfg.jobs renders in flight.
// The first failure cancels the remaining jobs. Results are in seed order.
func runBatch(ctx context.Context, runner *pipeline.Runner, base config.Config, formats []sink.Format, seeds []uint64, bc batchConfig) ([]batchJob, error) {
	if bc.jobs < 1 {
		bc.jobs = 1
	}
	if err := os.MkdirAll(bc.dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", bc.dir)
	}

	hooks := observability.Batch()
	results := make([]batchJob, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bc.jobs)
	for i, seed := range seeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hooks.OnJobStart(gctx, i, seed)
			start := time.Now()
			job, err := renderVariant(gctx, runner, base, formats, bc.dir, i, seed)
			hooks.OnJobComplete(gctx, i, seed, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = job
			if bc.done != nil {
				bc.done()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// report the interrupt itself rather than a job that observed it
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return results, nil
}

// renderVariant renders and writes one seeded variant.
func renderVariant(ctx context.Context, runner *pipeline.Runner, base config.Config, formats []sink.Format, dir string, index int, seed uint64) (batchJob, error) {
	cfg := base.Clone()
	cfg.UseSeed, cfg.Seed = true, seed

	result, err := runner.Execute(ctx, pipeline.Options{Config: cfg, Formats: formats})
	if err != nil {
		return batchJob{}, err
	}

	job := batchJob{index: index, seed: seed}
	for _, f := range formats {
		path := filepath.Join(dir, variantFilename(f, cfg.Poster(), seed))
		if err := writeFile(path, result.Artifacts[f]); err != nil {
			return batchJob{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		job.files = append(job.files, path)
		job.bytes += len(result.Artifacts[f])
	}
	return job, nil
}

// variantFilename inserts the seed before the extension: pastel_stars_42.png.
func variantFilename(f sink.Format, poster bool, seed uint64) string {
	name := sink.DefaultFilename(f, poster)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, f.Ext()), seed, f.Ext())
}
