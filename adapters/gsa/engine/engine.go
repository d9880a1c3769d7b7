package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"uqgo/domain/core"
	"uqgo/domain/gsa"
	"uqgo/domain/model"
	"uqgo/internal"
	"uqgo/internal/sampling"
)

// Engine runs global sensitivity analysis: Morris elementary-effect
// screening and Saltelli Sobol index estimation over a shared model
// evaluation contract. An Engine holds no per-run state; every run owns its
// own sampler cursor and random stream.
type Engine struct {
	log *internal.Logger
}

// NewEngine creates a GSA engine. A nil logger falls back to the default.
func NewEngine(log *internal.Logger) *Engine {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	return &Engine{log: log}
}

// Run executes the configured estimators against the model and assembles a
// single result aggregate. The pipeline is linear: a failure at any stage
// aborts the run.
func (e *Engine) Run(ctx context.Context, m *model.Model, opts gsa.Options) (*gsa.Results, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()
	res := &gsa.Results{
		RunID:     core.NewRunID(),
		StartedAt: core.Timestamp(started),
	}

	smp, err := sampling.New(m.Dist(), m.NPOI(), opts.Seed)
	if err != nil {
		return nil, err
	}

	if opts.RunMorris {
		e.log.Debug("run %s: morris screening, %d trajectories, %d levels",
			res.RunID, opts.NSampMorris, opts.LMorris)
		morris, err := e.runMorris(ctx, m, smp, opts)
		if err != nil {
			return nil, err
		}
		res.Morris = morris
	}

	if opts.RunSobol {
		e.log.Debug("run %s: sobol estimation, %d base samples", res.RunID, opts.NSampSobol)
		sobol, err := e.runSobol(ctx, m, smp, opts)
		if err != nil {
			return nil, err
		}
		res.Sobol = sobol
	}

	res.RuntimeMs = time.Since(started).Milliseconds()
	e.log.Info("run %s: completed in %dms", res.RunID, res.RuntimeMs)
	return res, nil
}

// evaluate applies the model to a sample matrix, fanning contiguous row
// chunks out across workers. Results are written back into their original
// row positions: the Sobol formulas and the Morris block grouping both
// depend on row order.
func (e *Engine) evaluate(ctx context.Context, m *model.Model, samples *mat.Dense, workers int) (*mat.Dense, error) {
	n, _ := samples.Dims()
	if workers <= 1 || n < 2*workers {
		return m.Eval(samples)
	}

	out := mat.NewDense(n, m.NQOI(), nil)
	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sub := samples.Slice(start, end, 0, m.NPOI()).(*mat.Dense)
			part, err := m.Eval(sub)
			if err != nil {
				return fmt.Errorf("rows %d-%d: %w", start, end-1, err)
			}
			for i := start; i < end; i++ {
				out.SetRow(i, part.RawRowView(i-start))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
