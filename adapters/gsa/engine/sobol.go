package engine

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"uqgo/domain/gsa"
	"uqgo/domain/model"
	"uqgo/internal/sampling"
)

// runSobol executes the Saltelli sampling scheme and computes first-order
// and total-effect indices. Model call count is exactly N*(nPOI+2): one call
// each for the A and B halves plus one per-parameter call for the
// column-swapped designs. The per-parameter loop is unavoidable: each index
// needs an independent one-parameter-swapped evaluation, and an arbitrary
// external model cannot be assumed to vectorize over a parameter axis.
func (e *Engine) runSobol(ctx context.Context, m *model.Model, smp *sampling.Sampler, opts gsa.Options) (*gsa.SobolResult, error) {
	n := opts.NSampSobol
	nPOI, nQOI := m.NPOI(), m.NQOI()

	sampA, sampB, err := smp.Pair(n)
	if err != nil {
		return nil, err
	}

	fa, err := e.evaluate(ctx, m, sampA, opts.Workers)
	if err != nil {
		return nil, err
	}
	fb, err := e.evaluate(ctx, m, sampB, opts.Workers)
	if err != nil {
		return nil, err
	}

	// Pooled evaluations and samples across both halves. FD only feeds the
	// output variance; SampD is retained for downstream correlation plots.
	fd := stackRows(fa, fb)
	sampD := stackRows(sampA, sampB)

	fab := make([]*mat.Dense, nPOI)
	colB := make([]float64, n)
	for i := 0; i < nPOI; i++ {
		ab := mat.DenseCopyOf(sampA)
		mat.Col(colB, i, sampB)
		ab.SetCol(i, colB)
		fab[i], err = e.evaluate(ctx, m, ab, opts.Workers)
		if err != nil {
			return nil, err
		}
	}

	first := mat.NewDense(nQOI, nPOI, nil)
	total := mat.NewDense(nQOI, nPOI, nil)
	pooled := make([]float64, 2*n)
	work := make([]float64, n)
	for q := 0; q < nQOI; q++ {
		mat.Col(pooled, q, fd)
		varD, _ := stats.PopulationVariance(pooled)
		if varD == 0 {
			// Constant output: no attributable sensitivity. Signal in-band.
			for i := 0; i < nPOI; i++ {
				first.Set(q, i, math.NaN())
				total.Set(q, i, math.NaN())
			}
			continue
		}
		for i := 0; i < nPOI; i++ {
			for k := 0; k < n; k++ {
				work[k] = fb.At(k, q) * (fab[i].At(k, q) - fa.At(k, q))
			}
			meanFirst, _ := stats.Mean(work)
			first.Set(q, i, meanFirst/varD)

			for k := 0; k < n; k++ {
				d := fa.At(k, q) - fab[i].At(k, q)
				work[k] = d * d
			}
			meanTotal, _ := stats.Mean(work)
			total.Set(q, i, meanTotal/(2*varD))
		}
	}

	return &gsa.SobolResult{
		FirstOrder:  first,
		TotalEffect: total,
		FA:          fa,
		FB:          fb,
		FD:          fd,
		FAB:         fab,
		SampD:       sampD,
	}, nil
}

// stackRows concatenates two matrices with equal column counts, top rows
// first.
func stackRows(top, bottom *mat.Dense) *mat.Dense {
	tr, cols := top.Dims()
	br, _ := bottom.Dims()
	out := mat.NewDense(tr+br, cols, nil)
	for i := 0; i < tr; i++ {
		out.SetRow(i, top.RawRowView(i))
	}
	for i := 0; i < br; i++ {
		out.SetRow(tr+i, bottom.RawRowView(i))
	}
	return out
}
