package engine

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"uqgo/domain/gsa"
	"uqgo/domain/model"
	"uqgo/internal/sampling"
)

// morrisStream offsets the orientation stream from the quasi-random seed so
// the D/P draws and the Halton scrambles are independent under one run seed.
const morrisStream = 0x6d6f72726973

// runMorris constructs the trajectory designs, evaluates them in one stacked
// call, and aggregates elementary effects into mean, mean-absolute, and
// variance statistics. All randomness (base points, sign diagonals,
// permutations) is drawn before evaluation, so results are reproducible
// under a fixed seed regardless of worker count.
func (e *Engine) runMorris(ctx context.Context, m *model.Model, smp *sampling.Sampler, opts gsa.Options) (*gsa.MorrisResult, error) {
	nPOI, nQOI := m.NPOI(), m.NQOI()
	nTraj := opts.NSampMorris

	// Unbiased perturbation distance for even level counts.
	// Source: Smith, R. 2011. Uncertainty Quantification. p.333.
	delta := float64(opts.LMorris) / (2 * float64(opts.LMorris-1))

	bases, err := smp.Draw(nTraj)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed + morrisStream))

	// Stack all trajectories into one matrix so the model is evaluated once.
	// Each block of nPOI+1 consecutive rows is one trajectory; the finite
	// differences below depend on that adjacency.
	rowsPer := nPOI + 1
	samp := mat.NewDense(nTraj*rowsPer, nPOI, nil)
	for t := 0; t < nTraj; t++ {
		traj := trajectory(bases.RawRowView(t), delta, rng)
		for i := 0; i < rowsPer; i++ {
			samp.SetRow(t*rowsPer+i, traj.RawRowView(i))
		}
	}

	evals, err := e.evaluate(ctx, m, samp, opts.Workers)
	if err != nil {
		return nil, err
	}

	// One elementary effect per (trajectory, parameter, output). Each step
	// perturbs exactly one coordinate; the permutation decides which, so the
	// changed coordinate is detected from the sample rows rather than
	// assumed to equal the step index.
	effects := make([][]float64, nPOI*nQOI)
	for idx := range effects {
		effects[idx] = make([]float64, 0, nTraj)
	}
	for t := 0; t < nTraj; t++ {
		block := t * rowsPer
		for step := 0; step < nPOI; step++ {
			j, stepSize := changedCoordinate(samp, block+step)
			for q := 0; q < nQOI; q++ {
				effect := (evals.At(block+step+1, q) - evals.At(block+step, q)) / stepSize
				effects[j*nQOI+q] = append(effects[j*nQOI+q], effect)
			}
		}
	}

	mean := mat.NewDense(nPOI, nQOI, nil)
	meanAbs := mat.NewDense(nPOI, nQOI, nil)
	variance := mat.NewDense(nPOI, nQOI, nil)
	absWork := make([]float64, nTraj)
	for i := 0; i < nPOI; i++ {
		for q := 0; q < nQOI; q++ {
			sample := effects[i*nQOI+q]
			mu, _ := stats.Mean(sample)
			for k, v := range sample {
				absWork[k] = math.Abs(v)
			}
			muAbs, _ := stats.Mean(absWork[:len(sample)])
			varEff, _ := stats.PopulationVariance(sample)
			mean.Set(i, q, mu)
			meanAbs.Set(i, q, muAbs)
			variance.Set(i, q, varEff)
		}
	}

	return &gsa.MorrisResult{Mean: mean, MeanAbs: meanAbs, Variance: variance}, nil
}

// trajectory builds one (nPOI+1) x nPOI Morris design
//
//	M = theta*J + (delta/2)*((2B - J)*D + J)*P
//
// where J is all ones, B is strictly lower triangular ones, D is a random
// +-1 diagonal, and P is a random permutation. Consecutive rows differ in
// exactly one coordinate by +-delta.
// Source: Smith, R. 2011. Uncertainty Quantification. p.334.
func trajectory(theta []float64, delta float64, rng *rand.Rand) *mat.Dense {
	n := len(theta)
	rows := n + 1

	// 2B - J has entries +1 below the diagonal, -1 on and above it.
	signed := mat.NewDense(rows, n, nil)
	for i := 0; i < rows; i++ {
		for k := 0; k < n; k++ {
			if k < i {
				signed.Set(i, k, 1)
			} else {
				signed.Set(i, k, -1)
			}
		}
	}

	dEntries := make([]float64, n)
	for k := range dEntries {
		dEntries[k] = float64(1 - 2*rng.Intn(2))
	}
	diag := mat.NewDiagDense(n, dEntries)

	pert := mat.NewDense(rows, n, nil)
	pert.Mul(signed, diag)
	pert.Apply(func(_, _ int, v float64) float64 { return delta / 2 * (v + 1) }, pert)

	perm := rng.Perm(n)
	p := mat.NewDense(n, n, nil)
	for i, target := range perm {
		p.Set(i, target, 1)
	}

	out := mat.NewDense(rows, n, nil)
	out.Mul(pert, p)
	for i := 0; i < rows; i++ {
		for k := 0; k < n; k++ {
			out.Set(i, k, out.At(i, k)+theta[k])
		}
	}
	return out
}

// changedCoordinate finds the single coordinate in which rows k and k+1 of
// the sample matrix differ, returning its index and the signed step.
func changedCoordinate(samp *mat.Dense, k int) (int, float64) {
	_, cols := samp.Dims()
	best := 0
	bestDiff := 0.0
	for j := 0; j < cols; j++ {
		d := samp.At(k+1, j) - samp.At(k, j)
		if math.Abs(d) > math.Abs(bestDiff) {
			best, bestDiff = j, d
		}
	}
	return best, bestDiff
}
