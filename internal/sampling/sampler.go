package sampling

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/samplemv"

	"uqgo/domain/core"
	"uqgo/domain/model"
)

// Sampler draws quasi-random parameter samples from a model's distribution.
// Each Sampler owns its seed and a draw counter, so two runs never share
// sequence state and repeated calls within one run never repeat points.
type Sampler struct {
	desc  model.Descriptor
	nPOI  int
	seed  uint64
	calls uint64
}

// New validates the descriptor against the parameter count and returns a
// sampler for it. Unsupported families fail with a configuration error.
func New(desc model.Descriptor, nPOI int, seed uint64) (*Sampler, error) {
	if nPOI < 1 {
		return nil, core.NewConfigurationError("poi count", "must be positive")
	}
	if err := desc.Validate(nPOI); err != nil {
		return nil, err
	}
	return &Sampler{desc: desc, nPOI: nPOI, seed: seed}, nil
}

// Pair draws the paired Saltelli design: two N x nPOI matrices taken from
// independent coordinate halves of one 2*nPOI-dimensional low-discrepancy
// sequence. Reusing the same N points across both halves is what gives the
// Saltelli estimator its low-variance property; A and B must never come from
// unrelated sequences.
func (s *Sampler) Pair(n int) (a, b *mat.Dense, err error) {
	if n < 1 {
		return nil, nil, core.NewConfigurationError("sample count", "must be positive")
	}
	base := s.base(n, 2*s.nPOI)
	a = mat.NewDense(n, s.nPOI, nil)
	b = mat.NewDense(n, s.nPOI, nil)
	for j := 0; j < s.nPOI; j++ {
		q := s.quantile(j)
		for i := 0; i < n; i++ {
			a.Set(i, j, q(base.At(i, j)))
			b.Set(i, j, q(base.At(i, s.nPOI+j)))
		}
	}
	return a, b, nil
}

// Draw returns a single N x nPOI sample matrix (used for Morris base points).
func (s *Sampler) Draw(n int) (*mat.Dense, error) {
	if n < 1 {
		return nil, core.NewConfigurationError("sample count", "must be positive")
	}
	base := s.base(n, s.nPOI)
	out := mat.NewDense(n, s.nPOI, nil)
	for j := 0; j < s.nPOI; j++ {
		q := s.quantile(j)
		for i := 0; i < n; i++ {
			out.Set(i, j, q(base.At(i, j)))
		}
	}
	return out, nil
}

// base fills n rows of an Owen-scrambled Halton sequence on [0,1]^dim.
// Sequence advancement policy: rather than sliding a cursor along one
// scramble, each call derives an independent scramble from the run seed and
// a per-call counter. Calls therefore advance deterministically and never
// repeat points, and fixed-seed runs reproduce bit-for-bit; there is no
// silent reseeding to an earlier position.
func (s *Sampler) base(n, dim int) *mat.Dense {
	s.calls++
	src := rand.NewSource(s.seed + s.calls*0x9e3779b97f4a7c15)
	batch := mat.NewDense(n, dim, nil)
	halton := samplemv.Halton{Kind: samplemv.Owen, Q: distmv.NewUnitUniform(dim, src), Src: src}
	halton.Sample(batch)
	return batch
}

// quantile returns the marginal transform from the unit interval to
// parameter j's distribution.
func (s *Sampler) quantile(j int) func(u float64) float64 {
	rowA, rowB := s.desc.Rows()
	switch s.desc.Family() {
	case model.Uniform:
		lower, upper := rowA[j], rowB[j]
		return func(u float64) float64 { return lower + (upper-lower)*u }
	case model.Normal:
		dist := distuv.Normal{Mu: rowA[j], Sigma: math.Sqrt(rowB[j])}
		return dist.Quantile
	case model.Exponential:
		dist := distuv.Exponential{Rate: 1 / rowA[j]}
		return dist.Quantile
	case model.Beta:
		dist := distuv.Beta{Alpha: rowA[j], Beta: rowB[j]}
		return dist.Quantile
	default:
		// Unreachable: New rejects unsupported families.
		panic("sampling: unsupported distribution family " + s.desc.Family().String())
	}
}
