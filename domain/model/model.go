package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"uqgo/domain/core"
)

// EvalFunc evaluates a batch of parameter samples. The input is N x nPOI and
// the output must be N x nQOI, with row i of the output corresponding to row
// i of the input. It must be pure: deterministic, side-effect free, and safe
// to call any number of times with arbitrary sample counts.
type EvalFunc func(samples *mat.Dense) (*mat.Dense, error)

// Model is an immutable description of the system under study: an evaluation
// function, a base parameter point, a sampling distribution, and names for
// parameters and outputs. The output count is inferred by evaluating the base
// point once at construction. Samplers are constructed separately and
// threaded through estimator calls; a Model never carries sampling state.
type Model struct {
	evalFn  EvalFunc
	dist    Descriptor
	basePOI []float64
	baseQOI []float64
	namePOI []string
	nameQOI []string
}

// Option customizes model construction.
type Option func(*Model)

// WithPOINames overrides the auto-generated parameter names.
func WithPOINames(names []string) Option {
	return func(m *Model) { m.namePOI = append([]string(nil), names...) }
}

// WithQOINames overrides the auto-generated output names.
func WithQOINames(names []string) Option {
	return func(m *Model) { m.nameQOI = append([]string(nil), names...) }
}

// New constructs a model. The base point is evaluated once to determine the
// output count, so evalFn must already be total on the base point.
func New(evalFn EvalFunc, basePOI []float64, dist Descriptor, opts ...Option) (*Model, error) {
	if evalFn == nil {
		return nil, core.NewConfigurationError("evaluation function", "must not be nil")
	}
	if len(basePOI) == 0 {
		return nil, core.NewConfigurationError("base poi", "must contain at least one parameter")
	}
	for i, v := range basePOI {
		if !isFinite(v) {
			return nil, core.NewConfigurationError("base poi", fmt.Sprintf("non-finite value at index %d", i))
		}
	}
	if err := dist.Validate(len(basePOI)); err != nil {
		return nil, err
	}

	m := &Model{
		evalFn:  evalFn,
		dist:    dist,
		basePOI: append([]float64(nil), basePOI...),
	}

	base := mat.NewDense(1, len(basePOI), append([]float64(nil), basePOI...))
	out, err := evalFn(base)
	if err != nil {
		return nil, fmt.Errorf("%w: base point evaluation: %v", core.ErrModelEvaluation, err)
	}
	rows, cols := out.Dims()
	if rows != 1 || cols < 1 {
		return nil, core.NewShapeError("base point evaluation", 1, cols, rows, cols)
	}
	m.baseQOI = append([]float64(nil), out.RawRowView(0)...)

	for _, opt := range opts {
		opt(m)
	}
	if m.namePOI == nil {
		m.namePOI = autoNames("POI", m.NPOI())
	}
	if m.nameQOI == nil {
		m.nameQOI = autoNames("QOI", m.NQOI())
	}
	if len(m.namePOI) != m.NPOI() {
		return nil, core.NewConfigurationError("poi names", fmt.Sprintf("got %d names for %d parameters", len(m.namePOI), m.NPOI()))
	}
	if len(m.nameQOI) != m.NQOI() {
		return nil, core.NewConfigurationError("qoi names", fmt.Sprintf("got %d names for %d outputs", len(m.nameQOI), m.NQOI()))
	}
	return m, nil
}

// NPOI returns the number of input parameters.
func (m *Model) NPOI() int { return len(m.basePOI) }

// NQOI returns the number of outputs.
func (m *Model) NQOI() int { return len(m.baseQOI) }

// BasePOI returns a copy of the base parameter point.
func (m *Model) BasePOI() []float64 { return append([]float64(nil), m.basePOI...) }

// BaseQOI returns a copy of the output at the base parameter point.
func (m *Model) BaseQOI() []float64 { return append([]float64(nil), m.baseQOI...) }

// POINames returns a copy of the parameter names.
func (m *Model) POINames() []string { return append([]string(nil), m.namePOI...) }

// QOINames returns a copy of the output names.
func (m *Model) QOINames() []string { return append([]string(nil), m.nameQOI...) }

// Dist returns the sampling distribution descriptor.
func (m *Model) Dist() Descriptor { return m.dist }

// Eval runs the evaluation function over a sample matrix and enforces the
// evaluation contract: matching row counts, nQOI columns, finite values.
// Violations surface as ShapeError or ModelEvaluationError; nothing is
// retried or clamped.
func (m *Model) Eval(samples *mat.Dense) (*mat.Dense, error) {
	rows, cols := samples.Dims()
	if cols != m.NPOI() {
		return nil, core.NewShapeError("sample matrix", rows, m.NPOI(), rows, cols)
	}
	out, err := m.evalFn(samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrModelEvaluation, err)
	}
	outRows, outCols := out.Dims()
	if outRows != rows || outCols != m.NQOI() {
		return nil, core.NewShapeError("evaluation output", rows, m.NQOI(), outRows, outCols)
	}
	for i := 0; i < outRows; i++ {
		for q := 0; q < outCols; q++ {
			if !isFinite(out.At(i, q)) {
				return nil, core.NewModelEvaluationError(i, append([]float64(nil), samples.RawRowView(i)...), "non-finite output")
			}
		}
	}
	return out, nil
}

func autoNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return names
}
