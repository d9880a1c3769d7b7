package gsa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"uqgo/domain/core"
)

// Options holds run settings for the global sensitivity analysis engine.
// The two estimators toggle independently and read the same model contract.
type Options struct {
	RunSobol  bool
	RunMorris bool

	// NSampSobol is the Sobol base sample count N. The model is evaluated
	// N*(nPOI+2) times per run.
	NSampSobol int

	// NSampMorris is the number of Morris trajectories.
	NSampMorris int

	// LMorris is the Morris grid level count. Must be an even integer >= 2;
	// the perturbation distance l/(2(l-1)) is only unbiased for even l.
	LMorris int

	// Seed fixes the quasi-random base and the Morris orientation draws.
	// Runs with equal seeds reproduce bit-for-bit.
	Seed uint64

	// Workers bounds parallel model evaluation. Values below 1 mean serial.
	Workers int
}

// DefaultOptions returns the standard run settings: both estimators on,
// 100000 Sobol samples, 4 Morris trajectories on a 4-level grid.
func DefaultOptions() Options {
	return Options{
		RunSobol:    true,
		RunMorris:   true,
		NSampSobol:  100000,
		NSampMorris: 4,
		LMorris:     4,
		Workers:     1,
	}
}

// Validate checks the options before a run starts.
func (o Options) Validate() error {
	if o.RunSobol && o.NSampSobol < 1 {
		return core.NewConfigurationError("sobol sample count", "must be positive")
	}
	if o.RunMorris {
		if o.NSampMorris < 1 {
			return core.NewConfigurationError("morris trajectory count", "must be positive")
		}
		if o.LMorris < 2 || o.LMorris%2 != 0 {
			return core.NewConfigurationError("morris levels", fmt.Sprintf("must be an even integer >= 2, got %d", o.LMorris))
		}
	}
	return nil
}

// SobolResult holds Saltelli estimates plus the raw evaluation tensors the
// plotting layer needs for correlation diagnostics.
type SobolResult struct {
	// FirstOrder and TotalEffect are nQOI x nPOI index matrices. Entries for
	// a constant output are NaN, not an error.
	FirstOrder  *mat.Dense
	TotalEffect *mat.Dense

	// FA and FB are the N x nQOI evaluations of the paired sample halves;
	// FD is their 2N x nQOI concatenation used for the output variance.
	FA *mat.Dense
	FB *mat.Dense
	FD *mat.Dense

	// FAB holds one N x nQOI evaluation per parameter, for the design with
	// that parameter's column swapped from A to B.
	FAB []*mat.Dense

	// SampD is the 2N x nPOI concatenation of the A and B sample matrices.
	SampD *mat.Dense
}

// MorrisResult holds elementary-effect screening statistics, each nPOI x nQOI.
// MeanAbs is the primary screening statistic; Variance flags nonlinear or
// interacting parameters.
type MorrisResult struct {
	Mean     *mat.Dense
	MeanAbs  *mat.Dense
	Variance *mat.Dense
}

// Results is the aggregate a single run produces. Immutable once assembled;
// presentation is entirely external.
type Results struct {
	RunID     core.RunID
	StartedAt core.Timestamp
	RuntimeMs int64

	Sobol  *SobolResult
	Morris *MorrisResult
}
