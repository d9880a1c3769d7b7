package model

import (
	"fmt"
	"math"

	"uqgo/domain/core"
)

// Family enumerates the supported sampling distribution families. The set is
// closed: adding a family means adding a constant and a case in the sampler,
// never string matching.
type Family int

const (
	Uniform Family = iota
	Normal
	Exponential
	Beta
)

func (f Family) String() string {
	switch f {
	case Uniform:
		return "uniform"
	case Normal:
		return "normal"
	case Exponential:
		return "exponential"
	case Beta:
		return "beta"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Descriptor pairs a distribution family with its per-parameter settings.
// Rows a and b each hold one value per POI; their meaning depends on the
// family: lower/upper bounds for Uniform, mean/variance for Normal, scale
// (b unused) for Exponential, alpha/beta for Beta.
type Descriptor struct {
	family Family
	a      []float64
	b      []float64
}

// NewDescriptor builds a descriptor from raw parameter rows. Prefer the
// family-specific constructors below.
func NewDescriptor(family Family, a, b []float64) Descriptor {
	return Descriptor{family: family, a: append([]float64(nil), a...), b: append([]float64(nil), b...)}
}

// NewUniform describes independent uniform marginals on [lower[i], upper[i]].
func NewUniform(lower, upper []float64) Descriptor {
	return NewDescriptor(Uniform, lower, upper)
}

// NewNormal describes independent normal marginals with the given means and
// variances (not standard deviations).
func NewNormal(mean, variance []float64) Descriptor {
	return NewDescriptor(Normal, mean, variance)
}

// NewExponential describes independent exponential marginals with the given
// scale (inverse rate) per parameter.
func NewExponential(scale []float64) Descriptor {
	return NewDescriptor(Exponential, scale, nil)
}

// NewBeta describes independent beta marginals with the given alpha and beta
// shape parameters.
func NewBeta(alpha, beta []float64) Descriptor {
	return NewDescriptor(Beta, alpha, beta)
}

// Family returns the distribution family tag.
func (d Descriptor) Family() Family { return d.family }

// Rows returns copies of the two parameter rows. For single-parameter
// families the second row is nil.
func (d Descriptor) Rows() (a, b []float64) {
	return append([]float64(nil), d.a...), append([]float64(nil), d.b...)
}

// Validate checks the parameter rows against the expected POI count and the
// family's admissible ranges.
func (d Descriptor) Validate(nPOI int) error {
	switch d.family {
	case Uniform, Normal, Beta:
		if len(d.a) != nPOI || len(d.b) != nPOI {
			return core.NewShapeError("distribution parameters", 2, nPOI, 2, maxInt(len(d.a), len(d.b)))
		}
	case Exponential:
		if len(d.a) != nPOI {
			return core.NewShapeError("distribution parameters", 1, nPOI, 1, len(d.a))
		}
	default:
		return core.NewConfigurationError("distribution family", fmt.Sprintf("%s is not supported", d.family))
	}
	for i := 0; i < nPOI; i++ {
		if !isFinite(d.a[i]) || (d.b != nil && !isFinite(d.b[i])) {
			return core.NewConfigurationError("distribution parameters", fmt.Sprintf("non-finite value for poi %d", i))
		}
	}
	switch d.family {
	case Uniform:
		for i := 0; i < nPOI; i++ {
			if d.b[i] <= d.a[i] {
				return core.NewConfigurationError("uniform bounds", fmt.Sprintf("upper must exceed lower for poi %d", i))
			}
		}
	case Normal:
		for i := 0; i < nPOI; i++ {
			if d.b[i] <= 0 {
				return core.NewConfigurationError("normal variance", fmt.Sprintf("must be positive for poi %d", i))
			}
		}
	case Exponential:
		for i := 0; i < nPOI; i++ {
			if d.a[i] <= 0 {
				return core.NewConfigurationError("exponential scale", fmt.Sprintf("must be positive for poi %d", i))
			}
		}
	case Beta:
		for i := 0; i < nPOI; i++ {
			if d.a[i] <= 0 || d.b[i] <= 0 {
				return core.NewConfigurationError("beta shape", fmt.Sprintf("must be positive for poi %d", i))
			}
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
