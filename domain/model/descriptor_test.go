package model

import (
	"math"
	"testing"

	"uqgo/domain/core"
)

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name     string
		desc     Descriptor
		nPOI     int
		wantErr  bool
		errCheck func(error) bool
	}{
		{
			name: "valid uniform",
			desc: NewUniform([]float64{0, 1}, []float64{1, 2}),
			nPOI: 2,
		},
		{
			name: "valid normal",
			desc: NewNormal([]float64{0}, []float64{4}),
			nPOI: 1,
		},
		{
			name: "valid exponential",
			desc: NewExponential([]float64{2, 3}),
			nPOI: 2,
		},
		{
			name: "valid beta",
			desc: NewBeta([]float64{2}, []float64{5}),
			nPOI: 1,
		},
		{
			name:     "uniform upper below lower",
			desc:     NewUniform([]float64{1}, []float64{0}),
			nPOI:     1,
			wantErr:  true,
			errCheck: core.IsConfigurationError,
		},
		{
			name:     "normal zero variance",
			desc:     NewNormal([]float64{0}, []float64{0}),
			nPOI:     1,
			wantErr:  true,
			errCheck: core.IsConfigurationError,
		},
		{
			name:     "exponential negative scale",
			desc:     NewExponential([]float64{-1}),
			nPOI:     1,
			wantErr:  true,
			errCheck: core.IsConfigurationError,
		},
		{
			name:     "width mismatch",
			desc:     NewUniform([]float64{0}, []float64{1}),
			nPOI:     3,
			wantErr:  true,
			errCheck: core.IsShapeError,
		},
		{
			name:     "non-finite parameter",
			desc:     NewNormal([]float64{math.Inf(1)}, []float64{1}),
			nPOI:     1,
			wantErr:  true,
			errCheck: core.IsConfigurationError,
		},
		{
			name:     "unknown family",
			desc:     NewDescriptor(Family(42), []float64{0}, []float64{1}),
			nPOI:     1,
			wantErr:  true,
			errCheck: core.IsConfigurationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate(tt.nPOI)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errCheck != nil && !tt.errCheck(err) {
					t.Errorf("wrong error kind: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
