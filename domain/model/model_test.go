package model

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"uqgo/domain/core"
)

func linearEval(samples *mat.Dense) (*mat.Dense, error) {
	n, _ := samples.Dims()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, samples.At(i, 0)+2*samples.At(i, 1))
	}
	return out, nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		evalFn      EvalFunc
		basePOI     []float64
		dist        Descriptor
		opts        []Option
		expectError bool
	}{
		{
			name:    "valid linear model",
			evalFn:  linearEval,
			basePOI: []float64{1, 1},
			dist:    NewUniform([]float64{0.8, 0.8}, []float64{1.2, 1.2}),
		},
		{
			name:        "nil evaluation function",
			evalFn:      nil,
			basePOI:     []float64{1},
			dist:        NewUniform([]float64{0}, []float64{1}),
			expectError: true,
		},
		{
			name:        "empty base point",
			evalFn:      linearEval,
			basePOI:     nil,
			dist:        NewUniform(nil, nil),
			expectError: true,
		},
		{
			name:        "non-finite base point",
			evalFn:      linearEval,
			basePOI:     []float64{1, math.NaN()},
			dist:        NewUniform([]float64{0, 0}, []float64{1, 1}),
			expectError: true,
		},
		{
			name:        "descriptor width mismatch",
			evalFn:      linearEval,
			basePOI:     []float64{1, 1},
			dist:        NewUniform([]float64{0}, []float64{1}),
			expectError: true,
		},
		{
			name:        "wrong poi name count",
			evalFn:      linearEval,
			basePOI:     []float64{1, 1},
			dist:        NewUniform([]float64{0.8, 0.8}, []float64{1.2, 1.2}),
			opts:        []Option{WithPOINames([]string{"only one"})},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.evalFn, tt.basePOI, tt.dist, tt.opts...)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.NPOI() != len(tt.basePOI) {
				t.Errorf("NPOI = %d, want %d", m.NPOI(), len(tt.basePOI))
			}
		})
	}
}

func TestNewInfersOutputsAndNames(t *testing.T) {
	m, err := New(linearEval, []float64{1, 1}, NewUniform([]float64{0.8, 0.8}, []float64{1.2, 1.2}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.NQOI() != 1 {
		t.Fatalf("NQOI = %d, want 1", m.NQOI())
	}
	if got := m.POINames(); got[0] != "POI0" || got[1] != "POI1" {
		t.Errorf("POINames = %v, want auto-numbered", got)
	}
	if got := m.QOINames(); got[0] != "QOI0" {
		t.Errorf("QOINames = %v, want auto-numbered", got)
	}
	if got := m.BaseQOI(); got[0] != 3 {
		t.Errorf("BaseQOI = %v, want [3]", got)
	}
}

func TestEvalContract(t *testing.T) {
	m, err := New(linearEval, []float64{1, 1}, NewUniform([]float64{0.8, 0.8}, []float64{1.2, 1.2}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("wrong sample width is a shape error", func(t *testing.T) {
		_, err := m.Eval(mat.NewDense(3, 4, nil))
		if !core.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})

	t.Run("valid samples evaluate row for row", func(t *testing.T) {
		out, err := m.Eval(mat.NewDense(2, 2, []float64{1, 1, 2, 0.5}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.At(0, 0) != 3 || out.At(1, 0) != 3 {
			t.Errorf("unexpected evaluations: %v", mat.Formatted(out))
		}
	})

	t.Run("failing function is a model evaluation error", func(t *testing.T) {
		failing, err := New(func(s *mat.Dense) (*mat.Dense, error) {
			n, _ := s.Dims()
			if n > 1 {
				return nil, errors.New("boom")
			}
			return mat.NewDense(n, 1, nil), nil
		}, []float64{1}, NewUniform([]float64{0}, []float64{1}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = failing.Eval(mat.NewDense(4, 1, nil))
		if !core.IsModelEvaluationError(err) {
			t.Fatalf("expected model evaluation error, got %v", err)
		}
	})

	t.Run("non-finite output is a model evaluation error", func(t *testing.T) {
		nanModel, err := New(func(s *mat.Dense) (*mat.Dense, error) {
			n, _ := s.Dims()
			out := mat.NewDense(n, 1, nil)
			for i := 0; i < n; i++ {
				v := s.At(i, 0)
				if v < 0 {
					v = math.NaN()
				}
				out.Set(i, 0, v)
			}
			return out, nil
		}, []float64{1}, NewUniform([]float64{-1}, []float64{1}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = nanModel.Eval(mat.NewDense(2, 1, []float64{0.5, -0.5}))
		if !core.IsModelEvaluationError(err) {
			t.Fatalf("expected model evaluation error, got %v", err)
		}
	})

	t.Run("wrong output shape is a shape error", func(t *testing.T) {
		badShape, err := New(func(s *mat.Dense) (*mat.Dense, error) {
			n, _ := s.Dims()
			if n > 1 {
				return mat.NewDense(n-1, 1, nil), nil
			}
			return mat.NewDense(n, 1, nil), nil
		}, []float64{1}, NewUniform([]float64{0}, []float64{1}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = badShape.Eval(mat.NewDense(3, 1, nil))
		if !core.IsShapeError(err) {
			t.Fatalf("expected shape error, got %v", err)
		}
	})
}
