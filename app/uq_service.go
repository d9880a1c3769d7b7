package app

import (
	"context"

	"uqgo/adapters/gsa/engine"
	"uqgo/domain/gsa"
	"uqgo/domain/model"
	"uqgo/internal"
	"uqgo/ports"
)

// UQService runs uncertainty quantification end to end: optional model
// reduction through the LSA port, then global sensitivity analysis.
// Presentation of the result aggregate is entirely external.
type UQService struct {
	engine  *engine.Engine
	reducer ports.ModelReducer
	log     *internal.Logger
}

// NewUQService creates a UQ service. The reducer may be nil, in which case
// the model is analyzed as given.
func NewUQService(eng *engine.Engine, reducer ports.ModelReducer, log *internal.Logger) *UQService {
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	return &UQService{engine: eng, reducer: reducer, log: log}
}

// Run performs one analysis run and returns the immutable result aggregate.
func (s *UQService) Run(ctx context.Context, m *model.Model, opts gsa.Options) (*gsa.Results, error) {
	if s.reducer != nil {
		reduced, err := s.reducer.Reduce(ctx, m)
		if err != nil {
			return nil, err
		}
		if reduced.NPOI() != m.NPOI() {
			s.log.Info("model reduced from %d to %d parameters", m.NPOI(), reduced.NPOI())
		}
		m = reduced
	}
	return s.engine.Run(ctx, m, opts)
}
