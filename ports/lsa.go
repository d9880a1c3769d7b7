package ports

import (
	"context"

	"uqgo/domain/model"
)

// ModelReducer hands back a model restricted to its most influential
// parameters, typically from an active-subspace decomposition of local
// sensitivity information. The GSA engine only consumes the reduced model;
// it never computes the reduction itself.
type ModelReducer interface {
	// Reduce returns a model with the same evaluation contract over a
	// (possibly) smaller parameter space.
	Reduce(ctx context.Context, m *model.Model) (*model.Model, error)
}
