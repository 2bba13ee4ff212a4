package model

import "context"

// Operation-scoped options and functional option types.
type ComputeDeleteOptions struct{ Detach bool }

type ComputeDeleteOption func(*ComputeDeleteOptions)

// WithComputeDeleteDetach detaches the target and leaves the underlying resource in place.
func WithComputeDeleteDetach() ComputeDeleteOption {
	return func(o *ComputeDeleteOptions) { o.Detach = true }
}

// ComputePort is an interface (domain port) for compute target operations.
// Get returns ErrComputeNotFound when no target has the given name.
// CreateAml and AttachDatabricks block until the platform reports completion.
type ComputePort interface {
	Get(ctx context.Context, ws *Workspace, name string) (*ComputeTarget, error)
	List(ctx context.Context, ws *Workspace) ([]*ComputeTarget, error)
	CreateAml(ctx context.Context, ws *Workspace, name string, spec AmlComputeSpec) (*ComputeTarget, error)
	AttachDatabricks(ctx context.Context, ws *Workspace, name string, spec DatabricksSpec) (*ComputeTarget, error)
	Delete(ctx context.Context, ws *Workspace, name string, opts ...ComputeDeleteOption) error
}
