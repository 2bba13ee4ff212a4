package compute

import (
	"context"
	"fmt"

	"github.com/kompox/amlops/domain/model"
)

// GetInput represents a command to get a compute target.
type GetInput struct {
	Workspace *model.Workspace `json:"workspace"`
	Name      string           `json:"name"`
}

// GetOutput represents the response of get.
type GetOutput struct {
	Compute *model.ComputeTarget `json:"compute"`
}

// Get returns a compute target by name.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.Name == "" {
		return nil, fmt.Errorf("%w: compute name is required", model.ErrComputeInvalid)
	}
	if err := in.Workspace.Validate(); err != nil {
		return nil, err
	}
	c, err := u.ComputePort.Get(ctx, in.Workspace, in.Name)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Compute: c}, nil
}
