package compute

import (
	"context"
	"errors"
	"fmt"

	"github.com/kompox/amlops/domain/model"
	"github.com/kompox/amlops/internal/logging"
)

// DeleteInput represents a command to delete a compute target.
type DeleteInput struct {
	Workspace *model.Workspace `json:"workspace"`
	Name      string           `json:"name"`
}

// DeleteOutput represents the response of delete.
type DeleteOutput struct {
	Name     string `json:"name"`
	Deleted  bool   `json:"deleted"`  // false when the target did not exist
	Detached bool   `json:"detached"` // true when the underlying resource was left in place
}

// Delete removes a compute target. Attached targets (e.g., Databricks) are
// detached so the external resource survives; AmlCompute clusters are deleted.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.Name == "" {
		return nil, fmt.Errorf("%w: compute name is required", model.ErrComputeInvalid)
	}
	if err := in.Workspace.Validate(); err != nil {
		return nil, err
	}

	c, err := u.ComputePort.Get(ctx, in.Workspace, in.Name)
	if err != nil {
		if errors.Is(err, model.ErrComputeNotFound) {
			logging.FromContext(ctx).Info(ctx, "compute target not found, nothing to delete", "compute", in.Name)
			return &DeleteOutput{Name: in.Name}, nil
		}
		return nil, err
	}

	detach := c.Attached || c.Kind == model.ComputeKindDatabricks
	var opts []model.ComputeDeleteOption
	if detach {
		opts = append(opts, model.WithComputeDeleteDetach())
	}
	if err := u.ComputePort.Delete(ctx, in.Workspace, in.Name, opts...); err != nil {
		return nil, err
	}
	return &DeleteOutput{Name: in.Name, Deleted: true, Detached: detach}, nil
}
