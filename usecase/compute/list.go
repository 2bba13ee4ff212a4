package compute

import (
	"context"
	"sort"

	"github.com/kompox/amlops/domain/model"
)

// ListInput represents a command to list compute targets.
type ListInput struct {
	Workspace *model.Workspace `json:"workspace"`
}

// ListOutput represents the response of list.
type ListOutput struct {
	Items []*model.ComputeTarget `json:"items"`
}

// List returns the compute targets of a workspace sorted by name.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		return nil, model.ErrWorkspaceInvalid
	}
	if err := in.Workspace.Validate(); err != nil {
		return nil, err
	}
	items, err := u.ComputePort.List(ctx, in.Workspace)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return &ListOutput{Items: items}, nil
}
