package compute

import (
	"context"
	"fmt"

	"github.com/kompox/amlops/domain/model"
)

// ApplyInput represents a command to ensure a set of declared compute targets.
type ApplyInput struct {
	Workspace *model.Workspace          `json:"workspace"`
	Computes  []model.ComputeDefinition `json:"computes"`
	// Only restricts apply to the named targets when non-empty.
	Only []string `json:"only,omitempty"`
}

// ApplyOutput represents the response of apply.
type ApplyOutput struct {
	Items []*EnsureOutput `json:"items"`
}

// Apply ensures each declared compute target in order and stops at the first failure.
// Items holds the results completed before the failure.
func (u *UseCase) Apply(ctx context.Context, in *ApplyInput) (*ApplyOutput, error) {
	if in == nil {
		return nil, model.ErrWorkspaceInvalid
	}
	if err := in.Workspace.Validate(); err != nil {
		return nil, err
	}

	selected := in.Computes
	if len(in.Only) > 0 {
		byName := make(map[string]model.ComputeDefinition, len(in.Computes))
		for _, def := range in.Computes {
			byName[def.Name] = def
		}
		selected = make([]model.ComputeDefinition, 0, len(in.Only))
		for _, name := range in.Only {
			def, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: %s is not declared", model.ErrComputeNotFound, name)
			}
			selected = append(selected, def)
		}
	}

	out := &ApplyOutput{Items: make([]*EnsureOutput, 0, len(selected))}
	for _, def := range selected {
		res, err := u.ensure(ctx, in.Workspace, def)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, res)
	}
	return out, nil
}

func (u *UseCase) ensure(ctx context.Context, ws *model.Workspace, def model.ComputeDefinition) (*EnsureOutput, error) {
	switch def.Kind {
	case model.ComputeKindAml:
		if def.Aml == nil {
			return nil, fmt.Errorf("%w: %s has no aml settings", model.ErrComputeInvalid, def.Name)
		}
		return u.EnsureAml(ctx, &EnsureAmlInput{Workspace: ws, Name: def.Name, Spec: *def.Aml})
	case model.ComputeKindDatabricks:
		if def.Databricks == nil {
			return nil, fmt.Errorf("%w: %s has no databricks settings", model.ErrComputeInvalid, def.Name)
		}
		return u.EnsureDatabricks(ctx, &EnsureDatabricksInput{Workspace: ws, Name: def.Name, Spec: *def.Databricks})
	default:
		return nil, fmt.Errorf("%w: %s has unsupported kind %q", model.ErrComputeInvalid, def.Name, def.Kind)
	}
}
