package compute

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kompox/amlops/domain/model"
	"github.com/kompox/amlops/internal/logging"
	"github.com/kompox/amlops/internal/naming"
)

// EnsureDatabricksInput represents a command to ensure a Databricks compute target is attached.
type EnsureDatabricksInput struct {
	Workspace *model.Workspace     `json:"workspace"`
	Name      string               `json:"name"`
	Spec      model.DatabricksSpec `json:"spec"`
}

// EnsureDatabricks reuses the named Databricks compute target or attaches the
// Databricks workspace described by the spec and waits for the attach.
func (u *UseCase) EnsureDatabricks(ctx context.Context, in *EnsureDatabricksInput) (*EnsureOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is required", model.ErrComputeInvalid)
	}
	if err := in.Workspace.Validate(); err != nil {
		return nil, err
	}
	if err := validateDatabricks(in.Name, &in.Spec); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx).With("compute", in.Name)

	existing, err := u.ComputePort.Get(ctx, in.Workspace, in.Name)
	switch {
	case err == nil:
		if existing.Kind != model.ComputeKindDatabricks {
			return nil, fmt.Errorf("%w: %s is %s, not %s", model.ErrComputeKindMismatch, in.Name, existing.Kind, model.ComputeKindDatabricks)
		}
		log.Info(ctx, "compute target already exists", "state", existing.ProvisioningState)
		return &EnsureOutput{Compute: existing}, nil
	case !errors.Is(err, model.ErrComputeNotFound):
		return nil, fmt.Errorf("failed to get compute %s: %w", in.Name, err)
	}

	log.Info(ctx, "compute not found, attaching databricks workspace",
		"databricksResourceGroup", in.Spec.ResourceGroup,
		"databricksWorkspace", in.Spec.WorkspaceName,
	)
	attached, err := u.ComputePort.AttachDatabricks(ctx, in.Workspace, in.Name, in.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to attach databricks compute %s: %w", in.Name, err)
	}
	log.Info(ctx, "databricks compute attached", "state", attached.ProvisioningState)
	return &EnsureOutput{Compute: attached, Created: true}, nil
}

func validateDatabricks(name string, spec *model.DatabricksSpec) error {
	if err := naming.ValidateComputeName(name); err != nil {
		return fmt.Errorf("%w: %v", model.ErrComputeInvalid, err)
	}
	if err := naming.ValidateResourceGroupName(spec.ResourceGroup); err != nil {
		return fmt.Errorf("%w: databricks %v", model.ErrComputeInvalid, err)
	}
	if err := naming.ValidateDatabricksWorkspaceName(spec.WorkspaceName); err != nil {
		return fmt.Errorf("%w: %v", model.ErrComputeInvalid, err)
	}
	if strings.TrimSpace(spec.AccessToken) == "" {
		return fmt.Errorf("%w: databricks access token is required", model.ErrComputeInvalid)
	}
	if spec.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", model.ErrComputeInvalid)
	}
	return nil
}
