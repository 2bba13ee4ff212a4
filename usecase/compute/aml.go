package compute

import (
	"context"
	"errors"
	"fmt"

	"github.com/kompox/amlops/domain/model"
	"github.com/kompox/amlops/internal/logging"
	"github.com/kompox/amlops/internal/naming"
)

// EnsureAmlInput represents a command to ensure an AmlCompute cluster exists.
type EnsureAmlInput struct {
	Workspace *model.Workspace     `json:"workspace"`
	Name      string               `json:"name"`
	Spec      model.AmlComputeSpec `json:"spec"`
}

// EnsureAml reuses the named AmlCompute cluster or creates it and waits for
// provisioning to complete. A target of another kind with the same name is
// reported as model.ErrComputeKindMismatch.
func (u *UseCase) EnsureAml(ctx context.Context, in *EnsureAmlInput) (*EnsureOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: input is required", model.ErrComputeInvalid)
	}
	if err := in.Workspace.Validate(); err != nil {
		return nil, err
	}
	if err := naming.ValidateComputeName(in.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrComputeInvalid, err)
	}
	if err := in.Spec.Validate(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx).With("compute", in.Name)

	existing, err := u.ComputePort.Get(ctx, in.Workspace, in.Name)
	switch {
	case err == nil:
		if existing.Kind != model.ComputeKindAml {
			return nil, fmt.Errorf("%w: %s is %s, not %s", model.ErrComputeKindMismatch, in.Name, existing.Kind, model.ComputeKindAml)
		}
		log.Info(ctx, "found existing compute target, reusing it", "state", existing.ProvisioningState)
		return &EnsureOutput{Compute: existing}, nil
	case !errors.Is(err, model.ErrComputeNotFound):
		return nil, fmt.Errorf("failed to get compute %s: %w", in.Name, err)
	}

	log.Info(ctx, "creating compute target",
		"vmSize", in.Spec.VMSize,
		"vmPriority", in.Spec.VMPriority,
		"minNodes", in.Spec.MinNodes,
		"maxNodes", in.Spec.MaxNodes,
		"idleBeforeScaleDown", in.Spec.IdleBeforeScaleDown.String(),
		"timeout", in.Spec.Timeout.String(),
	)
	created, err := u.ComputePort.CreateAml(ctx, in.Workspace, in.Name, in.Spec)
	if err != nil {
		return nil, fmt.Errorf("an error occurred trying to provision compute %s: %w", in.Name, err)
	}
	log.Info(ctx, "compute target provisioned", "state", created.ProvisioningState)
	return &EnsureOutput{Compute: created, Created: true}, nil
}
