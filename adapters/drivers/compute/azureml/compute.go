package azureml

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"
	"github.com/kompox/amlops/domain/model"
	"github.com/kompox/amlops/internal/logging"
)

func (d *driver) api(ws *model.Workspace) (computeAPI, error) {
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	return d.newAPI(ws.SubscriptionID)
}

// location returns the workspace location, looking it up when not configured.
func (d *driver) location(ctx context.Context, api computeAPI, ws *model.Workspace) (string, error) {
	if ws.Location != "" {
		return ws.Location, nil
	}
	loc, err := api.workspaceLocation(ctx, ws.ResourceGroup, ws.Name)
	if err != nil {
		if isNotFoundError(err) {
			return "", fmt.Errorf("%w: workspace %s not found in resource group %s", model.ErrWorkspaceInvalid, ws.Name, ws.ResourceGroup)
		}
		return "", fmt.Errorf("failed to get workspace %s: %w", ws.Name, err)
	}
	return loc, nil
}

// ComputeGet returns the named compute target.
func (d *driver) ComputeGet(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
	api, err := d.api(ws)
	if err != nil {
		return nil, err
	}
	res, err := api.getCompute(ctx, ws.ResourceGroup, ws.Name, name)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrComputeNotFound, name)
		}
		return nil, fmt.Errorf("failed to get compute %s: %w", name, err)
	}
	return toComputeTarget(res), nil
}

// ComputeList returns all compute targets in the workspace.
func (d *driver) ComputeList(ctx context.Context, ws *model.Workspace) ([]*model.ComputeTarget, error) {
	api, err := d.api(ws)
	if err != nil {
		return nil, err
	}
	items, err := api.listComputes(ctx, ws.ResourceGroup, ws.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list computes in %s: %w", ws.Name, err)
	}
	out := make([]*model.ComputeTarget, 0, len(items))
	for _, item := range items {
		if t := toComputeTarget(item); t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// AmlComputeCreate creates an AmlCompute cluster and waits at most spec.Timeout for it.
func (d *driver) AmlComputeCreate(ctx context.Context, ws *model.Workspace, name string, spec model.AmlComputeSpec) (_ *model.ComputeTarget, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "AmlComputeCreate", "compute", name, "vmSize", spec.VMSize)
	defer func() { cleanup(err) }()

	api, err := d.api(ws)
	if err != nil {
		return nil, err
	}

	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = model.DefaultAmlTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	location, err := d.location(ctx, api, ws)
	if err != nil {
		return nil, err
	}

	params := amlComputeResource(location, spec)
	res, err := api.createOrUpdateCompute(ctx, ws.ResourceGroup, ws.Name, name, params)
	if err != nil {
		return nil, d.provisionError(ctx, name, timeout, err)
	}
	return checkProvisioned(name, toComputeTarget(res))
}

// DatabricksAttach attaches a Databricks workspace as a compute target.
func (d *driver) DatabricksAttach(ctx context.Context, ws *model.Workspace, name string, spec model.DatabricksSpec) (_ *model.ComputeTarget, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "DatabricksAttach", "compute", name, "databricksWorkspace", spec.WorkspaceName)
	defer func() { cleanup(err) }()

	api, err := d.api(ws)
	if err != nil {
		return nil, err
	}

	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = model.DefaultDatabricksTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	databricksID := spec.ResourceID(ws.SubscriptionID)
	if err := api.checkResource(ctx, databricksID, databricksAPIVersion); err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: databricks workspace %s not found in resource group %s", model.ErrComputeInvalid, spec.WorkspaceName, spec.ResourceGroup)
		}
		return nil, fmt.Errorf("failed to get databricks workspace %s: %w", spec.WorkspaceName, err)
	}

	location, err := d.location(ctx, api, ws)
	if err != nil {
		return nil, err
	}

	params := databricksResource(location, databricksID, spec)
	res, err := api.createOrUpdateCompute(ctx, ws.ResourceGroup, ws.Name, name, params)
	if err != nil {
		return nil, d.provisionError(ctx, name, timeout, err)
	}
	return checkProvisioned(name, toComputeTarget(res))
}

// ComputeDelete deletes the target, or detaches it leaving the underlying
// resource in place. A missing target is not an error.
func (d *driver) ComputeDelete(ctx context.Context, ws *model.Workspace, name string, detach bool) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ComputeDelete", "compute", name, "detach", detach)
	defer func() { cleanup(err) }()

	api, err := d.api(ws)
	if err != nil {
		return err
	}

	action := armmachinelearning.UnderlyingResourceActionDelete
	if detach {
		action = armmachinelearning.UnderlyingResourceActionDetach
	}
	if err := api.deleteCompute(ctx, ws.ResourceGroup, ws.Name, name, action); err != nil {
		if isNotFoundError(err) {
			logging.FromContext(ctx).Info(ctx, "compute target already absent", "compute", name)
			return nil
		}
		return fmt.Errorf("failed to delete compute %s: %s", name, azureShorterErrorString(err))
	}
	return nil
}

func (d *driver) provisionError(ctx context.Context, name string, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s did not complete within %s", model.ErrComputeProvisioningFailed, name, timeout)
	}
	return fmt.Errorf("%w: %s: %w", model.ErrComputeProvisioningFailed, name, err)
}

func checkProvisioned(name string, t *model.ComputeTarget) (*model.ComputeTarget, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: %s: empty response", model.ErrComputeProvisioningFailed, name)
	}
	if t.Name == "" {
		t.Name = name
	}
	if t.Failed() {
		detail := t.ProvisioningState
		if len(t.ProvisioningErrors) > 0 {
			detail += ": " + strings.Join(t.ProvisioningErrors, "; ")
		}
		return t, fmt.Errorf("%w: %s: %s", model.ErrComputeProvisioningFailed, name, detail)
	}
	return t, nil
}
