package azureml

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// databricksAPIVersion is used for the generic ARM lookup of Databricks workspaces.
const databricksAPIVersion = "2023-02-01"

// computeAPI is the subset of the Azure SDK the driver depends on.
type computeAPI interface {
	getCompute(ctx context.Context, rg, ws, name string) (*armmachinelearning.ComputeResource, error)
	listComputes(ctx context.Context, rg, ws string) ([]*armmachinelearning.ComputeResource, error)
	createOrUpdateCompute(ctx context.Context, rg, ws, name string, params armmachinelearning.ComputeResource) (*armmachinelearning.ComputeResource, error)
	deleteCompute(ctx context.Context, rg, ws, name string, action armmachinelearning.UnderlyingResourceAction) error
	workspaceLocation(ctx context.Context, rg, ws string) (string, error)
	checkResource(ctx context.Context, resourceID, apiVersion string) error
}

// sdkAPI implements computeAPI with the ARM clients.
type sdkAPI struct {
	computes      *armmachinelearning.ComputeClient
	workspaces    *armmachinelearning.WorkspacesClient
	resources     *armresources.Client
	pollFrequency time.Duration
}

func newSDKAPI(subscriptionID string, cred azcore.TokenCredential, poll time.Duration) (*sdkAPI, error) {
	computes, err := armmachinelearning.NewComputeClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}
	workspaces, err := armmachinelearning.NewWorkspacesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspaces client: %w", err)
	}
	resources, err := armresources.NewClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}
	return &sdkAPI{computes: computes, workspaces: workspaces, resources: resources, pollFrequency: poll}, nil
}

func (a *sdkAPI) pollOptions() *runtime.PollUntilDoneOptions {
	return &runtime.PollUntilDoneOptions{Frequency: a.pollFrequency}
}

func (a *sdkAPI) getCompute(ctx context.Context, rg, ws, name string) (*armmachinelearning.ComputeResource, error) {
	res, err := a.computes.Get(ctx, rg, ws, name, nil)
	if err != nil {
		return nil, err
	}
	return &res.ComputeResource, nil
}

func (a *sdkAPI) listComputes(ctx context.Context, rg, ws string) ([]*armmachinelearning.ComputeResource, error) {
	var out []*armmachinelearning.ComputeResource
	pager := a.computes.NewListPager(rg, ws, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
	}
	return out, nil
}

func (a *sdkAPI) createOrUpdateCompute(ctx context.Context, rg, ws, name string, params armmachinelearning.ComputeResource) (*armmachinelearning.ComputeResource, error) {
	poller, err := a.computes.BeginCreateOrUpdate(ctx, rg, ws, name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("begin compute create: %w", err)
	}
	res, err := poller.PollUntilDone(ctx, a.pollOptions())
	if err != nil {
		return nil, err
	}
	return &res.ComputeResource, nil
}

func (a *sdkAPI) deleteCompute(ctx context.Context, rg, ws, name string, action armmachinelearning.UnderlyingResourceAction) error {
	poller, err := a.computes.BeginDelete(ctx, rg, ws, name, action, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, a.pollOptions())
	return err
}

func (a *sdkAPI) workspaceLocation(ctx context.Context, rg, ws string) (string, error) {
	res, err := a.workspaces.Get(ctx, rg, ws, nil)
	if err != nil {
		return "", err
	}
	if res.Location == nil || *res.Location == "" {
		return "", fmt.Errorf("workspace %s has no location", ws)
	}
	return *res.Location, nil
}

func (a *sdkAPI) checkResource(ctx context.Context, resourceID, apiVersion string) error {
	_, err := a.resources.GetByID(ctx, resourceID, apiVersion, nil)
	return err
}
