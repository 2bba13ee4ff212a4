package computedrv

import (
	"context"
	"sort"

	"github.com/kompox/amlops/domain/model"
)

// Driver abstracts platform-specific compute target operations.
// Implementations live under adapters/drivers/compute/<name> and return an
// identifier such as "azureml" via ID().
type Driver interface {
	// ID returns the driver identifier (e.g., "azureml").
	ID() string

	// ComputeGet returns the named compute target or model.ErrComputeNotFound.
	ComputeGet(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error)

	// ComputeList returns all compute targets registered in the workspace.
	ComputeList(ctx context.Context, ws *model.Workspace) ([]*model.ComputeTarget, error)

	// AmlComputeCreate creates an AmlCompute cluster and waits for provisioning to finish.
	AmlComputeCreate(ctx context.Context, ws *model.Workspace, name string, spec model.AmlComputeSpec) (*model.ComputeTarget, error)

	// DatabricksAttach attaches a Databricks workspace and waits for the attach to finish.
	DatabricksAttach(ctx context.Context, ws *model.Workspace, name string, spec model.DatabricksSpec) (*model.ComputeTarget, error)

	// ComputeDelete deletes or detaches the named compute target.
	ComputeDelete(ctx context.Context, ws *model.Workspace, name string, detach bool) error
}

// driverFactory is a constructor function for a compute driver.
type driverFactory func(settings map[string]string) (Driver, error)

// registry holds registered drivers by name.
var registry = map[string]driverFactory{}

// Register makes a driver available by the given name. Drivers should call
// this from their init() function.
func Register(name string, factory driverFactory) {
	registry[name] = factory
}

// GetDriverFactory returns the driver factory function for the given name.
func GetDriverFactory(name string) (driverFactory, bool) {
	factory, exists := registry[name]
	return factory, exists
}

// Drivers returns the registered driver names in sorted order.
func Drivers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
