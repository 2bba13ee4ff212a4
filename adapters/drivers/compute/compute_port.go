package computedrv

import (
	"context"
	"fmt"
	"sync"

	"github.com/kompox/amlops/domain/model"
)

// computePortAdapter implements model.ComputePort backed by compute drivers.
// Drivers are created once per workspace and reused for later calls.
type computePortAdapter struct {
	mu      sync.Mutex
	drivers map[*model.Workspace]Driver
}

func (a *computePortAdapter) driver(ws *model.Workspace) (Driver, error) {
	if ws == nil {
		return nil, model.ErrWorkspaceInvalid
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if d, ok := a.drivers[ws]; ok {
		return d, nil
	}

	name := ws.Driver
	if name == "" {
		name = model.DefaultWorkspaceDriver
	}

	// Get driver factory
	factory, exists := GetDriverFactory(name)
	if !exists {
		return nil, fmt.Errorf("unknown compute driver: %s", name)
	}

	// Create driver with workspace settings
	d, err := factory(ws.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver %s: %w", name, err)
	}
	a.drivers[ws] = d
	return d, nil
}

func (a *computePortAdapter) Get(ctx context.Context, ws *model.Workspace, name string) (*model.ComputeTarget, error) {
	d, err := a.driver(ws)
	if err != nil {
		return nil, err
	}
	return d.ComputeGet(ctx, ws, name)
}

func (a *computePortAdapter) List(ctx context.Context, ws *model.Workspace) ([]*model.ComputeTarget, error) {
	d, err := a.driver(ws)
	if err != nil {
		return nil, err
	}
	return d.ComputeList(ctx, ws)
}

func (a *computePortAdapter) CreateAml(ctx context.Context, ws *model.Workspace, name string, spec model.AmlComputeSpec) (*model.ComputeTarget, error) {
	d, err := a.driver(ws)
	if err != nil {
		return nil, err
	}
	return d.AmlComputeCreate(ctx, ws, name, spec)
}

func (a *computePortAdapter) AttachDatabricks(ctx context.Context, ws *model.Workspace, name string, spec model.DatabricksSpec) (*model.ComputeTarget, error) {
	d, err := a.driver(ws)
	if err != nil {
		return nil, err
	}
	return d.DatabricksAttach(ctx, ws, name, spec)
}

func (a *computePortAdapter) Delete(ctx context.Context, ws *model.Workspace, name string, opts ...model.ComputeDeleteOption) error {
	d, err := a.driver(ws)
	if err != nil {
		return err
	}
	var o model.ComputeDeleteOptions
	for _, opt := range opts {
		opt(&o)
	}
	return d.ComputeDelete(ctx, ws, name, o.Detach)
}

// GetComputePort returns a model.ComputePort implemented via compute drivers.
func GetComputePort() model.ComputePort {
	return &computePortAdapter{drivers: map[*model.Workspace]Driver{}}
}
