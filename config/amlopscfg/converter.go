package amlopscfg

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kompox/amlops/domain/model"
)

// spec converts AmlCompute settings to a validated domain spec with defaults applied.
func (a *Aml) spec() (model.AmlComputeSpec, error) {
	s := model.DefaultAmlComputeSpec(strings.TrimSpace(a.VMSize))

	prio, err := model.ParseVMPriority(a.VMPriority)
	if err != nil {
		return s, fmt.Errorf("aml.vmPriority: %w", err)
	}
	s.VMPriority = prio
	if a.MinNodes != nil {
		s.MinNodes = *a.MinNodes
	}
	if a.MaxNodes != nil {
		s.MaxNodes = *a.MaxNodes
	}
	if a.IdleSecondsBeforeScaledown != nil {
		s.IdleBeforeScaleDown = time.Duration(*a.IdleSecondsBeforeScaledown) * time.Second
	}
	if s.Timeout, err = parseTimeout(a.Timeout, model.DefaultAmlTimeout); err != nil {
		return s, fmt.Errorf("aml.timeout: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("aml: %w", err)
	}
	return s, nil
}

// ToModels converts the configuration to domain models. lookupEnv resolves
// ${VAR} references in workspace settings and Databricks access tokens;
// os.LookupEnv is used when nil. When names are given, only those computes
// are converted (in file order) and only their tokens are resolved; the
// whole file is still validated.
func (r *Root) ToModels(lookupEnv func(string) (string, bool), names ...string) (*model.Workspace, []model.ComputeDefinition, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if err := r.Validate(); err != nil {
		return nil, nil, err
	}

	var selected map[string]bool
	if len(names) > 0 {
		declared := make(map[string]bool, len(r.Computes))
		for _, c := range r.Computes {
			declared[c.Name] = true
		}
		selected = make(map[string]bool, len(names))
		for _, name := range names {
			if !declared[name] {
				return nil, nil, fmt.Errorf("%w: %s is not declared", model.ErrComputeNotFound, name)
			}
			selected[name] = true
		}
	}

	ws := r.Workspace.ToModel(lookupEnv)

	defs := make([]model.ComputeDefinition, 0, len(r.Computes))
	for i, c := range r.Computes {
		if selected != nil && !selected[c.Name] {
			continue
		}
		def := model.ComputeDefinition{Name: c.Name}
		switch c.Type {
		case ComputeTypeAml:
			s, err := c.Aml.spec()
			if err != nil {
				return nil, nil, fmt.Errorf("computes[%d]: %w", i, err)
			}
			def.Kind = model.ComputeKindAml
			def.Aml = &s
		case ComputeTypeDatabricks:
			s, err := c.Databricks.spec(lookupEnv)
			if err != nil {
				return nil, nil, fmt.Errorf("computes[%d]: %w", i, err)
			}
			def.Kind = model.ComputeKindDatabricks
			def.Databricks = &s
		}
		defs = append(defs, def)
	}
	return ws, defs, nil
}

// ToModel converts the workspace section, expanding ${VAR} in settings.
func (w *Workspace) ToModel(lookupEnv func(string) (string, bool)) *model.Workspace {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	driver := w.Driver
	if driver == "" {
		driver = model.DefaultWorkspaceDriver
	}
	settings := make(map[string]string, len(w.Settings))
	for k, v := range w.Settings {
		settings[k] = os.Expand(v, func(name string) string {
			val, _ := lookupEnv(name)
			return val
		})
	}
	return &model.Workspace{
		SubscriptionID: w.SubscriptionID,
		ResourceGroup:  w.ResourceGroup,
		Name:           w.Name,
		Location:       w.Location,
		Driver:         driver,
		Settings:       settings,
	}
}

func (d *Databricks) spec(lookupEnv func(string) (string, bool)) (model.DatabricksSpec, error) {
	envName := d.AccessTokenEnv
	if envName == "" {
		envName = DefaultAccessTokenEnv
	}
	token, ok := lookupEnv(envName)
	if !ok || strings.TrimSpace(token) == "" {
		return model.DatabricksSpec{}, fmt.Errorf("databricks access token: environment variable %s is not set", envName)
	}
	timeout, err := parseTimeout(d.Timeout, model.DefaultDatabricksTimeout)
	if err != nil {
		return model.DatabricksSpec{}, fmt.Errorf("databricks.timeout: %w", err)
	}
	return model.DatabricksSpec{
		ResourceGroup: d.ResourceGroup,
		WorkspaceName: d.WorkspaceName,
		WorkspaceURL:  d.WorkspaceURL,
		AccessToken:   strings.TrimSpace(token),
		Timeout:       timeout,
	}, nil
}
