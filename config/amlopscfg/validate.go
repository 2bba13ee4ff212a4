package amlopscfg

import (
	"fmt"
	"time"

	"github.com/kompox/amlops/domain/model"
	"github.com/kompox/amlops/internal/naming"
)

// Validate performs semantic validation on the configuration tree.
// Databricks access tokens are not checked here; they are resolved by ToModels.
func (r *Root) Validate() error {
	if r.Version != "" && r.Version != "v1" {
		return fmt.Errorf("version: unsupported version %q", r.Version)
	}
	if err := r.Workspace.validate(); err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	seen := make(map[string]struct{}, len(r.Computes))
	for i, c := range r.Computes {
		if err := c.validate(); err != nil {
			return fmt.Errorf("computes[%d]: %w", i, err)
		}
		if _, exists := seen[c.Name]; exists {
			return fmt.Errorf("computes[%d].name: duplicate compute name %q", i, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

func (w *Workspace) validate() error {
	if w.SubscriptionID == "" {
		return fmt.Errorf("subscriptionId is required")
	}
	if err := naming.ValidateResourceGroupName(w.ResourceGroup); err != nil {
		return fmt.Errorf("resourceGroup: %w", err)
	}
	if err := naming.ValidateWorkspaceName(w.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	return nil
}

func (c *Compute) validate() error {
	if err := naming.ValidateComputeName(c.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	switch c.Type {
	case ComputeTypeAml:
		if c.Aml == nil {
			return fmt.Errorf("aml settings are required for type %q", c.Type)
		}
		if c.Databricks != nil {
			return fmt.Errorf("databricks settings are not allowed for type %q", c.Type)
		}
		_, err := c.Aml.spec()
		return err
	case ComputeTypeDatabricks:
		if c.Databricks == nil {
			return fmt.Errorf("databricks settings are required for type %q", c.Type)
		}
		if c.Aml != nil {
			return fmt.Errorf("aml settings are not allowed for type %q", c.Type)
		}
		return c.Databricks.validate()
	default:
		return fmt.Errorf("type: invalid type %q, must be %q or %q", c.Type, ComputeTypeAml, ComputeTypeDatabricks)
	}
}

func (d *Databricks) validate() error {
	if err := naming.ValidateResourceGroupName(d.ResourceGroup); err != nil {
		return fmt.Errorf("databricks.resourceGroup: %w", err)
	}
	if err := naming.ValidateDatabricksWorkspaceName(d.WorkspaceName); err != nil {
		return fmt.Errorf("databricks.workspaceName: %w", err)
	}
	if _, err := parseTimeout(d.Timeout, model.DefaultDatabricksTimeout); err != nil {
		return fmt.Errorf("databricks.timeout: %w", err)
	}
	return nil
}

func parseTimeout(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}
