package model

import (
	"fmt"
	"strings"

	"github.com/kompox/amlops/internal/naming"
)

// Workspace identifies the AML workspace that owns compute targets.
type Workspace struct {
	SubscriptionID string            `json:"subscription_id"`
	ResourceGroup  string            `json:"resource_group"`
	Name           string            `json:"name"`
	Location       string            `json:"location,omitempty"` // looked up from the workspace when empty
	Driver         string            `json:"driver"`             // e.g., "azureml"
	Settings       map[string]string `json:"-"`                  // driver settings (credentials)
}

// DefaultWorkspaceDriver is used when a workspace does not name a driver.
const DefaultWorkspaceDriver = "azureml"

// Validate checks the identifiers needed to address the workspace.
func (w *Workspace) Validate() error {
	if w == nil {
		return fmt.Errorf("%w: workspace is required", ErrWorkspaceInvalid)
	}
	if strings.TrimSpace(w.SubscriptionID) == "" {
		return fmt.Errorf("%w: subscription id is required", ErrWorkspaceInvalid)
	}
	if err := naming.ValidateResourceGroupName(w.ResourceGroup); err != nil {
		return fmt.Errorf("%w: %v", ErrWorkspaceInvalid, err)
	}
	if err := naming.ValidateWorkspaceName(w.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrWorkspaceInvalid, err)
	}
	return nil
}

// ResourceID returns the ARM resource ID of the workspace.
func (w *Workspace) ResourceID() string {
	return "/subscriptions/" + w.SubscriptionID +
		"/resourceGroups/" + w.ResourceGroup +
		"/providers/Microsoft.MachineLearningServices/workspaces/" + w.Name
}
