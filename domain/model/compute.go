package model

import (
	"fmt"
	"strings"
	"time"
)

// ComputeKind is the platform compute type of a target.
type ComputeKind string

const (
	ComputeKindAml        ComputeKind = "AmlCompute"
	ComputeKindDatabricks ComputeKind = "Databricks"
)

// VMPriority selects dedicated or preemptible nodes for an AmlCompute cluster.
type VMPriority string

const (
	VMPriorityDedicated   VMPriority = "Dedicated"
	VMPriorityLowPriority VMPriority = "LowPriority"
)

// ParseVMPriority accepts the platform names case-insensitively, with or without
// the hyphen/underscore variants seen in scripts ("low-priority", "low_priority").
func ParseVMPriority(s string) (VMPriority, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "", "lowpriority":
		return VMPriorityLowPriority, nil
	case "dedicated":
		return VMPriorityDedicated, nil
	default:
		return "", fmt.Errorf("%w: unsupported vm priority %q", ErrComputeInvalid, s)
	}
}

// Provisioning states reported by the platform.
const (
	ProvisioningStateSucceeded = "Succeeded"
	ProvisioningStateFailed    = "Failed"
	ProvisioningStateCanceled  = "Canceled"
)

// Defaults applied to AmlComputeSpec and DatabricksSpec.
const (
	DefaultAmlMinNodes            = 0
	DefaultAmlMaxNodes            = 4
	DefaultAmlIdleBeforeScaleDown = 300 * time.Second
	DefaultAmlTimeout             = 10 * time.Minute
	DefaultDatabricksTimeout      = 20 * time.Minute
)

// AmlComputeSpec describes an autoscaling managed compute cluster.
type AmlComputeSpec struct {
	VMSize              string        `json:"vm_size"`
	VMPriority          VMPriority    `json:"vm_priority"`
	MinNodes            int           `json:"min_nodes"`
	MaxNodes            int           `json:"max_nodes"`
	IdleBeforeScaleDown time.Duration `json:"idle_before_scale_down"`
	Timeout             time.Duration `json:"timeout"` // provisioning wait bound
}

// DefaultAmlComputeSpec returns a low priority 0..4 node spec for the given VM size.
func DefaultAmlComputeSpec(vmSize string) AmlComputeSpec {
	return AmlComputeSpec{
		VMSize:              vmSize,
		VMPriority:          VMPriorityLowPriority,
		MinNodes:            DefaultAmlMinNodes,
		MaxNodes:            DefaultAmlMaxNodes,
		IdleBeforeScaleDown: DefaultAmlIdleBeforeScaleDown,
		Timeout:             DefaultAmlTimeout,
	}
}

// Validate checks the scale settings.
func (s *AmlComputeSpec) Validate() error {
	if strings.TrimSpace(s.VMSize) == "" {
		return fmt.Errorf("%w: vm size is required", ErrComputeInvalid)
	}
	if s.VMPriority != VMPriorityDedicated && s.VMPriority != VMPriorityLowPriority {
		return fmt.Errorf("%w: unsupported vm priority %q", ErrComputeInvalid, s.VMPriority)
	}
	if s.MinNodes < 0 {
		return fmt.Errorf("%w: min nodes must not be negative", ErrComputeInvalid)
	}
	if s.MaxNodes < 1 {
		return fmt.Errorf("%w: max nodes must be at least 1", ErrComputeInvalid)
	}
	if s.MinNodes > s.MaxNodes {
		return fmt.Errorf("%w: min nodes (%d) exceeds max nodes (%d)", ErrComputeInvalid, s.MinNodes, s.MaxNodes)
	}
	if s.IdleBeforeScaleDown < 0 {
		return fmt.Errorf("%w: idle time before scale down must not be negative", ErrComputeInvalid)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrComputeInvalid)
	}
	return nil
}

// DatabricksSpec describes the Databricks workspace to attach.
type DatabricksSpec struct {
	ResourceGroup string        `json:"resource_group"`
	WorkspaceName string        `json:"workspace_name"`
	AccessToken   string        `json:"-"`
	WorkspaceURL  string        `json:"workspace_url,omitempty"`
	Timeout       time.Duration `json:"timeout"`
}

// ResourceID returns the ARM resource ID of the Databricks workspace in the given subscription.
func (s *DatabricksSpec) ResourceID(subscriptionID string) string {
	return "/subscriptions/" + subscriptionID +
		"/resourceGroups/" + s.ResourceGroup +
		"/providers/Microsoft.Databricks/workspaces/" + s.WorkspaceName
}

// ComputeDefinition is one declared compute target. Exactly one of Aml and
// Databricks is set, matching Kind.
type ComputeDefinition struct {
	Name       string          `json:"name"`
	Kind       ComputeKind     `json:"kind"`
	Aml        *AmlComputeSpec `json:"aml,omitempty"`
	Databricks *DatabricksSpec `json:"databricks,omitempty"`
}

// ComputeTarget is the handle returned by the platform for a compute target.
type ComputeTarget struct {
	Name               string             `json:"name"`
	Kind               ComputeKind        `json:"kind"`
	ResourceID         string             `json:"resource_id,omitempty"`
	Location           string             `json:"location,omitempty"`
	ProvisioningState  string             `json:"provisioning_state,omitempty"`
	ProvisioningErrors []string           `json:"provisioning_errors,omitempty"`
	Attached           bool               `json:"attached"`
	Description        string             `json:"description,omitempty"`
	Aml                *AmlComputeDetails `json:"aml,omitempty"`
	Databricks         *DatabricksDetails `json:"databricks,omitempty"`
}

// AmlComputeDetails is the AmlCompute specific part of a ComputeTarget.
type AmlComputeDetails struct {
	VMSize                     string     `json:"vm_size,omitempty"`
	VMPriority                 VMPriority `json:"vm_priority,omitempty"`
	MinNodes                   int        `json:"min_nodes"`
	MaxNodes                   int        `json:"max_nodes"`
	IdleSecondsBeforeScaleDown int        `json:"idle_seconds_before_scale_down"`
	CurrentNodeCount           int        `json:"current_node_count"`
	TargetNodeCount            int        `json:"target_node_count"`
	AllocationState            string     `json:"allocation_state,omitempty"`
}

// DatabricksDetails is the Databricks specific part of a ComputeTarget.
type DatabricksDetails struct {
	WorkspaceResourceID string `json:"workspace_resource_id,omitempty"`
	WorkspaceURL        string `json:"workspace_url,omitempty"`
}

// Succeeded reports whether the platform finished provisioning the target.
func (c *ComputeTarget) Succeeded() bool {
	return strings.EqualFold(c.ProvisioningState, ProvisioningStateSucceeded)
}

// Failed reports whether provisioning ended in a terminal non-success state.
func (c *ComputeTarget) Failed() bool {
	return strings.EqualFold(c.ProvisioningState, ProvisioningStateFailed) ||
		strings.EqualFold(c.ProvisioningState, ProvisioningStateCanceled)
}
