package compute

import "github.com/kompox/amlops/domain/model"

// UseCase wires the compute port needed for compute target use cases.
type UseCase struct {
	ComputePort model.ComputePort
}

// EnsureOutput is the result of ensuring a compute target.
type EnsureOutput struct {
	Compute *model.ComputeTarget `json:"compute"`
	// Created is true when this call created or attached the target.
	Created bool `json:"created"`
}
