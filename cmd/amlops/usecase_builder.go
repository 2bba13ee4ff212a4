package main

import (
	computedrv "github.com/kompox/amlops/adapters/drivers/compute"
	"github.com/kompox/amlops/usecase/compute"
)

// buildComputeUseCase wires the compute use case to the registered drivers.
func buildComputeUseCase() *compute.UseCase {
	return &compute.UseCase{ComputePort: computedrv.GetComputePort()}
}
