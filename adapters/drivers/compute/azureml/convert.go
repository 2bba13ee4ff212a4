package azureml

import (
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"
	"github.com/kompox/amlops/domain/model"
)

const managedByTag = "amlops"

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// amlComputeResource builds the provisioning payload for an AmlCompute cluster.
func amlComputeResource(location string, spec model.AmlComputeSpec) armmachinelearning.ComputeResource {
	return armmachinelearning.ComputeResource{
		Location: to.Ptr(location),
		Tags: map[string]*string{
			"managed-by": to.Ptr(managedByTag),
		},
		Properties: &armmachinelearning.AmlCompute{
			ComputeType: to.Ptr(armmachinelearning.ComputeTypeAmlCompute),
			Properties: &armmachinelearning.AmlComputeProperties{
				VMSize:     to.Ptr(spec.VMSize),
				VMPriority: to.Ptr(armmachinelearning.VMPriority(spec.VMPriority)),
				ScaleSettings: &armmachinelearning.ScaleSettings{
					MinNodeCount:                to.Ptr(int32(spec.MinNodes)),
					MaxNodeCount:                to.Ptr(int32(spec.MaxNodes)),
					NodeIdleTimeBeforeScaleDown: to.Ptr(formatISODuration(spec.IdleBeforeScaleDown)),
				},
			},
		},
	}
}

// databricksResource builds the attach payload for a Databricks workspace.
func databricksResource(location, databricksID string, spec model.DatabricksSpec) armmachinelearning.ComputeResource {
	props := &armmachinelearning.DatabricksProperties{
		DatabricksAccessToken: to.Ptr(spec.AccessToken),
	}
	if spec.WorkspaceURL != "" {
		props.WorkspaceURL = to.Ptr(spec.WorkspaceURL)
	}
	return armmachinelearning.ComputeResource{
		Location: to.Ptr(location),
		Tags: map[string]*string{
			"managed-by": to.Ptr(managedByTag),
		},
		Properties: &armmachinelearning.Databricks{
			ComputeType: to.Ptr(armmachinelearning.ComputeTypeDatabricks),
			ResourceID:  to.Ptr(databricksID),
			Properties:  props,
		},
	}
}

// toComputeTarget converts an SDK compute resource into the domain handle.
func toComputeTarget(res *armmachinelearning.ComputeResource) *model.ComputeTarget {
	if res == nil {
		return nil
	}
	t := &model.ComputeTarget{
		Name:       deref(res.Name),
		ResourceID: deref(res.ID),
		Location:   deref(res.Location),
	}
	if res.Properties == nil {
		return t
	}

	base := res.Properties.GetCompute()
	if base != nil {
		t.Kind = model.ComputeKind(deref(base.ComputeType))
		t.ProvisioningState = string(deref(base.ProvisioningState))
		t.Attached = deref(base.IsAttachedCompute)
		t.Description = deref(base.Description)
		if t.Location == "" {
			t.Location = deref(base.ComputeLocation)
		}
		for _, pe := range base.ProvisioningErrors {
			if pe == nil || pe.Error == nil {
				continue
			}
			msg := deref(pe.Error.Message)
			if code := deref(pe.Error.Code); code != "" {
				msg = code + ": " + msg
			}
			t.ProvisioningErrors = append(t.ProvisioningErrors, msg)
		}
	}

	switch p := res.Properties.(type) {
	case *armmachinelearning.AmlCompute:
		details := &model.AmlComputeDetails{}
		if p.Properties != nil {
			details.VMSize = deref(p.Properties.VMSize)
			details.VMPriority = model.VMPriority(deref(p.Properties.VMPriority))
			details.CurrentNodeCount = int(deref(p.Properties.CurrentNodeCount))
			details.TargetNodeCount = int(deref(p.Properties.TargetNodeCount))
			details.AllocationState = string(deref(p.Properties.AllocationState))
			if ss := p.Properties.ScaleSettings; ss != nil {
				details.MinNodes = int(deref(ss.MinNodeCount))
				details.MaxNodes = int(deref(ss.MaxNodeCount))
				if idle, err := parseISODuration(deref(ss.NodeIdleTimeBeforeScaleDown)); err == nil {
					details.IdleSecondsBeforeScaleDown = int(idle / time.Second)
				}
			}
		}
		t.Aml = details
	case *armmachinelearning.Databricks:
		details := &model.DatabricksDetails{WorkspaceResourceID: deref(p.ResourceID)}
		if p.Properties != nil {
			details.WorkspaceURL = deref(p.Properties.WorkspaceURL)
		}
		t.Databricks = details
	}
	return t
}
