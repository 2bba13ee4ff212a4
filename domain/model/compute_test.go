package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseVMPriority(t *testing.T) {
	tests := []struct {
		in      string
		want    VMPriority
		wantErr bool
	}{
		{in: "", want: VMPriorityLowPriority},
		{in: "lowpriority", want: VMPriorityLowPriority},
		{in: "Low-Priority", want: VMPriorityLowPriority},
		{in: "low_priority", want: VMPriorityLowPriority},
		{in: "Dedicated", want: VMPriorityDedicated},
		{in: "spot", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseVMPriority(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrComputeInvalid) {
				t.Errorf("ParseVMPriority(%q) err = %v, want ErrComputeInvalid", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVMPriority(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseVMPriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultAmlComputeSpec(t *testing.T) {
	s := DefaultAmlComputeSpec("STANDARD_D2_V2")
	if s.VMPriority != VMPriorityLowPriority || s.MinNodes != 0 || s.MaxNodes != 4 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.IdleBeforeScaleDown != 300*time.Second || s.Timeout != 10*time.Minute {
		t.Errorf("unexpected durations: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default spec should be valid: %v", err)
	}
}

func TestAmlComputeSpecValidate(t *testing.T) {
	base := DefaultAmlComputeSpec("STANDARD_D2_V2")
	tests := []struct {
		name   string
		mutate func(s *AmlComputeSpec)
	}{
		{name: "missing vm size", mutate: func(s *AmlComputeSpec) { s.VMSize = " " }},
		{name: "bad priority", mutate: func(s *AmlComputeSpec) { s.VMPriority = "Spot" }},
		{name: "negative min", mutate: func(s *AmlComputeSpec) { s.MinNodes = -1 }},
		{name: "zero max", mutate: func(s *AmlComputeSpec) { s.MaxNodes = 0 }},
		{name: "min above max", mutate: func(s *AmlComputeSpec) { s.MinNodes = 5 }},
		{name: "negative idle", mutate: func(s *AmlComputeSpec) { s.IdleBeforeScaleDown = -time.Second }},
		{name: "negative timeout", mutate: func(s *AmlComputeSpec) { s.Timeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrComputeInvalid) {
				t.Fatalf("expected ErrComputeInvalid, got %v", err)
			}
		})
	}
}

func TestResourceIDs(t *testing.T) {
	ws := &Workspace{SubscriptionID: "sub", ResourceGroup: "rg", Name: "mlws"}
	if got, want := ws.ResourceID(), "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.MachineLearningServices/workspaces/mlws"; got != want {
		t.Errorf("workspace ResourceID = %q, want %q", got, want)
	}
	db := &DatabricksSpec{ResourceGroup: "dbrg", WorkspaceName: "dbws"}
	if got, want := db.ResourceID("sub"), "/subscriptions/sub/resourceGroups/dbrg/providers/Microsoft.Databricks/workspaces/dbws"; got != want {
		t.Errorf("databricks ResourceID = %q, want %q", got, want)
	}
}

func TestWorkspaceValidate(t *testing.T) {
	valid := Workspace{SubscriptionID: "sub", ResourceGroup: "rg", Name: "mlws"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var nilWS *Workspace
	if err := nilWS.Validate(); !errors.Is(err, ErrWorkspaceInvalid) {
		t.Errorf("nil workspace: got %v", err)
	}
	for _, ws := range []Workspace{
		{ResourceGroup: "rg", Name: "mlws"},
		{SubscriptionID: "sub", Name: "mlws"},
		{SubscriptionID: "sub", ResourceGroup: "rg", Name: "x"},
	} {
		if err := ws.Validate(); !errors.Is(err, ErrWorkspaceInvalid) {
			t.Errorf("%+v: expected ErrWorkspaceInvalid, got %v", ws, err)
		}
	}
}

func TestComputeTargetStates(t *testing.T) {
	c := &ComputeTarget{ProvisioningState: "succeeded"}
	if !c.Succeeded() || c.Failed() {
		t.Errorf("succeeded state misreported")
	}
	c.ProvisioningState = "Canceled"
	if c.Succeeded() || !c.Failed() {
		t.Errorf("canceled state misreported")
	}
	c.ProvisioningState = "Creating"
	if c.Succeeded() || c.Failed() {
		t.Errorf("creating state misreported")
	}
}

func TestAmlComputeDetailsJSONIdleSeconds(t *testing.T) {
	b, err := json.Marshal(AmlComputeDetails{VMSize: "STANDARD_D2_V2", IdleSecondsBeforeScaleDown: 300})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"idle_seconds_before_scale_down":300`) {
		t.Errorf("unexpected JSON: %s", b)
	}
}
