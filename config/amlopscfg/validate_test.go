package amlopscfg

import (
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func validRoot() *Root {
	return &Root{
		Version: "v1",
		Workspace: Workspace{
			SubscriptionID: "sub",
			ResourceGroup:  "rg",
			Name:           "mlws",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Root)
		wantErr string
	}{
		{name: "valid empty computes", mutate: func(r *Root) {}},
		{name: "bad version", mutate: func(r *Root) { r.Version = "v2" }, wantErr: "version"},
		{name: "missing subscription", mutate: func(r *Root) { r.Workspace.SubscriptionID = "" }, wantErr: "subscriptionId"},
		{name: "bad workspace name", mutate: func(r *Root) { r.Workspace.Name = "m" }, wantErr: "workspace: name"},
		{
			name: "unknown type",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "cpu", Type: "hdi"}}
			},
			wantErr: "invalid type",
		},
		{
			name: "aml without settings",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "cpu", Type: ComputeTypeAml}}
			},
			wantErr: "aml settings are required",
		},
		{
			name: "aml with databricks settings",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "cpu", Type: ComputeTypeAml, Aml: &Aml{VMSize: "S"}, Databricks: &Databricks{}}}
			},
			wantErr: "not allowed",
		},
		{
			name: "min above max",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "cpu", Type: ComputeTypeAml, Aml: &Aml{VMSize: "S", MinNodes: intp(3), MaxNodes: intp(2)}}}
			},
			wantErr: "min nodes",
		},
		{
			name: "bad priority",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "cpu", Type: ComputeTypeAml, Aml: &Aml{VMSize: "S", VMPriority: "spot"}}}
			},
			wantErr: "vmPriority",
		},
		{
			name: "bad timeout",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "cpu", Type: ComputeTypeAml, Aml: &Aml{VMSize: "S", Timeout: "-1m"}}}
			},
			wantErr: "aml.timeout",
		},
		{
			name: "duplicate names",
			mutate: func(r *Root) {
				r.Computes = []Compute{
					{Name: "cpu", Type: ComputeTypeAml, Aml: &Aml{VMSize: "S"}},
					{Name: "cpu", Type: ComputeTypeAml, Aml: &Aml{VMSize: "S"}},
				}
			},
			wantErr: "duplicate",
		},
		{
			name: "databricks bad workspace",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "dbc", Type: ComputeTypeDatabricks, Databricks: &Databricks{ResourceGroup: "rg", WorkspaceName: "x"}}}
			},
			wantErr: "databricks.workspaceName",
		},
		{
			name: "databricks valid",
			mutate: func(r *Root) {
				r.Computes = []Compute{{Name: "dbc", Type: ComputeTypeDatabricks, Databricks: &Databricks{ResourceGroup: "rg", WorkspaceName: "dbws", Timeout: "30m"}}}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRoot()
			tt.mutate(r)
			err := r.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
