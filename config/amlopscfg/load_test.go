package amlopscfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kompox/amlops/domain/model"
)

const sampleConfig = `
version: v1
workspace:
  subscriptionId: 00000000-0000-0000-0000-000000000000
  resourceGroup: rg-ml
  name: mlws-dev
  settings:
    AZURE_AUTH_METHOD: client_secret
    AZURE_CLIENT_SECRET: ${SP_SECRET}
computes:
  - name: cpu-cluster
    type: aml
    aml:
      vmSize: STANDARD_D2_V2
  - name: gpu-cluster
    type: aml
    aml:
      vmSize: STANDARD_NC6
      vmPriority: dedicated
      minNodes: 1
      maxNodes: 2
      idleSecondsBeforeScaledown: 600
      timeout: 20m
  - name: dbcompute
    type: databricks
    databricks:
      resourceGroup: rg-dbx
      workspaceName: dbx-dev
      accessTokenEnv: DBX_TOKEN
`

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amlops.yml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workspace.Name != "mlws-dev" || len(cfg.Computes) != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	ws, defs, err := cfg.ToModels(env(map[string]string{"DBX_TOKEN": "dapi123", "SP_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("ToModels: %v", err)
	}
	if ws.Driver != model.DefaultWorkspaceDriver {
		t.Errorf("driver = %q", ws.Driver)
	}
	if ws.Settings["AZURE_CLIENT_SECRET"] != "s3cret" {
		t.Errorf("settings not expanded: %v", ws.Settings)
	}

	cpu := defs[0]
	if cpu.Kind != model.ComputeKindAml || *cpu.Aml != model.DefaultAmlComputeSpec("STANDARD_D2_V2") {
		t.Errorf("cpu defaults not applied: %+v", cpu.Aml)
	}

	gpu := defs[1].Aml
	want := model.AmlComputeSpec{
		VMSize:              "STANDARD_NC6",
		VMPriority:          model.VMPriorityDedicated,
		MinNodes:            1,
		MaxNodes:            2,
		IdleBeforeScaleDown: 10 * time.Minute,
		Timeout:             20 * time.Minute,
	}
	if *gpu != want {
		t.Errorf("gpu spec = %+v, want %+v", *gpu, want)
	}

	db := defs[2]
	if db.Kind != model.ComputeKindDatabricks || db.Databricks.AccessToken != "dapi123" {
		t.Errorf("unexpected databricks definition: %+v", db)
	}
	if db.Databricks.Timeout != model.DefaultDatabricksTimeout {
		t.Errorf("databricks timeout = %v", db.Databricks.Timeout)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Parse([]byte("workspace: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("workspace:\n  unknownKey: 1\n")); err == nil {
		t.Error("expected unknown field error")
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workspace.Name != "" || len(cfg.Computes) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestToModels_MissingToken(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = cfg.ToModels(env(nil))
	if err == nil || !strings.Contains(err.Error(), "DBX_TOKEN") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestToModels_Selected(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	name := cfg.Computes[0].Name
	_, defs, err := cfg.ToModels(env(nil), name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != name || defs[0].Kind != model.ComputeKindAml {
		t.Errorf("unexpected definitions: %+v", defs)
	}

	if _, _, err := cfg.ToModels(env(nil), "undeclared"); !errors.Is(err, model.ErrComputeNotFound) {
		t.Errorf("expected ErrComputeNotFound, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	out, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "accessTokenEnv: DBX_TOKEN") {
		t.Errorf("marshaled config missing databricks section:\n%s", out)
	}
}
