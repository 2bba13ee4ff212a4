// Package amlopscfg defines the configuration schema (structs) for amlops.yml
// together with loading, validation and conversion to domain models.
package amlopscfg

// DefaultConfigPath is used when neither --config nor AMLOPS_CONFIG is set.
const DefaultConfigPath = "amlops.yml"

// DefaultAccessTokenEnv names the variable holding a Databricks access token.
const DefaultAccessTokenEnv = "DATABRICKS_ACCESS_TOKEN"

// Compute types accepted in computes[].type.
const (
	ComputeTypeAml        = "aml"
	ComputeTypeDatabricks = "databricks"
)

// Root is the root structure of amlops.yml.
type Root struct {
	Version   string    `yaml:"version"`
	Workspace Workspace `yaml:"workspace"`
	Computes  []Compute `yaml:"computes,omitempty"`
}

// Workspace represents the AML workspace and the driver settings used to reach it.
type Workspace struct {
	SubscriptionID string            `yaml:"subscriptionId"`
	ResourceGroup  string            `yaml:"resourceGroup"`
	Name           string            `yaml:"name"`
	Location       string            `yaml:"location,omitempty"`
	Driver         string            `yaml:"driver,omitempty"`   // default "azureml"
	Settings       map[string]string `yaml:"settings,omitempty"` // e.g., AZURE_AUTH_METHOD; ${VAR} is expanded
}

// Compute declares one compute target. Exactly one of Aml and Databricks must
// be set, matching Type.
type Compute struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"` // aml | databricks
	Aml        *Aml        `yaml:"aml,omitempty"`
	Databricks *Databricks `yaml:"databricks,omitempty"`
}

// Aml holds AmlCompute provisioning settings. Unset fields take the defaults
// lowpriority, 0..4 nodes, 300 seconds idle and a 10m timeout.
type Aml struct {
	VMSize                     string `yaml:"vmSize"`
	VMPriority                 string `yaml:"vmPriority,omitempty"`
	MinNodes                   *int   `yaml:"minNodes,omitempty"`
	MaxNodes                   *int   `yaml:"maxNodes,omitempty"`
	IdleSecondsBeforeScaledown *int   `yaml:"idleSecondsBeforeScaledown,omitempty"`
	Timeout                    string `yaml:"timeout,omitempty"` // Go duration, e.g. "10m"
}

// Databricks holds attach settings. The access token is never stored in the
// file; it is read from the environment variable named by AccessTokenEnv.
type Databricks struct {
	ResourceGroup  string `yaml:"resourceGroup"`
	WorkspaceName  string `yaml:"workspaceName"`
	WorkspaceURL   string `yaml:"workspaceUrl,omitempty"`
	AccessTokenEnv string `yaml:"accessTokenEnv,omitempty"`
	Timeout        string `yaml:"timeout,omitempty"`
}
