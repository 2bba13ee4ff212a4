package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kompox/amlops/config/amlopscfg"
	"github.com/kompox/amlops/domain/model"
)

// workspaceFlags override the workspace section of the config file.
type workspaceFlags struct {
	subscription  string
	resourceGroup string
	name          string
	location      string
	authMethod    string
}

func (f *workspaceFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.subscription, "subscription", "", "Azure subscription ID (env AZURE_SUBSCRIPTION_ID)")
	fs.StringVar(&f.resourceGroup, "resource-group", "", "Resource group of the AML workspace")
	fs.StringVar(&f.name, "workspace", "", "AML workspace name")
	fs.StringVar(&f.location, "location", "", "Workspace location (looked up when omitted)")
	fs.StringVar(&f.authMethod, "auth-method", "", "Azure auth method (default|client_secret|client_certificate|managed_identity|workload_identity|azure_cli|azure_developer_cli)")
}

func (f *workspaceFlags) apply(w *amlopscfg.Workspace) {
	if f.subscription != "" {
		w.SubscriptionID = f.subscription
	}
	if w.SubscriptionID == "" {
		w.SubscriptionID = os.Getenv("AZURE_SUBSCRIPTION_ID")
	}
	if f.resourceGroup != "" {
		w.ResourceGroup = f.resourceGroup
	}
	if f.name != "" {
		w.Name = f.name
	}
	if f.location != "" {
		w.Location = f.location
	}
	if f.authMethod != "" {
		if w.Settings == nil {
			w.Settings = map[string]string{}
		}
		w.Settings["AZURE_AUTH_METHOD"] = f.authMethod
	}
}

// loadConfig reads the config file named by --config. Without --config the
// default amlops.yml is read when present and an empty config is used otherwise.
func loadConfig(cmd *cobra.Command) (*amlopscfg.Root, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = amlopscfg.DefaultConfigPath
	}
	cfg, err := amlopscfg.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &amlopscfg.Root{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// resolveWorkspace builds the target workspace from config and flag overrides.
func resolveWorkspace(cmd *cobra.Command, f *workspaceFlags) (*model.Workspace, *amlopscfg.Root, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	f.apply(&cfg.Workspace)
	ws := cfg.Workspace.ToModel(nil)
	if err := ws.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w (set it in the config file or with --subscription/--resource-group/--workspace)", err)
	}
	return ws, cfg, nil
}
