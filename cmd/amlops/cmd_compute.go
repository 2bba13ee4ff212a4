package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kompox/amlops/config/amlopscfg"
	"github.com/kompox/amlops/domain/model"
	"github.com/kompox/amlops/usecase/compute"
)

// newCmdCompute returns the parent command for compute target operations.
func newCmdCompute() *cobra.Command {
	wf := &workspaceFlags{}
	c := &cobra.Command{
		Use:     "compute",
		Aliases: []string{"c"},
		Short:   "Compute target related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	wf.register(c.PersistentFlags())

	c.AddCommand(newCmdComputeAml(wf))
	c.AddCommand(newCmdComputeDatabricks(wf))
	c.AddCommand(newCmdComputeGet(wf))
	c.AddCommand(newCmdComputeList(wf))
	c.AddCommand(newCmdComputeDelete(wf))
	c.AddCommand(newCmdComputeApply(wf))
	return c
}

func computeResourceID(ws *model.Workspace, name string) string {
	return ws.ResourceID() + "/computes/" + name
}

func newCmdComputeAml(wf *workspaceFlags) *cobra.Command {
	var (
		vmSize      string
		vmPriority  string
		minNodes    int
		maxNodes    int
		idleSeconds int
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "aml <name>",
		Short: "Reuse or create an autoscaling AmlCompute cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ws, _, err := resolveWorkspace(cmd, wf)
			if err != nil {
				return err
			}
			prio, err := model.ParseVMPriority(vmPriority)
			if err != nil {
				return err
			}
			spec := model.AmlComputeSpec{
				VMSize:              vmSize,
				VMPriority:          prio,
				MinNodes:            minNodes,
				MaxNodes:            maxNodes,
				IdleBeforeScaleDown: time.Duration(idleSeconds) * time.Second,
				Timeout:             timeout,
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "compute.aml", computeResourceID(ws, args[0]))
			defer func() { cleanup(err) }()

			out, err := buildComputeUseCase().EnsureAml(ctx, &compute.EnsureAmlInput{Workspace: ws, Name: args[0], Spec: spec})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&vmSize, "vm-size", "", "VM size of the cluster nodes (e.g., STANDARD_D2_V2)")
	cmd.Flags().StringVar(&vmPriority, "vm-priority", "lowpriority", "VM priority (lowpriority|dedicated)")
	cmd.Flags().IntVar(&minNodes, "min-nodes", model.DefaultAmlMinNodes, "Minimum node count")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", model.DefaultAmlMaxNodes, "Maximum node count")
	cmd.Flags().IntVar(&idleSeconds, "idle-seconds", int(model.DefaultAmlIdleBeforeScaleDown/time.Second), "Idle seconds before scale down")
	cmd.Flags().DurationVar(&timeout, "timeout", model.DefaultAmlTimeout, "Provisioning wait timeout")
	_ = cmd.MarkFlagRequired("vm-size")
	return cmd
}

func newCmdComputeDatabricks(wf *workspaceFlags) *cobra.Command {
	var (
		resourceGroup  string
		workspaceName  string
		workspaceURL   string
		accessTokenEnv string
		timeout        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "databricks <name>",
		Short: "Reuse or attach a Databricks workspace as a compute target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ws, _, err := resolveWorkspace(cmd, wf)
			if err != nil {
				return err
			}
			token := strings.TrimSpace(os.Getenv(accessTokenEnv))
			if token == "" {
				return fmt.Errorf("databricks access token: environment variable %s is not set", accessTokenEnv)
			}
			spec := model.DatabricksSpec{
				ResourceGroup: resourceGroup,
				WorkspaceName: workspaceName,
				WorkspaceURL:  workspaceURL,
				AccessToken:   token,
				Timeout:       timeout,
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "compute.databricks", computeResourceID(ws, args[0]))
			defer func() { cleanup(err) }()

			out, err := buildComputeUseCase().EnsureDatabricks(ctx, &compute.EnsureDatabricksInput{Workspace: ws, Name: args[0], Spec: spec})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&resourceGroup, "db-resource-group", "", "Resource group of the Databricks workspace")
	cmd.Flags().StringVar(&workspaceName, "db-workspace", "", "Databricks workspace name")
	cmd.Flags().StringVar(&workspaceURL, "db-workspace-url", "", "Databricks workspace URL (optional)")
	cmd.Flags().StringVar(&accessTokenEnv, "access-token-env", amlopscfg.DefaultAccessTokenEnv, "Environment variable holding the Databricks access token")
	cmd.Flags().DurationVar(&timeout, "timeout", model.DefaultDatabricksTimeout, "Attach wait timeout")
	_ = cmd.MarkFlagRequired("db-resource-group")
	_ = cmd.MarkFlagRequired("db-workspace")
	return cmd
}

func newCmdComputeGet(wf *workspaceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a compute target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := resolveWorkspace(cmd, wf)
			if err != nil {
				return err
			}
			out, err := buildComputeUseCase().Get(cmd.Context(), &compute.GetInput{Workspace: ws, Name: args[0]})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out.Compute)
		},
	}
}

func newCmdComputeList(wf *workspaceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List compute targets of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := resolveWorkspace(cmd, wf)
			if err != nil {
				return err
			}
			out, err := buildComputeUseCase().List(cmd.Context(), &compute.ListInput{Workspace: ws})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out.Items)
		},
	}
}

func newCmdComputeDelete(wf *workspaceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an AmlCompute cluster or detach an attached compute target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ws, _, err := resolveWorkspace(cmd, wf)
			if err != nil {
				return err
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "compute.delete", computeResourceID(ws, args[0]))
			defer func() { cleanup(err) }()

			out, err := buildComputeUseCase().Delete(ctx, &compute.DeleteInput{Workspace: ws, Name: args[0]})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newCmdComputeApply(wf *workspaceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "apply [name...]",
		Short: "Ensure every compute target declared in the config file",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, cfg, err := resolveWorkspace(cmd, wf)
			if err != nil {
				return err
			}
			ws, defs, err := cfg.ToModels(nil, args...)
			if err != nil {
				return err
			}

			ctx, cleanup := withCmdRunLogger(cmd.Context(), "compute.apply", ws.ResourceID())
			defer func() { cleanup(err) }()

			out, err := buildComputeUseCase().Apply(ctx, &compute.ApplyInput{Workspace: ws, Computes: defs, Only: args})
			if out != nil {
				if werr := writeJSON(cmd.OutOrStdout(), out); werr != nil && err == nil {
					err = werr
				}
			}
			return err
		},
	}
}
