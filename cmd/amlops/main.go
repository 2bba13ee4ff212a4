package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	_ "github.com/kompox/amlops/adapters/drivers/compute/azureml"
	"github.com/kompox/amlops/internal/logging"
)

// Environment variables overriding global flags.
const (
	envConfig    = "AMLOPS_CONFIG"
	envLogFormat = "AMLOPS_LOG_FORMAT"
	envLogLevel  = "AMLOPS_LOG_LEVEL"
	envLogOutput = "AMLOPS_LOG_OUTPUT"
)

// logOutput is opened in PersistentPreRunE and closed by main.
var logOutput *logging.Output

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "amlops",
		Short:   "Azure Machine Learning compute CLI",
		Long:    "Provision AmlCompute clusters and attach Databricks workspaces to an Azure Machine Learning workspace.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "C", envOr(envConfig, ""), "Config file path (env AMLOPS_CONFIG) (default amlops.yml when present)")
	cmd.PersistentFlags().String("log-format", envOr(envLogFormat, "human"), "Log format (human|text|json) (env AMLOPS_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-level", envOr(envLogLevel, "info"), "Log level (debug|info|warn|error) (env AMLOPS_LOG_LEVEL)")
	cmd.PersistentFlags().String("log-output", envOr(envLogOutput, "-"), "Log output (-|none|path) (env AMLOPS_LOG_OUTPUT)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		levelStr, _ := c.Flags().GetString("log-level")
		outputSpec, _ := c.Flags().GetString("log-output")

		level, err := logging.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		out, err := logging.OpenOutput(outputSpec)
		if err != nil {
			return err
		}
		logOutput = out

		l, err := logging.NewWithWriter(format, level, out.Writer())
		if err != nil {
			return err
		}
		l = l.With("runId", uuid.NewString())
		c.SetContext(logging.WithLogger(c.Context(), l))
		return nil
	}

	// Add subcommands
	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdCompute())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
	}
	if logOutput != nil {
		_ = logOutput.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
