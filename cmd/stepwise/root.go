package main

import (
	"fmt"
	"os"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/aretw0/stepwise/internal/config"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Tests get a fresh tree per call.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stepwise",
		Short: "Stepwise replays sorting, graph and dynamic programming algorithms step by step",
		Long: `Stepwise records every intermediate state of an algorithm and plays it back
in the terminal, over HTTP (Server-Sent Events) or to AI agents through MCP.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Config file (default "+config.DefaultPath+" if present)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")

	root.AddCommand(
		newAlgorithmsCmd(),
		newPlayCmd(),
		newRunsCmd(),
		newServeCmd(),
		newMCPCmd(),
		newExplainCmd(),
		newReviewCmd(),
		newSettingsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadStack reads the config selected by the persistent flags and builds the stack.
func loadStack(cmd *cobra.Command) (*cli.Stack, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return nil, err
	}
	return cli.NewStack(cfg, logger)
}
