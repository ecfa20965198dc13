package main

import (
	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serves the JSON API: run recording, step lookup, Server-Sent Events playback,
explanations and settings. The OpenAPI document is at /openapi.yaml and
Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()

			addr := stack.Config.Server.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			defer sc.LogStop(stack.Logger)
			return cli.Serve(sc, stack, addr, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	return cmd
}
