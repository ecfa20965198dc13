package main

import (
	"fmt"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	var (
		transport string
		addr      string
		baseURL   string
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the algorithms to AI agents as MCP tools and resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()

			srv := stack.MCPServer()
			switch transport {
			case "stdio":
				// Stdout carries JSON-RPC; logs already go to stderr.
				stack.Logger.Info("starting MCP server", "transport", transport)
				return srv.ServeStdio()
			case "sse":
				if baseURL == "" {
					baseURL = "http://localhost" + addr
				}
				sc := cli.NewSignalContext(cmd.Context())
				defer sc.Cancel()
				defer sc.LogStop(stack.Logger)
				return srv.ServeSSE(sc, addr, baseURL)
			}
			return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().StringVar(&addr, "addr", ":8081", "Address to listen on (only for SSE)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public base URL advertised to SSE clients")
	return cmd
}
