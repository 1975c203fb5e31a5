package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mcpscan/internal/api"
	"mcpscan/internal/config"
	"mcpscan/internal/mcp"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var addr, origin string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Long: `Serve starts an HTTP server with the routes:

  GET  /health
  POST /analyze             {"files":[{"path","content"}]} or {"code"}
  POST /analyze/repository  {"url"} or {"owner","repo","branch"}

The server stops cleanly on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, logger, err := g.newService(cmd, func(cfg *config.Config) {
				if cmd.Flags().Changed("addr") {
					cfg.Server.Addr = addr
				}
				if cmd.Flags().Changed("allowed-origin") {
					cfg.Server.AllowedOrigin = origin
				}
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listenAddr := svc.Config().Server.Addr
			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", listenAddr, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "mcpscan API listening on http://%s\n", ln.Addr())
			return api.NewApp(svc, logger).ServeListener(ctx, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "Listen address")
	cmd.Flags().StringVar(&origin, "allowed-origin", "", "Access-Control-Allow-Origin value (default *)")
	return cmd
}

func newMCPCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server over stdio",
		Long: `MCP serves the analyze_source, analyze_directory and analyze_repository
tools over stdin/stdout. It is meant to be launched by an MCP client, for
example with {"command": "mcpscan", "args": ["mcp"]}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, logger, err := g.newService(cmd, nil)
			if err != nil {
				return err
			}
			return mcp.NewServer(svc, logger.WithPrefix("mcp")).Start()
		},
	}
}
