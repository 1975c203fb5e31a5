// Package cli implements the mcpscan command tree with cobra.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcpscan/internal/config"
	"mcpscan/internal/core"
	"mcpscan/internal/logging"
)

// NewRoot builds the mcpscan command tree.
func NewRoot(version string) *cobra.Command {
	return newRoot(version, &globalFlags{})
}

func newRoot(version string, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mcpscan",
		Short:         "mcpscan: find and validate MCP annotations in source code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("mcpscan {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&g.configPath, "config", g.configPath, "Config file path (defaults to the user config directory)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log progress to stderr")

	cmd.AddCommand(newAnalyzeCmd(g))
	cmd.AddCommand(newRepoCmd(g))
	cmd.AddCommand(newReportCmd(g))
	cmd.AddCommand(newServeCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	cmd.AddCommand(newConfigCmd(g))
	cmd.AddCommand(newAuthCmd())

	return cmd
}

type globalFlags struct {
	configPath string
	verbose    bool

	// sources replaces the git source; set by tests.
	sources core.SourceFactory
}

// loadConfig reads --config when given, the standard config file otherwise.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFrom(g.configPath)
	}
	return config.Load()
}

func (g *globalFlags) logger(cmd *cobra.Command) *logging.AppLogger {
	if g.verbose {
		return logging.NewWriterLogger(cmd.ErrOrStderr(), true)
	}
	return logging.NewAppLogger()
}

// newService loads the config, lets mutate apply flag overrides and builds
// the analysis service.
func (g *globalFlags) newService(cmd *cobra.Command, mutate func(*config.Config)) (*core.Service, *logging.AppLogger, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}

	logger := g.logger(cmd)
	var opts []core.Option
	if g.sources != nil {
		opts = append(opts, core.WithSourceFactory(g.sources))
	}
	svc, err := core.NewService(cfg, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, logger, nil
}
