package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mcpscan/internal/config"
	"mcpscan/internal/core"
)

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved config (file values over defaults)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := g.initConfig()
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open the config file in $EDITOR, creating it first if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := g.initConfig()
			if err != nil {
				return err
			}
			if err := core.EditFile(path); err != nil {
				return err
			}
			if _, err := config.LoadFrom(path); err != nil {
				return fmt.Errorf("config saved but invalid: %w", err)
			}
			return nil
		},
	})

	return cmd
}

func (g *globalFlags) configFile() (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	return config.ConfigPath()
}

// initConfig writes defaults to the config file unless it already exists.
func (g *globalFlags) initConfig() (string, bool, error) {
	if g.configPath == "" {
		return config.Init()
	}
	if _, err := config.LoadFrom(g.configPath); err == nil {
		return g.configPath, false, nil
	}
	if _, err := os.Stat(g.configPath); err == nil {
		return "", false, fmt.Errorf("%s exists but is not a valid config", g.configPath)
	}
	cfg := config.DefaultConfig()
	if err := cfg.SaveTo(g.configPath); err != nil {
		return "", false, err
	}
	return g.configPath, true, nil
}
