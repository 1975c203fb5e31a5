package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcpscan/internal/config"
	"mcpscan/internal/report"
	"mcpscan/internal/repository"
	"mcpscan/internal/ui"
)

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze local files and directories (\"-\" reads stdin)",
		Long: `Analyze extracts @tool, @prompt and @resource annotations from the given
files and directories, validates them and reports the relationships between
them. Without arguments the current directory is analyzed. "-" reads a single
file from stdin.

Annotation errors are part of the report and do not fail the command unless
--fail-on-errors is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			svc, _, err := g.newService(cmd, func(cfg *config.Config) { out.apply(cmd, cfg) })
			if err != nil {
				return err
			}

			r, err := svc.AnalyzePaths(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := out.write(cmd, svc.Config(), r); err != nil {
				return err
			}
			return out.check(r)
		},
	}
	out.register(cmd, true)
	return cmd
}

func newRepoCmd(g *globalFlags) *cobra.Command {
	var out outputFlags
	var branch string
	cmd := &cobra.Command{
		Use:   "repo <url|owner/repo>...",
		Short: "Clone and analyze git repositories",
		Long: `Repo clones each repository into memory and analyzes its files. Public
repositories are tried without credentials first; private GitHub repositories
use the token stored with "mcpscan auth login" or $` + repository.TokenEnvVar + `.

Several repositories are fetched concurrently and reported in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rcs := make([]repository.RepositoryConfig, len(args))
			for i, arg := range args {
				rc, err := repository.ParseRepositoryURL(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				if branch != "" {
					rc.Branch = branch
				}
				rcs[i] = rc
			}

			svc, _, err := g.newService(cmd, func(cfg *config.Config) { out.apply(cmd, cfg) })
			if err != nil {
				return err
			}

			reports, err := svc.AnalyzeRepositories(cmd.Context(), rcs)
			if err != nil {
				return err
			}
			if err := out.write(cmd, svc.Config(), reports...); err != nil {
				return err
			}
			return out.check(reports...)
		},
	}
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to analyze (default: the repository's default branch)")
	out.register(cmd, true)
	return cmd
}

func newReportCmd(g *globalFlags) *cobra.Command {
	var out outputFlags
	var width int
	var style string
	var interactive bool
	cmd := &cobra.Command{
		Use:   "report [paths...]",
		Short: "Render a Markdown analysis report in the terminal",
		Long: `Report analyzes the given paths like "analyze" and renders the result as
Markdown for the terminal. With --interactive the sections are shown in a
pager. With --output the raw Markdown is written to a file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			svc, _, err := g.newService(cmd, func(cfg *config.Config) { out.apply(cmd, cfg) })
			if err != nil {
				return err
			}

			r, err := svc.AnalyzePaths(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if out.output != "" {
				cfg := *svc.Config()
				cfg.Output.Format = report.FormatMarkdown
				if err := out.write(cmd, &cfg, r); err != nil {
					return err
				}
				return out.check(r)
			}

			if style == "" {
				style = report.DetectStyle(cmd.OutOrStdout())
			}
			if interactive {
				if err := ui.Run(r, style, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
				return out.check(r)
			}
			rendered, err := report.Render(report.Markdown(r), style, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return out.check(r)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap width (default 80)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the report sections in a pager")
	cmd.Flags().StringVar(&style, "style", "", "Glamour style: dark, light, notty, ... (default: detected)")
	out.register(cmd, false)
	return cmd
}
