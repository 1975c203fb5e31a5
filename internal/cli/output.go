package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mcpscan/internal/config"
	"mcpscan/internal/report"
	"mcpscan/pkg/fileops"
)

// outputFlags are shared by the commands that print a report.
type outputFlags struct {
	format       string
	pretty       bool
	output       string
	stringAware  bool
	include      []string
	exclude      []string
	failOnErrors bool
}

func (o *outputFlags) register(cmd *cobra.Command, withFormat bool) {
	f := cmd.Flags()
	if withFormat {
		f.StringVarP(&o.format, "format", "f", "", "Output format: "+strings.Join(config.Formats, "|")+" (default from config)")
		f.BoolVar(&o.pretty, "pretty", false, "Indent JSON output")
	}
	f.StringVarP(&o.output, "output", "o", "", "Write the report to a file instead of stdout")
	f.BoolVar(&o.stringAware, "string-aware", false, "Ignore braces inside quoted strings when extracting annotation blocks")
	f.StringSliceVar(&o.include, "include", nil, "Only analyze files matching these globs")
	f.StringSliceVar(&o.exclude, "exclude", nil, "Skip files matching these globs")
	f.BoolVar(&o.failOnErrors, "fail-on-errors", false, "Exit with status 2 when any annotation fails to parse or validate")
}

// apply copies flags the user set over the loaded config.
func (o *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Output.Format = strings.ToLower(o.format)
		if cfg.Output.Format == "yml" {
			cfg.Output.Format = report.FormatYAML
		}
		if cfg.Output.Format == "md" {
			cfg.Output.Format = report.FormatMarkdown
		}
	}
	if f.Changed("pretty") {
		cfg.Output.Pretty = o.pretty
	}
	if f.Changed("string-aware") {
		cfg.Parser.StringAwareBraces = o.stringAware
	}
	if len(o.include) > 0 {
		cfg.Scan.Include = append(cfg.Scan.Include, o.include...)
	}
	if len(o.exclude) > 0 {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, o.exclude...)
	}
}

// write encodes reports to --output or stdout. Several reports form a
// stream: one JSON document per line, YAML documents separated by "---",
// and text or Markdown separated by a blank line.
func (o *outputFlags) write(cmd *cobra.Command, cfg *config.Config, reports ...*report.Report) error {
	var buf bytes.Buffer
	var w io.Writer = cmd.OutOrStdout()
	if o.output != "" {
		w = &buf
	}

	format := cfg.Output.Format
	for i, r := range reports {
		if i > 0 {
			sep := "\n"
			switch format {
			case report.FormatYAML:
				sep = "---\n"
			case report.FormatJSON:
				sep = ""
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		if err := report.Encode(w, r, format, cfg.Output.Pretty); err != nil {
			return err
		}
	}

	if o.output != "" {
		if err := fileops.AtomicWriteFile(fileops.ExpandPath(o.output), buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", o.output)
	}
	return nil
}

// check turns annotation errors into exit status 2 when --fail-on-errors is set.
func (o *outputFlags) check(reports ...*report.Report) error {
	if !o.failOnErrors {
		return nil
	}
	total := 0
	for _, r := range reports {
		total += r.Insights.ErrorCount
	}
	if total == 0 {
		return nil
	}
	return &ExitError{code: 2, message: fmt.Sprintf("%d annotation error(s) found", total)}
}
