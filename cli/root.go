// Package cli wires the hn command: flags, configuration, logging and the
// list → collect → render pipeline.
package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/yonasBSD/hacker-news/config"
	"github.com/yonasBSD/hacker-news/hn"
	"github.com/yonasBSD/hacker-news/output"
)

var version = "dev"

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// Options carries the process environment into the command.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// HTTPClient overrides the client built from the configured timeout.
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

type flagValues struct {
	configPath string
	sort       hn.SortMode
	count      int
	baseURL    string
	timeout    int
	color      string
	format     string
	logFormat  string
	noProgress bool
	verbose    bool
}

// NewRootCommand builds the hn command tree.
func NewRootCommand(opts Options) *cobra.Command {
	cmd, _ := newRootCommand(opts.withDefaults())
	return cmd
}

func newRootCommand(opts Options) (*cobra.Command, *flagValues) {
	f := &flagValues{}
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:   "hn",
		Short: "A stylish Hacker News reader for the terminal",
		Long: `hn fetches the current Hacker News front page or the newest
submissions and prints them as a numbered listing.

Example usage:
  hn                      # 30 hottest stories
  hn --sort latest -c 10  # 10 newest stories
  hn --format table       # tabular output`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return &output.CLIError{
					Summary:    "invalid configuration",
					Detail:     err.Error(),
					Suggestion: "Run 'hn --help' for valid options",
					ExitCode:   output.ExitConfigError,
					Err:        err,
				}
			}
			f.color = cfg.Color
			return run(cmd.Context(), cfg, opts)
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	f.sort = defaults.Sort
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/hn/config.yaml)")
	flags.VarP(&f.sort, "sort", "s", "sort mode: 'latest' for new stories, 'hottest' for top stories")
	flags.IntVarP(&f.count, "count", "c", defaults.Count, "number of stories to show")
	flags.StringVar(&f.baseURL, "base-url", defaults.BaseURL, "Hacker News API base URL")
	flags.IntVar(&f.timeout, "timeout", defaults.TimeoutSecs, "per-request timeout in seconds")
	flags.StringVar(&f.color, "color", defaults.Color, "color output: auto, always, or never")
	flags.StringVar(&f.format, "format", defaults.Format, "output format: list or table")
	flags.StringVar(&f.logFormat, "log-format", defaults.LogFormat, "log format: text or json")
	flags.BoolVar(&f.noProgress, "no-progress", false, "disable the progress bar")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")

	cmd.AddCommand(newVersionCommand())
	return cmd, f
}

// resolveConfig loads the file/env configuration and applies the flags the
// user set explicitly on top of it.
func resolveConfig(cmd *cobra.Command, f *flagValues) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("sort") {
		cfg.Sort = f.sort
	}
	if flags.Changed("count") {
		cfg.Count = f.count
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSecs = f.timeout
	}
	if flags.Changed("color") {
		cfg.Color = f.color
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if f.noProgress {
		cfg.Progress = false
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Execute runs the command with args and returns the process exit code.
// Errors are reported on opts.Stderr.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()

	cmd, f := newRootCommand(opts)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return output.ExitSuccess
	}

	var cliErr *output.CLIError
	if !errors.As(err, &cliErr) {
		// Anything cobra rejects before RunE is a usage problem.
		cliErr = &output.CLIError{
			Summary:    err.Error(),
			Suggestion: "Run 'hn --help' for usage",
			ExitCode:   output.ExitConfigError,
			Err:        err,
		}
	}

	output.NewPrinter(opts.Stderr, opts.Stderr, errorColorMode(f)).FormatError(cliErr)
	return cliErr.ExitCode
}

// errorColorMode follows --color, or the configured mode once the
// configuration resolved. An unparsable value falls back to auto.
func errorColorMode(f *flagValues) output.ColorMode {
	mode, err := output.ParseColorMode(f.color)
	if err != nil {
		return output.ColorAuto
	}
	return mode
}
