package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yonasBSD/hacker-news/collector"
	"github.com/yonasBSD/hacker-news/config"
	"github.com/yonasBSD/hacker-news/hn"
	"github.com/yonasBSD/hacker-news/output"
)

// run lists story IDs, collects the stories one by one behind a progress bar
// and renders them. Only a failed listing aborts the run.
func run(ctx context.Context, cfg config.Config, opts Options) error {
	colorMode, err := output.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(opts.Stdout, opts.Stderr, colorMode)
	progress := output.NewProgress(opts.Stderr,
		cfg.Progress && output.IsTerminal(opts.Stderr),
		output.ResolveColors(colorMode, opts.Stderr),
	)

	logger := newLogger(progress, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second}
	}
	client := hn.NewClientWithBaseURL(httpClient, cfg.BaseURL)

	logger.Debug("listing stories", "sort", cfg.Sort.String(), "endpoint", cfg.Sort.Endpoint(), "count", cfg.Count)
	ids, err := client.StoryIDs(ctx, cfg.Sort)
	if err != nil {
		return listError(ctx, err)
	}
	logger.Debug("fetched story IDs", "count", len(ids))

	progress.Start(collector.Limit(cfg.Count, len(ids)))
	stories, collectErr := collector.New(client, logger).Collect(ctx, ids, cfg.Count, progress.Update)
	progress.Finish()

	if err := printer.Render(cfg.Format, stories); err != nil {
		return &output.CLIError{
			Summary:  "could not render stories",
			Detail:   err.Error(),
			ExitCode: output.ExitGeneral,
			Err:      err,
		}
	}

	if collectErr != nil {
		printer.Warning("interrupted: showing %d stories fetched before the stop", len(stories))
		return &output.CLIError{
			Summary:  "interrupted",
			Detail:   collectErr.Error(),
			ExitCode: output.ExitInterrupted,
			Err:      collectErr,
		}
	}
	return nil
}

func listError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return &output.CLIError{
			Summary:  "interrupted",
			Detail:   err.Error(),
			ExitCode: output.ExitInterrupted,
			Err:      err,
		}
	}

	suggestion := "Check your network connection or the --base-url flag"
	var de *hn.DecodeError
	if errors.As(err, &de) {
		suggestion = "The API answered with an unexpected payload; check --base-url"
	}
	return &output.CLIError{
		Summary:    "could not list stories",
		Detail:     fmt.Sprint(err),
		Suggestion: suggestion,
		ExitCode:   output.ExitListError,
		Err:        err,
	}
}
