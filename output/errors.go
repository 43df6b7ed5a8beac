package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/yonasBSD/hacker-news/hn"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitConfigError = 2
	ExitListError   = 3
	ExitInterrupted = 130
)

// CLIError is a failure that ends the run, with the exit code it maps to.
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
	Err        error
}

func (e *CLIError) Error() string {
	return e.Summary
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// FormatError prints e on the diagnostic stream. API failures are described
// by the call that failed rather than by the raw error chain.
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		p.style(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
	}
	if cause := describeCause(e); cause != "" {
		fmt.Fprintf(p.err, "  Cause: %s\n", cause)
	}
	if e.Suggestion != "" {
		p.style(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
	}
}

func describeCause(e *CLIError) string {
	var te *hn.TransportError
	var de *hn.DecodeError
	switch {
	case errors.As(e.Err, &te):
		call := apiCall(te.Stage, te.ID)
		if te.StatusCode != 0 {
			return fmt.Sprintf("%s answered HTTP %d", call, te.StatusCode)
		}
		return fmt.Sprintf("%s failed: %v", call, te.Err)
	case errors.As(e.Err, &de):
		call := apiCall(de.Stage, de.ID)
		if de.Field != "" {
			return fmt.Sprintf("%s returned a bad %q field: %v", call, de.Field, de.Err)
		}
		return fmt.Sprintf("%s returned an unexpected payload: %v", call, de.Err)
	}
	return e.Detail
}

func apiCall(stage hn.Stage, id int) string {
	if stage == hn.StageItem {
		return fmt.Sprintf("item %d request", id)
	}
	return "story list request"
}
