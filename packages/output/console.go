package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/suiterun/suiterun/packages/core/runner"
)

// ConsoleReporter prints one line per finished test as the run
// proceeds, then a summary block when the end event arrives.
type ConsoleReporter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleReporter)

func NewConsoleReporter(opts ...ConsoleOption) *ConsoleReporter {
	f := &ConsoleReporter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleReporter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleReporter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleReporter) {
		f.noColor = nc
	}
}

// Report consumes one lifecycle event.
func (f *ConsoleReporter) Report(ev runner.Event) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	switch e := ev.(type) {
	case *runner.StartEvent:
		fmt.Fprintf(f.writer, "\n%s\n\n", bold(fmt.Sprintf("running %d tests", len(e.Tests))))

	case *runner.TestStartEvent:
		if f.verbose {
			fmt.Fprintf(f.writer, "  %s %s\n", cyan("»"), e.Test.Name)
		}

	case *runner.TestEndEvent:
		out := e.Outcome
		switch out.Status {
		case runner.StatusIgnored:
			fmt.Fprintf(f.writer, "  %s %s\n", yellow("-"), out.Name)
		case runner.StatusPassed:
			fmt.Fprintf(f.writer, "  %s %s %s\n", green("✓"), out.Name,
				cyan(fmt.Sprintf("(%dms)", out.Duration.Milliseconds())))
		case runner.StatusFailed:
			fmt.Fprintf(f.writer, "  %s %s %s\n", red("✗"), out.Name,
				cyan(fmt.Sprintf("(%dms)", out.Duration.Milliseconds())))
			if out.Err != nil {
				label := "error"
				if errors.Is(out.Err, runner.ErrTimeout) {
					label = "timeout"
				}
				fmt.Fprintf(f.writer, "    %s %s: %v\n", red("→"), label, out.Err)
			}
		}

	case *runner.EndEvent:
		res := e.Result
		fmt.Fprintf(f.writer, "\n")
		if res.Timeout > 0 {
			fmt.Fprintf(f.writer, "%s suite timed out after %s\n", red("✗"), res.Timeout)
			return
		}
		status := green("passed")
		if res.Failed > 0 {
			status = red("failed")
		}
		fmt.Fprintf(f.writer, "%s %s | %s | %s | %s %s\n",
			bold(status),
			green(fmt.Sprintf("%d passed", res.Passed)),
			red(fmt.Sprintf("%d failed", res.Failed)),
			yellow(fmt.Sprintf("%d ignored", res.Ignored)),
			yellow(fmt.Sprintf("%d filtered", res.Filtered)),
			cyan(fmt.Sprintf("(%dms)", res.Duration.Milliseconds())))
		if res.UsedOnly {
			fmt.Fprintf(f.writer, "%s\n", yellow("warning: \"only\" was used, run is focused"))
		}
	}
}
