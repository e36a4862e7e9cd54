package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/suiterun/suiterun/packages/core/runner"
)

// TAPReporter renders the run in Test Anything Protocol format. Lines
// are buffered and written once the end event arrives so the plan line
// can carry the final count.
type TAPReporter struct {
	writer io.Writer
}

type TAPOption func(*TAPReporter)

func NewTAPReporter(opts ...TAPOption) *TAPReporter {
	f := &TAPReporter{writer: os.Stdout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPReporter) {
		f.writer = w
	}
}

// Report consumes one lifecycle event; only the end event produces output.
func (f *TAPReporter) Report(ev runner.Event) {
	end, ok := ev.(*runner.EndEvent)
	if !ok {
		return
	}
	res := end.Result

	fmt.Fprintln(f.writer, "TAP version 13")
	fmt.Fprintf(f.writer, "1..%d\n", len(res.Results))

	for i, o := range res.Results {
		name := sanitizeTAP(o.Name)
		switch o.Status {
		case runner.StatusIgnored:
			fmt.Fprintf(f.writer, "ok %d - %s # SKIP\n", i+1, name)
		case runner.StatusPassed:
			fmt.Fprintf(f.writer, "ok %d - %s\n", i+1, name)
		case runner.StatusFailed:
			fmt.Fprintf(f.writer, "not ok %d - %s\n", i+1, name)
			if o.Err != nil {
				fmt.Fprintf(f.writer, "  ---\n  message: %s\n  ...\n", sanitizeTAP(o.Err.Error()))
			}
		}
	}

	if res.Timeout > 0 {
		fmt.Fprintf(f.writer, "Bail out! suite timed out after %s\n", res.Timeout)
	}
}

// TAP test names must stay on one line and avoid the directive marker.
func sanitizeTAP(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "#", "-")
}
