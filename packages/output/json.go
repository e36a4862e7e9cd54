package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/suiterun/suiterun/packages/core/runner"
)

// JSONOutput is the complete JSON report structure.
type JSONOutput struct {
	RunID    string      `json:"runId"`
	Summary  JSONSummary `json:"summary"`
	Tests    []JSONTest  `json:"tests"`
	UsedOnly bool        `json:"usedOnly"`
	Duration float64     `json:"duration"`
	Timeout  float64     `json:"timeout,omitempty"`
	Time     string      `json:"time"`
}

// JSONSummary holds the aggregate counters.
type JSONSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Ignored  int `json:"ignored"`
	Filtered int `json:"filtered"`
}

// JSONTest is a single test outcome.
type JSONTest struct {
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Duration float64 `json:"duration"`
	Error    string  `json:"error,omitempty"`
}

// JSONReporter accumulates outcomes and writes the report when the end
// event arrives.
type JSONReporter struct {
	writer io.Writer
	err    error
}

type JSONOption func(*JSONReporter)

func NewJSONReporter(opts ...JSONOption) *JSONReporter {
	f := &JSONReporter{writer: os.Stdout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONReporter) {
		f.writer = w
	}
}

// Err returns the first write or encode error, if any.
func (f *JSONReporter) Err() error { return f.err }

// Report consumes one lifecycle event; only the end event produces output.
func (f *JSONReporter) Report(ev runner.Event) {
	end, ok := ev.(*runner.EndEvent)
	if !ok {
		return
	}
	res := end.Result

	out := JSONOutput{
		RunID: res.RunID,
		Summary: JSONSummary{
			Total:    len(res.Results),
			Passed:   res.Passed,
			Failed:   res.Failed,
			Ignored:  res.Ignored,
			Filtered: res.Filtered,
		},
		Tests:    make([]JSONTest, 0, len(res.Results)),
		UsedOnly: res.UsedOnly,
		Duration: res.Duration.Seconds(),
		Timeout:  res.Timeout.Seconds(),
		Time:     time.Now().UTC().Format(time.RFC3339),
	}

	for _, o := range res.Results {
		jt := JSONTest{
			Name:     o.Name,
			Status:   string(o.Status),
			Duration: o.Duration.Seconds(),
		}
		if o.Err != nil {
			jt.Error = o.Err.Error()
		}
		out.Tests = append(out.Tests, jt)
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil && f.err == nil {
		f.err = err
	}
}
