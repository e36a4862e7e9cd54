// Package metrics aggregates per-test durations into a histogram so a
// run's timing profile can be exported alongside the pass/fail report.
package metrics

import (
	"encoding/json"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/suiterun/suiterun/packages/core/runner"
)

// Collector records the duration of every executed test. It plugs into
// the harness as a reporter next to the output formatters.
type Collector struct {
	// Histogram: 1us to 60s range, 3 significant digits
	histogram *hdrhistogram.Histogram

	executed int
	passed   int
	failed   int
	ignored  int

	runID    string
	duration time.Duration
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Report consumes one lifecycle event.
func (c *Collector) Report(ev runner.Event) {
	switch e := ev.(type) {
	case *runner.TestEndEvent:
		o := e.Outcome
		switch o.Status {
		case runner.StatusIgnored:
			c.ignored++
			return
		case runner.StatusPassed:
			c.passed++
		case runner.StatusFailed:
			c.failed++
		}
		c.executed++

		us := o.Duration.Microseconds()
		if us < 1 {
			us = 1
		}
		if us > 60_000_000 {
			us = 60_000_000
		}
		_ = c.histogram.RecordValue(us)

	case *runner.EndEvent:
		c.runID = e.Result.RunID
		c.duration = e.Result.Duration
	}
}

// Summary is the exported timing profile of one run.
type Summary struct {
	RunID    string  `json:"runId,omitempty"`
	Executed int     `json:"executed"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Ignored  int     `json:"ignored"`
	Duration float64 `json:"duration"`

	MinMs  float64 `json:"minMs"`
	MaxMs  float64 `json:"maxMs"`
	MeanMs float64 `json:"meanMs"`
	P50Ms  float64 `json:"p50Ms"`
	P95Ms  float64 `json:"p95Ms"`
	P99Ms  float64 `json:"p99Ms"`
}

// Summary snapshots the collected data.
func (c *Collector) Summary() *Summary {
	s := &Summary{
		RunID:    c.runID,
		Executed: c.executed,
		Passed:   c.passed,
		Failed:   c.failed,
		Ignored:  c.ignored,
		Duration: c.duration.Seconds(),
	}
	if c.executed > 0 {
		s.MinMs = float64(c.histogram.Min()) / 1000
		s.MaxMs = float64(c.histogram.Max()) / 1000
		s.MeanMs = c.histogram.Mean() / 1000
		s.P50Ms = float64(c.histogram.ValueAtQuantile(50)) / 1000
		s.P95Ms = float64(c.histogram.ValueAtQuantile(95)) / 1000
		s.P99Ms = float64(c.histogram.ValueAtQuantile(99)) / 1000
	}
	return s
}

// WriteJSON writes the summary as indented JSON.
func (c *Collector) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Summary())
}
