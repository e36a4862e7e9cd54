package output

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/suiterun/suiterun/packages/core/runner"
	"github.com/suiterun/suiterun/packages/core/suite"
)

// JUnit XML structures

// JUnitTestSuite is the root element; one run maps to one testsuite.
type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr,omitempty"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase is a single test case.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure is a test failure.
type JUnitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
}

// JUnitSkipped marks a skipped test.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitReporter renders the run as JUnit XML when the end event arrives.
type JUnitReporter struct {
	writer io.Writer
	name   string
	err    error
}

type JUnitOption func(*JUnitReporter)

func NewJUnitReporter(opts ...JUnitOption) *JUnitReporter {
	f := &JUnitReporter{writer: os.Stdout, name: "suiterun"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JUnitWithWriter(w io.Writer) JUnitOption {
	return func(f *JUnitReporter) {
		f.writer = w
	}
}

func JUnitWithName(name string) JUnitOption {
	return func(f *JUnitReporter) {
		f.name = name
	}
}

// Err returns the first write or encode error, if any.
func (f *JUnitReporter) Err() error { return f.err }

// Report consumes one lifecycle event; only the end event produces output.
func (f *JUnitReporter) Report(ev runner.Event) {
	end, ok := ev.(*runner.EndEvent)
	if !ok {
		return
	}
	res := end.Result

	ts := JUnitTestSuite{
		Name:      f.name,
		Tests:     len(res.Results),
		Failures:  res.Failed,
		Skipped:   res.Ignored,
		Time:      res.Duration.Seconds(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	for _, o := range res.Results {
		tc := JUnitTestCase{
			Name:      leafName(o.Name),
			ClassName: className(f.name, o.Name),
			Time:      o.Duration.Seconds(),
		}
		switch o.Status {
		case runner.StatusFailed:
			failure := &JUnitFailure{Type: "failure"}
			if o.Err != nil {
				failure.Message = o.Err.Error()
				if errors.Is(o.Err, runner.ErrTimeout) {
					failure.Type = "timeout"
				}
			}
			tc.Failure = failure
		case runner.StatusIgnored:
			tc.Skipped = &JUnitSkipped{Message: "ignored"}
		}
		ts.TestCases = append(ts.TestCases, tc)
	}

	if _, err := fmt.Fprintln(f.writer, xml.Header); err != nil {
		f.err = err
		return
	}
	enc := xml.NewEncoder(f.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(ts); err != nil && f.err == nil {
		f.err = err
	}
	fmt.Fprintln(f.writer)
}

// leafName strips the ancestor scope path from a qualified test name.
func leafName(qualified string) string {
	if i := strings.LastIndex(qualified, suite.NameSeparator); i >= 0 {
		return qualified[i+len(suite.NameSeparator):]
	}
	return qualified
}

// className is the scope path portion, or the suite name for tests
// registered at the root.
func className(fallback, qualified string) string {
	if i := strings.LastIndex(qualified, suite.NameSeparator); i >= 0 {
		return qualified[:i]
	}
	return fallback
}
