package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONReporter(JSONWithWriter(&buf))
	for _, ev := range sampleEvents() {
		f.Report(ev)
	}
	require.NoError(t, f.Err())

	doc := buf.String()
	require.True(t, gjson.Valid(doc))

	assert.Equal(t, "run-1", gjson.Get(doc, "runId").String())
	assert.Equal(t, int64(3), gjson.Get(doc, "summary.total").Int())
	assert.Equal(t, int64(1), gjson.Get(doc, "summary.passed").Int())
	assert.Equal(t, int64(1), gjson.Get(doc, "summary.failed").Int())
	assert.Equal(t, int64(1), gjson.Get(doc, "summary.ignored").Int())
	assert.Equal(t, int64(2), gjson.Get(doc, "summary.filtered").Int())

	assert.Equal(t, "api > ping", gjson.Get(doc, "tests.0.name").String())
	assert.Equal(t, "passed", gjson.Get(doc, "tests.0.status").String())
	assert.Equal(t, "status 500", gjson.Get(doc, "tests.1.error").String())
	assert.Equal(t, "ignored", gjson.Get(doc, "tests.2.status").String())
	assert.False(t, gjson.Get(doc, "usedOnly").Bool())
}

func TestJSONReporter_OnlyEndEventWrites(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONReporter(JSONWithWriter(&buf))
	events := sampleEvents()
	for _, ev := range events[:len(events)-1] {
		f.Report(ev)
	}
	assert.Zero(t, buf.Len())
}
