package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/optidiag/udstrace/internal/session"
)

const sampleTrace = `1→10:00:00.100 | [Local]-&gt;[Remote] DATA =&gt; mod[0] [ISO15765] cmd[write] args[0x18DAB0F1] data[0x22F190]
2→10:00:00.150 | [Remote]-&gt;[Local] DATA =&gt; mod[0] [ISO15765] cmd[read] args[0x18DAF1B0] data[0x62F190554A]
garbage line
`

func TestWriteJSONDeterministic(t *testing.T) {
	result := session.ParseTrace(sampleTrace, session.Options{})

	var a, b bytes.Buffer
	if err := WriteJSON(&a, result); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := WriteJSON(&b, result); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("JSON output differs between identical renders")
	}
	if !strings.Contains(a.String(), `"F190"`) {
		t.Errorf("JSON missing DID entry: %s", a.String())
	}
}

func TestWriteSummary(t *testing.T) {
	result := session.ParseTrace(sampleTrace, session.Options{})

	var buf bytes.Buffer
	WriteSummary(&buf, result)
	out := buf.String()

	for _, want := range []string{
		"Diagnostic Session Summary",
		"Messages: 2",
		"Discovered ECUs (1)",
		"ECU B0",
		"ReadDataByIdentifier(0x22)",
		"line grammar mismatches",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestNewSessionReport(t *testing.T) {
	result := session.ParseTrace("", session.Options{})
	rep := NewSessionReport("dev", "trace.txt", result)
	if rep.TraceFile != "trace.txt" || rep.UDSTraceVersion != "dev" {
		t.Errorf("unexpected provenance: %+v", rep)
	}
	if rep.GeneratedAt == "" {
		t.Error("GeneratedAt should be set")
	}
}
