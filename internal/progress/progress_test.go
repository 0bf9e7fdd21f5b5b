package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLineProgressRenders(t *testing.T) {
	var buf bytes.Buffer
	p := NewLineProgress(100, "decoding")
	p.output = &buf
	p.lastUpdate = time.Now().Add(-time.Second)

	p.Set(50)
	if !strings.Contains(buf.String(), "50/100 lines (50.0%)") {
		t.Errorf("render output = %q", buf.String())
	}

	p.Finish()
	if !strings.Contains(buf.String(), "100/100 lines (100.0%)") {
		t.Errorf("finish output = %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Finish should terminate the output line")
	}
}

func TestLineProgressDisabled(t *testing.T) {
	var buf bytes.Buffer
	p := NewLineProgress(10, "decoding")
	p.output = &buf
	p.Disable()

	p.Increment()
	p.Finish()
	if buf.Len() != 0 {
		t.Errorf("disabled progress wrote output: %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
