package tracelog

import (
	"bytes"
	"testing"
)

func TestDecodeDataLine(t *testing.T) {
	raw := "12→10:00:00.100 | [Local]-&gt;[Remote] DATA =&gt; mod[0] [ISO15765] cmd[write] args[0x18DAB0F1] data[0x3103F003]"
	line := DecodeLine(raw)

	if line.Kind != KindData {
		t.Fatalf("Kind = %v, want DATA", line.Kind)
	}
	if line.Seq != 12 {
		t.Errorf("Seq = %d, want 12", line.Seq)
	}
	d := line.Data
	if d.Timestamp != "10:00:00.100" {
		t.Errorf("Timestamp = %q", d.Timestamp)
	}
	if d.Origin != "Local" || d.Dest != "Remote" {
		t.Errorf("direction = %q->%q", d.Origin, d.Dest)
	}
	if d.Protocol != "ISO15765" || d.Command != "write" || d.Module != "0" {
		t.Errorf("tags = %q/%q/%q", d.Protocol, d.Command, d.Module)
	}
	if d.Identifier() != "0x18DAB0F1" {
		t.Errorf("Identifier() = %q", d.Identifier())
	}
	if !bytes.Equal(d.Payload, []byte{0x31, 0x03, 0xF0, 0x03}) {
		t.Errorf("Payload = % X", d.Payload)
	}
	if d.FrameLevel() {
		t.Error("cmd[write] must carry a complete PDU, not a frame")
	}
}

func TestDecodeDataLineMultipleArgs(t *testing.T) {
	raw := "10:00:00.100 | [Remote]-&gt;[Local] DATA =&gt; mod[1] [ISO15765] cmd[frame] args[0x18DAF1B0, 8] data[0x101431AABBCC]"
	line := DecodeLine(raw)

	if line.Kind != KindData {
		t.Fatalf("Kind = %v, want DATA", line.Kind)
	}
	if line.Seq != -1 {
		t.Errorf("Seq = %d, want -1 for missing prefix", line.Seq)
	}
	if got := line.Data.Args; len(got) != 2 || got[0] != "0x18DAF1B0" || got[1] != "8" {
		t.Errorf("Args = %v", got)
	}
	if !line.Data.FrameLevel() {
		t.Error("cmd[frame] must be frame level")
	}
}

func TestDecodeDoIPLine(t *testing.T) {
	raw := "3→10:00:01.500 | [Local]-&gt;[Remote] DOIP =&gt; src[0E80] tgt[1706] data[0x22F190]"
	line := DecodeLine(raw)

	if line.Kind != KindDoIP {
		t.Fatalf("Kind = %v, want DOIP", line.Kind)
	}
	d := line.DoIP
	if d.Source != "0E80" || d.Target != "1706" {
		t.Errorf("src/tgt = %q/%q", d.Source, d.Target)
	}
	if !bytes.Equal(d.Payload, []byte{0x22, 0xF1, 0x90}) {
		t.Errorf("Payload = % X", d.Payload)
	}
}

func TestDecodeMetadataLine(t *testing.T) {
	raw := "10:00:00.000 | METADATA =&gt; voltage[12.6V] connector[J1962] channel[CAN1] ecu[0xB0] label[Body Control Module]"
	line := DecodeLine(raw)

	if line.Kind != KindMetadata {
		t.Fatalf("Kind = %v, want METADATA", line.Kind)
	}
	m := line.Meta
	if m.Get("voltage") != "12.6V" {
		t.Errorf("voltage = %q", m.Get("voltage"))
	}
	if m.Get("label") != "Body Control Module" {
		t.Errorf("label = %q", m.Get("label"))
	}
	if m.Get("absent") != "" {
		t.Errorf("absent key should yield empty, got %q", m.Get("absent"))
	}
}

func TestDecodeUnrecognized(t *testing.T) {
	cases := []string{
		"",
		"completely free text",
		"10:00:00.000 | SOMETHING =&gt; else",
		"10:00:00.000 | [Local]-&gt;[Remote] DATA without the arrow form",
	}
	for _, raw := range cases {
		if line := DecodeLine(raw); line.Kind != KindUnrecognized {
			t.Errorf("DecodeLine(%q).Kind = %v, want UNRECOGNIZED", raw, line.Kind)
		}
	}
}

func TestEntityUnescaping(t *testing.T) {
	// &amp; must decode inside free-form values.
	raw := "10:00:00.000 | METADATA =&gt; label[Body &amp; Chassis]"
	line := DecodeLine(raw)
	if line.Kind != KindMetadata {
		t.Fatalf("Kind = %v, want METADATA", line.Kind)
	}
	if got := line.Meta.Get("label"); got != "Body & Chassis" {
		t.Errorf("label = %q, want decoded ampersand", got)
	}
}

func TestDecodeHexFieldMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"odd length", "0xABC"},
		{"not hex", "0xZZ"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decodeHexField(tc.in); got != nil {
				t.Errorf("decodeHexField(%q) = % X, want nil", tc.in, got)
			}
		})
	}
}
