// Package tracelog decodes the capture tool's line-oriented trace format.
package tracelog

// LineKind identifies which grammar a raw trace line matched.
type LineKind int

const (
	KindUnrecognized LineKind = iota
	KindData
	KindDoIP
	KindMetadata
)

// String returns a short label for the line kind.
func (k LineKind) String() string {
	switch k {
	case KindData:
		return "DATA"
	case KindDoIP:
		return "DOIP"
	case KindMetadata:
		return "METADATA"
	default:
		return "UNRECOGNIZED"
	}
}

// Line is the decoded form of one raw trace line. Exactly one of Data, DoIP
// or Meta is non-nil for recognized kinds.
type Line struct {
	Kind LineKind
	Seq  int // leading "<n>→" ordinal, -1 when absent
	Data *DataLine
	DoIP *DoIPLine
	Meta *MetaLine
}

// DataLine is a CAN-transport event: one frame or one complete PDU,
// depending on the command tag.
type DataLine struct {
	Timestamp string
	Origin    string
	Dest      string
	Module    string
	Protocol  string
	Command   string
	Args      []string
	Payload   []byte
}

// Identifier returns the transport identifier (the first argument), or ""
// when the argument list is empty.
func (d *DataLine) Identifier() string {
	if len(d.Args) == 0 {
		return ""
	}
	return d.Args[0]
}

// FrameLevel reports whether the payload is a raw ISO-TP frame that still
// needs transport reassembly. The capture tool logs raw frames under the
// "frame" command; every other command carries a complete application PDU.
func (d *DataLine) FrameLevel() bool {
	return d.Command == "frame"
}

// DoIPLine is a DoIP event with explicit source/target addresses. DoIP
// payloads are complete PDUs; no reassembly applies.
type DoIPLine struct {
	Timestamp string
	Origin    string
	Dest      string
	Source    string
	Target    string
	Payload   []byte
}

// MetaLine carries free-form session facts (supply voltage, connector
// metrics, per-channel ECU labels) as key/value pairs in line order.
type MetaLine struct {
	Timestamp string
	Facts     []Fact
}

// Fact is one key[value] token from a METADATA line.
type Fact struct {
	Key   string
	Value string
}

// Get returns the first value for key, or "" when absent.
func (m *MetaLine) Get(key string) string {
	for _, f := range m.Facts {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}
