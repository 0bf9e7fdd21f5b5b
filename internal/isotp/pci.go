// Package isotp reassembles segmented ISO 15765-2 transport frames into
// complete application payloads.
package isotp

// FrameType is the ISO-TP frame type encoded in the PCI high nibble.
type FrameType int

const (
	FrameUnknown FrameType = iota
	FrameSingle
	FrameFirst
	FrameConsecutive
	FrameFlowControl
)

// String returns the standard name of the frame type.
func (t FrameType) String() string {
	switch t {
	case FrameSingle:
		return "SINGLE_FRAME"
	case FrameFirst:
		return "FIRST_FRAME"
	case FrameConsecutive:
		return "CONSECUTIVE_FRAME"
	case FrameFlowControl:
		return "FLOW_CONTROL"
	default:
		return "UNKNOWN"
	}
}

// PCI is the decoded Protocol Control Information of one frame.
type PCI struct {
	Type     FrameType
	Length   int    // SF payload length or FF declared total length
	Sequence int    // CF sequence number (mod 16)
	Data     []byte // frame payload bytes after the PCI header
}

// DecodePCI decodes the leading PCI nibble(s) of a raw frame. Single frames
// carry their length in the first byte (0x00-0x07); first frames encode a
// 12-bit total length; zero-length first frames use the extended escape
// encoding, which this decoder fails closed on (FrameUnknown). Flow-control
// frames carry no application data.
func DecodePCI(frame []byte) PCI {
	if len(frame) == 0 {
		return PCI{Type: FrameUnknown}
	}
	switch frame[0] >> 4 {
	case 0x0:
		length := int(frame[0] & 0x0F)
		if length == 0 || length > len(frame)-1 {
			return PCI{Type: FrameUnknown}
		}
		return PCI{Type: FrameSingle, Length: length, Data: frame[1 : 1+length]}
	case 0x1:
		if len(frame) < 2 {
			return PCI{Type: FrameUnknown}
		}
		length := int(frame[0]&0x0F)<<8 | int(frame[1])
		if length == 0 {
			// Escape-encoded length (> 4095 bytes): out of scope, fail closed.
			return PCI{Type: FrameUnknown}
		}
		return PCI{Type: FrameFirst, Length: length, Data: frame[2:]}
	case 0x2:
		return PCI{Type: FrameConsecutive, Sequence: int(frame[0] & 0x0F), Data: frame[1:]}
	case 0x3:
		return PCI{Type: FrameFlowControl}
	default:
		return PCI{Type: FrameUnknown}
	}
}
