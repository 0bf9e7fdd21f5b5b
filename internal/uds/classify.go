package uds

import (
	"encoding/json"
	"fmt"

	"github.com/optidiag/udstrace/internal/canaddr"
)

// MessageKind is the request/response classification of a payload.
type MessageKind int

const (
	KindUnknown MessageKind = iota
	KindRequest
	KindPositiveResponse
	KindNegativeResponse
)

// String returns the classification label used in reports.
func (k MessageKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindPositiveResponse:
		return "positive_response"
	case KindNegativeResponse:
		return "negative_response"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the kind as its report label.
func (k MessageKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Classification labels one complete payload. Service is the request-plane
// service id the payload belongs to (for responses, the id the response
// answers); RawID is the literal first byte.
type Classification struct {
	Kind    MessageKind `json:"kind"`
	Service byte        `json:"service"`
	RawID   byte        `json:"raw_id"`
	NRC     byte        `json:"nrc,omitempty"` // set for negative responses
}

// Classify labels the leading byte of a complete payload. Unknown service
// ids classify as KindUnknown and still pass through; only an empty payload
// has no classification at all.
func Classify(payload []byte) Classification {
	if len(payload) == 0 {
		return Classification{}
	}
	sid := payload[0]

	if sid == NegativeResponseID {
		c := Classification{Kind: KindNegativeResponse, RawID: sid}
		if len(payload) >= 2 {
			c.Service = payload[1]
		}
		if len(payload) >= 3 {
			c.NRC = payload[2]
		}
		return c
	}

	if IsRequestService(sid) {
		return Classification{Kind: KindRequest, Service: sid, RawID: sid}
	}

	if sid > PositiveResponseOffset && IsRequestService(sid-PositiveResponseOffset) {
		return Classification{Kind: KindPositiveResponse, Service: sid - PositiveResponseOffset, RawID: sid}
	}

	return Classification{Kind: KindUnknown, Service: sid, RawID: sid}
}

// HexBytes renders as an uppercase hex string in JSON reports.
type HexBytes []byte

// MarshalJSON implements json.Marshaler.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%X", []byte(h)))
}

// Message is one complete, classified diagnostic message in trace order: the
// externally visible unit the session assembler emits. Immutable once built.
type Message struct {
	Timestamp string         `json:"timestamp"`
	Addr      canaddr.Pair   `json:"addr"`
	Protocol  string         `json:"protocol"`
	Payload   HexBytes       `json:"payload"`
	Class     Classification `json:"classification"`
}

// ServiceName returns the display name of the message's request-plane
// service.
func (m *Message) ServiceName() string {
	return ServiceName(m.Class.Service)
}
