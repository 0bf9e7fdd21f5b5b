package uds

// DID value capture for ReadDataByIdentifier (0x22) and
// WriteDataByIdentifier (0x2E) and their responses.

import "fmt"

// DIDValue is one observed data-identifier access.
type DIDValue struct {
	DID    string // 4-hex-digit identifier
	Value  []byte // nil for accesses that carry no value (read requests, write responses)
	Length int    // value byte length
}

// DecodeDID extracts the data identifier and optional value blob from a
// complete (classified) ReadDataByIdentifier / WriteDataByIdentifier payload.
// Truncated payloads degrade to a nil result; decoding never fails.
func DecodeDID(c Classification, payload []byte) *DIDValue {
	if c.Service != ServiceReadDataByIdentifier && c.Service != ServiceWriteDataByIdentifier {
		return nil
	}
	if c.Kind == KindNegativeResponse || len(payload) < 3 {
		return nil
	}

	v := &DIDValue{DID: fmt.Sprintf("%02X%02X", payload[1], payload[2])}

	// Read requests and write positive responses carry only the identifier;
	// read responses and write requests carry the value blob after it.
	carriesValue := (c.Service == ServiceReadDataByIdentifier && c.Kind == KindPositiveResponse) ||
		(c.Service == ServiceWriteDataByIdentifier && c.Kind == KindRequest)
	if carriesValue && len(payload) > 3 {
		v.Value = append([]byte(nil), payload[3:]...)
		v.Length = len(v.Value)
	}
	return v
}

// DataTypeHint guesses a display type for an observed DID value.
func DataTypeHint(value []byte) string {
	if len(value) == 0 {
		return "unknown"
	}
	if isPrintableASCII(value) {
		return "ascii"
	}
	switch len(value) {
	case 1:
		return "uint8"
	case 2:
		return "uint16"
	case 4:
		return "uint32"
	default:
		return "bytes"
	}
}

func isPrintableASCII(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}
