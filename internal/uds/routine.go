package uds

// Routine invocation capture for RoutineControl (0x31) and its response.

import "fmt"

// RoutineControl sub-functions.
const (
	RoutineStart          byte = 0x01
	RoutineStop           byte = 0x02
	RoutineRequestResults byte = 0x03
)

// RoutineControlName returns the display name of a RoutineControl
// sub-function.
func RoutineControlName(sf byte) string {
	switch sf {
	case RoutineStart:
		return "startRoutine"
	case RoutineStop:
		return "stopRoutine"
	case RoutineRequestResults:
		return "requestRoutineResults"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", sf)
	}
}

// RoutineInvocation is one observed RoutineControl exchange: a 1-byte
// sub-function, a 2-byte routine id, and optional parameter bytes whose
// presence sets the input (request) or output (response) flag. Raw parameter
// bytes are not retained.
type RoutineInvocation struct {
	ID        string // 4-hex-digit routine identifier
	Control   byte   // sub-function
	HasInput  bool
	HasOutput bool
}

// DecodeRoutine extracts the routine invocation from a complete RoutineControl
// payload. Truncated payloads degrade to a nil result.
func DecodeRoutine(c Classification, payload []byte) *RoutineInvocation {
	if c.Service != ServiceRoutineControl || c.Kind == KindNegativeResponse {
		return nil
	}
	if len(payload) < 4 {
		return nil
	}
	inv := &RoutineInvocation{
		ID:      fmt.Sprintf("%02X%02X", payload[2], payload[3]),
		Control: payload[1],
	}
	if len(payload) > 4 {
		if c.Kind == KindRequest {
			inv.HasInput = true
		} else {
			inv.HasOutput = true
		}
	}
	return inv
}

// SessionType extracts the diagnostic session sub-function from a
// DiagnosticSessionControl request or positive response, returning ok=false
// when the payload is not a session-control exchange.
func SessionType(c Classification, payload []byte) (byte, bool) {
	if c.Service != ServiceDiagnosticSessionControl || c.Kind == KindNegativeResponse {
		return 0, false
	}
	if len(payload) < 2 {
		return 0, false
	}
	return payload[1] & 0x7F, true // mask the suppress-response bit
}

// SecurityLevel extracts the access level from a SecurityAccess request or
// positive response. Sub-functions pair up as (seed, key) = (2n-1, 2n); both
// map to level n.
func SecurityLevel(c Classification, payload []byte) (byte, bool) {
	if c.Service != ServiceSecurityAccess || c.Kind == KindNegativeResponse {
		return 0, false
	}
	if len(payload) < 2 {
		return 0, false
	}
	sf := payload[1] & 0x7F
	if sf == 0 {
		return 0, false
	}
	return (sf + 1) / 2, true
}
