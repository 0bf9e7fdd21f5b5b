// Package canaddr resolves tester/ECU address pairs from transport
// identifiers and direction tags.
package canaddr

import (
	"regexp"
	"strings"
)

// extendedRe matches the 29-bit extended physical-addressing layout used for
// UDS on CAN: a fixed 18DA prefix, then the target byte, then the source byte.
var extendedRe = regexp.MustCompile(`^18DA([0-9A-F]{2})([0-9A-F]{2})$`)

// LocalOrigin is the direction tag the capture tool uses for
// tester-originated traffic.
const LocalOrigin = "Local"

// Pair is a resolved message direction: Source sent the payload, Target
// received it. Tester/ECU carry the role assignment; RoleKnown is false when
// the identifier layout was not recognized and the raw identifier stands in
// for both ends.
type Pair struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Tester    string `json:"tester,omitempty"`
	ECU       string `json:"ecu"`
	RoleKnown bool   `json:"role_known"`
}

// Key returns a stable map key for the direction-insensitive conversation,
// used to index ISO-TP assembly buffers.
func (p Pair) Key() string {
	return p.Source + ">" + p.Target
}

// Resolve derives the address pair for a CAN identifier and an origin tag.
// Identifiers matching the 18DAxxyy layout yield target/source from fixed
// byte offsets; the origin tag then assigns roles, with "Local" meaning the
// tester sent the message. Unrecognized layouts fall back to the raw
// identifier with an unknown role.
func Resolve(identifier, origin string) Pair {
	id := NormalizeHex(identifier)
	if m := extendedRe.FindStringSubmatch(id); m != nil {
		encodedTarget, encodedSource := m[1], m[2]
		p := Pair{Source: encodedSource, Target: encodedTarget, RoleKnown: true}
		if origin == LocalOrigin {
			p.Tester, p.ECU = encodedSource, encodedTarget
		} else {
			p.Tester, p.ECU = encodedTarget, encodedSource
		}
		return p
	}
	return Pair{Source: id, Target: id, ECU: id}
}

// ResolveExplicit builds the pair for transports that carry source and
// target addresses directly (DoIP). The role-by-direction rule still decides
// which end is the ECU.
func ResolveExplicit(source, target, origin string) Pair {
	p := Pair{Source: NormalizeHex(source), Target: NormalizeHex(target), RoleKnown: true}
	if origin == LocalOrigin {
		p.Tester, p.ECU = p.Source, p.Target
	} else {
		p.Tester, p.ECU = p.Target, p.Source
	}
	return p
}

// NormalizeHex strips an optional 0x/0X prefix and uppercases the rest.
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	return strings.ToUpper(s)
}
