package discovery

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ByteSet is a grow-only set of byte values kept sorted for deterministic
// iteration and JSON output.
type ByteSet []byte

// Add inserts v keeping the set sorted; duplicates are ignored.
func (s *ByteSet) Add(v byte) {
	i := sort.Search(len(*s), func(i int) bool { return (*s)[i] >= v })
	if i < len(*s) && (*s)[i] == v {
		return
	}
	*s = append(*s, 0)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = v
}

// Contains reports set membership.
func (s ByteSet) Contains(v byte) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	return i < len(s) && s[i] == v
}

// MarshalJSON renders the set as a sorted list of 2-hex-digit strings.
func (s ByteSet) MarshalJSON() ([]byte, error) {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = fmt.Sprintf("%02X", v)
	}
	return json.Marshal(out)
}

// DTCRecord is the evolving knowledge about one trouble code on one ECU.
type DTCRecord struct {
	Code        string `json:"code"` // letter+4-hex form
	Raw         string `json:"raw"`  // raw code bytes as hex
	Status      byte   `json:"status"`
	Description string `json:"description,omitempty"` // resolved by collaborators, placeholder here
	Occurrences int    `json:"occurrences"`
}

// DIDRecord is the evolving knowledge about one data identifier on one ECU.
type DIDRecord struct {
	DID          string      `json:"did"`
	Name         string      `json:"name,omitempty"` // resolved by collaborators
	Length       int         `json:"length"`         // last observed value byte length
	DataTypeHint string      `json:"data_type_hint"`
	Samples      *SampleRing `json:"samples"`
	Reads        int         `json:"reads"`
	Writes       int         `json:"writes"`
}

// RoutineRecord is the evolving knowledge about one routine on one ECU.
type RoutineRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"` // resolved by collaborators
	ControlType byte   `json:"control_type"`   // last observed sub-function
	HasInput    bool   `json:"has_input"`
	HasOutput   bool   `json:"has_output"`
	Invocations int    `json:"invocations"`
}

// ECUKnowledge is the evolving knowledge record for one ECU address within a
// single session. Mutation is monotonic: sets only grow, maps only gain or
// overwrite entries, counters only increase. Never shared across sessions.
type ECUKnowledge struct {
	Address        string                    `json:"address"`
	Name           string                    `json:"name"`
	Protocol       string                    `json:"protocol"`
	MessagesSent   int                       `json:"messages_sent"`     // sent by the ECU
	MessagesRecv   int                       `json:"messages_received"` // addressed to the ECU
	FirstSeen      string                    `json:"first_seen"`
	LastSeen       string                    `json:"last_seen"`
	Services       ByteSet                   `json:"services"`
	SessionTypes   ByteSet                   `json:"session_types"`
	SecurityLevels ByteSet                   `json:"security_levels"`
	DTCs           map[string]*DTCRecord     `json:"dtcs"`
	DIDs           map[string]*DIDRecord     `json:"dids"`
	Routines       map[string]*RoutineRecord `json:"routines"`
}

// DefaultName is the generated display name for an ECU whose label is not
// known from session metadata.
func DefaultName(address string) string {
	return "ECU " + address
}

func newECUKnowledge(address, protocol, firstSeen string) *ECUKnowledge {
	return &ECUKnowledge{
		Address:   address,
		Name:      DefaultName(address),
		Protocol:  protocol,
		FirstSeen: firstSeen,
		LastSeen:  firstSeen,
		DTCs:      make(map[string]*DTCRecord),
		DIDs:      make(map[string]*DIDRecord),
		Routines:  make(map[string]*RoutineRecord),
	}
}
