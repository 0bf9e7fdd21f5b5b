package discovery

import (
	"fmt"
	"sort"

	"github.com/optidiag/udstrace/internal/uds"
)

// Aggregator maintains one evolving ECUKnowledge per discovered ECU address.
// Each parse invocation owns its aggregator exclusively; independent parses
// never share one. Messages must be observed strictly in trace order because
// first-seen/last-seen semantics depend on it.
type Aggregator struct {
	ecus      map[string]*ECUKnowledge
	labels    map[string]string // address -> display name from session metadata
	sampleCap int
}

// NewAggregator returns an empty aggregator retaining at most sampleCap
// observed values per DID.
func NewAggregator(sampleCap int) *Aggregator {
	if sampleCap < 1 {
		sampleCap = 1
	}
	return &Aggregator{
		ecus:      make(map[string]*ECUKnowledge),
		labels:    make(map[string]string),
		sampleCap: sampleCap,
	}
}

// SetLabel records a display name for an ECU address, as announced by
// per-channel metadata lines. Applies to knowledge already created and to
// knowledge created later.
func (a *Aggregator) SetLabel(address, name string) {
	if name == "" {
		return
	}
	a.labels[address] = name
	if k, ok := a.ecus[address]; ok {
		k.Name = name
	}
}

// Observe merges one classified message into the knowledge map. Messages
// with an unknown address role still aggregate under their fallback address.
func (a *Aggregator) Observe(m *uds.Message) {
	addr := m.Addr.ECU
	if addr == "" {
		return
	}
	k, ok := a.ecus[addr]
	if !ok {
		k = newECUKnowledge(addr, m.Protocol, m.Timestamp)
		if label, found := a.labels[addr]; found {
			k.Name = label
		}
		a.ecus[addr] = k
	}
	k.LastSeen = m.Timestamp

	sentByECU := m.Addr.RoleKnown && m.Addr.Source == addr
	if sentByECU {
		k.MessagesSent++
	} else {
		k.MessagesRecv++
	}

	if m.Class.Kind != uds.KindUnknown {
		k.Services.Add(m.Class.Service)
	}
	if m.Class.Kind == uds.KindNegativeResponse {
		return
	}

	if st, ok := uds.SessionType(m.Class, m.Payload); ok {
		k.SessionTypes.Add(st)
	}
	if lvl, ok := uds.SecurityLevel(m.Class, m.Payload); ok {
		k.SecurityLevels.Add(lvl)
	}

	if m.Class.Kind == uds.KindPositiveResponse && m.Class.Service == uds.ServiceReadDTCInformation {
		for _, dtc := range uds.DecodeDTCResponse(m.Payload) {
			a.mergeDTC(k, dtc)
		}
	}
	if v := uds.DecodeDID(m.Class, m.Payload); v != nil {
		a.mergeDID(k, m.Class, v)
	}
	if inv := uds.DecodeRoutine(m.Class, m.Payload); inv != nil {
		mergeRoutine(k, inv)
	}
}

func (a *Aggregator) mergeDTC(k *ECUKnowledge, dtc uds.DTC) {
	rec, ok := k.DTCs[dtc.Code]
	if !ok {
		rec = &DTCRecord{Code: dtc.Code, Raw: dtc.Raw}
		k.DTCs[dtc.Code] = rec
	}
	rec.Status = dtc.Status
	rec.Occurrences++
}

func (a *Aggregator) mergeDID(k *ECUKnowledge, c uds.Classification, v *uds.DIDValue) {
	rec, ok := k.DIDs[v.DID]
	if !ok {
		rec = &DIDRecord{
			DID:          v.DID,
			DataTypeHint: "unknown",
			Samples:      NewSampleRing(a.sampleCap),
		}
		k.DIDs[v.DID] = rec
	}
	switch {
	case c.Service == uds.ServiceWriteDataByIdentifier && c.Kind == uds.KindRequest:
		rec.Writes++
	case c.Service == uds.ServiceReadDataByIdentifier && c.Kind == uds.KindRequest:
		rec.Reads++
	}
	if v.Length > 0 {
		rec.Length = v.Length
		rec.DataTypeHint = uds.DataTypeHint(v.Value)
		rec.Samples.Add(fmt.Sprintf("%X", v.Value))
	}
}

func mergeRoutine(k *ECUKnowledge, inv *uds.RoutineInvocation) {
	rec, ok := k.Routines[inv.ID]
	if !ok {
		rec = &RoutineRecord{ID: inv.ID}
		k.Routines[inv.ID] = rec
	}
	rec.ControlType = inv.Control
	rec.HasInput = rec.HasInput || inv.HasInput
	rec.HasOutput = rec.HasOutput || inv.HasOutput
	rec.Invocations++
}

// ECUs returns the knowledge map. The map is the aggregator's live state;
// callers must not mutate it.
func (a *Aggregator) ECUs() map[string]*ECUKnowledge {
	return a.ecus
}

// Addresses returns the discovered ECU addresses in sorted order.
func (a *Aggregator) Addresses() []string {
	out := make([]string, 0, len(a.ecus))
	for addr := range a.ecus {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
