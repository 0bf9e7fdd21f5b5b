package session

import (
	"strings"

	"github.com/optidiag/udstrace/internal/canaddr"
	"github.com/optidiag/udstrace/internal/discovery"
	"github.com/optidiag/udstrace/internal/isotp"
	"github.com/optidiag/udstrace/internal/tracelog"
	"github.com/optidiag/udstrace/internal/uds"
)

// DefaultSampleCap bounds the rolling sample values retained per DID.
const DefaultSampleCap = 5

// doipProtocol is the protocol tag recorded on messages from DOIP lines.
const doipProtocol = "DoIP"

// Options tune one parse pass.
type Options struct {
	// SampleCap bounds retained sample values per DID; 0 means
	// DefaultSampleCap.
	SampleCap int
	// LocalTag is the origin tag marking tester-originated lines; ""
	// means canaddr.LocalOrigin.
	LocalTag string
	// ECUNames overrides display names by address, applied before any
	// metadata labels from the trace itself.
	ECUNames map[string]string
}

func (o Options) sampleCap() int {
	if o.SampleCap <= 0 {
		return DefaultSampleCap
	}
	return o.SampleCap
}

func (o Options) localTag() string {
	if o.LocalTag == "" {
		return canaddr.LocalOrigin
	}
	return o.LocalTag
}

// Assembler drives the decoding pipeline over an ordered line sequence. All
// mutable state (assembly buffers, knowledge map) is owned by one assembler;
// independent traces parse concurrently with independent assemblers.
type Assembler struct {
	opts       Options
	reasm      *isotp.Reassembler
	agg        *discovery.Aggregator
	messages   []uds.Message
	meta       Metadata
	errs       ErrorCounts
	testerAddr string
	finalized  bool
}

// NewAssembler returns an assembler ready to consume lines.
func NewAssembler(opts Options) *Assembler {
	a := &Assembler{
		opts:  opts,
		reasm: isotp.NewReassembler(),
		agg:   discovery.NewAggregator(opts.sampleCap()),
	}
	for addr, name := range opts.ECUNames {
		a.agg.SetLabel(canaddr.NormalizeHex(addr), name)
	}
	return a
}

// AddLine consumes one raw trace line. Blank lines are ignored; content never
// causes an error.
func (a *Assembler) AddLine(raw string) {
	if a.finalized || strings.TrimSpace(raw) == "" {
		return
	}
	a.meta.LinesTotal++

	line := tracelog.DecodeLine(raw)
	switch line.Kind {
	case tracelog.KindData:
		a.meta.LinesMatched++
		a.handleData(line.Data)
	case tracelog.KindDoIP:
		a.meta.LinesMatched++
		a.handleDoIP(line.DoIP)
	case tracelog.KindMetadata:
		a.meta.LinesMatched++
		a.handleMeta(line.Meta)
	default:
		a.errs.GrammarMismatch++
	}
}

func (a *Assembler) handleData(d *tracelog.DataLine) {
	a.observeTimestamp(d.Timestamp)

	pair := canaddr.Resolve(d.Identifier(), a.canonicalOrigin(d.Origin))
	if !pair.RoleKnown {
		a.errs.AddressLayoutMismatch++
	}

	if len(d.Payload) == 0 {
		return
	}

	if d.FrameLevel() {
		res := a.reasm.Feed(pair.Key(), d.Payload)
		if res.Superseded {
			a.errs.IncompleteReassembly++
		}
		if res.SequenceError {
			a.errs.ReassemblySequence++
		}
		if res.BadFrame {
			a.errs.UnknownPayloadShape++
		}
		if res.Complete != nil {
			a.emit(d.Timestamp, pair, d.Protocol, res.Complete)
		}
		return
	}

	a.emit(d.Timestamp, pair, d.Protocol, d.Payload)
}

func (a *Assembler) handleDoIP(d *tracelog.DoIPLine) {
	a.observeTimestamp(d.Timestamp)
	if len(d.Payload) == 0 {
		return
	}
	pair := canaddr.ResolveExplicit(d.Source, d.Target, a.canonicalOrigin(d.Origin))
	a.emit(d.Timestamp, pair, doipProtocol, d.Payload)
}

func (a *Assembler) handleMeta(m *tracelog.MetaLine) {
	a.observeTimestamp(m.Timestamp)
	if a.meta.Facts == nil {
		a.meta.Facts = make(map[string]string)
	}
	for _, f := range m.Facts {
		a.meta.Facts[f.Key] = f.Value
	}
	if v := m.Get("voltage"); v != "" {
		a.meta.Voltage = v
	}
	// Per-channel ECU labels name the knowledge records.
	if addr := m.Get("ecu"); addr != "" {
		if label := m.Get("label"); label != "" {
			a.agg.SetLabel(canaddr.NormalizeHex(addr), label)
		}
	}
}

// canonicalOrigin maps a configured tester tag onto the resolver's Local
// convention.
func (a *Assembler) canonicalOrigin(origin string) string {
	if origin == a.opts.localTag() {
		return canaddr.LocalOrigin
	}
	if origin == canaddr.LocalOrigin {
		// "Local" stays tester-originated only when it is the configured tag.
		return "Remote"
	}
	return origin
}

// emit classifies a complete payload and records the resulting message in
// trace (completion) order.
func (a *Assembler) emit(timestamp string, pair canaddr.Pair, protocol string, payload []byte) {
	class := uds.Classify(payload)
	if class.Kind == uds.KindUnknown {
		a.errs.UnknownService++
	}
	if a.testerAddr == "" && pair.RoleKnown {
		a.testerAddr = pair.Tester
	}

	msg := uds.Message{
		Timestamp: timestamp,
		Addr:      pair,
		Protocol:  protocol,
		Payload:   append([]byte(nil), payload...),
		Class:     class,
	}
	a.messages = append(a.messages, msg)
	a.agg.Observe(&msg)
}

func (a *Assembler) observeTimestamp(ts string) {
	if ts == "" {
		return
	}
	if a.meta.StartTimestamp == "" {
		a.meta.StartTimestamp = ts
	}
	a.meta.EndTimestamp = ts
}

// Finalize closes the pass: still-open assembly buffers are discarded as
// incomplete (never flushed short), the duration is derived, and the result
// is assembled. Further AddLine calls after Finalize are ignored.
func (a *Assembler) Finalize() *Result {
	if !a.finalized {
		a.errs.IncompleteReassembly += a.reasm.Reset()
		a.finalized = true
	}

	a.meta.MessageCount = len(a.messages)
	a.meta.TesterAddress = a.testerAddr
	if start, ok := parseTimestamp(a.meta.StartTimestamp); ok {
		if end, ok := parseTimestamp(a.meta.EndTimestamp); ok && !end.Before(start) {
			d := end.Sub(start)
			a.meta.Duration = d.String()
			a.meta.DurationMillis = d.Milliseconds()
		}
	}

	messages := a.messages
	if messages == nil {
		messages = []uds.Message{}
	}
	return &Result{
		Messages: messages,
		ECUMap:   a.agg.ECUs(),
		Meta:     a.meta,
		Errors:   a.errs,
	}
}

// ParseTrace decodes a whole trace text in one call: the single synchronous
// entry point for callers that hold the full capture in memory.
func ParseTrace(text string, opts Options) *Result {
	a := NewAssembler(opts)
	for _, line := range strings.Split(text, "\n") {
		a.AddLine(line)
	}
	return a.Finalize()
}
