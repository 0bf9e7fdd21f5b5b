package isotp

// Result reports what became of one frame fed to the reassembler.
type Result struct {
	// Complete is the reassembled application payload. Nil while a
	// multi-frame message is still accumulating and for flow-control frames.
	Complete []byte
	// SequenceError is set when a consecutive frame arrived with the wrong
	// sequence number; the open buffer was discarded.
	SequenceError bool
	// Superseded is set when a first frame arrived while a buffer for the
	// same pair was still open; the old buffer was discarded as incomplete.
	Superseded bool
	// BadFrame is set when the PCI could not be decoded; the frame was
	// dropped.
	BadFrame bool
}

// buffer accumulates one in-flight multi-frame message.
type buffer struct {
	total   int
	data    []byte
	nextSeq int
}

// Reassembler merges single- and multi-frame ISO-TP segments into complete
// payloads, one assembly buffer per conversation key. It is owned by a single
// parse pass and is not safe for concurrent use.
type Reassembler struct {
	buffers map[string]*buffer
}

// NewReassembler returns an empty reassembler.
func NewReassembler() *Reassembler {
	return &Reassembler{buffers: make(map[string]*buffer)}
}

// Feed processes one raw frame for the given conversation key.
func (r *Reassembler) Feed(key string, frame []byte) Result {
	pci := DecodePCI(frame)
	switch pci.Type {
	case FrameSingle:
		out := make([]byte, pci.Length)
		copy(out, pci.Data)
		return Result{Complete: out}

	case FrameFirst:
		res := Result{}
		if _, open := r.buffers[key]; open {
			res.Superseded = true
		}
		b := &buffer{total: pci.Length, nextSeq: 1}
		b.data = append(b.data, truncate(pci.Data, pci.Length)...)
		r.buffers[key] = b
		return res

	case FrameConsecutive:
		b, open := r.buffers[key]
		if !open {
			// Stray consecutive frame with nothing to attach it to.
			return Result{SequenceError: true}
		}
		if pci.Sequence != b.nextSeq%16 {
			delete(r.buffers, key)
			return Result{SequenceError: true}
		}
		b.nextSeq++
		b.data = append(b.data, truncate(pci.Data, b.total-len(b.data))...)
		if len(b.data) >= b.total {
			delete(r.buffers, key)
			return Result{Complete: b.data}
		}
		return Result{}

	case FrameFlowControl:
		// Link-layer pacing only; never emitted as application data.
		return Result{}

	default:
		return Result{BadFrame: true}
	}
}

// Open returns the number of assembly buffers still awaiting consecutive
// frames.
func (r *Reassembler) Open() int {
	return len(r.buffers)
}

// Reset discards all open buffers and returns how many were dropped. Called
// at end of trace so incomplete messages are counted rather than flushed
// short.
func (r *Reassembler) Reset() int {
	n := len(r.buffers)
	r.buffers = make(map[string]*buffer)
	return n
}

// truncate caps frame payload bytes at the space the declared total length
// still allows, tolerating link-layer padding.
func truncate(data []byte, max int) []byte {
	if max < 0 {
		max = 0
	}
	if len(data) > max {
		return data[:max]
	}
	return data
}
