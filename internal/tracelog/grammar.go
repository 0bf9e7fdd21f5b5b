package tracelog

// Line grammars for the three recognized trace line shapes. The capture tool
// escapes '>', '<' and '&' as HTML entities and may prefix lines with a
// "<n>→" sequence ordinal; both are undone before grammar matching.

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

var (
	seqPrefixRe = regexp.MustCompile(`^(\d+)→`)

	// <ts> | [Origin]->[Dest] DATA => mod[0] [ISO15765] cmd[write] args[0x18DAB0F1] data[0x3103F003]
	dataRe = regexp.MustCompile(`^(\S+) \| \[([^\]]+)\]->\[([^\]]+)\] DATA => mod\[([^\]]*)\] \[([^\]]+)\] cmd\[([^\]]*)\] args\[([^\]]*)\] data\[([^\]]*)\]$`)

	// <ts> | [Origin]->[Dest] DOIP => src[0E80] tgt[1706] data[0x22F190]
	doipRe = regexp.MustCompile(`^(\S+) \| \[([^\]]+)\]->\[([^\]]+)\] DOIP => src\[([^\]]*)\] tgt\[([^\]]*)\] data\[([^\]]*)\]$`)

	// <ts> | METADATA => voltage[12.6V] connector[J1962]
	metaRe = regexp.MustCompile(`^(\S+) \| METADATA => (.*)$`)

	factRe = regexp.MustCompile(`(\w+)\[([^\]]*)\]`)
)

// entityReplacer undoes the three entities the capture tool emits.
var entityReplacer = strings.NewReplacer("&gt;", ">", "&lt;", "<", "&amp;", "&")

// DecodeLine classifies one raw trace line. Lines matching none of the three
// grammars come back with Kind == KindUnrecognized; decoding never fails.
func DecodeLine(raw string) Line {
	line := Line{Kind: KindUnrecognized, Seq: -1}

	text := entityReplacer.Replace(strings.TrimRight(raw, "\r\n"))
	if m := seqPrefixRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			line.Seq = n
		}
		text = text[len(m[0]):]
	}

	if m := dataRe.FindStringSubmatch(text); m != nil {
		line.Kind = KindData
		line.Data = &DataLine{
			Timestamp: m[1],
			Origin:    m[2],
			Dest:      m[3],
			Module:    m[4],
			Protocol:  m[5],
			Command:   m[6],
			Args:      splitArgs(m[7]),
			Payload:   decodeHexField(m[8]),
		}
		return line
	}

	if m := doipRe.FindStringSubmatch(text); m != nil {
		line.Kind = KindDoIP
		line.DoIP = &DoIPLine{
			Timestamp: m[1],
			Origin:    m[2],
			Dest:      m[3],
			Source:    normalizeHex(m[4]),
			Target:    normalizeHex(m[5]),
			Payload:   decodeHexField(m[6]),
		}
		return line
	}

	if m := metaRe.FindStringSubmatch(text); m != nil {
		line.Kind = KindMetadata
		meta := &MetaLine{Timestamp: m[1]}
		for _, f := range factRe.FindAllStringSubmatch(m[2], -1) {
			meta.Facts = append(meta.Facts, Fact{Key: f[1], Value: f[2]})
		}
		line.Meta = meta
		return line
	}

	return line
}

func splitArgs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// decodeHexField turns an optionally 0x-prefixed hex string into bytes.
// Malformed or odd-length hex yields nil; the caller treats that the same as
// an empty payload.
func decodeHexField(s string) []byte {
	s = normalizeHex(s)
	if s == "" || len(s)%2 != 0 {
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// normalizeHex strips an optional 0x/0X prefix and uppercases the rest.
func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	return strings.ToUpper(s)
}
