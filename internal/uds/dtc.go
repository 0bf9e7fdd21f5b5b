package uds

// DTC decoding for the ReadDTCInformation (0x19) service family.

import (
	"fmt"
	"regexp"
)

// ReadDTCInformation sub-functions.
const (
	DTCReportNumberByStatusMask     byte = 0x01
	DTCReportByStatusMask           byte = 0x02
	DTCReportSnapshotIdentification byte = 0x03
	DTCReportSupportedDTC           byte = 0x0A
	DTCReportFirstTestFailed        byte = 0x0B
	DTCReportFirstConfirmed         byte = 0x0C
	DTCReportMostRecentTestFailed   byte = 0x0D
	DTCReportMostRecentConfirmed    byte = 0x0E
	DTCReportMirrorMemoryByStatus   byte = 0x0F
	DTCReportNumberMirrorMemory     byte = 0x11
	DTCReportNumberEmissionsRelated byte = 0x12
	DTCReportEmissionsRelatedByMask byte = 0x13
	DTCReportPermanentStatus        byte = 0x15
)

var dtcCodeRe = regexp.MustCompile(`^[PCBU][0-3][0-9A-F]{3}$`)

// dtcLetters maps the top two bits of the first code byte to the SAE system
// letter.
var dtcLetters = [4]byte{'P', 'C', 'B', 'U'}

// EncodeDTC re-encodes a raw 2-byte trouble code into the conventional
// letter+4-hex-digit form: the top two bits of b1 select the letter, the next
// two bits the first digit, the low nibble of b1 the second digit, and the
// two nibbles of b2 the third and fourth digits.
func EncodeDTC(b1, b2 byte) string {
	const hexDigits = "0123456789ABCDEF"
	return string([]byte{
		dtcLetters[b1>>6],
		hexDigits[(b1>>4)&0x3],
		hexDigits[b1&0x0F],
		hexDigits[b2>>4],
		hexDigits[b2&0x0F],
	})
}

// NormalizeDTC re-encodes a code string idempotently: an already
// letter-prefixed code is returned unchanged.
func NormalizeDTC(code string) string {
	if dtcCodeRe.MatchString(code) {
		return code
	}
	if len(code) == 4 {
		var b1, b2 byte
		if _, err := fmt.Sscanf(code, "%02X%02X", &b1, &b2); err == nil {
			return EncodeDTC(b1, b2)
		}
	}
	return code
}

// DTC is one decoded trouble-code record.
type DTC struct {
	Code   string `json:"code"`   // letter+4-hex form, e.g. P0123
	Raw    string `json:"raw"`    // raw code bytes as hex
	Status byte   `json:"status"` // UDS status byte, 0 when absent
}

// countOnlySubFunction reports sub-functions that yield a DTC count rather
// than code records.
func countOnlySubFunction(sf byte) bool {
	switch sf {
	case DTCReportNumberByStatusMask, DTCReportNumberMirrorMemory,
		DTCReportNumberEmissionsRelated, 0x07:
		return true
	}
	return false
}

// DecodeDTCResponse extracts trouble-code records from a positive
// ReadDTCInformation response payload (service id included). Count-style
// sub-functions and truncated payloads yield no records; decoding never
// fails.
func DecodeDTCResponse(payload []byte) []DTC {
	if len(payload) < 2 || payload[0] != ServiceReadDTCInformation+PositiveResponseOffset {
		return nil
	}
	sf := payload[1]
	if countOnlySubFunction(sf) {
		return nil
	}

	// Sub-function, then the status-availability mask, then records of
	// 2 code bytes + 1 status byte.
	body := payload[2:]
	if len(body) < 1 {
		return nil
	}
	body = body[1:]

	var dtcs []DTC
	for len(body) >= 3 {
		dtcs = append(dtcs, DTC{
			Code:   EncodeDTC(body[0], body[1]),
			Raw:    fmt.Sprintf("%02X%02X", body[0], body[1]),
			Status: body[2],
		})
		body = body[3:]
	}
	return dtcs
}

// UDSTriplet converts a letter-prefixed code plus failure-mode suffix into
// the 3-byte UDS hex form, e.g. ("P05FF", 0x00) -> "05 FF 00". It is the
// exact inverse of EncodeDTC for the first two bytes.
func UDSTriplet(code string, fmi byte) (string, error) {
	if !dtcCodeRe.MatchString(code) {
		return "", fmt.Errorf("malformed trouble code %q", code)
	}
	var letterBits byte
	switch code[0] {
	case 'P':
		letterBits = 0x0
	case 'C':
		letterBits = 0x1
	case 'B':
		letterBits = 0x2
	case 'U':
		letterBits = 0x3
	}
	var d [4]byte
	if _, err := fmt.Sscanf(code[1:], "%1X%1X%1X%1X", &d[0], &d[1], &d[2], &d[3]); err != nil {
		return "", fmt.Errorf("malformed trouble code %q", code)
	}
	b1 := letterBits<<6 | d[0]<<4 | d[1]
	b2 := d[2]<<4 | d[3]
	return fmt.Sprintf("%02X %02X %02X", b1, b2, fmi), nil
}
