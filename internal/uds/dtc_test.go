package uds

import (
	"reflect"
	"testing"
)

func TestEncodeDTC(t *testing.T) {
	cases := []struct {
		b1, b2 byte
		want   string
	}{
		{0x01, 0x23, "P0123"},
		{0x05, 0xFF, "P05FF"},
		{0x50, 0x16, "C1016"},
		{0x9A, 0xBC, "B1ABC"},
		{0xC0, 0x73, "U0073"},
		{0x00, 0x00, "P0000"},
		{0xFF, 0xFF, "U3FFF"},
	}
	for _, tc := range cases {
		if got := EncodeDTC(tc.b1, tc.b2); got != tc.want {
			t.Errorf("EncodeDTC(%02X, %02X) = %q, want %q", tc.b1, tc.b2, got, tc.want)
		}
	}
}

func TestNormalizeDTC(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0123", "P0123"},
		{"9ABC", "B1ABC"},
		{"P0123", "P0123"}, // already encoded
		{"U3FFF", "U3FFF"},
		{"XYZ", "XYZ"}, // unrecognized passes through
	}
	for _, tc := range cases {
		if got := NormalizeDTC(tc.in); got != tc.want {
			t.Errorf("NormalizeDTC(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Re-encoding an already encoded code is a no-op for every raw byte pair.
func TestNormalizeDTCIdempotent(t *testing.T) {
	for b1 := 0; b1 < 256; b1 += 7 {
		for b2 := 0; b2 < 256; b2 += 5 {
			code := EncodeDTC(byte(b1), byte(b2))
			if again := NormalizeDTC(code); again != code {
				t.Fatalf("NormalizeDTC(%q) = %q, not idempotent", code, again)
			}
		}
	}
}

func TestDecodeDTCResponse(t *testing.T) {
	// 59 02 <mask> then records of 2 code bytes + 1 status byte.
	payload := []byte{0x59, 0x02, 0xFF, 0x01, 0x23, 0x2F, 0x50, 0x16, 0x28}
	got := DecodeDTCResponse(payload)
	want := []DTC{
		{Code: "P0123", Raw: "0123", Status: 0x2F},
		{Code: "C1016", Raw: "5016", Status: 0x28},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeDTCResponse = %+v, want %+v", got, want)
	}
}

func TestDecodeDTCResponseEdgeCases(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
	}{
		{"count-only sub-function", []byte{0x59, 0x01, 0xFF, 0x00, 0x01}},
		{"wrong service", []byte{0x62, 0xF1, 0x90, 0x41}},
		{"request not response", []byte{0x19, 0x02, 0xFF}},
		{"no records", []byte{0x59, 0x02, 0xFF}},
		{"truncated header", []byte{0x59}},
		{"empty", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeDTCResponse(tc.payload); got != nil {
				t.Errorf("DecodeDTCResponse(% X) = %+v, want nil", tc.payload, got)
			}
		})
	}

	// A trailing partial record is dropped, complete records survive.
	payload := []byte{0x59, 0x02, 0xFF, 0x01, 0x23, 0x2F, 0x50, 0x16}
	got := DecodeDTCResponse(payload)
	if len(got) != 1 || got[0].Code != "P0123" {
		t.Errorf("partial trailing record: got %+v", got)
	}
}

func TestUDSTriplet(t *testing.T) {
	cases := []struct {
		code string
		fmi  byte
		want string
	}{
		{"P05FF", 0x00, "05 FF 00"},
		{"P0123", 0x13, "01 23 13"},
		{"C1016", 0x28, "50 16 28"},
		{"B1ABC", 0x11, "9A BC 11"},
		{"U0073", 0x7F, "C0 73 7F"},
	}
	for _, tc := range cases {
		got, err := UDSTriplet(tc.code, tc.fmi)
		if err != nil {
			t.Errorf("UDSTriplet(%q, %02X) error: %v", tc.code, tc.fmi, err)
			continue
		}
		if got != tc.want {
			t.Errorf("UDSTriplet(%q, %02X) = %q, want %q", tc.code, tc.fmi, got, tc.want)
		}
	}
}

func TestUDSTripletMalformed(t *testing.T) {
	for _, code := range []string{"", "P123", "X0123", "P4123", "p0123", "P012G"} {
		if _, err := UDSTriplet(code, 0); err == nil {
			t.Errorf("UDSTriplet(%q) accepted malformed code", code)
		}
	}
}

// UDSTriplet inverts EncodeDTC across the full raw byte space.
func TestUDSTripletRoundTrip(t *testing.T) {
	for b1 := 0; b1 < 256; b1 += 3 {
		for b2 := 0; b2 < 256; b2 += 11 {
			code := EncodeDTC(byte(b1), byte(b2))
			got, err := UDSTriplet(code, 0x16)
			if err != nil {
				t.Fatalf("UDSTriplet(%q): %v", code, err)
			}
			want := FMILabel(byte(b1)) + " " + FMILabel(byte(b2)) + " 16"
			if got != want {
				t.Fatalf("round trip %02X %02X -> %q -> %q, want %q", b1, b2, code, got, want)
			}
		}
	}
}

func TestFMIMeaning(t *testing.T) {
	if got := FMIMeaning(0x13); got != "Circuit open" {
		t.Errorf("FMIMeaning(0x13) = %q", got)
	}
	if got := FMIMeaning(0x42); got != "" {
		t.Errorf("FMIMeaning(0x42) = %q, want empty", got)
	}
	if got := FMILabel(0x0A); got != "0A" {
		t.Errorf("FMILabel(0x0A) = %q", got)
	}
}
