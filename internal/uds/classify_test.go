package uds

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		want    Classification
	}{
		{
			name:    "routine control request",
			payload: []byte{0x31, 0x03, 0xF0, 0x03},
			want:    Classification{Kind: KindRequest, Service: 0x31, RawID: 0x31},
		},
		{
			name:    "read DID positive response",
			payload: []byte{0x62, 0xF1, 0x90, 0x41},
			want:    Classification{Kind: KindPositiveResponse, Service: 0x22, RawID: 0x62},
		},
		{
			name:    "negative response",
			payload: []byte{0x7F, 0x27, 0x35},
			want:    Classification{Kind: KindNegativeResponse, Service: 0x27, RawID: 0x7F, NRC: 0x35},
		},
		{
			name:    "truncated negative response",
			payload: []byte{0x7F, 0x10},
			want:    Classification{Kind: KindNegativeResponse, Service: 0x10, RawID: 0x7F},
		},
		{
			name:    "bare negative response byte",
			payload: []byte{0x7F},
			want:    Classification{Kind: KindNegativeResponse, RawID: 0x7F},
		},
		{
			name:    "obd mode 1",
			payload: []byte{0x01, 0x0C},
			want:    Classification{Kind: KindRequest, Service: 0x01, RawID: 0x01},
		},
		{
			name:    "obd mode 1 response",
			payload: []byte{0x41, 0x0C, 0x1A, 0xF8},
			want:    Classification{Kind: KindPositiveResponse, Service: 0x01, RawID: 0x41},
		},
		{
			name:    "unknown id passes through",
			payload: []byte{0xBA, 0x01},
			want:    Classification{Kind: KindUnknown, Service: 0xBA, RawID: 0xBA},
		},
		{
			name:    "empty payload",
			payload: nil,
			want:    Classification{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.payload); got != tc.want {
				t.Errorf("Classify(% X) = %+v, want %+v", tc.payload, got, tc.want)
			}
		})
	}
}

// Every 7F <service> <nrc> payload classifies as a negative response and
// reports back the original service, regardless of the service byte.
func TestClassifyNegativeProperty(t *testing.T) {
	for svc := 0; svc < 256; svc++ {
		c := Classify([]byte{NegativeResponseID, byte(svc), 0x31})
		if c.Kind != KindNegativeResponse {
			t.Fatalf("7F %02X 31 classified as %v", svc, c.Kind)
		}
		if c.Service != byte(svc) {
			t.Fatalf("7F %02X 31: Service = %02X", svc, c.Service)
		}
		if c.NRC != 0x31 {
			t.Fatalf("7F %02X 31: NRC = %02X", svc, c.NRC)
		}
	}
}

// A request id and its +0x40 positive response id always agree on the
// request-plane service for every id the request plane covers.
func TestClassifyRequestResponseAgreement(t *testing.T) {
	for sid := 0; sid < 256; sid++ {
		if !IsRequestService(byte(sid)) {
			continue
		}
		req := Classify([]byte{byte(sid), 0x00})
		if req.Kind != KindRequest {
			t.Fatalf("request %02X classified as %v", sid, req.Kind)
		}
		rsp := Classify([]byte{byte(sid) + PositiveResponseOffset, 0x00})
		if rsp.Kind != KindPositiveResponse || rsp.Service != byte(sid) {
			t.Fatalf("response %02X = %+v, want positive for %02X", sid+0x40, rsp, sid)
		}
	}
}

func TestServiceName(t *testing.T) {
	cases := []struct {
		sid  byte
		want string
	}{
		{0x22, "ReadDataByIdentifier"},
		{0x31, "RoutineControl"},
		{0x01, "OBD_CurrentData"},
		{0xBA, "Unknown(0xBA)"},
	}
	for _, tc := range cases {
		if got := ServiceName(tc.sid); got != tc.want {
			t.Errorf("ServiceName(0x%02X) = %q, want %q", tc.sid, got, tc.want)
		}
	}
}

func TestNRCName(t *testing.T) {
	if got := NRCName(0x33); got != "SecurityAccessDenied" {
		t.Errorf("NRCName(0x33) = %q", got)
	}
	if got := NRCName(0x5A); got != "Unknown(0x5A)" {
		t.Errorf("NRCName(0x5A) = %q", got)
	}
}

func TestHexBytesMarshal(t *testing.T) {
	b, err := HexBytes{0x31, 0x01, 0xF0, 0x03}.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"3101F003"` {
		t.Errorf("MarshalJSON = %s", b)
	}
}
