package discovery

import (
	"reflect"
	"testing"
)

func TestSampleRing(t *testing.T) {
	r := NewSampleRing(3)
	if r.Len() != 0 {
		t.Fatalf("empty ring Len() = %d", r.Len())
	}
	for _, v := range []string{"01", "02", "03", "04", "05"} {
		r.Add(v)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want capacity 3", r.Len())
	}
	want := []string{"03", "04", "05"}
	if got := r.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}

	b, err := r.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `["03","04","05"]` {
		t.Errorf("MarshalJSON = %s", b)
	}
}

func TestSampleRingClampsCapacity(t *testing.T) {
	r := NewSampleRing(0)
	r.Add("01")
	r.Add("02")
	if got := r.Values(); len(got) != 1 || got[0] != "02" {
		t.Errorf("Values() = %v, want just the newest", got)
	}
}
