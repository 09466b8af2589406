package core

import "testing"

func TestSampleFingerprint_Deterministic(t *testing.T) {
	a := NewSampleFingerprint([]byte("0101010101"))
	b := NewSampleFingerprint([]byte("0101010101"))
	if a != b {
		t.Errorf("fingerprints differ for identical input: %s vs %s", a, b)
	}

	c := NewSampleFingerprint([]byte("0000000000"))
	if a == c {
		t.Error("different samples produced the same fingerprint")
	}

	if len(a.Short()) != 12 {
		t.Errorf("expected 12 character short form, got %q", a.Short())
	}
}
