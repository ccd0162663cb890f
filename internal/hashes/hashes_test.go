package hashes

import (
	"bytes"
	"testing"
)

func TestHDeterministicAndSensitive(t *testing.T) {
	a := H([]byte("ml-kem"))
	b := H([]byte("ml-kem"))
	c := H([]byte("ml-keM"))
	if a != b {
		t.Fatal("H not deterministic")
	}
	if a == c {
		t.Fatal("H did not change with a one-byte input difference")
	}
}

func TestGSplitsIntoTwoDistinctHalves(t *testing.T) {
	a1, b1 := G([]byte("seed"))
	a2, b2 := G([]byte("seed"))
	if a1 != a2 || b1 != b2 {
		t.Fatal("G not deterministic")
	}
	if a1 == b1 {
		t.Fatal("G's two halves are identical, expected independent outputs")
	}
	a3, _ := G([]byte("seeD"))
	if a1 == a3 {
		t.Fatal("G did not change with a one-byte input difference")
	}
}

func TestJLength(t *testing.T) {
	out := J([]byte("z"))
	if len(out) != 32 {
		t.Fatalf("J output length = %d, want 32", len(out))
	}
}

func TestPRFLengthPerEta(t *testing.T) {
	seed := make([]byte, 32)
	for _, eta := range []int{2, 3} {
		out := PRF(eta, seed, 0)
		if len(out) != 64*eta {
			t.Fatalf("PRF(eta=%d) length = %d, want %d", eta, len(out), 64*eta)
		}
	}
}

func TestPRFDiffersOnCounterByte(t *testing.T) {
	seed := make([]byte, 32)
	a := PRF(2, seed, 0)
	b := PRF(2, seed, 1)
	if bytes.Equal(a, b) {
		t.Fatal("PRF produced identical output for different counter bytes")
	}
}

func TestPRFRejectsBadSeedLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on wrong seed length")
		}
	}()
	PRF(2, make([]byte, 31), 0)
}

func TestPRFRejectsBadEta(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid eta")
		}
	}()
	PRF(4, make([]byte, 32), 0)
}

func TestXOFResumableSqueezeMatchesSingleCall(t *testing.T) {
	seed := []byte("xof seed for matrix expansion")

	whole := NewXOF()
	whole.Absorb(seed)
	full := whole.Squeeze(10)

	parts := NewXOF()
	parts.Absorb(seed)
	p1 := parts.Squeeze(3)
	p2 := parts.Squeeze(7)

	if !bytes.Equal(full, append(p1, p2...)) {
		t.Fatal("interleaved XOF squeeze diverged from single large squeeze")
	}
}

func TestXOFDiffersOnSeed(t *testing.T) {
	a := NewXOF()
	a.Absorb([]byte("rho || 00 || 00"))
	b := NewXOF()
	b.Absorb([]byte("rho || 01 || 00"))
	if bytes.Equal(a.Squeeze(16), b.Squeeze(16)) {
		t.Fatal("XOF produced identical output for different seeds")
	}
}
