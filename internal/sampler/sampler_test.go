package sampler

import (
	"crypto/rand"
	"testing"

	"github.com/eth2030/mlkem/internal/ring"
)

func TestSampleNTTFillsAllCoefficientsInRange(t *testing.T) {
	seed := make([]byte, 34)
	if _, err := rand.Read(seed); err != nil {
		t.Fatal(err)
	}
	f := SampleNTT(seed)
	for _, c := range f {
		if c >= ring.Q {
			t.Fatalf("coefficient %d out of range [0,%d)", c, ring.Q)
		}
	}
}

func TestSampleNTTDeterministic(t *testing.T) {
	seed := make([]byte, 34)
	for i := range seed {
		seed[i] = byte(i)
	}
	a := SampleNTT(seed)
	b := SampleNTT(seed)
	if a != b {
		t.Fatal("SampleNTT not deterministic given the same seed")
	}
}

func TestSampleNTTDiffersOnIndexSwap(t *testing.T) {
	rho := make([]byte, 32)
	seedIJ := append(append([]byte{}, rho...), 1, 2)
	seedJI := append(append([]byte{}, rho...), 2, 1)
	if SampleNTT(seedIJ) == SampleNTT(seedJI) {
		t.Fatal("swapping the (j,i) index bytes produced identical output")
	}
}

func TestSamplePolyCBDInRange(t *testing.T) {
	for _, eta := range []int{2, 3} {
		b := make([]byte, 64*eta)
		if _, err := rand.Read(b); err != nil {
			t.Fatal(err)
		}
		f := SamplePolyCBD(eta, b)
		for _, c := range f {
			if c >= ring.Q {
				t.Fatalf("eta=%d: coefficient %d out of range", eta, c)
			}
		}
	}
}

func TestSamplePolyCBDZeroInputIsZero(t *testing.T) {
	b := make([]byte, 64*2)
	f := SamplePolyCBD(2, b)
	var zero ring.Poly
	if f != zero {
		t.Fatal("all-zero PRF output should yield the zero polynomial")
	}
}

func TestSamplePolyCBDWrongLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on wrong-length input")
		}
	}()
	SamplePolyCBD(2, make([]byte, 10))
}
