package pqc

import (
	"bytes"
	"crypto/rand"
	"testing"
)

var allParamSets = []ParameterSet{MLKEM512, MLKEM768, MLKEM1024}

func randSeed(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestKeySizes(t *testing.T) {
	want := map[ParameterSet][3]int{
		MLKEM512:  {800, 1632, 768},
		MLKEM768:  {1184, 2400, 1088},
		MLKEM1024: {1568, 3168, 1568},
	}
	for p, sizes := range want {
		if got := p.EncapsulationKeySize(); got != sizes[0] {
			t.Errorf("%s: ek size %d, want %d", p, got, sizes[0])
		}
		if got := p.DecapsulationKeySize(); got != sizes[1] {
			t.Errorf("%s: dk size %d, want %d", p, got, sizes[1])
		}
		if got := p.CiphertextSize(); got != sizes[2] {
			t.Errorf("%s: c size %d, want %d", p, got, sizes[2])
		}
	}
}

func TestEncapsulateDecapsulateRoundTrip(t *testing.T) {
	for _, p := range allParamSets {
		p := p
		t.Run(p.String(), func(t *testing.T) {
			kp, err := GenerateKeyPair(p)
			if err != nil {
				t.Fatalf("GenerateKeyPair: %v", err)
			}
			K1, c, err := Encapsulate(p, kp.EncapsulationKey)
			if err != nil {
				t.Fatalf("Encapsulate: %v", err)
			}
			K2, err := Decapsulate(p, kp.DecapsulationKey, c)
			if err != nil {
				t.Fatalf("Decapsulate: %v", err)
			}
			if !bytes.Equal(K1, K2) {
				t.Fatalf("shared secrets differ:\nK1=%x\nK2=%x", K1, K2)
			}
		})
	}
}

func TestKeyGenInternalDeterministic(t *testing.T) {
	d := make([]byte, 32)
	z := make([]byte, 32)
	for i := range d {
		d[i] = byte(i)
		z[i] = byte(255 - i)
	}
	a := KeyGenInternal(MLKEM768, d, z)
	b := KeyGenInternal(MLKEM768, d, z)
	if !bytes.Equal(a.EncapsulationKey, b.EncapsulationKey) {
		t.Fatal("KeyGenInternal ek not deterministic")
	}
	if !bytes.Equal(a.DecapsulationKey, b.DecapsulationKey) {
		t.Fatal("KeyGenInternal dk not deterministic")
	}
}

func TestEncapsulateInternalDeterministic(t *testing.T) {
	d, z := make([]byte, 32), make([]byte, 32)
	kp := KeyGenInternal(MLKEM512, d, z)
	m := make([]byte, 32)
	for i := range m {
		m[i] = byte(i * 3)
	}
	K1, c1 := EncapsulateInternal(MLKEM512, kp.EncapsulationKey, m)
	K2, c2 := EncapsulateInternal(MLKEM512, kp.EncapsulationKey, m)
	if !bytes.Equal(K1, K2) || !bytes.Equal(c1, c2) {
		t.Fatal("EncapsulateInternal not deterministic given the same message")
	}
}

func TestDecapsulateWrongCiphertextTriggersImplicitRejection(t *testing.T) {
	kp, err := GenerateKeyPair(MLKEM512)
	if err != nil {
		t.Fatal(err)
	}
	_, c, err := Encapsulate(MLKEM512, kp.EncapsulationKey)
	if err != nil {
		t.Fatal(err)
	}
	tampered := append([]byte{}, c...)
	tampered[len(tampered)-1] ^= 0xFF

	K, err := Decapsulate(MLKEM512, kp.DecapsulationKey, tampered)
	if err != nil {
		t.Fatalf("Decapsulate on a tampered ciphertext must not error, got %v", err)
	}
	if len(K) != SharedSecretSize {
		t.Fatalf("implicit-rejection secret has wrong length: %d", len(K))
	}

	K2, err := Decapsulate(MLKEM512, kp.DecapsulationKey, tampered)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(K, K2) {
		t.Fatal("implicit rejection must be deterministic in (dk, c)")
	}
}

func TestEncapsulateRejectsWrongLength(t *testing.T) {
	kp, err := GenerateKeyPair(MLKEM512)
	if err != nil {
		t.Fatal(err)
	}
	short := kp.EncapsulationKey[:len(kp.EncapsulationKey)-1]
	if _, _, err := Encapsulate(MLKEM512, short); err != ErrInvalidPublicKey {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
}

func TestEncapsulateRejectsCoefficientAtModulus(t *testing.T) {
	kp, err := GenerateKeyPair(MLKEM512)
	if err != nil {
		t.Fatal(err)
	}
	bad := append([]byte{}, kp.EncapsulationKey...)
	// Force the first 12-bit coefficient in the first block to 3329 (== q),
	// which byte_decode reduces mod q to 0 but byte_encode(12, 0) no longer
	// matches the original bytes.
	bad[0] = 0x01
	bad[1] = 0x0D // low byte then high nibble of a little-endian 12-bit group
	if _, _, err := Encapsulate(MLKEM512, bad); err != ErrInvalidPublicKey {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
}

func TestDecapsulateRejectsWrongLength(t *testing.T) {
	kp, err := GenerateKeyPair(MLKEM512)
	if err != nil {
		t.Fatal(err)
	}
	_, c, err := Encapsulate(MLKEM512, kp.EncapsulationKey)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decapsulate(MLKEM512, kp.DecapsulationKey[:len(kp.DecapsulationKey)-1], c); err != ErrInvalidSecretKey {
		t.Fatalf("expected ErrInvalidSecretKey, got %v", err)
	}
	if _, err := Decapsulate(MLKEM512, kp.DecapsulationKey, c[:len(c)-1]); err != ErrInvalidCiphertext {
		t.Fatalf("expected ErrInvalidCiphertext, got %v", err)
	}
}

func TestZeroClearsDecapsulationKey(t *testing.T) {
	kp, err := GenerateKeyPair(MLKEM512)
	if err != nil {
		t.Fatal(err)
	}
	kp.Zero()
	for _, b := range kp.DecapsulationKey {
		if b != 0 {
			t.Fatal("Zero left a nonzero byte in the decapsulation key")
		}
	}
}
