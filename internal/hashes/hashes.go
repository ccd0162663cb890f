// Package hashes is the fixed hash façade ML-KEM is built on: SHA3-256
// (H), SHA3-512 split into two 32-byte halves (G), SHAKE-256 (the
// collision-resistant hash J and the noise PRF), and a resumable SHAKE-128
// handle (XOF) for rejection sampling. All five are built on package
// sponge; nothing here reaches into an external SHA-3 implementation, in
// keeping with the Keccak-p permutation being a component of this module
// rather than a borrowed primitive.
package hashes

import (
	"fmt"

	"github.com/eth2030/mlkem/internal/sponge"
)

const (
	rateSHA3_256 = 1088 // bits
	rateSHA3_512 = 576
	rateSHAKE128 = 1344
	rateSHAKE256 = 1088

	dsSHA3  = 0x06 // '01' domain separation, padded into the byte per Keccak convention
	dsSHAKE = 0x1F // '1111' domain separation
)

// H computes SHA3-256(m), 32 bytes.
func H(m []byte) [32]byte {
	s := sponge.New(rateSHA3_256, dsSHA3, 2)
	s.Absorb(m)
	var out [32]byte
	copy(out[:], s.Squeeze(32))
	return out
}

// G computes SHA3-512(m) and splits it into two 32-byte halves.
func G(m []byte) (a, b [32]byte) {
	s := sponge.New(rateSHA3_512, dsSHA3, 2)
	s.Absorb(m)
	full := s.Squeeze(64)
	copy(a[:], full[:32])
	copy(b[:], full[32:])
	return a, b
}

// J computes SHAKE-256(m, 32 bytes), used as the implicit-rejection
// pseudorandom function.
func J(m []byte) [32]byte {
	s := sponge.New(rateSHAKE256, dsSHAKE, 4)
	s.Absorb(m)
	var out [32]byte
	copy(out[:], s.Squeeze(32))
	return out
}

// PRF computes SHAKE-256(s || b, 64*eta bytes). s must be 32 bytes and
// eta must be 2 or 3 per spec.
func PRF(eta int, s []byte, b byte) []byte {
	if len(s) != 32 {
		panic(fmt.Sprintf("hashes: PRF seed must be 32 bytes, got %d", len(s)))
	}
	if eta != 2 && eta != 3 {
		panic(fmt.Sprintf("hashes: PRF eta must be 2 or 3, got %d", eta))
	}
	sp := sponge.New(rateSHAKE256, dsSHAKE, 4)
	input := make([]byte, 0, 33)
	input = append(input, s...)
	input = append(input, b)
	sp.Absorb(input)
	return sp.Squeeze(64 * eta)
}

// XOF is a resumable SHAKE-128 handle: Absorb once, then Squeeze any
// number of times, each call returning the next n bytes of output.
type XOF struct {
	s *sponge.Sponge
}

// NewXOF returns an unabsorbed SHAKE-128 handle.
func NewXOF() *XOF {
	return &XOF{s: sponge.New(rateSHAKE128, dsSHAKE, 4)}
}

// Absorb feeds the XOF's input. May be called exactly once.
func (x *XOF) Absorb(data []byte) {
	x.s.Absorb(data)
}

// Squeeze returns the next n bytes of the XOF's output stream.
func (x *XOF) Squeeze(n int) []byte {
	return x.s.Squeeze(n)
}
