// Package sponge implements the sponge construction over the Keccak-p
// permutation: pad10*1 padding, domain-separated absorption, and a
// squeeze operation that can be called multiple times in a row (as an
// XOF) without re-absorbing. Package hashes builds SHA-3/SHAKE on top of
// this; package sampler uses the XOF mode directly.
package sponge

import (
	"encoding/binary"

	"github.com/eth2030/mlkem/internal/keccak"
)

// laneBytes is the byte width of one Keccak lane.
const laneBytes = 8

// stateBytes is the full 1600-bit state in bytes (200).
const stateBytes = keccak.Width / 8

// Sponge is a Keccak-based sponge with a fixed rate (in bytes) and domain
// separation suffix. Zero value is not usable; construct with New.
type Sponge struct {
	state    keccak.State
	rate     int  // bytes
	ds       byte // domain separation suffix bits, LSB-aligned
	dsBits   int  // number of domain separation bits
	absorbed bool // Absorb has been called (may only be called once)
	squeeze  bool // has entered the squeezing phase
	pos      int  // position within the current r-byte output block
	outBuf   [stateBytes]byte
}

// New returns a Sponge with the given rate in bits (must be a multiple of
// 8 and less than 1600) and domain-separation byte ds: the suffix bits
// (LSB-first) followed by the first '1' bit of pad10*1, which Absorb ORs
// in as given. SHA-3 uses ds=0x06 (suffix 01), dsBits=2; SHAKE uses
// ds=0x1F (suffix 1111), dsBits=4. dsBits is recorded but not used by
// the padding.
func New(rateBits int, ds byte, dsBits int) *Sponge {
	if rateBits <= 0 || rateBits%8 != 0 || rateBits >= keccak.Width {
		panic("sponge: invalid rate")
	}
	return &Sponge{
		rate:   rateBits / 8,
		ds:     ds,
		dsBits: dsBits,
	}
}

// Absorb ingests the message bytes, applying pad10*1 and the permutation.
// A Sponge may be absorbed into exactly once; subsequent Squeeze calls
// resume from where the previous one left off.
func (s *Sponge) Absorb(data []byte) {
	if s.absorbed {
		panic("sponge: Absorb called twice")
	}
	s.absorbed = true

	block := make([]byte, s.rate)
	for len(data) >= s.rate {
		copy(block, data[:s.rate])
		s.xorBlock(block)
		keccak.Permute(&s.state)
		data = data[s.rate:]
	}

	// Final (possibly empty) partial block: append the domain separation
	// bits then the pad10*1 rule, all within this last rate-sized block.
	for i := range block {
		block[i] = 0
	}
	copy(block, data)
	n := len(data)
	block[n] |= s.ds
	block[s.rate-1] |= 0x80
	s.xorBlock(block)
	keccak.Permute(&s.state)

	s.squeeze = true
	s.fillOutBuf()
}

// xorBlock XORs a rate-sized byte block into the state's leading lanes,
// little-endian per lane.
func (s *Sponge) xorBlock(block []byte) {
	for i := 0; i*laneBytes < s.rate; i++ {
		lo := i * laneBytes
		hi := lo + laneBytes
		if hi > s.rate {
			hi = s.rate
		}
		var buf [laneBytes]byte
		copy(buf[:], block[lo:hi])
		s.state[i] ^= binary.LittleEndian.Uint64(buf[:])
	}
}

// fillOutBuf serializes the rate-sized output window of the state into
// outBuf, little-endian per lane.
func (s *Sponge) fillOutBuf() {
	for i := 0; i*laneBytes < s.rate; i++ {
		lo := i * laneBytes
		hi := lo + laneBytes
		if hi > s.rate {
			hi = s.rate
		}
		var buf [laneBytes]byte
		binary.LittleEndian.PutUint64(buf[:], s.state[i])
		copy(s.outBuf[lo:hi], buf[:hi-lo])
	}
}

// Squeeze produces n more bytes of output, resuming from the position
// left by any prior Squeeze call on this Sponge.
func (s *Sponge) Squeeze(n int) []byte {
	if !s.squeeze {
		panic("sponge: Squeeze called before Absorb")
	}
	out := make([]byte, n)
	written := 0
	for written < n {
		avail := s.rate - s.pos
		if avail == 0 {
			keccak.Permute(&s.state)
			s.fillOutBuf()
			s.pos = 0
			avail = s.rate
		}
		take := n - written
		if take > avail {
			take = avail
		}
		copy(out[written:written+take], s.outBuf[s.pos:s.pos+take])
		s.pos += take
		written += take
	}
	return out
}
