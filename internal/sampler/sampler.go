// Package sampler turns XOF and PRF byte streams into ring elements:
// SampleNTT produces a uniform T_q element directly (it is never passed
// through an NTT call — the XOF stream is already being interpreted as
// frequency-domain coefficients), and SamplePolyCBD produces a centered
// binomial R_q element from a fixed-length PRF output (FIPS 203 §4.6).
package sampler

import (
	"github.com/eth2030/mlkem/internal/hashes"
	"github.com/eth2030/mlkem/internal/ring"
)

// SampleNTT runs rejection sampling over a SHAKE-128 stream seeded by
// seed34 (expected to be rho ‖ [j, i], 34 bytes) to produce a uniform
// element of T_q. Two candidate coefficients are drawn from each 3-byte
// block per FIPS 203 Algorithm 7.
func SampleNTT(seed34 []byte) ring.Poly {
	xof := hashes.NewXOF()
	xof.Absorb(seed34)

	var f ring.Poly
	i := 0
	for i < ring.N {
		block := xof.Squeeze(3)
		c0, c1, c2 := block[0], block[1], block[2]
		d1 := uint16(c0) + 256*uint16(c1&0x0F)
		d2 := uint16(c1>>4) + 16*uint16(c2)
		if d1 < ring.Q {
			f[i] = d1
			i++
		}
		if i < ring.N && d2 < ring.Q {
			f[i] = d2
			i++
		}
	}
	return f
}

// SamplePolyCBD draws an R_q element from the centered binomial
// distribution B_eta, consuming a 64*eta-byte PRF output (FIPS 203
// Algorithm 8).
func SamplePolyCBD(eta int, b []byte) ring.Poly {
	if len(b) != 64*eta {
		panic("sampler: SamplePolyCBD requires a 64*eta-byte input")
	}
	bits := ring.BytesToBits(b)
	var f ring.Poly
	for i := 0; i < ring.N; i++ {
		var x, y int32
		base := 2 * i * eta
		for j := 0; j < eta; j++ {
			x += int32(bits[base+j])
		}
		for j := 0; j < eta; j++ {
			y += int32(bits[base+eta+j])
		}
		f[i] = modQSmall(x - y)
	}
	return f
}

// modQSmall reduces a value known to lie in [-eta, eta] into [0, Q).
func modQSmall(x int32) uint16 {
	if x < 0 {
		x += ring.Q
	}
	return uint16(x)
}
