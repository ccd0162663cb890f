// Package keccak implements the Keccak-p[1600, 24] permutation: the 5x5
// array of 64-bit lanes and the theta/rho/pi/chi/iota round function that
// SHA-3 and SHAKE are built on (FIPS 202). Nothing here is SHA-3-specific;
// domain separation and padding live one layer up, in package sponge.
package keccak

// Width is the permutation's state size in bits (5x5 lanes of 64 bits).
const Width = 1600

// Rounds is the fixed round count for Keccak-p[1600, 24].
const Rounds = 24

// lanes is the number of 64-bit words in the state (5x5).
const lanes = 25

// State is the 1600-bit Keccak state, held as 25 lanes indexed by
// a[x+5*y], matching the standard mapping A[x][y][z] = S[64*(5y+x)+z]
// with z=0 the lane's least-significant bit.
type State [lanes]uint64

// roundConstants holds RC[ir] for ir in [0, Rounds), computed once at
// package load time from the LFSR described in FIPS 202 Algorithm 5.
var roundConstants [Rounds]uint64

// rotationOffsets holds the rho-step rotation amount for lane (x,y),
// indexed x+5*y, computed once at package load time from the standard
// recurrence (x,y) <- (y, (2x+3y) mod 5).
var rotationOffsets [lanes]uint

func init() {
	roundConstants = generateRoundConstants()
	rotationOffsets = generateRotationOffsets()
}

// lfsrBit evaluates FIPS 202 Algorithm 5, rc(t): an 8-bit LFSR register
// R[0..7] (R[0] the most-significant, stored at bit 7 here) with feedback
// taps at positions 0, 4, 5, 6 fed from the bit shifted out at position 8.
func lfsrBit(t int) byte {
	if t%255 == 0 {
		return 1
	}
	var r byte = 0x80 // R = 1000_0000: R[0]=1, R[1..7]=0
	for i := 1; i <= t%255; i++ {
		fb := r & 1 // the bit about to shift out becomes R[8]
		r >>= 1
		if fb == 1 {
			r ^= 0x8E // taps at R[0], R[4], R[5], R[6] (bits 7, 3, 2, 1)
		}
	}
	return (r >> 7) & 1 // R[0]
}

// generateRoundConstants builds RC[ir] by OR-ing rc(j+7*ir) into bit
// 2^j-1 of the round's 64-bit constant, for j in [0,7).
func generateRoundConstants() [Rounds]uint64 {
	var rc [Rounds]uint64
	for ir := 0; ir < Rounds; ir++ {
		var c uint64
		for j := 0; j < 7; j++ {
			if lfsrBit(j+7*ir) == 1 {
				c |= 1 << (uint(1<<uint(j)) - 1)
			}
		}
		rc[ir] = c
	}
	return rc
}

// generateRotationOffsets builds the rho-step offset table via the
// standard recurrence starting at (x,y) = (1,0).
func generateRotationOffsets() [lanes]uint {
	var off [lanes]uint
	x, y := 1, 0
	for t := 0; t < 24; t++ {
		off[x+5*y] = uint(((t+1)*(t+2)/2)%64) % 64
		x, y = y, (2*x+3*y)%5
	}
	// off[0+5*0] stays 0: the origin lane is never rotated.
	return off
}

func rotl64(x uint64, n uint) uint64 {
	n %= 64
	if n == 0 {
		return x
	}
	return (x << n) | (x >> (64 - n))
}

// Permute applies the full 24-round Keccak-p[1600,24] permutation to a
// in place.
func Permute(a *State) {
	for round := 0; round < Rounds; round++ {
		theta(a)
		rhoPi(a)
		chi(a)
		iota(a, round)
	}
}

func theta(a *State) {
	var c [5]uint64
	for x := 0; x < 5; x++ {
		c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
	}
	var d [5]uint64
	for x := 0; x < 5; x++ {
		d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x+5*y] ^= d[x]
		}
	}
}

// rhoPi applies the rho (per-lane rotation) and pi (lane permutation)
// steps in one pass, since pi only relocates already-rotated lanes.
func rhoPi(a *State) {
	var b State
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			nx, ny := y, (2*x+3*y)%5
			b[nx+5*ny] = rotl64(a[x+5*y], rotationOffsets[x+5*y])
		}
	}
	*a = b
}

func chi(a *State) {
	var b State
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			b[x+5*y] = a[x+5*y] ^ (^a[(x+1)%5+5*y] & a[(x+2)%5+5*y])
		}
	}
	*a = b
}

func iota(a *State, round int) {
	a[0] ^= roundConstants[round]
}
