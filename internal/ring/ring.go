// Package ring implements arithmetic over the ring R_q = Z_q[X]/(X^256+1),
// q=3329, and its NTT-domain image T_q, plus the bit-packing codec used to
// serialize ring elements to and from bytes (FIPS 203 §4, §2.4-2.5).
//
// A Poly holds 256 coefficients, each in [0, q), and is used for both
// domains: the type is the same, only the interpretation of what a
// "multiplication" means differs (schoolbook-mod-(X^256+1) is never
// implemented directly; instead NTT/InvNTT move a value into T_q where
// pointwise multiplication via MultiplyNTTs stands in for it).
package ring

// N is the polynomial degree (ring rank).
const N = 256

// Q is the coefficient modulus.
const Q = 3329

// Poly is a ring element: 256 coefficients in [0, Q).
type Poly [N]uint16

// modQ reduces a signed value into [0, Q) with no data-dependent branch on
// its magnitude beyond a fixed number of conditional adds, matching the
// constant-time discipline required of coefficient reduction (spec §5).
func modQ(x int32) uint16 {
	x %= Q
	if x < 0 {
		x += Q
	}
	return uint16(x)
}

func modpow(base, exp, mod int64) int64 {
	base %= mod
	if base < 0 {
		base += mod
	}
	r := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r = (r * base) % mod
		}
		base = (base * base) % mod
		exp >>= 1
	}
	return r
}

// modInverse returns a^-1 mod m via the extended Euclidean algorithm.
func modInverse(a, m int64) int64 {
	t, newT := int64(0), int64(1)
	r, newR := m, a%m
	if newR < 0 {
		newR += m
	}
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += m
	}
	return t
}

// bitRev7 reverses the low 7 bits of x.
func bitRev7(x int) int {
	var r int
	for i := 0; i < 7; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// zeta is the primitive 256th root of unity mod Q used throughout FIPS 203.
const zeta = 17

// zetas[i] = zeta^BitRev7(i) mod Q, for i in [0,128). Used by NTT/InvNTT.
// zetasMul[i] = zeta^(2*BitRev7(i)+1) mod Q, for i in [0,128). Used by
// MultiplyNTTs as the gamma for each base multiplication.
// invN2 is 128^-1 mod Q (== 3303), the final NTT-inverse scaling factor
// (the transform has 7 layers, so the scale is 2^-7, not 256^-1).
var (
	zetas    [128]uint16
	zetasMul [128]uint16
	invN2    uint16
)

func init() {
	for i := 0; i < 128; i++ {
		zetas[i] = uint16(modpow(zeta, int64(bitRev7(i)), Q))
		zetasMul[i] = uint16(modpow(zeta, 2*int64(bitRev7(i))+1, Q))
	}
	invN2 = uint16(modInverse(128, Q))
}

// Add returns a+b pointwise mod Q.
func Add(a, b *Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = modQ(int32(a[i]) + int32(b[i]))
	}
	return r
}

// Sub returns a-b pointwise mod Q.
func Sub(a, b *Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = modQ(int32(a[i]) - int32(b[i]))
	}
	return r
}

// NTT performs the in-place-style (value-returning) Cooley-Tukey forward
// transform described in FIPS 203 Algorithm 9.
func NTT(f *Poly) Poly {
	out := *f
	i := 1
	for l := 128; l >= 2; l /= 2 {
		for start := 0; start < N; start += 2 * l {
			z := int32(zetas[i])
			i++
			for j := start; j < start+l; j++ {
				t := modQ(z * int32(out[j+l]))
				out[j+l] = modQ(int32(out[j]) - int32(t))
				out[j] = modQ(int32(out[j]) + int32(t))
			}
		}
	}
	return out
}

// InvNTT performs the Gentleman-Sande inverse transform described in FIPS
// 203 Algorithm 10, including the final scale-by-3303 step.
func InvNTT(f *Poly) Poly {
	out := *f
	i := 127
	for l := 2; l <= 128; l *= 2 {
		for start := 0; start < N; start += 2 * l {
			z := int32(zetas[i])
			i--
			for j := start; j < start+l; j++ {
				t := out[j]
				out[j] = modQ(int32(t) + int32(out[j+l]))
				out[j+l] = modQ(z * (int32(out[j+l]) - int32(t)))
			}
		}
	}
	for idx := range out {
		out[idx] = modQ(int32(out[idx]) * int32(invN2))
	}
	return out
}

// baseMul computes the product of two degree-1 polynomials
// (a0 + a1*X) * (b0 + b1*X) mod (X^2 - gamma), per FIPS 203 Algorithm 11.
func baseMul(a0, a1, b0, b1, gamma uint16) (c0, c1 uint16) {
	// a1*b1*gamma can reach ~3328^3, which overflows int32; reduce a1*b1
	// mod Q first (exact, since the final result is reduced mod Q anyway).
	a1b1 := int32(a1) * int32(b1) % Q
	c0 = modQ(int32(a0)*int32(b0) + a1b1*int32(gamma))
	c1 = modQ(int32(a0)*int32(b1) + int32(a1)*int32(b0))
	return c0, c1
}

// MultiplyNTTs performs pointwise multiplication of two T_q elements,
// treating each consecutive coefficient pair as a degree-1 residue (FIPS
// 203 Algorithm 12).
func MultiplyNTTs(f, g *Poly) Poly {
	var r Poly
	for i := 0; i < 128; i++ {
		c0, c1 := baseMul(f[2*i], f[2*i+1], g[2*i], g[2*i+1], zetasMul[i])
		r[2*i] = c0
		r[2*i+1] = c1
	}
	return r
}

// MatVecNTT computes A*s in T_q, where A is a k x k row-major matrix and s
// a length-k vector: row i of the result is the sum over j of
// MultiplyNTTs(A[i][j], s[j]).
func MatVecNTT(a [][]Poly, s []Poly) []Poly {
	k := len(s)
	out := make([]Poly, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			p := MultiplyNTTs(&a[i][j], &s[j])
			out[i] = Add(&out[i], &p)
		}
	}
	return out
}

// InnerProductNTT computes the T_q inner product sum_j a[j]*b[j].
func InnerProductNTT(a, b []Poly) Poly {
	var out Poly
	for j := range a {
		p := MultiplyNTTs(&a[j], &b[j])
		out = Add(&out, &p)
	}
	return out
}
