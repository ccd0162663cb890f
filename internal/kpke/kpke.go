// Package kpke implements K-PKE, the inner IND-CPA public-key encryption
// scheme ML-KEM wraps with the Fujisaki-Okamoto transform (FIPS 203 §5).
// K-PKE has no notion of decapsulation failure or implicit rejection —
// those belong to the outer ML-KEM layer in package pqc.
package kpke

import (
	"github.com/eth2030/mlkem/internal/hashes"
	"github.com/eth2030/mlkem/internal/ring"
	"github.com/eth2030/mlkem/internal/sampler"
	"github.com/eth2030/mlkem/metrics"
)

// Params is a K-PKE parameter set: module rank k, noise widths eta1/eta2,
// and ciphertext compression widths du/dv.
type Params struct {
	K    int
	Eta1 int
	Eta2 int
	Du   int
	Dv   int
}

// EncodedKeySizes returns the byte lengths of ek_PKE and dk_PKE for p.
func (p Params) EncodedKeySizes() (ekLen, dkLen int) {
	return 384*p.K + 32, 384 * p.K
}

// CiphertextSize returns the byte length of a K-PKE ciphertext for p.
func (p Params) CiphertextSize() int {
	return 32*p.Du*p.K + 32*p.Dv
}

// expandMatrix regenerates the public k x k matrix A-hat in T_q from the
// seed rho, using the (rho, j, i) byte order normative per the index
// convention shared by KeyGen and Encrypt.
func expandMatrix(rho []byte, k int) [][]ring.Poly {
	a := make([][]ring.Poly, k)
	for i := 0; i < k; i++ {
		a[i] = make([]ring.Poly, k)
		for j := 0; j < k; j++ {
			seed := make([]byte, 0, 34)
			seed = append(seed, rho...)
			seed = append(seed, byte(j), byte(i))
			a[i][j] = sampler.SampleNTT(seed)
			metrics.MatrixCellsSampled.Inc()
		}
	}
	return a
}

// KeyGen derives (ek_PKE, dk_PKE) deterministically from the 32-byte seed d.
func KeyGen(p Params, d []byte) (ekPKE, dkPKE []byte) {
	rho, sigma := hashes.G(append(append([]byte{}, d...), byte(p.K)))

	aHat := expandMatrix(rho[:], p.K)

	n := byte(0)
	s := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		s[i] = sampler.SamplePolyCBD(p.Eta1, hashes.PRF(p.Eta1, sigma[:], n))
		metrics.CBDPolysSampled.Inc()
		n++
	}
	e := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		e[i] = sampler.SamplePolyCBD(p.Eta1, hashes.PRF(p.Eta1, sigma[:], n))
		metrics.CBDPolysSampled.Inc()
		n++
	}

	sHat := make([]ring.Poly, p.K)
	eHat := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		sHat[i] = ring.NTT(&s[i])
		eHat[i] = ring.NTT(&e[i])
	}

	tHat := ring.MatVecNTT(aHat, sHat)
	for i := range tHat {
		tHat[i] = ring.Add(&tHat[i], &eHat[i])
	}

	ekPKE = make([]byte, 0, 384*p.K+32)
	for i := 0; i < p.K; i++ {
		ekPKE = append(ekPKE, ring.ByteEncode(12, &tHat[i])...)
	}
	ekPKE = append(ekPKE, rho[:]...)

	dkPKE = make([]byte, 0, 384*p.K)
	for i := 0; i < p.K; i++ {
		dkPKE = append(dkPKE, ring.ByteEncode(12, &sHat[i])...)
	}
	return ekPKE, dkPKE
}

// Encrypt produces a ciphertext for the 32-byte message m under ek_PKE,
// using r as the 32-byte encryption-randomness seed.
func Encrypt(p Params, ekPKE, m, r []byte) []byte {
	tHat := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		tHat[i] = ring.ByteDecode(12, ekPKE[384*i:384*(i+1)])
	}
	rho := ekPKE[384*p.K:]

	aHat := expandMatrix(rho, p.K)

	n := byte(0)
	y := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		y[i] = sampler.SamplePolyCBD(p.Eta1, hashes.PRF(p.Eta1, r, n))
		metrics.CBDPolysSampled.Inc()
		n++
	}
	e1 := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		e1[i] = sampler.SamplePolyCBD(p.Eta2, hashes.PRF(p.Eta2, r, n))
		metrics.CBDPolysSampled.Inc()
		n++
	}
	e2 := sampler.SamplePolyCBD(p.Eta2, hashes.PRF(p.Eta2, r, n))
	metrics.CBDPolysSampled.Inc()

	yHat := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		yHat[i] = ring.NTT(&y[i])
	}

	// u = intt(A^T * y-hat) + e1; A^T[i][j] = A[j][i].
	aT := make([][]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		aT[i] = make([]ring.Poly, p.K)
		for j := 0; j < p.K; j++ {
			aT[i][j] = aHat[j][i]
		}
	}
	uHat := ring.MatVecNTT(aT, yHat)
	u := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		inv := ring.InvNTT(&uHat[i])
		u[i] = ring.Add(&inv, &e1[i])
	}

	muBits := ring.ByteDecode(1, m)
	mu := ring.DecompressPoly(1, &muBits)

	vHatInner := ring.InnerProductNTT(tHat, yHat)
	vInv := ring.InvNTT(&vHatInner)
	v := ring.Add(&vInv, &e2)
	v = ring.Add(&v, &mu)

	c := make([]byte, 0, p.CiphertextSize())
	for i := 0; i < p.K; i++ {
		comp := ring.CompressPoly(p.Du, &u[i])
		c = append(c, ring.ByteEncode(p.Du, &comp)...)
	}
	compV := ring.CompressPoly(p.Dv, &v)
	c = append(c, ring.ByteEncode(p.Dv, &compV)...)
	return c
}

// Decrypt recovers the 32-byte message from ciphertext c under dk_PKE.
func Decrypt(p Params, dkPKE, c []byte) []byte {
	uLen := 32 * p.Du * p.K
	c1, c2 := c[:uLen], c[uLen:]

	uPrime := make([]ring.Poly, p.K)
	blockLen := 32 * p.Du
	for i := 0; i < p.K; i++ {
		block := c1[i*blockLen : (i+1)*blockLen]
		comp := ring.ByteDecode(p.Du, block)
		uPrime[i] = ring.DecompressPoly(p.Du, &comp)
	}
	compV := ring.ByteDecode(p.Dv, c2)
	vPrime := ring.DecompressPoly(p.Dv, &compV)

	sHat := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		sHat[i] = ring.ByteDecode(12, dkPKE[384*i:384*(i+1)])
	}

	uHatPrime := make([]ring.Poly, p.K)
	for i := 0; i < p.K; i++ {
		uHatPrime[i] = ring.NTT(&uPrime[i])
	}
	inner := ring.InnerProductNTT(sHat, uHatPrime)
	innerInv := ring.InvNTT(&inner)
	w := ring.Sub(&vPrime, &innerInv)

	compW := ring.CompressPoly(1, &w)
	return ring.ByteEncode(1, &compW)
}
