// Package pqc implements ML-KEM (FIPS 203), the module-lattice-based key
// encapsulation mechanism standardized by NIST for post-quantum key
// establishment. Security rests on the Module Learning With Errors
// problem. Three parameter sets are exposed, targeting NIST security
// categories 1, 3, and 5.
//
// The inner IND-CPA encryption scheme (K-PKE), the ring/NTT arithmetic,
// the hash façade, and the Keccak-p permutation live in internal
// packages; this package is the Fujisaki-Okamoto wrapper and the public
// key-pair/ciphertext surface.
package pqc

import "github.com/eth2030/mlkem/internal/kpke"

// ParameterSet identifies one of the three standardized ML-KEM instances.
type ParameterSet int

const (
	MLKEM512 ParameterSet = iota
	MLKEM768
	MLKEM1024
)

func (p ParameterSet) String() string {
	switch p {
	case MLKEM512:
		return "ML-KEM-512"
	case MLKEM768:
		return "ML-KEM-768"
	case MLKEM1024:
		return "ML-KEM-1024"
	default:
		return "ML-KEM-unknown"
	}
}

// params returns the K-PKE parameter set backing p.
func (p ParameterSet) params() kpke.Params {
	switch p {
	case MLKEM512:
		return kpke.Params{K: 2, Eta1: 3, Eta2: 2, Du: 10, Dv: 4}
	case MLKEM768:
		return kpke.Params{K: 3, Eta1: 2, Eta2: 2, Du: 10, Dv: 4}
	case MLKEM1024:
		return kpke.Params{K: 4, Eta1: 2, Eta2: 2, Du: 11, Dv: 5}
	default:
		panic("pqc: unknown parameter set")
	}
}

// EncapsulationKeySize returns the byte length of an ek for p.
func (p ParameterSet) EncapsulationKeySize() int {
	k := p.params()
	ekLen, _ := k.EncodedKeySizes()
	return ekLen
}

// DecapsulationKeySize returns the byte length of a dk for p: the inner
// dk_PKE, plus ek, plus H(ek) (32 bytes), plus z (32 bytes).
func (p ParameterSet) DecapsulationKeySize() int {
	k := p.params()
	ekLen, dkLen := k.EncodedKeySizes()
	return dkLen + ekLen + 32 + 32
}

// CiphertextSize returns the byte length of a ciphertext for p.
func (p ParameterSet) CiphertextSize() int {
	return p.params().CiphertextSize()
}

// SharedSecretSize is the shared secret length for every parameter set.
const SharedSecretSize = 32
