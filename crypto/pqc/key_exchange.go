package pqc

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
	"time"

	"github.com/eth2030/mlkem/internal/hashes"
	"github.com/eth2030/mlkem/internal/kpke"
	"github.com/eth2030/mlkem/internal/ring"
	"github.com/eth2030/mlkem/log"
	"github.com/eth2030/mlkem/metrics"
)

var pqcLog = log.Default().Module("pqc")

// SetLogger replaces the logger crypto/pqc uses for its own Debug/Warn
// lines (parameter set, byte sizes, timing only — never key or secret
// material). Exposed so a caller such as a CLI can switch to a
// human-readable or colorized rendering without recompiling the package.
func SetLogger(l *log.Logger) {
	if l != nil {
		pqcLog = l
	}
}

// KeyPair holds an ML-KEM encapsulation/decapsulation key pair for one
// parameter set. DecapsulationKey is dk_PKE ‖ ek ‖ H(ek) ‖ z.
type KeyPair struct {
	Params           ParameterSet
	EncapsulationKey []byte
	DecapsulationKey []byte
}

// GenerateKeyPair runs ML-KEM KeyGen for parameter set p, drawing d and z
// from the system entropy source.
func GenerateKeyPair(p ParameterSet) (*KeyPair, error) {
	seed := make([]byte, 64)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, ErrEntropyFailure
	}
	kp := KeyGenInternal(p, seed[:32], seed[32:])
	return kp, nil
}

// KeyGenInternal runs ML-KEM KeyGen deterministically from the 32-byte
// seeds d and z. Exposed for testing against known-answer vectors.
func KeyGenInternal(p ParameterSet, d, z []byte) *KeyPair {
	start := time.Now()
	params := p.params()
	ekPKE, dkPKE := kpke.KeyGen(params, d)

	h := hashes.H(ekPKE)
	dk := make([]byte, 0, len(dkPKE)+len(ekPKE)+32+32)
	dk = append(dk, dkPKE...)
	dk = append(dk, ekPKE...)
	dk = append(dk, h[:]...)
	dk = append(dk, z...)

	elapsedMicros := float64(time.Since(start).Microseconds())
	metrics.KeyGenTotal.Inc()
	metrics.KeyGenDurationMicros.Observe(elapsedMicros)
	metrics.OperationCollector.RecordHistogram("mlkem.keygen_us."+p.String(), elapsedMicros)
	pqcLog.Debug("keygen complete", "paramSet", p.String(), "ekBytes", len(ekPKE))

	return &KeyPair{Params: p, EncapsulationKey: ekPKE, DecapsulationKey: dk}
}

// Zero overwrites the decapsulation key in place. The encapsulation key
// is public and is left untouched.
func (kp *KeyPair) Zero() {
	zero(kp.DecapsulationKey)
}

// Encapsulate validates ek and, if valid, runs ML-KEM Encaps against it,
// drawing the encapsulated message from the system entropy source.
func Encapsulate(p ParameterSet, ek []byte) (sharedSecret, ciphertext []byte, err error) {
	if err := validateEncapsulationKey(p, ek); err != nil {
		metrics.EncapsRejected.Inc()
		pqcLog.Warn("encaps rejected ek", "paramSet", p.String(), "err", err)
		return nil, nil, err
	}
	m := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, m); err != nil {
		return nil, nil, ErrEntropyFailure
	}
	start := time.Now()
	K, c := EncapsulateInternal(p, ek, m)
	zero(m)
	elapsedMicros := float64(time.Since(start).Microseconds())
	metrics.EncapsTotal.Inc()
	metrics.EncapsDurationMicros.Observe(elapsedMicros)
	metrics.OperationCollector.RecordHistogram("mlkem.encaps_us."+p.String(), elapsedMicros)
	return K, c, nil
}

// EncapsulateInternal runs ML-KEM Encaps deterministically from the
// 32-byte message m, skipping the ek validation Encapsulate performs.
// Exposed for testing against known-answer vectors.
func EncapsulateInternal(p ParameterSet, ek, m []byte) (sharedSecret, ciphertext []byte) {
	params := p.params()
	hEk := hashes.H(ek)
	K, r := hashes.G(append(append([]byte{}, m...), hEk[:]...))
	c := kpke.Encrypt(params, ek, m, r[:])
	Kout := make([]byte, 32)
	copy(Kout, K[:])
	zero(r[:])
	return Kout, c
}

// Decapsulate validates dk and c and, if valid, runs ML-KEM Decaps.
// A re-encryption mismatch is not a validation error: it triggers
// implicit rejection and Decapsulate still returns a (pseudorandom,
// indistinguishable) shared secret with a nil error.
func Decapsulate(p ParameterSet, dk, c []byte) ([]byte, error) {
	start := time.Now()
	params := p.params()
	_, dkPKELen := params.EncodedKeySizes()
	if len(dk) != p.DecapsulationKeySize() {
		metrics.DecapsRejected.Inc()
		return nil, ErrInvalidSecretKey
	}
	if len(c) != p.CiphertextSize() {
		metrics.DecapsRejected.Inc()
		return nil, ErrInvalidCiphertext
	}

	ekLen := p.EncapsulationKeySize()
	dkPKE := dk[:dkPKELen]
	ek := dk[dkPKELen : dkPKELen+ekLen]
	storedH := dk[dkPKELen+ekLen : dkPKELen+ekLen+32]
	z := dk[dkPKELen+ekLen+32:]

	h := hashes.H(ek)
	if subtle.ConstantTimeCompare(h[:], storedH) != 1 {
		metrics.DecapsRejected.Inc()
		return nil, ErrInvalidSecretKey
	}

	mPrime := kpke.Decrypt(params, dkPKE, c)
	var hEk [32]byte
	copy(hEk[:], storedH)
	Kprime, rPrime := hashes.G(append(append([]byte{}, mPrime...), hEk[:]...))
	kBar := hashes.J(append(append([]byte{}, z...), c...))
	cPrime := kpke.Encrypt(params, ek, mPrime, rPrime[:])

	match := subtle.ConstantTimeCompare(c, cPrime)
	out := make([]byte, 32)
	for i := 0; i < 32; i++ {
		out[i] = byte(subtle.ConstantTimeSelect(match, int(Kprime[i]), int(kBar[i])))
	}
	zero(mPrime)
	zero(rPrime[:])
	zero(Kprime[:])
	zero(kBar[:])

	elapsedMicros := float64(time.Since(start).Microseconds())
	metrics.DecapsTotal.Inc()
	if match != 1 {
		metrics.DecapsImplicitRejections.Inc()
	}
	metrics.DecapsDurationMicros.Observe(elapsedMicros)
	metrics.OperationCollector.RecordHistogram("mlkem.decaps_us."+p.String(), elapsedMicros)
	return out, nil
}

// validateEncapsulationKey checks length and, per-384-byte-block, that
// byte_encode(12, byte_decode(12, block)) round-trips to the same
// bytes — the modulus check that rejects coefficients >= q.
func validateEncapsulationKey(p ParameterSet, ek []byte) error {
	if len(ek) != p.EncapsulationKeySize() {
		return ErrInvalidPublicKey
	}
	params := p.params()
	for i := 0; i < params.K; i++ {
		block := ek[384*i : 384*(i+1)]
		f := ring.ByteDecode(12, block)
		if string(ring.ByteEncode(12, &f)) != string(block) {
			return ErrInvalidPublicKey
		}
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
