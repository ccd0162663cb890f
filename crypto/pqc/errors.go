package pqc

import "errors"

// ML-KEM validation errors, surfaced per FIPS 203 §7.2-7.3 input checks.
var (
	ErrInvalidPublicKey  = errors.New("pqc: invalid ML-KEM encapsulation key")
	ErrInvalidSecretKey  = errors.New("pqc: invalid ML-KEM decapsulation key")
	ErrInvalidCiphertext = errors.New("pqc: invalid ML-KEM ciphertext")
	ErrEntropyFailure    = errors.New("pqc: failed to read random bytes")
)
