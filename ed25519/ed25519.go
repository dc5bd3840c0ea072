// Package ed25519 implements the Ed25519 signature scheme (RFC 8032)
// with its own constant-time field, scalar, and curve arithmetic.
//
// All three operations are pure functions of their byte inputs. Scalar
// multiplication runs a fixed double-and-add schedule regardless of the
// scalar bits, and verification performs its full decode-and-multiply
// sequence before branching on the outcome, so rejected inputs are
// indistinguishable by timing.
//
// Example:
//
//	pub, err := ed25519.DerivePublicKey(seed)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, _ := ed25519.Sign(seed, pub, message)
//	if err := ed25519.Verify(pub, sig, message); err != nil {
//	    log.Fatal(err)
//	}
package ed25519

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
)

const (
	// SeedSize is the private-key seed length in bytes.
	SeedSize = 32
	// PublicKeySize is the compressed public-key length in bytes.
	PublicKeySize = 32
	// SignatureSize is the signature length in bytes (R || S).
	SignatureSize = 64
)

// ErrInvalidLength is returned when a key or signature buffer has the
// wrong size.
var ErrInvalidLength = errors.New("invalid length")

// ErrInvalidSignature is returned when a signature fails verification,
// including when the public key or signature does not decode to a valid
// curve point or canonical scalar.
var ErrInvalidSignature = errors.New("invalid signature")

// ErrOperationFailed indicates an internal arithmetic invariant
// violation. It is unreachable with valid inputs and signals a defect.
var ErrOperationFailed = errors.New("operation failed")

// clampScalar applies the standard Ed25519 clamping to the low half of
// the expanded seed: clear the low 3 bits and the top bit, set bit 254.
func clampScalar(a *[32]byte) {
	a[0] &= 248
	a[31] &= 127
	a[31] |= 64
}

// wipe zeroes sensitive intermediate material.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// DerivePublicKey computes the 32-byte public key for a 32-byte seed.
// The derivation is deterministic: the same seed always yields the same
// public key.
func DerivePublicKey(seed []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed is %d bytes, want %d: %w", len(seed), SeedSize, ErrInvalidLength)
	}

	h := sha512.Sum512(seed)
	var a [32]byte
	copy(a[:], h[:32])
	clampScalar(&a)

	var A point
	A.scalarBaseMult(&a)
	pub := A.encode()

	wipe(h[:])
	wipe(a[:])
	return pub[:], nil
}

// Sign produces a deterministic 64-byte Ed25519 signature over message.
//
// The caller-supplied public key is folded into the challenge hash as
// given; it is not re-derived from the seed. A public key that does not
// match the seed therefore yields a signature that fails verification
// rather than an error here; signing stays a pure function of its three
// inputs.
func Sign(seed, publicKey, message []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed is %d bytes, want %d: %w", len(seed), SeedSize, ErrInvalidLength)
	}
	if len(publicKey) != PublicKeySize {
		return nil, fmt.Errorf("public key is %d bytes, want %d: %w", len(publicKey), PublicKeySize, ErrInvalidLength)
	}

	h := sha512.Sum512(seed)
	var aBytes [32]byte
	copy(aBytes[:], h[:32])
	clampScalar(&aBytes)
	prefix := h[32:]

	// Deterministic nonce r = SHA-512(prefix || message) mod L.
	nh := sha512.New()
	nh.Write(prefix)
	nh.Write(message)
	var rWide [64]byte
	nh.Sum(rWide[:0])
	var r scalar
	r.setWideBytes(&rWide)

	var R point
	rBytes := r.bytes()
	R.scalarBaseMult(&rBytes)
	encR := R.encode()

	// Challenge k = SHA-512(R || publicKey || message) mod L.
	kh := sha512.New()
	kh.Write(encR[:])
	kh.Write(publicKey)
	kh.Write(message)
	var kWide [64]byte
	kh.Sum(kWide[:0])
	var k scalar
	k.setWideBytes(&kWide)

	// S = r + k*a mod L, with the clamped a taken as a raw 256-bit value
	// since clamping places it above the group order.
	var aLimbs [4]uint64
	for i := range aLimbs {
		aLimbs[i] = binary.LittleEndian.Uint64(aBytes[i*8:])
	}
	var S scalar
	S.mulAdd(&k, &aLimbs, &r)

	sig := make([]byte, SignatureSize)
	copy(sig[:32], encR[:])
	sBytes := S.bytes()
	copy(sig[32:], sBytes[:])

	wipe(h[:])
	wipe(aBytes[:])
	wipe(rWide[:])
	wipe(rBytes[:])
	for i := range aLimbs {
		aLimbs[i] = 0
	}
	r.l = [4]uint64{}
	return sig, nil
}

// Verify reports whether signature is a valid Ed25519 signature by
// publicKey over message. It returns nil on success, ErrInvalidLength
// for wrong buffer sizes, and ErrInvalidSignature otherwise.
//
// All decode steps and both scalar multiplications run unconditionally
// before the accept/reject decision, so a bad public-key encoding, a bad
// signature encoding, and an equation mismatch are indistinguishable by
// timing.
func Verify(publicKey, signature, message []byte) error {
	if len(publicKey) != PublicKeySize {
		return fmt.Errorf("public key is %d bytes, want %d: %w", len(publicKey), PublicKeySize, ErrInvalidLength)
	}
	if len(signature) != SignatureSize {
		return fmt.Errorf("signature is %d bytes, want %d: %w", len(signature), SignatureSize, ErrInvalidLength)
	}

	var pubBytes, rBytes [32]byte
	copy(pubBytes[:], publicKey)
	copy(rBytes[:], signature[:32])

	var A, R point
	pubOK := A.decode(&pubBytes)
	rOK := R.decode(&rBytes)

	// S must be a canonical scalar below the group order; accepting
	// S >= L would allow signature malleability.
	var S scalar
	sOK := S.setCanonicalBytes(signature[32:])

	// Challenge k = SHA-512(R || publicKey || message) mod L.
	kh := sha512.New()
	kh.Write(signature[:32])
	kh.Write(publicKey)
	kh.Write(message)
	var kWide [64]byte
	kh.Sum(kWide[:0])
	var k scalar
	k.setWideBytes(&kWide)

	// Accept iff S*B == R + k*A.
	var lhs, kA, rhs point
	sBytes := S.bytes()
	lhs.scalarBaseMult(&sBytes)
	kBytes := k.bytes()
	kA.scalarMult(&kBytes, &A)
	rhs.add(&R, &kA)

	encL := lhs.encode()
	encR := rhs.encode()
	eq := subtle.ConstantTimeCompare(encL[:], encR[:])

	if pubOK&rOK&sOK&eq != 1 {
		return ErrInvalidSignature
	}
	return nil
}
