// Package sigil provides embeddable cryptographic primitives: BLAKE2b
// hashing and Ed25519 digital signatures.
//
// The package is a pure compute core: bytes in, bytes out, or a typed
// error. There is no key storage, transport, or certificate handling,
// and no shared mutable state between calls. Every operation is a pure
// function over caller-supplied buffers and is safe for concurrent use.
//
// Example:
//
//	digest := sigil.Hash([]byte("payload"))
//
//	pub, err := sigil.DerivePublicKey(seed)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, err := sigil.Sign(seed, pub, message)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sigil.Verify(pub, sig, message); err != nil {
//	    log.Fatal(err)
//	}
//
// # Engines
//
// The algorithm implementations live in two subpackages:
//
//   - [github.com/opd-ai/sigil/blake2b]: BLAKE2b with variable digest
//     length, optional keying, and an incremental Hasher
//   - [github.com/opd-ai/sigil/ed25519]: RFC 8032 Ed25519 with its own
//     constant-time field and curve arithmetic
//
// The top-level functions here mirror the fixed configuration of the
// embedded deployments this library serves: unkeyed 32-byte digests and
// 32-byte seeds/keys with 64-byte signatures.
//
// # Backends
//
// Operations dispatch through a pluggable [Backend]. The default
// software backend is pure Go; platforms with crypto peripherals can
// register accelerated backends via [RegisterBackend] and [UseBackend].
package sigil

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// DigestSize is the fixed digest length of Hash in bytes.
const DigestSize = 32

// SeedSize is the Ed25519 private-key seed length in bytes.
const SeedSize = 32

// PublicKeySize is the Ed25519 public-key length in bytes.
const PublicKeySize = 32

// SignatureSize is the Ed25519 signature length in bytes.
const SignatureSize = 64

// Hash computes the BLAKE2b-256 digest of message. The fixed
// configuration cannot fail; empty input is valid.
func Hash(message []byte) [DigestSize]byte {
	digest, err := activeBackend().Hash(message)
	if err != nil {
		// The fixed configuration has no failure mode; a backend error
		// here is a defect in the backend.
		panic("sigil: hash backend failed: " + err.Error())
	}
	return digest
}

// DerivePublicKey computes the Ed25519 public key for a 32-byte seed.
func DerivePublicKey(seed []byte) ([]byte, error) {
	logger := NewLogger("DerivePublicKey").WithFields(SecureFieldHash(seed, "seed"))
	logger.Entry("deriving public key")

	pub, err := activeBackend().DerivePublicKey(seed)
	if err != nil {
		logger.WithError(err, "validation", "derive_public_key").Debug("Derivation rejected")
		return nil, err
	}

	logger.Exit()
	return pub, nil
}

// Sign produces a deterministic Ed25519 signature over message using the
// 32-byte seed. The caller-supplied public key is folded into the
// signature as-is; see the ed25519 package for the mismatch semantics.
func Sign(seed, publicKey, message []byte) ([]byte, error) {
	logger := NewLogger("Sign").
		WithFields(SecureFieldHash(publicKey, "public_key")).
		WithField("message_size", len(message))
	logger.Entry("signing message")

	sig, err := activeBackend().Sign(seed, publicKey, message)
	if err != nil {
		logger.WithError(err, "validation", "sign").Debug("Signing rejected")
		return nil, err
	}

	logger.Exit()
	return sig, nil
}

// Verify checks an Ed25519 signature, returning nil on success and
// ErrInvalidLength or ErrInvalidSignature otherwise.
func Verify(publicKey, signature, message []byte) error {
	logger := NewLogger("Verify").
		WithFields(SecureFieldHash(publicKey, "public_key")).
		WithField("message_size", len(message))
	logger.Entry("verifying signature")

	if err := activeBackend().Verify(publicKey, signature, message); err != nil {
		logger.WithError(err, "verification", "verify").Debug("Signature rejected")
		return err
	}

	logger.Exit()
	return nil
}

// SecureWipe attempts to securely erase the contents of a byte slice
// containing sensitive data. It returns an error if the byte slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	// The constant-time compare keeps the overwrite from being
	// optimized out before the copy lands.
	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}
