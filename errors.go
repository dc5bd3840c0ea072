package sigil

import (
	"github.com/opd-ai/sigil/blake2b"
	"github.com/opd-ai/sigil/ed25519"
)

// The package error taxonomy. Engine packages return errors wrapping
// these sentinels; match with errors.Is.
var (
	// ErrConfig reports an invalid hash configuration (digest length
	// outside 1..64 or key longer than 64 bytes).
	ErrConfig = blake2b.ErrConfig

	// ErrInvalidLength reports a wrong-sized key or signature buffer.
	ErrInvalidLength = ed25519.ErrInvalidLength

	// ErrInvalidSignature reports a failed verification: the equation did
	// not hold, or a signature component or public key did not decode.
	ErrInvalidSignature = ed25519.ErrInvalidSignature

	// ErrOperationFailed reports an internal arithmetic invariant
	// violation, unreachable with valid inputs.
	ErrOperationFailed = ed25519.ErrOperationFailed
)
