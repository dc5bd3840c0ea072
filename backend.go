package sigil

import (
	"fmt"
	"sync"

	"github.com/opd-ai/sigil/blake2b"
	"github.com/opd-ai/sigil/ed25519"
)

// Backend is the pluggable implementation seam for the two primitive
// engines. The default software backend computes everything in pure Go;
// a platform with a crypto peripheral can register an accelerated
// implementation behind the same contracts and select it by name. A
// backend owns any shared hardware handle internally with scoped
// acquisition; no ambient global state is involved on the caller side.
type Backend interface {
	// Name identifies the backend in registration and logs.
	Name() string
	// Hash computes the unkeyed BLAKE2b-256 digest of message.
	Hash(message []byte) ([32]byte, error)
	// DerivePublicKey computes the public key for a 32-byte seed.
	DerivePublicKey(seed []byte) ([]byte, error)
	// Sign produces a deterministic Ed25519 signature.
	Sign(seed, publicKey, message []byte) ([]byte, error)
	// Verify checks an Ed25519 signature, returning nil on success.
	Verify(publicKey, signature, message []byte) error
}

// SoftwareBackendName is the name of the built-in pure-Go backend.
const SoftwareBackendName = "software"

var (
	backendMu sync.RWMutex
	backends  = map[string]Backend{SoftwareBackendName: softwareBackend{}}
	active    = Backend(softwareBackend{})
)

// RegisterBackend makes a backend selectable by name. Registering an
// already-registered name replaces the previous backend.
func RegisterBackend(b Backend) {
	logger := NewLogger("RegisterBackend").WithField("backend", b.Name())

	backendMu.Lock()
	backends[b.Name()] = b
	backendMu.Unlock()

	logger.Info("Backend registered")
}

// UseBackend selects the active backend by name.
func UseBackend(name string) error {
	backendMu.Lock()
	defer backendMu.Unlock()

	b, ok := backends[name]
	if !ok {
		return fmt.Errorf("unknown backend %q", name)
	}
	active = b

	NewLogger("UseBackend").WithField("backend", name).Info("Backend selected")
	return nil
}

// activeBackend returns the currently selected backend.
func activeBackend() Backend {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return active
}

// softwareBackend is the pure-Go implementation built on the blake2b and
// ed25519 engine packages.
type softwareBackend struct{}

func (softwareBackend) Name() string { return SoftwareBackendName }

func (softwareBackend) Hash(message []byte) ([32]byte, error) {
	return blake2b.Sum256(message), nil
}

func (softwareBackend) DerivePublicKey(seed []byte) ([]byte, error) {
	return ed25519.DerivePublicKey(seed)
}

func (softwareBackend) Sign(seed, publicKey, message []byte) ([]byte, error) {
	return ed25519.Sign(seed, publicKey, message)
}

func (softwareBackend) Verify(publicKey, signature, message []byte) error {
	return ed25519.Verify(publicKey, signature, message)
}
