// Package commands defines the sigil CLI.
//
// Commands
//
//   - hash    Compute a BLAKE2b digest of a file or stdin
//   - pubkey  Derive an Ed25519 public key from a seed
//   - sign    Sign a file or stdin with an Ed25519 seed
//   - verify  Verify an Ed25519 signature over a file or stdin
//
// Key material is passed as hex on the command line and digests and
// signatures are printed as hex, mirroring the hash-then-sign request
// authentication flow the library was built for.
package commands
