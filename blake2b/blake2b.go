// Package blake2b implements the BLAKE2b cryptographic hash function
// (RFC 7693) with variable digest length and optional keying.
//
// The package provides a one-shot form and an incremental form. The
// incremental Hasher is single-finalization: after Finalize the state is
// consumed and must be Reset before reuse.
//
// Example:
//
//	digest := blake2b.Sum256([]byte("hello"))
//	fmt.Println(hex.EncodeToString(digest[:]))
package blake2b

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

const (
	// BlockSize is the compression function input size in bytes.
	BlockSize = 128
	// MaxSize is the largest supported digest length in bytes.
	MaxSize = 64
	// MaxKeySize is the largest supported key length in bytes.
	MaxKeySize = 64
	// Size256 is the digest length of the Sum256 convenience form.
	Size256 = 32
)

// ErrConfig is returned for an invalid digest or key length.
var ErrConfig = errors.New("invalid blake2b configuration")

// ErrStateConsumed is returned when a Hasher is used after Finalize.
var ErrStateConsumed = errors.New("blake2b state already finalized")

// iv is the BLAKE2b initialization vector, shared with SHA-512.
var iv = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// sigma holds the message word schedule for the twelve rounds. Rounds 10
// and 11 repeat rounds 0 and 1.
var sigma = [12][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
}

// Hasher is an incremental BLAKE2b hashing context. It is not safe for
// concurrent use; each goroutine should own its own Hasher.
type Hasher struct {
	h      [8]uint64 // chain value
	t0, t1 uint64    // 128-bit byte counter
	buf    [BlockSize]byte
	buflen int
	size   int
	key    [MaxKeySize]byte
	keylen int
	done   bool
}

// New creates an incremental hashing context producing a digest of the
// given length. A non-empty key enables the keyed (MAC) mode; the key is
// processed as a zero-padded first block per RFC 7693.
func New(size int, key []byte) (*Hasher, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("digest length %d outside 1..%d: %w", size, MaxSize, ErrConfig)
	}
	if len(key) > MaxKeySize {
		return nil, fmt.Errorf("key length %d exceeds %d: %w", len(key), MaxKeySize, ErrConfig)
	}

	h := &Hasher{size: size, keylen: len(key)}
	copy(h.key[:], key)
	h.init()
	return h, nil
}

// init loads the IV XOR parameter block and absorbs the key block, if any.
func (h *Hasher) init() {
	h.h = iv
	// Parameter block word 0: digest length, key length, fanout=1, depth=1.
	h.h[0] ^= uint64(h.size) | uint64(h.keylen)<<8 | 1<<16 | 1<<24
	h.t0, h.t1 = 0, 0
	h.buflen = 0
	h.done = false

	if h.keylen > 0 {
		var block [BlockSize]byte
		copy(block[:], h.key[:h.keylen])
		copy(h.buf[:], block[:])
		h.buflen = BlockSize
	}
}

// Reset re-initializes the context, preserving the configured digest
// length and key. It clears the consumed flag set by Finalize.
func (h *Hasher) Reset() {
	h.init()
}

// Size returns the configured digest length in bytes.
func (h *Hasher) Size() int { return h.size }

// BlockSize returns the compression function block size in bytes.
func (h *Hasher) BlockSize() int { return BlockSize }

// Write absorbs more input into the running hash. It fails with
// ErrStateConsumed after Finalize.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.done {
		return 0, ErrStateConsumed
	}
	n := len(p)

	for len(p) > 0 {
		// The buffered block is only compressed once more input arrives,
		// so the final block always remains in the buffer for Finalize.
		if h.buflen == BlockSize {
			h.incrementCounter(BlockSize)
			h.compress(h.buf[:], false)
			h.buflen = 0
		}
		c := copy(h.buf[h.buflen:], p)
		h.buflen += c
		p = p[c:]
	}
	return n, nil
}

// Finalize pads the last block, runs the final compression with the
// last-block flag, and returns the digest. The state is consumed; further
// Write or Finalize calls fail with ErrStateConsumed until Reset.
func (h *Hasher) Finalize() ([]byte, error) {
	if h.done {
		return nil, ErrStateConsumed
	}
	h.done = true

	h.incrementCounter(uint64(h.buflen))
	for i := h.buflen; i < BlockSize; i++ {
		h.buf[i] = 0
	}
	h.compress(h.buf[:], true)

	var out [MaxSize]byte
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], h.h[i])
	}
	digest := make([]byte, h.size)
	copy(digest, out[:h.size])
	return digest, nil
}

// incrementCounter adds n processed bytes to the 128-bit counter.
func (h *Hasher) incrementCounter(n uint64) {
	var carry uint64
	h.t0, carry = bits.Add64(h.t0, n, 0)
	h.t1, _ = bits.Add64(h.t1, 0, carry)
}

// compress runs the 12-round BLAKE2b compression function over one block.
func (h *Hasher) compress(block []byte, last bool) {
	var m [16]uint64
	for i := range m {
		m[i] = binary.LittleEndian.Uint64(block[i*8:])
	}

	var v [16]uint64
	copy(v[:8], h.h[:])
	copy(v[8:], iv[:])
	v[12] ^= h.t0
	v[13] ^= h.t1
	if last {
		v[14] = ^v[14]
	}

	g := func(a, b, c, d int, x, y uint64) {
		v[a] = v[a] + v[b] + x
		v[d] = bits.RotateLeft64(v[d]^v[a], -32)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -24)
		v[a] = v[a] + v[b] + y
		v[d] = bits.RotateLeft64(v[d]^v[a], -16)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -63)
	}

	for r := 0; r < 12; r++ {
		s := &sigma[r]
		g(0, 4, 8, 12, m[s[0]], m[s[1]])
		g(1, 5, 9, 13, m[s[2]], m[s[3]])
		g(2, 6, 10, 14, m[s[4]], m[s[5]])
		g(3, 7, 11, 15, m[s[6]], m[s[7]])
		g(0, 5, 10, 15, m[s[8]], m[s[9]])
		g(1, 6, 11, 12, m[s[10]], m[s[11]])
		g(2, 7, 8, 13, m[s[12]], m[s[13]])
		g(3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		h.h[i] ^= v[i] ^ v[i+8]
	}
}

// Compute hashes message in one shot with the given digest length and
// optional key.
func Compute(message []byte, size int, key []byte) ([]byte, error) {
	h, err := New(size, key)
	if err != nil {
		return nil, err
	}
	if _, err := h.Write(message); err != nil {
		return nil, err
	}
	return h.Finalize()
}

// Sum256 returns the unkeyed BLAKE2b-256 digest of message. The fixed
// configuration cannot fail.
func Sum256(message []byte) [Size256]byte {
	digest, err := Compute(message, Size256, nil)
	if err != nil {
		// Unreachable with the fixed parameters above.
		panic("blake2b: " + err.Error())
	}
	var out [Size256]byte
	copy(out[:], digest)
	return out
}
