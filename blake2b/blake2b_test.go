package blake2b

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/rand"
	"testing"

	xblake2b "golang.org/x/crypto/blake2b"
)

func TestKnownVectors(t *testing.T) {
	cases := []struct {
		name    string
		message []byte
		size    int
		key     []byte
		want    string
	}{
		{
			name:    "Empty message 256-bit",
			message: nil,
			size:    32,
			want:    "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		},
		{
			name:    "abc 256-bit",
			message: []byte("abc"),
			size:    32,
			want:    "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319",
		},
		{
			name:    "abc 512-bit",
			message: []byte("abc"),
			size:    64,
			want: "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d1" +
				"7d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		},
		{
			name:    "Keyed 256-bit",
			message: []byte("message"),
			size:    32,
			key:     []byte("topsecret"),
			want:    "3d4c767b5a99e85d93523c0e2df6cc09491305e521f7c7fc8bccdaeb26e1e7ca",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			digest, err := Compute(tc.message, tc.size, tc.key)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if got := hex.EncodeToString(digest); got != tc.want {
				t.Errorf("Compute() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSum256(t *testing.T) {
	want := "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	digest := Sum256(nil)
	if got := hex.EncodeToString(digest[:]); got != want {
		t.Errorf("Sum256(nil) = %s, want %s", got, want)
	}
}

func TestConfigurationErrors(t *testing.T) {
	cases := []struct {
		name string
		size int
		key  []byte
	}{
		{"Zero digest length", 0, nil},
		{"Oversized digest length", 65, nil},
		{"Negative digest length", -1, nil},
		{"Oversized key", 32, make([]byte, 65)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.size, tc.key)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("New(%d, %d-byte key) error = %v, want ErrConfig", tc.size, len(tc.key), err)
			}
		})
	}
}

func TestIncrementalEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	message := make([]byte, 4096)
	rng.Read(message)

	oneShot, err := Compute(message, 32, nil)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	// Arbitrary chunk boundaries, including empty writes and splits that
	// straddle the 128-byte block size.
	for trial := 0; trial < 50; trial++ {
		h, err := New(32, nil)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		rest := message
		for len(rest) > 0 {
			n := rng.Intn(200)
			if n > len(rest) {
				n = len(rest)
			}
			if _, err := h.Write(rest[:n]); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			rest = rest[n:]
		}
		digest, err := h.Finalize()
		if err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if !bytes.Equal(digest, oneShot) {
			t.Fatalf("trial %d: incremental digest %x != one-shot %x", trial, digest, oneShot)
		}
	}
}

func TestFinalizeConsumesState(t *testing.T) {
	h, err := New(32, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := h.Write([]byte("data")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	first, err := h.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if _, err := h.Write([]byte("more")); !errors.Is(err, ErrStateConsumed) {
		t.Errorf("Write() after Finalize error = %v, want ErrStateConsumed", err)
	}
	if _, err := h.Finalize(); !errors.Is(err, ErrStateConsumed) {
		t.Errorf("second Finalize() error = %v, want ErrStateConsumed", err)
	}

	// Reset restores a usable state with the original configuration.
	h.Reset()
	if _, err := h.Write([]byte("data")); err != nil {
		t.Fatalf("Write() after Reset error: %v", err)
	}
	second, err := h.Finalize()
	if err != nil {
		t.Fatalf("Finalize() after Reset error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("digest after Reset = %x, want %x", second, first)
	}
}

func TestKeyedReset(t *testing.T) {
	key := []byte("0123456789abcdef")
	h, err := New(32, key)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	h.Write([]byte("payload"))
	first, _ := h.Finalize()

	h.Reset()
	h.Write([]byte("payload"))
	second, _ := h.Finalize()

	if !bytes.Equal(first, second) {
		t.Errorf("keyed Reset changed digest: %x != %x", first, second)
	}
}

// TestCrossCheck compares the engine against the independent x/crypto
// implementation across random sizes, keys, and messages.
func TestCrossCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		size := 1 + rng.Intn(64)
		var key []byte
		if rng.Intn(2) == 1 {
			key = make([]byte, 1+rng.Intn(64))
			rng.Read(key)
		}
		message := make([]byte, rng.Intn(1000))
		rng.Read(message)

		got, err := Compute(message, size, key)
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}

		ref, err := xblake2b.New(size, key)
		if err != nil {
			t.Fatalf("x/crypto blake2b.New() error: %v", err)
		}
		ref.Write(message)
		want := ref.Sum(nil)

		if !bytes.Equal(got, want) {
			t.Fatalf("trial %d (size=%d keylen=%d msglen=%d): digest %x, x/crypto %x",
				trial, size, len(key), len(message), got, want)
		}
	}
}

func BenchmarkSum256_1K(b *testing.B) {
	message := make([]byte, 1024)
	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum256(message)
	}
}

func BenchmarkSum256_64K(b *testing.B) {
	message := make([]byte, 64*1024)
	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum256(message)
	}
}
