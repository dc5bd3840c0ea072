package sigil

import (
	"bytes"
	"testing"
)

func BenchmarkHash_1K(b *testing.B) {
	message := make([]byte, 1024)
	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Hash(message)
	}
}

func BenchmarkDerivePublicKey(b *testing.B) {
	seed := bytes.Repeat([]byte{0x42}, SeedSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DerivePublicKey(seed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign_1K(b *testing.B) {
	seed := bytes.Repeat([]byte{0x42}, SeedSize)
	pub, err := DerivePublicKey(seed)
	if err != nil {
		b.Fatal(err)
	}
	message := make([]byte, 1024)
	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Sign(seed, pub, message); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify_1K(b *testing.B) {
	seed := bytes.Repeat([]byte{0x42}, SeedSize)
	pub, err := DerivePublicKey(seed)
	if err != nil {
		b.Fatal(err)
	}
	message := make([]byte, 1024)
	sig, err := Sign(seed, pub, message)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Verify(pub, sig, message); err != nil {
			b.Fatal(err)
		}
	}
}
