package ed25519

import (
	"encoding/binary"
	"math/bits"
)

// scalar is an integer modulo the group order L = 2^252 +
// 27742317777372353535851937790883648493, held as four little-endian
// 64-bit limbs.
type scalar struct {
	l [4]uint64
}

// orderL is the group order in limb form.
var orderL = [4]uint64{
	0x5812631a5cf5d3ed, 0x14def9dea2f79cd6,
	0x0000000000000000, 0x1000000000000000,
}

// condSubOrder subtracts L from s when s >= L, in constant time. The
// caller guarantees s < 2L.
func (s *scalar) condSubOrder() {
	var d [4]uint64
	var borrow uint64
	d[0], borrow = bits.Sub64(s.l[0], orderL[0], 0)
	d[1], borrow = bits.Sub64(s.l[1], orderL[1], borrow)
	d[2], borrow = bits.Sub64(s.l[2], orderL[2], borrow)
	d[3], borrow = bits.Sub64(s.l[3], orderL[3], borrow)

	// borrow == 0 means s >= L, so keep the difference.
	m := borrow - 1
	for i := range s.l {
		s.l[i] = s.l[i] ^ (m & (s.l[i] ^ d[i]))
	}
}

// setWideBytes reduces a 64-byte little-endian value modulo L, as used
// for SHA-512 outputs. The reduction walks all 512 bits with a fixed
// shift-and-conditional-subtract schedule, independent of the value.
func (s *scalar) setWideBytes(x *[64]byte) *scalar {
	var wide [8]uint64
	for i := range wide {
		wide[i] = binary.LittleEndian.Uint64(x[i*8:])
	}
	s.reduceWide(&wide)
	return s
}

// reduceWide folds a 512-bit little-endian value into s modulo L.
func (s *scalar) reduceWide(wide *[8]uint64) {
	s.l = [4]uint64{}
	for i := 511; i >= 0; i-- {
		bit := (wide[i/64] >> (uint(i) % 64)) & 1
		// s = s*2 + bit; s < L < 2^253 keeps the shift carry-free.
		s.l[3] = s.l[3]<<1 | s.l[2]>>63
		s.l[2] = s.l[2]<<1 | s.l[1]>>63
		s.l[1] = s.l[1]<<1 | s.l[0]>>63
		s.l[0] = s.l[0]<<1 | bit
		s.condSubOrder()
	}
}

// setCanonicalBytes loads a 32-byte little-endian scalar, requiring it to
// be fully reduced. It returns 1 on success and 0 if x >= L.
func (s *scalar) setCanonicalBytes(x []byte) int {
	_ = x[31]
	for i := range s.l {
		s.l[i] = binary.LittleEndian.Uint64(x[i*8:])
	}
	var borrow uint64
	_, borrow = bits.Sub64(s.l[0], orderL[0], 0)
	_, borrow = bits.Sub64(s.l[1], orderL[1], borrow)
	_, borrow = bits.Sub64(s.l[2], orderL[2], borrow)
	_, borrow = bits.Sub64(s.l[3], orderL[3], borrow)
	// borrow == 1 exactly when x < L.
	return int(borrow)
}

// mulAdd sets s = k*a + r mod L. The multiplicand a is taken as a raw
// 256-bit value, so the clamped signing scalar (which exceeds L) is
// handled without a prior reduction.
func (s *scalar) mulAdd(k *scalar, a *[4]uint64, r *scalar) *scalar {
	var wide [8]uint64

	// Schoolbook 256x256 multiply into the 512-bit accumulator.
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(k.l[i], a[j])
			var c uint64
			wide[i+j], c = bits.Add64(wide[i+j], lo, 0)
			hi += c
			wide[i+j], c = bits.Add64(wide[i+j], carry, 0)
			carry = hi + c
		}
		wide[i+4] += carry
	}

	// Fold in r; k*a < 2^509 leaves room, so no overflow past wide[7].
	var c uint64
	wide[0], c = bits.Add64(wide[0], r.l[0], 0)
	wide[1], c = bits.Add64(wide[1], r.l[1], c)
	wide[2], c = bits.Add64(wide[2], r.l[2], c)
	wide[3], c = bits.Add64(wide[3], r.l[3], c)
	wide[4], c = bits.Add64(wide[4], 0, c)
	wide[5], c = bits.Add64(wide[5], 0, c)
	wide[6], c = bits.Add64(wide[6], 0, c)
	wide[7], _ = bits.Add64(wide[7], 0, c)

	s.reduceWide(&wide)
	return s
}

// bytes returns the 32-byte little-endian encoding of s.
func (s *scalar) bytes() [32]byte {
	var out [32]byte
	for i, l := range s.l {
		binary.LittleEndian.PutUint64(out[i*8:], l)
	}
	return out
}
