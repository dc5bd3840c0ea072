package ed25519

import (
	"crypto/subtle"
	"encoding/binary"
	"math/bits"
)

// fieldElement is an integer modulo 2^255-19, held as five unsigned
// 64-bit limbs of 51 bits each, little-endian. Limbs may exceed 51 bits
// between operations; every arithmetic method returns a value whose limbs
// fit the bounds its callers rely on.
type fieldElement struct {
	l0, l1, l2, l3, l4 uint64
}

const maskLow51Bits = (1 << 51) - 1

var (
	feZero = fieldElement{}
	feOne  = fieldElement{l0: 1}

	// d is the curve constant -121665/121666 mod p.
	feD = fieldElement{
		0x34dca135978a3, 0x1a8283b156ebd, 0x5e7a26001c029,
		0x739c663a03cbb, 0x52036cee2b6ff,
	}
	// feD2 is 2*d.
	feD2 = fieldElement{
		0x69b9426b2f159, 0x35050762add7a, 0x3cf44c0038052,
		0x6738cc7407977, 0x2406d9dc56dff,
	}
	// feSqrtM1 is sqrt(-1) mod p.
	feSqrtM1 = fieldElement{
		0x61b274a0ea0b0, 0xd5a5fc8f189d, 0x7ef5e9cbd0c60,
		0x78595a6804c9e, 0x2b8324804fc1d,
	}
)

func (v *fieldElement) zero() *fieldElement { *v = feZero; return v }
func (v *fieldElement) one() *fieldElement  { *v = feOne; return v }

func (v *fieldElement) set(a *fieldElement) *fieldElement { *v = *a; return v }

// carryPropagate brings all limbs below 52 bits, folding the top carry
// back in multiplied by 19.
func (v *fieldElement) carryPropagate() *fieldElement {
	c0 := v.l0 >> 51
	c1 := v.l1 >> 51
	c2 := v.l2 >> 51
	c3 := v.l3 >> 51
	c4 := v.l4 >> 51

	v.l0 = v.l0&maskLow51Bits + c4*19
	v.l1 = v.l1&maskLow51Bits + c0
	v.l2 = v.l2&maskLow51Bits + c1
	v.l3 = v.l3&maskLow51Bits + c2
	v.l4 = v.l4&maskLow51Bits + c3
	return v
}

// reduce brings v to its canonical representative below p.
func (v *fieldElement) reduce() *fieldElement {
	v.carryPropagate()

	// Compute v + 19 carried through; the final carry is 1 exactly when
	// v >= p, in which case adding 19 and masking bit 255 subtracts p.
	c := (v.l0 + 19) >> 51
	c = (v.l1 + c) >> 51
	c = (v.l2 + c) >> 51
	c = (v.l3 + c) >> 51
	c = (v.l4 + c) >> 51

	v.l0 += 19 * c
	c = v.l0 >> 51
	v.l0 &= maskLow51Bits
	v.l1 += c
	c = v.l1 >> 51
	v.l1 &= maskLow51Bits
	v.l2 += c
	c = v.l2 >> 51
	v.l2 &= maskLow51Bits
	v.l3 += c
	c = v.l3 >> 51
	v.l3 &= maskLow51Bits
	v.l4 += c
	v.l4 &= maskLow51Bits

	return v
}

func (v *fieldElement) add(a, b *fieldElement) *fieldElement {
	v.l0 = a.l0 + b.l0
	v.l1 = a.l1 + b.l1
	v.l2 = a.l2 + b.l2
	v.l3 = a.l3 + b.l3
	v.l4 = a.l4 + b.l4
	return v.carryPropagate()
}

// sub computes a-b, first adding 2p to keep the limbs non-negative.
func (v *fieldElement) sub(a, b *fieldElement) *fieldElement {
	v.l0 = (a.l0 + 0xFFFFFFFFFFFDA) - b.l0
	v.l1 = (a.l1 + 0xFFFFFFFFFFFFE) - b.l1
	v.l2 = (a.l2 + 0xFFFFFFFFFFFFE) - b.l2
	v.l3 = (a.l3 + 0xFFFFFFFFFFFFE) - b.l3
	v.l4 = (a.l4 + 0xFFFFFFFFFFFFE) - b.l4
	return v.carryPropagate()
}

func (v *fieldElement) negate(a *fieldElement) *fieldElement {
	return v.sub(&feZero, a)
}

// uint128 accumulates 64x64-bit products.
type uint128 struct {
	lo, hi uint64
}

func mul64(a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	return uint128{lo, hi}
}

func addMul64(v uint128, a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	lo, c := bits.Add64(lo, v.lo, 0)
	hi, _ = bits.Add64(hi, v.hi, c)
	return uint128{lo, hi}
}

func shiftRightBy51(a uint128) uint64 {
	return a.hi<<(64-51) | a.lo>>51
}

// mul computes a*b mod p. Cross terms above limb 4 wrap around with a
// factor of 19 because 2^255 = 19 mod p.
func (v *fieldElement) mul(a, b *fieldElement) *fieldElement {
	a0, a1, a2, a3, a4 := a.l0, a.l1, a.l2, a.l3, a.l4
	b0, b1, b2, b3, b4 := b.l0, b.l1, b.l2, b.l3, b.l4

	a1_19 := a1 * 19
	a2_19 := a2 * 19
	a3_19 := a3 * 19
	a4_19 := a4 * 19

	r0 := mul64(a0, b0)
	r0 = addMul64(r0, a1_19, b4)
	r0 = addMul64(r0, a2_19, b3)
	r0 = addMul64(r0, a3_19, b2)
	r0 = addMul64(r0, a4_19, b1)

	r1 := mul64(a0, b1)
	r1 = addMul64(r1, a1, b0)
	r1 = addMul64(r1, a2_19, b4)
	r1 = addMul64(r1, a3_19, b3)
	r1 = addMul64(r1, a4_19, b2)

	r2 := mul64(a0, b2)
	r2 = addMul64(r2, a1, b1)
	r2 = addMul64(r2, a2, b0)
	r2 = addMul64(r2, a3_19, b4)
	r2 = addMul64(r2, a4_19, b3)

	r3 := mul64(a0, b3)
	r3 = addMul64(r3, a1, b2)
	r3 = addMul64(r3, a2, b1)
	r3 = addMul64(r3, a3, b0)
	r3 = addMul64(r3, a4_19, b4)

	r4 := mul64(a0, b4)
	r4 = addMul64(r4, a1, b3)
	r4 = addMul64(r4, a2, b2)
	r4 = addMul64(r4, a3, b1)
	r4 = addMul64(r4, a4, b0)

	c0 := shiftRightBy51(r0)
	c1 := shiftRightBy51(r1)
	c2 := shiftRightBy51(r2)
	c3 := shiftRightBy51(r3)
	c4 := shiftRightBy51(r4)

	v.l0 = r0.lo&maskLow51Bits + c4*19
	v.l1 = r1.lo&maskLow51Bits + c0
	v.l2 = r2.lo&maskLow51Bits + c1
	v.l3 = r3.lo&maskLow51Bits + c2
	v.l4 = r4.lo&maskLow51Bits + c3
	return v.carryPropagate()
}

func (v *fieldElement) square(a *fieldElement) *fieldElement {
	return v.mul(a, a)
}

// pow2k squares a k times.
func (v *fieldElement) pow2k(a *fieldElement, k int) *fieldElement {
	v.square(a)
	for i := 1; i < k; i++ {
		v.square(v)
	}
	return v
}

// invert computes a^-1 = a^(p-2) mod p via a fixed addition chain, so the
// operation count never depends on the value.
func (v *fieldElement) invert(a *fieldElement) *fieldElement {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t fieldElement

	z2.square(a)                   // 2
	t.pow2k(&z2, 2)                // 8
	z9.mul(&t, a)                  // 9
	z11.mul(&z9, &z2)              // 11
	t.square(&z11)                 // 22
	z2_5_0.mul(&t, &z9)            // 31 = 2^5 - 2^0
	t.pow2k(&z2_5_0, 5)            // 2^10 - 2^5
	z2_10_0.mul(&t, &z2_5_0)       // 2^10 - 2^0
	t.pow2k(&z2_10_0, 10)          // 2^20 - 2^10
	z2_20_0.mul(&t, &z2_10_0)      // 2^20 - 2^0
	t.pow2k(&z2_20_0, 20)          // 2^40 - 2^20
	t.mul(&t, &z2_20_0)            // 2^40 - 2^0
	t.pow2k(&t, 10)                // 2^50 - 2^10
	z2_50_0.mul(&t, &z2_10_0)      // 2^50 - 2^0
	t.pow2k(&z2_50_0, 50)          // 2^100 - 2^50
	z2_100_0.mul(&t, &z2_50_0)     // 2^100 - 2^0
	t.pow2k(&z2_100_0, 100)        // 2^200 - 2^100
	t.mul(&t, &z2_100_0)           // 2^200 - 2^0
	t.pow2k(&t, 50)                // 2^250 - 2^50
	t.mul(&t, &z2_50_0)            // 2^250 - 2^0
	t.pow2k(&t, 5)                 // 2^255 - 2^5
	return v.mul(&t, &z11)         // 2^255 - 21
}

// pow22523 computes a^((p-5)/8) = a^(2^252-3), the exponent used for
// square-root extraction.
func (v *fieldElement) pow22523(a *fieldElement) *fieldElement {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t fieldElement

	z2.square(a)
	t.pow2k(&z2, 2)
	z9.mul(&t, a)
	z11.mul(&z9, &z2)
	t.square(&z11)
	z2_5_0.mul(&t, &z9)
	t.pow2k(&z2_5_0, 5)
	z2_10_0.mul(&t, &z2_5_0)
	t.pow2k(&z2_10_0, 10)
	z2_20_0.mul(&t, &z2_10_0)
	t.pow2k(&z2_20_0, 20)
	t.mul(&t, &z2_20_0)
	t.pow2k(&t, 10)
	z2_50_0.mul(&t, &z2_10_0)
	t.pow2k(&z2_50_0, 50)
	z2_100_0.mul(&t, &z2_50_0)
	t.pow2k(&z2_100_0, 100)
	t.mul(&t, &z2_100_0)
	t.pow2k(&t, 50)
	t.mul(&t, &z2_50_0)
	t.pow2k(&t, 2)                 // 2^252 - 4
	return v.mul(&t, a)            // 2^252 - 3
}

// setBytes interprets x as a 255-bit little-endian integer, ignoring the
// top bit of the last byte.
func (v *fieldElement) setBytes(x *[32]byte) *fieldElement {
	v.l0 = binary.LittleEndian.Uint64(x[0:8]) & maskLow51Bits
	v.l1 = (binary.LittleEndian.Uint64(x[6:14]) >> 3) & maskLow51Bits
	v.l2 = (binary.LittleEndian.Uint64(x[12:20]) >> 6) & maskLow51Bits
	v.l3 = (binary.LittleEndian.Uint64(x[19:27]) >> 1) & maskLow51Bits
	v.l4 = (binary.LittleEndian.Uint64(x[24:32]) >> 12) & maskLow51Bits
	return v
}

// bytes returns the canonical 32-byte little-endian encoding of v.
func (v *fieldElement) bytes() [32]byte {
	t := *v
	t.reduce()

	var out [32]byte
	for i, l := range [5]uint64{t.l0, t.l1, t.l2, t.l3, t.l4} {
		bitsOffset := i * 51
		l <<= uint(bitsOffset % 8)
		for k := 0; k < 8; k++ {
			idx := bitsOffset/8 + k
			if idx >= 32 {
				break
			}
			out[idx] |= byte(l >> (8 * k))
		}
	}
	return out
}

// equal returns 1 if v and u are equal mod p, 0 otherwise.
func (v *fieldElement) equal(u *fieldElement) int {
	va, ua := v.bytes(), u.bytes()
	return subtle.ConstantTimeCompare(va[:], ua[:])
}

// isNegative returns 1 if the canonical encoding of v is odd.
func (v *fieldElement) isNegative() int {
	b := v.bytes()
	return int(b[0] & 1)
}

// sel sets v to a if cond == 1 and to b if cond == 0, in constant time.
func (v *fieldElement) sel(a, b *fieldElement, cond int) *fieldElement {
	m := uint64(0) - uint64(cond)
	v.l0 = b.l0 ^ (m & (a.l0 ^ b.l0))
	v.l1 = b.l1 ^ (m & (a.l1 ^ b.l1))
	v.l2 = b.l2 ^ (m & (a.l2 ^ b.l2))
	v.l3 = b.l3 ^ (m & (a.l3 ^ b.l3))
	v.l4 = b.l4 ^ (m & (a.l4 ^ b.l4))
	return v
}

// absolute sets v to a if a is non-negative and to -a otherwise.
func (v *fieldElement) absolute(a *fieldElement) *fieldElement {
	var neg fieldElement
	neg.negate(a)
	return v.sel(&neg, a, a.isNegative())
}

// sqrtRatio computes the square root of u/v, returning 1 if u/v was
// square and 0 otherwise (in which case v is set to the square root of
// the "wrong sign" value sqrt(-1)*u/v). The returned root is always the
// non-negative one.
func (r *fieldElement) sqrtRatio(u, v *fieldElement) (wasSquare int) {
	var a, b, c fieldElement

	// r = u * v^3 * (u * v^7)^((p-5)/8)
	v2 := new(fieldElement).square(v)
	uv3 := new(fieldElement).mul(u, new(fieldElement).mul(v, v2))
	uv7 := new(fieldElement).mul(uv3, new(fieldElement).square(v2))
	r.mul(uv3, a.pow22523(uv7))

	check := b.mul(v, c.square(r)) // check = v * r^2

	uNeg := new(fieldElement).negate(u)
	correctSign := check.equal(u)
	flippedSign := check.equal(uNeg)
	flippedSignI := check.equal(new(fieldElement).mul(uNeg, &feSqrtM1))

	rPrime := new(fieldElement).mul(r, &feSqrtM1)
	r.sel(rPrime, r, flippedSign|flippedSignI)

	r.absolute(r)
	return correctSign | flippedSign
}
