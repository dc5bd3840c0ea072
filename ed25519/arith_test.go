package ed25519

import (
	"encoding/binary"
	"math/big"
	"math/rand"
	"testing"
)

var bigP = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

var bigL = func() *big.Int {
	l := new(big.Int).Lsh(big.NewInt(1), 252)
	add, _ := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	return l.Add(l, add)
}()

func feToBig(v *fieldElement) *big.Int {
	b := v.bytes()
	// big.Int wants big-endian.
	var rev [32]byte
	for i := range b {
		rev[31-i] = b[i]
	}
	return new(big.Int).SetBytes(rev[:])
}

func feFromBig(n *big.Int) *fieldElement {
	var buf [32]byte
	raw := new(big.Int).Mod(n, bigP).Bytes()
	for i, by := range raw {
		buf[len(raw)-1-i] = by
	}
	return new(fieldElement).setBytes(&buf)
}

// TestFieldOpsAgainstBigInt checks add, sub, mul, invert, and the
// square-root exponent chain against big.Int reference arithmetic.
func TestFieldOpsAgainstBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(2718))

	randFe := func() (*fieldElement, *big.Int) {
		n := new(big.Int).Rand(rng, bigP)
		return feFromBig(n), n
	}

	for trial := 0; trial < 100; trial++ {
		a, bigA := randFe()
		b, bigB := randFe()

		var out fieldElement
		if got, want := feToBig(out.add(a, b)), new(big.Int).Mod(new(big.Int).Add(bigA, bigB), bigP); got.Cmp(want) != 0 {
			t.Fatalf("add: got %v want %v", got, want)
		}
		if got, want := feToBig(out.sub(a, b)), new(big.Int).Mod(new(big.Int).Sub(bigA, bigB), bigP); got.Cmp(want) != 0 {
			t.Fatalf("sub: got %v want %v", got, want)
		}
		if got, want := feToBig(out.mul(a, b)), new(big.Int).Mod(new(big.Int).Mul(bigA, bigB), bigP); got.Cmp(want) != 0 {
			t.Fatalf("mul: got %v want %v", got, want)
		}
		if bigA.Sign() != 0 {
			want := new(big.Int).ModInverse(bigA, bigP)
			if got := feToBig(out.invert(a)); got.Cmp(want) != 0 {
				t.Fatalf("invert: got %v want %v", got, want)
			}
		}
		exp := new(big.Int).Rsh(new(big.Int).Sub(bigP, big.NewInt(5)), 3)
		if got, want := feToBig(out.pow22523(a)), new(big.Int).Exp(bigA, exp, bigP); got.Cmp(want) != 0 {
			t.Fatalf("pow22523: got %v want %v", got, want)
		}
	}
}

func TestFieldEncodingRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(161803))
	for trial := 0; trial < 100; trial++ {
		n := new(big.Int).Rand(rng, bigP)
		fe := feFromBig(n)
		if got := feToBig(fe); got.Cmp(n) != 0 {
			t.Fatalf("round trip: got %v want %v", got, n)
		}
	}
}

func TestSqrtRatio(t *testing.T) {
	rng := rand.New(rand.NewSource(31337))
	for trial := 0; trial < 50; trial++ {
		// Build a known square u = v * r^2 so the ratio u/v is square.
		r := new(big.Int).Rand(rng, bigP)
		v := new(big.Int).Rand(rng, bigP)
		if v.Sign() == 0 {
			continue
		}
		u := new(big.Int).Mod(new(big.Int).Mul(v, new(big.Int).Mul(r, r)), bigP)

		var root fieldElement
		wasSquare := root.sqrtRatio(feFromBig(u), feFromBig(v))
		if wasSquare != 1 {
			t.Fatalf("trial %d: known square reported non-square", trial)
		}
		got := feToBig(&root)
		sq := new(big.Int).Mod(new(big.Int).Mul(got, got), bigP)
		ratio := new(big.Int).Mod(new(big.Int).Mul(u, new(big.Int).ModInverse(v, bigP)), bigP)
		if sq.Cmp(ratio) != 0 {
			t.Fatalf("trial %d: root^2 != u/v", trial)
		}
		if got.Bit(0) != 0 {
			t.Fatalf("trial %d: sqrtRatio returned the negative root", trial)
		}
	}
}

func scToBig(s *scalar) *big.Int {
	b := s.bytes()
	var rev [32]byte
	for i := range b {
		rev[31-i] = b[i]
	}
	return new(big.Int).SetBytes(rev[:])
}

func TestScalarReduction(t *testing.T) {
	rng := rand.New(rand.NewSource(577215))
	for trial := 0; trial < 100; trial++ {
		var wideBytes [64]byte
		rng.Read(wideBytes[:])

		var s scalar
		s.setWideBytes(&wideBytes)

		var rev [64]byte
		for i := range wideBytes {
			rev[63-i] = wideBytes[i]
		}
		want := new(big.Int).Mod(new(big.Int).SetBytes(rev[:]), bigL)
		if got := scToBig(&s); got.Cmp(want) != 0 {
			t.Fatalf("trial %d: wide reduction got %v want %v", trial, got, want)
		}
	}
}

func TestScalarMulAdd(t *testing.T) {
	rng := rand.New(rand.NewSource(141421))
	for trial := 0; trial < 100; trial++ {
		var kb, ab, rb [32]byte
		rng.Read(kb[:])
		rng.Read(ab[:])
		rng.Read(rb[:])
		// Keep k and r below L; a stays a raw 256-bit value like the
		// clamped signing scalar.
		kb[31] &= 0x0f
		rb[31] &= 0x0f

		var k, r, s scalar
		if k.setCanonicalBytes(kb[:]) != 1 || r.setCanonicalBytes(rb[:]) != 1 {
			continue
		}
		var aLimbs [4]uint64
		for i := range aLimbs {
			aLimbs[i] = binary.LittleEndian.Uint64(ab[i*8:])
		}
		s.mulAdd(&k, &aLimbs, &r)

		bigK := scToBig(&k)
		bigR := scToBig(&r)
		var revA [32]byte
		for i := range ab {
			revA[31-i] = ab[i]
		}
		bigA := new(big.Int).SetBytes(revA[:])
		want := new(big.Int).Mod(new(big.Int).Add(new(big.Int).Mul(bigK, bigA), bigR), bigL)
		if got := scToBig(&s); got.Cmp(want) != 0 {
			t.Fatalf("trial %d: mulAdd got %v want %v", trial, got, want)
		}
	}
}

func TestScalarCanonicity(t *testing.T) {
	var s scalar

	// L itself is not canonical.
	var lBytes [32]byte
	for i, l := range orderL {
		binary.LittleEndian.PutUint64(lBytes[i*8:], l)
	}
	if s.setCanonicalBytes(lBytes[:]) != 0 {
		t.Error("L accepted as canonical")
	}

	// L-1 is.
	lm1 := lBytes
	lm1[0]--
	if s.setCanonicalBytes(lm1[:]) != 1 {
		t.Error("L-1 rejected")
	}

	// Zero is.
	var zero [32]byte
	if s.setCanonicalBytes(zero[:]) != 1 {
		t.Error("zero rejected")
	}
}

func TestPointDecodeRejectsNonPoints(t *testing.T) {
	// y = 2 is not on the curve: (y^2-1)/(d*y^2+1) is non-square.
	var enc [32]byte
	enc[0] = 2
	var p point
	if p.decode(&enc) != 0 {
		t.Error("off-curve encoding accepted")
	}

	// The base point encoding decodes and round-trips.
	baseEnc := basePoint.encode()
	if p.decode(&baseEnc) != 1 {
		t.Fatal("base point encoding rejected")
	}
	if got := p.encode(); got != baseEnc {
		t.Errorf("base point round trip: got %x want %x", got, baseEnc)
	}
}
