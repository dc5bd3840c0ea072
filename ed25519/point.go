package ed25519

// point is a curve point in extended homogeneous coordinates: x = X/Z,
// y = Y/Z, x*y = T/Z. The twisted-Edwards curve -x^2 + y^2 = 1 + d*x^2*y^2
// has square a = -1 and non-square d, so a single unified addition law is
// complete over the whole curve and serves for doubling as well.
type point struct {
	x, y, z, t fieldElement
}

// basePoint is the Ed25519 generator: y = 4/5 mod p, x the even root.
var basePoint = point{
	x: fieldElement{
		0x62d608f25d51a, 0x412a4b4f6592a, 0x75b7171a4b31d,
		0x1ff60527118fe, 0x216936d3cd6e5,
	},
	y: fieldElement{
		0x6666666666658, 0x4cccccccccccc, 0x1999999999999,
		0x3333333333333, 0x6666666666666,
	},
	z: feOne,
	t: fieldElement{
		0x68ab3a5b7dda3, 0x00eea2a5eadbb, 0x2af8df483c27e,
		0x332b375274732, 0x67875f0fd78b7,
	},
}

// identity sets p to the neutral element (0, 1).
func (p *point) identity() *point {
	p.x.zero()
	p.y.one()
	p.z.one()
	p.t.zero()
	return p
}

// add sets p = q + r using the complete unified formulas for a = -1.
func (p *point) add(q, r *point) *point {
	var a, b, c, dd, e, f, g, h, t1, t2 fieldElement

	a.mul(t1.sub(&q.y, &q.x), t2.sub(&r.y, &r.x)) // (Y1-X1)(Y2-X2)
	b.mul(t1.add(&q.y, &q.x), t2.add(&r.y, &r.x)) // (Y1+X1)(Y2+X2)
	c.mul(t1.mul(&q.t, &r.t), &feD2)              // 2d*T1*T2
	dd.mul(&q.z, &r.z)
	dd.add(&dd, &dd) // 2*Z1*Z2

	e.sub(&b, &a)
	f.sub(&dd, &c)
	g.add(&dd, &c)
	h.add(&b, &a)

	p.x.mul(&e, &f)
	p.y.mul(&g, &h)
	p.t.mul(&e, &h)
	p.z.mul(&f, &g)
	return p
}

// sel sets p to q if cond == 1 and to r if cond == 0, in constant time.
func (p *point) sel(q, r *point, cond int) *point {
	p.x.sel(&q.x, &r.x, cond)
	p.y.sel(&q.y, &r.y, cond)
	p.z.sel(&q.z, &r.z, cond)
	p.t.sel(&q.t, &r.t, cond)
	return p
}

// scalarMult sets p = k*q where k is a 256-bit little-endian scalar. The
// ladder doubles and adds on every iteration and selects the result by
// the scalar bit, keeping the operation sequence fixed for all scalars.
func (p *point) scalarMult(k *[32]byte, q *point) *point {
	var acc, sum point
	acc.identity()

	for i := 255; i >= 0; i-- {
		acc.add(&acc, &acc)
		sum.add(&acc, q)
		bit := int((k[i/8] >> (uint(i) % 8)) & 1)
		acc.sel(&sum, &acc, bit)
	}
	*p = acc
	return p
}

// scalarBaseMult sets p = k*B for the curve generator B.
func (p *point) scalarBaseMult(k *[32]byte) *point {
	return p.scalarMult(k, &basePoint)
}

// encode compresses p to its 32-byte form: the y-coordinate in
// little-endian with the sign of x folded into the top bit.
func (p *point) encode() [32]byte {
	var zInv, x, y fieldElement
	zInv.invert(&p.z)
	x.mul(&p.x, &zInv)
	y.mul(&p.y, &zInv)

	out := y.bytes()
	out[31] |= byte(x.isNegative() << 7)
	return out
}

// decode sets p from a compressed 32-byte encoding, returning 1 if the
// bytes describe a valid curve point and 0 otherwise. On failure p is
// left at the identity so callers can finish their fixed work sequence
// before rejecting.
func (p *point) decode(in *[32]byte) int {
	var y, y2, u, v, x fieldElement
	y.setBytes(in)
	sign := int(in[31] >> 7)

	// x^2 = (y^2 - 1) / (d*y^2 + 1), which always has a well-defined
	// denominator since -1/d is non-square.
	y2.square(&y)
	u.sub(&y2, &feOne)
	v.mul(&y2, &feD)
	v.add(&v, &feOne)

	wasSquare := x.sqrtRatio(&u, &v)

	// A zero x cannot carry a negative sign.
	zeroX := x.equal(&feZero)
	ok := wasSquare & (1 - (zeroX & sign))

	var negX fieldElement
	negX.negate(&x)
	x.sel(&negX, &x, sign^x.isNegative())

	p.x.set(&x)
	p.y.set(&y)
	p.z.one()
	p.t.mul(&x, &y)

	var id point
	id.identity()
	p.sel(&id, p, 1-ok)
	return ok
}
