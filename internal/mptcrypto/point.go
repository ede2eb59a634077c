package mptcrypto

import (
	"bytes"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const PointBytes = 33

// Point is a secp256k1 group element. The zero value is the point at
// infinity, which is a valid intermediate but is rejected on encode/decode:
// proof statements never carry the identity.
type Point struct {
	v secp256k1.JacobianPoint
}

func PointInfinity() Point {
	return Point{}
}

// PointFromBytes parses a 33-byte SEC1 compressed point, rejecting encodings
// that are not on the curve.
func PointFromBytes(b []byte) (Point, error) {
	if len(b) != PointBytes {
		return Point{}, fmt.Errorf("point: expected %d bytes", PointBytes)
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, fmt.Errorf("point: %w", err)
	}
	var p Point
	pub.AsJacobian(&p.v)
	return p, nil
}

func (p Point) IsInfinity() bool {
	z := p.v.Z
	return z.Normalize().IsZero()
}

// Bytes returns the SEC1 compressed encoding. The point at infinity has no
// compressed form and encodes as 33 zero bytes; callers reject it on parse.
func (p Point) Bytes() []byte {
	if p.IsInfinity() {
		return make([]byte, PointBytes)
	}
	v := p.v
	v.ToAffine()
	out := make([]byte, PointBytes)
	out[0] = 0x02
	if v.Y.IsOdd() {
		out[0] = 0x03
	}
	v.X.PutBytesUnchecked(out[1:])
	return out
}

func PointEq(a, b Point) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}

func PointAdd(a, b Point) Point {
	var out Point
	secp256k1.AddNonConst(&a.v, &b.v, &out.v)
	return out
}

func PointNeg(a Point) Point {
	out := a
	out.v.Y.Normalize().Negate(1).Normalize()
	return out
}

func PointSub(a, b Point) Point {
	return PointAdd(a, PointNeg(b))
}

func MulBase(k Scalar) Point {
	var out Point
	secp256k1.ScalarBaseMultNonConst(&k.v, &out.v)
	return out
}

func MulPoint(p Point, k Scalar) Point {
	var out Point
	secp256k1.ScalarMultNonConst(&k.v, &p.v, &out.v)
	return out
}

// MultiScalarMul computes sum(ks[i]*ps[i]) for at least two terms. It is not
// constant time.
func MultiScalarMul(ks []Scalar, ps []Point) (Point, error) {
	if len(ks) != len(ps) {
		return Point{}, fmt.Errorf("multiscalarmul: length mismatch")
	}
	if len(ks) < 2 {
		return Point{}, fmt.Errorf("multiscalarmul: need at least two terms")
	}
	var acc Point
	for i := range ks {
		acc = PointAdd(acc, MulPoint(ps[i], ks[i]))
	}
	return acc, nil
}
