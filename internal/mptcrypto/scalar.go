package mptcrypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const ScalarBytes = 32

// Scalar is an integer modulo the secp256k1 group order (canonical 32-byte
// big-endian encoding). Arithmetic on secret scalars is constant time, which
// the wrapped ModNScalar guarantees.
type Scalar struct {
	v secp256k1.ModNScalar
}

func ScalarZero() Scalar {
	return Scalar{}
}

func ScalarOne() Scalar {
	var s Scalar
	s.v.SetInt(1)
	return s
}

func ScalarFromUint64(x uint64) Scalar {
	var b [ScalarBytes]byte
	for i := 0; i < 8; i++ {
		b[ScalarBytes-1-i] = byte(x >> (8 * i))
	}
	var s Scalar
	s.v.SetBytes(&b)
	return s
}

// ScalarFromBytes parses a canonical scalar, rejecting values >= n.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarBytes {
		return Scalar{}, fmt.Errorf("scalar: expected %d bytes", ScalarBytes)
	}
	var s Scalar
	if s.v.SetByteSlice(b) {
		return Scalar{}, fmt.Errorf("scalar: not in [0, n)")
	}
	return s, nil
}

// scalarReduce interprets 32 bytes as a big-endian integer and reduces it
// modulo the group order.
func scalarReduce(b [ScalarBytes]byte) Scalar {
	var s Scalar
	s.v.SetBytes(&b)
	return s
}

func (s Scalar) Bytes() []byte {
	b := s.v.Bytes()
	return b[:]
}

func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

func ScalarEq(a, b Scalar) bool {
	return a.v.Equals(&b.v)
}

func ScalarAdd(a, b Scalar) Scalar {
	var out Scalar
	out.v.Add2(&a.v, &b.v)
	return out
}

func ScalarSub(a, b Scalar) Scalar {
	neg := b.v
	neg.Negate()
	var out Scalar
	out.v.Add2(&a.v, &neg)
	return out
}

func ScalarMul(a, b Scalar) Scalar {
	var out Scalar
	out.v.Mul2(&a.v, &b.v)
	return out
}

func ScalarNeg(a Scalar) Scalar {
	out := a
	out.v.Negate()
	return out
}

func ScalarInv(a Scalar) (Scalar, error) {
	if a.IsZero() {
		return Scalar{}, fmt.Errorf("scalar: inverse of zero")
	}
	out := a
	out.v.InverseNonConst()
	return out, nil
}
