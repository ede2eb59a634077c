package mptcrypto

import "fmt"

// PedersenCommit computes PC = m*G + rho*H_pk, where H_pk is the secondary
// generator bound to the recipient key. Hiding comes from rho, binding from
// the unknown discrete log between G and H_pk.
func PedersenCommit(amount uint64, rho Scalar, pk Point) (Point, error) {
	h, err := DeriveH(pk)
	if err != nil {
		return Point{}, err
	}
	return pedersenCommitH(amount, rho, h)
}

func pedersenCommitH(amount uint64, rho Scalar, h Point) (Point, error) {
	if rho.IsZero() {
		return Point{}, fmt.Errorf("pedersen: rho must be non-zero")
	}
	return PointAdd(MulBase(ScalarFromUint64(amount)), MulPoint(h, rho)), nil
}
