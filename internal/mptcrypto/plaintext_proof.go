package mptcrypto

const (
	eqPlaintextTag = "MPT/EQ-PT/v1"

	// EqualityPlaintextProofSize is T1(33) || T2(33) || s(32).
	EqualityPlaintextProofSize = 2*PointBytes + ScalarBytes
)

// EqualityPlaintextProve proves that (C1, C2) encrypts the known amount m
// under pk, with knowledge of the encryption randomness r:
//
//	C1 = r*G  and  C2 = m*G + r*Pk
//
// The single witness is r; m is public in the statement.
func EqualityPlaintextProve(pk Point, ct ElGamalCiphertext, amount uint64, r Scalar, txContextID, seed []byte) ([]byte, error) {
	rng, err := newNonceRng(eqPlaintextTag, seed)
	if err != nil {
		return nil, err
	}
	k, err := rng.next()
	if err != nil {
		return nil, err
	}
	t1 := MulBase(k)
	t2 := MulPoint(pk, k)

	tr, err := NewTranscript(eqPlaintextTag, txContextID)
	if err != nil {
		return nil, err
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("c1", ct.C1)
	_ = tr.AppendPoint("c2", ct.C2)
	_ = tr.AppendUint64("m", amount)
	_ = tr.AppendPoint("t1", t1)
	_ = tr.AppendPoint("t2", t2)
	e := tr.ChallengeScalar(challengeSigma)

	s := ScalarAdd(k, ScalarMul(e, r))
	return concatBytes(t1.Bytes(), t2.Bytes(), s.Bytes()), nil
}

// EqualityPlaintextVerify checks s*G == T1 + e*C1 and
// s*Pk == T2 + e*(C2 - m*G).
func EqualityPlaintextVerify(pk Point, ct ElGamalCiphertext, amount uint64, txContextID, proof []byte) bool {
	if len(proof) != EqualityPlaintextProofSize {
		return false
	}
	t1, err := PointFromBytes(proof[0:PointBytes])
	if err != nil {
		return false
	}
	t2, err := PointFromBytes(proof[PointBytes : 2*PointBytes])
	if err != nil {
		return false
	}
	s, err := ScalarFromBytes(proof[2*PointBytes:])
	if err != nil {
		return false
	}

	tr, err := NewTranscript(eqPlaintextTag, txContextID)
	if err != nil {
		return false
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("c1", ct.C1)
	_ = tr.AppendPoint("c2", ct.C2)
	_ = tr.AppendUint64("m", amount)
	_ = tr.AppendPoint("t1", t1)
	_ = tr.AppendPoint("t2", t2)
	e := tr.ChallengeScalar(challengeSigma)

	if !PointEq(MulBase(s), PointAdd(t1, MulPoint(ct.C1, e))) {
		return false
	}
	d := PointSub(ct.C2, MulBase(ScalarFromUint64(amount)))
	if !PointEq(MulPoint(pk, s), PointAdd(t2, MulPoint(d, e))) {
		return false
	}
	return true
}
