package mptcrypto

const (
	pokSkTag = "MPT/POK-SK/v1"

	// PokSkProofSize is T(33) || s(32).
	PokSkProofSize = PointBytes + ScalarBytes
)

// PokSkProve is the Schnorr proof of knowledge of the secret key behind a
// declared public key, used when registering an ElGamal key on the ledger.
func PokSkProve(pk Point, sk Scalar, contextID, seed []byte) ([]byte, error) {
	rng, err := newNonceRng(pokSkTag, seed)
	if err != nil {
		return nil, err
	}
	k, err := rng.next()
	if err != nil {
		return nil, err
	}
	t := MulBase(k)

	tr, err := NewTranscript(pokSkTag, contextID)
	if err != nil {
		return nil, err
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("t", t)
	e := tr.ChallengeScalar(challengeSigma)

	s := ScalarAdd(k, ScalarMul(e, sk))
	return concatBytes(t.Bytes(), s.Bytes()), nil
}

// PokSkVerify checks s*G == T + e*Pk.
func PokSkVerify(pk Point, contextID, proof []byte) bool {
	if len(proof) != PokSkProofSize {
		return false
	}
	t, err := PointFromBytes(proof[:PointBytes])
	if err != nil {
		return false
	}
	s, err := ScalarFromBytes(proof[PointBytes:])
	if err != nil {
		return false
	}

	tr, err := NewTranscript(pokSkTag, contextID)
	if err != nil {
		return false
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("t", t)
	e := tr.ChallengeScalar(challengeSigma)

	return PointEq(MulBase(s), PointAdd(t, MulPoint(pk, e)))
}
