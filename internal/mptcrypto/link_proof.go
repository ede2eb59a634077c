package mptcrypto

const (
	linkTag        = "MPT/LINK/v1"
	balanceLinkTag = "MPT/LINK-BAL/v1"

	// LinkProofSize is T1(33) || T2(33) || T3(33) || s_m(32) || s_r(32) || s_rho(32).
	LinkProofSize = 3*PointBytes + 3*ScalarBytes
)

// ElGamalPedersenLinkProve proves that an ElGamal ciphertext and a Pedersen
// commitment bind the same amount:
//
//	C1 = r*G, C2 = m*G + r*Pk, PC = m*G + rho*H_pk
//
// Witnesses are (m, r, rho).
func ElGamalPedersenLinkProve(pk Point, ct ElGamalCiphertext, pc Point, amount uint64, r, rho Scalar, txContextID, seed []byte) ([]byte, error) {
	h, err := DeriveH(pk)
	if err != nil {
		return nil, err
	}
	rng, err := newNonceRng(linkTag, seed)
	if err != nil {
		return nil, err
	}
	km, err := rng.next()
	if err != nil {
		return nil, err
	}
	kr, err := rng.next()
	if err != nil {
		return nil, err
	}
	krho, err := rng.next()
	if err != nil {
		return nil, err
	}

	kmG := MulBase(km)
	t1 := MulBase(kr)
	t2 := PointAdd(kmG, MulPoint(pk, kr))
	t3 := PointAdd(kmG, MulPoint(h, krho))

	tr, err := NewTranscript(linkTag, txContextID)
	if err != nil {
		return nil, err
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("c1", ct.C1)
	_ = tr.AppendPoint("c2", ct.C2)
	_ = tr.AppendPoint("pc", pc)
	_ = tr.AppendPoint("t1", t1)
	_ = tr.AppendPoint("t2", t2)
	_ = tr.AppendPoint("t3", t3)
	e := tr.ChallengeScalar(challengeSigma)

	m := ScalarFromUint64(amount)
	sm := ScalarAdd(km, ScalarMul(e, m))
	sr := ScalarAdd(kr, ScalarMul(e, r))
	srho := ScalarAdd(krho, ScalarMul(e, rho))
	return concatBytes(t1.Bytes(), t2.Bytes(), t3.Bytes(), sm.Bytes(), sr.Bytes(), srho.Bytes()), nil
}

// ElGamalPedersenLinkVerify checks
//
//	s_r*G == T1 + e*C1
//	s_m*G + s_r*Pk == T2 + e*C2
//	s_m*G + s_rho*H_pk == T3 + e*PC
func ElGamalPedersenLinkVerify(pk Point, ct ElGamalCiphertext, pc Point, txContextID, proof []byte) bool {
	parsed, ok := parseLinkProof(proof)
	if !ok {
		return false
	}
	h, err := DeriveH(pk)
	if err != nil {
		return false
	}

	tr, err := NewTranscript(linkTag, txContextID)
	if err != nil {
		return false
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("c1", ct.C1)
	_ = tr.AppendPoint("c2", ct.C2)
	_ = tr.AppendPoint("pc", pc)
	_ = tr.AppendPoint("t1", parsed.t1)
	_ = tr.AppendPoint("t2", parsed.t2)
	_ = tr.AppendPoint("t3", parsed.t3)
	e := tr.ChallengeScalar(challengeSigma)

	smG := MulBase(parsed.sm)
	if !PointEq(MulBase(parsed.sr), PointAdd(parsed.t1, MulPoint(ct.C1, e))) {
		return false
	}
	if !PointEq(PointAdd(smG, MulPoint(pk, parsed.sr)), PointAdd(parsed.t2, MulPoint(ct.C2, e))) {
		return false
	}
	if !PointEq(PointAdd(smG, MulPoint(h, parsed.srho)), PointAdd(parsed.t3, MulPoint(pc, e))) {
		return false
	}
	return true
}

// BalanceLinkProve is the holder-side variant used when the prover does not
// know the encryption randomness of its balance ciphertext (balances are
// homomorphic sums) but does know its secret key:
//
//	Pk = sk*G, B2 = b*G + sk*B1, PC = b*G + rho*H_pk
//
// Witnesses are (b, sk, rho).
func BalanceLinkProve(pk Point, sk Scalar, balance uint64, ct ElGamalCiphertext, pc Point, rho Scalar, txContextID, seed []byte) ([]byte, error) {
	h, err := DeriveH(pk)
	if err != nil {
		return nil, err
	}
	rng, err := newNonceRng(balanceLinkTag, seed)
	if err != nil {
		return nil, err
	}
	kb, err := rng.next()
	if err != nil {
		return nil, err
	}
	ks, err := rng.next()
	if err != nil {
		return nil, err
	}
	krho, err := rng.next()
	if err != nil {
		return nil, err
	}

	kbG := MulBase(kb)
	t1 := MulBase(ks)
	t2 := PointAdd(kbG, MulPoint(ct.C1, ks))
	t3 := PointAdd(kbG, MulPoint(h, krho))

	tr, err := NewTranscript(balanceLinkTag, txContextID)
	if err != nil {
		return nil, err
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("b1", ct.C1)
	_ = tr.AppendPoint("b2", ct.C2)
	_ = tr.AppendPoint("pc", pc)
	_ = tr.AppendPoint("t1", t1)
	_ = tr.AppendPoint("t2", t2)
	_ = tr.AppendPoint("t3", t3)
	e := tr.ChallengeScalar(challengeSigma)

	b := ScalarFromUint64(balance)
	sb := ScalarAdd(kb, ScalarMul(e, b))
	ss := ScalarAdd(ks, ScalarMul(e, sk))
	srho := ScalarAdd(krho, ScalarMul(e, rho))
	return concatBytes(t1.Bytes(), t2.Bytes(), t3.Bytes(), sb.Bytes(), ss.Bytes(), srho.Bytes()), nil
}

// BalanceLinkVerify checks
//
//	s_sk*G == T1 + e*Pk
//	s_b*G + s_sk*B1 == T2 + e*B2
//	s_b*G + s_rho*H_pk == T3 + e*PC
func BalanceLinkVerify(pk Point, ct ElGamalCiphertext, pc Point, txContextID, proof []byte) bool {
	parsed, ok := parseLinkProof(proof)
	if !ok {
		return false
	}
	h, err := DeriveH(pk)
	if err != nil {
		return false
	}

	tr, err := NewTranscript(balanceLinkTag, txContextID)
	if err != nil {
		return false
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("b1", ct.C1)
	_ = tr.AppendPoint("b2", ct.C2)
	_ = tr.AppendPoint("pc", pc)
	_ = tr.AppendPoint("t1", parsed.t1)
	_ = tr.AppendPoint("t2", parsed.t2)
	_ = tr.AppendPoint("t3", parsed.t3)
	e := tr.ChallengeScalar(challengeSigma)

	sbG := MulBase(parsed.sm)
	if !PointEq(MulBase(parsed.sr), PointAdd(parsed.t1, MulPoint(pk, e))) {
		return false
	}
	if !PointEq(PointAdd(sbG, MulPoint(ct.C1, parsed.sr)), PointAdd(parsed.t2, MulPoint(ct.C2, e))) {
		return false
	}
	if !PointEq(PointAdd(sbG, MulPoint(h, parsed.srho)), PointAdd(parsed.t3, MulPoint(pc, e))) {
		return false
	}
	return true
}

type linkProof struct {
	t1, t2, t3   Point
	sm, sr, srho Scalar
}

func parseLinkProof(proof []byte) (linkProof, bool) {
	if len(proof) != LinkProofSize {
		return linkProof{}, false
	}
	var p linkProof
	var err error
	if p.t1, err = PointFromBytes(proof[0:PointBytes]); err != nil {
		return linkProof{}, false
	}
	if p.t2, err = PointFromBytes(proof[PointBytes : 2*PointBytes]); err != nil {
		return linkProof{}, false
	}
	if p.t3, err = PointFromBytes(proof[2*PointBytes : 3*PointBytes]); err != nil {
		return linkProof{}, false
	}
	off := 3 * PointBytes
	if p.sm, err = ScalarFromBytes(proof[off : off+ScalarBytes]); err != nil {
		return linkProof{}, false
	}
	if p.sr, err = ScalarFromBytes(proof[off+ScalarBytes : off+2*ScalarBytes]); err != nil {
		return linkProof{}, false
	}
	if p.srho, err = ScalarFromBytes(proof[off+2*ScalarBytes:]); err != nil {
		return linkProof{}, false
	}
	return p, true
}
