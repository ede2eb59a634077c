package mptcrypto

import "fmt"

const samePlaintextTag = "MPT/EQ-MULTI/v1"

// SamePlaintextProofSize returns the proof size for n ciphertexts:
// (2n+1) points and (n+1) scalars.
func SamePlaintextProofSize(n int) int {
	return (2*n+1)*PointBytes + (n+1)*ScalarBytes
}

// SamePlaintextProveMulti proves that all n ciphertexts encrypt the same
// secret amount m, each under its own recipient key with its own randomness:
//
//	R_i = r_i*G  and  S_i = m*G + r_i*P_i   for every i
//
// Witnesses are m and the r_i. Per recipient the prover commits
// T1_i = k_ri*G and T2_i = k_m*G + k_ri*P_i with a single shared k_m, plus
// T_m = k_m*G; responses are s_ri = k_ri + e*r_i and s_m = k_m + e*m.
//
// Layout: T1_0 || T2_0 || ... || T1_{n-1} || T2_{n-1} || T_m ||
// s_r0 || ... || s_r{n-1} || s_m.
func SamePlaintextProveMulti(amount uint64, pks []Point, cts []ElGamalCiphertext, rs []Scalar, txContextID, seed []byte) ([]byte, error) {
	n := len(pks)
	if n < 2 {
		return nil, fmt.Errorf("same-plaintext: need at least 2 ciphertexts")
	}
	if len(cts) != n || len(rs) != n {
		return nil, fmt.Errorf("same-plaintext: mismatched input lengths")
	}
	rng, err := newNonceRng(samePlaintextTag, seed)
	if err != nil {
		return nil, err
	}
	km, err := rng.next()
	if err != nil {
		return nil, err
	}
	kr, err := rng.nextVec(n)
	if err != nil {
		return nil, err
	}

	kmG := MulBase(km)
	t1 := make([]Point, n)
	t2 := make([]Point, n)
	for i := 0; i < n; i++ {
		t1[i] = MulBase(kr[i])
		t2[i] = PointAdd(kmG, MulPoint(pks[i], kr[i]))
	}

	tr, err := NewTranscript(samePlaintextTag, txContextID)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		_ = tr.AppendPoint("pk", pks[i])
		_ = tr.AppendPoint("r", cts[i].C1)
		_ = tr.AppendPoint("s", cts[i].C2)
	}
	for i := 0; i < n; i++ {
		_ = tr.AppendPoint("t1", t1[i])
		_ = tr.AppendPoint("t2", t2[i])
	}
	_ = tr.AppendPoint("tm", kmG)
	e := tr.ChallengeScalar(challengeSigma)

	m := ScalarFromUint64(amount)
	out := make([]byte, 0, SamePlaintextProofSize(n))
	for i := 0; i < n; i++ {
		out = append(out, t1[i].Bytes()...)
		out = append(out, t2[i].Bytes()...)
	}
	out = append(out, kmG.Bytes()...)
	for i := 0; i < n; i++ {
		sri := ScalarAdd(kr[i], ScalarMul(e, rs[i]))
		out = append(out, sri.Bytes()...)
	}
	sm := ScalarAdd(km, ScalarMul(e, m))
	out = append(out, sm.Bytes()...)
	return out, nil
}

// SamePlaintextVerifyMulti checks, for every i,
//
//	s_ri*G == T1_i + e*R_i
//	s_m*G + s_ri*P_i == T2_i + e*S_i
//
// with the challenge recomputed over all keys, ciphertexts and commitments.
func SamePlaintextVerifyMulti(pks []Point, cts []ElGamalCiphertext, txContextID, proof []byte) bool {
	n := len(pks)
	if n < 2 || len(cts) != n {
		return false
	}
	if len(proof) != SamePlaintextProofSize(n) {
		return false
	}

	t1 := make([]Point, n)
	t2 := make([]Point, n)
	off := 0
	var err error
	for i := 0; i < n; i++ {
		if t1[i], err = PointFromBytes(proof[off : off+PointBytes]); err != nil {
			return false
		}
		off += PointBytes
		if t2[i], err = PointFromBytes(proof[off : off+PointBytes]); err != nil {
			return false
		}
		off += PointBytes
	}
	tm, err := PointFromBytes(proof[off : off+PointBytes])
	if err != nil {
		return false
	}
	off += PointBytes
	sr := make([]Scalar, n)
	for i := 0; i < n; i++ {
		if sr[i], err = ScalarFromBytes(proof[off : off+ScalarBytes]); err != nil {
			return false
		}
		off += ScalarBytes
	}
	sm, err := ScalarFromBytes(proof[off : off+ScalarBytes])
	if err != nil {
		return false
	}

	tr, err := NewTranscript(samePlaintextTag, txContextID)
	if err != nil {
		return false
	}
	for i := 0; i < n; i++ {
		_ = tr.AppendPoint("pk", pks[i])
		_ = tr.AppendPoint("r", cts[i].C1)
		_ = tr.AppendPoint("s", cts[i].C2)
	}
	for i := 0; i < n; i++ {
		_ = tr.AppendPoint("t1", t1[i])
		_ = tr.AppendPoint("t2", t2[i])
	}
	_ = tr.AppendPoint("tm", tm)
	e := tr.ChallengeScalar(challengeSigma)

	smG := MulBase(sm)
	for i := 0; i < n; i++ {
		if !PointEq(MulBase(sr[i]), PointAdd(t1[i], MulPoint(cts[i].C1, e))) {
			return false
		}
		lhs := PointAdd(smG, MulPoint(pks[i], sr[i]))
		rhs := PointAdd(t2[i], MulPoint(cts[i].C2, e))
		if !PointEq(lhs, rhs) {
			return false
		}
	}
	return true
}

// SamePlaintextProve is the two-recipient case; the proof is bit-compatible
// with SamePlaintextProveMulti at n=2 (261 bytes).
func SamePlaintextProve(amount uint64, pk1 Point, ct1 ElGamalCiphertext, r1 Scalar, pk2 Point, ct2 ElGamalCiphertext, r2 Scalar, txContextID, seed []byte) ([]byte, error) {
	return SamePlaintextProveMulti(amount,
		[]Point{pk1, pk2},
		[]ElGamalCiphertext{ct1, ct2},
		[]Scalar{r1, r2},
		txContextID, seed)
}

// SamePlaintextVerify verifies the two-recipient proof. On top of the four
// commitment-mirror equations it checks the cross equation
//
//	s_r1*P1 - s_r2*P2 == (T2_a - T2_b) + e*(S1 - S2)
//
// which ties the two T2 commitments to the same masked plaintext without
// referencing m.
func SamePlaintextVerify(pk1 Point, ct1 ElGamalCiphertext, pk2 Point, ct2 ElGamalCiphertext, txContextID, proof []byte) bool {
	pks := []Point{pk1, pk2}
	cts := []ElGamalCiphertext{ct1, ct2}
	if !SamePlaintextVerifyMulti(pks, cts, txContextID, proof) {
		return false
	}

	t2a, err := PointFromBytes(proof[PointBytes : 2*PointBytes])
	if err != nil {
		return false
	}
	t2b, err := PointFromBytes(proof[3*PointBytes : 4*PointBytes])
	if err != nil {
		return false
	}
	sr1, err := ScalarFromBytes(proof[5*PointBytes : 5*PointBytes+ScalarBytes])
	if err != nil {
		return false
	}
	sr2, err := ScalarFromBytes(proof[5*PointBytes+ScalarBytes : 5*PointBytes+2*ScalarBytes])
	if err != nil {
		return false
	}

	tr, err := NewTranscript(samePlaintextTag, txContextID)
	if err != nil {
		return false
	}
	for i := 0; i < 2; i++ {
		_ = tr.AppendPoint("pk", pks[i])
		_ = tr.AppendPoint("r", cts[i].C1)
		_ = tr.AppendPoint("s", cts[i].C2)
	}
	t1a, _ := PointFromBytes(proof[0:PointBytes])
	t1b, _ := PointFromBytes(proof[2*PointBytes : 3*PointBytes])
	tm, _ := PointFromBytes(proof[4*PointBytes : 5*PointBytes])
	_ = tr.AppendPoint("t1", t1a)
	_ = tr.AppendPoint("t2", t2a)
	_ = tr.AppendPoint("t1", t1b)
	_ = tr.AppendPoint("t2", t2b)
	_ = tr.AppendPoint("tm", tm)
	e := tr.ChallengeScalar(challengeSigma)

	lhs := PointSub(MulPoint(pk1, sr1), MulPoint(pk2, sr2))
	rhs := PointAdd(PointSub(t2a, t2b), MulPoint(PointSub(ct1.C2, ct2.C2), e))
	return PointEq(lhs, rhs)
}
