package mptcrypto

import "fmt"

const (
	rangeTag = "MPT/RANGE/v1"

	ipaRounds = 6 // log2(rangeBits)

	// RangeProofSize is the fixed 64-bit proof layout:
	// A || S || T1 || T2 || taux || mu || tx || (L_i,R_i)x6 || a || b
	// = 16 points and 5 scalars.
	RangeProofSize = (4+2*ipaRounds)*PointBytes + 5*ScalarBytes
)

// BulletproofCommit computes the Pedersen commitment C = v*G + gamma*H_pk the
// range proof is stated against.
func BulletproofCommit(value uint64, gamma Scalar, pk Point) (Point, error) {
	return PedersenCommit(value, gamma, pk)
}

// vector helpers, all mod n

func powersOf(x Scalar, n int) []Scalar {
	out := make([]Scalar, n)
	out[0] = ScalarOne()
	for i := 1; i < n; i++ {
		out[i] = ScalarMul(out[i-1], x)
	}
	return out
}

func innerProduct(a, b []Scalar) Scalar {
	acc := ScalarZero()
	for i := range a {
		acc = ScalarAdd(acc, ScalarMul(a[i], b[i]))
	}
	return acc
}

func vectorSum(v []Scalar) Scalar {
	acc := ScalarZero()
	for i := range v {
		acc = ScalarAdd(acc, v[i])
	}
	return acc
}

// delta(y, z) = (z - z^2)*<1^n, y^n> - z^3*<1^n, 2^n>
func deltaYZ(yn, twon []Scalar, z Scalar) Scalar {
	z2 := ScalarMul(z, z)
	z3 := ScalarMul(z2, z)
	t := ScalarMul(ScalarSub(z, z2), vectorSum(yn))
	return ScalarSub(t, ScalarMul(z3, vectorSum(twon)))
}

// BulletproofProve produces the 688-byte non-interactive proof that the value
// committed in C = v*G + gamma*H_pk lies in [0, 2^64). The seed feeds the
// deterministic blinding expander, so a fixed (inputs, seed) pair yields a
// byte-identical proof.
func BulletproofProve(value uint64, gamma Scalar, pk Point, txContextID, seed []byte) ([]byte, error) {
	h, err := DeriveH(pk)
	if err != nil {
		return nil, err
	}
	c, err := pedersenCommitH(value, gamma, h)
	if err != nil {
		return nil, err
	}
	gVec, hVec, u := bpGenerators()
	rng, err := newNonceRng(rangeTag, seed)
	if err != nil {
		return nil, err
	}

	// Bit vectors, little-endian: aL holds v's bits, aR = aL - 1^n.
	one := ScalarOne()
	aL := make([]Scalar, rangeBits)
	aR := make([]Scalar, rangeBits)
	for i := 0; i < rangeBits; i++ {
		if value>>uint(i)&1 == 1 {
			aL[i] = one
		}
		aR[i] = ScalarSub(aL[i], one)
	}

	alpha, err := rng.next()
	if err != nil {
		return nil, err
	}
	a := MulPoint(h, alpha)
	for i := 0; i < rangeBits; i++ {
		if value>>uint(i)&1 == 1 {
			a = PointAdd(a, gVec[i])
		} else {
			a = PointSub(a, hVec[i])
		}
	}

	sL, err := rng.nextVec(rangeBits)
	if err != nil {
		return nil, err
	}
	sR, err := rng.nextVec(rangeBits)
	if err != nil {
		return nil, err
	}
	rho, err := rng.next()
	if err != nil {
		return nil, err
	}
	s := MulPoint(h, rho)
	for i := 0; i < rangeBits; i++ {
		s = PointAdd(s, MulPoint(gVec[i], sL[i]))
		s = PointAdd(s, MulPoint(hVec[i], sR[i]))
	}

	tr, err := NewTranscript(rangeTag, txContextID)
	if err != nil {
		return nil, err
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("c", c)
	_ = tr.AppendPoint("a", a)
	_ = tr.AppendPoint("s", s)
	y := tr.ChallengeScalar(challengeY)
	z := tr.ChallengeScalar(challengeZ)

	yn := powersOf(y, rangeBits)
	twon := powersOf(ScalarAdd(one, one), rangeBits)
	z2 := ScalarMul(z, z)

	// l(X) = (aL - z*1^n) + sL*X
	// r(X) = y^n o (aR + z*1^n + sR*X) + z^2*2^n
	l0 := make([]Scalar, rangeBits)
	l1 := sL
	r0 := make([]Scalar, rangeBits)
	r1 := make([]Scalar, rangeBits)
	for i := 0; i < rangeBits; i++ {
		l0[i] = ScalarSub(aL[i], z)
		r0[i] = ScalarAdd(ScalarMul(yn[i], ScalarAdd(aR[i], z)), ScalarMul(z2, twon[i]))
		r1[i] = ScalarMul(yn[i], sR[i])
	}

	t0 := innerProduct(l0, r0)
	t1 := ScalarAdd(innerProduct(l0, r1), innerProduct(l1, r0))
	t2 := innerProduct(l1, r1)

	tau1, err := rng.next()
	if err != nil {
		return nil, err
	}
	tau2, err := rng.next()
	if err != nil {
		return nil, err
	}
	bigT1 := PointAdd(MulBase(t1), MulPoint(h, tau1))
	bigT2 := PointAdd(MulBase(t2), MulPoint(h, tau2))

	_ = tr.AppendPoint("t1", bigT1)
	_ = tr.AppendPoint("t2", bigT2)
	x := tr.ChallengeScalar(challengeX)
	x2 := ScalarMul(x, x)

	lVec := make([]Scalar, rangeBits)
	rVec := make([]Scalar, rangeBits)
	for i := 0; i < rangeBits; i++ {
		lVec[i] = ScalarAdd(l0[i], ScalarMul(l1[i], x))
		rVec[i] = ScalarAdd(r0[i], ScalarMul(r1[i], x))
	}
	tx := ScalarAdd(t0, ScalarAdd(ScalarMul(t1, x), ScalarMul(t2, x2)))
	taux := ScalarAdd(ScalarMul(tau1, x), ScalarAdd(ScalarMul(tau2, x2), ScalarMul(z2, gamma)))
	mu := ScalarAdd(alpha, ScalarMul(rho, x))

	_ = tr.AppendMessage("taux", taux.Bytes())
	_ = tr.AppendMessage("mu", mu.Bytes())
	_ = tr.AppendMessage("tx", tx.Bytes())
	w := tr.ChallengeScalar(challengeW)
	wU := MulPoint(u, w)

	// Inner product argument over (G_i, H'_i) with H'_i = y^-i * H_i.
	yInv, err := ScalarInv(y)
	if err != nil {
		return nil, err
	}
	yInvPow := powersOf(yInv, rangeBits)
	gs := append([]Point(nil), gVec...)
	hs := make([]Point, rangeBits)
	for i := 0; i < rangeBits; i++ {
		hs[i] = MulPoint(hVec[i], yInvPow[i])
	}

	av := lVec
	bv := rVec
	lOut := make([]Point, 0, ipaRounds)
	rOut := make([]Point, 0, ipaRounds)
	for len(av) > 1 {
		half := len(av) / 2
		cl := innerProduct(av[:half], bv[half:])
		cr := innerProduct(av[half:], bv[:half])

		bigL := MulPoint(wU, cl)
		bigR := MulPoint(wU, cr)
		for i := 0; i < half; i++ {
			bigL = PointAdd(bigL, MulPoint(gs[half+i], av[i]))
			bigL = PointAdd(bigL, MulPoint(hs[i], bv[half+i]))
			bigR = PointAdd(bigR, MulPoint(gs[i], av[half+i]))
			bigR = PointAdd(bigR, MulPoint(hs[half+i], bv[i]))
		}
		lOut = append(lOut, bigL)
		rOut = append(rOut, bigR)

		_ = tr.AppendPoint("ipl", bigL)
		_ = tr.AppendPoint("ipr", bigR)
		uc := tr.ChallengeScalar(challengeIPA)
		ucInv, err := ScalarInv(uc)
		if err != nil {
			return nil, err
		}

		nav := make([]Scalar, half)
		nbv := make([]Scalar, half)
		ngs := make([]Point, half)
		nhs := make([]Point, half)
		for i := 0; i < half; i++ {
			nav[i] = ScalarAdd(ScalarMul(av[i], uc), ScalarMul(av[half+i], ucInv))
			nbv[i] = ScalarAdd(ScalarMul(bv[i], ucInv), ScalarMul(bv[half+i], uc))
			ngs[i] = PointAdd(MulPoint(gs[i], ucInv), MulPoint(gs[half+i], uc))
			nhs[i] = PointAdd(MulPoint(hs[i], uc), MulPoint(hs[half+i], ucInv))
		}
		av, bv, gs, hs = nav, nbv, ngs, nhs
	}

	out := make([]byte, 0, RangeProofSize)
	out = append(out, a.Bytes()...)
	out = append(out, s.Bytes()...)
	out = append(out, bigT1.Bytes()...)
	out = append(out, bigT2.Bytes()...)
	out = append(out, taux.Bytes()...)
	out = append(out, mu.Bytes()...)
	out = append(out, tx.Bytes()...)
	for i := 0; i < ipaRounds; i++ {
		out = append(out, lOut[i].Bytes()...)
		out = append(out, rOut[i].Bytes()...)
	}
	out = append(out, av[0].Bytes()...)
	out = append(out, bv[0].Bytes()...)
	return out, nil
}

// BulletproofProveTo appends the proof to dst, failing without writing when
// the remaining capacity up to maxLen cannot hold it.
func BulletproofProveTo(dst []byte, maxLen int, value uint64, gamma Scalar, pk Point, txContextID, seed []byte) ([]byte, error) {
	if len(dst)+RangeProofSize > maxLen {
		return dst, fmt.Errorf("bulletproof: need %d bytes, have %d", RangeProofSize, maxLen-len(dst))
	}
	proof, err := BulletproofProve(value, gamma, pk, txContextID, seed)
	if err != nil {
		return dst, err
	}
	return append(dst, proof...), nil
}

// BulletproofVerify checks a 688-byte proof against the commitment c under
// the recipient key pk. It recomputes every challenge from the transcript,
// checks the Pedersen relation
//
//	tx*G + taux*H == z^2*C + delta(y,z)*G + x*T1 + x^2*T2
//
// and the folded inner-product identity as a single multi-exponentiation.
func BulletproofVerify(proof []byte, c Point, pk Point, txContextID []byte) bool {
	if len(proof) != RangeProofSize {
		return false
	}
	h, err := DeriveH(pk)
	if err != nil {
		return false
	}
	gVec, hVec, u := bpGenerators()

	var (
		a, s, bigT1, bigT2 Point
		lr                 [2 * ipaRounds]Point
		taux, mu, tx       Scalar
		fa, fb             Scalar
	)
	off := 0
	readPoint := func(dst *Point) bool {
		p, err := PointFromBytes(proof[off : off+PointBytes])
		if err != nil {
			return false
		}
		*dst = p
		off += PointBytes
		return true
	}
	readScalar := func(dst *Scalar) bool {
		v, err := ScalarFromBytes(proof[off : off+ScalarBytes])
		if err != nil {
			return false
		}
		*dst = v
		off += ScalarBytes
		return true
	}
	if !readPoint(&a) || !readPoint(&s) || !readPoint(&bigT1) || !readPoint(&bigT2) {
		return false
	}
	if !readScalar(&taux) || !readScalar(&mu) || !readScalar(&tx) {
		return false
	}
	for i := 0; i < 2*ipaRounds; i++ {
		if !readPoint(&lr[i]) {
			return false
		}
	}
	if !readScalar(&fa) || !readScalar(&fb) {
		return false
	}

	tr, err := NewTranscript(rangeTag, txContextID)
	if err != nil {
		return false
	}
	_ = tr.AppendPoint("pk", pk)
	_ = tr.AppendPoint("c", c)
	_ = tr.AppendPoint("a", a)
	_ = tr.AppendPoint("s", s)
	y := tr.ChallengeScalar(challengeY)
	z := tr.ChallengeScalar(challengeZ)
	_ = tr.AppendPoint("t1", bigT1)
	_ = tr.AppendPoint("t2", bigT2)
	x := tr.ChallengeScalar(challengeX)
	_ = tr.AppendMessage("taux", taux.Bytes())
	_ = tr.AppendMessage("mu", mu.Bytes())
	_ = tr.AppendMessage("tx", tx.Bytes())
	w := tr.ChallengeScalar(challengeW)

	uc := make([]Scalar, ipaRounds)
	ucInv := make([]Scalar, ipaRounds)
	for j := 0; j < ipaRounds; j++ {
		_ = tr.AppendPoint("ipl", lr[2*j])
		_ = tr.AppendPoint("ipr", lr[2*j+1])
		uc[j] = tr.ChallengeScalar(challengeIPA)
		inv, err := ScalarInv(uc[j])
		if err != nil {
			return false
		}
		ucInv[j] = inv
	}

	one := ScalarOne()
	yn := powersOf(y, rangeBits)
	twon := powersOf(ScalarAdd(one, one), rangeBits)
	z2 := ScalarMul(z, z)
	x2 := ScalarMul(x, x)

	// Pedersen relation on t(x).
	lhs := PointAdd(MulBase(tx), MulPoint(h, taux))
	rhs := PointAdd(MulPoint(c, z2), MulBase(deltaYZ(yn, twon, z)))
	rhs = PointAdd(rhs, MulPoint(bigT1, x))
	rhs = PointAdd(rhs, MulPoint(bigT2, x2))
	if !PointEq(lhs, rhs) {
		return false
	}

	// Folded inner-product identity. With H'_i = y^-i*H_i:
	//
	//	sum(a*si*G_i) + sum(b*si^-1*H'_i) + (a*b)*wU
	//	  == A + x*S - z*sum(G_i) + sum((z*y^i + z^2*2^i)*H'_i)
	//	     - mu*H + tx*wU + sum(uj^2*L_j + uj^-2*R_j)
	yInv, err := ScalarInv(y)
	if err != nil {
		return false
	}
	yInvPow := powersOf(yInv, rangeBits)

	si := make([]Scalar, rangeBits)
	siInv := make([]Scalar, rangeBits)
	for i := 0; i < rangeBits; i++ {
		prod := one
		for j := 0; j < ipaRounds; j++ {
			if i>>(ipaRounds-1-j)&1 == 1 {
				prod = ScalarMul(prod, uc[j])
			} else {
				prod = ScalarMul(prod, ucInv[j])
			}
		}
		si[i] = prod
		inv, err := ScalarInv(prod)
		if err != nil {
			return false
		}
		siInv[i] = inv
	}

	wU := MulPoint(u, w)
	left := MulPoint(wU, ScalarMul(fa, fb))
	for i := 0; i < rangeBits; i++ {
		left = PointAdd(left, MulPoint(gVec[i], ScalarMul(fa, si[i])))
		hPrimeScalar := ScalarMul(ScalarMul(fb, siInv[i]), yInvPow[i])
		left = PointAdd(left, MulPoint(hVec[i], hPrimeScalar))
	}

	right := PointAdd(a, MulPoint(s, x))
	negZ := ScalarNeg(z)
	for i := 0; i < rangeBits; i++ {
		right = PointAdd(right, MulPoint(gVec[i], negZ))
		hCoeff := ScalarMul(ScalarAdd(ScalarMul(z, yn[i]), ScalarMul(z2, twon[i])), yInvPow[i])
		right = PointAdd(right, MulPoint(hVec[i], hCoeff))
	}
	right = PointAdd(right, MulPoint(h, ScalarNeg(mu)))
	right = PointAdd(right, MulPoint(wU, tx))
	for j := 0; j < ipaRounds; j++ {
		right = PointAdd(right, MulPoint(lr[2*j], ScalarMul(uc[j], uc[j])))
		right = PointAdd(right, MulPoint(lr[2*j+1], ScalarMul(ucInv[j], ucInv[j])))
	}

	return PointEq(left, right)
}
