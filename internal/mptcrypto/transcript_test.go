package mptcrypto

import (
	"bytes"
	"testing"
)

func TestTranscript_Deterministic(t *testing.T) {
	ctx := repeatByte(0x03, ContextIDBytes)
	build := func() Scalar {
		tr, err := NewTranscript("MPT/EQ-PT/v1", ctx)
		if err != nil {
			t.Fatalf("new transcript: %v", err)
		}
		_ = tr.AppendMessage("a", []byte{1, 2, 3})
		_ = tr.AppendUint64("m", 42)
		return tr.ChallengeScalar(challengeSigma)
	}
	if !ScalarEq(build(), build()) {
		t.Fatalf("identical transcripts produced different challenges")
	}
}

func TestTranscript_OrderAndLabelsMatter(t *testing.T) {
	ctx := repeatByte(0x03, ContextIDBytes)
	ch := func(f func(tr *Transcript)) Scalar {
		tr, err := NewTranscript("MPT/EQ-PT/v1", ctx)
		if err != nil {
			t.Fatalf("new transcript: %v", err)
		}
		f(tr)
		return tr.ChallengeScalar(challengeSigma)
	}
	base := ch(func(tr *Transcript) {
		_ = tr.AppendMessage("a", []byte{1})
		_ = tr.AppendMessage("b", []byte{2})
	})
	swapped := ch(func(tr *Transcript) {
		_ = tr.AppendMessage("b", []byte{2})
		_ = tr.AppendMessage("a", []byte{1})
	})
	relabeled := ch(func(tr *Transcript) {
		_ = tr.AppendMessage("a", []byte{1})
		_ = tr.AppendMessage("c", []byte{2})
	})
	if ScalarEq(base, swapped) {
		t.Fatalf("absorption order did not change the challenge")
	}
	if ScalarEq(base, relabeled) {
		t.Fatalf("label did not change the challenge")
	}
}

func TestTranscript_DomainAndContextSeparation(t *testing.T) {
	ctxA := repeatByte(0x03, ContextIDBytes)
	ctxB := repeatByte(0x04, ContextIDBytes)

	trA, err := NewTranscript("MPT/EQ-PT/v1", ctxA)
	if err != nil {
		t.Fatalf("new transcript: %v", err)
	}
	trB, err := NewTranscript("MPT/EQ-PT/v1", ctxB)
	if err != nil {
		t.Fatalf("new transcript: %v", err)
	}
	trC, err := NewTranscript("MPT/LINK/v1", ctxA)
	if err != nil {
		t.Fatalf("new transcript: %v", err)
	}
	a := trA.ChallengeScalar(challengeSigma)
	b := trB.ChallengeScalar(challengeSigma)
	c := trC.ChallengeScalar(challengeSigma)
	if ScalarEq(a, b) {
		t.Fatalf("context id did not separate challenges")
	}
	if ScalarEq(a, c) {
		t.Fatalf("domain tag did not separate challenges")
	}
}

func TestTranscript_DistinctChallengeTags(t *testing.T) {
	tr, err := NewTranscript("MPT/RANGE/v1", repeatByte(0x01, ContextIDBytes))
	if err != nil {
		t.Fatalf("new transcript: %v", err)
	}
	y := tr.ChallengeScalar(challengeY)
	z := tr.ChallengeScalar(challengeZ)
	if ScalarEq(y, z) {
		t.Fatalf("different tag bytes produced the same challenge")
	}
}

func TestTranscript_RejectsBadContext(t *testing.T) {
	if _, err := NewTranscript("MPT/EQ-PT/v1", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short context id")
	}
}

func TestScalarEncoding(t *testing.T) {
	s := ScalarFromUint64(0x0102030405060708)
	b := s.Bytes()
	if len(b) != ScalarBytes {
		t.Fatalf("scalar encoding: got %d bytes", len(b))
	}
	if !bytes.Equal(b[24:], []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("scalar encoding is not big-endian: %x", b)
	}
	back, err := ScalarFromBytes(b)
	if err != nil {
		t.Fatalf("scalar round trip: %v", err)
	}
	if !ScalarEq(s, back) {
		t.Fatalf("scalar round trip mismatch")
	}
}

func TestPointEncoding(t *testing.T) {
	p := MulBase(ScalarFromUint64(7))
	b := p.Bytes()
	if len(b) != PointBytes {
		t.Fatalf("point encoding: got %d bytes", len(b))
	}
	if b[0] != 0x02 && b[0] != 0x03 {
		t.Fatalf("point encoding prefix: %#x", b[0])
	}
	back, err := PointFromBytes(b)
	if err != nil {
		t.Fatalf("point round trip: %v", err)
	}
	if !PointEq(p, back) {
		t.Fatalf("point round trip mismatch")
	}

	bad := append([]byte(nil), b...)
	bad[1] ^= 0xff
	if _, err := PointFromBytes(bad); err == nil {
		// A flipped x-coordinate usually leaves the curve; if this one
		// happens to decode it must at least differ from the original.
		q, _ := PointFromBytes(bad)
		if PointEq(p, q) {
			t.Fatalf("corrupted encoding decoded to the same point")
		}
	}

	if _, err := PointFromBytes(make([]byte, PointBytes)); err == nil {
		t.Fatalf("expected error for all-zero encoding")
	}
}

func TestPointArithmetic(t *testing.T) {
	a := MulBase(ScalarFromUint64(11))
	b := MulBase(ScalarFromUint64(31))
	if !PointEq(PointAdd(a, b), MulBase(ScalarFromUint64(42))) {
		t.Fatalf("11G + 31G != 42G")
	}
	if !PointEq(PointSub(b, a), MulBase(ScalarFromUint64(20))) {
		t.Fatalf("31G - 11G != 20G")
	}
	if !PointSub(a, a).IsInfinity() {
		t.Fatalf("P - P is not the identity")
	}
	got, err := MultiScalarMul(
		[]Scalar{ScalarFromUint64(2), ScalarFromUint64(3)},
		[]Point{a, b},
	)
	if err != nil {
		t.Fatalf("multiscalarmul: %v", err)
	}
	if !PointEq(got, MulBase(ScalarFromUint64(2*11+3*31))) {
		t.Fatalf("multi-scalar multiplication mismatch")
	}
	if _, err := MultiScalarMul([]Scalar{ScalarOne()}, []Point{a}); err == nil {
		t.Fatalf("expected error for single-term multi-scalar multiplication")
	}
}
