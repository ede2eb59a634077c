package mptcrypto

import (
	"fmt"
	"sync"
)

// Baby-step giant-step discrete-log recovery for decryption. The plaintext
// space is nominally [0, 2^64) but a full online search at that size is
// infeasible, so the search ceiling is explicit: DefaultDecryptBits covers
// typical ledger amounts and callers with larger balances pass a ceiling up
// to MaxDecryptBits. Exhausting the window is a consistency failure, not a
// malformed ciphertext.
const (
	babyBits           = 16
	DefaultDecryptBits = 32
	MaxDecryptBits     = 48
)

var (
	babyOnce  sync.Once
	babyTable map[[8]byte]uint32
	babyStep  Point
)

func truncX(p Point) [8]byte {
	v := p.v
	v.ToAffine()
	var full [32]byte
	v.X.PutBytesUnchecked(full[:])
	var k [8]byte
	copy(k[:], full[:8])
	return k
}

// initBabyTable precomputes j*G for j in [1, 2^babyBits), keyed by the
// truncated affine x-coordinate. Built once per process and read-only after.
func initBabyTable() {
	babyTable = make(map[[8]byte]uint32, 1<<babyBits)
	g := MulBase(ScalarOne())
	cur := g
	for j := uint32(1); j < 1<<babyBits; j++ {
		babyTable[truncX(cur)] = j
		cur = PointAdd(cur, g)
	}
	babyStep = MulBase(ScalarFromUint64(1 << babyBits))
}

// ElGamalDecryptWindow recovers the amount from C2 - sk*C1 by BSGS over
// [0, 2^bits). Truncated-key collisions are resolved by recomputing the
// candidate against the full point.
func ElGamalDecryptWindow(sk Scalar, ct ElGamalCiphertext, bits uint) (uint64, error) {
	if bits < babyBits || bits > MaxDecryptBits {
		return 0, fmt.Errorf("elgamal: decrypt window must be in [%d, %d] bits", babyBits, MaxDecryptBits)
	}
	babyOnce.Do(initBabyTable)

	m := PointSub(ct.C2, MulPoint(ct.C1, sk))
	negStep := PointNeg(babyStep)

	cur := m
	giants := uint64(1) << (bits - babyBits)
	for g := uint64(0); g < giants; g++ {
		if cur.IsInfinity() {
			return g << babyBits, nil
		}
		if j, ok := babyTable[truncX(cur)]; ok {
			cand := g<<babyBits + uint64(j)
			if PointEq(MulBase(ScalarFromUint64(cand)), m) {
				return cand, nil
			}
		}
		cur = PointAdd(cur, negStep)
	}
	return 0, fmt.Errorf("elgamal: plaintext outside decryption window")
}
