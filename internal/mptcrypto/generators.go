package mptcrypto

import "sync"

// The range proof commits against two vectors of 64 generators plus a single
// inner-product generator U, all derived by hash-to-curve and independent of
// any recipient key. Process-wide immutables after first use.
const (
	rangeBits = 64

	bpGTagPrefix = "MPT/BP/G/"
	bpHTagPrefix = "MPT/BP/H/"
	bpUTag       = "MPT/BP/U/v1"
)

var (
	bpOnce sync.Once
	bpGVec []Point
	bpHVec []Point
	bpU    Point
)

func initBPGenerators() {
	bpGVec = make([]Point, rangeBits)
	bpHVec = make([]Point, rangeBits)
	for i := 0; i < rangeBits; i++ {
		g, err := hashToPoint(bpGTagPrefix, []byte{byte(i)})
		if err != nil {
			panic(err)
		}
		h, err := hashToPoint(bpHTagPrefix, []byte{byte(i)})
		if err != nil {
			panic(err)
		}
		bpGVec[i] = g
		bpHVec[i] = h
	}
	u, err := hashToPoint(bpUTag, nil)
	if err != nil {
		panic(err)
	}
	bpU = u
}

func bpGenerators() ([]Point, []Point, Point) {
	bpOnce.Do(initBPGenerators)
	return bpGVec, bpHVec, bpU
}
