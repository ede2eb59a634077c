package mptcrypto

import "encoding/binary"

// Fixed wire sizes shared across the package. Multi-byte integers are
// big-endian everywhere on the wire.
const (
	AccountIDBytes  = 20
	IssuanceIDBytes = 24
	ContextIDBytes  = 32
	AmountBytes     = 8
	SeedBytes       = 32
)

func u32be(x uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, x)
	return b
}

func u64be(x uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, x)
	return b
}

func concatBytes(chunks ...[]byte) []byte {
	var n int
	for _, c := range chunks {
		n += len(c)
	}
	out := make([]byte, 0, n)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
