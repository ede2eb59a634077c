package mptcrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"hash"
)

func updateLenBytes(h hash.Hash, b []byte) {
	h.Write(u32be(uint32(len(b))))
	h.Write(b)
}

// HashToScalar maps domain-separated input bytes to a non-zero scalar.
// HMAC-SHA256 keyed by the domain tag over length-framed messages; the
// trailing counter byte is bumped in the (negligible) case the digest
// reduces to zero.
func HashToScalar(domainTag string, msgs ...[]byte) (Scalar, error) {
	for ctr := 0; ctr < 256; ctr++ {
		mac := hmac.New(sha256.New, []byte(domainTag))
		for _, m := range msgs {
			if m == nil {
				return Scalar{}, fmt.Errorf("hashToScalar: nil msg")
			}
			updateLenBytes(mac, m)
		}
		mac.Write([]byte{byte(ctr)})
		var d [ScalarBytes]byte
		copy(d[:], mac.Sum(nil))
		s := scalarReduce(d)
		if !s.IsZero() {
			return s, nil
		}
	}
	return Scalar{}, fmt.Errorf("hashToScalar: counter exhausted")
}
