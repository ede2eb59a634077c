package mptcrypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const hGenTag = "MPT/H/v1"

// hashToPoint maps tagged bytes to a curve point by try-and-increment: the
// digest of (tag || data || counter) is taken as a candidate x-coordinate and
// decompressed with even Y. The even-Y convention is fixed and versioned by
// the tag.
func hashToPoint(tag string, data []byte) (Point, error) {
	for ctr := 0; ctr < 256; ctr++ {
		h := sha256.New()
		h.Write([]byte(tag))
		h.Write(data)
		h.Write([]byte{byte(ctr)})
		digest := h.Sum(nil)

		var x secp256k1.FieldVal
		if x.SetByteSlice(digest) {
			continue
		}
		var y secp256k1.FieldVal
		if !secp256k1.DecompressY(&x, false, &y) {
			continue
		}
		var p Point
		p.v.X.Set(&x)
		p.v.Y.Set(y.Normalize())
		p.v.Z.SetInt(1)
		return p, nil
	}
	return Point{}, fmt.Errorf("hashToPoint: counter exhausted for tag %q", tag)
}

// DeriveH maps a recipient public key to the secondary generator used by
// Pedersen commitments. Binding H to Pk keeps a prover from choosing an H
// with a known discrete log relative to G.
func DeriveH(pk Point) (Point, error) {
	if pk.IsInfinity() {
		return Point{}, fmt.Errorf("hgen: identity public key")
	}
	return hashToPoint(hGenTag, pk.Bytes())
}
