package mptcrypto

import (
	"bytes"
	"fmt"
)

// ElGamalCiphertext is the pair (C1, C2) with the plaintext in the exponent:
//
//	Enc(Pk, m; r) = (r*G, m*G + r*Pk)
//
// which makes the scheme additively homomorphic over amounts.
type ElGamalCiphertext struct {
	C1 Point
	C2 Point
}

// Bytes returns C1 || C2 (66 bytes).
func (ct ElGamalCiphertext) Bytes() []byte {
	return concatBytes(ct.C1.Bytes(), ct.C2.Bytes())
}

func ElGamalCiphertextFromBytes(b []byte) (ElGamalCiphertext, error) {
	if len(b) != 2*PointBytes {
		return ElGamalCiphertext{}, fmt.Errorf("elgamal: expected %d bytes", 2*PointBytes)
	}
	c1, err := PointFromBytes(b[:PointBytes])
	if err != nil {
		return ElGamalCiphertext{}, err
	}
	c2, err := PointFromBytes(b[PointBytes:])
	if err != nil {
		return ElGamalCiphertext{}, err
	}
	return ElGamalCiphertext{C1: c1, C2: c2}, nil
}

// ElGamalKeyGen derives a keypair from caller-supplied entropy. The entropy
// is interpreted as the secret scalar directly and rejected when it parses to
// zero or is not below the group order.
func ElGamalKeyGen(entropy []byte) (Scalar, Point, error) {
	sk, err := ScalarFromBytes(entropy)
	if err != nil {
		return Scalar{}, Point{}, fmt.Errorf("keygen: %w", err)
	}
	if sk.IsZero() {
		return Scalar{}, Point{}, fmt.Errorf("keygen: zero secret key")
	}
	return sk, MulBase(sk), nil
}

func ElGamalEncrypt(pk Point, amount uint64, r Scalar) (ElGamalCiphertext, error) {
	if pk.IsInfinity() {
		return ElGamalCiphertext{}, fmt.Errorf("elgamal: identity public key")
	}
	if r.IsZero() {
		// Zero randomness is valid mathematically but leaks the plaintext.
		return ElGamalCiphertext{}, fmt.Errorf("elgamal: r must be non-zero")
	}
	c1 := MulBase(r)
	c2 := PointAdd(MulBase(ScalarFromUint64(amount)), MulPoint(pk, r))
	return ElGamalCiphertext{C1: c1, C2: c2}, nil
}

// ElGamalDecrypt recovers the amount with the default search ceiling of
// DefaultDecryptBits. See ElGamalDecryptWindow for the ceiling trade-off.
func ElGamalDecrypt(sk Scalar, ct ElGamalCiphertext) (uint64, error) {
	return ElGamalDecryptWindow(sk, ct, DefaultDecryptBits)
}

func ElGamalAdd(a, b ElGamalCiphertext) ElGamalCiphertext {
	return ElGamalCiphertext{
		C1: PointAdd(a.C1, b.C1),
		C2: PointAdd(a.C2, b.C2),
	}
}

func ElGamalSub(a, b ElGamalCiphertext) ElGamalCiphertext {
	return ElGamalCiphertext{
		C1: PointSub(a.C1, b.C1),
		C2: PointSub(a.C2, b.C2),
	}
}

// ElGamalVerifyEncryption checks that (C1, C2) is the encryption of amount
// under pk with the revealed randomness r, by recomputing and comparing the
// compressed encodings.
func ElGamalVerifyEncryption(pk Point, amount uint64, r Scalar, ct ElGamalCiphertext) bool {
	want, err := ElGamalEncrypt(pk, amount, r)
	if err != nil {
		return false
	}
	return bytes.Equal(want.C1.Bytes(), ct.C1.Bytes()) &&
		bytes.Equal(want.C2.Bytes(), ct.C2.Bytes())
}

const canonicalZeroTag = "MPT/CZ/v1"

// CanonicalEncryptedZero is the deterministic encryption of zero for an
// (account, issuance) pair. Its randomness is a public function of the two
// identifiers, so the opening is well known and auditors can recognize the
// default balance ciphertext.
func CanonicalEncryptedZero(pk Point, accountID, mptIssuanceID []byte) (ElGamalCiphertext, error) {
	if len(accountID) != AccountIDBytes {
		return ElGamalCiphertext{}, fmt.Errorf("canonical zero: account id must be %d bytes", AccountIDBytes)
	}
	if len(mptIssuanceID) != IssuanceIDBytes {
		return ElGamalCiphertext{}, fmt.Errorf("canonical zero: issuance id must be %d bytes", IssuanceIDBytes)
	}
	r, err := HashToScalar(canonicalZeroTag, accountID, mptIssuanceID)
	if err != nil {
		return ElGamalCiphertext{}, err
	}
	return ElGamalEncrypt(pk, 0, r)
}
