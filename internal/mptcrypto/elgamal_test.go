package mptcrypto

import (
	"bytes"
	"testing"
)

func repeatByte(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func testKeypair(t *testing.T, b byte) (Scalar, Point) {
	t.Helper()
	sk, pk, err := ElGamalKeyGen(repeatByte(b, 32))
	if err != nil {
		t.Fatalf("keygen(0x%02x): %v", b, err)
	}
	return sk, pk
}

func testScalar(t *testing.T, b byte) Scalar {
	t.Helper()
	s, err := ScalarFromBytes(repeatByte(b, 32))
	if err != nil {
		t.Fatalf("scalar(0x%02x): %v", b, err)
	}
	return s
}

func TestElGamalKeyGen_RejectsBadEntropy(t *testing.T) {
	if _, _, err := ElGamalKeyGen(repeatByte(0x00, 32)); err == nil {
		t.Fatalf("expected error for zero entropy")
	}
	if _, _, err := ElGamalKeyGen(repeatByte(0xff, 32)); err == nil {
		t.Fatalf("expected error for entropy >= group order")
	}
	if _, _, err := ElGamalKeyGen(repeatByte(0x01, 16)); err == nil {
		t.Fatalf("expected error for short entropy")
	}
}

func TestElGamalEncryptDecrypt_Seeded(t *testing.T) {
	// sk = 0x01..01, m = 1_000_000, r = 0x02..02.
	sk, pk := testKeypair(t, 0x01)
	r := testScalar(t, 0x02)

	ct, err := ElGamalEncrypt(pk, 1_000_000, r)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got, err := ElGamalDecrypt(sk, ct)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if got != 1_000_000 {
		t.Fatalf("decrypt mismatch: got %d want 1000000", got)
	}
}

func TestElGamalDecrypt_Zero(t *testing.T) {
	sk, pk := testKeypair(t, 0x07)
	ct, err := ElGamalEncrypt(pk, 0, testScalar(t, 0x31))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got, err := ElGamalDecrypt(sk, ct)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if got != 0 {
		t.Fatalf("decrypt mismatch: got %d want 0", got)
	}
}

func TestElGamalHomomorphicAdd(t *testing.T) {
	sk, pk := testKeypair(t, 0x05)
	ct1, err := ElGamalEncrypt(pk, 7, testScalar(t, 0x11))
	if err != nil {
		t.Fatalf("encrypt m1: %v", err)
	}
	ct2, err := ElGamalEncrypt(pk, 35, testScalar(t, 0x22))
	if err != nil {
		t.Fatalf("encrypt m2: %v", err)
	}
	sum := ElGamalAdd(ct1, ct2)
	got, err := ElGamalDecrypt(sk, sum)
	if err != nil {
		t.Fatalf("decrypt sum: %v", err)
	}
	if got != 42 {
		t.Fatalf("homomorphic add: got %d want 42", got)
	}
}

func TestElGamalHomomorphicSubtract(t *testing.T) {
	sk, pk := testKeypair(t, 0x05)
	ct1, err := ElGamalEncrypt(pk, 1000, testScalar(t, 0x11))
	if err != nil {
		t.Fatalf("encrypt m1: %v", err)
	}
	ct2, err := ElGamalEncrypt(pk, 400, testScalar(t, 0x22))
	if err != nil {
		t.Fatalf("encrypt m2: %v", err)
	}
	got, err := ElGamalDecrypt(sk, ElGamalSub(ct1, ct2))
	if err != nil {
		t.Fatalf("decrypt diff: %v", err)
	}
	if got != 600 {
		t.Fatalf("homomorphic sub: got %d want 600", got)
	}
}

func TestElGamalVerifyEncryption(t *testing.T) {
	_, pk := testKeypair(t, 0x09)
	r := testScalar(t, 0x33)
	ct, err := ElGamalEncrypt(pk, 12345, r)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if !ElGamalVerifyEncryption(pk, 12345, r, ct) {
		t.Fatalf("reveal-verify failed for honest opening")
	}
	if ElGamalVerifyEncryption(pk, 12346, r, ct) {
		t.Fatalf("reveal-verify accepted wrong amount")
	}
	if ElGamalVerifyEncryption(pk, 12345, testScalar(t, 0x34), ct) {
		t.Fatalf("reveal-verify accepted wrong randomness")
	}
}

func TestElGamalEncrypt_RejectsZeroRandomness(t *testing.T) {
	_, pk := testKeypair(t, 0x09)
	if _, err := ElGamalEncrypt(pk, 1, ScalarZero()); err == nil {
		t.Fatalf("expected error for zero randomness")
	}
}

func TestElGamalDecryptWindow_Exhausted(t *testing.T) {
	sk, pk := testKeypair(t, 0x0b)
	ct, err := ElGamalEncrypt(pk, 1<<20, testScalar(t, 0x44))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	// A ceiling below the plaintext must fail as a consistency error.
	if _, err := ElGamalDecryptWindow(sk, ct, 16); err == nil {
		t.Fatalf("expected window exhaustion")
	}
	// Invalid ceilings are rejected outright.
	if _, err := ElGamalDecryptWindow(sk, ct, 8); err == nil {
		t.Fatalf("expected error for ceiling below baby table")
	}
	if _, err := ElGamalDecryptWindow(sk, ct, 64); err == nil {
		t.Fatalf("expected error for ceiling above maximum")
	}
}

func TestElGamalDecrypt_WrongKeyFails(t *testing.T) {
	_, pk := testKeypair(t, 0x0c)
	other, _ := testKeypair(t, 0x0d)
	ct, err := ElGamalEncrypt(pk, 500, testScalar(t, 0x55))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := ElGamalDecryptWindow(other, ct, 20); err == nil {
		t.Fatalf("expected decryption with the wrong key to fail")
	}
}

func TestCanonicalEncryptedZero(t *testing.T) {
	sk, pk := testKeypair(t, 0x0e)
	account := repeatByte(0xaa, AccountIDBytes)
	issuance := repeatByte(0xbb, IssuanceIDBytes)

	z1, err := CanonicalEncryptedZero(pk, account, issuance)
	if err != nil {
		t.Fatalf("canonical zero: %v", err)
	}
	z2, err := CanonicalEncryptedZero(pk, account, issuance)
	if err != nil {
		t.Fatalf("canonical zero: %v", err)
	}
	if !bytes.Equal(z1.Bytes(), z2.Bytes()) {
		t.Fatalf("canonical zero is not deterministic")
	}
	if len(z1.Bytes()) != 66 {
		t.Fatalf("canonical zero encoding: got %d bytes want 66", len(z1.Bytes()))
	}
	got, err := ElGamalDecrypt(sk, z1)
	if err != nil {
		t.Fatalf("decrypt canonical zero: %v", err)
	}
	if got != 0 {
		t.Fatalf("canonical zero decrypts to %d", got)
	}

	// Different identifiers give a different ciphertext.
	z3, err := CanonicalEncryptedZero(pk, repeatByte(0xac, AccountIDBytes), issuance)
	if err != nil {
		t.Fatalf("canonical zero: %v", err)
	}
	if bytes.Equal(z1.Bytes(), z3.Bytes()) {
		t.Fatalf("canonical zero does not depend on the account id")
	}

	if _, err := CanonicalEncryptedZero(pk, account[:19], issuance); err == nil {
		t.Fatalf("expected error for short account id")
	}
	if _, err := CanonicalEncryptedZero(pk, account, issuance[:23]); err == nil {
		t.Fatalf("expected error for short issuance id")
	}
}

func TestElGamalCiphertextRoundTrip(t *testing.T) {
	_, pk := testKeypair(t, 0x12)
	ct, err := ElGamalEncrypt(pk, 77, testScalar(t, 0x13))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	back, err := ElGamalCiphertextFromBytes(ct.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(back.Bytes(), ct.Bytes()) {
		t.Fatalf("ciphertext round trip mismatch")
	}
	if _, err := ElGamalCiphertextFromBytes(ct.Bytes()[:65]); err == nil {
		t.Fatalf("expected error for truncated ciphertext")
	}
}
