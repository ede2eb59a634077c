package mptcrypto

import "testing"

func testContext(b byte) []byte {
	return repeatByte(b, ContextIDBytes)
}

func testSeed(b byte) []byte {
	return repeatByte(b, SeedBytes)
}

func TestEqualityPlaintextProof(t *testing.T) {
	// S1 inputs with tx_context_id = 0x03..03.
	_, pk := testKeypair(t, 0x01)
	r := testScalar(t, 0x02)
	ctx := testContext(0x03)
	ct, err := ElGamalEncrypt(pk, 1_000_000, r)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	proof, err := EqualityPlaintextProve(pk, ct, 1_000_000, r, ctx, testSeed(0xa1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if len(proof) != EqualityPlaintextProofSize {
		t.Fatalf("proof size: got %d want %d", len(proof), EqualityPlaintextProofSize)
	}
	if !EqualityPlaintextVerify(pk, ct, 1_000_000, ctx, proof) {
		t.Fatalf("honest proof rejected")
	}

	// Flipping any byte must break it; byte 0 is the seeded scenario.
	for _, idx := range []int{0, 40, len(proof) - 1} {
		mutated := append([]byte(nil), proof...)
		mutated[idx] ^= 0x01
		if EqualityPlaintextVerify(pk, ct, 1_000_000, ctx, mutated) {
			t.Fatalf("mutated proof (byte %d) accepted", idx)
		}
	}
	if EqualityPlaintextVerify(pk, ct, 1_000_001, ctx, proof) {
		t.Fatalf("proof accepted for the wrong amount")
	}
	if EqualityPlaintextVerify(pk, ct, 1_000_000, testContext(0x04), proof) {
		t.Fatalf("proof transferred across contexts")
	}
	if EqualityPlaintextVerify(pk, ct, 1_000_000, ctx, proof[:EqualityPlaintextProofSize-1]) {
		t.Fatalf("short proof accepted")
	}

	// Determinism: same inputs and seed give the same bytes.
	again, err := EqualityPlaintextProve(pk, ct, 1_000_000, r, ctx, testSeed(0xa1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if string(proof) != string(again) {
		t.Fatalf("proof is not deterministic for a fixed seed")
	}
	other, err := EqualityPlaintextProve(pk, ct, 1_000_000, r, ctx, testSeed(0xa2))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if string(proof) == string(other) {
		t.Fatalf("different seeds produced identical proofs")
	}
}

func TestSamePlaintextProof_TwoParty(t *testing.T) {
	_, pk1 := testKeypair(t, 0x01)
	_, pk2 := testKeypair(t, 0x02)
	r1 := testScalar(t, 0x11)
	r2 := testScalar(t, 0x12)
	ctx := testContext(0x03)

	ct1, err := ElGamalEncrypt(pk1, 250, r1)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	ct2, err := ElGamalEncrypt(pk2, 250, r2)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	proof, err := SamePlaintextProve(250, pk1, ct1, r1, pk2, ct2, r2, ctx, testSeed(0xb1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if len(proof) != 261 {
		t.Fatalf("two-party proof size: got %d want 261", len(proof))
	}
	if !SamePlaintextVerify(pk1, ct1, pk2, ct2, ctx, proof) {
		t.Fatalf("honest proof rejected")
	}
	if SamePlaintextVerify(pk2, ct1, pk1, ct2, ctx, proof) {
		t.Fatalf("proof accepted with swapped keys")
	}
	if SamePlaintextVerify(pk1, ct1, pk2, ct2, testContext(0x04), proof) {
		t.Fatalf("proof transferred across contexts")
	}

	// Ciphertexts of different amounts must not prove equal.
	ct2bad, err := ElGamalEncrypt(pk2, 251, r2)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	bad, err := SamePlaintextProve(250, pk1, ct1, r1, pk2, ct2bad, r2, ctx, testSeed(0xb1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if SamePlaintextVerify(pk1, ct1, pk2, ct2bad, ctx, bad) {
		t.Fatalf("proof over mismatched plaintexts accepted")
	}
}

func TestSamePlaintextProof_Multi(t *testing.T) {
	// S4: three recipients, m = 100, size (7*33)+(4*32) = 359.
	pks := make([]Point, 3)
	rs := make([]Scalar, 3)
	cts := make([]ElGamalCiphertext, 3)
	ctx := testContext(0x03)
	for i := 0; i < 3; i++ {
		_, pks[i] = testKeypair(t, byte(0x01+i))
		rs[i] = testScalar(t, byte(0x21+i))
		var err error
		cts[i], err = ElGamalEncrypt(pks[i], 100, rs[i])
		if err != nil {
			t.Fatalf("encrypt %d: %v", i, err)
		}
	}

	proof, err := SamePlaintextProveMulti(100, pks, cts, rs, ctx, testSeed(0xc1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if len(proof) != 359 {
		t.Fatalf("three-party proof size: got %d want 359", len(proof))
	}
	if len(proof) != SamePlaintextProofSize(3) {
		t.Fatalf("size function disagrees with proof length")
	}
	if !SamePlaintextVerifyMulti(pks, cts, ctx, proof) {
		t.Fatalf("honest proof rejected")
	}

	// Swapping two keys without swapping ciphertexts must fail.
	swapped := []Point{pks[1], pks[0], pks[2]}
	if SamePlaintextVerifyMulti(swapped, cts, ctx, proof) {
		t.Fatalf("proof accepted with swapped recipient keys")
	}

	mutated := append([]byte(nil), proof...)
	mutated[100] ^= 0x80
	if SamePlaintextVerifyMulti(pks, cts, ctx, mutated) {
		t.Fatalf("mutated proof accepted")
	}
	if SamePlaintextVerifyMulti(pks, cts, ctx, proof[:len(proof)-1]) {
		t.Fatalf("short proof accepted")
	}
}

func TestSamePlaintextProofSizeLaw(t *testing.T) {
	for n := 2; n <= 8; n++ {
		want := (2*n+1)*33 + (n+1)*32
		if got := SamePlaintextProofSize(n); got != want {
			t.Fatalf("size(%d): got %d want %d", n, got, want)
		}
	}
}

func TestElGamalPedersenLinkProof(t *testing.T) {
	// S5: m = 50, distinct r and rho.
	_, pk := testKeypair(t, 0x01)
	r := testScalar(t, 0x41)
	rho := testScalar(t, 0x42)
	ctx := testContext(0x03)

	ct, err := ElGamalEncrypt(pk, 50, r)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	pc, err := PedersenCommit(50, rho, pk)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	proof, err := ElGamalPedersenLinkProve(pk, ct, pc, 50, r, rho, ctx, testSeed(0xd1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if len(proof) != LinkProofSize {
		t.Fatalf("link proof size: got %d want %d", len(proof), LinkProofSize)
	}
	if !ElGamalPedersenLinkVerify(pk, ct, pc, ctx, proof) {
		t.Fatalf("honest proof rejected")
	}

	// Replace PC with a commitment to a different amount under the same rho.
	pcBad, err := PedersenCommit(51, rho, pk)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if ElGamalPedersenLinkVerify(pk, ct, pcBad, ctx, proof) {
		t.Fatalf("proof accepted against a commitment to a different amount")
	}
	if ElGamalPedersenLinkVerify(pk, ct, pc, testContext(0x09), proof) {
		t.Fatalf("proof transferred across contexts")
	}
	mutated := append([]byte(nil), proof...)
	mutated[0] ^= 0x01
	if ElGamalPedersenLinkVerify(pk, ct, pc, ctx, mutated) {
		t.Fatalf("mutated proof accepted")
	}
}

func TestBalanceLinkProof(t *testing.T) {
	sk, pk := testKeypair(t, 0x06)
	rho := testScalar(t, 0x43)
	ctx := testContext(0x05)

	// Balance ciphertext as it would exist on the ledger: a homomorphic sum
	// whose joint randomness the holder never learns.
	ct1, err := ElGamalEncrypt(pk, 600, testScalar(t, 0x51))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	ct2, err := ElGamalEncrypt(pk, 150, testScalar(t, 0x52))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	balanceCT := ElGamalAdd(ct1, ct2)

	pc, err := PedersenCommit(750, rho, pk)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	proof, err := BalanceLinkProve(pk, sk, 750, balanceCT, pc, rho, ctx, testSeed(0xe1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if len(proof) != LinkProofSize {
		t.Fatalf("balance link proof size: got %d want %d", len(proof), LinkProofSize)
	}
	if !BalanceLinkVerify(pk, balanceCT, pc, ctx, proof) {
		t.Fatalf("honest proof rejected")
	}

	pcBad, err := PedersenCommit(751, rho, pk)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if BalanceLinkVerify(pk, balanceCT, pcBad, ctx, proof) {
		t.Fatalf("proof accepted against a wrong balance commitment")
	}
	if BalanceLinkVerify(pk, balanceCT, pc, testContext(0x06), proof) {
		t.Fatalf("proof transferred across contexts")
	}
}

func TestPokSkProof(t *testing.T) {
	sk, pk := testKeypair(t, 0x01)
	ctx := testContext(0x07)

	proof, err := PokSkProve(pk, sk, ctx, testSeed(0xf1))
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if len(proof) != PokSkProofSize {
		t.Fatalf("pok-sk proof size: got %d want %d", len(proof), PokSkProofSize)
	}
	if !PokSkVerify(pk, ctx, proof) {
		t.Fatalf("honest proof rejected")
	}

	_, otherPK := testKeypair(t, 0x02)
	if PokSkVerify(otherPK, ctx, proof) {
		t.Fatalf("proof accepted for a different public key")
	}
	if PokSkVerify(pk, testContext(0x08), proof) {
		t.Fatalf("proof transferred across contexts")
	}
	mutated := append([]byte(nil), proof...)
	mutated[PokSkProofSize-1] ^= 0x01
	if PokSkVerify(pk, ctx, mutated) {
		t.Fatalf("mutated proof accepted")
	}
	if PokSkVerify(pk, ctx, proof[:PokSkProofSize-1]) {
		t.Fatalf("short proof accepted")
	}
}

func TestPedersenCommit(t *testing.T) {
	_, pk := testKeypair(t, 0x01)
	rho := testScalar(t, 0x61)

	pc, err := PedersenCommit(0, rho, pk)
	if err != nil {
		t.Fatalf("commit to zero: %v", err)
	}
	if pc.IsInfinity() {
		t.Fatalf("commitment to zero must not be the identity")
	}
	if _, err := PedersenCommit(5, ScalarZero(), pk); err == nil {
		t.Fatalf("expected error for zero blinding")
	}

	// Same amount, different blinding: different commitments (hiding needs it).
	pc2, err := PedersenCommit(0, testScalar(t, 0x62), pk)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if PointEq(pc, pc2) {
		t.Fatalf("blinding did not change the commitment")
	}
}
