// Package vectors produces the deterministic test fixtures shipped with the
// crypto core. Everything is derived from fixed byte patterns, so two builds
// of the generator emit byte-identical files and an independent
// implementation can be checked against them offline.
package vectors

import (
	"bytes"
	"fmt"

	"confidentialmpt/internal/mptcrypto"
)

const Suite = "confidential-mpt/secp256k1/v1"

type HashToScalarVec struct {
	Domain      string   `json:"domain"`
	MessagesHex []string `json:"messagesHex"`
	ScalarHex   string   `json:"scalarHex"`
}

type DeriveHVec struct {
	PkHex string `json:"pkHex"`
	HHex  string `json:"hHex"`
}

type ElGamalVec struct {
	SkHex  string `json:"skHex"`
	PkHex  string `json:"pkHex"`
	Amount uint64 `json:"amount"`
	RHex   string `json:"rHex"`
	C1Hex  string `json:"c1Hex"`
	C2Hex  string `json:"c2Hex"`
}

type CanonicalZeroVec struct {
	PkHex         string `json:"pkHex"`
	AccountIDHex  string `json:"accountIdHex"`
	IssuanceIDHex string `json:"issuanceIdHex"`
	C1Hex         string `json:"c1Hex"`
	C2Hex         string `json:"c2Hex"`
}

type EqualityPlaintextVec struct {
	SkHex      string `json:"skHex"`
	Amount     uint64 `json:"amount"`
	RHex       string `json:"rHex"`
	ContextHex string `json:"contextHex"`
	SeedHex    string `json:"seedHex"`
	ProofHex   string `json:"proofHex"`
}

type PokSkVec struct {
	SkHex      string `json:"skHex"`
	PkHex      string `json:"pkHex"`
	ContextHex string `json:"contextHex"`
	SeedHex    string `json:"seedHex"`
	ProofHex   string `json:"proofHex"`
}

type File struct {
	Suite             string                 `json:"suite"`
	HashToScalar      []HashToScalarVec      `json:"hashToScalar"`
	DeriveH           []DeriveHVec           `json:"deriveH"`
	ElGamal           []ElGamalVec           `json:"elgamal"`
	CanonicalZero     []CanonicalZeroVec     `json:"canonicalZero"`
	EqualityPlaintext []EqualityPlaintextVec `json:"equalityPlaintext"`
	PokSk             []PokSkVec             `json:"pokSk"`
}

func pattern(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

// Generate builds the fixture set from fixed byte patterns.
func Generate() (File, error) {
	f := File{Suite: Suite}

	for _, b := range []byte{0x01, 0x02, 0x03} {
		msg := pattern(b, 16)
		s, err := mptcrypto.HashToScalar("MPT/CZ/v1", msg)
		if err != nil {
			return File{}, err
		}
		f.HashToScalar = append(f.HashToScalar, HashToScalarVec{
			Domain:      "MPT/CZ/v1",
			MessagesHex: []string{mptcrypto.BytesToHex(msg)},
			ScalarHex:   mptcrypto.BytesToHex(s.Bytes()),
		})
	}

	for _, b := range []byte{0x01, 0x05, 0x09} {
		sk, pk, err := mptcrypto.ElGamalKeyGen(pattern(b, 32))
		if err != nil {
			return File{}, err
		}
		h, err := mptcrypto.DeriveH(pk)
		if err != nil {
			return File{}, err
		}
		f.DeriveH = append(f.DeriveH, DeriveHVec{
			PkHex: mptcrypto.BytesToHex(pk.Bytes()),
			HHex:  mptcrypto.BytesToHex(h.Bytes()),
		})

		r, err := mptcrypto.ScalarFromBytes(pattern(b+1, 32))
		if err != nil {
			return File{}, err
		}
		amount := uint64(b) * 1_000_003
		ct, err := mptcrypto.ElGamalEncrypt(pk, amount, r)
		if err != nil {
			return File{}, err
		}
		f.ElGamal = append(f.ElGamal, ElGamalVec{
			SkHex:  mptcrypto.BytesToHex(sk.Bytes()),
			PkHex:  mptcrypto.BytesToHex(pk.Bytes()),
			Amount: amount,
			RHex:   mptcrypto.BytesToHex(r.Bytes()),
			C1Hex:  mptcrypto.BytesToHex(ct.C1.Bytes()),
			C2Hex:  mptcrypto.BytesToHex(ct.C2.Bytes()),
		})

		account := pattern(b+2, mptcrypto.AccountIDBytes)
		issuance := pattern(b+3, mptcrypto.IssuanceIDBytes)
		zero, err := mptcrypto.CanonicalEncryptedZero(pk, account, issuance)
		if err != nil {
			return File{}, err
		}
		f.CanonicalZero = append(f.CanonicalZero, CanonicalZeroVec{
			PkHex:         mptcrypto.BytesToHex(pk.Bytes()),
			AccountIDHex:  mptcrypto.BytesToHex(account),
			IssuanceIDHex: mptcrypto.BytesToHex(issuance),
			C1Hex:         mptcrypto.BytesToHex(zero.C1.Bytes()),
			C2Hex:         mptcrypto.BytesToHex(zero.C2.Bytes()),
		})

		ctx := pattern(b+4, mptcrypto.ContextIDBytes)
		seed := pattern(b+5, mptcrypto.SeedBytes)
		proof, err := mptcrypto.EqualityPlaintextProve(pk, ct, amount, r, ctx, seed)
		if err != nil {
			return File{}, err
		}
		if !mptcrypto.EqualityPlaintextVerify(pk, ct, amount, ctx, proof) {
			return File{}, fmt.Errorf("vectors: equality plaintext vector does not verify")
		}
		f.EqualityPlaintext = append(f.EqualityPlaintext, EqualityPlaintextVec{
			SkHex:      mptcrypto.BytesToHex(sk.Bytes()),
			Amount:     amount,
			RHex:       mptcrypto.BytesToHex(r.Bytes()),
			ContextHex: mptcrypto.BytesToHex(ctx),
			SeedHex:    mptcrypto.BytesToHex(seed),
			ProofHex:   mptcrypto.BytesToHex(proof),
		})

		pok, err := mptcrypto.PokSkProve(pk, sk, ctx, seed)
		if err != nil {
			return File{}, err
		}
		if !mptcrypto.PokSkVerify(pk, ctx, pok) {
			return File{}, fmt.Errorf("vectors: pok-sk vector does not verify")
		}
		f.PokSk = append(f.PokSk, PokSkVec{
			SkHex:      mptcrypto.BytesToHex(sk.Bytes()),
			PkHex:      mptcrypto.BytesToHex(pk.Bytes()),
			ContextHex: mptcrypto.BytesToHex(ctx),
			SeedHex:    mptcrypto.BytesToHex(seed),
			ProofHex:   mptcrypto.BytesToHex(pok),
		})
	}
	return f, nil
}
