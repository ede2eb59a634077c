package mptbundle

import (
	"fmt"

	"confidentialmpt/internal/mptcrypto"
)

// Bundles travel as opaque fixed-layout byte strings inside ledger
// transactions. Every field has a fixed size, so the layouts are
// concatenations with no framing.

const (
	ciphertextLen = 2 * mptcrypto.PointBytes

	sendSamePlaintextLen = (2*3+1)*mptcrypto.PointBytes + (3+1)*mptcrypto.ScalarBytes

	// SendBundleLen is 3 ciphertexts, 2 commitments, the 3-party
	// same-plaintext proof, two 195-byte link proofs and the range proof.
	SendBundleLen = 3*ciphertextLen + 2*mptcrypto.PointBytes +
		sendSamePlaintextLen + 2*mptcrypto.LinkProofSize + mptcrypto.RangeProofSize

	convertSamePlaintextLen = (2*2+1)*mptcrypto.PointBytes + (2+1)*mptcrypto.ScalarBytes

	// ConvertBundleLen is 2 ciphertexts, the PoK-SK proof and the 2-party
	// same-plaintext proof.
	ConvertBundleLen = 2*ciphertextLen + mptcrypto.PokSkProofSize + convertSamePlaintextLen

	// ConvertBackBundleLen is 2 ciphertexts, the revealed amount blinding,
	// the balance commitment and the balance-link proof.
	ConvertBackBundleLen = 2*ciphertextLen + mptcrypto.ScalarBytes +
		mptcrypto.PointBytes + mptcrypto.LinkProofSize

	// ClawbackBundleLen is the plaintext-equality proof alone; the holder's
	// balance ciphertext and the amount are already on the ledger.
	ClawbackBundleLen = mptcrypto.EqualityPlaintextProofSize
)

// Encode serializes the bundle. Layout:
//
//	senderCT || receiverCT || issuerCT || amountPC || balancePC ||
//	samePlaintext || amountLink || balanceLink || range
func (b SendBundle) Encode() ([]byte, error) {
	if len(b.SamePlaintextProof) != sendSamePlaintextLen ||
		len(b.AmountLinkProof) != mptcrypto.LinkProofSize ||
		len(b.BalanceLinkProof) != mptcrypto.LinkProofSize ||
		len(b.AmountRangeProof) != mptcrypto.RangeProofSize {
		return nil, fmt.Errorf("send bundle: proof field with unexpected size")
	}
	out := make([]byte, 0, SendBundleLen)
	out = append(out, b.SenderAmount.Bytes()...)
	out = append(out, b.ReceiverAmount.Bytes()...)
	out = append(out, b.IssuerAmount.Bytes()...)
	out = append(out, b.AmountCommitment.Bytes()...)
	out = append(out, b.BalanceCommitment.Bytes()...)
	out = append(out, b.SamePlaintextProof...)
	out = append(out, b.AmountLinkProof...)
	out = append(out, b.BalanceLinkProof...)
	out = append(out, b.AmountRangeProof...)
	return out, nil
}

func DecodeSendBundle(data []byte) (SendBundle, error) {
	if len(data) != SendBundleLen {
		return SendBundle{}, fmt.Errorf("send bundle: expected %d bytes, got %d", SendBundleLen, len(data))
	}
	var b SendBundle
	var err error
	off := 0
	next := func(n int) []byte {
		s := data[off : off+n]
		off += n
		return s
	}
	if b.SenderAmount, err = mptcrypto.ElGamalCiphertextFromBytes(next(ciphertextLen)); err != nil {
		return SendBundle{}, fmt.Errorf("send bundle: sender ciphertext: %w", err)
	}
	if b.ReceiverAmount, err = mptcrypto.ElGamalCiphertextFromBytes(next(ciphertextLen)); err != nil {
		return SendBundle{}, fmt.Errorf("send bundle: receiver ciphertext: %w", err)
	}
	if b.IssuerAmount, err = mptcrypto.ElGamalCiphertextFromBytes(next(ciphertextLen)); err != nil {
		return SendBundle{}, fmt.Errorf("send bundle: issuer ciphertext: %w", err)
	}
	if b.AmountCommitment, err = mptcrypto.PointFromBytes(next(mptcrypto.PointBytes)); err != nil {
		return SendBundle{}, fmt.Errorf("send bundle: amount commitment: %w", err)
	}
	if b.BalanceCommitment, err = mptcrypto.PointFromBytes(next(mptcrypto.PointBytes)); err != nil {
		return SendBundle{}, fmt.Errorf("send bundle: balance commitment: %w", err)
	}
	b.SamePlaintextProof = append([]byte(nil), next(sendSamePlaintextLen)...)
	b.AmountLinkProof = append([]byte(nil), next(mptcrypto.LinkProofSize)...)
	b.BalanceLinkProof = append([]byte(nil), next(mptcrypto.LinkProofSize)...)
	b.AmountRangeProof = append([]byte(nil), next(mptcrypto.RangeProofSize)...)
	return b, nil
}

// Encode serializes the bundle. Layout:
//
//	holderCT || issuerCT || pokSk || samePlaintext
func (b ConvertBundle) Encode() ([]byte, error) {
	if len(b.PokSkProof) != mptcrypto.PokSkProofSize ||
		len(b.SamePlaintextProof) != convertSamePlaintextLen {
		return nil, fmt.Errorf("convert bundle: proof field with unexpected size")
	}
	out := make([]byte, 0, ConvertBundleLen)
	out = append(out, b.HolderAmount.Bytes()...)
	out = append(out, b.IssuerAmount.Bytes()...)
	out = append(out, b.PokSkProof...)
	out = append(out, b.SamePlaintextProof...)
	return out, nil
}

func DecodeConvertBundle(data []byte) (ConvertBundle, error) {
	if len(data) != ConvertBundleLen {
		return ConvertBundle{}, fmt.Errorf("convert bundle: expected %d bytes, got %d", ConvertBundleLen, len(data))
	}
	var b ConvertBundle
	var err error
	off := 0
	next := func(n int) []byte {
		s := data[off : off+n]
		off += n
		return s
	}
	if b.HolderAmount, err = mptcrypto.ElGamalCiphertextFromBytes(next(ciphertextLen)); err != nil {
		return ConvertBundle{}, fmt.Errorf("convert bundle: holder ciphertext: %w", err)
	}
	if b.IssuerAmount, err = mptcrypto.ElGamalCiphertextFromBytes(next(ciphertextLen)); err != nil {
		return ConvertBundle{}, fmt.Errorf("convert bundle: issuer ciphertext: %w", err)
	}
	b.PokSkProof = append([]byte(nil), next(mptcrypto.PokSkProofSize)...)
	b.SamePlaintextProof = append([]byte(nil), next(convertSamePlaintextLen)...)
	return b, nil
}

// Encode serializes the bundle. Layout:
//
//	holderCT || issuerCT || amountBlinding || balancePC || balanceLink
func (b ConvertBackBundle) Encode() ([]byte, error) {
	if len(b.BalanceLinkProof) != mptcrypto.LinkProofSize {
		return nil, fmt.Errorf("convert back bundle: proof field with unexpected size")
	}
	out := make([]byte, 0, ConvertBackBundleLen)
	out = append(out, b.HolderAmount.Bytes()...)
	out = append(out, b.IssuerAmount.Bytes()...)
	out = append(out, b.AmountBlinding.Bytes()...)
	out = append(out, b.BalanceCommitment.Bytes()...)
	out = append(out, b.BalanceLinkProof...)
	return out, nil
}

func DecodeConvertBackBundle(data []byte) (ConvertBackBundle, error) {
	if len(data) != ConvertBackBundleLen {
		return ConvertBackBundle{}, fmt.Errorf("convert back bundle: expected %d bytes, got %d", ConvertBackBundleLen, len(data))
	}
	var b ConvertBackBundle
	var err error
	off := 0
	next := func(n int) []byte {
		s := data[off : off+n]
		off += n
		return s
	}
	if b.HolderAmount, err = mptcrypto.ElGamalCiphertextFromBytes(next(ciphertextLen)); err != nil {
		return ConvertBackBundle{}, fmt.Errorf("convert back bundle: holder ciphertext: %w", err)
	}
	if b.IssuerAmount, err = mptcrypto.ElGamalCiphertextFromBytes(next(ciphertextLen)); err != nil {
		return ConvertBackBundle{}, fmt.Errorf("convert back bundle: issuer ciphertext: %w", err)
	}
	if b.AmountBlinding, err = mptcrypto.ScalarFromBytes(next(mptcrypto.ScalarBytes)); err != nil {
		return ConvertBackBundle{}, fmt.Errorf("convert back bundle: amount blinding: %w", err)
	}
	if b.BalanceCommitment, err = mptcrypto.PointFromBytes(next(mptcrypto.PointBytes)); err != nil {
		return ConvertBackBundle{}, fmt.Errorf("convert back bundle: balance commitment: %w", err)
	}
	b.BalanceLinkProof = append([]byte(nil), next(mptcrypto.LinkProofSize)...)
	return b, nil
}

// Encode serializes the bundle: the 98-byte plaintext-equality proof.
func (b ClawbackBundle) Encode() ([]byte, error) {
	if len(b.EqualityProof) != mptcrypto.EqualityPlaintextProofSize {
		return nil, fmt.Errorf("clawback bundle: proof field with unexpected size")
	}
	return append([]byte(nil), b.EqualityProof...), nil
}

func DecodeClawbackBundle(data []byte) (ClawbackBundle, error) {
	if len(data) != ClawbackBundleLen {
		return ClawbackBundle{}, fmt.Errorf("clawback bundle: expected %d bytes, got %d", ClawbackBundleLen, len(data))
	}
	return ClawbackBundle{EqualityProof: append([]byte(nil), data...)}, nil
}
