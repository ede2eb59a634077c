package mptbundle

import (
	"fmt"

	"confidentialmpt/internal/mptcrypto"
)

// SendBundle is the cryptographic payload of a confidential send: the amount
// encrypted for every party that must be able to read it, commitments for the
// range statements, and the proofs tying them together.
type SendBundle struct {
	SenderAmount   mptcrypto.ElGamalCiphertext
	ReceiverAmount mptcrypto.ElGamalCiphertext
	IssuerAmount   mptcrypto.ElGamalCiphertext

	AmountCommitment  mptcrypto.Point
	BalanceCommitment mptcrypto.Point

	SamePlaintextProof []byte
	AmountLinkProof    []byte
	BalanceLinkProof   []byte
	AmountRangeProof   []byte
}

// SendInputs is everything the sender knows when building a send.
type SendInputs struct {
	Amount uint64

	SenderSK mptcrypto.Scalar
	SenderPK mptcrypto.Point
	// Balance ciphertext currently on the ledger for the sender, and the
	// plaintext balance it decrypts to.
	SenderBalance      mptcrypto.ElGamalCiphertext
	SenderBalancePlain uint64
	ReceiverPK         mptcrypto.Point
	IssuerPK           mptcrypto.Point
	AmountBlinding     mptcrypto.Scalar // shared ElGamal randomness r
	BalanceBlinding    mptcrypto.Scalar // Pedersen rho for the balance commitment
}

// BuildSendBundle encrypts the amount under the sender, receiver and issuer
// keys with one shared randomness, commits to the amount (reusing r as the
// Pedersen blinding, as the transaction format fixes) and to the current
// balance, then produces the three-party same-plaintext proof, the amount
// link proof, the balance link proof and the amount range proof.
func BuildSendBundle(in SendInputs, txContextID, seed []byte) (SendBundle, error) {
	var out SendBundle

	senderCT, err := mptcrypto.ElGamalEncrypt(in.SenderPK, in.Amount, in.AmountBlinding)
	if err != nil {
		return out, fmt.Errorf("send: sender encrypt: %w", err)
	}
	receiverCT, err := mptcrypto.ElGamalEncrypt(in.ReceiverPK, in.Amount, in.AmountBlinding)
	if err != nil {
		return out, fmt.Errorf("send: receiver encrypt: %w", err)
	}
	issuerCT, err := mptcrypto.ElGamalEncrypt(in.IssuerPK, in.Amount, in.AmountBlinding)
	if err != nil {
		return out, fmt.Errorf("send: issuer encrypt: %w", err)
	}

	amountPC, err := mptcrypto.PedersenCommit(in.Amount, in.AmountBlinding, in.SenderPK)
	if err != nil {
		return out, fmt.Errorf("send: amount commitment: %w", err)
	}
	balancePC, err := mptcrypto.PedersenCommit(in.SenderBalancePlain, in.BalanceBlinding, in.SenderPK)
	if err != nil {
		return out, fmt.Errorf("send: balance commitment: %w", err)
	}

	samePT, err := mptcrypto.SamePlaintextProveMulti(in.Amount,
		[]mptcrypto.Point{in.SenderPK, in.ReceiverPK, in.IssuerPK},
		[]mptcrypto.ElGamalCiphertext{senderCT, receiverCT, issuerCT},
		[]mptcrypto.Scalar{in.AmountBlinding, in.AmountBlinding, in.AmountBlinding},
		txContextID, seed)
	if err != nil {
		return out, fmt.Errorf("send: same-plaintext proof: %w", err)
	}
	amountLink, err := mptcrypto.ElGamalPedersenLinkProve(in.SenderPK, senderCT, amountPC,
		in.Amount, in.AmountBlinding, in.AmountBlinding, txContextID, seed)
	if err != nil {
		return out, fmt.Errorf("send: amount link proof: %w", err)
	}
	balanceLink, err := mptcrypto.BalanceLinkProve(in.SenderPK, in.SenderSK, in.SenderBalancePlain,
		in.SenderBalance, balancePC, in.BalanceBlinding, txContextID, seed)
	if err != nil {
		return out, fmt.Errorf("send: balance link proof: %w", err)
	}
	rangeProof, err := mptcrypto.BulletproofProve(in.Amount, in.AmountBlinding, in.SenderPK, txContextID, seed)
	if err != nil {
		return out, fmt.Errorf("send: range proof: %w", err)
	}

	out.SenderAmount = senderCT
	out.ReceiverAmount = receiverCT
	out.IssuerAmount = issuerCT
	out.AmountCommitment = amountPC
	out.BalanceCommitment = balancePC
	out.SamePlaintextProof = samePT
	out.AmountLinkProof = amountLink
	out.BalanceLinkProof = balanceLink
	out.AmountRangeProof = rangeProof
	return out, nil
}

// VerifySendBundle re-checks every proof in the bundle against the public
// inputs a validator holds: the three recipient keys and the sender's current
// balance ciphertext from the ledger.
func VerifySendBundle(b SendBundle, senderPK, receiverPK, issuerPK mptcrypto.Point, senderBalance mptcrypto.ElGamalCiphertext, txContextID []byte) bool {
	if !mptcrypto.SamePlaintextVerifyMulti(
		[]mptcrypto.Point{senderPK, receiverPK, issuerPK},
		[]mptcrypto.ElGamalCiphertext{b.SenderAmount, b.ReceiverAmount, b.IssuerAmount},
		txContextID, b.SamePlaintextProof) {
		return false
	}
	if !mptcrypto.ElGamalPedersenLinkVerify(senderPK, b.SenderAmount, b.AmountCommitment, txContextID, b.AmountLinkProof) {
		return false
	}
	if !mptcrypto.BalanceLinkVerify(senderPK, senderBalance, b.BalanceCommitment, txContextID, b.BalanceLinkProof) {
		return false
	}
	if !mptcrypto.BulletproofVerify(b.AmountRangeProof, b.AmountCommitment, senderPK, txContextID) {
		return false
	}
	return true
}

// ConvertBundle is the payload of a public-to-confidential conversion: the
// holder registers knowledge of its key and encrypts the converted amount for
// itself and the issuer.
type ConvertBundle struct {
	HolderAmount mptcrypto.ElGamalCiphertext
	IssuerAmount mptcrypto.ElGamalCiphertext

	PokSkProof         []byte
	SamePlaintextProof []byte
}

type ConvertInputs struct {
	Amount         uint64
	HolderSK       mptcrypto.Scalar
	HolderPK       mptcrypto.Point
	IssuerPK       mptcrypto.Point
	AmountBlinding mptcrypto.Scalar
}

func BuildConvertBundle(in ConvertInputs, txContextID, seed []byte) (ConvertBundle, error) {
	var out ConvertBundle

	holderCT, err := mptcrypto.ElGamalEncrypt(in.HolderPK, in.Amount, in.AmountBlinding)
	if err != nil {
		return out, fmt.Errorf("convert: holder encrypt: %w", err)
	}
	issuerCT, err := mptcrypto.ElGamalEncrypt(in.IssuerPK, in.Amount, in.AmountBlinding)
	if err != nil {
		return out, fmt.Errorf("convert: issuer encrypt: %w", err)
	}
	pok, err := mptcrypto.PokSkProve(in.HolderPK, in.HolderSK, txContextID, seed)
	if err != nil {
		return out, fmt.Errorf("convert: pok-sk proof: %w", err)
	}
	samePT, err := mptcrypto.SamePlaintextProve(in.Amount,
		in.HolderPK, holderCT, in.AmountBlinding,
		in.IssuerPK, issuerCT, in.AmountBlinding,
		txContextID, seed)
	if err != nil {
		return out, fmt.Errorf("convert: same-plaintext proof: %w", err)
	}

	out.HolderAmount = holderCT
	out.IssuerAmount = issuerCT
	out.PokSkProof = pok
	out.SamePlaintextProof = samePT
	return out, nil
}

func VerifyConvertBundle(b ConvertBundle, holderPK, issuerPK mptcrypto.Point, txContextID []byte) bool {
	if !mptcrypto.PokSkVerify(holderPK, txContextID, b.PokSkProof) {
		return false
	}
	return mptcrypto.SamePlaintextVerify(holderPK, b.HolderAmount, issuerPK, b.IssuerAmount, txContextID, b.SamePlaintextProof)
}

// ConvertBackBundle is the payload of a confidential-to-public conversion.
// The converted amount goes public in the transaction, so instead of a
// same-plaintext proof the bundle reveals the shared encryption blinding and
// validators recompute both ciphertexts; the balance-link proof ties the
// holder's remaining ledger balance to its commitment.
type ConvertBackBundle struct {
	HolderAmount mptcrypto.ElGamalCiphertext
	IssuerAmount mptcrypto.ElGamalCiphertext

	AmountBlinding    mptcrypto.Scalar
	BalanceCommitment mptcrypto.Point
	BalanceLinkProof  []byte
}

type ConvertBackInputs struct {
	Amount   uint64
	HolderSK mptcrypto.Scalar
	HolderPK mptcrypto.Point
	IssuerPK mptcrypto.Point
	// Balance ciphertext currently on the ledger for the holder, and the
	// plaintext balance it decrypts to.
	HolderBalance      mptcrypto.ElGamalCiphertext
	HolderBalancePlain uint64
	AmountBlinding     mptcrypto.Scalar
	BalanceBlinding    mptcrypto.Scalar
}

func BuildConvertBackBundle(in ConvertBackInputs, txContextID, seed []byte) (ConvertBackBundle, error) {
	var out ConvertBackBundle

	holderCT, err := mptcrypto.ElGamalEncrypt(in.HolderPK, in.Amount, in.AmountBlinding)
	if err != nil {
		return out, fmt.Errorf("convert back: holder encrypt: %w", err)
	}
	issuerCT, err := mptcrypto.ElGamalEncrypt(in.IssuerPK, in.Amount, in.AmountBlinding)
	if err != nil {
		return out, fmt.Errorf("convert back: issuer encrypt: %w", err)
	}
	balancePC, err := mptcrypto.PedersenCommit(in.HolderBalancePlain, in.BalanceBlinding, in.HolderPK)
	if err != nil {
		return out, fmt.Errorf("convert back: balance commitment: %w", err)
	}
	balanceLink, err := mptcrypto.BalanceLinkProve(in.HolderPK, in.HolderSK, in.HolderBalancePlain,
		in.HolderBalance, balancePC, in.BalanceBlinding, txContextID, seed)
	if err != nil {
		return out, fmt.Errorf("convert back: balance link proof: %w", err)
	}

	out.HolderAmount = holderCT
	out.IssuerAmount = issuerCT
	out.AmountBlinding = in.AmountBlinding
	out.BalanceCommitment = balancePC
	out.BalanceLinkProof = balanceLink
	return out, nil
}

// VerifyConvertBackBundle reveal-verifies both ciphertexts against the public
// amount and the disclosed blinding, then checks the balance-link proof
// against the holder's ledger balance ciphertext.
func VerifyConvertBackBundle(b ConvertBackBundle, holderPK, issuerPK mptcrypto.Point, holderBalance mptcrypto.ElGamalCiphertext, amount uint64, txContextID []byte) bool {
	if !mptcrypto.ElGamalVerifyEncryption(holderPK, amount, b.AmountBlinding, b.HolderAmount) {
		return false
	}
	if !mptcrypto.ElGamalVerifyEncryption(issuerPK, amount, b.AmountBlinding, b.IssuerAmount) {
		return false
	}
	return mptcrypto.BalanceLinkVerify(holderPK, holderBalance, b.BalanceCommitment, txContextID, b.BalanceLinkProof)
}

// ClawbackBundle is the payload of an issuer clawback: a plaintext-equality
// proof that the holder's balance ciphertext encrypts the clawed-back amount
// under the blinding factor the issuer has tracked for that balance.
type ClawbackBundle struct {
	EqualityProof []byte
}

type ClawbackInputs struct {
	Amount        uint64
	HolderPK      mptcrypto.Point
	HolderBalance mptcrypto.ElGamalCiphertext
	// Blinding factor of the holder's balance ciphertext. The issuer must
	// keep this synchronized with every balance update to claw back.
	BalanceBlinding mptcrypto.Scalar
}

func BuildClawbackBundle(in ClawbackInputs, txContextID, seed []byte) (ClawbackBundle, error) {
	proof, err := mptcrypto.EqualityPlaintextProve(in.HolderPK, in.HolderBalance,
		in.Amount, in.BalanceBlinding, txContextID, seed)
	if err != nil {
		return ClawbackBundle{}, fmt.Errorf("clawback: equality proof: %w", err)
	}
	return ClawbackBundle{EqualityProof: proof}, nil
}

func VerifyClawbackBundle(b ClawbackBundle, holderPK mptcrypto.Point, holderBalance mptcrypto.ElGamalCiphertext, amount uint64, txContextID []byte) bool {
	return mptcrypto.EqualityPlaintextVerify(holderPK, holderBalance, amount, txContextID, b.EqualityProof)
}
