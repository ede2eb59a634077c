// Package mptbundle assembles and checks the cryptographic payloads of
// confidential MPT transactions: the ciphertexts, commitments and proofs a
// transactor attaches. It performs no ledger access; callers feed it the
// public inputs they read from chain state.
package mptbundle

import (
	"crypto/sha512"
	"encoding/binary"

	"confidentialmpt/internal/mptcrypto"
)

// Ledger transaction type codes for the confidential MPT family.
const (
	TxTypeConvert     uint16 = 85
	TxTypeMergeInbox  uint16 = 86
	TxTypeConvertBack uint16 = 87
	TxTypeSend        uint16 = 88
	TxTypeClawback    uint16 = 89
)

// sha512Half is the ledger's 32-byte hash: the first half of SHA-512.
func sha512Half(b []byte) [32]byte {
	d := sha512.Sum512(b)
	var out [32]byte
	copy(out[:], d[:32])
	return out
}

func appendU16(b []byte, x uint16) []byte {
	var t [2]byte
	binary.BigEndian.PutUint16(t[:], x)
	return append(b, t[:]...)
}

func appendU32(b []byte, x uint32) []byte {
	var t [4]byte
	binary.BigEndian.PutUint32(t[:], x)
	return append(b, t[:]...)
}

func appendU64(b []byte, x uint64) []byte {
	var t [8]byte
	binary.BigEndian.PutUint64(t[:], x)
	return append(b, t[:]...)
}

// ConvertContextHash binds proofs to a ConfidentialMPTConvert transaction.
// Layout: type(2) || account(20) || sequence(4) || issuance(24) || amount(8).
func ConvertContextHash(accountID [mptcrypto.AccountIDBytes]byte, sequence uint32, issuanceID [mptcrypto.IssuanceIDBytes]byte, amount uint64) [32]byte {
	b := make([]byte, 0, 58)
	b = appendU16(b, TxTypeConvert)
	b = append(b, accountID[:]...)
	b = appendU32(b, sequence)
	b = append(b, issuanceID[:]...)
	b = appendU64(b, amount)
	return sha512Half(b)
}

// ConvertBackContextHash adds the holder's confidential balance version.
// Layout: type(2) || account(20) || sequence(4) || issuance(24) || amount(8) || version(4).
func ConvertBackContextHash(accountID [mptcrypto.AccountIDBytes]byte, sequence uint32, issuanceID [mptcrypto.IssuanceIDBytes]byte, amount uint64, version uint32) [32]byte {
	b := make([]byte, 0, 62)
	b = appendU16(b, TxTypeConvertBack)
	b = append(b, accountID[:]...)
	b = appendU32(b, sequence)
	b = append(b, issuanceID[:]...)
	b = appendU64(b, amount)
	b = appendU32(b, version)
	return sha512Half(b)
}

// SendContextHash carries the destination and the sender's balance version;
// the amount stays confidential and is bound through the proofs instead.
// Layout: type(2) || account(20) || sequence(4) || issuance(24) || destination(20) || version(4).
func SendContextHash(accountID [mptcrypto.AccountIDBytes]byte, sequence uint32, issuanceID [mptcrypto.IssuanceIDBytes]byte, destination [mptcrypto.AccountIDBytes]byte, version uint32) [32]byte {
	b := make([]byte, 0, 74)
	b = appendU16(b, TxTypeSend)
	b = append(b, accountID[:]...)
	b = appendU32(b, sequence)
	b = append(b, issuanceID[:]...)
	b = append(b, destination[:]...)
	b = appendU32(b, version)
	return sha512Half(b)
}

// ClawbackContextHash binds an issuer clawback to the holder it targets.
// Layout: type(2) || issuer(20) || sequence(4) || issuance(24) || amount(8) || holder(20).
func ClawbackContextHash(issuerID [mptcrypto.AccountIDBytes]byte, sequence uint32, issuanceID [mptcrypto.IssuanceIDBytes]byte, amount uint64, holderID [mptcrypto.AccountIDBytes]byte) [32]byte {
	b := make([]byte, 0, 78)
	b = appendU16(b, TxTypeClawback)
	b = append(b, issuerID[:]...)
	b = appendU32(b, sequence)
	b = append(b, issuanceID[:]...)
	b = appendU64(b, amount)
	b = append(b, holderID[:]...)
	return sha512Half(b)
}
