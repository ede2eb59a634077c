package mptcrypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes accepts upper- or lower-case hex, with or without a 0x prefix.
func HexToBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("hex: empty string")
	}
	ss := strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(ss)%2 != 0 {
		return nil, fmt.Errorf("hex: odd length")
	}
	b, err := hex.DecodeString(ss)
	if err != nil {
		return nil, fmt.Errorf("hex: %w", err)
	}
	return b, nil
}

// BytesToHex returns upper-case hex without a prefix, the form ledger fields
// carry point and proof blobs in.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
