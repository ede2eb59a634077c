package mptcrypto

import (
	"crypto/sha256"
	"fmt"
)

var transcriptPrefix = []byte("MPT/TR/v1")

// Challenge tag bytes. Each challenge within a proof hashes the transcript
// state with its own tag, so challenges derived from the same state (for
// example y and z in the range proof) stay independent.
const (
	challengeSigma = 'e'
	challengeY     = 'y'
	challengeZ     = 'z'
	challengeX     = 'x'
	challengeW     = 'w'
	challengeIPA   = 'u'
)

// Transcript is the Fiat-Shamir transcript shared by every proof kind. It is
// initialized with a per-proof-kind domain tag and the 32-byte transaction
// context id, then absorbs public inputs and prover commitments in the fixed
// order each proof documents. Prover and verifier rebuild it independently
// and must agree bit for bit.
//
// It stores the absorbed bytes rather than a running hash state, since Go's
// sha256 implementation does not support cloning.
type Transcript struct {
	state []byte
}

func NewTranscript(domainTag string, txContextID []byte) (*Transcript, error) {
	if len(txContextID) != ContextIDBytes {
		return nil, fmt.Errorf("transcript: context id must be %d bytes", ContextIDBytes)
	}
	dst := []byte(domainTag)
	st := make([]byte, 0, len(transcriptPrefix)+8+len(dst)+ContextIDBytes)
	st = append(st, transcriptPrefix...)
	st = append(st, u32be(uint32(len(dst)))...)
	st = append(st, dst...)
	st = append(st, u32be(ContextIDBytes)...)
	st = append(st, txContextID...)
	return &Transcript{state: st}, nil
}

func (t *Transcript) AppendMessage(label string, msg []byte) error {
	if t == nil {
		return fmt.Errorf("transcript: nil receiver")
	}
	if msg == nil {
		return fmt.Errorf("transcript: nil msg")
	}
	lb := []byte(label)
	t.state = append(t.state, []byte("msg")...)
	t.state = append(t.state, u32be(uint32(len(lb)))...)
	t.state = append(t.state, lb...)
	t.state = append(t.state, u32be(uint32(len(msg)))...)
	t.state = append(t.state, msg...)
	return nil
}

func (t *Transcript) AppendPoint(label string, p Point) error {
	return t.AppendMessage(label, p.Bytes())
}

func (t *Transcript) AppendUint64(label string, x uint64) error {
	return t.AppendMessage(label, u64be(x))
}

// ChallengeScalar hashes the current state with the given tag byte and a
// counter byte, reducing the digest modulo the group order. The counter is
// incremented until the reduction is non-zero.
func (t *Transcript) ChallengeScalar(tag byte) Scalar {
	for ctr := 0; ; ctr++ {
		h := sha256.New()
		h.Write(t.state)
		h.Write([]byte{tag, byte(ctr)})
		var d [ScalarBytes]byte
		copy(d[:], h.Sum(nil))
		s := scalarReduce(d)
		if !s.IsZero() {
			return s
		}
	}
}
