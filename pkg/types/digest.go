package types

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// DigestLength is the size in bytes of a keccak256 digest.
const DigestLength = 32

// Digest is a 32-byte keccak256 value. It is used for leaf digests, internal
// tree nodes and the root. The text form is 0x-prefixed lowercase hex, the
// convention on-chain verification tooling expects.
type Digest [DigestLength]byte

// BytesToDigest copies b into a Digest. b must be exactly 32 bytes long.
func BytesToDigest(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestLength {
		return d, errors.Errorf("digest must be %d bytes, got %d", DigestLength, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// HexToDigest parses a 0x-prefixed 64 character hex string.
func HexToDigest(s string) (Digest, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Digest{}, errors.Wrapf(err, "invalid digest hex %q", s)
	}
	return BytesToDigest(b)
}

func (d Digest) Bytes() []byte {
	return d[:]
}

func (d Digest) Hex() string {
	return hexutil.Encode(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// Hash converts the digest into go-ethereum's hash type.
func (d Digest) Hash() common.Hash {
	return common.Hash(d)
}

// IsZero reports whether every byte of the digest is zero.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Compare orders digests as big-endian byte strings.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := HexToDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Proof is an inclusion proof: the sibling digests from the leaf level up to
// the level just below the root.
type Proof []Digest

// Hex returns the proof as 0x-prefixed hex strings, leaf level first.
func (p Proof) Hex() []string {
	out := make([]string, len(p))
	for i, d := range p {
		out[i] = d.Hex()
	}
	return out
}

// HexToProof parses a list of 0x-prefixed sibling digests.
func HexToProof(siblings []string) (Proof, error) {
	proof := make(Proof, len(siblings))
	for i, s := range siblings {
		d, err := HexToDigest(s)
		if err != nil {
			return nil, errors.Wrapf(err, "proof entry %d", i)
		}
		proof[i] = d
	}
	return proof, nil
}
