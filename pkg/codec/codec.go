// Package codec encodes leaf records into the ABI tuple layout
// (uint256 period, uint256 index, address account, uint256[] amounts)
// and hashes them into keccak256 leaf digests.
//
// The layout is the one produced by Solidity's abi.encode, so digests computed
// here match contracts that do keccak256(abi.encode(period, index, account, amounts)).
package codec

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

var leafArguments = newLeafArguments()

func newLeafArguments() abi.Arguments {
	uint256Type, _ := abi.NewType("uint256", "", nil)
	addressType, _ := abi.NewType("address", "", nil)
	uint256ArrayType, _ := abi.NewType("uint256[]", "", nil)

	return abi.Arguments{
		{Name: "period", Type: uint256Type},
		{Name: "index", Type: uint256Type},
		{Name: "account", Type: addressType},
		{Name: "amounts", Type: uint256ArrayType},
	}
}

// Encode serializes a record into its canonical ABI tuple encoding.
// Every integer field must be a non-negative value that fits in 256 bits.
func Encode(record *types.LeafRecord) ([]byte, error) {
	if record == nil {
		return nil, errors.Wrap(types.ErrEncoding, "nil leaf record")
	}

	period, err := toUint256("period", record.Period)
	if err != nil {
		return nil, err
	}
	index, err := toUint256("index", record.Index)
	if err != nil {
		return nil, err
	}

	amounts := make([]*big.Int, len(record.Amounts))
	for i, amount := range record.Amounts {
		a, err := toUint256("amount", amount)
		if err != nil {
			return nil, errors.WithMessagef(err, "amounts[%d]", i)
		}
		amounts[i] = a.ToBig()
	}

	encoded, err := leafArguments.Pack(period.ToBig(), index.ToBig(), record.Address, amounts)
	if err != nil {
		return nil, errors.Wrapf(types.ErrEncoding, "abi pack failed: %v", err)
	}
	return encoded, nil
}

// Hash returns keccak256(data).
func Hash(data []byte) types.Digest {
	return types.Digest(crypto.Keccak256Hash(data))
}

// LeafDigest returns keccak256(Encode(record)).
func LeafDigest(record *types.LeafRecord) (types.Digest, error) {
	encoded, err := Encode(record)
	if err != nil {
		return types.Digest{}, err
	}
	return Hash(encoded), nil
}

// LeafDigests hashes records in order. It stops at the first record that
// cannot be encoded.
func LeafDigests(records []*types.LeafRecord) ([]types.Digest, error) {
	digests := make([]types.Digest, len(records))
	for i, record := range records {
		d, err := LeafDigest(record)
		if err != nil {
			return nil, errors.WithMessagef(err, "leaf record %d", i)
		}
		digests[i] = d
	}
	return digests, nil
}

// toUint256 narrows an arbitrary precision integer to 256 bits, rejecting
// values that would otherwise be silently truncated by the ABI packer.
func toUint256(field string, v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return nil, errors.Wrapf(types.ErrEncoding, "%s is missing", field)
	}
	if v.Sign() < 0 {
		return nil, errors.Wrapf(types.ErrEncoding, "%s %s is negative", field, v.String())
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, errors.Wrapf(types.ErrEncoding, "%s %s exceeds 256 bits", field, v.String())
	}
	return u, nil
}
