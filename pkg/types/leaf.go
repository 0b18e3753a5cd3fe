package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// LeafRecord is a single committed entry: the amounts owed to Address for
// claim Index within distribution Period.
//
// Integer fields are arbitrary precision; range checking happens when the
// record is encoded.
type LeafRecord struct {
	Period  *big.Int
	Index   *big.Int
	Address common.Address
	Amounts []*big.Int
}

// NewLeafRecord builds a record from small integer values.
func NewLeafRecord(period, index uint64, address common.Address, amounts ...*big.Int) *LeafRecord {
	return &LeafRecord{
		Period:  new(big.Int).SetUint64(period),
		Index:   new(big.Int).SetUint64(index),
		Address: address,
		Amounts: amounts,
	}
}
