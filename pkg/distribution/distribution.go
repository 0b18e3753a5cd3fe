// Package distribution commits a period's reward claims to a merkle root and
// hands out per-claim proofs that a distributor contract can check with
// claim(period, index, amounts, proof).
package distribution

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/codec"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

// Claim is what one account may claim in a period.
type Claim struct {
	Index   *big.Int
	Address common.Address
	Amounts []*big.Int
}

// Distribution is the committed claim set of one period.
type Distribution struct {
	period  *big.Int
	claims  []*Claim
	tree    *merkle.MerkleTree
	byIndex map[string]int
}

// NewDistribution commits claims for period. Claims keep their order as tree
// leaves. Claim indexes must be unique within the period.
func NewDistribution(period *big.Int, claims []*Claim, opts ...merkle.Option) (*Distribution, error) {
	if len(claims) == 0 {
		return nil, errors.Wrap(types.ErrEmptyInput, "distribution has no claims")
	}

	byIndex := make(map[string]int, len(claims))
	leaves := make([]types.Digest, len(claims))
	for i, claim := range claims {
		if claim == nil {
			return nil, errors.Wrapf(types.ErrEncoding, "claim %d is nil", i)
		}
		leaf, err := codec.LeafDigest(leafRecord(period, claim))
		if err != nil {
			return nil, errors.WithMessagef(err, "claim %d", i)
		}
		leaves[i] = leaf

		key := claim.Index.String()
		if prev, ok := byIndex[key]; ok {
			return nil, errors.Wrapf(types.ErrDuplicateClaim, "claims %d and %d both use index %s", prev, i, key)
		}
		byIndex[key] = i
	}

	tree, err := merkle.BuildMerkleTree(leaves, opts...)
	if err != nil {
		return nil, err
	}

	return &Distribution{
		period:  new(big.Int).Set(period),
		claims:  append([]*Claim(nil), claims...),
		tree:    tree,
		byIndex: byIndex,
	}, nil
}

func leafRecord(period *big.Int, claim *Claim) *types.LeafRecord {
	return &types.LeafRecord{
		Period:  period,
		Index:   claim.Index,
		Address: claim.Address,
		Amounts: claim.Amounts,
	}
}

func (d *Distribution) Root() types.Digest {
	return d.tree.Root()
}

func (d *Distribution) Period() *big.Int {
	return new(big.Int).Set(d.period)
}

func (d *Distribution) Len() int {
	return len(d.claims)
}

// Tree exposes the underlying merkle tree.
func (d *Distribution) Tree() *merkle.MerkleTree {
	return d.tree
}

// ClaimProof returns the proof for the claim at position in the input order.
func (d *Distribution) ClaimProof(position int) (*ClaimProof, error) {
	proof, err := d.tree.GenerateProof(position)
	if err != nil {
		return nil, err
	}

	claim := d.claims[position]
	amounts := make([]*big.Int, len(claim.Amounts))
	for i, a := range claim.Amounts {
		amounts[i] = new(big.Int).Set(a)
	}

	return &ClaimProof{
		Period:  d.Period(),
		Index:   new(big.Int).Set(claim.Index),
		Address: claim.Address,
		Amounts: amounts,
		Leaf:    proof.Leaf,
		Proof:   proof.Proof,
	}, nil
}

// ClaimProofByIndex returns the proof for the claim with the given claim index.
func (d *Distribution) ClaimProofByIndex(index *big.Int) (*ClaimProof, error) {
	if index == nil {
		return nil, errors.Wrap(types.ErrIndexOutOfRange, "nil claim index")
	}
	position, ok := d.byIndex[index.String()]
	if !ok {
		return nil, errors.Wrapf(types.ErrIndexOutOfRange, "no claim with index %s in period %s", index, d.period)
	}
	return d.ClaimProof(position)
}

// ClaimProofsForAddress returns the proofs of every claim owned by address.
func (d *Distribution) ClaimProofsForAddress(address common.Address) []*ClaimProof {
	var proofs []*ClaimProof
	for i, claim := range d.claims {
		if claim.Address != address {
			continue
		}
		// i is always a valid position
		p, _ := d.ClaimProof(i)
		proofs = append(proofs, p)
	}
	return proofs
}

// ClaimProofs returns proofs for all claims in input order.
func (d *Distribution) ClaimProofs() []*ClaimProof {
	proofs := make([]*ClaimProof, len(d.claims))
	for i := range d.claims {
		proofs[i], _ = d.ClaimProof(i)
	}
	return proofs
}

// ClaimProof carries everything needed to check a claim without the tree.
type ClaimProof struct {
	Period  *big.Int
	Index   *big.Int
	Address common.Address
	Amounts []*big.Int
	Leaf    types.Digest
	Proof   types.Proof
}

// Record returns the leaf record the claim commits to.
func (p *ClaimProof) Record() *types.LeafRecord {
	return &types.LeafRecord{
		Period:  p.Period,
		Index:   p.Index,
		Address: p.Address,
		Amounts: p.Amounts,
	}
}

// Verify re-derives the leaf from the claim fields and checks the proof
// against root. A leaf that does not match the fields is an error, not just
// a failed proof, since it means the proof document is inconsistent.
func (p *ClaimProof) Verify(root types.Digest) (bool, error) {
	if p == nil {
		return false, errors.New("nil claim proof")
	}
	leaf, err := codec.LeafDigest(p.Record())
	if err != nil {
		return false, err
	}
	if leaf != p.Leaf {
		return false, errors.Wrapf(types.ErrLeafMismatch, "claim index %s: fields hash to %s, proof carries %s", p.Index, leaf, p.Leaf)
	}
	return merkle.VerifyProof(root, leaf, p.Proof), nil
}
