package merkle

import (
	"github.com/pkg/errors"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/codec"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

// BuildMerkleTree creates a binary merkle tree from leaf digests.
// The leaves keep their input order; a leaf's position is the index used to
// request its proof.
//
// If there's an odd number of nodes at any level, the last node is paired
// with itself unless WithStrictPairing is given.
func BuildMerkleTree(leaves []types.Digest, opts ...Option) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, errors.Wrap(types.ErrEmptyInput, "cannot build merkle tree")
	}
	cfg := newTreeConfig(opts)

	// Copy so later changes to the caller's slice cannot reach the tree
	level := make([]types.Digest, len(leaves))
	copy(level, leaves)

	levels := [][]types.Digest{level}
	for len(level) > 1 {
		if len(level)%2 == 1 && cfg.strictPairing {
			return nil, errors.Wrapf(types.ErrUnbalancedTree, "level %d has %d nodes", len(levels)-1, len(level))
		}

		next := make([]types.Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, HashPair(left, right))
		}

		levels = append(levels, next)
		level = next
	}

	return &MerkleTree{levels: levels}, nil
}

// BuildMerkleTreeFromRecords encodes and hashes records with the leaf codec
// and builds a tree over the resulting digests.
func BuildMerkleTreeFromRecords(records []*types.LeafRecord, opts ...Option) (*MerkleTree, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(types.ErrEmptyInput, "cannot build merkle tree")
	}
	leaves, err := codec.LeafDigests(records)
	if err != nil {
		return nil, err
	}
	return BuildMerkleTree(leaves, opts...)
}

// Root returns the root digest.
func (mt *MerkleTree) Root() types.Digest {
	return mt.levels[len(mt.levels)-1][0]
}

// LeafCount returns the number of leaves the tree was built from.
func (mt *MerkleTree) LeafCount() int {
	return len(mt.levels[0])
}

// Leaves returns a copy of the leaf digests in input order.
func (mt *MerkleTree) Leaves() []types.Digest {
	out := make([]types.Digest, len(mt.levels[0]))
	copy(out, mt.levels[0])
	return out
}

// Leaf returns the digest at position index.
func (mt *MerkleTree) Leaf(index int) (types.Digest, error) {
	if index < 0 || index >= mt.LeafCount() {
		return types.Digest{}, mt.indexError(index)
	}
	return mt.levels[0][index], nil
}

// Depth is the number of levels above the leaves, which is also the length
// of every proof produced by the tree.
func (mt *MerkleTree) Depth() int {
	return len(mt.levels) - 1
}

// GenerateProof creates a merkle proof for the leaf at the given index.
// The proof consists of sibling digests along the path from leaf to root.
func (mt *MerkleTree) GenerateProof(leafIndex int) (*MerkleProof, error) {
	if leafIndex < 0 || leafIndex >= mt.LeafCount() {
		return nil, mt.indexError(leafIndex)
	}

	proof := make(types.Proof, 0, mt.Depth())
	index := leafIndex

	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		siblingIndex := index ^ 1
		// Last node of an odd level was paired with itself
		if siblingIndex >= len(currentLevel) {
			siblingIndex = index
		}

		proof = append(proof, currentLevel[siblingIndex])
		index /= 2
	}

	return &MerkleProof{
		LeafIndex: leafIndex,
		Leaf:      mt.levels[0][leafIndex],
		Proof:     proof,
	}, nil
}

// Proofs returns a proof for every leaf, in leaf order.
func (mt *MerkleTree) Proofs() []*MerkleProof {
	proofs := make([]*MerkleProof, mt.LeafCount())
	for i := range proofs {
		// index is always in range here
		proofs[i], _ = mt.GenerateProof(i)
	}
	return proofs
}

func (mt *MerkleTree) indexError(index int) error {
	return errors.Wrapf(types.ErrIndexOutOfRange, "leaf index %d out of bounds (tree has %d leaves)", index, mt.LeafCount())
}

// VerifyProof recomputes the root from leaf and its sibling digests and
// compares it with root. It needs neither the tree nor the leaf position:
// pairs are always hashed in sorted order. An empty proof verifies only when
// the leaf is the root, as in a single leaf tree.
func VerifyProof(root, leaf types.Digest, proof types.Proof) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = HashPair(computed, sibling)
	}
	return computed == root
}

// HashPair computes keccak256(min(a, b) || max(a, b)), comparing the
// digests as big-endian byte strings.
func HashPair(a, b types.Digest) types.Digest {
	if a.Compare(b) > 0 {
		a, b = b, a
	}

	data := make([]byte, 2*types.DigestLength)
	copy(data[:types.DigestLength], a[:])
	copy(data[types.DigestLength:], b[:])

	return codec.Hash(data)
}
