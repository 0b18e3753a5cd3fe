package merkle

import (
	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

// MerkleTree is a binary merkle tree over keccak256 leaf digests.
// Parents are keccak256 of their two children in ascending byte order,
// which is the pairing rule used by OpenZeppelin's MerkleProof library.
//
// A tree is immutable once built and may be shared between goroutines.
type MerkleTree struct {
	// levels stores all tree levels for proof generation
	// levels[0] = leaves in input order, levels[len-1] = [root]
	levels [][]types.Digest
}

// MerkleProof represents a proof that a leaf is included in the tree.
type MerkleProof struct {
	// LeafIndex is the position of the leaf in the input order
	LeafIndex int `json:"leafIndex"`

	// Leaf is the digest being proven
	Leaf types.Digest `json:"leaf"`

	// Proof contains the sibling digests from leaf to root
	// proof[0] is the sibling of the leaf, proof[len-1] is the child of the root
	Proof types.Proof `json:"proof"`
}

// Verify checks the proof against root.
func (p *MerkleProof) Verify(root types.Digest) bool {
	if p == nil {
		return false
	}
	return VerifyProof(root, p.Leaf, p.Proof)
}

type treeConfig struct {
	strictPairing bool
}

// Option configures tree construction.
type Option func(*treeConfig)

// WithStrictPairing makes construction fail with types.ErrUnbalancedTree
// whenever a level has an odd number of nodes, instead of pairing the last
// node with itself.
func WithStrictPairing() Option {
	return func(c *treeConfig) {
		c.strictPairing = true
	}
}

func newTreeConfig(opts []Option) *treeConfig {
	cfg := &treeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
