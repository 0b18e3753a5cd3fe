package merkle

import (
	"github.com/pkg/errors"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/codec"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

// Builder collects leaf digests and builds a tree from them exactly once.
// After a successful Build the builder is spent; start a new one to commit a
// different leaf set. A Builder is not safe for concurrent use.
type Builder struct {
	opts   []Option
	leaves []types.Digest
	tree   *MerkleTree
}

func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: opts}
}

// Add appends leaf digests in order.
func (b *Builder) Add(leaves ...types.Digest) error {
	if b.tree != nil {
		return errors.Wrap(types.ErrTreeBuilt, "cannot add leaves")
	}
	b.leaves = append(b.leaves, leaves...)
	return nil
}

// AddRecord encodes and hashes a leaf record and appends its digest.
func (b *Builder) AddRecord(record *types.LeafRecord) error {
	if b.tree != nil {
		return errors.Wrap(types.ErrTreeBuilt, "cannot add leaves")
	}
	leaf, err := codec.LeafDigest(record)
	if err != nil {
		return err
	}
	b.leaves = append(b.leaves, leaf)
	return nil
}

// Len returns the number of leaves added so far.
func (b *Builder) Len() int {
	return len(b.leaves)
}

// Build constructs the tree. A failed build leaves the builder usable so
// the caller can add more leaves and retry.
func (b *Builder) Build() (*MerkleTree, error) {
	if b.tree != nil {
		return nil, errors.Wrap(types.ErrTreeBuilt, "builder already produced a tree")
	}
	tree, err := BuildMerkleTree(b.leaves, b.opts...)
	if err != nil {
		return nil, err
	}
	b.tree = tree
	b.leaves = nil
	return tree, nil
}
