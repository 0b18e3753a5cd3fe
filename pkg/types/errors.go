package types

import "github.com/pkg/errors"

var (
	// ErrEncoding is returned when a leaf field cannot be represented as an
	// unsigned 256-bit integer.
	ErrEncoding = errors.New("leaf encoding error")

	// ErrEmptyInput is returned when a tree is built from zero leaves.
	ErrEmptyInput = errors.New("empty leaf set")

	// ErrIndexOutOfRange is returned when a proof is requested for a leaf
	// position the tree does not have.
	ErrIndexOutOfRange = errors.New("leaf index out of range")

	// ErrUnbalancedTree is returned in strict pairing mode when a level has
	// an odd number of nodes.
	ErrUnbalancedTree = errors.New("unbalanced tree level")

	ErrTreeBuilt      = errors.New("tree already built")
	ErrDuplicateClaim = errors.New("duplicate claim index")
	ErrLeafMismatch   = errors.New("leaf digest does not match claim fields")
)
