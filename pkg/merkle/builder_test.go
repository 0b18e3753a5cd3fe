package merkle

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

func TestBuilder(t *testing.T) {
	records := createTestRecords(5, 3)

	b := NewBuilder()
	for _, record := range records {
		require.NoError(t, b.AddRecord(record))
	}
	require.Equal(t, 5, b.Len())

	tree, err := b.Build()
	require.NoError(t, err)

	expected, err := BuildMerkleTreeFromRecords(records)
	require.NoError(t, err)
	require.Equal(t, expected.Root(), tree.Root())
}

func TestBuilderRejectsUseAfterBuild(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(createTestLeaves(t, 2)...))

	_, err := b.Build()
	require.NoError(t, err)

	require.True(t, errors.Is(b.Add(types.Digest{1}), types.ErrTreeBuilt))
	require.True(t, errors.Is(b.AddRecord(createTestRecords(1, 1)[0]), types.ErrTreeBuilt))

	tree, err := b.Build()
	require.Nil(t, tree)
	require.True(t, errors.Is(err, types.ErrTreeBuilt))
}

func TestBuilderFailedBuildCanRetry(t *testing.T) {
	b := NewBuilder(WithStrictPairing())

	_, err := b.Build()
	require.True(t, errors.Is(err, types.ErrEmptyInput))

	leaves := createTestLeaves(t, 4)
	require.NoError(t, b.Add(leaves[:3]...))
	_, err = b.Build()
	require.True(t, errors.Is(err, types.ErrUnbalancedTree))

	require.NoError(t, b.Add(leaves[3]))
	tree, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 4, tree.LeafCount())
}

func TestBuilderRejectsBadRecord(t *testing.T) {
	b := NewBuilder()
	record := createTestRecords(1, 1)[0]
	record.Amounts = append(record.Amounts, new(big.Int).Lsh(big.NewInt(1), 300))

	require.True(t, errors.Is(b.AddRecord(record), types.ErrEncoding))
	require.Equal(t, 0, b.Len())
}
