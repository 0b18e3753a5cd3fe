package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const rootHex = "0x5380a77810dc481431fa26cc69bee2c3881a0d37c20067c7d0fecf170f394cd4"

func TestHexToDigest(t *testing.T) {
	d, err := HexToDigest(rootHex)
	require.NoError(t, err)
	require.Equal(t, rootHex, d.Hex())
	require.Equal(t, rootHex, d.String())
	require.Equal(t, byte(0x53), d[0])
	require.False(t, d.IsZero())

	badInputs := []string{
		"5380a77810dc481431fa26cc69bee2c3881a0d37c20067c7d0fecf170f394cd4", // missing 0x
		"0x5380",
		"0xzz80a77810dc481431fa26cc69bee2c3881a0d37c20067c7d0fecf170f394cd4",
		rootHex + "00",
		"",
	}
	for _, in := range badInputs {
		_, err := HexToDigest(in)
		require.Error(t, err, in)
	}
}

func TestDigestCompare(t *testing.T) {
	low := Digest{0x00, 0xff}
	high := Digest{0x01}

	require.Equal(t, -1, low.Compare(high))
	require.Equal(t, 1, high.Compare(low))
	require.Equal(t, 0, low.Compare(low))
	require.True(t, Digest{}.IsZero())
}

func TestDigestTextMarshalling(t *testing.T) {
	d, err := HexToDigest(rootHex)
	require.NoError(t, err)

	type wrapper struct {
		Root  Digest `json:"root" yaml:"root"`
		Proof Proof  `json:"proof" yaml:"proof"`
	}
	in := wrapper{Root: d, Proof: Proof{d, {}}}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Contains(t, string(data), `"root":"`+rootHex+`"`)

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)

	yamlData, err := yaml.Marshal(in)
	require.NoError(t, err)
	var yamlOut wrapper
	require.NoError(t, yaml.Unmarshal(yamlData, &yamlOut))
	require.Equal(t, in, yamlOut)

	require.Error(t, json.Unmarshal([]byte(`{"root":"0x1234"}`), &out))
}

func TestProofHex(t *testing.T) {
	d, err := HexToDigest(rootHex)
	require.NoError(t, err)

	proof := Proof{d, {0x01}}
	hexProof := proof.Hex()
	require.Equal(t, rootHex, hexProof[0])
	require.Len(t, hexProof[1], 66)

	parsed, err := HexToProof(hexProof)
	require.NoError(t, err)
	require.Equal(t, proof, parsed)

	_, err = HexToProof([]string{rootHex, "0x01"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "proof entry 1")

	empty, err := HexToProof(nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}
