package distribution

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

// Document is the published form of a distribution: its root and every claim
// with its proof. Integers are decimal strings and digests 0x hex.
type Document struct {
	Period *big.Int
	Root   types.Digest
	Claims []*ClaimProof
}

type documentJSON struct {
	Period string            `json:"period"`
	Root   types.Digest      `json:"root"`
	Claims []*claimProofJSON `json:"claims"`
}

type claimProofJSON struct {
	Period  string         `json:"period"`
	Index   string         `json:"index"`
	Address common.Address `json:"address"`
	Amounts []string       `json:"amounts"`
	Leaf    types.Digest   `json:"leaf"`
	Proof   types.Proof    `json:"proof"`
}

// Document returns the publishable document for the distribution.
func (d *Distribution) Document() *Document {
	return &Document{
		Period: d.Period(),
		Root:   d.Root(),
		Claims: d.ClaimProofs(),
	}
}

// Verify checks every claim proof against the document root and that each
// claim belongs to the document's period.
func (doc *Document) Verify() error {
	return doc.VerifyAgainst(doc.Root)
}

// VerifyAgainst checks every claim proof against root, which may differ from
// the root the document carries (e.g. the root read from a contract).
func (doc *Document) VerifyAgainst(root types.Digest) error {
	if len(doc.Claims) == 0 {
		return errors.Wrap(types.ErrEmptyInput, "document has no claims")
	}
	for i, claim := range doc.Claims {
		if claim == nil {
			return errors.Errorf("claim %d is nil", i)
		}
		if doc.Period == nil || claim.Period == nil || claim.Period.Cmp(doc.Period) != 0 {
			return errors.Errorf("claim %d period %v does not match document period %v", i, claim.Period, doc.Period)
		}
		ok, err := claim.Verify(root)
		if err != nil {
			return errors.WithMessagef(err, "claim %d", i)
		}
		if !ok {
			return errors.Errorf("claim %d (index %s) does not verify against root %s", i, claim.Index, root)
		}
	}
	return nil
}

func (p *ClaimProof) MarshalJSON() ([]byte, error) {
	return json.Marshal(newClaimProofJSON(p))
}

func (p *ClaimProof) UnmarshalJSON(data []byte) error {
	var raw claimProofJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := raw.toClaimProof()
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

func (doc *Document) MarshalJSON() ([]byte, error) {
	raw := documentJSON{
		Period: bigString(doc.Period),
		Root:   doc.Root,
		Claims: make([]*claimProofJSON, len(doc.Claims)),
	}
	for i, c := range doc.Claims {
		raw.Claims[i] = newClaimProofJSON(c)
	}
	return json.Marshal(raw)
}

func (doc *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	period, err := parseBig("period", raw.Period)
	if err != nil {
		return err
	}

	claims := make([]*ClaimProof, len(raw.Claims))
	for i, c := range raw.Claims {
		if c == nil {
			return errors.Errorf("claim %d is null", i)
		}
		claims[i], err = c.toClaimProof()
		if err != nil {
			return errors.WithMessagef(err, "claim %d", i)
		}
	}

	*doc = Document{Period: period, Root: raw.Root, Claims: claims}
	return nil
}

func newClaimProofJSON(p *ClaimProof) *claimProofJSON {
	if p == nil {
		return nil
	}
	amounts := make([]string, len(p.Amounts))
	for i, a := range p.Amounts {
		amounts[i] = bigString(a)
	}
	proof := p.Proof
	if proof == nil {
		proof = types.Proof{}
	}
	return &claimProofJSON{
		Period:  bigString(p.Period),
		Index:   bigString(p.Index),
		Address: p.Address,
		Amounts: amounts,
		Leaf:    p.Leaf,
		Proof:   proof,
	}
}

func (raw *claimProofJSON) toClaimProof() (*ClaimProof, error) {
	period, err := parseBig("period", raw.Period)
	if err != nil {
		return nil, err
	}
	index, err := parseBig("index", raw.Index)
	if err != nil {
		return nil, err
	}
	amounts := make([]*big.Int, len(raw.Amounts))
	for i, s := range raw.Amounts {
		if amounts[i], err = parseBig("amount", s); err != nil {
			return nil, errors.WithMessagef(err, "amounts[%d]", i)
		}
	}
	return &ClaimProof{
		Period:  period,
		Index:   index,
		Address: raw.Address,
		Amounts: amounts,
		Leaf:    raw.Leaf,
		Proof:   raw.Proof,
	}, nil
}

func bigString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func parseBig(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("invalid %s %q: expected a decimal integer", field, s)
	}
	return v, nil
}
