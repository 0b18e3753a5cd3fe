package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/distribution"
)

// ClaimInput is one claim as written in a distribution input file.
// Integers are decimal or 0x-prefixed hex strings.
type ClaimInput struct {
	Index   string   `json:"index" yaml:"index"`
	Address string   `json:"address" yaml:"address"`
	Amounts []string `json:"amounts" yaml:"amounts"`
}

// DistributionInput is the operator supplied claim set for one period.
type DistributionInput struct {
	Period string       `json:"period" yaml:"period"`
	Claims []ClaimInput `json:"claims" yaml:"claims"`
}

// LoadDistributionInput reads a distribution input file. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadDistributionInput(path string) (*DistributionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read distribution input: %w", err)
	}

	var input DistributionInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &input)
	default:
		err = json.Unmarshal(data, &input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse distribution input %s: %w", path, err)
	}
	return &input, nil
}

// Validate validates the distribution input and reports every invalid field.
func (d *DistributionInput) Validate() error {
	var allErrors field.ErrorList

	if _, err := parseUint256(d.Period); err != nil {
		allErrors = append(allErrors, fieldError(field.NewPath("period"), d.Period, err))
	}

	claimsPath := field.NewPath("claims")
	if len(d.Claims) == 0 {
		allErrors = append(allErrors, field.Required(claimsPath, "at least one claim is required"))
	}

	seen := make(map[string]bool, len(d.Claims))
	for i, claim := range d.Claims {
		claimPath := claimsPath.Index(i)

		index, err := parseUint256(claim.Index)
		if err != nil {
			allErrors = append(allErrors, fieldError(claimPath.Child("index"), claim.Index, err))
		} else if key := index.String(); seen[key] {
			allErrors = append(allErrors, field.Duplicate(claimPath.Child("index"), claim.Index))
		} else {
			seen[key] = true
		}

		if claim.Address == "" {
			allErrors = append(allErrors, field.Required(claimPath.Child("address"), "address is required"))
		} else if !common.IsHexAddress(claim.Address) {
			allErrors = append(allErrors, field.Invalid(claimPath.Child("address"), claim.Address, "must be a 20 byte hex address"))
		}

		for j, amount := range claim.Amounts {
			if _, err := parseUint256(amount); err != nil {
				allErrors = append(allErrors, fieldError(claimPath.Child("amounts").Index(j), amount, err))
			}
		}
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// ToClaims validates the input and converts it into a period and claims.
func (d *DistributionInput) ToClaims() (*big.Int, []*distribution.Claim, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	// Validate has already checked every value parses
	period, _ := parseUint256(d.Period)
	claims := make([]*distribution.Claim, len(d.Claims))
	for i, c := range d.Claims {
		index, _ := parseUint256(c.Index)
		amounts := make([]*big.Int, len(c.Amounts))
		for j, a := range c.Amounts {
			amounts[j], _ = parseUint256(a)
		}
		claims[i] = &distribution.Claim{
			Index:   index,
			Address: common.HexToAddress(c.Address),
			Amounts: amounts,
		}
	}
	return period, claims, nil
}

type requiredError struct{}

func (requiredError) Error() string { return "value is required" }

func fieldError(path *field.Path, value string, err error) *field.Error {
	if _, ok := err.(requiredError); ok {
		return field.Required(path, err.Error())
	}
	return field.Invalid(path, value, err.Error())
}

// parseUint256 accepts a decimal or 0x-prefixed hex integer in [0, 2^256).
func parseUint256(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, requiredError{}
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("must be a decimal or 0x hex integer below 2^256")
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("must not be negative")
	}
	return v, nil
}
