package config

import (
	"path/filepath"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

// Environment variable names for the rewards-merkle CLI
const (
	EnvInput         = "REWARDS_MERKLE_INPUT"
	EnvOutput        = "REWARDS_MERKLE_OUTPUT"
	EnvStrictPairing = "REWARDS_MERKLE_STRICT_PAIRING"
	EnvDocument      = "REWARDS_MERKLE_DOCUMENT"
	EnvRoot          = "REWARDS_MERKLE_ROOT"
	EnvVerbose       = "REWARDS_MERKLE_VERBOSE"
)

// BuildConfig configures committing a distribution input file.
type BuildConfig struct {
	InputPath     string `json:"input_path"`
	OutputPath    string `json:"output_path"` // empty writes to stdout
	StrictPairing bool   `json:"strict_pairing"`
	Verbose       bool   `json:"verbose"`
}

func (c *BuildConfig) Validate() error {
	var allErrors field.ErrorList
	if c.InputPath == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("input"), "input file is required"))
	}
	if c.OutputPath != "" && c.InputPath != "" && filepath.Clean(c.OutputPath) == filepath.Clean(c.InputPath) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("output"), c.OutputPath, "output would overwrite the input file"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// VerifyConfig configures checking a published distribution document.
type VerifyConfig struct {
	DocumentPath string `json:"document_path"`
	Root         string `json:"root"` // empty means the root carried by the document
	Verbose      bool   `json:"verbose"`
}

func (c *VerifyConfig) Validate() error {
	var allErrors field.ErrorList
	if c.DocumentPath == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("document"), "document file is required"))
	}
	if c.Root != "" {
		if _, err := types.HexToDigest(c.Root); err != nil {
			allErrors = append(allErrors, field.Invalid(field.NewPath("root"), c.Root, "must be a 0x-prefixed 32 byte hex digest"))
		}
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
