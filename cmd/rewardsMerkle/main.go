package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/rewards-merkle-go/pkg/config"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/distribution"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/logger"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/rewards-merkle-go/pkg/types"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rewards-merkle",
		Usage: "Commit reward claims to a merkle root and publish claim proofs",
		Description: `Builds keccak256 sorted-pair merkle commitments over reward claims.

Each claim is committed as keccak256(abi.encode(period, index, account, amounts)),
the leaf format distributor contracts verify on claim. The published document
contains the root and a proof for every claim.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Commit a distribution input file and write the proof document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Distribution input file (.json, .yaml or .yml)",
						EnvVars:  []string{config.EnvInput},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file for the proof document (default: stdout)",
						EnvVars: []string{config.EnvOutput},
					},
					&cli.BoolFlag{
						Name:    "strict-pairing",
						Usage:   "Fail instead of duplicating the last node of odd tree levels",
						EnvVars: []string{config.EnvStrictPairing},
					},
				},
				Action: buildCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify every claim proof in a document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "document",
						Aliases:  []string{"d"},
						Usage:    "Proof document written by build",
						EnvVars:  []string{config.EnvDocument},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "root",
						Usage:   "Expected root (0x hex), e.g. as read from the distributor contract. Defaults to the document root",
						EnvVars: []string{config.EnvRoot},
					},
				},
				Action: verifyCommand,
			},
		},
	}
}

func buildCommand(c *cli.Context) error {
	cfg := &config.BuildConfig{
		InputPath:     c.String("input"),
		OutputPath:    c.String("output"),
		StrictPairing: c.Bool("strict-pairing"),
		Verbose:       c.Bool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	input, err := config.LoadDistributionInput(cfg.InputPath)
	if err != nil {
		return err
	}
	period, claims, err := input.ToClaims()
	if err != nil {
		return fmt.Errorf("invalid distribution input: %w", err)
	}
	l.Sugar().Debugw("Loaded distribution input",
		"input", cfg.InputPath,
		"period", period.String(),
		"claims", len(claims),
	)

	var opts []merkle.Option
	if cfg.StrictPairing {
		opts = append(opts, merkle.WithStrictPairing())
	}
	dist, err := distribution.NewDistribution(period, claims, opts...)
	if err != nil {
		return fmt.Errorf("failed to build distribution: %w", err)
	}

	doc := dist.Document()
	data, err := distribution.MarshalDocument(doc)
	if err != nil {
		return err
	}

	if err := writeOutput(c.App.Writer, cfg.OutputPath, data); err != nil {
		return err
	}

	l.Sugar().Infow("Built distribution",
		"period", period.String(),
		"root", dist.Root().Hex(),
		"claims", dist.Len(),
		"depth", dist.Tree().Depth(),
	)
	return nil
}

func verifyCommand(c *cli.Context) error {
	cfg := &config.VerifyConfig{
		DocumentPath: c.String("document"),
		Root:         c.String("root"),
		Verbose:      c.Bool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	data, err := os.ReadFile(cfg.DocumentPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := distribution.UnmarshalDocument(data)
	if err != nil {
		return err
	}

	root := doc.Root
	if cfg.Root != "" {
		// already validated
		root, _ = types.HexToDigest(cfg.Root)
		if root != doc.Root {
			l.Sugar().Warnw("Expected root differs from document root",
				"expected", root.Hex(),
				"document", doc.Root.Hex(),
			)
		}
	}

	if err := doc.VerifyAgainst(root); err != nil {
		l.Sugar().Errorw("Document verification failed", "error", err)
		return fmt.Errorf("document verification failed: %w", err)
	}

	l.Sugar().Infow("Document verified",
		"period", doc.Period.String(),
		"root", root.Hex(),
		"claims", len(doc.Claims),
	)
	_, err = fmt.Fprintf(c.App.Writer, "OK %s (%d claims)\n", root.Hex(), len(doc.Claims))
	return err
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	data = append(data, '\n')
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
