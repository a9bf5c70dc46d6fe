package main

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Overridden at build time through ldflags.
var (
	CLIVersion     = "0.6.0+dev"
	CLIVersionHash = "unknown"
)

type VersionCmd struct{}

var versionCmd VersionCmd

func (cmd *VersionCmd) Execute(_ []string) error {
	fmt.Printf("crank %s (%s)\n", CLIVersion, CLIVersionHash)
	return nil
}

func Version(ctx context.Context, parser *flags.Parser) error {
	versionCmd = VersionCmd{}
	_, err := parser.AddCommand("version", "Show version info", "Show version hash and version of the crank binary", &versionCmd)
	return err
}
