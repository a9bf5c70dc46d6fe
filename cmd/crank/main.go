package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	if err := Main(context.Background()); err != nil {
		os.Exit(1)
	}
}

// Main registers every subcommand on a fresh parser and runs it over the
// process arguments.
func Main(ctx context.Context) error {
	parser := flags.NewNamedParser("crank", flags.Default)
	parser.ShortDescription = "crank"
	parser.LongDescription = "Operator process matching and settling orders on the ledger's betting exchange program"

	for _, register := range []func(context.Context, *flags.Parser) error{
		Init,
		Run,
		Service,
		Version,
	} {
		if err := register(ctx, parser); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
	}

	if _, err := parser.Parse(); err != nil {
		return err
	}
	return nil
}
