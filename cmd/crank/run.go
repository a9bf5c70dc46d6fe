package main

import (
	"context"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/MonacoProtocol/crank/config"
	"github.com/MonacoProtocol/crank/crank"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/types"
)

type RunCmd struct {
	config.RootPathFlag

	Market string `long:"market" description:"Restrict the cycle to a single market account"`

	ctx context.Context
}

var runCmd RunCmd

func (cmd *RunCmd) Execute(args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one argument: the cycle kind (match or settle)")
	}
	kind, err := crank.ParseKind(args[0])
	if err != nil {
		return err
	}

	var market *types.Address
	if cmd.Market != "" {
		addr, err := types.AddressFromString(cmd.Market)
		if err != nil {
			return errors.Wrap(err, "invalid market account")
		}
		market = &addr
	}

	cfg, err := config.Read(cmd.RootPath)
	if err != nil {
		return errors.Wrapf(err, "unable to read configuration at %s", cmd.RootPath)
	}

	log := logging.NewLoggerFromEnv(cfg.Logging.Environment)
	defer log.AtExit()

	a, err := newApp(log, *cfg)
	if err != nil {
		return err
	}

	return a.crank.RunOnce(cmd.ctx, kind, market)
}

func Run(ctx context.Context, parser *flags.Parser) error {
	runCmd = RunCmd{
		RootPathFlag: config.NewRootPathFlag(),
		ctx:          ctx,
	}
	_, err := parser.AddCommand("run", "Run a single crank cycle", "Run one match or settle cycle and exit", &runCmd)
	return err
}
