package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/MonacoProtocol/crank/config"
	"github.com/MonacoProtocol/crank/crank"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/metrics"
)

type ServiceCmd struct {
	config.RootPathFlag

	ctx context.Context
}

var serviceCmd ServiceCmd

func (cmd *ServiceCmd) Execute(args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one argument: the cycle kind (match or settle)")
	}

	ctx, stop := signal.NotifyContext(cmd.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Read(cmd.RootPath)
	if err != nil {
		return errors.Wrapf(err, "unable to read configuration at %s", cmd.RootPath)
	}

	log := logging.NewLoggerFromEnv(cfg.Logging.Environment)
	defer log.AtExit()

	// an unknown kind is not fatal here, every cycle reports the failure
	// and the service keeps looping until it is interrupted
	kind, err := crank.ParseKind(args[0])
	if err != nil {
		log.Warn("unknown cycle kind, cycles will fail until the service is restarted",
			logging.String("kind", args[0]),
		)
	}

	a, err := newApp(log, *cfg)
	if err != nil {
		return err
	}

	watcher, err := config.NewFromFile(ctx, log, cmd.RootPath)
	if err != nil {
		return errors.Wrap(err, "unable to start the configuration watcher")
	}
	watcher.OnConfigUpdate(a.reloadConf)

	metrics.Start(cfg.Metrics)

	if err := a.crank.Service(ctx, kind); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func Service(ctx context.Context, parser *flags.Parser) error {
	serviceCmd = ServiceCmd{
		RootPathFlag: config.NewRootPathFlag(),
		ctx:          ctx,
	}
	_, err := parser.AddCommand("service", "Run the crank as a service", "Repeatedly run crank cycles of the given kind until interrupted", &serviceCmd)
	return err
}
