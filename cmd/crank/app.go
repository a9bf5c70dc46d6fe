package main

import (
	"github.com/pkg/errors"

	"github.com/MonacoProtocol/crank/config"
	"github.com/MonacoProtocol/crank/crank"
	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/ledger/rpc"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/matching"
	"github.com/MonacoProtocol/crank/settlement"
	"github.com/MonacoProtocol/crank/txn"
	"github.com/MonacoProtocol/crank/wallet"
)

// app assembles every engine of the crank process around one ledger client
// and one operator wallet.
type app struct {
	log *logging.Logger

	client    *rpc.Client
	submitter *txn.Submitter
	matcher   *matching.Engine
	settler   *settlement.Engine
	crank     *crank.Crank
}

func newApp(log *logging.Logger, cfg config.Config) (*app, error) {
	client, err := rpc.NewClient(log, cfg.Ledger)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create ledger client")
	}

	w, err := wallet.LoadFromFile(cfg.Wallet.KeyFile)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load operator wallet %s", cfg.Wallet.KeyFile)
	}
	operator := w.PublicKey()
	log.Info("operator wallet loaded", logging.String("operator", operator.String()))

	registry, err := ledger.NewProgramRegistry(log, cfg.Ledger)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create program registry")
	}
	program, err := registry.Resolve(cfg.Environment, cfg.ProgramVariant)
	if err != nil {
		return nil, err
	}

	submitter := txn.NewSubmitter(log, cfg.Txn, client, w)

	matcher, err := matching.NewEngine(log, cfg.Matching, program, operator, client, client, client, submitter)
	if err != nil {
		return nil, err
	}
	settler, err := settlement.NewEngine(log, cfg.Settlement, program, operator, client, client, submitter)
	if err != nil {
		return nil, err
	}

	return &app{
		log:       log,
		client:    client,
		submitter: submitter,
		matcher:   matcher,
		settler:   settler,
		crank:     crank.New(log, cfg.Crank, client, matcher, settler),
	}, nil
}

// reloadConf fans a configuration update out to every engine.
func (a *app) reloadConf(cfg config.Config) {
	a.client.ReloadConf(cfg.Ledger)
	a.submitter.ReloadConf(cfg.Txn)
	a.matcher.ReloadConf(cfg.Matching)
	a.settler.ReloadConf(cfg.Settlement)
	a.crank.ReloadConf(cfg.Crank)
}
