package txn

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/metrics"
	"github.com/MonacoProtocol/crank/types"
	"github.com/MonacoProtocol/crank/wallet"
)

const namedLogger = "txn"

// Submitter groups instructions into bounded transactions, signs them with
// the operator wallet and submits them. A failure in one batch never
// prevents the remaining batches from being attempted: the ledger program
// is the final arbiter of every proposal and rejecting some of them is
// expected behaviour.
type Submitter struct {
	Config
	log    *logging.Logger
	sender ledger.TxSender
	wallet *wallet.Wallet
}

// NewSubmitter creates a Submitter with the necessary dependencies
func NewSubmitter(log *logging.Logger, config Config, sender ledger.TxSender, w *wallet.Wallet) *Submitter {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Submitter{
		Config: config,
		log:    log,
		sender: sender,
		wallet: w,
	}
}

// ReloadConf update the internal configuration of the submitter
func (s *Submitter) ReloadConf(cfg Config) {
	s.log.Info("reloading configuration")
	if s.log.GetLevel() != cfg.Level.Get() {
		s.log.Info("updating log level",
			logging.String("old", s.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		s.log.SetLevel(cfg.Level.Get())
	}
	s.Config = cfg
}

// SubmitAll batches and submits the given instructions, preserving their
// emission order within and across batches. Empty input is a no-op.
func (s *Submitter) SubmitAll(ctx context.Context, market types.Address, instructions []Instruction) {
	if len(instructions) == 0 {
		return
	}
	for i, batch := range Batch(instructions, s.BatchSize) {
		if err := s.submitBatch(ctx, batch); err != nil {
			metrics.BatchInc("failed")
			s.log.Error("failed to submit instruction batch",
				logging.String("market", market.String()),
				logging.Int("batch", i),
				logging.Int("instructions", len(batch)),
				logging.Error(err),
			)
			continue
		}
		metrics.BatchInc("submitted")
		for _, ix := range batch {
			metrics.InstructionsAdd(ix.Method, 1)
		}
		s.log.Info("submitted instruction batch",
			logging.String("market", market.String()),
			logging.Int("batch", i),
			logging.Int("instructions", len(batch)),
		)
	}
}

func (s *Submitter) submitBatch(ctx context.Context, batch []Instruction) error {
	ref, err := s.sender.LatestBlockRef(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to get latest block reference")
	}

	tx := Transaction{
		BlockRef:     ref,
		FeePayer:     s.wallet.PublicKey(),
		Instructions: batch,
	}
	msg := tx.Message()
	signed := SignedTransaction{
		Message:   msg,
		Signature: s.wallet.Sign(msg),
		Signer:    s.wallet.PublicKey(),
	}
	raw := signed.Encode()

	var id types.TxID
	submit := func() error {
		var serr error
		id, serr = s.sender.SubmitTransaction(ctx, raw)
		return serr
	}
	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.MaxRetries),
		ctx,
	)
	if err := backoff.Retry(submit, bo); err != nil {
		return errors.Wrap(err, "transaction submission failed")
	}

	confirmCtx, cancel := context.WithTimeout(ctx, s.ConfirmTimeout.Get())
	defer cancel()
	if err := s.sender.ConfirmTransaction(confirmCtx, id); err != nil {
		return errors.Wrapf(err, "transaction %s not confirmed", id)
	}
	return nil
}
