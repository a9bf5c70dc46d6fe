package settlement

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/matching"
	"github.com/MonacoProtocol/crank/txn"
	"github.com/MonacoProtocol/crank/types"
)

const namedLogger = "settlement"

// Engine drives the settlement phase of a crank cycle: it finds the
// markets whose winning outcome has been declared and emits the
// settle_order instructions paying out or refunding every remaining
// order, then the final instruction closing out the market itself.
type Engine struct {
	Config
	log *logging.Logger

	program   *ledger.Program
	operator  types.Address
	orders    ledger.OrderReader
	markets   ledger.MarketReader
	submitter matching.InstructionSubmitter
}

// NewEngine creates a settlement Engine with the necessary dependencies
func NewEngine(
	log *logging.Logger,
	config Config,
	program *ledger.Program,
	operator types.Address,
	orders ledger.OrderReader,
	markets ledger.MarketReader,
	submitter matching.InstructionSubmitter,
) (*Engine, error) {
	if program == nil {
		return nil, errors.New("program handle is nil when calling NewEngine in settlement")
	}
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Engine{
		Config:    config,
		log:       log,
		program:   program,
		operator:  operator,
		orders:    orders,
		markets:   markets,
		submitter: submitter,
	}, nil
}

// ReloadConf update the internal configuration of the settlement engine
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	e.Config = cfg
}

// SettleAll runs one settlement pass. Every market in ready for settlement
// status is processed, each independently so one market's failure never
// blocks the others. When only is non nil the pass is restricted to that
// market.
func (e *Engine) SettleAll(ctx context.Context, only *types.Address) error {
	markets, err := e.markets.ListMarkets(ctx, types.MarketStatusReadyForSettlement)
	if err != nil {
		return errors.Wrap(err, "unable to list markets ready for settlement")
	}

	limit := e.MaxConcurrentGroups
	if limit <= 0 {
		limit = defaultMaxConcurrentGroups
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, rec := range markets {
		rec := rec
		if only != nil && *only != rec.Address {
			continue
		}
		g.Go(func() error {
			if err := e.SettleMarket(ctx, rec); err != nil {
				e.log.Error("failed to settle market",
					logging.String("market", rec.Address.String()),
					logging.Error(err),
				)
			}
			return nil
		})
	}
	return g.Wait()
}

// SettleMarket emits the settlement instructions of a single market:
// settle_order for every matched then open order still resting, or the
// closing complete_market_settlement once none remain.
func (e *Engine) SettleMarket(ctx context.Context, rec types.MarketRecord) error {
	matched, err := e.orders.ListOrders(ctx, types.OrderStatusMatched, &rec.Address)
	if err != nil {
		return errors.Wrap(err, "unable to list matched orders")
	}
	open, err := e.orders.ListOrders(ctx, types.OrderStatusOpen, &rec.Address)
	if err != nil {
		return errors.Wrap(err, "unable to list open orders")
	}

	program := e.program.ID
	if len(matched)+len(open) == 0 {
		e.log.Info("no orders left to settle, closing out market",
			logging.String("market", rec.Address.String()),
			logging.String("title", rec.Market.Title),
		)
		e.submitter.SubmitAll(ctx, rec.Address,
			[]txn.Instruction{txn.CompleteMarketSettlement(program, rec.Address, e.operator)})
		return nil
	}

	escrow := txn.EscrowAddress(program, rec.Address)
	operators := txn.AuthorizedOperatorsAddress(program)

	// matched orders first so winners are paid before open stakes refund
	instructions := make([]txn.Instruction, 0, len(matched)+len(open))
	for _, ord := range append(matched, open...) {
		instructions = append(instructions, txn.SettleOrder(program, txn.SettleAccounts{
			Order:               ord.Address,
			Market:              rec.Address,
			Purchaser:           ord.Order.Purchaser,
			PurchaserToken:      txn.TokenAccountAddress(program, ord.Order.Purchaser, rec.Market.MintAccount),
			MarketPosition:      txn.MarketPositionAddress(program, ord.Order.Purchaser, rec.Address),
			Escrow:              escrow,
			Operator:            e.operator,
			AuthorizedOperators: operators,
		}))
	}

	e.log.Info("settling market orders",
		logging.String("market", rec.Address.String()),
		logging.Int("matched", len(matched)),
		logging.Int("open", len(open)),
	)
	e.submitter.SubmitAll(ctx, rec.Address, instructions)
	return nil
}
