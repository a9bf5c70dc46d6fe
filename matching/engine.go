package matching

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/metrics"
	"github.com/MonacoProtocol/crank/txn"
	"github.com/MonacoProtocol/crank/types"
)

const namedLogger = "matching"

// InstructionSubmitter takes the instructions emitted for one market and
// submits them, isolating failures per batch.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/instruction_submitter_mock.go -package mocks github.com/MonacoProtocol/crank/matching InstructionSubmitter
type InstructionSubmitter interface {
	SubmitAll(ctx context.Context, market types.Address, instructions []txn.Instruction)
}

// Engine replicates the ledger program's matching rules client side: it
// derives the price buckets each open order can trade against, walks them
// in price priority re-reading the live pool queues, and proposes one
// match instruction per pairing. The ledger program remains the authority;
// any proposal it rejects because state moved on is simply dropped.
type Engine struct {
	Config
	log *logging.Logger

	program   *ledger.Program
	operator  types.Address
	orders    ledger.OrderReader
	markets   ledger.MarketReader
	pools     ledger.PoolReader
	submitter InstructionSubmitter
}

// NewEngine creates a matching Engine with the necessary dependencies
func NewEngine(
	log *logging.Logger,
	config Config,
	program *ledger.Program,
	operator types.Address,
	orders ledger.OrderReader,
	markets ledger.MarketReader,
	pools ledger.PoolReader,
	submitter InstructionSubmitter,
) (*Engine, error) {
	if program == nil {
		return nil, errors.New("program handle is nil when calling NewEngine in matching")
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
		pools:     pools,
		submitter: submitter,
	}, nil
}

// ReloadConf update the internal configuration of the matching engine
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

// MatchAll runs one matching pass over the given candidate orders. Groups
// of (market, outcome) progress independently and concurrently, bounded by
// MaxConcurrentGroups, and the call returns only once every group has
// finished. Per-order failures are logged and recovered; they never abort
// the pass.
func (e *Engine) MatchAll(ctx context.Context, candidates []types.OrderRecord) {
	if len(candidates) == 0 {
		return
	}

	// latest first; only affects which order is processed first per
	// outcome, FIFO within a bucket comes from the ledger-maintained queue
	sorted := make([]types.OrderRecord, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order.CreationTimestamp > sorted[j].Order.CreationTimestamp
	})

	usable := FilterUsableMarkets(ctx, e.log, e.markets, sorted)
	projections := BuildProjections(usable)

	limit := e.MaxConcurrentGroups
	if limit <= 0 {
		limit = defaultMaxConcurrentGroups
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for market, marketProjections := range groupByMarket(projections) {
		for outcome, group := range groupByOutcome(marketProjections) {
			market, outcome, group := market, outcome, group
			g.Go(func() error {
				e.matchOutcome(ctx, market, outcome, group)
				return nil
			})
		}
	}
	// tasks recover their own failures and never return an error
	_ = g.Wait()
}

func (e *Engine) matchOutcome(ctx context.Context, market types.Address, outcome uint16, projections []Projection) {
	opposingBySide := map[bool][]Projection{}
	for _, p := range projections {
		opposingBySide[p.ForOutcome] = append(opposingBySide[p.ForOutcome], p)
	}

	for _, proj := range projections {
		if !proj.IsOpen {
			continue
		}
		if err := e.matchOrderSafe(ctx, proj, opposingBySide[!proj.ForOutcome]); err != nil {
			metrics.MatchFailureInc()
			e.log.Error("failed to match order",
				logging.String("market", market.String()),
				logging.Uint16("outcome", outcome),
				logging.String("projection", proj.String()),
				logging.Error(err),
			)
		}
	}
}

// matchOrderSafe converts a panic while matching one order into an error,
// so malformed ledger state cannot take down the other groups.
func (e *Engine) matchOrderSafe(ctx context.Context, proj Projection, opposing []Projection) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("recovered from panic while matching: %v", r)
		}
	}()
	return e.matchOrder(ctx, proj, opposing)
}

// matchOrder walks the opposing price buckets for one projection and
// emits the match instructions for every pairing found.
func (e *Engine) matchOrder(ctx context.Context, proj Projection, opposing []Projection) error {
	prices := opposingPrices(proj, opposing)
	if len(prices) == 0 {
		return nil
	}

	program := e.program.ID
	currentPoolAddr := txn.PoolAddress(program, proj.PoolKey())

	// always re-read the live pool, never trust the stale projection
	currentPool, err := e.pools.MatchingPool(ctx, currentPoolAddr)
	if err != nil {
		return errors.Wrapf(err, "unable to read matching pool %s", proj.PoolKey())
	}
	queued := currentPool.Queued()
	if len(queued) == 0 {
		// the order was matched and dequeued since the snapshot was taken
		return nil
	}

	currentAddr := queued[0]
	current, err := e.orders.Order(ctx, currentAddr)
	if err != nil {
		return errors.Wrapf(err, "unable to fetch order %s", currentAddr)
	}

	market, err := e.markets.Market(ctx, proj.Market)
	if err != nil {
		return errors.Wrapf(err, "unable to fetch market %s", proj.Market)
	}

	escrow := txn.EscrowAddress(program, proj.Market)
	outcomeAddr := txn.OutcomeAddress(program, proj.Market, proj.Outcome)
	operators := txn.AuthorizedOperatorsAddress(program)
	currentPosition := txn.MarketPositionAddress(program, current.Purchaser, proj.Market)

	if e.log.GetLevel() <= logging.DebugLevel {
		e.log.Debug("matching order",
			logging.String("market", proj.Market.String()),
			logging.String("order", currentAddr.String()),
			logging.Bool("forOutcome", current.ForOutcome),
			logging.Uint16("outcome", current.MarketOutcomeIndex),
			logging.Decimal("price", current.ExpectedPrice),
		)
	}

	instructions := make([]txn.Instruction, 0)
	currentRemaining := current.StakeUnmatched

	for _, price := range prices {
		opposingKey := types.PoolKey{
			Market:     proj.Market,
			Outcome:    proj.Outcome,
			Price:      price,
			ForOutcome: !current.ForOutcome,
		}
		opposingPoolAddr := txn.PoolAddress(program, opposingKey)
		opposingPool, err := e.pools.MatchingPool(ctx, opposingPoolAddr)
		if err != nil {
			return errors.Wrapf(err, "unable to read matching pool %s", opposingKey)
		}
		opposingQueued := opposingPool.Queued()
		if len(opposingQueued) == 0 {
			continue
		}

		// the advisory liquidity only seeds the bucket stop counter, the
		// item list alone drives iteration
		opposingRemaining := opposingPool.LiquidityAmount

		for _, opposingAddr := range opposingQueued {
			opposingOrder, err := e.orders.Order(ctx, opposingAddr)
			if err != nil {
				return errors.Wrapf(err, "unable to fetch order %s", opposingAddr)
			}
			opposingPosition := txn.MarketPositionAddress(program, opposingOrder.Purchaser, proj.Market)

			matched := decimal.Min(current.StakeUnmatched, opposingOrder.StakeUnmatched)

			var acc txn.MatchAccounts
			if current.ForOutcome {
				acc = txn.MatchAccounts{
					OrderFor:              currentAddr,
					OrderAgainst:          opposingAddr,
					TradeFor:              txn.TradeAddress(program, opposingAddr, currentAddr, true),
					TradeAgainst:          txn.TradeAddress(program, opposingAddr, currentAddr, false),
					Market:                proj.Market,
					MarketPositionFor:     currentPosition,
					MarketPositionAgainst: opposingPosition,
					MarketOutcome:         outcomeAddr,
					PoolFor:               currentPoolAddr,
					PoolAgainst:           opposingPoolAddr,
					TokenAccountFor:       txn.TokenAccountAddress(program, current.Purchaser, market.MintAccount),
					TokenAccountAgainst:   txn.TokenAccountAddress(program, opposingOrder.Purchaser, market.MintAccount),
					Mint:                  market.MintAccount,
					Escrow:                escrow,
					Operator:              e.operator,
					AuthorizedOperators:   operators,
				}
			} else {
				acc = txn.MatchAccounts{
					OrderFor:              opposingAddr,
					OrderAgainst:          currentAddr,
					TradeFor:              txn.TradeAddress(program, currentAddr, opposingAddr, true),
					TradeAgainst:          txn.TradeAddress(program, currentAddr, opposingAddr, false),
					Market:                proj.Market,
					MarketPositionFor:     opposingPosition,
					MarketPositionAgainst: currentPosition,
					MarketOutcome:         outcomeAddr,
					PoolFor:               opposingPoolAddr,
					PoolAgainst:           currentPoolAddr,
					TokenAccountFor:       txn.TokenAccountAddress(program, opposingOrder.Purchaser, market.MintAccount),
					TokenAccountAgainst:   txn.TokenAccountAddress(program, current.Purchaser, market.MintAccount),
					Mint:                  market.MintAccount,
					Escrow:                escrow,
					Operator:              e.operator,
					AuthorizedOperators:   operators,
				}
			}
			instructions = append(instructions, txn.MatchOrders(program, acc))

			currentRemaining = currentRemaining.Sub(matched)
			opposingRemaining = opposingRemaining.Sub(matched)

			if !opposingRemaining.IsPositive() {
				// no unmatched stake left at this price point
				break
			}
		}

		if !currentRemaining.IsPositive() {
			// current order fully consumed
			break
		}
	}

	e.submitter.SubmitAll(ctx, proj.Market, instructions)
	return nil
}
