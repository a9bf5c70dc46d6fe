package crank

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/metrics"
	"github.com/MonacoProtocol/crank/types"
)

const namedLogger = "crank"

// ErrUnknownKind is returned when asked to run a cycle kind this process
// does not implement.
var ErrUnknownKind = errors.New("unknown crank kind")

// Kind selects which phase of the market lifecycle a cycle works on.
type Kind int

// The cycle kinds the crank runs.
const (
	KindUnknown Kind = iota
	KindMatch
	KindSettle
)

var kindNames = map[Kind]string{
	KindUnknown: "UNKNOWN",
	KindMatch:   "MATCH",
	KindSettle:  "SETTLE",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return kindNames[KindUnknown]
	}
	return name
}

// ParseKind maps a cycle kind name, case insensitively, onto its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if k != KindUnknown && strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return KindUnknown, errors.Wrap(ErrUnknownKind, s)
}

// Matcher runs one matching pass over the given candidate orders.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/matcher_mock.go -package mocks github.com/MonacoProtocol/crank/crank Matcher
type Matcher interface {
	MatchAll(ctx context.Context, candidates []types.OrderRecord)
}

// Settler runs one settlement pass, optionally restricted to one market.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/settler_mock.go -package mocks github.com/MonacoProtocol/crank/crank Settler
type Settler interface {
	SettleAll(ctx context.Context, only *types.Address) error
}

// Crank schedules match and settlement cycles, either one shot or as a
// long running service.
type Crank struct {
	Config
	log *logging.Logger

	orders  ledger.OrderReader
	matcher Matcher
	settler Settler
}

// New creates the crank scheduler with the necessary dependencies
func New(log *logging.Logger, config Config, orders ledger.OrderReader, matcher Matcher, settler Settler) *Crank {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Crank{
		Config:  config,
		log:     log,
		orders:  orders,
		matcher: matcher,
		settler: settler,
	}
}

// ReloadConf update the internal configuration of the crank scheduler
func (c *Crank) ReloadConf(cfg Config) {
	c.log.Info("reloading configuration")
	if c.log.GetLevel() != cfg.Level.Get() {
		c.log.Info("updating log level",
			logging.String("old", c.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		c.log.SetLevel(cfg.Level.Get())
	}
	c.Config = cfg
}

// RunOnce runs a single cycle of the given kind. When market is non nil the
// cycle is restricted to that market.
func (c *Crank) RunOnce(ctx context.Context, kind Kind, market *types.Address) error {
	start := time.Now()
	err := c.runCycle(ctx, kind, market)
	metrics.CycleTimeObserve(kind.String(), time.Since(start))

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.CycleInc(kind.String(), status)
	return err
}

// Service runs cycles of the given kind until the context is cancelled. A
// new cycle starts a fixed delay after the previous one completed, so
// cycles never overlap however long one takes. Cycle failures are logged
// and the service carries on.
func (c *Crank) Service(ctx context.Context, kind Kind) error {
	c.log.Info("crank service started",
		logging.String("kind", kind.String()),
		logging.Duration("delay", c.Delay.Get()),
	)
	for {
		if err := c.RunOnce(ctx, kind, nil); err != nil {
			c.log.Error("crank cycle failed",
				logging.String("kind", kind.String()),
				logging.Error(err),
			)
		}
		select {
		case <-ctx.Done():
			c.log.Info("crank service stopped", logging.String("kind", kind.String()))
			return ctx.Err()
		case <-time.After(c.Delay.Get()):
		}
	}
}

func (c *Crank) runCycle(ctx context.Context, kind Kind, market *types.Address) error {
	switch kind {
	case KindMatch:
		return c.matchCycle(ctx, market)
	case KindSettle:
		return c.settler.SettleAll(ctx, market)
	default:
		return errors.Wrap(ErrUnknownKind, kind.String())
	}
}

// matchCycle gathers every order still carrying unmatched stake, both
// freshly placed and partially matched ones, and hands them to the matcher.
func (c *Crank) matchCycle(ctx context.Context, market *types.Address) error {
	open, err := c.orders.ListOrders(ctx, types.OrderStatusOpen, market)
	if err != nil {
		return errors.Wrap(err, "unable to list open orders")
	}
	matched, err := c.orders.ListOrders(ctx, types.OrderStatusMatched, market)
	if err != nil {
		return errors.Wrap(err, "unable to list matched orders")
	}

	candidates := make([]types.OrderRecord, 0, len(open)+len(matched))
	candidates = append(candidates, open...)
	for _, rec := range matched {
		if rec.Order.IsMatchable() {
			candidates = append(candidates, rec)
		}
	}

	c.log.Info("match cycle starting",
		logging.Int("open", len(open)),
		logging.Int("partial", len(candidates)-len(open)),
	)
	c.matcher.MatchAll(ctx, candidates)
	return nil
}
