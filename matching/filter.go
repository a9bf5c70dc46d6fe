package matching

import (
	"context"

	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/metrics"
	"github.com/MonacoProtocol/crank/types"
)

// FilterUsableMarkets returns the subset of orders whose market record can
// currently be fetched and deserialized. Markets in legacy or incompatible
// formats fail the fetch; their orders are silently excluded for this
// cycle rather than failing the run. Each distinct market is fetched once.
func FilterUsableMarkets(ctx context.Context, log *logging.Logger, markets ledger.MarketReader, orders []types.OrderRecord) []types.OrderRecord {
	distinct := make(map[types.Address]struct{})
	for _, rec := range orders {
		distinct[rec.Order.Market] = struct{}{}
	}

	usable := make(map[types.Address]bool, len(distinct))
	dropped := 0
	for market := range distinct {
		if _, err := markets.Market(ctx, market); err != nil {
			dropped++
			log.Debug("excluding unusable market for this cycle",
				logging.String("market", market.String()),
				logging.Error(err),
			)
			continue
		}
		usable[market] = true
	}
	if dropped > 0 {
		metrics.DroppedMarketsAdd(dropped)
	}

	out := make([]types.OrderRecord, 0, len(orders))
	for _, rec := range orders {
		if usable[rec.Order.Market] {
			out = append(out, rec)
		}
	}
	return out
}
