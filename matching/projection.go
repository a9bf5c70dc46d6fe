package matching

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MonacoProtocol/crank/types"
)

// Projection is the minimal matching fact reduced from one order: which
// bucket it queues in and whether it still takes part in matching. It
// carries no identity back to a specific order; the pool queue is re-read
// live before any pairing is computed. Projections exist only for the
// duration of one matching cycle.
type Projection struct {
	Market     types.Address
	Outcome    uint16
	Price      decimal.Decimal
	ForOutcome bool
	IsOpen     bool
}

// PoolKey returns the matching pool bucket this projection queues in.
func (p Projection) PoolKey() types.PoolKey {
	return types.PoolKey{
		Market:     p.Market,
		Outcome:    p.Outcome,
		Price:      p.Price,
		ForOutcome: p.ForOutcome,
	}
}

func (p Projection) String() string {
	return fmt.Sprintf("market=%s outcome=%d price=%s forOutcome=%t isOpen=%t",
		p.Market, p.Outcome, p.Price.StringFixed(types.PriceDecimalPlaces), p.ForOutcome, p.IsOpen)
}

// dedupKey is the full tuple equality key projections deduplicate on.
func (p Projection) dedupKey() string {
	return p.String()
}

// BuildProjections reduces order records to deduplicated projections,
// preserving the order of first appearance. Distinct orders that reduce to
// the same matching fact (differing purchasers at the same price and side)
// collapse to one projection: one bucket lookup per distinct fact is enough
// to pair every order queued in it.
func BuildProjections(orders []types.OrderRecord) []Projection {
	seen := make(map[string]struct{}, len(orders))
	projections := make([]Projection, 0, len(orders))
	for _, rec := range orders {
		p := Projection{
			Market:     rec.Order.Market,
			Outcome:    rec.Order.MarketOutcomeIndex,
			Price:      rec.Order.ExpectedPrice,
			ForOutcome: rec.Order.ForOutcome,
			IsOpen:     rec.Order.IsMatchable(),
		}
		key := p.dedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		projections = append(projections, p)
	}
	return projections
}

// groupByMarket splits projections per market, keeping relative order.
func groupByMarket(projections []Projection) map[types.Address][]Projection {
	grouped := make(map[types.Address][]Projection)
	for _, p := range projections {
		grouped[p.Market] = append(grouped[p.Market], p)
	}
	return grouped
}

// groupByOutcome splits one market's projections per outcome index,
// keeping relative order.
func groupByOutcome(projections []Projection) map[uint16][]Projection {
	grouped := make(map[uint16][]Projection)
	for _, p := range projections {
		grouped[p.Outcome] = append(grouped[p.Outcome], p)
	}
	return grouped
}
