package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceDecimalPlaces is the fixed precision of prices on the ledger. Pool
// derivation seeds format prices to exactly this many fraction digits.
const PriceDecimalPlaces = 3

// PoolKey identifies a matching pool: one price-and-side-specific FIFO
// queue of resting orders within a market outcome.
type PoolKey struct {
	Market     Address
	Outcome    uint16
	Price      decimal.Decimal
	ForOutcome bool
}

// PriceString renders the price the way the ledger program seeds pool
// addresses with it, always with 3 fraction digits.
func (k PoolKey) PriceString() string {
	return k.Price.StringFixed(PriceDecimalPlaces)
}

func (k PoolKey) String() string {
	return fmt.Sprintf("%s/%d/%s/%t", k.Market, k.Outcome, k.PriceString(), k.ForOutcome)
}

// MatchingPool is a fixed-capacity circular queue of order references,
// mutated exclusively by the ledger program. Len and Front describe the
// logical queue within the Items backing array. LiquidityAmount is an
// aggregate unmatched-liquidity counter; it is advisory only and must not
// be trusted as an exact per-order sum.
type MatchingPool struct {
	Front           uint32          `json:"front"`
	Len             uint32          `json:"len"`
	Items           []Address       `json:"items"`
	LiquidityAmount decimal.Decimal `json:"liquidityAmount"`
}

// Queued returns the order references currently in the queue, oldest
// first, reproducing the ledger-side ring buffer's logical order. An empty
// result means the pool holds nothing to iterate, whatever the advisory
// liquidity counter says.
func (p *MatchingPool) Queued() []Address {
	capacity := uint32(len(p.Items))
	if p.Len == 0 || capacity == 0 {
		return nil
	}
	if p.Front >= capacity {
		// front outside the backing array means the account data is
		// corrupt or from an incompatible layout, treat as empty
		return nil
	}
	back := (p.Front + p.Len%capacity) % capacity
	if back <= p.Front {
		// queue bridges the end of the backing array
		out := make([]Address, 0, (capacity-p.Front)+back)
		out = append(out, p.Items[p.Front:]...)
		out = append(out, p.Items[:back]...)
		return out
	}
	out := make([]Address, back-p.Front)
	copy(out, p.Items[p.Front:back])
	return out
}
