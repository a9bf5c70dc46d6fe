package matching

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MonacoProtocol/crank/types"
)

// opposingPrices returns the distinct opposing-side prices the current
// order can match against, best price for the current order first. A "for"
// order matches against-orders priced at or above its own price and wants
// the highest first; an "against" order matches for-orders priced at or
// below and wants the lowest first.
func opposingPrices(current Projection, opposing []Projection) []decimal.Decimal {
	seen := make(map[string]struct{})
	prices := make([]decimal.Decimal, 0, len(opposing))
	for _, o := range opposing {
		if o.ForOutcome == current.ForOutcome {
			continue
		}
		if current.ForOutcome {
			if o.Price.LessThan(current.Price) {
				continue
			}
		} else {
			if o.Price.GreaterThan(current.Price) {
				continue
			}
		}
		// keyed at ledger precision so value-equal prices with
		// different exponents collapse into one bucket
		key := o.Price.StringFixed(types.PriceDecimalPlaces)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		prices = append(prices, o.Price)
	}

	sort.Slice(prices, func(i, j int) bool {
		if current.ForOutcome {
			return prices[i].GreaterThan(prices[j])
		}
		return prices[i].LessThan(prices[j])
	})
	return prices
}
