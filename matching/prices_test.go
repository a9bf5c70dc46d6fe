package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonacoProtocol/crank/types"
)

func projection(market byte, forOutcome bool, price string) Projection {
	return Projection{
		Market:     testAddr(market),
		Price:      decimal.RequireFromString(price),
		ForOutcome: forOutcome,
		IsOpen:     true,
	}
}

func priceStrings(prices []decimal.Decimal) []string {
	out := make([]string, len(prices))
	for i, p := range prices {
		out[i] = p.StringFixed(types.PriceDecimalPlaces)
	}
	return out
}

func TestOpposingPricesForOrder(t *testing.T) {
	current := projection(100, true, "1.9")
	opposing := []Projection{
		projection(100, false, "1.850"),
		projection(100, false, "1.900"),
		projection(100, false, "1.950"),
		projection(100, false, "2.000"),
	}

	prices := opposingPrices(current, opposing)
	// at or above own price, best for the taker first
	require.Len(t, prices, 3)
	assert.Equal(t, []string{"2.000", "1.950", "1.900"}, priceStrings(prices))
}

func TestOpposingPricesAgainstOrder(t *testing.T) {
	current := projection(100, false, "1.95")
	opposing := []Projection{
		projection(100, true, "2.000"),
		projection(100, true, "1.850"),
		projection(100, true, "1.950"),
		projection(100, true, "1.900"),
	}

	prices := opposingPrices(current, opposing)
	// at or below own price, lowest first
	require.Len(t, prices, 3)
	assert.Equal(t, []string{"1.850", "1.900", "1.950"}, priceStrings(prices))
}

func TestOpposingPricesSkipsSameSide(t *testing.T) {
	current := projection(100, true, "1.9")
	opposing := []Projection{
		projection(100, true, "2.000"),
	}

	assert.Empty(t, opposingPrices(current, opposing))
}

func TestOpposingPricesDeduplicates(t *testing.T) {
	current := projection(100, true, "1.9")
	opposing := []Projection{
		projection(100, false, "1.950"),
		projection(100, false, "1.950"),
	}

	assert.Len(t, opposingPrices(current, opposing), 1)
}

func TestOpposingPricesCollapsesEquivalentExponents(t *testing.T) {
	// 1.95 and 1.950 seed the same pool address, so they are one bucket
	current := projection(100, true, "1.9")
	opposing := []Projection{
		projection(100, false, "1.95"),
		projection(100, false, "1.950"),
	}

	assert.Len(t, opposingPrices(current, opposing), 1)
}
