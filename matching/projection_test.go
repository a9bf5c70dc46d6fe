package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonacoProtocol/crank/types"
)

func testAddr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func record(addr, market, purchaser byte, outcome uint16, forOutcome bool, price string, status types.OrderStatus, unmatched string) types.OrderRecord {
	return types.OrderRecord{
		Address: testAddr(addr),
		Order: types.Order{
			Market:             testAddr(market),
			MarketOutcomeIndex: outcome,
			ForOutcome:         forOutcome,
			Purchaser:          testAddr(purchaser),
			ExpectedPrice:      decimal.RequireFromString(price),
			Stake:              decimal.RequireFromString(unmatched),
			StakeUnmatched:     decimal.RequireFromString(unmatched),
			Status:             status,
		},
	}
}

func TestBuildProjectionsCollapsesSameBucket(t *testing.T) {
	// two purchasers queued in the same bucket reduce to one projection
	records := []types.OrderRecord{
		record(1, 100, 10, 0, true, "1.9", types.OrderStatusOpen, "10"),
		record(2, 100, 11, 0, true, "1.9", types.OrderStatusOpen, "25"),
	}

	projections := BuildProjections(records)
	require.Len(t, projections, 1)
	assert.Equal(t, testAddr(100), projections[0].Market)
	assert.True(t, projections[0].ForOutcome)
	assert.True(t, projections[0].IsOpen)
}

func TestBuildProjectionsKeepsDistinctBuckets(t *testing.T) {
	records := []types.OrderRecord{
		record(1, 100, 10, 0, true, "1.9", types.OrderStatusOpen, "10"),
		record(2, 100, 10, 0, false, "1.9", types.OrderStatusOpen, "10"),
		record(3, 100, 10, 1, true, "1.9", types.OrderStatusOpen, "10"),
		record(4, 100, 10, 0, true, "2.0", types.OrderStatusOpen, "10"),
		record(5, 101, 10, 0, true, "1.9", types.OrderStatusOpen, "10"),
	}

	assert.Len(t, BuildProjections(records), 5)
}

func TestBuildProjectionsPreservesFirstAppearanceOrder(t *testing.T) {
	records := []types.OrderRecord{
		record(1, 100, 10, 0, true, "2.0", types.OrderStatusOpen, "10"),
		record(2, 100, 10, 0, true, "1.9", types.OrderStatusOpen, "10"),
		record(3, 100, 10, 0, true, "2.0", types.OrderStatusOpen, "5"),
	}

	projections := BuildProjections(records)
	require.Len(t, projections, 2)
	assert.True(t, projections[0].Price.Equal(decimal.RequireFromString("2.0")))
	assert.True(t, projections[1].Price.Equal(decimal.RequireFromString("1.9")))
}

func TestBuildProjectionsMarksFullyMatchedClosed(t *testing.T) {
	records := []types.OrderRecord{
		record(1, 100, 10, 0, true, "1.9", types.OrderStatusMatched, "0"),
	}

	projections := BuildProjections(records)
	require.Len(t, projections, 1)
	assert.False(t, projections[0].IsOpen)
}

func TestGroupByMarketAndOutcome(t *testing.T) {
	projections := BuildProjections([]types.OrderRecord{
		record(1, 100, 10, 0, true, "1.9", types.OrderStatusOpen, "10"),
		record(2, 100, 10, 1, true, "1.9", types.OrderStatusOpen, "10"),
		record(3, 101, 10, 0, true, "1.9", types.OrderStatusOpen, "10"),
	})

	byMarket := groupByMarket(projections)
	require.Len(t, byMarket, 2)
	assert.Len(t, byMarket[testAddr(100)], 2)
	assert.Len(t, byMarket[testAddr(101)], 1)

	byOutcome := groupByOutcome(byMarket[testAddr(100)])
	require.Len(t, byOutcome, 2)
	assert.Len(t, byOutcome[0], 1)
	assert.Len(t, byOutcome[1], 1)
}
