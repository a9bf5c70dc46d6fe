package types_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonacoProtocol/crank/types"
)

func addr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func poolItems(bs ...byte) []types.Address {
	items := make([]types.Address, len(bs))
	for i, b := range bs {
		items[i] = addr(b)
	}
	return items
}

func TestQueuedContiguous(t *testing.T) {
	pool := types.MatchingPool{
		Front: 2,
		Len:   3,
		Items: poolItems(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
	}

	queued := pool.Queued()
	require.Len(t, queued, 3)
	assert.Equal(t, poolItems(2, 3, 4), queued)
}

func TestQueuedWrapsAroundBackingArray(t *testing.T) {
	pool := types.MatchingPool{
		Front: 8,
		Len:   5,
		Items: poolItems(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
	}

	queued := pool.Queued()
	require.Len(t, queued, 5)
	assert.Equal(t, poolItems(8, 9, 0, 1, 2), queued)
}

func TestQueuedFullQueueRotates(t *testing.T) {
	pool := types.MatchingPool{
		Front: 4,
		Len:   10,
		Items: poolItems(0, 1, 2, 3, 4, 5, 6, 7, 8, 9),
	}

	queued := pool.Queued()
	require.Len(t, queued, 10)
	assert.Equal(t, poolItems(4, 5, 6, 7, 8, 9, 0, 1, 2, 3), queued)
}

func TestQueuedEmptyIgnoresLiquidityCounter(t *testing.T) {
	pool := types.MatchingPool{
		Front:           3,
		Len:             0,
		Items:           poolItems(0, 1, 2, 3, 4),
		LiquidityAmount: decimal.RequireFromString("250"),
	}

	// the liquidity counter is advisory, an empty item list wins
	assert.Empty(t, pool.Queued())
}

func TestQueuedFrontBeyondBackingArray(t *testing.T) {
	// a front index outside the backing array can only come from a
	// corrupt or incompatible account, it must not be dereferenced
	pool := types.MatchingPool{
		Front: 7,
		Len:   2,
		Items: poolItems(0, 1, 2, 3, 4),
	}
	assert.Empty(t, pool.Queued())
}

func TestQueuedNoBackingArray(t *testing.T) {
	pool := types.MatchingPool{Front: 0, Len: 0}
	assert.Empty(t, pool.Queued())
}

func TestPoolKeyPriceString(t *testing.T) {
	key := types.PoolKey{
		Outcome:    1,
		Price:      decimal.RequireFromString("1.9"),
		ForOutcome: true,
	}
	// pool derivation seeds always carry 3 fraction digits
	assert.Equal(t, "1.900", key.PriceString())
}
