package txn_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MonacoProtocol/crank/txn"
	"github.com/MonacoProtocol/crank/types"
)

func testAddr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func TestDeriveAddressDeterministic(t *testing.T) {
	program := testAddr(1)
	a := txn.DeriveAddress(program, []byte("order"), testAddr(2).Bytes())
	b := txn.DeriveAddress(program, []byte("order"), testAddr(2).Bytes())
	assert.Equal(t, a, b)
}

func TestDeriveAddressSeedBoundaries(t *testing.T) {
	program := testAddr(1)
	// seed lists with identical concatenations must not collide
	a := txn.DeriveAddress(program, []byte("ab"), []byte("c"))
	b := txn.DeriveAddress(program, []byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
}

func TestTradeAddressDistinguishesSides(t *testing.T) {
	program := testAddr(1)
	against, forOrder := testAddr(2), testAddr(3)
	assert.NotEqual(t,
		txn.TradeAddress(program, against, forOrder, true),
		txn.TradeAddress(program, against, forOrder, false),
	)
}

func TestPoolAddressNormalizesPriceRendering(t *testing.T) {
	program := testAddr(1)
	key := func(price string) types.PoolKey {
		return types.PoolKey{
			Market:     testAddr(2),
			Outcome:    1,
			Price:      decimal.RequireFromString(price),
			ForOutcome: true,
		}
	}
	// 1.9 and 1.90 are the same bucket: seeds carry 3 fraction digits
	assert.Equal(t,
		txn.PoolAddress(program, key("1.9")),
		txn.PoolAddress(program, key("1.900")),
	)
	assert.NotEqual(t,
		txn.PoolAddress(program, key("1.9")),
		txn.PoolAddress(program, key("1.901")),
	)
}

func TestPoolAddressDistinguishesSides(t *testing.T) {
	program := testAddr(1)
	key := types.PoolKey{
		Market:     testAddr(2),
		Outcome:    0,
		Price:      decimal.RequireFromString("2.5"),
		ForOutcome: true,
	}
	flipped := key
	flipped.ForOutcome = false
	assert.NotEqual(t, txn.PoolAddress(program, key), txn.PoolAddress(program, flipped))
}

func TestDiscriminatorStable(t *testing.T) {
	a := txn.Instruction{Method: txn.MethodMatchOrders}.Discriminator()
	b := txn.Instruction{Method: txn.MethodMatchOrders}.Discriminator()
	c := txn.Instruction{Method: txn.MethodSettleOrder}.Discriminator()
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
