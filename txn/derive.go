package txn

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"

	"github.com/MonacoProtocol/crank/types"
)

// Seeds used by the ledger program when deriving well known accounts.
var (
	escrowSeed    = []byte("escrow")
	tokenSeed     = []byte("token")
	operatorsSeed = []byte("CRANK")
)

// DeriveAddress computes the deterministic program-derived address for the
// given seeds. Seeds are length-prefixed so distinct seed lists can never
// collide on their concatenation.
func DeriveAddress(program types.Address, seeds ...[]byte) types.Address {
	h := sha256.New()
	h.Write(program.Bytes())
	var lenBuf [binary.MaxVarintLen64]byte
	for _, seed := range seeds {
		n := binary.PutUvarint(lenBuf[:], uint64(len(seed)))
		h.Write(lenBuf[:n])
		h.Write(seed)
	}
	var out types.Address
	copy(out[:], h.Sum(nil))
	return out
}

// EscrowAddress derives the escrow token account of a market.
func EscrowAddress(program, market types.Address) types.Address {
	return DeriveAddress(program, escrowSeed, market.Bytes())
}

// OutcomeAddress derives the account of one outcome within a market.
func OutcomeAddress(program, market types.Address, outcome uint16) types.Address {
	return DeriveAddress(program, market.Bytes(), outcomeSeed(outcome))
}

// PoolAddress derives the matching pool account for a
// (market, outcome, price, side) bucket. The price seed is the 3 fraction
// digit rendering the ledger program uses.
func PoolAddress(program types.Address, key types.PoolKey) types.Address {
	return DeriveAddress(program,
		key.Market.Bytes(),
		outcomeSeed(key.Outcome),
		[]byte(key.PriceString()),
		boolSeed(key.ForOutcome),
	)
}

// MarketPositionAddress derives a purchaser's position account in a market.
func MarketPositionAddress(program, purchaser, market types.Address) types.Address {
	return DeriveAddress(program, purchaser.Bytes(), market.Bytes())
}

// TradeAddress derives the trade record account for a matched pair. The
// ledger program keys trades by (against order, for order, side).
func TradeAddress(program, orderAgainst, orderFor types.Address, forOutcome bool) types.Address {
	return DeriveAddress(program, orderAgainst.Bytes(), orderFor.Bytes(), boolSeed(forOutcome))
}

// AuthorizedOperatorsAddress derives the account listing operators allowed
// to crank the program.
func AuthorizedOperatorsAddress(program types.Address) types.Address {
	return DeriveAddress(program, operatorsSeed)
}

// TokenAccountAddress derives the token account holding owner's balance of
// the given mint.
func TokenAccountAddress(program, owner, mint types.Address) types.Address {
	return DeriveAddress(program, owner.Bytes(), tokenSeed, mint.Bytes())
}

func outcomeSeed(outcome uint16) []byte {
	return []byte(strconv.FormatUint(uint64(outcome), 10))
}

func boolSeed(b bool) []byte {
	return []byte(strconv.FormatBool(b))
}
