package txn

import (
	"crypto/sha256"

	"github.com/MonacoProtocol/crank/types"
)

// Ledger program methods this process invokes.
const (
	MethodMatchOrders              = "match_orders"
	MethodSettleOrder              = "settle_order"
	MethodCompleteMarketSettlement = "complete_market_settlement"
)

// AccountMeta names one account an instruction touches.
type AccountMeta struct {
	Name     string
	Address  types.Address
	Signer   bool
	Writable bool
}

// Instruction is a fully specified ledger program call: the program, the
// method, and every account the method touches, in the order the program
// declares them.
type Instruction struct {
	Program  types.Address
	Method   string
	Accounts []AccountMeta
}

// Discriminator returns the 8-byte method discriminator encoded at the
// front of the instruction data.
func (ix Instruction) Discriminator() [8]byte {
	sum := sha256.Sum256([]byte("global:" + ix.Method))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// MatchAccounts carries every account of a match_orders call. The for and
// against roles are fixed by the participating orders' sides, never by
// which pool the engine walked first.
type MatchAccounts struct {
	OrderFor              types.Address
	OrderAgainst          types.Address
	TradeFor              types.Address
	TradeAgainst          types.Address
	Market                types.Address
	MarketPositionFor     types.Address
	MarketPositionAgainst types.Address
	MarketOutcome         types.Address
	PoolFor               types.Address
	PoolAgainst           types.Address
	TokenAccountFor       types.Address
	TokenAccountAgainst   types.Address
	Mint                  types.Address
	Escrow                types.Address
	Operator              types.Address
	AuthorizedOperators   types.Address
}

// MatchOrders builds a match_orders instruction.
func MatchOrders(program types.Address, acc MatchAccounts) Instruction {
	return Instruction{
		Program: program,
		Method:  MethodMatchOrders,
		Accounts: []AccountMeta{
			{Name: "orderFor", Address: acc.OrderFor, Writable: true},
			{Name: "orderAgainst", Address: acc.OrderAgainst, Writable: true},
			{Name: "tradeFor", Address: acc.TradeFor, Writable: true},
			{Name: "tradeAgainst", Address: acc.TradeAgainst, Writable: true},
			{Name: "market", Address: acc.Market},
			{Name: "marketPositionFor", Address: acc.MarketPositionFor, Writable: true},
			{Name: "marketPositionAgainst", Address: acc.MarketPositionAgainst, Writable: true},
			{Name: "marketOutcome", Address: acc.MarketOutcome},
			{Name: "marketMatchingPoolFor", Address: acc.PoolFor, Writable: true},
			{Name: "marketMatchingPoolAgainst", Address: acc.PoolAgainst, Writable: true},
			{Name: "crankOperator", Address: acc.Operator, Signer: true},
			{Name: "authorisedOperators", Address: acc.AuthorizedOperators},
			{Name: "purchaserTokenAccountFor", Address: acc.TokenAccountFor, Writable: true},
			{Name: "purchaserTokenAccountAgainst", Address: acc.TokenAccountAgainst, Writable: true},
			{Name: "mint", Address: acc.Mint},
			{Name: "marketEscrow", Address: acc.Escrow, Writable: true},
		},
	}
}

// SettleAccounts carries every account of a settle_order call.
type SettleAccounts struct {
	Order               types.Address
	Market              types.Address
	Purchaser           types.Address
	PurchaserToken      types.Address
	MarketPosition      types.Address
	Escrow              types.Address
	Operator            types.Address
	AuthorizedOperators types.Address
}

// SettleOrder builds a settle_order instruction.
func SettleOrder(program types.Address, acc SettleAccounts) Instruction {
	return Instruction{
		Program: program,
		Method:  MethodSettleOrder,
		Accounts: []AccountMeta{
			{Name: "order", Address: acc.Order, Writable: true},
			{Name: "market", Address: acc.Market},
			{Name: "purchaser", Address: acc.Purchaser},
			{Name: "purchaserTokenAccount", Address: acc.PurchaserToken, Writable: true},
			{Name: "marketPosition", Address: acc.MarketPosition, Writable: true},
			{Name: "marketEscrow", Address: acc.Escrow, Writable: true},
			{Name: "crankOperator", Address: acc.Operator, Signer: true},
			{Name: "authorisedOperators", Address: acc.AuthorizedOperators},
		},
	}
}

// CompleteMarketSettlement builds the instruction that closes out a market
// with no orders left to settle.
func CompleteMarketSettlement(program, market, operator types.Address) Instruction {
	return Instruction{
		Program: program,
		Method:  MethodCompleteMarketSettlement,
		Accounts: []AccountMeta{
			{Name: "market", Address: market, Writable: true},
			{Name: "crankOperator", Address: operator, Signer: true},
			{Name: "authorisedOperators", Address: AuthorizedOperatorsAddress(program)},
		},
	}
}
