package ledger

import (
	"context"

	"github.com/MonacoProtocol/crank/types"
)

// OrderReader fetches order records from the ledger.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/order_reader_mock.go -package mocks github.com/MonacoProtocol/crank/ledger OrderReader
type OrderReader interface {
	// ListOrders returns all orders with the given status, optionally
	// restricted to one market.
	ListOrders(ctx context.Context, status types.OrderStatus, market *types.Address) ([]types.OrderRecord, error)
	// Order fetches a single order account.
	Order(ctx context.Context, addr types.Address) (*types.Order, error)
}

// MarketReader fetches market records from the ledger.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/market_reader_mock.go -package mocks github.com/MonacoProtocol/crank/ledger MarketReader
type MarketReader interface {
	ListMarkets(ctx context.Context, status types.MarketStatus) ([]types.MarketRecord, error)
	Market(ctx context.Context, addr types.Address) (*types.Market, error)
}

// PoolReader fetches matching pool accounts from the ledger.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/pool_reader_mock.go -package mocks github.com/MonacoProtocol/crank/ledger PoolReader
type PoolReader interface {
	MatchingPool(ctx context.Context, addr types.Address) (*types.MatchingPool, error)
}

// TxSender submits signed transactions to the ledger and awaits their
// confirmation.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/tx_sender_mock.go -package mocks github.com/MonacoProtocol/crank/ledger TxSender
type TxSender interface {
	LatestBlockRef(ctx context.Context) (types.BlockRef, error)
	SubmitTransaction(ctx context.Context, raw []byte) (types.TxID, error)
	ConfirmTransaction(ctx context.Context, id types.TxID) error
}

// Client is the full ledger interface boundary this process depends on.
type Client interface {
	OrderReader
	MarketReader
	PoolReader
	TxSender
}
