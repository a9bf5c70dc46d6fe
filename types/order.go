package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order as recorded on the ledger.
type OrderStatus int32

const (
	// OrderStatusOpen - the order has unmatched stake and sits in a
	// matching pool.
	OrderStatusOpen OrderStatus = iota
	// OrderStatusMatched - the order has been matched at least once; it may
	// still carry unmatched stake.
	OrderStatusMatched
	// OrderStatusSettledWin - terminal, the order won and was paid out.
	OrderStatusSettledWin
	// OrderStatusSettledLose - terminal, the order lost.
	OrderStatusSettledLose
	// OrderStatusCancelled - terminal, the order was cancelled and refunded.
	OrderStatusCancelled
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusOpen:        "open",
	OrderStatusMatched:     "matched",
	OrderStatusSettledWin:  "settledWin",
	OrderStatusSettledLose: "settledLose",
	OrderStatusCancelled:   "cancelled",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ErrUnknownOrderStatus signals an order status name that the ledger
// program does not define.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// OrderStatusFromString resolves an order status by its ledger-side name.
func OrderStatusFromString(s string) (OrderStatus, error) {
	for status, name := range orderStatusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownOrderStatus, "%q", s)
}

// Order is a resting order recorded on the ledger. It is created by the
// purchaser and mutated only by the ledger program; this process never
// writes to it directly.
type Order struct {
	Market             Address         `json:"market"`
	MarketOutcomeIndex uint16          `json:"marketOutcomeIndex"`
	ForOutcome         bool            `json:"forOutcome"`
	Purchaser          Address         `json:"purchaser"`
	Stake              decimal.Decimal `json:"stake"`
	ExpectedPrice      decimal.Decimal `json:"expectedPrice"`
	StakeUnmatched     decimal.Decimal `json:"stakeUnmatched"`
	Status             OrderStatus     `json:"orderStatus"`
	CreationTimestamp  int64           `json:"creationTimestamp"`
}

// IsMatchable reports whether the order can still take part in matching:
// open, or matched with unmatched stake remaining.
func (o *Order) IsMatchable() bool {
	switch o.Status {
	case OrderStatusOpen:
		return true
	case OrderStatusMatched:
		return o.StakeUnmatched.IsPositive()
	default:
		return false
	}
}

// OrderRecord pairs an order with the address it lives at.
type OrderRecord struct {
	Address Address `json:"address"`
	Order   Order   `json:"account"`
}
