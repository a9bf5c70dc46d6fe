package types

import "github.com/pkg/errors"

// MarketStatus is the lifecycle state of a market as recorded on the ledger.
type MarketStatus int32

const (
	MarketStatusOpen MarketStatus = iota
	MarketStatusLocked
	MarketStatusReadyForSettlement
	MarketStatusSettled
)

var marketStatusNames = map[MarketStatus]string{
	MarketStatusOpen:               "open",
	MarketStatusLocked:             "locked",
	MarketStatusReadyForSettlement: "readyForSettlement",
	MarketStatusSettled:            "settled",
}

func (s MarketStatus) String() string {
	if name, ok := marketStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ErrUnknownMarketStatus signals a market status name that the ledger
// program does not define.
var ErrUnknownMarketStatus = errors.New("unknown market status")

// MarketStatusFromString resolves a market status by its ledger-side name.
func MarketStatusFromString(s string) (MarketStatus, error) {
	for status, name := range marketStatusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownMarketStatus, "%q", s)
}

// Market identifies a prediction market. Its lifecycle is managed
// externally; this process treats a market as usable only while its record
// can be fetched and deserialized.
type Market struct {
	Title        string       `json:"title"`
	MintAccount  Address      `json:"mintAccount"`
	OutcomeCount uint16       `json:"marketOutcomesCount"`
	Status       MarketStatus `json:"marketStatus"`
}

// MarketRecord pairs a market with the address it lives at.
type MarketRecord struct {
	Address Address `json:"address"`
	Market  Market  `json:"account"`
}
