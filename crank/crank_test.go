package crank

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/types"
)

func testAddr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

type fakeOrders struct {
	byStatus map[types.OrderStatus][]types.OrderRecord
	err      error
}

func (f *fakeOrders) ListOrders(_ context.Context, status types.OrderStatus, market *types.Address) ([]types.OrderRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []types.OrderRecord{}
	for _, rec := range f.byStatus[status] {
		if market != nil && rec.Order.Market != *market {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeOrders) Order(_ context.Context, _ types.Address) (*types.Order, error) {
	return nil, errors.New("not implemented")
}

type fakeMatcher struct {
	calls      int
	candidates []types.OrderRecord
}

func (f *fakeMatcher) MatchAll(_ context.Context, candidates []types.OrderRecord) {
	f.calls++
	f.candidates = candidates
}

type fakeSettler struct {
	calls int
	only  *types.Address
	err   error
}

func (f *fakeSettler) SettleAll(_ context.Context, only *types.Address) error {
	f.calls++
	f.only = only
	return f.err
}

func orderRecord(addr, market byte, status types.OrderStatus, unmatched string) types.OrderRecord {
	return types.OrderRecord{
		Address: testAddr(addr),
		Order: types.Order{
			Market:         testAddr(market),
			Status:         status,
			StakeUnmatched: decimal.RequireFromString(unmatched),
		},
	}
}

func newTestCrank(orders *fakeOrders, matcher *fakeMatcher, settler *fakeSettler) *Crank {
	return New(logging.NewTestLogger(), NewDefaultConfig(), orders, matcher, settler)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"match", KindMatch, false},
		{"MATCH", KindMatch, false},
		{"settle", KindSettle, false},
		{"Settle", KindSettle, false},
		{"unknown", KindUnknown, true},
		{"payout", KindUnknown, true},
		{"", KindUnknown, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			kind, err := ParseKind(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestRunOnceMatchGathersCandidates(t *testing.T) {
	orders := &fakeOrders{byStatus: map[types.OrderStatus][]types.OrderRecord{
		types.OrderStatusOpen: {
			orderRecord(1, 100, types.OrderStatusOpen, "10"),
		},
		types.OrderStatusMatched: {
			orderRecord(2, 100, types.OrderStatusMatched, "4"),
			orderRecord(3, 100, types.OrderStatusMatched, "0"),
		},
	}}
	matcher := &fakeMatcher{}
	c := newTestCrank(orders, matcher, &fakeSettler{})

	require.NoError(t, c.RunOnce(context.Background(), KindMatch, nil))

	require.Equal(t, 1, matcher.calls)
	// open plus partially matched, fully matched excluded
	require.Len(t, matcher.candidates, 2)
	assert.Equal(t, testAddr(1), matcher.candidates[0].Address)
	assert.Equal(t, testAddr(2), matcher.candidates[1].Address)
}

func TestRunOnceMatchRestrictsToMarket(t *testing.T) {
	orders := &fakeOrders{byStatus: map[types.OrderStatus][]types.OrderRecord{
		types.OrderStatusOpen: {
			orderRecord(1, 100, types.OrderStatusOpen, "10"),
			orderRecord(2, 101, types.OrderStatusOpen, "10"),
		},
	}}
	matcher := &fakeMatcher{}
	c := newTestCrank(orders, matcher, &fakeSettler{})

	market := testAddr(101)
	require.NoError(t, c.RunOnce(context.Background(), KindMatch, &market))

	require.Len(t, matcher.candidates, 1)
	assert.Equal(t, testAddr(2), matcher.candidates[0].Address)
}

func TestRunOnceSettleDelegates(t *testing.T) {
	settler := &fakeSettler{}
	c := newTestCrank(&fakeOrders{}, &fakeMatcher{}, settler)

	market := testAddr(100)
	require.NoError(t, c.RunOnce(context.Background(), KindSettle, &market))

	require.Equal(t, 1, settler.calls)
	require.NotNil(t, settler.only)
	assert.Equal(t, market, *settler.only)
}

func TestRunOnceUnknownKind(t *testing.T) {
	c := newTestCrank(&fakeOrders{}, &fakeMatcher{}, &fakeSettler{})
	assert.ErrorIs(t, c.RunOnce(context.Background(), KindUnknown, nil), ErrUnknownKind)
}

func TestRunOnceSurfacesListError(t *testing.T) {
	orders := &fakeOrders{err: errors.New("rpc timeout")}
	matcher := &fakeMatcher{}
	c := newTestCrank(orders, matcher, &fakeSettler{})

	assert.Error(t, c.RunOnce(context.Background(), KindMatch, nil))
	assert.Zero(t, matcher.calls)
}

func TestServiceStopsOnContextCancel(t *testing.T) {
	matcher := &fakeMatcher{}
	c := newTestCrank(&fakeOrders{}, matcher, &fakeSettler{})
	c.Delay = encoding.Duration{Duration: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Service(ctx, KindMatch)
	assert.ErrorIs(t, err, context.Canceled)
	// the cycle in flight completes before the service exits
	assert.Equal(t, 1, matcher.calls)
}

func TestServiceKeepsGoingAfterCycleFailure(t *testing.T) {
	orders := &fakeOrders{err: errors.New("rpc timeout")}
	c := newTestCrank(orders, &fakeMatcher{}, &fakeSettler{})
	c.Delay = encoding.Duration{Duration: time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, c.Service(ctx, KindMatch), context.DeadlineExceeded)
}

func TestServiceKeepsGoingOnUnknownKind(t *testing.T) {
	// an unrecognised kind fails every cycle but never stops the service
	c := newTestCrank(&fakeOrders{}, &fakeMatcher{}, &fakeSettler{})
	c.Delay = encoding.Duration{Duration: time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, c.Service(ctx, KindUnknown), context.DeadlineExceeded)
}
