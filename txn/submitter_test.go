package txn_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/txn"
	"github.com/MonacoProtocol/crank/types"
	"github.com/MonacoProtocol/crank/wallet"
)

type fakeSender struct {
	submitted [][]byte
	// transaction ids whose confirmation should fail
	failConfirm map[types.TxID]bool
}

func (f *fakeSender) LatestBlockRef(_ context.Context) (types.BlockRef, error) {
	return types.BlockRef("block-ref"), nil
}

func (f *fakeSender) SubmitTransaction(_ context.Context, raw []byte) (types.TxID, error) {
	f.submitted = append(f.submitted, raw)
	return types.TxID(string(rune('a' + len(f.submitted) - 1))), nil
}

func (f *fakeSender) ConfirmTransaction(_ context.Context, id types.TxID) error {
	if f.failConfirm[id] {
		return errors.New("transaction dropped")
	}
	return nil
}

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	seed := bytes.Repeat([]byte{7}, ed25519.SeedSize)
	w, err := wallet.FromPrivateKey(ed25519.NewKeyFromSeed(seed))
	require.NoError(t, err)
	return w
}

func testSubmitterConfig() txn.Config {
	cfg := txn.NewDefaultConfig()
	cfg.BatchSize = 2
	cfg.MaxRetries = 0
	cfg.ConfirmTimeout = encoding.Duration{Duration: time.Second}
	return cfg
}

func TestSubmitAllEmptyIsNoOp(t *testing.T) {
	sender := &fakeSender{}
	s := txn.NewSubmitter(logging.NewTestLogger(), testSubmitterConfig(), sender, testWallet(t))

	s.SubmitAll(context.Background(), testAddr(9), nil)
	assert.Empty(t, sender.submitted)
}

func TestSubmitAllBatches(t *testing.T) {
	sender := &fakeSender{}
	s := txn.NewSubmitter(logging.NewTestLogger(), testSubmitterConfig(), sender, testWallet(t))

	s.SubmitAll(context.Background(), testAddr(9), instructions(5))
	assert.Len(t, sender.submitted, 3)
}

func TestSubmitAllBatchFailureIsolated(t *testing.T) {
	sender := &fakeSender{
		failConfirm: map[types.TxID]bool{"a": true},
	}
	s := txn.NewSubmitter(logging.NewTestLogger(), testSubmitterConfig(), sender, testWallet(t))

	// first batch fails confirmation, remaining batches still go out
	s.SubmitAll(context.Background(), testAddr(9), instructions(6))
	assert.Len(t, sender.submitted, 3)
}

func TestSignedTransactionVerifies(t *testing.T) {
	w := testWallet(t)
	tx := txn.Transaction{
		BlockRef:     "block-ref",
		FeePayer:     w.PublicKey(),
		Instructions: instructions(2),
	}
	msg := tx.Message()
	assert.True(t, w.Verify(msg, w.Sign(msg)))
}

func TestTransactionMessageDeterministic(t *testing.T) {
	tx := txn.Transaction{
		BlockRef:     "block-ref",
		FeePayer:     testAddr(1),
		Instructions: instructions(3),
	}
	assert.Equal(t, tx.Message(), tx.Message())
}
