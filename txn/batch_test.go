package txn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonacoProtocol/crank/txn"
	"github.com/MonacoProtocol/crank/types"
)

func instructions(n int) []txn.Instruction {
	out := make([]txn.Instruction, n)
	for i := range out {
		var program types.Address
		program[0] = byte(i + 1)
		out[i] = txn.Instruction{Program: program, Method: txn.MethodMatchOrders}
	}
	return out
}

func TestBatchSplitsAtSize(t *testing.T) {
	batches := txn.Batch(instructions(7), 3)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 3)
	assert.Len(t, batches[1], 3)
	assert.Len(t, batches[2], 1)
}

func TestBatchPreservesOrder(t *testing.T) {
	in := instructions(5)
	batches := txn.Batch(in, 2)
	require.Len(t, batches, 3)

	flattened := make([]txn.Instruction, 0, len(in))
	for _, b := range batches {
		flattened = append(flattened, b...)
	}
	assert.Equal(t, in, flattened)
}

func TestBatchEmptyInput(t *testing.T) {
	assert.Nil(t, txn.Batch(nil, 3))
}

func TestBatchNonPositiveSizeUsesDefault(t *testing.T) {
	batches := txn.Batch(instructions(txn.DefaultBatchSize+1), 0)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], txn.DefaultBatchSize)
}
