package txn

// DefaultBatchSize is the number of instructions grouped into a single
// transaction. The ledger bounds transaction size; three match or settle
// instructions fit comfortably.
const DefaultBatchSize = 3

// Batch splits instructions into batches of at most size, preserving the
// emission order within and across batches. A non-positive size falls back
// to DefaultBatchSize.
func Batch(instructions []Instruction, size int) [][]Instruction {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if len(instructions) == 0 {
		return nil
	}
	batches := make([][]Instruction, 0, (len(instructions)+size-1)/size)
	for start := 0; start < len(instructions); start += size {
		end := start + size
		if end > len(instructions) {
			end = len(instructions)
		}
		batches = append(batches, instructions[start:end])
	}
	return batches
}
