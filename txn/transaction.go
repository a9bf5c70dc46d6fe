package txn

import (
	"bytes"
	"encoding/binary"

	"github.com/MonacoProtocol/crank/types"
)

// Transaction groups a batch of instructions with the block reference they
// are anchored to and the fee paying account.
type Transaction struct {
	BlockRef     types.BlockRef
	FeePayer     types.Address
	Instructions []Instruction
}

// Message serializes the transaction into the canonical byte form the
// operator signs. The encoding is deterministic: every variable length
// field is length-prefixed.
func (t *Transaction) Message() []byte {
	var buf bytes.Buffer
	writeBytes(&buf, []byte(t.BlockRef))
	buf.Write(t.FeePayer.Bytes())
	writeLen(&buf, len(t.Instructions))
	for _, ix := range t.Instructions {
		buf.Write(ix.Program.Bytes())
		disc := ix.Discriminator()
		buf.Write(disc[:])
		writeLen(&buf, len(ix.Accounts))
		for _, acc := range ix.Accounts {
			buf.Write(acc.Address.Bytes())
			buf.WriteByte(metaFlags(acc))
		}
	}
	return buf.Bytes()
}

// SignedTransaction is a transaction message with the operator signature
// over it.
type SignedTransaction struct {
	Message   []byte
	Signature []byte
	Signer    types.Address
}

// Encode returns the wire form submitted to the ledger node: signature,
// signer, then the signed message.
func (s *SignedTransaction) Encode() []byte {
	var buf bytes.Buffer
	writeBytes(&buf, s.Signature)
	buf.Write(s.Signer.Bytes())
	buf.Write(s.Message)
	return buf.Bytes()
}

func metaFlags(acc AccountMeta) byte {
	var flags byte
	if acc.Signer {
		flags |= 0x1
	}
	if acc.Writable {
		flags |= 0x2
	}
	return flags
}

func writeLen(buf *bytes.Buffer, n int) {
	var lenBuf [binary.MaxVarintLen64]byte
	written := binary.PutUvarint(lenBuf[:], uint64(n))
	buf.Write(lenBuf[:written])
}

func writeBytes(buf *bytes.Buffer, bs []byte) {
	writeLen(buf, len(bs))
	buf.Write(bs)
}
