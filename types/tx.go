package types

// BlockRef is a recent block reference a transaction is anchored to. The
// ledger rejects transactions anchored to a reference that has expired.
type BlockRef string

// TxID identifies a submitted transaction.
type TxID string
