package wallet

import (
	"crypto/ed25519"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/MonacoProtocol/crank/types"
)

var (
	// ErrInvalidKeyFile signals that the operator key file could not be
	// parsed into an ed25519 keypair.
	ErrInvalidKeyFile = errors.New("invalid operator key file")
)

// Wallet holds the crank operator's ed25519 keypair. The operator signs
// every transaction this process submits and pays its fees.
type Wallet struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// LoadFromFile reads a keypair from a JSON byte-array key file, the format
// ledger tooling writes. Both 64-byte (seed and public key) and 32-byte
// (seed only) arrays are accepted.
func LoadFromFile(path string) (*Wallet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read key file %s", path)
	}
	var bs []byte
	if err := json.Unmarshal(raw, &bs); err != nil {
		return nil, errors.Wrapf(ErrInvalidKeyFile, "%s: %v", path, err)
	}
	switch len(bs) {
	case ed25519.PrivateKeySize:
		return FromPrivateKey(ed25519.PrivateKey(bs))
	case ed25519.SeedSize:
		return FromPrivateKey(ed25519.NewKeyFromSeed(bs))
	default:
		return nil, errors.Wrapf(ErrInvalidKeyFile, "%s: unexpected key length %d", path, len(bs))
	}
}

// FromPrivateKey wraps an existing private key.
func FromPrivateKey(priv ed25519.PrivateKey) (*Wallet, error) {
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok || len(pub) != types.AddressLen {
		return nil, ErrInvalidKeyFile
	}
	return &Wallet{pub: pub, priv: priv}, nil
}

// PublicKey returns the operator account address.
func (w *Wallet) PublicKey() types.Address {
	var addr types.Address
	copy(addr[:], w.pub)
	return addr
}

// Sign signs the given transaction message.
func (w *Wallet) Sign(msg []byte) []byte {
	return ed25519.Sign(w.priv, msg)
}

// Verify checks a signature produced by Sign, for use in tests.
func (w *Wallet) Verify(msg, sig []byte) bool {
	return ed25519.Verify(w.pub, msg, sig)
}
