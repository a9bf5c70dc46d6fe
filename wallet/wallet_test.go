package wallet_test

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonacoProtocol/crank/wallet"
)

func writeKeyFile(t *testing.T, bs []byte) string {
	t.Helper()
	raw, err := json.Marshal(bs)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "operator.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLoadFromFileFullKeypair(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, ed25519.SeedSize)
	priv := ed25519.NewKeyFromSeed(seed)

	w, err := wallet.LoadFromFile(writeKeyFile(t, priv))
	require.NoError(t, err)
	assert.Equal(t, []byte(priv.Public().(ed25519.PublicKey)), w.PublicKey().Bytes())
}

func TestLoadFromFileSeedOnly(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, ed25519.SeedSize)

	w, err := wallet.LoadFromFile(writeKeyFile(t, seed))
	require.NoError(t, err)

	full, err := wallet.FromPrivateKey(ed25519.NewKeyFromSeed(seed))
	require.NoError(t, err)
	assert.Equal(t, full.PublicKey(), w.PublicKey())
}

func TestLoadFromFileRejectsBadLength(t *testing.T) {
	_, err := wallet.LoadFromFile(writeKeyFile(t, []byte{1, 2, 3}))
	assert.ErrorIs(t, err, wallet.ErrInvalidKeyFile)
}

func TestLoadFromFileRejectsNonJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operator.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := wallet.LoadFromFile(path)
	assert.ErrorIs(t, err, wallet.ErrInvalidKeyFile)
}

func TestSignVerify(t *testing.T) {
	seed := bytes.Repeat([]byte{9}, ed25519.SeedSize)
	w, err := wallet.FromPrivateKey(ed25519.NewKeyFromSeed(seed))
	require.NoError(t, err)

	msg := []byte("transaction message")
	sig := w.Sign(msg)
	assert.True(t, w.Verify(msg, sig))
	assert.False(t, w.Verify([]byte("tampered"), sig))
}
