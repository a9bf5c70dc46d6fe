//lint:file-ignore SA5008 duplicated struct tags are ok for config

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/MonacoProtocol/crank/crank"
	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/matching"
	"github.com/MonacoProtocol/crank/metrics"
	"github.com/MonacoProtocol/crank/settlement"
	"github.com/MonacoProtocol/crank/txn"
	"github.com/MonacoProtocol/crank/wallet"
)

// Config ties together all other application configuration types.
type Config struct {
	Environment    string `long:"environment" description:"the ledger environment to operate against"`
	ProgramVariant string `long:"program-variant" description:"which deployed program variant to crank"`

	Logging    logging.Config    `group:"Logging" namespace:"logging"`
	Ledger     ledger.Config     `group:"Ledger" namespace:"ledger"`
	Wallet     wallet.Config     `group:"Wallet" namespace:"wallet"`
	Txn        txn.Config        `group:"Txn" namespace:"txn"`
	Matching   matching.Config   `group:"Matching" namespace:"matching"`
	Settlement settlement.Config `group:"Settlement" namespace:"settlement"`
	Crank      crank.Config      `group:"Crank" namespace:"crank"`
	Metrics    metrics.Config    `group:"Metrics" namespace:"metrics"`
}

// NewDefaultConfig returns a set of default configs for all crank packages,
// as specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		Environment:    "local",
		ProgramVariant: "stable",
		Logging:        logging.NewDefaultConfig(),
		Ledger:         ledger.NewDefaultConfig(),
		Wallet:         wallet.NewDefaultConfig(),
		Txn:            txn.NewDefaultConfig(),
		Matching:       matching.NewDefaultConfig(),
		Settlement:     settlement.NewDefaultConfig(),
		Crank:          crank.NewDefaultConfig(),
		Metrics:        metrics.NewDefaultConfig(),
	}
}

// FilePath returns the location of the configuration file under the given
// root path.
func FilePath(rootPath string) string {
	return filepath.Join(rootPath, configFileName)
}

// Read loads the configuration from rootPath on top of the defaults, so a
// partial file overrides only what it names.
func Read(rootPath string) (*Config, error) {
	buf, err := os.ReadFile(FilePath(rootPath))
	if err != nil {
		return nil, err
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write saves the configuration under rootPath, creating the directory if
// needed. Used to scaffold a fresh installation.
func Write(rootPath string, cfg Config) error {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return err
	}
	f, err := os.Create(FilePath(rootPath))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
