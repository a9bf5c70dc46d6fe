package txn

import (
	"time"

	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
)

// Config represents the configuration of the transaction submitter
type Config struct {
	Level          encoding.LogLevel `long:"level" description:"Log level for the transaction submitter"`
	BatchSize      int               `long:"batch-size" description:"Instructions grouped into one transaction"`
	MaxRetries     uint64            `long:"max-retries" description:"Submission attempts per transaction before giving up"`
	ConfirmTimeout encoding.Duration `long:"confirm-timeout" description:"How long to wait for a transaction to confirm"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		BatchSize:      DefaultBatchSize,
		MaxRetries:     3,
		ConfirmTimeout: encoding.Duration{Duration: 30 * time.Second},
	}
}
