package ledger

import (
	"time"

	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
)

const defaultProgramCacheSize = 16

// Config represents the configuration of the ledger client
type Config struct {
	Level          encoding.LogLevel `long:"level" description:"Log level for the ledger client"`
	NodeAddress    string            `long:"node-address" description:"Address of the ledger node RPC endpoint"`
	RequestTimeout encoding.Duration `long:"request-timeout" description:"Timeout for a single ledger RPC call"`

	// ProgramIDs maps deployment environment -> program variant -> program
	// address, mirroring the deployment settings the crank is shipped with.
	ProgramIDs map[string]map[string]string `no-flag:"true"`

	ProgramCacheSize int `long:"program-cache-size" description:"Number of resolved program handles kept cached"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		NodeAddress:    "http://127.0.0.1:8899",
		RequestTimeout: encoding.Duration{Duration: 15 * time.Second},
		ProgramIDs: map[string]map[string]string{
			"local": {
				"stable": "5Q5oM4z5tnYszq5PXzvDRGD1sSscYFgvnyaSfHvMvSEP",
			},
		},
		ProgramCacheSize: defaultProgramCacheSize,
	}
}
