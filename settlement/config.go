package settlement

import (
	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
)

const defaultMaxConcurrentGroups = 8

// Config represent the configuration of the settlement engine
type Config struct {
	Level               encoding.LogLevel `long:"log-level"`
	MaxConcurrentGroups int               `long:"max-concurrent-groups" description:"maximum number of markets settled concurrently"`
}

// NewDefaultConfig creates an instance of the package specific configuration
func NewDefaultConfig() Config {
	return Config{
		Level:               encoding.LogLevel{Level: logging.InfoLevel},
		MaxConcurrentGroups: defaultMaxConcurrentGroups,
	}
}
