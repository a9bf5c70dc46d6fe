package matching

import (
	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
)

const defaultMaxConcurrentGroups = 8

// Config represents the configuration of the matching engine
type Config struct {
	Level encoding.LogLevel `long:"level" description:"Log level for the matching engine"`

	// MaxConcurrentGroups bounds how many (market, outcome) groups are
	// matched at the same time within one cycle.
	MaxConcurrentGroups int `long:"max-concurrent-groups" description:"Maximum market/outcome groups matched concurrently"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:               encoding.LogLevel{Level: logging.InfoLevel},
		MaxConcurrentGroups: defaultMaxConcurrentGroups,
	}
}
