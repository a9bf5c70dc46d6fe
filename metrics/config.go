package metrics

import (
	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
)

// Config represents the configuration of the metric package
type Config struct {
	Level   encoding.LogLevel `long:"level" description:"Log level for the metrics endpoint"`
	Enabled encoding.Bool     `long:"enabled" choice:"true" choice:"false" description:"Whether metrics are enabled"`
	Port    int               `long:"port" description:"The port to expose metrics on"`
	Path    string            `long:"path" description:"The path to expose metrics at"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:   encoding.LogLevel{Level: logging.InfoLevel},
		Enabled: false,
		Port:    2112,
		Path:    "/metrics",
	}
}
