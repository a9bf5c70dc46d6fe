package crank

import (
	"time"

	"github.com/MonacoProtocol/crank/config/encoding"
	"github.com/MonacoProtocol/crank/logging"
)

// Config represent the configuration of the crank service
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	Delay encoding.Duration `long:"delay" description:"pause between crank cycles"`
}

// NewDefaultConfig creates an instance of the package specific configuration
func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
		Delay: encoding.Duration{Duration: 10 * time.Second},
	}
}
