package config

import (
	"os"
	"path/filepath"
)

// RootPathFlag is the common flag locating the configuration directory,
// shared by every subcommand.
type RootPathFlag struct {
	RootPath string `short:"r" long:"root-path" description:"Path of the root directory in which the configuration is located"`
}

// NewRootPathFlag returns the flag preset with the default root directory.
func NewRootPathFlag() RootPathFlag {
	return RootPathFlag{RootPath: DefaultRootPath()}
}

// DefaultRootPath resolves the default configuration directory, the
// CRANK_HOME environment variable winning over the home directory default.
func DefaultRootPath() string {
	if home := os.Getenv("CRANK_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".crank"
	}
	return filepath.Join(home, ".crank")
}
