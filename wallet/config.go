package wallet

// Config represents the configuration of the operator wallet
type Config struct {
	KeyFile string `long:"key-file" description:"Path to the operator keypair file"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		KeyFile: "operator.json",
	}
}
