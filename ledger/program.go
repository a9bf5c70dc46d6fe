package ledger

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/types"
)

const namedLogger = "ledger"

var (
	// ErrUnknownEnvironment signals that no programs are configured for the
	// requested deployment environment.
	ErrUnknownEnvironment = errors.New("no programs configured for environment")
	// ErrUnknownProgramVariant signals that the environment exists but does
	// not carry the requested program variant.
	ErrUnknownProgramVariant = errors.New("no program configured for variant")
)

// Program is a resolved handle onto the ledger program the crank targets.
type Program struct {
	ID          types.Address
	Environment string
	Variant     string
}

// ProgramRegistry resolves (environment, variant) pairs to program handles
// and caches them for the process lifetime, keyed by resolved address.
// Resolution failure is fatal to the caller: without a valid handle there
// is nothing to crank against.
type ProgramRegistry struct {
	Config
	log   *logging.Logger
	cache *lru.Cache[string, *Program]
}

// NewProgramRegistry builds a registry from configuration.
func NewProgramRegistry(log *logging.Logger, config Config) (*ProgramRegistry, error) {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	size := config.ProgramCacheSize
	if size <= 0 {
		size = defaultProgramCacheSize
	}
	cache, err := lru.New[string, *Program](size)
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialise program cache")
	}
	return &ProgramRegistry{
		Config: config,
		log:    log,
		cache:  cache,
	}, nil
}

// Resolve returns the program handle for the given environment and
// variant, reusing a previously resolved handle when one is cached.
func (r *ProgramRegistry) Resolve(environment, variant string) (*Program, error) {
	variants, ok := r.ProgramIDs[environment]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEnvironment, "%q", environment)
	}
	raw, ok := variants[variant]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProgramVariant, "%q in environment %q", variant, environment)
	}

	if program, ok := r.cache.Get(raw); ok {
		return program, nil
	}

	id, err := types.AddressFromString(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid program address for %s/%s", environment, variant)
	}
	program := &Program{
		ID:          id,
		Environment: environment,
		Variant:     variant,
	}
	r.cache.Add(raw, program)
	r.log.Info("resolved ledger program",
		logging.String("environment", environment),
		logging.String("variant", variant),
		logging.String("program", id.String()),
	)
	return program, nil
}
