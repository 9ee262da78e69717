package gekko

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrCycle              = errors.New("entity cannot become its own ancestor")
	ErrNoEntity           = errors.New("no such entity")
	ErrUnknownComponent   = errors.New("unknown component kind")
	ErrMissingResource    = errors.New("missing resource")
	ErrAlreadyInitialized = errors.New("renderer already initialized")
)

// ConfigError locates a malformed scene descriptor, e.g. "player.components[1]".
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
