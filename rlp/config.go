package rlp

import "fmt"

// Config holds the resource limits applied by Encoder and Decoder.
type Config struct {
	// MaxDepth is the maximum list nesting depth. A top-level list has
	// depth zero, so MaxDepth 1 permits lists of strings only.
	MaxDepth int

	// MaxInputSize is the largest input, in bytes, the decoder accepts.
	MaxInputSize int
}

// DefaultConfig contains the limits used by the package-level functions.
var DefaultConfig = Config{
	MaxDepth:     1024,
	MaxInputSize: 32 * 1024 * 1024,
}

// withDefaults fills zero fields from DefaultConfig.
func (cfg Config) withDefaults() Config {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultConfig.MaxDepth
	}
	if cfg.MaxInputSize == 0 {
		cfg.MaxInputSize = DefaultConfig.MaxInputSize
	}
	return cfg
}

// Check validates the limits. Zero values are allowed and mean "default".
func (cfg Config) Check() error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("rlp: invalid MaxDepth %d", cfg.MaxDepth)
	}
	if cfg.MaxInputSize < 0 {
		return fmt.Errorf("rlp: invalid MaxInputSize %d", cfg.MaxInputSize)
	}
	return nil
}
