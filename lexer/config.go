// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the Lexer's operations.
	Config struct {
		Logger logrus.FieldLogger
		Debug  bool

		// MaxDepth bounds delimiter nesting within a single quote-like
		// construct.
		MaxDepth int
	}
)

const (
	// DefaultMaxDepth bounds nesting for paired quote-like delimiters.
	DefaultMaxDepth = 128

	emptyRune rune = 0
)

// DefaultConfig configures the Lexer's Config.
func DefaultConfig() *Config {
	return &Config{
		Logger:   logrus.New(),
		MaxDepth: DefaultMaxDepth,
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.MaxDepth < 1 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}
