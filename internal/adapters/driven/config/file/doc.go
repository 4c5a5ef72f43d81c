// Package file provides a TOML file-based implementation of the
// ConfigStore port. Configuration lives at ~/.chrona/config.toml and
// nested tables are exposed through dot-notation keys.
package file
