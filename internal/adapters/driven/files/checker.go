// Package files provides a filesystem-backed implementation of the
// FileChecker port used to verify screenshot files exist on disk.
package files

import (
	"os"
	"path/filepath"

	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
)

// Ensure Checker implements the interface.
var _ driven.FileChecker = (*Checker)(nil)

// Checker reports file existence under a fixed images directory.
type Checker struct {
	root string
}

// NewChecker creates a checker rooted at the given images directory.
func NewChecker(root string) *Checker {
	return &Checker{root: root}
}

// Exists reports whether the named file is present and is a regular
// file. Only the base name is used so records cannot escape the
// images directory.
func (c *Checker) Exists(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(c.root, filepath.Base(name)))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
