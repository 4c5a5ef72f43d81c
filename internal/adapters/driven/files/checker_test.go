package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_Exists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timesheet_submit.png"), []byte("png"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	checker := NewChecker(dir)

	assert.True(t, checker.Exists("timesheet_submit.png"))
	assert.False(t, checker.Exists("missing.png"))
	assert.False(t, checker.Exists(""))

	// Directories don't count as files.
	assert.False(t, checker.Exists("nested"))
}

func TestChecker_Exists_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login_screen.png"), []byte("png"), 0o644))

	checker := NewChecker(dir)

	assert.True(t, checker.Exists("screenshots/login_screen.png"))
	assert.True(t, checker.Exists("../login_screen.png"))
	assert.False(t, checker.Exists("../etc/passwd"))
}
