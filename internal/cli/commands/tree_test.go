package commands

import (
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/stylist/internal/cli/testutil"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{"src/clean.f90": cleanProgram})

	out, _, err := execute(t, NewTreeCommand(), filepath.Join(dir, "src", "clean.f90"))
	require.NoError(t, err)
	assert.Contains(t, out, "Main_Program")
	assert.Contains(t, out, "Implicit_Stmt @2")
}

func TestTreeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.f90", "program p\n  x = 'open\nend program p\n")
	cfile := writeFile(t, dir, "thing.c", "int main() { return 0; }\n")

	_, _, err := execute(t, NewTreeCommand(), broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at line 2")

	_, _, err = execute(t, NewTreeCommand(), cfile)
	require.ErrorIs(t, err, source.ErrNotSupported)

	_, _, err = execute(t, NewTreeCommand(), writeFile(t, dir, "x.unknown", ""))
	require.ErrorIs(t, err, source.ErrUnknownExtension)
}
