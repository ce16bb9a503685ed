package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// cliEnv is an isolated pair of config and data directories with the
// SHELF_* environment cleared.
type cliEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	return &cliEnv{t: t, configDir: t.TempDir(), dataDir: t.TempDir()}
}

type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// run executes the root command in process with stdin as input.
func (e *cliEnv) run(stdin string, args ...string) cliResult {
	e.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return cliResult{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}

func (e *cliEnv) mustRun(stdin string, args ...string) cliResult {
	e.t.Helper()
	res := e.run(stdin, args...)
	require.NoError(e.t, res.Err, "stderr: %s", res.Stderr)
	return res
}

func setupCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	b := store.NewBackend(zerolog.Nop())
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })
	return catalog.New(b, zerolog.Nop())
}

// script joins answers into menu input, one per line.
func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// createJaneDoe answers option 1 for one author with one book and one copy.
var createJaneDoe = []string{
	"1",
	"Jane", "Doe", "British", "04/03/1970",
	"1",
	"First Light", "978-0-0", "01/06/2001", "320",
	"1",
	"EJ-1", "prestado", "Shelf A3",
}
