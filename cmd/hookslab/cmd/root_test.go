package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hookslab/internal/config"
	"github.com/go-drift/hookslab/pkg/errors"
	"github.com/go-drift/hookslab/pkg/swapi"
)

type result struct {
	out    string
	errOut string
	err    error
}

// execute runs the CLI with a config path that does not exist, so only
// defaults, flags and the cleared environment apply.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	for _, key := range []string{config.EnvBaseURL, config.EnvTimeout, config.EnvLogFormat} {
		t.Setenv(key, "")
	}
	t.Cleanup(func() { errors.SetHandler(nil) })

	var out, errOut bytes.Buffer
	root := NewRootCommand(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), config.FileName)}, args...))
	err := root.ExecuteContext(context.Background())
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func fixtureURL(t *testing.T, opts ...swapi.FixtureOption) string {
	t.Helper()
	server := httptest.NewServer(swapi.NewFixtureServer(opts...))
	t.Cleanup(server.Close)
	return server.URL + "/api"
}

func TestVersion(t *testing.T) {
	r := execute(t, "", "version")

	require.NoError(t, r.err)
	assert.Contains(t, r.out, "hookslab version "+Version)
	assert.Contains(t, r.out, "development build")
}

func TestContextCommand(t *testing.T) {
	r := execute(t, "", "context")

	require.NoError(t, r.err)
	assert.Equal(t, "Hello World 123\n\n", r.out)
}

func TestSwitcherCommand(t *testing.T) {
	r := execute(t, "dark\n+\nquit\n", "switcher")

	require.NoError(t, r.err)
	assert.Contains(t, r.out, "{color=black background=white size=14}")
	assert.Contains(t, r.out, "{color=white background=black size=14}")
	assert.Contains(t, r.out, "{color=white background=black size=16}")
}

func TestRunCommand_Offline(t *testing.T) {
	r := execute(t, "+\nhide\n", "run", "--offline", "--latency", "0")

	require.NoError(t, r.err)
	assert.Contains(t, r.out, "id: 1\n")
	assert.Contains(t, r.out, "id: 2\n")
	assert.True(t, strings.HasSuffix(r.out, "[show]\n\n"), r.out)
	assert.Contains(t, r.errOut, "msg=mount")
	assert.Contains(t, r.errOut, "msg=unmount")
}

func TestRunCommand_Classic(t *testing.T) {
	r := execute(t, "+\nhide\n", "run", "--classic", "--base-url", fixtureURL(t))

	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, `msg="class: mount"`)
	assert.Contains(t, r.errOut, `msg="class: unmount"`)
}

func TestPlanetCommand_OnlyLastCommits(t *testing.T) {
	r := execute(t, "", "planet", "--base-url", fixtureURL(t, swapi.WithLatency(50*time.Millisecond)), "1", "2", "3")

	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.out,
		"planet 1: loading\nplanet 2: loading\nplanet 3: loading\nplanet 3: Yavin IV\n"), r.out)
	assert.NotContains(t, r.out, "Tatooine")
	assert.NotContains(t, r.out, "Alderaan")
}

func TestPlanetCommand_Offline(t *testing.T) {
	r := execute(t, "", "planet", "--offline", "4")

	require.NoError(t, r.err)
	assert.Contains(t, r.out, "planet 4: Hoth\n")
	assert.Contains(t, r.out, "climate: frozen")
}

func TestPlanetCommand_NotFound(t *testing.T) {
	r := execute(t, "", "planet", "--base-url", fixtureURL(t), "99")

	require.Error(t, r.err)
	assert.True(t, swapi.IsNotFound(r.err))
	assert.Contains(t, r.out, "planet 99: error")
}

func TestPlanetCommand_BadID(t *testing.T) {
	r := execute(t, "", "planet", "abc")

	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), `invalid planet id "abc"`)
}

func TestInvalidConfig(t *testing.T) {
	r := execute(t, "", "--base-url", "ftp://example.com", "context")

	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, config.ErrInvalid)
	assert.Contains(t, r.errOut, "Error:")
}

func TestStartFixture(t *testing.T) {
	fixture, err := startFixture("127.0.0.1:0", 0)
	require.NoError(t, err)
	defer fixture.close()

	resp, err := http.Get(fixture.baseURL + "/planets/1/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var planet swapi.Planet
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&planet))
	assert.Equal(t, "Tatooine", planet.Name)
	assert.EqualValues(t, 1, fixture.handler.Hits())
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.FormatJSON, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", "n", 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.EqualValues(t, 1, record["n"])
}
