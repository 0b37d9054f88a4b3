package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoScript = `version = 1

[window]
line_delay = 5
typing_delay = 1
start_delay = 5
directory = "~/demo"

[[lines]]
kind = "input"
content = 'make <span class="accent">demo</span>'

[[lines]]
kind = "progress"
progress_percent = 50

[[lines]]
content = "built &lt;ok&gt;"

[image]
src = "shot.png"
alt = "screenshot"
index = 1
image_time = 5
`

func TestVersionPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestRenderPrintsFinalFrame(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeScriptFixture(home, "demo", demoScript))

	stdout, _, err := executeCLI(t, home, "render", "demo", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, stdout, "~/demo$ make demo")
	assert.Contains(t, stdout, "50%")
	assert.Contains(t, stdout, "built <ok>")
	assert.Contains(t, stdout, "restart")
	assert.Contains(t, stdout, "▣ screenshot")
	assert.NotContains(t, stdout, "fast-forward")
}

func TestRenderRejectsUnknownColorMode(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeScriptFixture(home, "demo", demoScript))

	_, _, err := executeCLI(t, home, "render", "demo", "--color", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --color")
}

func TestRenderByPath(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(t.TempDir(), "elsewhere.toml")
	require.NoError(t, os.WriteFile(path, []byte(demoScript), 0o644))

	stdout, _, err := executeCLI(t, home, "render", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "elsewhere")
	assert.Contains(t, stdout, "built <ok>")
}

func TestRenderRealtimeShowsSpinnerMessage(t *testing.T) {
	home := t.TempDir()
	slow := strings.Replace(demoScript, "start_delay = 5", "start_delay = 300", 1)
	require.NoError(t, writeScriptFixture(home, "demo", slow))

	stdout, stderr, err := executeCLI(t, home, "render", "demo", "--realtime")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Playing demo")
	assert.Contains(t, stderr, "/3")
	assert.Contains(t, stdout, "built <ok>")
}

func TestRenderMissingScript(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "render", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script not found")
}

func TestRenderRejectsLinesOutsideWindow(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeScriptFixture(home, "orphan", "[[lines]]\ncontent = \"lost\"\n"))

	_, _, err := executeCLI(t, home, "render", "orphan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line declared outside a window")
}

func TestInspectShowsResolvedConfiguration(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeScriptFixture(home, "demo", demoScript))

	stdout, _, err := executeCLI(t, home, "inspect", "demo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Script: demo")
	assert.Contains(t, stdout, "start delay: 5ms")
	assert.Contains(t, stdout, "line 5ms  typing 1ms")
	assert.Contains(t, stdout, "~/demo$ make demo")
	assert.Contains(t, stdout, "[image] shot.png")
}

func TestInspectJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeScriptFixture(home, "demo", demoScript))

	stdout, _, err := executeCLI(t, home, "inspect", "demo", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Script\": \"demo\"")
	assert.Contains(t, stdout, "\"Kind\": \"progress\"")
}

func TestNewThenListThenRender(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no scripts in")

	stdout, _, err = executeCLI(t, home, "new", "sample")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(home, ".config", "termdemo", "scripts", "sample.toml"))

	_, _, err = executeCLI(t, home, "new", "sample")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script already exists")

	_, _, err = executeCLI(t, home, "new", "sample", "--force")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "list")
	require.NoError(t, err)
	assert.Equal(t, "sample\n", stdout)

	stdout, _, err = executeCLI(t, home, "render", "sample", "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, stdout, "installed")
}

func TestScriptsDirFromEnvironment(t *testing.T) {
	home := t.TempDir()
	scriptsDir := filepath.Join(t.TempDir(), "custom")
	t.Setenv("TERMDEMO_SCRIPTS_DIR", scriptsDir)

	stdout, _, err := executeCLI(t, home, "new", "demo")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(scriptsDir, "demo.toml"))
}

func TestLogFileReceivesEngineLogs(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeScriptFixture(home, "demo", demoScript))
	logPath := filepath.Join(t.TempDir(), "termdemo.log")

	_, _, err := executeCLI(t, home, "render", "demo", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}

func TestPlayRequiresTerminal(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeScriptFixture(home, "demo", demoScript))

	_, _, err := executeCLI(t, home, "play", "demo")
	require.ErrorIs(t, err, errNotATerminal)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScriptFixture(home, name, content string) error {
	scriptsDir := filepath.Join(home, ".config", "termdemo", "scripts")
	if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(scriptsDir, name+".toml"), []byte(content), 0o644)
}
