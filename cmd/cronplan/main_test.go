package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/cronplan/internal/constants"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath = constants.DefaultConfigPath
	envPath = filepath.Join(t.TempDir(), ".env")
	crontabUser = ""
	logLevel = ""
	logFormat = ""
	compileNext = 0
	quickstartPath = constants.DefaultPlanPath
	quickstartForce = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

// fakeCrontab writes a crontab(1) stand-in keeping its state in dir/state and
// the -u argument in dir/user, plus a config file pointing at it.
func fakeCrontab(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake crontab requires /bin/sh")
	}

	dir = t.TempDir()
	binary := filepath.Join(dir, "crontab")
	script := `#!/bin/sh
STATE="` + dir + `/state"
if [ "$1" = "-l" ]; then
  if [ "$2" = "-u" ]; then echo "$3" > "` + dir + `/user"; fi
  if [ -f "$STATE" ]; then cat "$STATE"; exit 0; fi
  echo "no crontab for tester" >&2
  exit 1
fi
if [ "$1" = "-u" ]; then echo "$2" > "` + dir + `/user"; shift 2; fi
cat "$1" > "$STATE"
`
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))

	cfgPath = filepath.Join(dir, "config.toml")
	cfg := "[logging]\nlevel = \"error\"\n\n[crontab]\nbinary = \"" + binary + "\"\n\n[metrics]\ntextfile = \"" + dir + "/cronplan.prom\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))
	return cfgPath, dir
}

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const planTOML = `
name = "main"
user = "web"

[[jobs]]
kind = "command"
task = "backup.sh"
every = "1.day"
at = "12:00"
`

const mainBlock = "# Begin Plan generated jobs for: main\n" +
	"0 12 * * * backup.sh\n" +
	"# End Plan generated jobs for: main\n"

func TestCommandStructure(t *testing.T) {
	expected := []string{"version", "config", "run", "compile", "quickstart", "check", "write", "update", "clear"}

	found := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, found[name], "command %q not registered", name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cronplan")
	assert.Contains(t, out, "Version: ")
}

func TestCompileCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{"every only", []string{"compile", "2.hour"}, "0 0,2,4,6,8,10,12,14,16,18,20,22 * * *\n", ""},
		{"every and at", []string{"compile", "1.day", "12:00"}, "0 12 * * *\n", ""},
		{"predefined", []string{"compile", "weekly"}, "@weekly\n", ""},
		{"invalid unit", []string{"compile", "2.fortnight"}, "", "unknown unit"},
		{"invalid combination", []string{"compile", "1.minute", "minute.5"}, "", "can not be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCompileCommand_Next(t *testing.T) {
	out, err := execute(t, "compile", "1.day", "12:00", "--next", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0 12 * * *", lines[0])
	assert.Contains(t, lines[1], "12:00:00")
	assert.NotEqual(t, lines[1], lines[2])
}

func TestQuickstartCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.toml")

	out, err := execute(t, "quickstart", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[add] writing '"+path+"'")
	assert.Contains(t, out, "[done]!")
	assert.FileExists(t, path)

	_, err = execute(t, "quickstart", "--path", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "quickstart", "--path", path, "--force")
	assert.NoError(t, err)

	out, err = execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 12 * * * echo 'hello from cronplan'")
}

func TestConfigValidateCommand(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.toml")
	require.NoError(t, os.WriteFile(valid, []byte("[logging]\nlevel = \"debug\"\n"), 0644))
	out, err := execute(t, "config", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, constants.MsgConfigValid)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[logging]\nlevel = \"loud\"\nformat = \"xml\"\n"), 0644))
	out, err = execute(t, "config", "validate", invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 configuration errors")
	assert.Contains(t, out, "invalid logging.level: loud")
	assert.Contains(t, out, "invalid logging.format: xml")

	_, err = execute(t, "config", "validate", filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "failed to load configuration")
}
