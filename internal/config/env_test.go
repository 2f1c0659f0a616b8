package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		setupEnv map[string]string
		wantEnv  map[string]string
		wantErr  bool
	}{
		{
			name: "valid .env file",
			content: `
# Comment line
CRONPLAN_KEY1=value1
CRONPLAN_KEY2=value2

CRONPLAN_KEY3=value with spaces
`,
			wantEnv: map[string]string{
				"CRONPLAN_KEY1": "value1",
				"CRONPLAN_KEY2": "value2",
				"CRONPLAN_KEY3": "value with spaces",
			},
		},
		{
			name:    "empty file",
			content: "",
			wantEnv: map[string]string{},
		},
		{
			name: "export prefix and quotes",
			content: `export CRONPLAN_USER="deploy"
CRONPLAN_TEXTFILE='/var/lib/node_exporter/cronplan.prom'
CRONPLAN_HALF="open
`,
			wantEnv: map[string]string{
				"CRONPLAN_USER":     "deploy",
				"CRONPLAN_TEXTFILE": "/var/lib/node_exporter/cronplan.prom",
				"CRONPLAN_HALF":     `"open`,
			},
		},
		{
			name:     "existing variables are kept",
			content:  "CRONPLAN_KEEP=from-file\n",
			setupEnv: map[string]string{"CRONPLAN_KEEP": "from-env"},
			wantEnv:  map[string]string{"CRONPLAN_KEEP": "from-env"},
		},
		{
			name:    "value with equals sign",
			content: "CRONPLAN_DSN=a=b=c\n",
			wantEnv: map[string]string{"CRONPLAN_DSN": "a=b=c"},
		},
		{
			name:    "line without equals",
			content: "CRONPLAN_BROKEN\n",
			wantErr: true,
		},
		{
			name:    "empty key",
			content: "=value\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.setupEnv {
				t.Setenv(k, v)
			}
			for k := range tt.wantEnv {
				if _, ok := tt.setupEnv[k]; !ok {
					t.Setenv(k, "")
					os.Unsetenv(k)
				}
			}

			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			err := LoadEnv(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			for k, want := range tt.wantEnv {
				assert.Equal(t, want, os.Getenv(k), k)
			}
		})
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadEnvOptional(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, LoadEnvOptional(filepath.Join(dir, "missing.env")))
	})

	t.Run("existing file is loaded", func(t *testing.T) {
		t.Setenv("CRONPLAN_OPTIONAL", "")
		os.Unsetenv("CRONPLAN_OPTIONAL")

		path := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(path, []byte("CRONPLAN_OPTIONAL=yes\n"), 0644))

		require.NoError(t, LoadEnvOptional(path))
		assert.Equal(t, "yes", os.Getenv("CRONPLAN_OPTIONAL"))
	})
}
