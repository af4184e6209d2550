package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/vigor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "vigor.yaml", `
addr: ":9090"
log_level: debug
initial_energy: "75"
metrics: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep their defaults")
	assert.Equal(t, 75.0, cfg.InitialEnergy, "weakly typed input accepts quoted numbers")
	assert.False(t, cfg.Metrics)
	assert.Equal(t, 75.0, cfg.InitialState().Energy)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "vigor.json", `{"log_format": "json", "initial_energy": 10}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10.0, cfg.InitialEnergy)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key": "stamina: 3\n",
		"bad level":   "log_level: loud\n",
		"bad format":  "log_format: xml\n",
		"broken yaml": "addr: [\n",
		"bad type":    "initial_energy: lots\n",
		"nan energy":  "initial_energy: .nan\n",
		"inf energy":  "initial_energy: -.inf\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "vigor.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:          "127.0.0.1:7000",
		EnvLogLevel:      "warn",
		EnvInitialEnergy: "-3.5",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, -3.5, cfg.InitialEnergy)

	env[EnvInitialEnergy] = "plenty"
	cfg = Default()
	assert.Error(t, cfg.ApplyEnv(lookup))
}

func TestApplyEnv_RejectsNonFiniteEnergy(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		t.Run(v, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == EnvInitialEnergy {
					return v, true
				}
				return "", false
			}
			cfg := Default()
			err := cfg.ApplyEnv(lookup)
			assert.ErrorIs(t, err, domain.ErrInvalidEnergy)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	// Registers cleanup for variables the .env file sets.
	t.Setenv(EnvAddr, "")
	require.NoError(t, os.Unsetenv(EnvAddr))
	t.Setenv(EnvLogLevel, "error")

	path := writeFile(t, ".env", "VIGOR_ADDR=:7070\nVIGOR_LOG_LEVEL=debug\n")
	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, ":7070", os.Getenv(EnvAddr))
	assert.Equal(t, "error", os.Getenv(EnvLogLevel), "existing variables win over the file")
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
