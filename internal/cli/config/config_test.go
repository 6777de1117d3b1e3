package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_Validate tests the Config.Validate method.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		errSubstr string
	}{
		{
			name: "valid text config",
			cfg:  Config{OutputFormat: "text", Indent: 2, Jobs: 4},
		},
		{
			name: "valid json config",
			cfg:  Config{OutputFormat: "json", Indent: 0, Jobs: 1},
		},
		{
			name:      "invalid output format",
			cfg:       Config{OutputFormat: "xml", Indent: 2, Jobs: 4},
			wantErr:   true,
			errSubstr: "invalid output format",
		},
		{
			name:      "negative indent",
			cfg:       Config{OutputFormat: "text", Indent: -1, Jobs: 4},
			wantErr:   true,
			errSubstr: "indent must be between",
		},
		{
			name:      "oversized indent",
			cfg:       Config{OutputFormat: "text", Indent: 32, Jobs: 4},
			wantErr:   true,
			errSubstr: "indent must be between",
		},
		{
			name:      "zero jobs",
			cfg:       Config{OutputFormat: "text", Indent: 2, Jobs: 0},
			wantErr:   true,
			errSubstr: "jobs must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestLoadConfig_Defaults verifies defaults apply with no file, env, or flags.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Pretty)
	assert.Equal(t, DefaultIndent, cfg.Indent)
	assert.Equal(t, DefaultJobs, cfg.Jobs)
	assert.NotEmpty(t, cfg.HistoryFile)
}

// TestLoadConfig_File verifies values are read from an explicit config file.
func TestLoadConfig_File(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "irkit.yaml")
	cfgContent := `pretty: true
indent: 4
jobs: 2
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Pretty)
	assert.Equal(t, 4, cfg.Indent)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override the config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "irkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: text\n"), 0600))

	t.Setenv("IRKIT_OUTPUT", "json")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat, "env var should override config file")
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "irkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent: 4\n"), 0600))

	t.Setenv("IRKIT_INDENT", "6")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("indent", DefaultIndent, "indent width")
	require.NoError(t, flags.Set("indent", "8"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Indent, "flag value should override config file and env var")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	t.Setenv("IRKIT_PRETTY", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("pretty", false, "pretty output")
	// Note: not calling flags.Set(), so Changed is false

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.True(t, cfg.Pretty, "env var should be used when flag is not set")
}

// TestLoadConfig_KebabFlagMapsToSnakeKey verifies the kebab->snake key mapping.
func TestLoadConfig_KebabFlagMapsToSnakeKey(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("history-file", "", "history file")
	require.NoError(t, flags.Set("history-file", "/tmp/hist"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
}

// TestLoadConfig_InvalidValuesRejected verifies validation runs on load.
func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "irkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("jobs: 0\n"), 0600))

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs must be at least 1")
}

// TestLoadConfig_MissingExplicitFile verifies an explicit missing file errors.
func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestResetConfig verifies Reset clears loaded state.
func TestResetConfig(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.NotNil(t, GetCurrentConfig())

	ResetConfig()
	assert.Nil(t, GetCurrentConfig())
	assert.Empty(t, GetConfigFileUsed())
}
