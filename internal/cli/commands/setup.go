package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/irkit-labs/irkit/internal/cli/config"
	"github.com/irkit-labs/irkit/pkg/repr"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext assembles the dependencies a command needs from its
// cobra context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// newPrinter builds a printer configured from the CLI settings.
func newPrinter(cfg *config.Config) *repr.Printer {
	p := repr.New()
	p.SetMultiline(cfg.Pretty)
	p.SetIndentWidth(cfg.Indent)
	return p
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables with defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Verbose:      os.Getenv("IRKIT_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("IRKIT_OUTPUT", config.DefaultOutput),
		Pretty:       os.Getenv("IRKIT_PRETTY") == "true",
		Indent:       getEnvIntOrDefault("IRKIT_INDENT", config.DefaultIndent),
		Jobs:         getEnvIntOrDefault("IRKIT_JOBS", config.DefaultJobs),
		HistoryFile:  getEnvOrDefault("IRKIT_HISTORY_FILE", config.DefaultHistoryFile()),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
