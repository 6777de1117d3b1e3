package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/irkit-labs/irkit/internal/starval"
	"github.com/irkit-labs/irkit/pkg/repr"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive expression REPL",
		Long: `Start an interactive session that evaluates Starlark expressions and
renders the results.

Dot-commands control the session; everything else is evaluated as a
Starlark expression.`,
		Example: `  irkit repl`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	printer := newPrinter(cmdCtx.Cfg)

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "irkit> ",
		HistoryFile:     cmdCtx.Cfg.HistoryFile,
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "irkit expression REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	// REPL loop
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(line, ".") {
			if handled := handleDotCommand(cmd, printer, line); handled {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		// Evaluate as a Starlark expression and render
		obj, err := starval.Eval(line)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		out, err := printer.Sprint(obj)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
	}

	return nil
}

func handleDotCommand(cmd *cobra.Command, printer *repr.Printer, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())
		return true

	case ".types":
		if err := runTypes(cmd); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".pretty":
		printer.SetMultiline(!printer.Multiline())
		state := "off"
		if printer.Multiline() {
			state = "on"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pretty rendering %s\n", state)
		return true

	case ".indent":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .indent <width>")
			return true
		}
		width, err := strconv.Atoi(parts[1])
		if err != nil || width < 0 || width > 16 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "indent width must be an integer between 0 and 16")
			return true
		}
		printer.SetIndentWidth(width)
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .types           List registered object types
  .pretty          Toggle multi-line rendering
  .indent <width>  Set the indent width for multi-line rendering
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - Expressions are Starlark: lists, dicts, tuples, comprehensions
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// replCompleter creates a readline completer for dot-commands.
func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".types"),
		readline.PcItem(".pretty"),
		readline.PcItem(".indent"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
