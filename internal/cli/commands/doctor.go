package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/irkit-labs/irkit/internal/cli/config"
	"github.com/irkit-labs/irkit/internal/starval"
	"github.com/irkit-labs/irkit/pkg/object"
	"github.com/irkit-labs/irkit/pkg/repr"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the irkit environment for problems",
		Long: `Run a set of health checks over the irkit environment:

- Configuration: which config file is in effect, environment overrides,
  and whether the REPL history location is writable
- Registry: the type hierarchy is intact and every concrete type
  resolves to a render handler
- Runtime: Starlark evaluation works

Checks report pass, warn, or error; warnings point at types that would
fail at render time.`,
		Example: `  # Run all checks
  irkit doctor

  # Machine-readable report
  irkit doctor --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

// checkResult is a single doctor finding.
type checkResult struct {
	Group  string `json:"group"`
	Name   string `json:"name"`
	Status string `json:"status"` // "pass", "warn", "error"
	Detail string `json:"detail,omitempty"`
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	checks := runChecks(cfg, repr.Default())

	if cfg.OutputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(checks)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Group", "Check", "Status", "Detail"})
	for _, c := range checks {
		t.AppendRow(table.Row{c.Group, c.Name, c.Status, c.Detail})
	}
	t.Render()

	passed, warned, failed := 0, 0, 0
	for _, c := range checks {
		switch c.Status {
		case "warn":
			warned++
		case "error":
			failed++
		default:
			passed++
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d checks: %d passed, %d warnings, %d errors\n",
		len(checks), passed, warned, failed)

	return nil
}

// runChecks runs every doctor check against the given configuration and
// handler registry.
func runChecks(cfg *config.Config, reg *repr.Registry) []checkResult {
	return []checkResult{
		checkConfigFile(),
		checkEnvOverrides(),
		checkHistoryDir(cfg),
		checkTypeHierarchy(),
		checkRenderCoverage(reg),
		checkStarlark(),
	}
}

func checkConfigFile() checkResult {
	c := checkResult{Group: "config", Name: "config file", Status: "pass"}
	if path := config.GetConfigFileUsed(); path != "" {
		c.Detail = path
	} else {
		c.Detail = "using built-in defaults"
	}
	return c
}

func checkEnvOverrides() checkResult {
	c := checkResult{Group: "config", Name: "environment overrides", Status: "pass"}

	var overrides []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "IRKIT_") {
			if name, _, ok := strings.Cut(kv, "="); ok {
				overrides = append(overrides, name)
			}
		}
	}
	sort.Strings(overrides)

	if len(overrides) == 0 {
		c.Detail = "none set"
	} else {
		c.Detail = strings.Join(overrides, ", ")
	}
	return c
}

func checkHistoryDir(cfg *config.Config) checkResult {
	c := checkResult{Group: "config", Name: "history file location", Status: "pass", Detail: cfg.HistoryFile}
	if cfg.HistoryFile == "" {
		c.Detail = "disabled"
		return c
	}

	dir := filepath.Dir(cfg.HistoryFile)
	if _, err := os.Stat(dir); err != nil {
		c.Status = "warn"
		c.Detail = fmt.Sprintf("%s: directory does not exist", dir)
		return c
	}

	probe, err := os.CreateTemp(dir, ".irkit-doctor-*")
	if err != nil {
		c.Status = "warn"
		c.Detail = fmt.Sprintf("%s: not writable", dir)
		return c
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())
	return c
}

func checkTypeHierarchy() checkResult {
	c := checkResult{Group: "registry", Name: "type hierarchy", Status: "pass"}

	infos := object.Types()
	for _, info := range infos {
		// Every parent chain must reach a root through registered tags.
		tag := info.Tag
		for tag != object.TagInvalid {
			parent, err := object.ParentOf(tag)
			if err != nil {
				c.Status = "error"
				c.Detail = fmt.Sprintf("%s: broken parent chain at tag %d", info.Name, tag)
				return c
			}
			tag = parent
		}
	}

	c.Detail = fmt.Sprintf("%d types registered", len(infos))
	return c
}

func checkRenderCoverage(reg *repr.Registry) checkResult {
	c := checkResult{Group: "registry", Name: "render coverage", Status: "pass"}

	infos := object.Types()
	base := make(map[object.Tag]bool, len(infos))
	for _, info := range infos {
		if info.Parent != object.TagInvalid {
			base[info.Parent] = true
		}
	}

	var uncovered []string
	for _, info := range infos {
		// A tag with registered children is an abstract base and is never
		// instantiated itself; only leaf tags reach the printer.
		if base[info.Tag] {
			continue
		}
		covered := false
		for tag := info.Tag; tag != object.TagInvalid; {
			if reg.Handles(tag) {
				covered = true
				break
			}
			parent, err := object.ParentOf(tag)
			if err != nil {
				break
			}
			tag = parent
		}
		if !covered {
			uncovered = append(uncovered, info.Name)
		}
	}

	if len(uncovered) > 0 {
		c.Status = "warn"
		c.Detail = fmt.Sprintf("no handler for %s", strings.Join(uncovered, ", "))
		return c
	}

	c.Detail = "every concrete type resolves a handler"
	return c
}

func checkStarlark() checkResult {
	c := checkResult{Group: "runtime", Name: "starlark evaluation", Status: "pass"}

	obj, err := starval.Eval("40 + 2")
	if err != nil {
		c.Status = "error"
		c.Detail = err.Error()
		return c
	}
	if got, ok := obj.(object.Int); !ok || got != 42 {
		c.Status = "error"
		c.Detail = fmt.Sprintf("unexpected evaluation result: %v", obj)
		return c
	}

	c.Detail = "ok"
	return c
}
