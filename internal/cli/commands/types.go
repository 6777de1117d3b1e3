package commands

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/irkit-labs/irkit/pkg/object"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered object types",
		Long: `List every registered object type with its tag, kind, and parent.

The kind is the namespace portion of the type name: built-in types live in
the "object" namespace, extension packages register under their own.

Use --output to choose the format: text (table) or json.`,
		Example: `  # Show the type table
  irkit types

  # Machine-readable listing
  irkit types --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTypes(cmd)
		},
	}
}

// typeRow is the JSON output for a single registered type.
type typeRow struct {
	Tag    int32  `json:"tag"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Parent string `json:"parent,omitempty"`
}

func runTypes(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)

	infos := object.Types()
	titleCaser := cases.Title(language.English)

	rows := make([]typeRow, 0, len(infos))
	for _, info := range infos {
		parent := ""
		if info.Parent != object.TagInvalid {
			if name, err := object.NameOf(info.Parent); err == nil {
				parent = name
			}
		}

		kind := info.Name
		if i := strings.Index(info.Name, "."); i > 0 {
			kind = info.Name[:i]
		}

		rows = append(rows, typeRow{
			Tag:    int32(info.Tag),
			Name:   info.Name,
			Kind:   titleCaser.String(kind),
			Parent: parent,
		})
	}

	if cmdCtx.Cfg.OutputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Tag", "Name", "Kind", "Parent"})
	for _, row := range rows {
		parent := row.Parent
		if parent == "" {
			parent = "-"
		}
		t.AppendRow(table.Row{row.Tag, row.Name, row.Kind, parent})
	}
	t.Render()

	return nil
}
