package cli

import (
	"github.com/spf13/cobra"

	"github.com/reoring/jscan/report"
)

// Grid is the grid command.
type Grid struct {
	root *Root

	Template    string
	Data        string
	Output      string
	InputFormat string
}

func NewGrid(r *Root) *cobra.Command {
	g := &Grid{root: r}
	cmd := &cobra.Command{
		Use:   "grid -t TEMPLATE [-d DATA]",
		Short: "Show data records against the template's fields",
		Long: `Show one row per data record and one column per template field. Absent and
null values show as ❌; values whose type differs from the template are
marked with ⚠.`,
		Args: cobra.NoArgs,
		RunE: g.Run,
	}
	f := cmd.Flags()
	f.StringVarP(&g.Template, "template", "t", "", "Template file (JSON or YAML)")
	f.StringVarP(&g.Data, "data", "d", "-", "Data file; - for stdin")
	f.StringVarP(&g.Output, "output", "o", "table", "Output format: table, pretty, json, yaml, markdown or html")
	f.StringVar(&g.InputFormat, "input-format", "auto", "Data format: auto, json or yaml")
	return cmd
}

func (g *Grid) Run(cmd *cobra.Command, _ []string) error {
	cfg := g.root.config
	format, err := report.ParseFormat(stringFlag(cmd, "output", g.Output, cfg.Output))
	if err != nil {
		return err
	}
	tpl, err := g.root.loadTemplate(cmd.Context(), g.Template, "auto")
	if err != nil {
		return err
	}
	in, err := g.root.readInput(g.Data, stringFlag(cmd, "input-format", g.InputFormat, cfg.InputFormat))
	if err != nil {
		return err
	}
	popt, err := parseOpt(cfg.DuplicateKeys, cfg.MaxBytes)
	if err != nil {
		return err
	}
	data, err := in.parse(cmd.Context(), popt)
	if err != nil {
		return err
	}
	return report.WriteGrid(g.root.cc.StdOut, format, report.BuildGrid(tpl, data))
}
