package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/jscan"
)

// Format is the format command.
type Format struct {
	root *Root

	Indent      int
	Compact     bool
	InputFormat string
}

func NewFormat(r *Root) *cobra.Command {
	f := &Format{root: r}
	cmd := &cobra.Command{
		Use:   "format [FILE]",
		Short: "Pretty-print a JSON document, keeping key order",
		Long: `Pretty-print a JSON (or YAML) document as JSON. Object keys keep their
document order and numbers keep their literal text. Duplicate keys are
reported on stderr; the last value wins.`,
		Args: cobra.MaximumNArgs(1),
		RunE: f.Run,
	}
	cmd.Flags().IntVar(&f.Indent, "indent", 2, "Spaces per indentation level")
	cmd.Flags().BoolVar(&f.Compact, "compact", false, "Print without whitespace")
	cmd.Flags().StringVar(&f.InputFormat, "input-format", "auto", "Input format: auto, json or yaml")
	return cmd
}

func (f *Format) Run(cmd *cobra.Command, args []string) error {
	file := "-"
	if len(args) > 0 {
		file = args[0]
	}
	in, err := f.root.readInput(file, stringFlag(cmd, "input-format", f.InputFormat, f.root.config.InputFormat))
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if !in.yaml {
		dups, err := jscan.DetectDuplicateKeys(ctx, in.source(), -1)
		if err != nil {
			return errors.Wrap(err, in.name)
		}
		for _, d := range dups {
			logrus.Warnf("%s: %s at %s", in.name, d.Message, d.Path)
		}
	}
	v, err := in.parse(ctx, jscan.ParseOpt{})
	if err != nil {
		return errors.Wrap(err, in.name)
	}
	var out []byte
	if f.Compact {
		out, err = jscan.MarshalData(v)
		out = append(out, '\n')
	} else {
		if f.Indent < 0 {
			return errors.Errorf("invalid indent %d", f.Indent)
		}
		out, err = jscan.IndentData(v, strings.Repeat(" ", f.Indent))
	}
	if err != nil {
		return err
	}
	_, err = f.root.cc.StdOut.Write(out)
	return err
}
