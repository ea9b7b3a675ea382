package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/liggitt/tabwriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/jscan"
	"github.com/reoring/jscan/jsonschema"
)

func errUnknownDocFormat(format string) error {
	return errors.Errorf("unknown document format %q (want json or yaml)", format)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 10, 1, 3, ' ', tabwriter.RememberWidths)
}

// TemplateEdit holds the flags shared by the template subcommands.
type TemplateEdit struct {
	root *Root

	Output string
	Write  bool
}

func NewTemplate(r *Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Show, edit and compare template files",
		Long: `Show, edit and compare template files. Paths are dotted field names; "[]"
selects an array's item type, as in skills[].level.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newTemplateShow(r),
		newTemplateSet(r),
		newTemplateRm(r),
		newTemplateDiff(r),
		newTemplateSchema(r),
		newTemplateImport(r),
	)
	return cmd
}

func (e *TemplateEdit) flags(cmd *cobra.Command, write bool) {
	cmd.Flags().StringVarP(&e.Output, "output", "o", "", "Document format: json or yaml (default from the file name)")
	if write {
		cmd.Flags().BoolVarP(&e.Write, "write", "w", false, "Write the result back to the file instead of stdout")
	}
}

func newTemplateShow(r *Root) *cobra.Command {
	e := &TemplateEdit{root: r}
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a template in normalized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := r.loadTemplate(cmd.Context(), args[0], "auto")
			if err != nil {
				return err
			}
			return e.emit(args[0], t)
		},
	}
	e.flags(cmd, false)
	return cmd
}

func newTemplateSet(r *Root) *cobra.Command {
	e := &TemplateEdit{root: r}
	cmd := &cobra.Command{
		Use:   "set FILE PATH TYPE",
		Short: "Add a field or change its type",
		Example: `
jscan template set template.json address.country string -w
jscan template set template.json skills[].level number`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.edit(cmd, args[0], args[1], func(t jscan.Template, p jscan.FieldPath) (jscan.Template, error) {
				return t.SetType(p, args[2])
			})
		},
	}
	e.flags(cmd, true)
	return cmd
}

func newTemplateRm(r *Root) *cobra.Command {
	e := &TemplateEdit{root: r}
	cmd := &cobra.Command{
		Use:   "rm FILE PATH",
		Short: "Remove a field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.edit(cmd, args[0], args[1], jscan.Template.Remove)
		},
	}
	e.flags(cmd, true)
	return cmd
}

func (e *TemplateEdit) edit(cmd *cobra.Command, file, path string, op func(jscan.Template, jscan.FieldPath) (jscan.Template, error)) error {
	p, err := jscan.ParseFieldPath(path)
	if err != nil {
		return err
	}
	t, err := e.root.loadTemplate(cmd.Context(), file, "auto")
	if err != nil {
		return err
	}
	t, err = op(t, p)
	if err != nil {
		return err
	}
	return e.emit(file, t)
}

func (e *TemplateEdit) emit(file string, t jscan.Template) error {
	format := e.Output
	if format == "" {
		format = "json"
		if ext := strings.ToLower(file); strings.HasSuffix(ext, ".yaml") || strings.HasSuffix(ext, ".yml") {
			format = "yaml"
		}
	}
	b, err := marshalDocument(t.Document(), format)
	if err != nil {
		return err
	}
	if e.Write {
		return errors.Wrapf(os.WriteFile(file, b, 0o644), "write %s", file)
	}
	_, err = e.root.cc.StdOut.Write(b)
	return err
}

func newTemplateDiff(r *Root) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Show the JSON Patch that turns one template into another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.loadTemplate(cmd.Context(), args[0], "auto")
			if err != nil {
				return err
			}
			b, err := r.loadTemplate(cmd.Context(), args[1], "auto")
			if err != nil {
				return err
			}
			patch, err := jscan.DiffTemplates(a, b)
			if err != nil {
				return err
			}
			switch output {
			case "json":
				out, err := json.MarshalIndent(patch, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(r.cc.StdOut, string(out))
				return err
			case "", "table":
				tw := newTabWriter(r.cc.StdOut)
				fmt.Fprintln(tw, "OP\tPATH\tVALUE")
				for _, op := range patch {
					val := ""
					if op.Type != "remove" {
						v, err := json.Marshal(op.Value)
						if err != nil {
							return err
						}
						val = string(v)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", op.Type, fmt.Sprint(op.Path), val)
				}
				return tw.Flush()
			}
			return errors.Errorf("unknown output format %q (want table or json)", output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	return cmd
}

func newTemplateSchema(r *Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema FILE",
		Short: "Export a template as a JSON Schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := r.loadTemplate(cmd.Context(), args[0], "auto")
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(jsonschema.FromTemplate(t), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(r.cc.StdOut, string(out))
			return err
		},
	}
	return cmd
}

func newTemplateImport(r *Root) *cobra.Command {
	e := &TemplateEdit{root: r}
	var inputFormat string
	cmd := &cobra.Command{
		Use:   "import SCHEMA",
		Short: "Build a template from a JSON Schema, OpenAPI schema or CRD",
		Example: `
jscan template import user.schema.json
jscan template import crd.yaml -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := r.readInput(args[0], inputFormat)
			if err != nil {
				return err
			}
			doc, err := in.parse(cmd.Context(), jscan.ParseOpt{})
			if err != nil {
				return errors.Wrapf(err, "schema %s", in.name)
			}
			t, diag, err := jsonschema.Import(doc)
			if err != nil {
				return errors.Wrapf(err, "schema %s", in.name)
			}
			for _, w := range diag {
				logrus.Warnf("%s: %s", in.name, w)
			}
			if e.Output == "" {
				e.Output = "json"
			}
			return e.emit(args[0], t)
		},
	}
	e.flags(cmd, false)
	cmd.Flags().StringVar(&inputFormat, "input-format", "auto", "Schema format: auto, json or yaml")
	return cmd
}
