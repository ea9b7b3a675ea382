package cli

import (
	"bytes"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jscan"
)

// Sample is the sample command.
type Sample struct {
	root *Root

	Output string
}

func NewSample(r *Root) *cobra.Command {
	s := &Sample{root: r}
	cmd := &cobra.Command{
		Use:       "sample template|data",
		Short:     "Print the sample template or sample data",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"template", "data"},
		RunE:      s.Run,
	}
	cmd.Flags().StringVarP(&s.Output, "output", "o", "json", "Document format: json or yaml")
	return cmd
}

func (s *Sample) Run(cmd *cobra.Command, args []string) error {
	var doc any
	switch args[0] {
	case "template":
		doc = jscan.SampleTemplate().Document()
	case "data":
		doc = jscan.SampleData()
	default:
		return cmd.Help()
	}
	b, err := marshalDocument(doc, s.Output)
	if err != nil {
		return err
	}
	_, err = s.root.cc.StdOut.Write(b)
	return err
}

// marshalDocument renders a data tree as indented JSON or as YAML, keeping
// member order.
func marshalDocument(doc any, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(jscan.DataYAMLNode(doc)); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "", "json":
		return jscan.IndentData(doc, "  ")
	}
	return nil, errUnknownDocFormat(format)
}
