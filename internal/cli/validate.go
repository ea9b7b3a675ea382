package cli

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/jscan"
	"github.com/reoring/jscan/report"
)

// Validate is the validate command.
type Validate struct {
	root *Root

	Template      string
	Data          []string
	Mode          string
	Output        string
	InputFormat   string
	DuplicateKeys string
	MaxDepth      int
	MaxBytes      int64
	Concurrency   int
	FailOnIssues  bool
}

func NewValidate(r *Root) *cobra.Command {
	v := &Validate{root: r}
	cmd := &cobra.Command{
		Use:   "validate -t TEMPLATE [-d DATA ...]",
		Short: "Check data documents against a template",
		Long: `Check data documents against a template. Data is read from stdin when no -d
flag is given. A data array is checked record by record.`,
		Example: `
jscan validate -t template.json -d a.json -d b.yaml --mode missing
cat data.json | jscan validate -t template.json -o markdown`,
		Args: cobra.NoArgs,
		RunE: v.Run,
	}
	f := cmd.Flags()
	f.StringVarP(&v.Template, "template", "t", "", "Template file (JSON or YAML)")
	f.StringArrayVarP(&v.Data, "data", "d", nil, "Data file, repeatable; - for stdin")
	f.StringVarP(&v.Mode, "mode", "m", "all", "Checks to run: missing, additional, types or all")
	f.StringVarP(&v.Output, "output", "o", "table", "Output format: table, pretty, json, yaml, markdown or html")
	f.StringVar(&v.InputFormat, "input-format", "auto", "Data format: auto, json or yaml")
	f.StringVar(&v.DuplicateKeys, "duplicate-keys", "ignore", "Duplicate object keys: ignore, warn or error")
	f.IntVar(&v.MaxDepth, "max-depth", 0, "Nested levels checked below each record (0 for the default, negative for unlimited)")
	f.Int64Var(&v.MaxBytes, "max-bytes", 0, "Maximum size of a data document (0 for unlimited)")
	f.IntVar(&v.Concurrency, "concurrency", runtime.GOMAXPROCS(0), "Data files checked in parallel")
	f.BoolVar(&v.FailOnIssues, "fail-on-issues", false, "Exit with status 1 when any issue is found")
	return cmd
}

func (v *Validate) Run(cmd *cobra.Command, _ []string) error {
	cfg := v.root.config
	mode, err := jscan.ParseMode(stringFlag(cmd, "mode", v.Mode, cfg.Mode))
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(stringFlag(cmd, "output", v.Output, cfg.Output))
	if err != nil {
		return err
	}
	popt, err := parseOpt(stringFlag(cmd, "duplicate-keys", v.DuplicateKeys, cfg.DuplicateKeys),
		intFlag(cmd, "max-bytes", v.MaxBytes, cfg.MaxBytes))
	if err != nil {
		return err
	}
	vopt := jscan.ValidateOpt{MaxDepth: intFlag(cmd, "max-depth", v.MaxDepth, cfg.MaxDepth)}
	inputFormat := stringFlag(cmd, "input-format", v.InputFormat, cfg.InputFormat)

	ctx := cmd.Context()
	tpl, err := v.root.loadTemplate(ctx, v.Template, "auto")
	if err != nil {
		return err
	}

	files := v.Data
	if len(files) == 0 {
		files = []string{"-"}
	}
	stdin := 0
	for _, f := range files {
		if f == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("stdin (-) can be given as data only once")
	}
	results := make([]report.Result, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	if n := intFlag(cmd, "concurrency", v.Concurrency, cfg.Concurrency); n > 0 {
		eg.SetLimit(n)
	}
	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			in, err := v.root.readInput(file, inputFormat)
			if err != nil {
				return err
			}
			results[i] = report.NewResult(mode, in.name, check(ctx, tpl, in, mode, popt, vopt))
			logrus.Debugf("%s: %d issues", in.name, len(results[i].Issues))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if err := report.WriteResults(v.root.cc.StdOut, format, results); err != nil {
		return err
	}
	if v.FailOnIssues || (!cmd.Flags().Changed("fail-on-issues") && cfg.FailOnIssues) {
		for _, r := range results {
			if len(r.Issues) > 0 {
				return ErrIssuesFound
			}
		}
	}
	return nil
}

// check is jscan.Check over an in-memory document of either format.
func check(ctx context.Context, t jscan.Template, in input, mode jscan.Mode, popt jscan.ParseOpt, vopt jscan.ValidateOpt) jscan.Issues {
	data, err := in.parse(ctx, popt)
	if err != nil {
		if errors.Is(err, jscan.ErrEmptyInput) {
			return jscan.Issues{}
		}
		return jscan.Issues{jscan.ParseErrorIssue(err)}
	}
	return jscan.Validate(t, data, mode, vopt)
}
