// Package cli implements the jscan command line.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reoring/jscan/i18n"
)

// ErrIssuesFound is returned by validate with --fail-on-issues when any data
// source produced issues.
var ErrIssuesFound = errors.New("issues found")

// CommandContext carries the process streams so commands can be run in tests.
type CommandContext struct {
	StdIn  io.Reader
	StdOut io.Writer
	StdErr io.Writer
}

// DefaultContext uses the process streams.
func DefaultContext() CommandContext {
	return CommandContext{StdIn: os.Stdin, StdOut: os.Stdout, StdErr: os.Stderr}
}

// Root holds the persistent flags and the loaded configuration shared by all
// subcommands.
type Root struct {
	cc         CommandContext
	ConfigFile string
	LogLevel   string
	Lang       string

	config Config
}

// New builds the jscan command tree.
func New(cc CommandContext) *cobra.Command {
	r := &Root{cc: cc}
	root := &cobra.Command{
		Use:   "jscan",
		Short: "Check JSON data against a field template",
		Long: `jscan compares JSON (or YAML) data with a template describing the expected
fields and types, and reports missing fields, additional fields and type
mismatches.`,
		Example: `
# Validate a data file against a template
jscan validate -t template.json -d data.json

# Show the data grid as markdown
jscan grid -t template.json -d data.json -o markdown`,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		PersistentPreRunE: r.PersistentPre,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(cc.StdIn)
	root.SetOut(cc.StdOut)
	root.SetErr(cc.StdErr)

	r.AddFlags(root.PersistentFlags())
	root.AddCommand(
		NewValidate(r),
		NewGrid(r),
		NewFormat(r),
		NewSample(r),
		NewTemplate(r),
	)
	return root
}

// AddFlags registers the flags shared by every subcommand.
func (r *Root) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&r.ConfigFile, "config", "", "Config file (default "+DefaultConfigFile+" when present)")
	fs.StringVar(&r.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	fs.StringVar(&r.Lang, "lang", "", "Report language, e.g. en or ja (default from config or LANG)")
}

// PersistentPre configures logging, loads the config file and selects the
// report language.
func (r *Root) PersistentPre(cmd *cobra.Command, _ []string) error {
	level, err := logrus.ParseLevel(r.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(r.cc.StdErr)

	cfg, err := LoadConfig(r.ConfigFile)
	if err != nil {
		return err
	}
	r.config = cfg

	lang := r.Lang
	if lang == "" {
		lang = cfg.Lang
	}
	if lang == "" {
		lang = localeTag(os.Getenv("LANG"))
	}
	logrus.Debugf("report language %s", i18n.SetLanguage(lang))
	return nil
}

// localeTag turns a POSIX locale such as "ja_JP.UTF-8" into "ja-JP".
func localeTag(s string) string {
	s, _, _ = strings.Cut(s, ".")
	return strings.ReplaceAll(s, "_", "-")
}

// RunAndHandleError executes cmd, prints any error other than ErrIssuesFound
// and exits with status 0 or 1. It never returns.
func RunAndHandleError(ctx context.Context, cmd *cobra.Command) {
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		if !errors.Is(err, ErrIssuesFound) {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
	os.Exit(0)
}
