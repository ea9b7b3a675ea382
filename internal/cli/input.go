package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/reoring/jscan"
	yamlsrc "github.com/reoring/jscan/source/yaml"
)

// input is one data or template document read into memory.
type input struct {
	name string
	data []byte
	yaml bool
}

// readInput reads path, or stdin for "" and "-". format is auto, json or yaml;
// auto picks YAML for .yaml and .yml files.
func (r *Root) readInput(path, format string) (input, error) {
	in := input{name: path}
	var err error
	if path == "" || path == "-" {
		in.name = "<stdin>"
		in.data, err = io.ReadAll(r.cc.StdIn)
	} else {
		in.data, err = os.ReadFile(path)
	}
	if err != nil {
		return in, errors.Wrapf(err, "read %s", in.name)
	}
	switch strings.ToLower(format) {
	case "", "auto":
		ext := strings.ToLower(filepath.Ext(path))
		in.yaml = ext == ".yaml" || ext == ".yml"
	case "json":
	case "yaml", "yml":
		in.yaml = true
	default:
		return in, errors.Errorf("unknown input format %q (want auto, json or yaml)", format)
	}
	return in, nil
}

func (in input) source() jscan.Source {
	if in.yaml {
		return yamlsrc.NewBytes(in.data)
	}
	return jscan.JSONBytes(in.data)
}

// parse decodes the document; blank input is jscan.ErrEmptyInput.
func (in input) parse(ctx context.Context, opt jscan.ParseOpt) (any, error) {
	if opt.MaxBytes > 0 && int64(len(in.data)) > opt.MaxBytes {
		return nil, errors.Errorf("%s: max bytes exceeded", in.name)
	}
	if in.yaml {
		return jscan.ParseData(ctx, in.source(), opt)
	}
	return jscan.ParseBytes(ctx, in.data, opt)
}

func (r *Root) loadTemplate(ctx context.Context, path, format string) (jscan.Template, error) {
	if path == "" {
		return jscan.Template{}, errors.New("a template is required (-t)")
	}
	in, err := r.readInput(path, format)
	if err != nil {
		return jscan.Template{}, err
	}
	t, err := jscan.ParseTemplate(ctx, in.source())
	return t, errors.Wrapf(err, "template %s", in.name)
}

// stringFlag returns the flag value when set on the command line, else the
// config value, else the flag default.
func stringFlag(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) || configValue == "" {
		return flagValue
	}
	return configValue
}

func intFlag[T int | int64](cmd *cobra.Command, name string, flagValue, configValue T) T {
	if cmd.Flags().Changed(name) || configValue == 0 {
		return flagValue
	}
	return configValue
}

// parseOpt assembles parsing options from the shared limit flags.
func parseOpt(dupKeys string, maxBytes int64) (jscan.ParseOpt, error) {
	sev, err := jscan.ParseSeverity(dupKeys)
	if err != nil {
		return jscan.ParseOpt{}, err
	}
	return jscan.ParseOpt{
		Strictness: jscan.Strictness{OnDuplicateKey: sev},
		MaxBytes:   maxBytes,
	}, nil
}
