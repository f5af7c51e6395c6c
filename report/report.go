// Package report renders scan results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/redhat-nfvpe/xgetopt/api"
)

// Format is an output format.
type Format int

const (
	// FormatShell prints options and operands as shell words, suitable for
	// `eval set -- "$(xgetopt ...)"`.
	FormatShell Format = iota
	FormatJSON
	FormatYAML
	FormatTable
)

var formatNames = []string{
	FormatShell: "shell",
	FormatJSON:  "json",
	FormatYAML:  "yaml",
	FormatTable: "table",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the Format called name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(f), nil
		}
	}
	return 0, errors.Errorf("unknown output format %q (expected %s)", name, strings.Join(formatNames, ", "))
}

// Options controls rendering.
type Options struct {
	Format Format
	Color  bool // table only
}

// Write renders res to w.
func Write(w io.Writer, res api.Result, opts Options) error {
	var err error
	switch opts.Format {
	case FormatShell:
		_, err = fmt.Fprintln(w, Shell(res))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(res); err == nil {
			err = enc.Close()
		}
	case FormatTable:
		err = writeTable(w, res, opts.Color)
	default:
		return errors.Errorf("unsupported format %v", opts.Format)
	}
	return errors.Wrapf(err, "failed to write %v output", opts.Format)
}

// Shell renders res as getopt(1) does: every option with its value, then
// "--", then the operands, each word quoted for the shell.
func Shell(res api.Result) string {
	words := make([]string, 0, 2*len(res.Options)+1+len(res.Operands))
	for _, opt := range res.Options {
		words = append(words, "-"+opt.Name)
		if opt.HasValue {
			words = append(words, opt.Value)
		}
	}
	words = append(words, "--")
	words = append(words, res.Operands...)
	return shellquote.Join(words...)
}
