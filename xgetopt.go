/*
 xgetopt: getopt-style command line scanner
*/
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/MakeNowJust/heredoc"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/redhat-nfvpe/xgetopt/api"
	"github.com/redhat-nfvpe/xgetopt/config"
	"github.com/redhat-nfvpe/xgetopt/getopt"
	"github.com/redhat-nfvpe/xgetopt/report"
)

// VERSION indicates xgetopt's version.
var VERSION = "master@git"

// optstring holds xgetopt's own options.
const optstring = "c:s:t:o:n:wlqvVh"

const (
	exitOK      = 0
	exitUnknown = 1 // the scanned vector holds rejected options
	exitUsage   = 2
)

// cmdOptions is xgetopt's own command line.
type cmdOptions struct {
	configPath string
	optstring  *string // nil unless -s is given
	tokens     []getopt.Token
	format     *report.Format
	name       string
	wide       bool
	lines      bool
	quiet      bool
	verbose    bool
	version    bool
	help       bool
	operands   []string
}

// parseTOption parses '-t' option: a token name of up to four characters,
// optionally followed by ':' when it takes a value.
func parseTOption(s string) (tok getopt.Token, err error) {
	tok = getopt.ParseTokens(s)[0]

	n := utf8.RuneCountInString(tok.Name)
	if n == 0 || n > getopt.MaxTokenLen {
		err = fmt.Errorf("token %q must have 1 to %d characters",
			tok.Name, getopt.MaxTokenLen)
		return
	}
	if tok.TakesValue && s != tok.Name+string(getopt.Separator) {
		err = fmt.Errorf("failed to parse token %s", s)
		return
	}
	if strings.HasPrefix(tok.Name, string(getopt.Prefix)) {
		err = fmt.Errorf("token %s must not start with %c", s, getopt.Prefix)
		return
	}
	return
}

// checkOptstring rejects the prefix as an option letter: its option would
// print as "--" and end the operands early when the output is eval'ed.
func checkOptstring(s string) error {
	if strings.ContainsRune(s, getopt.Prefix) {
		return fmt.Errorf("optstring %q must not contain %c", s, getopt.Prefix)
	}
	return nil
}

// parseOOption parses '-o' option.
func parseOOption(s string) (*report.Format, error) {
	f, err := report.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// parseCmdLine scans xgetopt's own options with the getopt package.
func parseCmdLine(argv []string) (opts cmdOptions, err error) {
	s := getopt.New(argv)
	if len(argv) > 0 {
		opts.name = filepath.Base(argv[0])
	}

	for {
		var c int
		if c = getopt.Getopt(s, optstring); c == getopt.EOF {
			break
		}
		v, _ := s.OptArg()

		switch c {
		case 'c': // config file
			opts.configPath = v

		case 's': // compact spec
			if err = checkOptstring(v); err != nil {
				return
			}
			opts.optstring = &v

		case 't': // named token
			var tok getopt.Token
			if tok, err = parseTOption(v); err != nil {
				return
			}
			opts.tokens = append(opts.tokens, tok)

		case 'o': // output format
			if opts.format, err = parseOOption(v); err != nil {
				return
			}

		case 'n': // program name of the scanned vector
			opts.name = v

		case 'w':
			opts.wide = true
		case 'l':
			opts.lines = true
		case 'q':
			opts.quiet = true
		case 'v':
			opts.verbose = true
		case 'V':
			opts.version = true
		case 'h':
			opts.help = true

		case getopt.Unknown:
			opt := rune(s.OptOpt())
			if strings.ContainsRune(optstring, opt) && opt != getopt.Separator {
				err = fmt.Errorf("option requires an argument -- '%c'", opt)
			} else {
				err = fmt.Errorf("invalid option -- '%c'", opt)
			}
			return
		}
	}

	opts.operands = s.Args()
	return
}

// buildSpec merges the command line over the config file defaults.
func buildSpec(opts cmdOptions, cfg *config.Config) (spec api.Spec, err error) {
	spec.Wide = opts.wide || cfg.Wide

	switch {
	case len(opts.tokens) > 0:
		spec.Mode, spec.Tokens = api.ModeTokens, opts.tokens
	case opts.optstring != nil:
		spec.Mode, spec.Optstring = api.ModeCompact, *opts.optstring
	case len(cfg.Tokens) > 0:
		spec.Mode = api.ModeTokens
		for _, t := range cfg.Tokens {
			tok, err1 := parseTOption(t)
			if err1 != nil {
				err = errors.Wrapf(err1, "config %s", cfg.File)
				return
			}
			spec.Tokens = append(spec.Tokens, tok)
		}
	default:
		if err = checkOptstring(cfg.Optstring); err != nil {
			err = errors.Wrapf(err, "config %s", cfg.File)
			return
		}
		spec.Mode, spec.Optstring = api.ModeCompact, cfg.Optstring
	}
	return
}

// usage shows usage when user invokes it with '-h' option.
func usage(w io.Writer) {
	doc := heredoc.Doc(`

		Usage:
		xgetopt [-wlqv] [-c config] [-o format] [-n name] -s optstring [--] [args...]
		xgetopt [-wlqv] [-c config] [-o format] [-n name] -t token[:] [-t ...] [--] [args...]
		xgetopt -l -s optstring < vectors.txt

		Options:
		  -s optstring  accepted letters, a letter followed by ':' takes a value
		                ('-' is not a valid letter)
		  -t token[:]   accepted named token of up to 4 characters (repeatable)
		  -o format     output format: shell (default), json, yaml, table
		  -n name       program name reported in diagnostics
		  -w            scan wide (rune) arguments
		  -l            read one "prog args..." vector per line from stdin
		  -c config     config file (default: xgetopt.yaml in ~/.config/xgetopt or .)
		  -q            do not report rejected options
		  -v            debug logging
		  -V            print version
		  -h            print this help

		Example:
		eval set -- "$(xgetopt -s ab:c -- "$@")"
	`)

	fmt.Fprint(w, doc)
}

func setupLogging(stderr io.Writer, verbose bool, level string) error {
	log.SetOutput(stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "invalid log-level")
	}
	log.SetLevel(lvl)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// diagnose reports err on stderr in getopt(1) style and returns the exit
// status it calls for.
func diagnose(stderr io.Writer, name string, where string, err error, quiet bool) int {
	var unknown *api.UnknownOptionError
	if errors.As(err, &unknown) {
		if !quiet {
			for _, msg := range unknown.Messages() {
				fmt.Fprintf(stderr, "%s%s: %s\n", name, where, msg)
			}
		}
		return exitUnknown
	}
	fmt.Fprintf(stderr, "%s%s: %v\n", name, where, err)
	return exitUsage
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseCmdLine(argv)
	if err != nil {
		fmt.Fprintf(stderr, "xgetopt: %v\n", err)
		usage(stderr)
		return exitUsage
	}
	if opts.help {
		usage(stdout)
		return exitOK
	}
	if opts.version {
		fmt.Fprintf(stdout, "xgetopt version: %s\n", VERSION)
		return exitOK
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "xgetopt: %v\n", err)
		return exitUsage
	}
	if err = setupLogging(stderr, opts.verbose, cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "xgetopt: %v\n", err)
		return exitUsage
	}
	if cfg.File != "" {
		log.WithField("file", cfg.File).Debug("loaded config")
	}

	spec, err := buildSpec(opts, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "xgetopt: %v\n", err)
		return exitUsage
	}
	out := report.Options{}
	if opts.format != nil {
		out.Format = *opts.format
	} else if out.Format, err = report.ParseFormat(cfg.Format); err != nil {
		fmt.Fprintf(stderr, "xgetopt: config: %v\n", err)
		return exitUsage
	}
	out.Color = out.Format == report.FormatTable && isTerminal(stdout)
	quiet := opts.quiet || cfg.Quiet

	log.WithFields(log.Fields{
		"mode":   spec.Mode,
		"spec":   spec.Optstring,
		"tokens": len(spec.Tokens),
		"wide":   spec.Wide,
		"format": out.Format,
	}).Debug("scanning")

	if opts.lines {
		status := exitOK
		err = api.ParseLines(spec, stdin, func(lineno int, res api.Result, err error) error {
			if err != nil {
				if st := diagnose(stderr, opts.name, fmt.Sprintf(":%d", lineno), err, quiet); st > status {
					status = st
				}
				var unknown *api.UnknownOptionError
				if !errors.As(err, &unknown) {
					return nil
				}
			}
			return report.Write(stdout, res, out)
		})
		if err != nil {
			fmt.Fprintf(stderr, "xgetopt: %v\n", err)
			return exitUsage
		}
		return status
	}

	vector := append([]string{opts.name}, opts.operands...)
	res, err := api.ParseVector(spec, vector)
	status := exitOK
	if err != nil {
		status = diagnose(stderr, opts.name, "", err, quiet)
	}
	if err = report.Write(stdout, res, out); err != nil {
		fmt.Fprintf(stderr, "xgetopt: %v\n", err)
		return exitUsage
	}
	return status
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
