package api

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LineFunc receives the outcome of one input line. Returning an error stops
// ParseLines.
type LineFunc func(lineno int, res Result, err error) error

// SplitLine splits a command line into an argument vector the way a shell
// would, honoring quotes and backslash escapes. Variables and backticks are
// left alone.
func SplitLine(line string) ([]string, error) {
	argv, err := shellwords.Parse(line)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to split %q", line)
	}
	return argv, nil
}

// MaxLineSize is the longest input line ParseLines accepts.
const MaxLineSize = 16 << 20

// ParseLines scans every line of r as "prog args..." against spec. Blank
// lines and lines starting with '#' are skipped. A line longer than
// MaxLineSize stops the scan with an error.
func ParseLines(spec Spec, r io.Reader, fn LineFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		argv, err := SplitLine(line)
		if err != nil {
			log.WithField("line", lineno).Debug(err)
			if err := fn(lineno, Result{}, err); err != nil {
				return err
			}
			continue
		}

		res, err := ParseVector(spec, argv)
		if err := fn(lineno, res, err); err != nil {
			return err
		}
	}
	return errors.Wrap(sc.Err(), "failed to read input")
}
