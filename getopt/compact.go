package getopt

import (
	"strings"
	"unicode/utf8"
)

// Next returns the next option letter of the vector that matches a letter
// in optstring. A letter followed by ':' in optstring takes a value, either
// the rest of the token ("-n42") or the next argument ("-n 42"). Letters may
// be combined: "-ab" is "-a -b".
//
// Next returns Unknown for a letter not in optstring and for a value that
// is missing at the end of the vector, and EOF at the first operand, at a
// lone "-" or after "--".
func (s *Scanner[T]) Next(optstring string) int {
	var zero T
	s.arg, s.hasArg = zero, false

	if s.pos >= len(s.cur) {
		if !s.begin() {
			return EOF
		}
		s.cur, s.pos = s.args[s.ind], 1
		s.ind++
	}

	c, w := decode(s.cur, s.pos)
	s.pos += w
	s.opt = int(c)

	if c == Separator || c == utf8.RuneError {
		return Unknown
	}
	i := strings.IndexRune(optstring, c)
	if i < 0 {
		return Unknown
	}
	if !strings.HasPrefix(optstring[i+utf8.RuneLen(c):], string(Separator)) {
		return int(c)
	}

	// attached value: "-n42"
	if s.pos < len(s.cur) {
		s.arg, s.hasArg = suffix(s.cur, s.pos), true
		s.cur, s.pos = zero, 0
		return int(c)
	}
	if s.ind < len(s.args) {
		s.arg, s.hasArg = s.args[s.ind], true
		s.ind++
		return int(c)
	}
	return Unknown
}
