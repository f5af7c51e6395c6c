/*
Package getopt provides xgetopt's option scanner as API.

A Scanner walks an argument vector and classifies each token as a recognized
option, an option with a value, an unrecognized option or the end of options.
Options are described either by a compact string ("aBn:") or by a list of
named tokens of up to MaxTokenLen characters ("out:", "v").

Every scan owns its own Scanner, so there is no process-wide cursor:

	s := getopt.New(os.Args)
	for {
		c := s.Next("aBn:")
		if c == getopt.EOF {
			break
		}
		switch c {
		case 'a':
		case 'n':
			v, _ := s.OptArg()
			...
		case getopt.Unknown:
			...
		}
	}
	operands := s.Args()

Element 0 of the vector is the program name and is never scanned.
*/
package getopt

import (
	"unicode/utf16"
	"unicode/utf8"
)

const (
	// EOF is returned when no more options remain.
	EOF int = -1
	// Unknown is returned for an option that is not accepted, or whose
	// required value is missing.
	Unknown int = '?'
	// Prefix starts every option token.
	Prefix = '-'
	// Separator follows an option in a spec when it takes a value.
	Separator = ':'
	// MaxTokenLen is the number of significant characters of a named token.
	MaxTokenLen = 4
)

// Text is the element type of an argument vector. string and []byte hold
// UTF-8 (narrow) text, []rune and []uint16 hold wide text.
type Text interface {
	string | []byte | []rune | []uint16
}

// Scanner is the state of one scan over an argument vector.
type Scanner[T Text] struct {
	args []T
	ind  int

	cur T   // option token being consumed
	pos int // offset of the next character in cur

	arg    T
	hasArg bool
	opt    int
	done   bool
}

// New returns a Scanner positioned before args[1].
func New[T Text](args []T) *Scanner[T] {
	return &Scanner[T]{args: args}
}

// Reset rewinds s to the start of its vector. A scan after Reset produces
// the same sequence of outcomes as the first one.
func (s *Scanner[T]) Reset() {
	var zero T
	s.ind = 0
	s.cur, s.pos = zero, 0
	s.arg, s.hasArg = zero, false
	s.opt = 0
	s.done = false
}

// OptArg returns the value captured by the last call: the option value, or
// at EOF the first operand. The value shares memory with the vector.
func (s *Scanner[T]) OptArg() (T, bool) {
	return s.arg, s.hasArg
}

// OptInd returns the index of the next argument to be processed.
func (s *Scanner[T]) OptInd() int {
	return s.ind
}

// OptOpt returns the identifier of the last option consumed, including one
// that was reported as Unknown.
func (s *Scanner[T]) OptOpt() int {
	return s.opt
}

// Args returns the arguments not consumed by the scan.
func (s *Scanner[T]) Args() []T {
	ind := s.ind
	if ind == 0 {
		ind = 1
	}
	if ind >= len(s.args) {
		return nil
	}
	return s.args[ind:]
}

// begin is called when no option token is being consumed. It reports
// whether args[ind] opens one; otherwise the scan is over and the residual
// operand, if any, is captured.
func (s *Scanner[T]) begin() bool {
	if s.done {
		s.residual()
		return false
	}
	if s.ind == 0 {
		s.ind = 1
	}
	if s.ind >= len(s.args) || !isOption(s.args[s.ind]) {
		s.done = true
		s.residual()
		return false
	}
	if isTerminator(s.args[s.ind]) {
		s.ind++
		s.done = true
		s.residual()
		return false
	}
	return true
}

func (s *Scanner[T]) residual() {
	var zero T
	s.arg, s.hasArg = zero, false
	if s.ind < len(s.args) {
		s.arg, s.hasArg = s.args[s.ind], true
	}
}

// isOption reports whether t is the prefix followed by at least one
// character.
func isOption[T Text](t T) bool {
	if len(t) < 2 {
		return false
	}
	c, _ := decode(t, 0)
	return c == Prefix
}

func isTerminator[T Text](t T) bool {
	if len(t) != 2 {
		return false
	}
	c0, _ := decode(t, 0)
	c1, _ := decode(t, 1)
	return c0 == Prefix && c1 == Prefix
}

// decode returns the character at offset i of t and its width in elements.
// Invalid encodings decode to utf8.RuneError with width 1.
func decode[T Text](t T, i int) (rune, int) {
	switch v := any(t).(type) {
	case string:
		return utf8.DecodeRuneInString(v[i:])
	case []byte:
		return utf8.DecodeRune(v[i:])
	case []rune:
		return v[i], 1
	case []uint16:
		r := rune(v[i])
		if utf16.IsSurrogate(r) {
			if i+1 < len(v) {
				if d := utf16.DecodeRune(r, rune(v[i+1])); d != utf8.RuneError {
					return d, 2
				}
			}
			return utf8.RuneError, 1
		}
		return r, 1
	}
	panic("getopt: unsupported text type")
}

// suffix returns t[i:] without copying.
func suffix[T Text](t T, i int) T {
	switch v := any(t).(type) {
	case string:
		return any(v[i:]).(T)
	case []byte:
		return any(v[i:]).(T)
	case []rune:
		return any(v[i:]).(T)
	case []uint16:
		return any(v[i:]).(T)
	}
	panic("getopt: unsupported text type")
}
