/*
Package api provides xgetopt's parsing functionality as API.
*/
package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/redhat-nfvpe/xgetopt/getopt"
	log "github.com/sirupsen/logrus"
)

// Mode selects how options are described.
type Mode int

const (
	// ModeCompact uses a compact spec such as "abn:".
	ModeCompact Mode = iota
	// ModeTokens uses named tokens such as "out:".
	ModeTokens
)

// Spec is a structure to describe the accepted options.
type Spec struct {
	Mode      Mode
	Optstring string         // compact spec (ModeCompact)
	Tokens    []getopt.Token // named tokens (ModeTokens)
	Wide      bool           // scan runes instead of UTF-8 strings
}

// Option is a recognized option found in a vector.
type Option struct {
	Name     string `json:"name" yaml:"name"`
	ID       int    `json:"id" yaml:"id"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	HasValue bool   `json:"has_value" yaml:"has_value"`
}

// Result is the outcome of scanning one argument vector.
type Result struct {
	Options  []Option `json:"options" yaml:"options"`
	Unknown  []string `json:"unknown,omitempty" yaml:"unknown,omitempty"` // options not accepted
	Missing  []string `json:"missing,omitempty" yaml:"missing,omitempty"` // options lacking their value
	Operands []string `json:"operands" yaml:"operands"`
}

// UnknownOptionError is returned with a Result that holds unrecognized
// options or options without their value.
type UnknownOptionError struct {
	Unknown []string
	Missing []string
}

// Messages returns one getopt(1) style message per rejected option.
func (e *UnknownOptionError) Messages() []string {
	var msgs []string
	for _, name := range e.Unknown {
		msgs = append(msgs, fmt.Sprintf("invalid option -- '%s'", name))
	}
	for _, name := range e.Missing {
		msgs = append(msgs, fmt.Sprintf("option requires an argument -- '%s'", name))
	}
	return msgs
}

func (e *UnknownOptionError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// ParseVector scans argv (argv[0] being the program name) against spec. An
// *UnknownOptionError is returned along with the complete Result when the
// vector holds options the spec rejects.
func ParseVector(spec Spec, argv []string) (Result, error) {
	var res Result
	if spec.Wide {
		res = scan(getopt.Widen(argv), spec)
	} else {
		res = scan(argv, spec)
	}

	if len(res.Unknown) > 0 || len(res.Missing) > 0 {
		return res, &UnknownOptionError{Unknown: res.Unknown, Missing: res.Missing}
	}
	return res, nil
}

func scan[T getopt.Text](args []T, spec Spec) Result {
	res := Result{Options: []Option{}, Operands: []string{}}
	s := getopt.New(args)

	for {
		var c int
		if spec.Mode == ModeTokens {
			c = s.NextToken(spec.Tokens)
		} else {
			c = s.Next(spec.Optstring)
		}
		if c == getopt.EOF {
			break
		}

		if c == getopt.Unknown {
			var name string
			var missing bool
			if spec.Mode == ModeTokens {
				// NextToken consumed the whole argument and no value
				name, missing = spec.rejectedToken(getopt.String(args[s.OptInd()-1]))
			} else {
				name, missing = spec.rejectedOption(rune(s.OptOpt()))
			}
			log.WithFields(log.Fields{
				"option":  name,
				"missing": missing,
				"index":   s.OptInd(),
			}).Debug("rejected option")
			if missing {
				res.Missing = append(res.Missing, name)
			} else {
				res.Unknown = append(res.Unknown, name)
			}
			continue
		}

		opt := Option{Name: string(rune(c)), ID: c}
		if v, ok := s.OptArg(); ok {
			opt.Value, opt.HasValue = getopt.String(v), true
		}
		if spec.Mode == ModeTokens {
			opt.Name = matchedToken(spec, args, s.OptInd(), opt.HasValue)
		}
		log.WithFields(log.Fields{
			"option": opt.Name,
			"value":  opt.Value,
			"index":  s.OptInd(),
		}).Debug("matched option")
		res.Options = append(res.Options, opt)
	}

	for _, a := range s.Args() {
		res.Operands = append(res.Operands, getopt.String(a))
	}
	return res
}

// matchedToken names the token NextToken matched. The option argument sits
// before its value, if one was captured.
func matchedToken[T getopt.Text](spec Spec, args []T, ind int, hasValue bool) string {
	if hasValue {
		ind--
	}
	if _, tok := spec.lookupToken(getopt.String(args[ind-1])); tok != nil {
		return tok.Name
	}
	return ""
}

// rejectedOption names a compact option behind an Unknown outcome and
// reports whether it was accepted but lacked its value.
func (spec Spec) rejectedOption(c rune) (string, bool) {
	i := strings.IndexRune(spec.Optstring, c)
	if c == getopt.Separator || i < 0 {
		return string(c), false
	}
	return string(c), strings.HasPrefix(spec.Optstring[i+utf8.RuneLen(c):], string(getopt.Separator))
}

// rejectedToken is rejectedOption for a named token argument such as "-out".
func (spec Spec) rejectedToken(arg string) (string, bool) {
	name, tok := spec.lookupToken(arg)
	if tok == nil {
		return name, false
	}
	return tok.Name, tok.TakesValue
}

// lookupToken strips the prefix from arg and returns the first token whose
// name equals its significant characters.
func (spec Spec) lookupToken(arg string) (string, *getopt.Token) {
	name := strings.TrimPrefix(arg, string(getopt.Prefix))
	significant := []rune(name)
	if len(significant) > getopt.MaxTokenLen {
		significant = significant[:getopt.MaxTokenLen]
	}
	key := string(significant)
	if strings.ContainsRune(key, getopt.Separator) {
		return name, nil
	}
	for i := range spec.Tokens {
		if spec.Tokens[i].Name == key {
			return name, &spec.Tokens[i]
		}
	}
	return name, nil
}
