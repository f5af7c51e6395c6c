package getopt

import "strings"

// Token is a named option of up to MaxTokenLen characters.
type Token struct {
	Name       string
	TakesValue bool
}

// ParseTokens converts "name" and "name:" specs into Tokens. The name is
// the text before the first ':'.
func ParseTokens(specs ...string) []Token {
	tokens := make([]Token, 0, len(specs))
	for _, spec := range specs {
		name, _, found := strings.Cut(spec, string(Separator))
		tokens = append(tokens, Token{Name: name, TakesValue: found})
	}
	return tokens
}

// Pack returns the identifier NextToken reports for name: its first
// MaxTokenLen characters, eight bits each, the first one most significant.
// Pack("v") is 'v'. The top bit is cleared so an identifier is never
// negative and cannot read as EOF, whatever the size of int.
func Pack(name string) int {
	var x uint32
	n := 0
	for _, c := range name {
		if n == MaxTokenLen {
			break
		}
		x = x<<8 | uint32(c&0xff)
		n++
	}
	return packed(x)
}

func packed(x uint32) int {
	return int(x & 0x7fffffff)
}

// NextToken is Next for named tokens. Each call consumes a whole argument;
// only its first MaxTokenLen characters are significant. A token holding a
// ':' is never valid. The first entry of tokens whose name matches wins, and
// a value is always the following argument.
func (s *Scanner[T]) NextToken(tokens []Token) int {
	var zero T
	s.arg, s.hasArg = zero, false
	s.cur, s.pos = zero, 0

	if !s.begin() {
		return EOF
	}
	tok := s.args[s.ind]
	s.ind++

	var (
		name [MaxTokenLen]rune
		n    int
		x    uint32
	)
	for pos := 1; n < MaxTokenLen && pos < len(tok); n++ {
		c, w := decode(tok, pos)
		pos += w
		x = x<<8 | uint32(c&0xff)
		s.opt = packed(x)
		if c == Separator {
			return Unknown
		}
		name[n] = c
	}

	match := lookupToken(tokens, string(name[:n]))
	if match == nil {
		return Unknown
	}
	if !match.TakesValue {
		return packed(x)
	}
	if s.ind < len(s.args) {
		s.arg, s.hasArg = s.args[s.ind], true
		s.ind++
		return packed(x)
	}
	return Unknown
}

func lookupToken(tokens []Token, name string) *Token {
	for i := range tokens {
		if tokens[i].Name == name {
			return &tokens[i]
		}
	}
	return nil
}
