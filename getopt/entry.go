package getopt

import "unicode/utf16"

// Getopt scans narrow arguments against a compact spec.
func Getopt(s *Scanner[string], optstring string) int {
	return s.Next(optstring)
}

// GetoptW scans wide arguments against a compact spec.
func GetoptW(s *Scanner[[]rune], optstring string) int {
	return s.Next(optstring)
}

// GetoptEx scans narrow arguments against named tokens.
func GetoptEx(s *Scanner[string], tokens []Token) int {
	return s.NextToken(tokens)
}

// GetoptExW scans wide arguments against named tokens.
func GetoptExW(s *Scanner[[]rune], tokens []Token) int {
	return s.NextToken(tokens)
}

// Widen converts a narrow vector to runes.
func Widen(args []string) [][]rune {
	wide := make([][]rune, len(args))
	for i, a := range args {
		wide[i] = []rune(a)
	}
	return wide
}

// WidenUTF16 converts a narrow vector to UTF-16.
func WidenUTF16(args []string) [][]uint16 {
	wide := make([][]uint16, len(args))
	for i, a := range args {
		wide[i] = utf16.Encode([]rune(a))
	}
	return wide
}

// String converts an argument of any Text type to a Go string.
func String[T Text](t T) string {
	switch v := any(t).(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []rune:
		return string(v)
	case []uint16:
		return string(utf16.Decode(v))
	}
	return ""
}
