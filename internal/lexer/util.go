package lexer

// isIdentByte recognizes a C++ identifier character.
func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// IsIdentByte is the exported form used by extractors that scan backwards.
func IsIdentByte(b byte) bool {
	return isIdentByte(b)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsSpace reports whether b is ASCII whitespace.
func IsSpace(b byte) bool {
	return isSpace(b)
}
