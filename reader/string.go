package reader

import "strings"

// readString implements spec.md §4.3's string grammar. The caller has
// already consumed the opening '"'.
func readString(s *scanner) (string, *Error) {
	var b strings.Builder
	for {
		r, w := s.peekRune()
		if w == 0 {
			e := newError(s.here(), UnexpectedEndOfInput, "unterminated string")
			return "", &e
		}
		if r == '"' {
			s.advance()
			return b.String(), nil
		}
		if r == '\\' {
			escPos := s.here()
			s.advance()
			r2, w2 := s.peekRune()
			if w2 == 0 {
				e := newError(escPos, UnexpectedEndOfInput, "unterminated escape in string")
				return "", &e
			}
			switch r2 {
			case '"', '\\':
				b.WriteRune(r2)
				s.advance()
			case 'n':
				b.WriteByte('\n')
				s.advance()
			case 'r':
				b.WriteByte('\r')
				s.advance()
			case 't':
				b.WriteByte('\t')
				s.advance()
			case 'f':
				b.WriteByte('\f')
				s.advance()
			case 'b':
				b.WriteByte('\b')
				s.advance()
			case 'u':
				s.advance()
				v, err := readHex4(s, escPos)
				if err != nil {
					return "", err
				}
				b.WriteRune(rune(v))
			default:
				e := newError(escPos, InvalidEscape, "invalid string escape \\%c", r2)
				return "", &e
			}
			continue
		}
		s.advance()
		b.WriteRune(r)
	}
}

func readHex4(s *scanner, pos Pos) (int, *Error) {
	v := 0
	for i := 0; i < 4; i++ {
		r, w := s.peekRune()
		d, ok := hexDigitValue(r)
		if w == 0 || !ok {
			e := newError(pos, InvalidEscape, "\\u escape requires exactly 4 hex digits")
			return 0, &e
		}
		v = v*16 + d
		s.advance()
	}
	return v, nil
}

func hexDigitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

// readChar implements spec.md §4.3's character-literal grammar. The caller
// has already consumed the leading '\'.
func readChar(s *scanner) (rune, *Error) {
	pos := s.here()
	r0, w0 := s.peekRune()
	if w0 == 0 {
		e := newError(pos, UnexpectedEndOfInput, "empty character literal")
		return 0, &e
	}
	var atom string
	if isDelimiter(r0) {
		s.advance()
		atom = string(r0)
	} else {
		atom = s.takeAtom()
	}
	if atom == "" {
		e := newError(pos, UnexpectedEndOfInput, "empty character literal")
		return 0, &e
	}
	return classifyCharAtom(atom, pos)
}

func classifyCharAtom(atom string, pos Pos) (rune, *Error) {
	switch atom {
	case "newline":
		return '\n', nil
	case "space":
		return ' ', nil
	case "tab":
		return '\t', nil
	case "formfeed":
		return '\f', nil
	case "backspace":
		return '\b', nil
	case "return":
		return '\r', nil
	}
	if len(atom) == 5 && atom[0] == 'u' {
		v := 0
		for _, r := range atom[1:] {
			d, ok := hexDigitValue(r)
			if !ok {
				v = -1
				break
			}
			v = v*16 + d
		}
		if v >= 0 {
			return rune(v), nil
		}
	}
	if len(atom) >= 2 && len(atom) <= 4 && atom[0] == 'o' {
		digits := atom[1:]
		v := 0
		valid := true
		for _, r := range digits {
			if r < '0' || r > '7' {
				valid = false
				break
			}
			v = v*8 + int(r-'0')
		}
		if valid && v <= 0o377 {
			return rune(v), nil
		}
	}
	runes := []rune(atom)
	if len(runes) == 1 {
		return runes[0], nil
	}
	e := newError(pos, InvalidEscape, "invalid character literal \\%s", atom)
	return 0, &e
}
