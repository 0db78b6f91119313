package reader

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// classifyNumber implements spec.md §4.5: given an atom's raw text (already
// known to start, after an optional sign, with a digit), decide which
// numeric Kind it is and produce the typed Value.
func classifyNumber(raw string, pos Pos, cfg Config) (Value, *Error) {
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		return classifyRational(raw, i, pos)
	}
	if strings.HasSuffix(raw, "N") && !isRadixForm(raw) {
		return classifyBigIntLiteral(raw[:len(raw)-1], pos, cfg)
	}
	if strings.HasSuffix(raw, "M") {
		return classifyDecimalLiteral(raw[:len(raw)-1], pos, cfg)
	}
	if isFloatForm(raw) {
		return classifyFloat(raw, pos, cfg)
	}
	return classifyInteger(raw, pos, cfg)
}

func classifyRational(raw string, slash int, pos Pos) (Value, *Error) {
	num, den := raw[:slash], raw[slash+1:]
	if !isSignedDigits(num) || !isUnsignedDigits(den) || den == "" {
		e := newError(pos, InvalidNumber, "malformed rational literal %q", raw)
		return Value{}, &e
	}
	return Value{Kind: KindRational, Rational: raw}, nil
}

func isSignedDigits(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return isUnsignedDigits(s)
}

func isUnsignedDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isRadixForm reports whether raw looks like a <radix>rDIGITS literal, so
// that a trailing 'N' is treated as a radix digit rather than the BigInt
// suffix. 'N' is a valid digit in bases 24 through 36 (e.g. "36rN" is 23);
// in smaller bases the literal is rejected by splitIntegerBase.
func isRadixForm(raw string) bool {
	body := raw
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	i := strings.IndexAny(body, "rR")
	if i <= 0 {
		return false
	}
	return isUnsignedDigits(body[:i])
}

func isFloatForm(raw string) bool {
	body := raw
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		return false
	}
	return strings.ContainsAny(raw, ".eE")
}

func classifyFloat(raw string, pos Pos, cfg Config) (Value, *Error) {
	if !cfg.Floats {
		e := newError(pos, UnsupportedNumericForm, "floating-point literals are disabled: %q", raw)
		return Value{}, &e
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e := newError(pos, InvalidNumber, "malformed float literal %q", raw)
		return Value{}, &e
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e := newError(pos, InvalidNumber, "NaN/Infinity are not valid EDN literals: %q", raw)
		return Value{}, &e
	}
	return Value{Kind: KindDouble, Double: f}, nil
}

func classifyBigIntLiteral(digits string, pos Pos, cfg Config) (Value, *Error) {
	if !cfg.ArbitraryInts {
		e := newError(pos, UnsupportedNumericForm, "arbitrary-precision integers are disabled: %qN", digits)
		return Value{}, &e
	}
	base, body, ok := splitIntegerBase(digits)
	if !ok {
		e := newError(pos, InvalidNumber, "malformed integer literal %qN", digits)
		return Value{}, &e
	}
	// The BigIntBackend contract (spec.md §6) promises a decimal digit
	// string with optional sign; non-decimal bases (hex/octal/radix) go
	// straight through math/big, which is what the default backend does
	// internally anyway.
	if base == 10 {
		if n, ok := cfg.bigIntBackend().ParseBigInt(body); ok {
			return Value{Kind: KindBigInt, BigInt: n}, nil
		}
	}
	n, ok := new(big.Int).SetString(body, base)
	if !ok {
		e := newError(pos, InvalidNumber, "malformed integer literal %qN", digits)
		return Value{}, &e
	}
	return Value{Kind: KindBigInt, BigInt: n}, nil
}

func classifyDecimalLiteral(mantissa string, pos Pos, cfg Config) (Value, *Error) {
	if !cfg.ArbitraryDecimals {
		e := newError(pos, UnsupportedNumericForm, "arbitrary-precision decimals are disabled: %qM", mantissa)
		return Value{}, &e
	}
	if mantissa == "" || !isDecimalMantissa(mantissa) {
		e := newError(pos, InvalidNumber, "malformed decimal literal %qM", mantissa)
		return Value{}, &e
	}
	d, ok := cfg.decimalBackend().ParseDecimal(mantissa)
	if !ok {
		e := newError(pos, InvalidNumber, "malformed decimal literal %qM", mantissa)
		return Value{}, &e
	}
	return Value{Kind: KindDecimal, Decimal: d}, nil
}

func isDecimalMantissa(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	sawDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sawDigit = true
		case r == '.' || r == 'e' || r == 'E' || r == '+' || r == '-':
			// allowed within mantissa/exponent
		default:
			return false
		}
	}
	return sawDigit
}

func classifyInteger(raw string, pos Pos, cfg Config) (Value, *Error) {
	base, body, ok := splitIntegerBase(raw)
	if !ok {
		e := newError(pos, InvalidNumber, "malformed integer literal %q", raw)
		return Value{}, &e
	}
	neg := false
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		neg = body[0] == '-'
		body = body[1:]
	}
	if body == "" {
		e := newError(pos, InvalidNumber, "malformed integer literal %q", raw)
		return Value{}, &e
	}
	signedBody := body
	if neg {
		signedBody = "-" + body
	}
	i, err := strconv.ParseInt(signedBody, base, 64)
	if err == nil {
		return Value{Kind: KindInt, Int: i}, nil
	}
	if !cfg.ArbitraryInts {
		e := newError(pos, UnsupportedNumericForm, "integer literal overflows 64 bits and arbitrary-precision integers are disabled: %q", raw)
		return Value{}, &e
	}
	n, ok := new(big.Int).SetString(signedBody, base)
	if !ok {
		e := newError(pos, InvalidNumber, "malformed integer literal %q", raw)
		return Value{}, &e
	}
	return Value{Kind: KindBigInt, BigInt: n}, nil
}

// splitIntegerBase implements the base-sniffing of spec.md §4.5 step 5:
// decimal by default, 0x/0X hex, leading-0 octal, or <radix>r<digits>.
// It returns the base and the (possibly still signed) body to parse in
// that base.
func splitIntegerBase(raw string) (base int, body string, ok bool) {
	sign := ""
	rest := raw
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		sign = rest[:1]
		rest = rest[1:]
	}
	if rest == "" {
		return 0, "", false
	}

	if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
		digits := rest[2:]
		if digits == "" || !isHexDigits(digits) {
			return 0, "", false
		}
		return 16, sign + digits, true
	}

	if i := strings.IndexAny(rest, "rR"); i > 0 && isUnsignedDigits(rest[:i]) {
		radix, err := strconv.Atoi(rest[:i])
		if err == nil && radix >= 2 && radix <= 36 {
			digits := rest[i+1:]
			if digits == "" || !isValidInBase(digits, radix) {
				return 0, "", false
			}
			return radix, sign + digits, true
		}
	}

	if len(rest) > 1 && rest[0] == '0' {
		if !isOctalDigits(rest) {
			return 0, "", false
		}
		return 8, sign + rest, true
	}

	if !isUnsignedDigits(rest) {
		return 0, "", false
	}
	return 10, sign + rest, true
}

func isHexDigits(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return len(s) > 0
}

func isOctalDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '7' {
			return false
		}
	}
	return len(s) > 0
}

func isValidInBase(s string, base int) bool {
	for _, r := range strings.ToLower(s) {
		var v int
		switch {
		case r >= '0' && r <= '9':
			v = int(r - '0')
		case r >= 'a' && r <= 'z':
			v = int(r-'a') + 10
		default:
			return false
		}
		if v >= base {
			return false
		}
	}
	return len(s) > 0
}
