package reader

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders v back to EDN text (spec.md §4.6), satisfying the round-trip
// law Read(Print(v)) == v for any v produced by Read.
func Print(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindNil:
		b.WriteString("nil")
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindChar:
		writeChar(b, v.Char)
	case KindStr:
		writeString(b, v.Str)
	case KindSymbol:
		writeQualified(b, v.Ns, v.Name)
	case KindKey:
		b.WriteByte(':')
		writeQualified(b, v.Ns, v.Name)
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindBigInt:
		b.WriteString(v.BigInt.String())
		b.WriteByte('N')
	case KindRational:
		b.WriteString(v.Rational)
	case KindDouble:
		b.WriteString(formatDouble(v.Double))
	case KindDecimal:
		b.WriteString(v.Decimal.String())
		b.WriteByte('M')
	case KindList:
		writeSeq(b, '(', ')', v.Items)
	case KindVector:
		writeSeq(b, '[', ']', v.Items)
	case KindSet:
		b.WriteString("#{")
		writeItems(b, v.Items)
		b.WriteByte('}')
	case KindMap:
		b.WriteByte('{')
		for i := range v.Keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, v.Keys[i])
			b.WriteByte(' ')
			writeValue(b, v.Vals[i])
		}
		b.WriteByte('}')
	case KindTagged:
		b.WriteByte('#')
		b.WriteString(v.Tag.String())
		b.WriteByte(' ')
		writeValue(b, *v.Inner)
	case KindInst:
		b.WriteString("#inst ")
		writeString(b, v.Str)
	case KindUuid:
		b.WriteString("#uuid ")
		writeString(b, v.Str)
	}
}

func writeQualified(b *strings.Builder, ns, name string) {
	if ns != "" {
		b.WriteString(ns)
		b.WriteByte('/')
	}
	b.WriteString(name)
}

func writeSeq(b *strings.Builder, open, close byte, items []Value) {
	b.WriteByte(open)
	writeItems(b, items)
	b.WriteByte(close)
}

func writeItems(b *strings.Builder, items []Value) {
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeValue(b, it)
	}
}

// formatDouble renders the shortest decimal form that reparses to the same
// float64, always keeping a decimal point or exponent so the printed text is
// unambiguously a Double on re-read (spec.md §4.5's float grammar requires
// one of '.', 'e', 'E').
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

var namedChars = map[rune]string{
	'\n': "newline",
	' ':  "space",
	'\t': "tab",
	'\f': "formfeed",
	'\b': "backspace",
	'\r': "return",
}

// writeChar implements spec.md §4.6's character-literal printing: the six
// named characters by name, printable ASCII literally, control characters,
// DEL and other runes up to U+FFFF as \uXXXX, and runes above U+FFFF
// (which four hex digits cannot express) literally.
func writeChar(b *strings.Builder, r rune) {
	b.WriteByte('\\')
	if name, ok := namedChars[r]; ok {
		b.WriteString(name)
		return
	}
	if r >= 0x20 && r < 0x7F {
		b.WriteRune(r)
		return
	}
	if r <= 0xFFFF {
		b.WriteByte('u')
		b.WriteString(fmt.Sprintf("%04x", r))
		return
	}
	b.WriteRune(r)
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\b':
			b.WriteString(`\b`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
