package reader

import (
	"strings"

	"github.com/smasher164/xid"
)

const symbolSpecialStart = "*+!-_?$%&=<>."
const symbolSpecialContinue = "#:'"

// isSymbolStart classifies the first rune of a symbol/keyword body
// (spec.md §4.4). Unicode letters are accepted via xid.Start, the same
// identifier classifier the teacher's SQL scanner (sqlparser/scanner.go)
// uses to recognize non-ASCII identifier characters.
func isSymbolStart(r rune) bool {
	return xid.Start(r) || strings.ContainsRune(symbolSpecialStart, r)
}

// isSymbolContinue classifies a non-initial rune of a symbol/keyword body.
func isSymbolContinue(r rune) bool {
	return xid.Continue(r) ||
		strings.ContainsRune(symbolSpecialStart, r) ||
		strings.ContainsRune(symbolSpecialContinue, r)
}

func validSymbolBody(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isSymbolStart(r) {
				return false
			}
			continue
		}
		if !isSymbolContinue(r) {
			return false
		}
	}
	return true
}

// splitSymbolText implements the namespace/name split of spec.md §4.4: at
// most one '/' separating a non-empty namespace from a non-empty name, the
// bare symbol "/" itself being the one exception.
func splitSymbolText(raw string) (ns, name string, ok bool) {
	if raw == "/" {
		return "", "/", true
	}
	idx := strings.IndexByte(raw, '/')
	if idx < 0 {
		if !validSymbolBody(raw) {
			return "", "", false
		}
		return "", raw, true
	}
	ns, name = raw[:idx], raw[idx+1:]
	if ns == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	if !validSymbolBody(ns) || !validSymbolBody(name) {
		return "", "", false
	}
	// A bare sign character is only a legal symbol/name on its own (e.g. the
	// symbol "-"); as a namespace it's ambiguous with the numeric-literal
	// sign and spec.md §8 requires it to error ("-/foo" is invalid).
	if ns == "+" || ns == "-" {
		return "", "", false
	}
	return ns, name, true
}

// classifyAtom implements spec.md §4.5's entry point for atoms that were not
// already dispatched to number classification: nil/true/false, then
// symbols. raw never starts with ':' (keywords are handled by the caller
// before reaching here).
func classifyAtom(raw string, pos Pos) (Value, *Error) {
	switch raw {
	case "nil":
		return Nil, nil
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	}
	ns, name, ok := splitSymbolText(raw)
	if !ok {
		e := newError(pos, InvalidSymbol, "malformed symbol %q", raw)
		return Value{}, &e
	}
	return NewSymbol(ns, name), nil
}

// classifyKeyword implements the keyword grammar of spec.md §4.4: body is
// the atom text with the leading ':' (and a second ':' for auto-namespaced
// keywords) already stripped by the caller, so "::foo" and ":foo" arrive
// here identically.
func classifyKeyword(body string, pos Pos) (Value, *Error) {
	if body == "" {
		e := newError(pos, InvalidSymbol, "empty keyword")
		return Value{}, &e
	}
	ns, name, ok := splitSymbolText(body)
	if !ok {
		e := newError(pos, InvalidSymbol, "malformed keyword %q", ":"+body)
		return Value{}, &e
	}
	return NewKey(ns, name), nil
}
