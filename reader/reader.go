package reader

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// state holds the mutable position of a single parse, together with the
// Config it was started with. It is not exported: callers only ever see
// the Read/ReadMany entry points (spec.md §6).
type state struct {
	s     *scanner
	cfg   Config
	depth int
}

func newState(input string, cfg Config) *state {
	return &state{s: newScanner(input), cfg: cfg}
}

func (st *state) enterDepth(pos Pos) *Error {
	st.depth++
	if st.depth > st.cfg.depthLimit() {
		e := newError(pos, DepthLimitExceeded, "nesting exceeds the configured depth limit (%d)", st.cfg.depthLimit())
		return &e
	}
	return nil
}

func (st *state) exitDepth() { st.depth-- }

func (st *state) atDiscardLookahead() bool {
	r0, w0 := st.s.peekRune()
	if w0 == 0 || r0 != '#' {
		return false
	}
	return st.s.peekRuneAt(1) == '_'
}

func (st *state) consumeDiscardMarker() {
	st.s.advance() // '#'
	st.s.advance() // '_'
}

// readRequiredForm reads the next form that is not itself a discard form,
// transparently skipping any number of leading "#_ <form>" prefixes
// (spec.md §4.2 "Discard interaction"). It is an error for input to end, or
// for a closing delimiter to appear, before a real form is produced.
func (st *state) readRequiredForm() (Value, *Error) {
	for {
		st.s.skipTrivia()
		if st.s.atEnd() {
			e := newError(st.s.here(), UnexpectedEndOfInput, "expected a form")
			return Value{}, &e
		}
		if st.atDiscardLookahead() {
			markerPos := st.s.here()
			st.consumeDiscardMarker()
			if err := st.enterDepth(markerPos); err != nil {
				return Value{}, err
			}
			_, err := st.readRequiredForm()
			st.exitDepth()
			if err != nil {
				return Value{}, err
			}
			continue
		}
		return st.dispatchOne()
	}
}

// nextTopLevelForm is like readRequiredForm but tolerates end-of-input
// (used by Read/ReadMany, where running out of forms is not an error by
// itself).
func (st *state) nextTopLevelForm() (Value, bool, *Error) {
	for {
		st.s.skipTrivia()
		if st.s.atEnd() {
			return Value{}, false, nil
		}
		c, _ := st.s.peekRune()
		if c == ')' || c == ']' || c == '}' {
			e := newError(st.s.here(), UnexpectedByte, "unexpected %q at top level", c)
			return Value{}, false, &e
		}
		if st.atDiscardLookahead() {
			markerPos := st.s.here()
			st.consumeDiscardMarker()
			if err := st.enterDepth(markerPos); err != nil {
				return Value{}, false, err
			}
			_, err := st.readRequiredForm()
			st.exitDepth()
			if err != nil {
				return Value{}, false, err
			}
			continue
		}
		v, err := st.dispatchOne()
		if err != nil {
			return Value{}, false, err
		}
		return v, true, nil
	}
}

type positioned struct {
	Value
	Pos
}

// readElements reads collection members up to and including closer,
// transparently discarding "#_ <form>" slots (spec.md §4.2, §9 "Discard in
// maps" — the same policy applies to every collection, not just maps: a
// discarded slot simply contributes nothing, even at the very end right
// before the closing delimiter).
func (st *state) readElements(opener Pos, closer rune) ([]positioned, *Error) {
	var items []positioned
	for {
		st.s.skipTrivia()
		if st.s.atEnd() {
			e := newError(opener, UnexpectedEndOfInput, "unterminated collection, expected %q", closer)
			return nil, &e
		}
		c, _ := st.s.peekRune()
		if c == closer {
			st.s.advance()
			return items, nil
		}
		if c == ')' || c == ']' || c == '}' {
			e := Error{
				Kind:    UnbalancedDelimiter,
				Pos:     opener,
				Message: fmt.Sprintf("expected closing %q, found %q", closer, c),
				Hint:    fmt.Sprintf("opened at %d:%d", opener.Line, opener.Col),
			}
			return nil, &e
		}
		if st.atDiscardLookahead() {
			markerPos := st.s.here()
			st.consumeDiscardMarker()
			if err := st.enterDepth(markerPos); err != nil {
				return nil, err
			}
			_, err := st.readRequiredForm()
			st.exitDepth()
			if err != nil {
				return nil, err
			}
			continue
		}
		pos := st.s.here()
		v, err := st.dispatchOne()
		if err != nil {
			return nil, err
		}
		items = append(items, positioned{v, pos})
	}
}

func matchingCloser(opener rune) rune {
	switch opener {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	panic("unreachable")
}

func (st *state) readSequence(opener rune) ([]Value, *Error) {
	pos := st.s.here()
	st.s.advance()
	if err := st.enterDepth(pos); err != nil {
		return nil, err
	}
	defer st.exitDepth()
	items, err := st.readElements(pos, matchingCloser(opener))
	if err != nil {
		return nil, err
	}
	vals := make([]Value, len(items))
	for i, it := range items {
		vals[i] = it.Value
	}
	return vals, nil
}

// pairMapEntries implements spec.md §4.2's map-entry pairing and §3
// invariant 1's key-uniqueness check, applied after any per-slot discards
// have already been removed by readElements.
func pairMapEntries(items []positioned, closerPos Pos) (keys, vals []Value, err *Error) {
	if len(items)%2 != 0 {
		e := newError(closerPos, OddMapEntries, "map literal has an odd number of sub-forms (%d)", len(items))
		return nil, nil, &e
	}
	keys = make([]Value, 0, len(items)/2)
	vals = make([]Value, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		k, v := items[i], items[i+1]
		for _, existing := range keys {
			if Equal(existing, k.Value) {
				e := newError(k.Pos, DuplicateKey, "duplicate map key")
				return nil, nil, &e
			}
		}
		keys = append(keys, k.Value)
		vals = append(vals, v.Value)
	}
	return keys, vals, nil
}

func dedupeSet(items []positioned) ([]Value, *Error) {
	vals := make([]Value, 0, len(items))
	for _, it := range items {
		for _, existing := range vals {
			if Equal(existing, it.Value) {
				e := newError(it.Pos, DuplicateKey, "duplicate set element")
				return nil, &e
			}
		}
		vals = append(vals, it.Value)
	}
	return vals, nil
}

// applyMapNamespace implements the namespaced-map key expansion of spec.md
// §4.2/§8: unqualified keyword/symbol keys gain outerNs (unless outerNs is
// the escape-hatch namespace "_"), already-qualified keys are kept as-is,
// and a key explicitly namespaced "_" has that namespace stripped.
func applyMapNamespace(key Value, outerNs string) Value {
	if key.Kind != KindKey && key.Kind != KindSymbol {
		return key
	}
	if key.Ns == "_" {
		return Value{Kind: key.Kind, Ns: "", Name: key.Name}
	}
	if key.Ns == "" && outerNs != "_" {
		return Value{Kind: key.Kind, Ns: outerNs, Name: key.Name}
	}
	return key
}

// dispatchOne reads exactly one concrete form (spec.md §4.2's dispatch
// table), assuming the current position is not a discard marker, not EOF,
// and not a closing delimiter — callers are expected to have already ruled
// those cases out.
func (st *state) dispatchOne() (Value, *Error) {
	pos := st.s.here()
	c, w := st.s.peekRune()
	if w == 0 {
		e := newError(pos, UnexpectedEndOfInput, "expected a form")
		return Value{}, &e
	}
	trace("dispatch %q at %d:%d (depth %d)", c, pos.Line, pos.Col, st.depth)

	switch c {
	case '(':
		items, err := st.readSequence('(')
		if err != nil {
			return Value{}, err
		}
		return NewList(items), nil
	case '[':
		items, err := st.readSequence('[')
		if err != nil {
			return Value{}, err
		}
		return NewVector(items), nil
	case '{':
		return st.readMap(pos, "")
	case '"':
		st.s.advance()
		text, err := readString(st.s)
		if err != nil {
			return Value{}, err
		}
		return NewStr(text), nil
	case '\\':
		st.s.advance()
		ch, err := readChar(st.s)
		if err != nil {
			return Value{}, err
		}
		return NewChar(ch), nil
	case ':':
		return st.readKeyword(pos)
	case '#':
		return st.readHash(pos)
	case ')', ']', '}':
		e := newError(pos, UnexpectedByte, "unexpected %q", c)
		return Value{}, &e
	case '+', '-':
		return st.readSignedAtom(pos)
	}
	if c >= '0' && c <= '9' {
		raw := st.s.takeAtom()
		v, err := classifyNumber(raw, pos, st.cfg)
		if err != nil {
			return Value{}, err
		}
		return v, nil
	}
	raw := st.s.takeAtom()
	v, err := classifyAtom(raw, pos)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// readSignedAtom resolves the "+ - 0-9" ambiguity of spec.md §4.2: a sign
// followed by a digit is a number, otherwise it's an ordinary symbol atom
// (e.g. "-", "+", "->").
func (st *state) readSignedAtom(pos Pos) (Value, *Error) {
	next := st.s.peekRuneAt(1)
	if next >= '0' && next <= '9' {
		raw := st.s.takeAtom()
		return classifyNumber(raw, pos, st.cfg)
	}
	raw := st.s.takeAtom()
	return classifyAtom(raw, pos)
}

func (st *state) readKeyword(pos Pos) (Value, *Error) {
	st.s.advance() // ':'
	if r, w := st.s.peekRune(); w != 0 && r == ':' {
		st.s.advance() // second ':' — auto-namespace marker; this reader has
		// no notion of a "current namespace" to resolve it against (spec.md
		// §1 non-goals), so it collapses to the single-colon form (§4.4).
	}
	body := st.s.takeAtom()
	return classifyKeyword(body, pos)
}

// readHash implements every "#..." production of spec.md §4.2 except
// discard (handled one layer up, since it is transparent rather than
// value-producing): sets, namespaced maps, #inst/#uuid, and generic
// tagged literals.
func (st *state) readHash(pos Pos) (Value, *Error) {
	st.s.advance() // '#'
	c, w := st.s.peekRune()
	if w == 0 {
		e := newError(pos, UnexpectedEndOfInput, "expected a dispatch form after '#'")
		return Value{}, &e
	}

	if c == '{' {
		return st.readSet(pos)
	}
	if c == ':' {
		st.s.advance() // ':'
		ns := st.s.takeAtom()
		if !validSymbolBody(ns) {
			e := newError(pos, InvalidSymbol, "malformed namespaced-map namespace %q", ns)
			return Value{}, &e
		}
		st.s.skipTrivia()
		if b, w := st.s.peekRune(); w == 0 || b != '{' {
			e := newError(st.s.here(), UnexpectedByte, "expected '{' after '#:%s'", ns)
			return Value{}, &e
		}
		braceP := st.s.here()
		return st.readMap(braceP, ns)
	}

	tag := st.s.takeAtom()
	ns, name, ok := splitSymbolText(tag)
	if !ok {
		e := newError(pos, InvalidSymbol, "malformed tag %q", tag)
		return Value{}, &e
	}
	if ns == "" && name == "inst" {
		return st.readInst(pos)
	}
	if ns == "" && name == "uuid" {
		return st.readUuid(pos)
	}
	if err := st.enterDepth(pos); err != nil {
		return Value{}, err
	}
	defer st.exitDepth()
	inner, err := st.readRequiredForm()
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindTagged, Tag: Sym{Ns: ns, Name: name}, Inner: &inner}, nil
}

func (st *state) readSet(pos Pos) (Value, *Error) {
	if err := st.enterDepth(pos); err != nil {
		return Value{}, err
	}
	defer st.exitDepth()
	st.s.advance() // '{'
	items, err := st.readElements(pos, '}')
	if err != nil {
		return Value{}, err
	}
	vals, derr := dedupeSet(items)
	if derr != nil {
		return Value{}, derr
	}
	return NewSet(vals), nil
}

// readMap reads a "{...}" body already positioned at '{'. ns is "" for an
// ordinary map, or the namespace text for a "#:ns{...}" namespaced map.
func (st *state) readMap(pos Pos, ns string) (Value, *Error) {
	if err := st.enterDepth(pos); err != nil {
		return Value{}, err
	}
	defer st.exitDepth()
	st.s.advance() // '{'
	items, err := st.readElements(pos, '}')
	if err != nil {
		return Value{}, err
	}
	if ns != "" {
		for i := range items {
			if i%2 == 0 {
				items[i].Value = applyMapNamespace(items[i].Value, ns)
			}
		}
	}
	keys, vals, perr := pairMapEntries(items, st.s.here())
	if perr != nil {
		return Value{}, perr
	}
	return NewMap(keys, vals), nil
}

func (st *state) readInst(pos Pos) (Value, *Error) {
	valuePos := st.s.here()
	inner, err := st.readRequiredForm()
	if err != nil {
		return Value{}, err
	}
	if inner.Kind != KindStr {
		e := newError(valuePos, UnexpectedByte, "#inst must be followed by a string")
		return Value{}, &e
	}
	_ = pos
	return Value{Kind: KindInst, Str: inner.Str}, nil
}

func (st *state) readUuid(pos Pos) (Value, *Error) {
	st.s.skipTrivia()
	valuePos := st.s.here()
	inner, err := st.readRequiredForm()
	if err != nil {
		return Value{}, err
	}
	if inner.Kind != KindStr {
		e := newError(valuePos, UnexpectedByte, "#uuid must be followed by a string")
		return Value{}, &e
	}
	parsed, uerr := uuid.FromString(inner.Str)
	if uerr != nil {
		e := newError(valuePos, InvalidUuid, "malformed UUID literal %q", inner.Str)
		return Value{}, &e
	}
	_ = pos
	return Value{Kind: KindUuid, Str: parsed.String()}, nil
}

// Read implements spec.md §6's `read`: parse exactly one top-level form,
// erroring if non-trivia content follows it.
func Read(input string) (Value, error) {
	return ReadConfig(input, DefaultConfig())
}

// ReadConfig is Read with an explicit Config.
func ReadConfig(input string, cfg Config) (Value, error) {
	st := newState(input, cfg)
	v, found, err := st.nextTopLevelForm()
	if err != nil {
		return Value{}, *err
	}
	if !found {
		e := newError(st.s.here(), UnexpectedEndOfInput, "no forms to read")
		return Value{}, e
	}
	st.s.skipTrivia()
	if !st.s.atEnd() {
		e := newError(st.s.here(), UnexpectedByte, "trailing data after top-level form")
		return Value{}, e
	}
	return v, nil
}

// ReadMany implements spec.md §6's `read_many`: parse zero or more
// top-level forms until end of input.
func ReadMany(input string) ([]Value, error) {
	return ReadManyConfig(input, DefaultConfig())
}

// ReadManyConfig is ReadMany with an explicit Config.
func ReadManyConfig(input string, cfg Config) ([]Value, error) {
	st := newState(input, cfg)
	var out []Value
	for {
		v, found, err := st.nextTopLevelForm()
		if err != nil {
			return nil, *err
		}
		if !found {
			return out, nil
		}
		out = append(out, v)
	}
}
