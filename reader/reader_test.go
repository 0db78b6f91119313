package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScalars(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Value
	}{
		{"nil", "nil", Nil},
		{"true", "true", NewBool(true)},
		{"false", "false", NewBool(false)},
		{"int", "42", NewInt(42)},
		{"negative int", "-17", NewInt(-17)},
		{"hex int", "0xFF", NewInt(255)},
		{"octal int", "010", NewInt(8)},
		{"radix int", "2r1010", NewInt(10)},
		{"symbol", "foo.bar", NewSymbol("", "foo.bar")},
		{"namespaced symbol", "ns/name", NewSymbol("ns", "name")},
		{"keyword", ":foo", NewKey("", "foo")},
		{"namespaced keyword", ":ns/name", NewKey("ns", "name")},
		{"auto-namespace keyword collapses", "::foo", NewKey("", "foo")},
		{"float", "1.5", Value{Kind: KindDouble, Double: 1.5}},
		{"string", `"hi\nthere"`, NewStr("hi\nthere")},
		{"char", `\a`, NewChar('a')},
		{"named char", `\newline`, NewChar('\n')},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Read(c.in)
			require.NoError(t, err)
			assert.True(t, Equal(c.want, got), "got %+v want %+v", got, c.want)
		})
	}
}

func TestReadSignNamespaceBoundary(t *testing.T) {
	v, err := Read("-5")
	require.NoError(t, err)
	assert.True(t, Equal(NewInt(-5), v))

	_, err = Read("-/foo")
	require.Error(t, err)
	assert.Equal(t, InvalidSymbol, err.(Error).Kind)

	_, err = Read("+/foo")
	require.Error(t, err)
	assert.Equal(t, InvalidSymbol, err.(Error).Kind)

	v, err = Read("-")
	require.NoError(t, err)
	assert.True(t, Equal(NewSymbol("", "-"), v))
}

func TestReadDiscardChainDepthLimit(t *testing.T) {
	deep := strings.Repeat("#_", 1000) + "1"
	cfg := DefaultConfig()
	cfg.DepthLimit = 10
	_, err := ReadConfig(deep, cfg)
	require.Error(t, err)
	assert.Equal(t, DepthLimitExceeded, err.(Error).Kind)
}

func TestReadBigIntAndDecimal(t *testing.T) {
	v, err := Read("99999999999999999999N")
	require.NoError(t, err)
	require.Equal(t, KindBigInt, v.Kind)
	assert.Equal(t, "99999999999999999999", v.BigInt.String())

	v, err = Read("1.50M")
	require.NoError(t, err)
	require.Equal(t, KindDecimal, v.Kind)
	assert.Equal(t, "1.5", v.Decimal.String())
}

func TestReadRationalNotReduced(t *testing.T) {
	v, err := Read("6/4")
	require.NoError(t, err)
	require.Equal(t, KindRational, v.Kind)
	assert.Equal(t, "6/4", v.Rational)
}

func TestReadCollections(t *testing.T) {
	v, err := Read("(1 2 3)")
	require.NoError(t, err)
	require.Equal(t, KindList, v.Kind)
	require.Len(t, v.Items, 3)

	v, err = Read("[1 2 3]")
	require.NoError(t, err)
	assert.Equal(t, KindVector, v.Kind)

	v, err = Read("#{1 2 3}")
	require.NoError(t, err)
	assert.Equal(t, KindSet, v.Kind)
	assert.Len(t, v.Items, 3)

	v, err = Read(`{:a 1 :b 2}`)
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind)
	assert.Len(t, v.Keys, 2)
}

func TestReadDuplicateKeyAndSetElement(t *testing.T) {
	_, err := Read(`{:a 1 :a 2}`)
	require.Error(t, err)
	assert.Equal(t, DuplicateKey, err.(Error).Kind)

	_, err = Read(`#{1 1}`)
	require.Error(t, err)
	assert.Equal(t, DuplicateKey, err.(Error).Kind)
}

func TestReadOddMapEntries(t *testing.T) {
	_, err := Read(`{:a 1 :b}`)
	require.Error(t, err)
	assert.Equal(t, OddMapEntries, err.(Error).Kind)
}

func TestReadUnbalancedDelimiter(t *testing.T) {
	_, err := Read(`(1 2]`)
	require.Error(t, err)
	assert.Equal(t, UnbalancedDelimiter, err.(Error).Kind)
}

func TestReadDiscard(t *testing.T) {
	v, err := Read("[1 #_2 3]")
	require.NoError(t, err)
	require.Equal(t, KindVector, v.Kind)
	require.Len(t, v.Items, 2)
	assert.True(t, Equal(NewInt(1), v.Items[0]))
	assert.True(t, Equal(NewInt(3), v.Items[1]))

	v, err = Read("[#_ #_ 1 2 3]")
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.True(t, Equal(NewInt(3), v.Items[0]))

	v, err = Read("[1 #_2]")
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.True(t, Equal(NewInt(1), v.Items[0]))
}

func TestReadDiscardInMap(t *testing.T) {
	v, err := Read(`{:a 1 #_:b}`)
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind)
	require.Len(t, v.Keys, 1)
	assert.True(t, Equal(NewKey("", "a"), v.Keys[0]))
}

func TestReadNamespacedMap(t *testing.T) {
	v, err := Read(`#:order{:id 7 :q/b 2 :_/global true}`)
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind)

	equiv, err := Read(`{:order/id 7 :q/b 2 :global true}`)
	require.NoError(t, err)

	assert.True(t, Equal(v, equiv))
}

func TestReadTaggedLiteral(t *testing.T) {
	v, err := Read(`#my/tag 42`)
	require.NoError(t, err)
	require.Equal(t, KindTagged, v.Kind)
	assert.Equal(t, Sym{Ns: "my", Name: "tag"}, v.Tag)
	require.NotNil(t, v.Inner)
	assert.True(t, Equal(NewInt(42), *v.Inner))
}

func TestReadInst(t *testing.T) {
	v, err := Read(`#inst "1985-04-12T23:20:50.52Z"`)
	require.NoError(t, err)
	require.Equal(t, KindInst, v.Kind)
	assert.Equal(t, "1985-04-12T23:20:50.52Z", v.Str)
}

func TestReadUuid(t *testing.T) {
	v, err := Read(`#uuid "550e8400-e29b-41d4-a716-446655440000"`)
	require.NoError(t, err)
	require.Equal(t, KindUuid, v.Kind)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", v.Str)

	_, err = Read(`#uuid "not-a-uuid"`)
	require.Error(t, err)
	assert.Equal(t, InvalidUuid, err.(Error).Kind)
}

func TestReadManyAndTrailingContent(t *testing.T) {
	vals, err := ReadMany("1 2 3")
	require.NoError(t, err)
	require.Len(t, vals, 3)

	_, err = Read("1 2")
	require.Error(t, err)
	assert.Equal(t, UnexpectedByte, err.(Error).Kind)
}

func TestReadDepthLimit(t *testing.T) {
	deep := ""
	for i := 0; i < 10; i++ {
		deep += "["
	}
	for i := 0; i < 10; i++ {
		deep += "]"
	}
	cfg := DefaultConfig()
	cfg.DepthLimit = 5
	_, err := ReadConfig(deep, cfg)
	require.Error(t, err)
	assert.Equal(t, DepthLimitExceeded, err.(Error).Kind)
}

func TestPrintRoundTrip(t *testing.T) {
	inputs := []string{
		"nil", "true", "false", "42", "-17", "1.5",
		`"hi\nthere"`, `\a`, `\newline`,
		"foo.bar", "ns/name", ":foo", ":ns/name",
		"(1 2 3)", "[1 2 3]", "#{1 2 3}", "{:a 1 :b 2}",
		"#my/tag 42", `#uuid "550e8400-e29b-41d4-a716-446655440000"`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			v, err := Read(in)
			require.NoError(t, err)
			printed := Print(v)
			v2, err := Read(printed)
			require.NoError(t, err, "reparsing %q", printed)
			assert.True(t, Equal(v, v2), "round-trip mismatch: %q -> %q", in, printed)
		})
	}
}

func TestPrintEscapesControlAndNonASCIIChars(t *testing.T) {
	bell := rune(0x07)
	eAcute := rune(0x00E9)

	assert.Equal(t, `\u0007`, Print(NewChar(bell)))
	assert.Equal(t, `\u00e9`, Print(NewChar(eAcute)))
	assert.Equal(t, `\a`, Print(NewChar('a')))
	assert.Equal(t, `\newline`, Print(NewChar('\n')))

	v, err := Read(Print(NewChar(bell)))
	require.NoError(t, err)
	assert.True(t, Equal(NewChar(bell), v))
}

func TestErrorWithoutPos(t *testing.T) {
	_, err := Read(`{:a`)
	require.Error(t, err)
	e := err.(Error)
	stripped := e.WithoutPos()
	assert.Equal(t, Pos{}, stripped.Pos)
	assert.Equal(t, e.Kind, stripped.Kind)
}
