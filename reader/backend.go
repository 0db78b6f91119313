package reader

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimal is the arbitrary-precision decimal payload of a KindDecimal value.
// It wraps github.com/shopspring/decimal, the default decimal backend
// (spec.md §11): that library was already present, indirectly, in the
// teacher's dependency graph (pulled in by its MSSQL driver stack), and is
// promoted here to a direct, exercised dependency.
type Decimal struct {
	d decimal.Decimal
}

// Equal reports whether two Decimal values represent the same number.
func (d Decimal) Equal(o Decimal) bool { return d.d.Equal(o.d) }

// String renders the minimal textual form that re-parses to the same value,
// without the trailing M suffix (the printer adds that).
func (d Decimal) String() string { return d.d.String() }

// BigIntBackend is the numeric-backend injection point (spec.md §6) for
// arbitrary-precision integers (the N suffix, and native-overflow
// promotion). No arbitrary-precision integer library appears anywhere in
// the retrieval pack, so the default implementation below uses the
// standard library's math/big — documented in DESIGN.md as the one
// deliberate standard-library fallback in this reader.
type BigIntBackend interface {
	// ParseBigInt parses an optionally-signed decimal digit string into an
	// arbitrary-precision integer.
	ParseBigInt(digits string) (*big.Int, bool)
}

// DecimalBackend is the numeric-backend injection point (spec.md §6) for
// arbitrary-precision decimals (the M suffix).
type DecimalBackend interface {
	// ParseDecimal parses a decimal-literal mantissa (with optional
	// exponent) into an arbitrary-precision decimal.
	ParseDecimal(text string) (Decimal, bool)
}

// mathBigBackend is the default BigIntBackend, backed by math/big.
type mathBigBackend struct{}

func (mathBigBackend) ParseBigInt(digits string) (*big.Int, bool) {
	n, ok := new(big.Int).SetString(digits, 10)
	return n, ok
}

// shopspringDecimalBackend is the default DecimalBackend.
type shopspringDecimalBackend struct{}

func (shopspringDecimalBackend) ParseDecimal(text string) (Decimal, bool) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Decimal{}, false
	}
	return Decimal{d: d}, true
}

// DefaultBigIntBackend is the math/big-backed BigIntBackend used when a
// Config does not override one.
var DefaultBigIntBackend BigIntBackend = mathBigBackend{}

// DefaultDecimalBackend is the shopspring/decimal-backed DecimalBackend used
// when a Config does not override one.
var DefaultDecimalBackend DecimalBackend = shopspringDecimalBackend{}
