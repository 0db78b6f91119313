package reader

// Config enumerates the feature toggles and resource limits of spec.md §6
// and §5. The zero Config is not DefaultConfig: it has floats, arbitrary
// integers and arbitrary decimals turned off, while its zero DepthLimit and
// nil backends fall back to the defaults.
type Config struct {
	// Floats, when false, makes any floating-point literal produce
	// UnsupportedNumericForm.
	Floats bool

	// ArbitraryInts, when false, makes integer literals exceeding native
	// 64-bit range, or carrying the N suffix, produce
	// UnsupportedNumericForm.
	ArbitraryInts bool

	// ArbitraryDecimals, when false, makes the M suffix produce
	// UnsupportedNumericForm.
	ArbitraryDecimals bool

	// DepthLimit caps collection/discard nesting depth (spec.md §5
	// recommends 256). Zero means DefaultDepthLimit.
	DepthLimit int

	BigIntBackend  BigIntBackend
	DecimalBackend DecimalBackend
}

// DefaultDepthLimit is the recommended nesting cap from spec.md §5.
const DefaultDepthLimit = 256

// DefaultConfig enables every optional feature, matching a full Clojure EDN
// reader.
func DefaultConfig() Config {
	return Config{
		Floats:            true,
		ArbitraryInts:     true,
		ArbitraryDecimals: true,
		DepthLimit:        DefaultDepthLimit,
		BigIntBackend:     DefaultBigIntBackend,
		DecimalBackend:    DefaultDecimalBackend,
	}
}

func (c Config) depthLimit() int {
	if c.DepthLimit <= 0 {
		return DefaultDepthLimit
	}
	return c.DepthLimit
}

func (c Config) bigIntBackend() BigIntBackend {
	if c.BigIntBackend != nil {
		return c.BigIntBackend
	}
	return DefaultBigIntBackend
}

func (c Config) decimalBackend() DecimalBackend {
	if c.DecimalBackend != nil {
		return c.DecimalBackend
	}
	return DefaultDecimalBackend
}
