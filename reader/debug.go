package reader

import (
	"fmt"
	"os"
)

// _, traceEnabled mirrors the teacher's SQLCODE_DEBUG-gated DPrint: a
// zero-cost-when-disabled trace hook, checked once at package init.
var _, traceEnabled = os.LookupEnv("EDN_READER_DEBUG")

func trace(format string, args ...any) {
	if !traceEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, "edn/reader: "+format+"\n", args...)
}
