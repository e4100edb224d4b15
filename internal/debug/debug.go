// Package debug provides env-gated trace points used to instrument I/O and
// scheduling without imposing a logging dependency on callers.
package debug

import (
	"fmt"
	"os"
)

var enabled = os.Getenv("PARQUET_DEBUG") != ""

// Logf prints a trace line when PARQUET_DEBUG is set in the environment.
// Call sites are expected to be cheap (format args should not themselves
// allocate when tracing is disabled).
func Logf(format string, args ...interface{}) {
	if enabled {
		fmt.Fprintf(os.Stderr, "parquet: "+format+"\n", args...)
	}
}

// Enabled reports whether trace points are active.
func Enabled() bool { return enabled }
