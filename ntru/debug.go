package ntru

import (
	"fmt"
	"io"
	"os"
)

var debugOn = os.Getenv("NTRU_DEBUG") == "1"

func dbg(w io.Writer, f string, a ...any) {
	if debugOn {
		fmt.Fprintf(w, f, a...)
	}
}

// Debugf writes to stderr when NTRU_DEBUG=1. Sibling packages use it so all
// diagnostics share one switch.
func Debugf(f string, a ...any) {
	dbg(os.Stderr, f, a...)
}
