// Package corelog is the Acceptor's own operational logger - accept-loop
// failures and failed writes of overload-rejection responses. It's
// deliberately separate from the pluggable logging.MessageLogger: those
// hooks are for the embedder's request-level concerns, this one is for the
// core's own internals and always writes to stderr, matching the teacher's
// bare log.Printf calls in indi.go.
package corelog

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "[origin] ", log.LstdFlags)

func Printf(format string, args ...any) {
	std.Printf(format, args...)
}

func Println(args ...any) {
	std.Println(args...)
}
