package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// NewLogger returns a logr.Logger writing key/value lines to w. Messages with
// a V-level above verbosity are dropped.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	if w == nil {
		return logr.Discard()
	}

	var mu sync.Mutex
	return funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		Verbosity: verbosity,
	})
}
