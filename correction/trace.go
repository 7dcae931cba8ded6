package correction

import (
	"io"
	"log"
)

var logger = log.New(io.Discard, "correction: ", 0)

// SetTraceOutput routes case selection messages to w. Tracing is informational
// only, nothing assembled depends on it.
func SetTraceOutput(w io.Writer) {
	logger.SetOutput(w)
}
