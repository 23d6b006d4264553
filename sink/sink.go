// Package sink implements the output destinations a dispatcher fans a
// formatted record out to: a synchronous console sink and a buffered,
// rotating file sink. Both satisfy the same three-capability Sink
// interface so the dispatcher never special-cases one over the other.
package sink

import "github.com/cinderlog/cinder/core"

// Sink is the dispatcher's view of an output destination. Close must be
// safe to call more than once.
type Sink interface {
	Write(level core.Level, message []byte, entry *core.LogEntry) error
	Flush() error
	Close() error
}
