package sink

import (
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/cinderlog/cinder/core"
)

// Console writes synchronously to stderr (default) or stdout. Flush is a
// no-op since every write already reaches the OS file descriptor.
type Console struct {
	mu           sync.Mutex
	out          io.Writer
	enableColors bool
}

// NewConsole returns a Console sink writing to out. A nil out defaults to
// os.Stderr, matching the teacher's "errors go to stderr by default" rule.
func NewConsole(out io.Writer, enableColors bool) *Console {
	if out == nil {
		out = os.Stderr
	}
	return &Console{out: out, enableColors: enableColors}
}

// Write renders "[<epoch>] <color?>[<LEVEL>]<reset?> [<file>:<line>]? <message>\n".
func (c *Console) Write(level core.Level, message []byte, entry *core.LogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, 0, len(message)+64)
	buf = append(buf, '[')
	if entry != nil {
		buf = strconv.AppendInt(buf, entry.Timestamp.Unix(), 10)
	}
	buf = append(buf, ']', ' ')

	if c.enableColors {
		buf = append(buf, level.Color()...)
	}
	buf = append(buf, '[')
	buf = append(buf, level.Bytes()...)
	buf = append(buf, ']')
	if c.enableColors {
		buf = append(buf, core.ResetColorBytes...)
	}

	if entry != nil && entry.Caller != nil {
		buf = append(buf, " ["...)
		buf = append(buf, entry.Caller.File...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(entry.Caller.Line), 10)
		buf = append(buf, ']')
	}

	buf = append(buf, ' ')
	buf = append(buf, message...)
	buf = append(buf, '\n')

	_, err := c.out.Write(buf)
	return err
}

// Flush is a no-op: console writes are already synchronous.
func (c *Console) Flush() error { return nil }

// Close is a no-op for stdio-backed sinks.
func (c *Console) Close() error { return nil }
