package logger

import (
	"io"
	"sync"
	"time"

	"github.com/cinderlog/cinder/pool"
	"github.com/cinderlog/cinder/ring"
)

// asyncDrainInterval is the periodic should_flush() fallback: a buffer
// under the occupancy threshold is still drained at least this often so a
// quiet period never leaves staged bytes stuck behind the next write.
const asyncDrainInterval = 100 * time.Millisecond

// asyncFlushNumerator/Denominator express the should_flush() occupancy
// trigger (75% of capacity) as an integer fraction, avoiding float drift.
const (
	asyncFlushNumerator   = 3
	asyncFlushDenominator = 4
)

// asyncRingStage is the dispatcher-owned circular buffer that backs async
// mode: writeWithAction appends the already-formatted record here instead
// of writing it to the primary output directly, and a background drain
// loop (plus an inline check after every append) empties it to out once
// should_flush() holds. Only the primary output write is deferred this
// way — sinks, hooks and the pattern analyzer still run synchronously at
// append time, since they operate on the in-memory entry rather than on
// slow I/O.
type asyncRingStage struct {
	mu      sync.Mutex
	buf     *ring.Buffer
	pool    *pool.Pool[ring.Buffer]
	out     io.Writer
	onError func(error)

	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

// newAsyncRingStage acquires a capacity-sized ring buffer from a pool and
// starts the 100ms periodic drain goroutine.
func newAsyncRingStage(capacity int, out io.Writer, onError func(error)) *asyncRingStage {
	if capacity <= 0 {
		capacity = DEFAULT_BUFFER_SIZE
	}
	p := pool.New(func() *ring.Buffer { return ring.New(capacity) }, nil)
	buf := p.Acquire()
	buf.Reset()

	s := &asyncRingStage{
		buf:     buf,
		pool:    p,
		out:     out,
		onError: onError,
		ticker:  time.NewTicker(asyncDrainInterval),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.drainLoop()
	return s
}

// stage appends line to the circular buffer, retrying through a flush on a
// short write, then drains immediately if should_flush()'s 75% occupancy
// threshold is now met.
func (s *asyncRingStage) stage(line []byte) {
	s.mu.Lock()
	s.stageLocked(line)
	flush := s.buf.Len()*asyncFlushDenominator >= s.buf.Cap()*asyncFlushNumerator
	s.mu.Unlock()

	if flush {
		s.drain()
	}
}

// stageLocked writes line into buf. ring.Buffer.Write returns a nil error
// and a short count when free space is less than len(line) but the buffer
// could still take it in two pieces; treating that count as success would
// silently drop the unstaged remainder, so a short write drains first and
// recurses on what's left.
func (s *asyncRingStage) stageLocked(line []byte) {
	n, err := s.buf.Write(line)
	if err != nil {
		// Larger than total capacity: drain to make room, then write
		// through directly rather than dropping the record.
		s.drainLocked()
		if _, werr := s.out.Write(line); werr != nil && s.onError != nil {
			s.onError(werr)
		}
		return
	}
	if n < len(line) {
		s.drainLocked()
		s.stageLocked(line[n:])
	}
}

func (s *asyncRingStage) drainLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ticker.C:
			s.drain()
		case <-s.done:
			return
		}
	}
}

// drain writes every currently staged byte through to out.
func (s *asyncRingStage) drain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainLocked()
}

func (s *asyncRingStage) drainLocked() {
	chunk := make([]byte, 4096)
	for !s.buf.IsEmpty() {
		n, err := s.buf.Read(chunk)
		if err != nil {
			break
		}
		if _, werr := s.out.Write(chunk[:n]); werr != nil && s.onError != nil {
			s.onError(werr)
		}
	}
}

// close drains any remaining bytes, stops the periodic timer and releases
// the circular buffer back to its pool.
func (s *asyncRingStage) close() {
	close(s.done)
	s.ticker.Stop()
	s.wg.Wait()
	s.drain()
	s.pool.Release(s.buf)
}
