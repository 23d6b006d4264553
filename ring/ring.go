// Package ring implements a fixed-capacity circular byte buffer used to
// stage formatted records for async dispatch and for file sink batching.
package ring

import "sync"

// Buffer is a single fixed-size backing array with read and write cursors.
// Mutations are serialised by an internal lock; a single-producer/single-
// consumer discipline is sufficient but not required for correctness.
type Buffer struct {
	mu       sync.Mutex
	data     []byte
	readPos  int
	writePos int
	full     bool
}

// New allocates a Buffer with the given fixed capacity.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// Write copies as much of data into the buffer as fits, wrapping at the
// end of the backing array. It returns the number of bytes actually
// written. If data is larger than the buffer's total capacity it fails
// with ErrOverflow before writing anything.
func (b *Buffer) Write(data []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(data) > len(b.data) {
		return 0, ErrOverflow
	}

	written := 0
	for written < len(data) {
		if b.full {
			break
		}
		n := len(b.data) - b.writePos
		if free := b.freeCapacityLocked(); n > free {
			n = free
		}
		if remaining := len(data) - written; n > remaining {
			n = remaining
		}
		copy(b.data[b.writePos:b.writePos+n], data[written:written+n])
		b.writePos = (b.writePos + n) % len(b.data)
		written += n
		if b.writePos == b.readPos {
			b.full = true
		}
	}
	return written, nil
}

// Read copies up to len(dst) available bytes into dst, wrapping at the end
// of the backing array. It fails with ErrUnderflow if the buffer is empty
// on entry; otherwise it returns whatever is available, which may be less
// than len(dst).
func (b *Buffer) Read(dst []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isEmptyLocked() {
		return 0, ErrUnderflow
	}

	read := 0
	for read < len(dst) {
		if b.isEmptyLocked() {
			break
		}
		n := len(b.data) - b.readPos
		if avail := b.lenLocked(); n > avail {
			n = avail
		}
		if remaining := len(dst) - read; n > remaining {
			n = remaining
		}
		copy(dst[read:read+n], b.data[b.readPos:b.readPos+n])
		b.readPos = (b.readPos + n) % len(b.data)
		read += n
		b.full = false
	}
	return read, nil
}

// Len returns the number of unread bytes currently staged.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lenLocked()
}

// FreeCapacity returns the number of bytes that can still be written
// before the buffer is full.
func (b *Buffer) FreeCapacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.freeCapacityLocked()
}

// Cap returns the buffer's fixed total capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer currently holds no unread bytes.
func (b *Buffer) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isEmptyLocked()
}

// Reset discards all staged bytes, returning the buffer to its initial
// empty state without reallocating the backing array.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readPos = 0
	b.writePos = 0
	b.full = false
}

func (b *Buffer) lenLocked() int {
	if b.full {
		return len(b.data)
	}
	if b.writePos >= b.readPos {
		return b.writePos - b.readPos
	}
	return len(b.data) - b.readPos + b.writePos
}

func (b *Buffer) freeCapacityLocked() int {
	return len(b.data) - b.lenLocked()
}

func (b *Buffer) isEmptyLocked() bool {
	return b.readPos == b.writePos && !b.full
}
