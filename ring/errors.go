package ring

import "errors"

// ErrOverflow is returned by Write when data is larger than the buffer's
// total capacity; nothing is written in that case.
var ErrOverflow = errors.New("ring: write exceeds buffer capacity")

// ErrUnderflow is returned by Read when the buffer is empty on entry.
var ErrUnderflow = errors.New("ring: read from empty buffer")
