package core

import (
	"bytes"
	"strings"

	"github.com/cinderlog/cinder/errors"
	"unsafe"
)

// ===============================
// LEVEL DEFINITION
// ===============================
// Level represents the severity of a log entry. Ordering is total:
// trace < debug < info < warn < err < critical.
type Level int

const (
	// TRACE is for very detailed debugging information.
	TRACE Level = iota

	// DEBUG is for debugging information.
	DEBUG

	// INFO is for general information messages.
	INFO

	// WARN is for warning messages.
	WARN

	// ERROR is for error conditions.
	ERROR

	// CRITICAL is for conditions requiring immediate attention.
	CRITICAL
)

var (
	// LevelStrings contains the display name of each level, indexed by Level.
	LevelStrings = []string{
		"TRACE",
		"DEBUG",
		"INFO",
		"WARN",
		"ERROR",
		"CRITICAL",
	}

	// LevelBytes contains the byte slice representations of log levels (zero-allocation for formatting)
	LevelBytes = func() [][]byte {
		b := make([][]byte, len(LevelStrings))
		for i, s := range LevelStrings {
			b[i] = []byte(s)
		}
		return b
	}()

	// LowerLevelStrings contains the lowercase string representations of log levels
	LowerLevelStrings []string = func() []string {
		lowers := make([]string, len(LevelStrings))
		for i, s := range LevelStrings {
			lowers[i] = strings.ToLower(s)
		}
		return lowers
	}()

	// LevelColors holds the SGR escape for each level: trace=90, debug=36,
	// info=32, warn=33, err=31, critical=35.
	LevelColors = []string{
		"\x1b[90m",
		"\x1b[36m",
		"\x1b[32m",
		"\x1b[33m",
		"\x1b[31m",
		"\x1b[35m",
	}

	// LevelColorBytes is LevelColors pre-converted to byte slices so the
	// console sink never allocates on the hot formatting path.
	LevelColorBytes = func() [][]byte {
		b := make([][]byte, len(LevelColors))
		for i, s := range LevelColors {
			b[i] = []byte(s)
		}
		return b
	}()

	// ResetColorBytes is the SGR reset sequence, "\x1b[0m".
	ResetColorBytes = []byte("\x1b[0m")
)

// String returns the display name of the level.
func (l Level) String() string {
	if l >= TRACE && l <= CRITICAL {
		return LevelStrings[l]
	}
	return "UNKNOWN"
}

// Bytes returns the byte slice representation of the level (zero-allocation for formatting)
func (l Level) Bytes() []byte {
	if l >= TRACE && l <= CRITICAL {
		return LevelBytes[l]
	}
	return []byte("UNKNOWN") // Allocate in this rare case
}

// Color returns the SGR escape bytes for this level, or nil if out of range.
func (l Level) Color() []byte {
	if l >= TRACE && l <= CRITICAL {
		return LevelColorBytes[l]
	}
	return nil
}

// s2b converts a string to a byte slice without memory allocation.
// WARNING: The returned byte slice shares memory with the string. It is read-only.
func s2b(s string) (b []byte) {
	bh := (*[3]int)(unsafe.Pointer(&b))
	sh := (*[2]int)(unsafe.Pointer(&s))
	bh[0] = sh[0]
	bh[1] = sh[1]
	bh[2] = sh[1]
	return b
}

// ParseLevel parses a level from a string.
// It accepts both uppercase and lowercase level names (e.g., "info", "INFO", "Info").
// It also handles "WARNING" as a special case for "WARN" and "ERR" for "ERROR".
func ParseLevel(levelStr string) (Level, error) {
	levelBytes := s2b(levelStr)

	for i, b := range LevelBytes {
		if bytes.EqualFold(levelBytes, b) {
			return Level(i), nil
		}
	}
	if bytes.EqualFold(levelBytes, s2b("WARNING")) {
		return WARN, nil
	}
	if bytes.EqualFold(levelBytes, s2b("ERR")) {
		return ERROR, nil
	}

	return INFO, errors.NewInvalidLogLevelError(levelStr)
}
