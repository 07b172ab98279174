package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is the diagnostic verbosity of tasks and pools.
// Lower values are more important: a message at level L is emitted
// when L <= the configured level.
type Level int

const (
	// LevelError only errors are emitted
	LevelError Level = iota
	// LevelWarning errors and warnings are emitted
	LevelWarning
	// LevelInfo everything is emitted
	LevelInfo
)

// String returns the string representation of Level
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Enabled reports whether a message at level msg passes this level
func (l Level) Enabled(msg Level) bool {
	return msg <= l
}

// Valid reports whether l is one of the defined levels
func (l Level) Valid() bool {
	return l >= LevelError && l <= LevelInfo
}

// ParseLevel parses a level name (error, warning, warn, info) or its numeric value
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(LevelError) || n > int(LevelInfo) {
		return LevelError, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, s)
	}
	return Level(n), nil
}
