// Package logging is the small key/value logging utility shared by the
// spawner core and the minigame scripts. A Sink accepts a severity, a
// message key and an arbitrary value; the force flag bypasses the level
// threshold for messages that must always come through.
package logging

import (
	"fmt"
	"log"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Sink receives log entries. Implementations must never panic; callers
// treat logging as fire-and-forget and will not recover a failed write.
type Sink interface {
	Log(level Level, key string, value any, force bool)
}

// Logger writes entries through the standard log package, filtered by a
// minimum level unless the entry is forced.
type Logger struct {
	MinLevel Level
	Prefix   string
}

func New(prefix string, minLevel Level) *Logger {
	return &Logger{MinLevel: minLevel, Prefix: prefix}
}

func (l *Logger) Log(level Level, key string, value any, force bool) {
	if level < l.MinLevel && !force {
		return
	}
	if value == nil {
		log.Printf("%s[%s] %s", l.prefix(), level, key)
		return
	}
	log.Printf("%s[%s] %s: %v", l.prefix(), level, key, value)
}

func (l *Logger) prefix() string {
	if l.Prefix == "" {
		return ""
	}
	return l.Prefix + " "
}

// Default is the sink used when a caller passes nil: info and above.
func Default() *Logger {
	return &Logger{MinLevel: LevelInfo}
}

// Nop discards everything. Useful for benchmarks.
type Nop struct{}

func (Nop) Log(Level, string, any, bool) {}

// Entry is one recorded log line.
type Entry struct {
	Level Level
	Key   string
	Value any
	Force bool
}

// Recorder captures entries in memory; tests assert against them.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) Log(level Level, key string, value any, force bool) {
	r.Entries = append(r.Entries, Entry{Level: level, Key: key, Value: value, Force: force})
}

// Count returns how many recorded entries match the level and key.
func (r *Recorder) Count(level Level, key string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Level == level && e.Key == key {
			n++
		}
	}
	return n
}
