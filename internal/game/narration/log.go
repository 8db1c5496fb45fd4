// Package narration keeps the player-visible event log: short colored
// messages that expire a fixed time after they are written.
package narration

import (
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

// Entry is one narrated event.
type Entry struct {
	Message   string
	Timestamp time.Time
	Color     colorful.Color
}

// Clock returns the current time.
type Clock func() time.Time

// Log is a time-ordered list of entries that drops entries older than its
// lifetime. It is not safe for concurrent use.
type Log struct {
	entries  []Entry
	lifetime time.Duration
	now      Clock
	logger   *zap.Logger
	watchers []func(Entry)
}

// NewLog creates an empty log whose entries expire after lifetime. Every entry
// is mirrored to logger at debug level.
//
// Precondition: lifetime > 0; now and logger must be non-nil.
func NewLog(lifetime time.Duration, now Clock, logger *zap.Logger) *Log {
	if lifetime <= 0 {
		panic("narration.NewLog: lifetime must be positive")
	}
	if now == nil || logger == nil {
		panic("narration.NewLog: clock and logger must not be nil")
	}
	return &Log{lifetime: lifetime, now: now, logger: logger.Named("narration")}
}

// Add appends a message stamped with the current time and drops entries that
// have expired by then.
func (l *Log) Add(message string, color colorful.Color) {
	e := Entry{Message: message, Timestamp: l.now(), Color: color}
	l.prune(e.Timestamp)
	l.entries = append(l.entries, e)
	l.logger.Debug(message, zap.String("color", color.Hex()))
	for _, w := range l.watchers {
		w(e)
	}
}

// Subscribe registers fn to receive every entry added from now on, in order.
//
// Precondition: fn must be non-nil and must not add entries itself.
func (l *Log) Subscribe(fn func(Entry)) {
	if fn == nil {
		panic("narration.Log.Subscribe: fn must not be nil")
	}
	l.watchers = append(l.watchers, fn)
}

// List drops expired entries and returns the rest, oldest first.
//
// Postcondition: Every returned entry is younger than the lifetime.
func (l *Log) List() []Entry {
	l.prune(l.now())
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Messages returns the text of every live entry, oldest first.
func (l *Log) Messages() []string {
	l.prune(l.now())
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Message
	}
	return out
}

// prune drops entries at least a lifetime older than now. Entries are in
// time order, so the expired ones form a prefix.
func (l *Log) prune(now time.Time) {
	i := 0
	for i < len(l.entries) && now.Sub(l.entries[i].Timestamp) >= l.lifetime {
		i++
	}
	if i > 0 {
		l.entries = append(l.entries[:0], l.entries[i:]...)
	}
}

// Lifetime returns how long entries are listed.
func (l *Log) Lifetime() time.Duration { return l.lifetime }
