package runner

import (
	"bufio"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// LineReader is a Service that reads command lines from an input stream and
// submits them to a Loop, charging each line the time since the previous one
// as typing time, capped at maxTyping.
type LineReader struct {
	in        io.Reader
	loop      *Loop
	maxTyping time.Duration
	now       func() time.Time
	stopped   atomic.Bool
}

// NewLineReader creates a LineReader feeding loop from in.
//
// Precondition: in and loop must be non-nil; maxTyping > 0.
func NewLineReader(in io.Reader, loop *Loop, maxTyping time.Duration) *LineReader {
	if in == nil || loop == nil {
		panic("runner.NewLineReader: input and loop must not be nil")
	}
	return &LineReader{in: in, loop: loop, maxTyping: maxTyping, now: time.Now}
}

// Start reads until end of input, a read error, or the loop stopping. A
// blocked read is not interrupted by Stop; the line that unblocks it is
// dropped.
func (r *LineReader) Start() error {
	scanner := bufio.NewScanner(r.in)
	last := r.now()
	for scanner.Scan() {
		if r.stopped.Load() {
			return nil
		}
		now := r.now()
		typing := min(now.Sub(last), r.maxTyping)
		if !r.loop.Submit(scanner.Text(), typing) {
			return nil
		}
		last = r.now()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

// Stop makes Start return after its current read.
func (r *LineReader) Stop() { r.stopped.Store(true) }
