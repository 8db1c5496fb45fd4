package runner

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/command"
	"github.com/cory-johannsen/foundmagic/internal/game/engine"
)

type typedLine struct {
	text   string
	typing time.Duration
}

// Loop is the interactive play Service. Each command that queues hero input
// runs one full turn: the hero acts, then monsters act until the hero is
// ready again. The loop owns the session; other goroutines reach it only
// through Submit.
type Loop struct {
	session    *engine.Session
	dispatcher *command.Dispatcher
	logger     *zap.Logger
	onHelp     func(string)
	onTurn     func(*engine.Session)

	input    chan typedLine
	stop     chan struct{}
	stopOnce sync.Once

	mu     sync.Mutex
	result Result
}

// NewLoop creates a play loop over s.
//
// Precondition: s, d and logger must be non-nil.
func NewLoop(s *engine.Session, d *command.Dispatcher, logger *zap.Logger) *Loop {
	if s == nil || d == nil || logger == nil {
		panic("runner.NewLoop: session, dispatcher and logger must not be nil")
	}
	l := &Loop{
		session:    s,
		dispatcher: d,
		logger:     logger.Named("loop"),
		onTurn:     func(*engine.Session) {},
		input:      make(chan typedLine),
		stop:       make(chan struct{}),
		result:     Result{DeepestDepth: s.Depth()},
	}
	l.onHelp = func(text string) { l.logger.Info("commands\n" + text) }
	return l
}

// OnHelp replaces what the loop does with the help text.
func (l *Loop) OnHelp(fn func(string)) { l.onHelp = fn }

// OnTurn registers fn to run on the loop goroutine after every turn.
func (l *Loop) OnTurn(fn func(*engine.Session)) { l.onTurn = fn }

// Submit hands a typed line to the loop. It blocks until the loop takes the
// line and reports false when the loop has stopped.
func (l *Loop) Submit(text string, typing time.Duration) bool {
	select {
	case l.input <- typedLine{text: text, typing: typing}:
		return true
	case <-l.stop:
		return false
	}
}

// Start runs the loop until the session ends, the player quits or Stop is
// called. Once it returns, Submit reports false.
func (l *Loop) Start() error {
	defer l.Stop()
	for {
		select {
		case <-l.stop:
			return nil
		case line := <-l.input:
			if done := l.handle(line); done {
				return nil
			}
		}
	}
}

// handle dispatches one line and reports whether the loop should end.
func (l *Loop) handle(line typedLine) bool {
	outcome, err := l.dispatcher.Dispatch(l.session.Hero(), line.text, line.typing)
	if err != nil {
		l.logger.Warn("bad command", zap.String("command", line.text), zap.Error(err))
		return false
	}
	switch outcome {
	case command.Help:
		l.onHelp(l.dispatcher.Registry().HelpText())
		return false
	case command.Quit:
		l.record(func(r *Result) { r.Ending = Quit })
		return true
	case command.Ignored:
		return false
	}

	spent := l.session.Turn()
	l.record(func(r *Result) {
		r.Actions++
		r.TimeSpent += spent
		r.DeepestDepth = max(r.DeepestDepth, l.session.Depth())
	})
	l.onTurn(l.session)
	if l.session.IsOver() {
		l.record(func(r *Result) { r.Ending = endingOf(l.session) })
		l.logger.Info("session over", zap.Stringer("ending", l.Result().Ending))
		return true
	}
	return false
}

// Stop ends Start. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Result returns the run summary so far.
func (l *Loop) Result() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result
}

func (l *Loop) record(fn func(*Result)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.result)
}
