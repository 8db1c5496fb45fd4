package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/command"
	"github.com/cory-johannsen/foundmagic/internal/game/engine"
)

// Replayer feeds a fixed list of hero commands through the scheduler, one
// full turn per command. With the same seed and script it always produces
// the same run.
type Replayer struct {
	session    *engine.Session
	dispatcher *command.Dispatcher
	logger     *zap.Logger
	typing     time.Duration
}

// NewReplayer creates a Replayer. typing is the typing time charged to every
// scripted cast.
//
// Precondition: s, d and logger must be non-nil; typing >= 0.
func NewReplayer(s *engine.Session, d *command.Dispatcher, logger *zap.Logger, typing time.Duration) *Replayer {
	if s == nil || d == nil || logger == nil {
		panic("runner.NewReplayer: session, dispatcher and logger must not be nil")
	}
	return &Replayer{session: s, dispatcher: d, logger: logger.Named("replay"), typing: max(typing, 0)}
}

// Run replays lines until they run out, the session ends, the script quits or
// ctx is cancelled. Lines that do not parse are logged and skipped.
//
// Postcondition: Returns ctx.Err() only when cancelled mid-script.
func (r *Replayer) Run(ctx context.Context, lines []string) (Result, error) {
	res := Result{DeepestDepth: r.session.Depth()}
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if r.session.IsOver() {
			r.logger.Info("session over, ignoring remaining commands", zap.Int("remaining", len(lines)-i))
			break
		}

		outcome, err := r.dispatcher.Dispatch(r.session.Hero(), line, r.typing)
		if err != nil {
			r.logger.Warn("skipping command", zap.Int("line", i+1), zap.String("command", line), zap.Error(err))
			continue
		}
		switch outcome {
		case command.Help:
			r.logger.Info("commands\n" + r.dispatcher.Registry().HelpText())
			continue
		case command.Quit:
			res.Ending = Quit
			return res, nil
		case command.Ignored:
			continue
		}

		spent := r.session.Turn()
		res.Actions++
		res.TimeSpent += spent
		res.DeepestDepth = max(res.DeepestDepth, r.session.Depth())
		r.logger.Debug("turn",
			zap.String("command", line),
			zap.Float64("spent", spent),
			zap.String("status", Status(r.session)),
		)
	}
	res.Ending = endingOf(r.session)
	return res, nil
}
