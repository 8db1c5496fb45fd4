package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/game/ai"
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
	"github.com/cory-johannsen/foundmagic/internal/game/narration"
)

// Session is the simulation context of one game: the floors, the hero, the
// seeded randomness, the narration log and the endgame state. Every scheduler,
// AI and combat operation runs against a Session; nothing is global.
//
// A Session is not safe for concurrent use.
type Session struct {
	opts      Options
	logger    *zap.Logger
	roller    *dice.Roller
	grimoire  *magic.Grimoire
	catalog   *creature.Catalog
	generator Generator
	planner   *ai.Planner
	log       *narration.Log
	clock     narration.Clock

	hero   *creature.Hero
	floors []*Floor
	depth  int

	// cells affected by each spell resolved since ProcessTime last started
	spellPaths [][]grid.Point

	endgame          bool
	endgameTimer     float64
	endgameRemainder float64

	victoryTime time.Time
	lossTime    time.Time
}

// SessionOption customizes NewSession.
type SessionOption func(*Session)

// WithClock sets the wall clock used for narration timestamps and the
// victory and loss times.
func WithClock(clock narration.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithHero replaces the randomly equipped hero.
func WithHero(h *creature.Hero) SessionOption {
	return func(s *Session) { s.hero = h }
}

// WithGrimoire replaces the session's magic words. Heroes and monsters draw
// their elements from it.
func WithGrimoire(g *magic.Grimoire) SessionOption {
	return func(s *Session) { s.grimoire = g }
}

// NewSession builds a session and descends to the first floor.
//
// Precondition: catalog, generator and logger must be non-nil.
// Postcondition: On success the hero stands on the up staircase of floor 0.
func NewSession(opts Options, catalog *creature.Catalog, generator Generator, logger *zap.Logger, options ...SessionOption) (*Session, error) {
	if catalog == nil || generator == nil || logger == nil {
		panic("engine.NewSession: catalog, generator and logger must not be nil")
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}

	roller := dice.NewLoggedRoller(dice.NewSeededSource(opts.Seed), logger.Named("dice"))
	s := &Session{
		opts:      opts,
		logger:    logger,
		roller:    roller,
		catalog:   catalog.Fresh(),
		generator: generator,
		planner:   ai.NewPlanner(roller),
		clock:     time.Now,
		depth:     -1,
	}
	for _, o := range options {
		o(s)
	}
	if s.grimoire == nil {
		s.grimoire = magic.NewGrimoire(roller, opts.Tuning)
	}
	if s.hero == nil {
		s.hero = creature.NewHero(opts.Hero, s.grimoire, roller)
	}
	s.log = narration.NewLog(opts.NarrationLifetime, s.clock, logger)

	if err := s.ClimbDown(); err != nil {
		return nil, fmt.Errorf("entering the dungeon: %w", err)
	}
	s.logger.Info("session started",
		zap.Int64("seed", opts.Seed),
		zap.Stringers("hero_elements", s.hero.Elements()),
	)
	return s, nil
}

// Hero returns the hero.
func (s *Session) Hero() *creature.Hero { return s.hero }

// Floor returns the floor the hero is on, or nil after victory.
func (s *Session) Floor() *Floor {
	if s.depth < 0 || s.depth >= len(s.floors) {
		return nil
	}
	return s.floors[s.depth]
}

// Floors returns every floor generated so far, shallowest first.
func (s *Session) Floors() []*Floor {
	out := make([]*Floor, len(s.floors))
	copy(out, s.floors)
	return out
}

// Depth returns the zero-based current depth; -1 once the hero has escaped.
func (s *Session) Depth() int { return s.depth }

// Log returns the narration log.
func (s *Session) Log() *narration.Log { return s.log }

// Grimoire returns the session's magic words.
func (s *Session) Grimoire() *magic.Grimoire { return s.grimoire }

// Catalog returns the session's monster catalog with its spawn counts.
func (s *Session) Catalog() *creature.Catalog { return s.catalog }

// IsEndgame reports whether the final boss is dead and the dungeon collapsing.
func (s *Session) IsEndgame() bool { return s.endgame }

// EndgameTimer returns the time left before the collapse starts hurting the hero.
func (s *Session) EndgameTimer() float64 { return s.endgameTimer }

// VictoryTime returns when the hero escaped; zero if not yet.
func (s *Session) VictoryTime() time.Time { return s.victoryTime }

// LossTime returns when the hero died; zero if not yet.
func (s *Session) LossTime() time.Time { return s.lossTime }

// SpellPaths returns the cells each spell affected, in casting order, since
// the last call to ProcessTime began. Fizzled casts leave no path.
func (s *Session) SpellPaths() [][]grid.Point { return s.spellPaths }

// IsOver reports whether the game has been won or lost.
func (s *Session) IsOver() bool {
	return !s.victoryTime.IsZero() || !s.lossTime.IsZero()
}
