// Package engine is the simulation core: a Session owns the dungeon floors and
// the hero, schedules every creature on a continuous timeline, and resolves
// movement, melee, spellcasting, deaths and floor transitions.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/cory-johannsen/foundmagic/internal/config"
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
	"github.com/cory-johannsen/foundmagic/internal/game/mapgen"
)

// Options tunes a Session.
type Options struct {
	Seed int64

	// MonsterDensity is the number of free walkable tiles per spawned monster.
	MonsterDensity int
	// FinalDepth is the zero-based depth of the final boss floor.
	FinalDepth int

	Hero   creature.HeroStats
	Tuning magic.Tuning
	// CritMultiplier scales melee damage and spell power on a critical hit.
	CritMultiplier float64

	EndgameTimer      float64
	EndgameDamageRate float64
	MonsterCritChance float64

	NarrationLifetime time.Duration
}

// DefaultOptions returns the options of config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps a validated configuration onto session options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Seed:           cfg.Game.Seed,
		MonsterDensity: cfg.Game.MonsterDensity,
		FinalDepth:     cfg.Game.FinalDepth,
		Hero: creature.HeroStats{
			Vision:       cfg.Hero.Vision,
			Strength:     cfg.Hero.Strength,
			MaxHitpoints: cfg.Hero.MaxHitpoints,
			MaxMana:      cfg.Hero.MaxMana,
		},
		Tuning: magic.Tuning{
			MinEssencesToCast: cfg.Magic.MinEssencesToCast,
			StandardEssences:  cfg.Magic.StandardEssences,
		},
		CritMultiplier:    cfg.Magic.CritMultiplier,
		EndgameTimer:      cfg.Endgame.Timer,
		EndgameDamageRate: cfg.Endgame.DamageRate,
		MonsterCritChance: cfg.Endgame.MonsterCritChance,
		NarrationLifetime: cfg.Narration.Lifetime,
	}
}

func (o Options) validate() error {
	var errs []error
	if o.MonsterDensity < 1 {
		errs = append(errs, fmt.Errorf("monster density must be >= 1, got %d", o.MonsterDensity))
	}
	if o.FinalDepth < 0 {
		errs = append(errs, fmt.Errorf("final depth must be >= 0, got %d", o.FinalDepth))
	}
	if o.Tuning.MinEssencesToCast < 1 || o.Tuning.StandardEssences < o.Tuning.MinEssencesToCast {
		errs = append(errs, fmt.Errorf("invalid magic tuning %+v", o.Tuning))
	}
	if o.CritMultiplier < 1 {
		errs = append(errs, fmt.Errorf("crit multiplier must be >= 1, got %g", o.CritMultiplier))
	}
	if o.NarrationLifetime <= 0 {
		errs = append(errs, errors.New("narration lifetime must be positive"))
	}
	return errors.Join(errs...)
}

// ErrNoRooms is returned by a Generator that could not carve a single room.
var ErrNoRooms = errors.New("generated layout has no rooms")

// Generator produces the cell layout of a new floor.
type Generator interface {
	Generate(src dice.Source) (*grid.Layout, error)
}

// RoomsGenerator carves rooms joined by corridors with mapgen.Builder.
type RoomsGenerator struct {
	Width, Height            int
	MaxRooms                 int
	RoomMinSize, RoomMaxSize int
	TreeChance, WaterChance  float64
}

// RoomsGeneratorFromConfig builds the generator described by cfg.
func RoomsGeneratorFromConfig(cfg config.GameConfig) RoomsGenerator {
	return RoomsGenerator{
		Width:       cfg.Width,
		Height:      cfg.Height,
		MaxRooms:    cfg.MaxRooms,
		RoomMinSize: cfg.RoomMinSize,
		RoomMaxSize: cfg.RoomMaxSize,
		TreeChance:  cfg.TreeChance,
		WaterChance: cfg.WaterChance,
	}
}

// Generate implements Generator.
func (g RoomsGenerator) Generate(src dice.Source) (*grid.Layout, error) {
	layout, rooms := mapgen.NewBuilder(src).
		WithSize(g.Width, g.Height).
		WithRoomSizes(g.RoomMinSize, g.RoomMaxSize).
		WithRooms(g.MaxRooms).
		WithFlavor(g.TreeChance, g.WaterChance).
		Build()
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	return layout, nil
}
