package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/engine"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// asciiGenerator yields a fixed layout: '.' floor, 'T' tree, '~' water,
// anything else wall.
type asciiGenerator []string

func (g asciiGenerator) Generate(dice.Source) (*grid.Layout, error) {
	l := grid.NewLayout(len(g[0]), len(g))
	for y, row := range g {
		for x, ch := range row {
			p := grid.Point{X: x, Y: y}
			switch ch {
			case '.':
				l.SetCell(p, true, true)
			case 'T':
				l.SetCell(p, false, true)
			case '~':
				l.SetCell(p, true, false)
			}
		}
	}
	return l, nil
}

var openRoom = asciiGenerator{
	"##########",
	"#........#",
	"#........#",
	"#........#",
	"#........#",
	"##########",
}

func testOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Seed = 7
	opts.FinalDepth = 3
	return opts
}

func testGrimoire() *magic.Grimoire {
	return magic.NewGrimoire(dice.NewSeededSource(1), magic.DefaultTuning())
}

func emptyCatalog(t *testing.T) *creature.Catalog {
	cat, err := creature.NewCatalog()
	require.NoError(t, err)
	return cat
}

func goblinType(kinds ...magic.Kind) *creature.MonsterType {
	return &creature.MonsterType{
		ID:           "goblin",
		Name:         "goblin",
		Glyph:        "g",
		Elements:     kinds,
		Vision:       4,
		Speed:        1,
		Strength:     1,
		MaxHitpoints: 3,
		MaxMana:      3,
		Difficulty:   2,
	}
}

type sessionSetup struct {
	opts      engine.Options
	catalog   *creature.Catalog
	generator engine.Generator
	heroKinds []magic.Kind
}

// newSession builds a session whose hero holds standard elements of the given
// kinds (Fire and Earth by default, so it never crits). On the default open
// room the hero starts in the bottom-right corner.
func newSession(t *testing.T, setup sessionSetup) *engine.Session {
	t.Helper()
	if setup.opts == (engine.Options{}) {
		setup.opts = testOptions()
	}
	if setup.catalog == nil {
		setup.catalog = emptyCatalog(t)
	}
	parkHero := setup.generator == nil
	if parkHero {
		setup.generator = openRoom
	}
	if setup.heroKinds == nil {
		setup.heroKinds = []magic.Kind{magic.Fire, magic.Earth}
	}
	g := testGrimoire()
	elements := make([]*magic.Element, 0, len(setup.heroKinds))
	for _, k := range setup.heroKinds {
		elements = append(elements, g.Standard(k))
	}
	hero := creature.NewHeroWithElements(creature.DefaultHeroStats(), elements...)

	s, err := engine.NewSession(setup.opts, setup.catalog, setup.generator, zaptest.NewLogger(t),
		engine.WithGrimoire(g), engine.WithHero(hero))
	require.NoError(t, err)
	if parkHero {
		// out of the way of the cells tests spawn monsters on
		put(t, s, hero, pt(8, 4))
	}
	return s
}

// put moves c to p on the current floor, spawning it if it is not there yet.
func put(t *testing.T, s *engine.Session, c creature.Creature, p grid.Point) {
	t.Helper()
	f := s.Floor()
	if f.Contains(c) {
		require.NoError(t, f.Remove(c))
	}
	require.NoError(t, f.Place(c, p))
}

func spawn(t *testing.T, s *engine.Session, typ *creature.MonsterType, p grid.Point) *creature.Monster {
	t.Helper()
	m := creature.NewMonster(typ, s.Grimoire())
	put(t, s, m, p)
	return m
}

func element(t *testing.T, c creature.Creature, k magic.Kind) *magic.Element {
	t.Helper()
	e, ok := creature.ElementOf(c, k)
	require.True(t, ok, "%s lacks %s", c.Name(), k)
	return e
}

func pt(x, y int) grid.Point { return grid.Point{X: x, Y: y} }
