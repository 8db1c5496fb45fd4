package narration

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/grid"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// Message colors.
var (
	White   = colorful.Color{R: 1, G: 1, B: 1}
	Yellow  = colorful.Color{R: 1, G: 1, B: 0}
	Red     = colorful.Color{R: 1, G: 0, B: 0}
	Cyan    = colorful.Color{R: 0, G: 1, B: 1}
	Magenta = colorful.Color{R: 1, G: 0, B: 1}
	Green   = colorful.Color{R: 0, G: 1, B: 0}
)

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Conjugate picks the second-person form for the hero and the third-person
// form for monsters.
func Conjugate(c creature.Creature, hero, other string) string {
	if _, ok := c.(*creature.Hero); ok {
		return hero
	}
	return other
}

func subject(c creature.Creature) string { return Capitalize(c.Name()) }

func isAre(c creature.Creature) string { return Conjugate(c, "are", "is") }

// Attack narrates a melee hit.
func (l *Log) Attack(attacker, target creature.Creature, dmg int, crit bool) {
	msg := fmt.Sprintf("%s %s %s. (%d dmg, %d HP left)",
		subject(attacker), Conjugate(attacker, "attack", "attacks"), target.Name(), dmg, target.Hitpoints())
	if crit {
		msg = "Critical hit! " + msg
	}
	if _, ok := attacker.(*creature.Hero); ok {
		l.Add(msg, White)
		return
	}
	l.Add(msg, Yellow)
}

// ManaRestored narrates melee mana sustain through element e.
func (l *Log) ManaRestored(c creature.Creature, e *magic.Element, amount int) {
	if amount <= 0 || e == nil {
		return
	}
	l.Add(fmt.Sprintf("%s %s %d MP through %s. (%d MP)",
		subject(c), Conjugate(c, "restore", "restores"), amount, e, c.Mana()), e.Kind().Color())
}

// Death narrates a creature dying.
func (l *Log) Death(c creature.Creature) {
	if _, ok := c.(*creature.Hero); ok {
		l.Add(fmt.Sprintf("%s die...", subject(c)), Red)
		return
	}
	l.Add(fmt.Sprintf("%s dies.", subject(c)), Cyan)
}

// Fizzle narrates a failed cast.
func (l *Log) Fizzle(caster creature.Creature) {
	l.Add(fmt.Sprintf("%s %s to cast a spell, but it fizzles.",
		subject(caster), Conjugate(caster, "try", "tries")), White)
}

// Critical narrates a critical spell.
func (l *Log) Critical(caster creature.Creature) {
	l.Add(fmt.Sprintf("%s %s a critical spell!", subject(caster), Conjugate(caster, "channel", "channels")), Magenta)
}

// Cast narrates a successful cast with its qualitative descriptor.
func (l *Log) Cast(caster creature.Creature, e *magic.Element, power, efficiency float64, cost int) {
	l.Add(fmt.Sprintf("%s %s a %s spell: %s (%d MP).",
		subject(caster), Conjugate(caster, "cast", "casts"), magic.Descriptor(power, efficiency), e, cost), e.Kind().Color())
}

// Burn narrates Fire damage.
func (l *Log) Burn(target creature.Creature, e *magic.Element, dmg int) {
	l.Add(fmt.Sprintf("%s %s burned! (%d dmg, %d HP left)", subject(target), isAre(target), dmg, target.Hitpoints()), e.Kind().Color())
}

// ManaDrain narrates Water draining mana.
func (l *Log) ManaDrain(caster, target creature.Creature, e *magic.Element, amount int) {
	l.Add(fmt.Sprintf("%s %s %d MP from %s. (%d MP left)",
		subject(caster), Conjugate(caster, "drain", "drains"), amount, target.Name(), target.Mana()), e.Kind().Color())
}

// HPDrain narrates Darkness draining hitpoints.
func (l *Log) HPDrain(caster, target creature.Creature, e *magic.Element, amount int) {
	l.Add(fmt.Sprintf("%s %s %d HP from %s. (%d HP left)",
		subject(caster), Conjugate(caster, "drain", "drains"), amount, target.Name(), target.Hitpoints()), e.Kind().Color())
}

// Knockback narrates Air pushing a target.
func (l *Log) Knockback(target creature.Creature, e *magic.Element, dir grid.Direction, distance int) {
	if distance == 0 {
		l.Add(fmt.Sprintf("%s %s buffeted but %s not budge.", subject(target), isAre(target), Conjugate(target, "do", "does")), e.Kind().Color())
		return
	}
	l.Add(fmt.Sprintf("%s %s knocked %s %d space(s).", subject(target), isAre(target), dir, distance), e.Kind().Color())
}

// StatusEffect narrates a status effect taking hold.
func (l *Log) StatusEffect(target creature.Creature, e *magic.Element, fx creature.StatusEffect, duration float64) {
	l.Add(fmt.Sprintf("%s %s %s for %d turn(s).", subject(target), isAre(target), fx, int(math.Round(duration))), e.Kind().Color())
}

// Healing narrates Light healing.
func (l *Log) Healing(target creature.Creature, e *magic.Element, amount int) {
	l.Add(fmt.Sprintf("%s %s healed. (+%d HP, %d HP)", subject(target), isAre(target), amount, target.Hitpoints()), e.Kind().Color())
}

// Stun narrates Light stunning an enemy.
func (l *Log) Stun(target creature.Creature, e *magic.Element, delay float64) {
	l.Add(fmt.Sprintf("%s %s stunned for %.1f turn(s).", subject(target), isAre(target), delay), e.Kind().Color())
}

// EssenceDrain narrates essences moving from a victim to its killer.
func (l *Log) EssenceDrain(killer, victim creature.Creature, tr creature.EssenceTransfer) {
	l.Add(fmt.Sprintf("%s %s %d %s essence(s) from %s.",
		subject(killer), Conjugate(killer, "absorb", "absorbs"), tr.Amount, strings.ToLower(tr.Kind.String()), victim.Name()), tr.Kind.Color())
}

// Welcome narrates arriving on a floor; depth is zero-based.
func (l *Log) Welcome(depth int, firstArrival bool) {
	if depth == 0 && firstArrival {
		l.Add("Welcome to the dungeon! Find your magic and defeat the evil below.", Magenta)
	}
	l.Add(fmt.Sprintf("You arrive on floor %d.", depth+1), White)
}

// Regeneration narrates the Light stair-climb bonus.
func (l *Log) Regeneration(hp, mp int) {
	if hp <= 0 && mp <= 0 {
		return
	}
	l.Add(fmt.Sprintf("The light within you restores %d HP and %d MP.", hp, mp), magic.Light.Color())
}

// EndgameStarted narrates the final boss's death starting the countdown.
func (l *Log) EndgameStarted(boss creature.Creature, timer float64) {
	l.Add(fmt.Sprintf("DANGER! The defeat of %s triggered the collapse of the dungeon!", boss.Name()), Red)
	l.Add(fmt.Sprintf("You must escape in %d turns, or bad things will happen!", int(math.Round(timer))), Red)
}

// Collapse narrates endgame damage from the collapsing dungeon.
func (l *Log) Collapse(hero creature.Creature, dmg int) {
	l.Add(fmt.Sprintf("Falling rubble hits you! (%d dmg, %d HP left)", dmg, hero.Hitpoints()), Red)
}

// Victory narrates escaping the dungeon.
func (l *Log) Victory() {
	l.Add("You escape the dungeon! Victory is yours!", Green)
}
