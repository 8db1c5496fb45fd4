// Package config provides Viper-based configuration loading for the simulation core.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds dungeon layout and population settings.
type GameConfig struct {
	// Seed drives every random choice in a session.
	Seed int64 `mapstructure:"seed"`
	// Width and Height are the floor dimensions in tiles.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// MaxRooms is the number of room placement attempts per floor.
	MaxRooms int `mapstructure:"max_rooms"`
	// RoomMinSize and RoomMaxSize bound room edge lengths.
	RoomMinSize int `mapstructure:"room_min_size"`
	RoomMaxSize int `mapstructure:"room_max_size"`
	// MonsterDensity is the number of walkable tiles per spawned monster.
	MonsterDensity int `mapstructure:"monster_density"`
	// FinalDepth is the zero-based depth of the final boss floor.
	FinalDepth int `mapstructure:"final_depth"`
	// TreeChance is the chance a room floor cell grows a tree.
	TreeChance float64 `mapstructure:"tree_chance"`
	// WaterChance is the chance a wall next to open ground is water.
	WaterChance float64 `mapstructure:"water_chance"`
}

// HeroConfig holds the starting statistics of the hero.
type HeroConfig struct {
	Vision       int `mapstructure:"vision"`
	Strength     int `mapstructure:"strength"`
	MaxHitpoints int `mapstructure:"max_hitpoints"`
	MaxMana      int `mapstructure:"max_mana"`
}

// MagicConfig holds the attunement curve and critical hit tuning.
type MagicConfig struct {
	// MinEssencesToCast is the essence count below which attunement is zero.
	MinEssencesToCast int `mapstructure:"min_essences_to_cast"`
	// StandardEssences is the essence count that yields attunement 1.
	StandardEssences int `mapstructure:"standard_essences"`
	// CritMultiplier scales damage and spell power on a critical hit.
	CritMultiplier float64 `mapstructure:"crit_multiplier"`
}

// EndgameConfig holds the post-boss countdown settings.
type EndgameConfig struct {
	// Timer is the number of time units the hero has to escape.
	Timer float64 `mapstructure:"timer"`
	// DamageRate is the HP lost per overdue time unit.
	DamageRate float64 `mapstructure:"damage_rate"`
	// MonsterCritChance is the crit chance for monsters once the endgame starts.
	MonsterCritChance float64 `mapstructure:"monster_crit_chance"`
}

// NarrationConfig holds player-visible log settings.
type NarrationConfig struct {
	// Lifetime is how long a narrated entry stays listed.
	Lifetime time.Duration `mapstructure:"lifetime"`
}

// PlayConfig holds how typed commands are timed. Typing time sets the
// efficiency of a cast.
type PlayConfig struct {
	// ScriptTyping is the typing time charged to each scripted command.
	ScriptTyping time.Duration `mapstructure:"script_typing"`
	// MaxTyping caps the typing time charged to one interactive command.
	MaxTyping time.Duration `mapstructure:"max_typing"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Game      GameConfig      `mapstructure:"game"`
	Hero      HeroConfig      `mapstructure:"hero"`
	Magic     MagicConfig     `mapstructure:"magic"`
	Endgame   EndgameConfig   `mapstructure:"endgame"`
	Narration NarrationConfig `mapstructure:"narration"`
	Play      PlayConfig      `mapstructure:"play"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateHero(c.Hero); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateMagic(c.Magic); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEndgame(c.Endgame); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Narration.Lifetime <= 0 {
		errs = append(errs, "narration.lifetime must be positive")
	}
	if err := validatePlay(c.Play); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.Width < 10 || g.Height < 10 {
		errs = append(errs, fmt.Sprintf("game.width and game.height must be >= 10, got %dx%d", g.Width, g.Height))
	}
	if g.MaxRooms < 1 {
		errs = append(errs, fmt.Sprintf("game.max_rooms must be >= 1, got %d", g.MaxRooms))
	}
	if g.RoomMinSize < 3 {
		errs = append(errs, fmt.Sprintf("game.room_min_size must be >= 3, got %d", g.RoomMinSize))
	}
	if g.RoomMaxSize < g.RoomMinSize {
		errs = append(errs, "game.room_max_size must not be less than game.room_min_size")
	}
	if g.RoomMaxSize+2 > g.Width || g.RoomMaxSize+2 > g.Height {
		errs = append(errs, "game.room_max_size must fit inside the floor")
	}
	if g.MonsterDensity < 1 {
		errs = append(errs, fmt.Sprintf("game.monster_density must be >= 1, got %d", g.MonsterDensity))
	}
	if g.FinalDepth < 0 {
		errs = append(errs, fmt.Sprintf("game.final_depth must be >= 0, got %d", g.FinalDepth))
	}
	if g.TreeChance < 0 || g.TreeChance > 1 {
		errs = append(errs, fmt.Sprintf("game.tree_chance must be in [0, 1], got %g", g.TreeChance))
	}
	if g.WaterChance < 0 || g.WaterChance > 1 {
		errs = append(errs, fmt.Sprintf("game.water_chance must be in [0, 1], got %g", g.WaterChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateHero(h HeroConfig) error {
	var errs []string
	if h.Vision < 1 {
		errs = append(errs, fmt.Sprintf("hero.vision must be >= 1, got %d", h.Vision))
	}
	if h.Strength < 0 {
		errs = append(errs, fmt.Sprintf("hero.strength must be >= 0, got %d", h.Strength))
	}
	if h.MaxHitpoints < 1 {
		errs = append(errs, fmt.Sprintf("hero.max_hitpoints must be >= 1, got %d", h.MaxHitpoints))
	}
	if h.MaxMana < 0 {
		errs = append(errs, fmt.Sprintf("hero.max_mana must be >= 0, got %d", h.MaxMana))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateMagic(m MagicConfig) error {
	var errs []string
	if m.MinEssencesToCast < 1 {
		errs = append(errs, fmt.Sprintf("magic.min_essences_to_cast must be >= 1, got %d", m.MinEssencesToCast))
	}
	if m.StandardEssences < m.MinEssencesToCast {
		errs = append(errs, "magic.standard_essences must not be less than magic.min_essences_to_cast")
	}
	if m.CritMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("magic.crit_multiplier must be >= 1, got %g", m.CritMultiplier))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEndgame(e EndgameConfig) error {
	var errs []string
	if e.Timer < 0 {
		errs = append(errs, "endgame.timer must not be negative")
	}
	if e.DamageRate < 0 {
		errs = append(errs, "endgame.damage_rate must not be negative")
	}
	if e.MonsterCritChance < 0 || e.MonsterCritChance > 1 {
		errs = append(errs, fmt.Sprintf("endgame.monster_crit_chance must be in [0, 1], got %g", e.MonsterCritChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePlay(p PlayConfig) error {
	var errs []string
	if p.MaxTyping <= 0 {
		errs = append(errs, "play.max_typing must be positive")
	}
	if p.ScriptTyping < 0 {
		errs = append(errs, "play.script_typing must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with FOUNDMAGIC_ prefix
	v.SetEnvPrefix("FOUNDMAGIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading any file.
//
// Postcondition: Returns a Config for which Validate returns nil.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: built-in defaults are invalid: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.seed", 42)
	v.SetDefault("game.width", 80)
	v.SetDefault("game.height", 45)
	v.SetDefault("game.max_rooms", 32)
	v.SetDefault("game.room_min_size", 4)
	v.SetDefault("game.room_max_size", 12)
	v.SetDefault("game.monster_density", 10)
	v.SetDefault("game.final_depth", 9)
	v.SetDefault("game.tree_chance", 0.05)
	v.SetDefault("game.water_chance", 0.1)

	v.SetDefault("hero.vision", 3)
	v.SetDefault("hero.strength", 1)
	v.SetDefault("hero.max_hitpoints", 10)
	v.SetDefault("hero.max_mana", 10)

	v.SetDefault("magic.min_essences_to_cast", 10)
	v.SetDefault("magic.standard_essences", 40)
	v.SetDefault("magic.crit_multiplier", 3.0)

	v.SetDefault("endgame.timer", 100.0)
	v.SetDefault("endgame.damage_rate", 0.1)
	v.SetDefault("endgame.monster_crit_chance", 0.1)

	v.SetDefault("narration.lifetime", "5s")

	v.SetDefault("play.script_typing", "0s")
	v.SetDefault("play.max_typing", "10s")
}
