// Package main runs a foundmagic session: it replays a command script, or
// plays turn by turn from standard input, printing the narration.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/foundmagic/internal/config"
	"github.com/cory-johannsen/foundmagic/internal/game/command"
	"github.com/cory-johannsen/foundmagic/internal/game/creature"
	"github.com/cory-johannsen/foundmagic/internal/game/engine"
	"github.com/cory-johannsen/foundmagic/internal/observability"
	"github.com/cory-johannsen/foundmagic/internal/runner"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	monstersDir := flag.String("monsters", "content/monsters", "path to monster YAML files directory")
	scriptPath := flag.String("script", "", "replay commands from this file instead of playing from stdin")
	seed := flag.Int64("seed", 0, "override the configured seed when non-zero")
	color := flag.Bool("color", true, "print narration in color")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer base.Sync()
	logger := observability.SessionLogger(base, cfg.Game.Seed)

	catalog, err := creature.LoadCatalog(*monstersDir)
	if err != nil {
		logger.Fatal("loading monsters", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("monster_types", catalog.Len()))

	session, err := engine.NewSession(engine.OptionsFromConfig(cfg), catalog, engine.RoomsGeneratorFromConfig(cfg.Game), logger)
	if err != nil {
		logger.Fatal("starting session", zap.Error(err))
	}
	dispatcher := command.NewDispatcher(command.DefaultRegistry())
	session.Log().Subscribe(runner.NarrationPrinter(os.Stdout, *color))
	logger.Info("session ready",
		zap.String("status", runner.Status(session)),
		zap.Duration("startup", time.Since(start)),
	)

	var res runner.Result
	if *scriptPath != "" {
		res, err = replay(session, dispatcher, cfg.Play, *scriptPath, logger)
	} else {
		res, err = play(session, dispatcher, cfg.Play, logger)
	}
	if err != nil {
		logger.Fatal("running session", zap.Error(err))
	}

	fmt.Println(runner.Status(session))
	logger.Info("session ended",
		zap.Stringer("ending", res.Ending),
		zap.Int("actions", res.Actions),
		zap.Float64("time_spent", res.TimeSpent),
		zap.Int("deepest_floor", res.DeepestDepth+1),
	)
}

func replay(s *engine.Session, d *command.Dispatcher, cfg config.PlayConfig, path string, logger *zap.Logger) (runner.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Result{}, fmt.Errorf("reading script: %w", err)
	}
	lines := command.ParseScript(string(data))
	logger.Info("replaying script", zap.String("path", path), zap.Int("commands", len(lines)))
	return runner.NewReplayer(s, d, logger, cfg.ScriptTyping).Run(context.Background(), lines)
}

func play(s *engine.Session, d *command.Dispatcher, cfg config.PlayConfig, logger *zap.Logger) (runner.Result, error) {
	loop := runner.NewLoop(s, d, logger)
	loop.OnHelp(func(text string) { fmt.Print(text) })
	loop.OnTurn(func(s *engine.Session) { fmt.Println(runner.Status(s)) })

	lifecycle := runner.NewLifecycle(logger)
	lifecycle.Add("loop", loop)
	lifecycle.Add("input", runner.NewLineReader(os.Stdin, loop, cfg.MaxTyping))

	fmt.Print(d.Registry().HelpText())
	if err := lifecycle.Run(context.Background()); err != nil {
		return loop.Result(), err
	}
	return loop.Result(), nil
}
