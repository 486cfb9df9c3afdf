// Command battlesim runs a ship combat scenario headless and reports the
// outcome. Scenarios come from a JSON file or the built-in default;
// settings come from SHIPFORGE_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-shipforge/pkg/ai"
	"github.com/opd-ai/go-shipforge/pkg/config"
	"github.com/opd-ai/go-shipforge/pkg/engine"
	"github.com/opd-ai/go-shipforge/pkg/event"
	"github.com/opd-ai/go-shipforge/pkg/logging"
	"github.com/opd-ai/go-shipforge/pkg/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "battlesim:", err)
		os.Exit(1)
	}
}

func run() error {
	viper.SetEnvPrefix("shipforge")
	viper.AutomaticEnv()
	viper.SetDefault("scenario", "")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("seed", uint64(0))
	viper.SetDefault("max_ticks", uint64(0))
	viper.SetDefault("render", false)
	viper.SetDefault("render_every", 30)

	logger := logging.NewLoggerAt(logging.ParseLevel(viper.GetString("log_level")))

	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	if seed := viper.GetUint64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	if maxTicks := viper.GetUint64("max_ticks"); maxTicks != 0 {
		cfg.MaxTicks = maxTicks
	}

	ships, err := config.Build(cfg)
	if err != nil {
		return logging.WrapError(err, "building scenario")
	}

	ctx := logging.WithBattleID(context.Background(), fmt.Sprintf("battle-%d", cfg.Seed))
	bus := event.NewBus()
	subscribeBattleLog(bus, logger, ctx)

	battle := engine.NewBattle(ships, engine.Options{
		TickDuration: cfg.TickDuration(),
		CellSize:     cfg.CellSize,
		Seed:         cfg.Seed,
		Controller:   &ai.Simple{},
		Logger:       logger,
		Bus:          bus,
	})
	battle.SetContext(ctx)

	view := buildRenderer()
	renderEvery := uint64(viper.GetInt("render_every"))
	if renderEvery == 0 {
		renderEvery = 1
	}

	logger.Info(ctx, "battle starting",
		"teams", len(cfg.Teams), "ships", len(ships),
		"tick_rate", cfg.TickRate, "seed", cfg.Seed)

	for !battle.Over() {
		if cfg.MaxTicks > 0 && battle.Tick() >= cfg.MaxTicks {
			logger.Warn(ctx, "tick cap reached, calling the battle", "ticks", battle.Tick())
			break
		}
		battle.Update()
		if view != nil && battle.Tick()%renderEvery == 0 {
			view.Render(battle.Snapshot())
		}
	}

	report(battle, cfg)
	return nil
}

// loadScenario reads the scenario file when one is configured, otherwise
// falls back to the built-in skirmish. A file path given as the first
// argument wins over the environment.
func loadScenario() (*config.BattleConfig, error) {
	path := viper.GetString("scenario")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, logging.WrapError(err, "loading scenario %s", path)
	}
	return cfg, nil
}

func buildRenderer() render.Renderer {
	if !viper.GetBool("render") {
		return nil
	}
	return render.NewTerminalRenderer(os.Stdout, 100, 30, 100)
}

// subscribeBattleLog forwards the interesting battle events to the log.
func subscribeBattleLog(bus *event.Bus, logger *logging.Logger, ctx context.Context) {
	bus.Subscribe(event.ShipDestroyed, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok {
			logger.Info(ctx, "ship destroyed", "ship_id", se.ShipID, "team", se.TeamID, "tick", se.Tick)
		}
	})
	bus.Subscribe(event.ShipRammed, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok {
			logger.Info(ctx, "ramming impact", "ship_id", se.ShipID, "tick", se.Tick)
		}
	})
	bus.Subscribe(event.BattleEnded, func(e event.Event) {
		if be, ok := e.(*event.BattleEvent); ok {
			logger.Info(ctx, "battle ended", "winner", be.Winner, "tick", be.Tick)
		}
	})
}

// report prints the human-readable outcome summary.
func report(battle *engine.Battle, cfg *config.BattleConfig) {
	state := battle.Snapshot()

	seconds := float64(state.Tick) * cfg.TickDuration()
	fmt.Printf("\nbattle finished after %d ticks (%.1fs simulated)\n", state.Tick, seconds)

	switch {
	case !state.Over:
		fmt.Println("result: undecided (tick cap)")
	case state.Winner < 0:
		fmt.Println("result: draw")
	default:
		name := fmt.Sprintf("team %d", state.Winner)
		if state.Winner < len(cfg.Teams) {
			name = cfg.Teams[state.Winner].Name
		}
		fmt.Printf("result: %s wins\n", name)
	}

	fmt.Println("\nship status:")
	for _, s := range battle.Ships() {
		status := "destroyed"
		if s.Alive && s.Derelict {
			status = "derelict"
		} else if s.Alive {
			status = fmt.Sprintf("%.0f/%.0f HP", s.HP, s.Stats.MaxHP)
		}
		fmt.Printf("  [%d] %-16s %s\n", s.TeamID, s.Name, status)
		for _, m := range s.Mounts {
			if m.Shots == 0 {
				continue
			}
			fmt.Printf("      %-14s %d/%d hits (%.0f%%)\n",
				m.Spec.Name, m.Hits, m.Shots, m.HitRate()*100)
		}
	}
}
