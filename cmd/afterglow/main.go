package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/emberlit/afterglow/audio"
	"github.com/emberlit/afterglow/config"
	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/logging"
	"github.com/emberlit/afterglow/parameter"
	"github.com/emberlit/afterglow/recorder"
	"github.com/emberlit/afterglow/render"
	"github.com/emberlit/afterglow/stage"
	"github.com/emberlit/afterglow/system"
	"github.com/emberlit/afterglow/web"
)

var (
	configFlag = flag.String("config", "", "Path to TOML config file")
	stagesFlag = flag.String("stages", "", "Path to stage script YAML (overrides config)")
	serveFlag  = flag.Bool("serve", false, "Run headless with the HTTP bridge instead of the terminal demo")
	addrFlag   = flag.String("addr", "", "HTTP listen address (overrides config)")
	muteFlag   = flag.Bool("mute", false, "Disable audio cues")
	recordFlag = flag.Bool("record", false, "Force session recording on")
)

func main() {
	flag.Parse()

	log, manager, script, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "afterglow: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := manager.Config()
	sim, player := buildSimulation(manager)
	defer player.Cleanup()

	rec := openRecorder(cfg, sim.World, log)
	if rec != nil {
		defer rec.Close()
	}

	if *serveFlag {
		runServe(sim, script, cfg, log)
		return
	}
	runDemo(sim, player, script, log)
}

// setup resolves logging, configuration, and the stage script
func setup() (*zap.Logger, *config.Manager, *stage.Script, error) {
	// Bootstrap config without a logger; the watch callback gets the
	// real one afterwards
	manager, err := config.Load(*configFlag, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg := manager.Config()

	log, err := logging.Init(logging.Options{
		Directory:  cfg.Logging.Directory,
		Level:      cfg.Logging.Level,
		Console:    *serveFlag, // The demo owns the terminal
		MaxSizeMB:  cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logging: %w", err)
	}

	stagesPath := cfg.Stages.Path
	if *stagesFlag != "" {
		stagesPath = *stagesFlag
	}
	script := stage.Default()
	if stagesPath != "" {
		script, err = stage.LoadScript(stagesPath)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return log, manager, script, nil
}

// buildSimulation assembles the world, systems, and scheduler
func buildSimulation(manager *config.Manager) (*engine.SimContext, *audio.Player) {
	cfg := manager.Config()
	sim := engine.NewSimContext(parameter.SimulationTickInterval)
	world := sim.World
	config.ApplyTuning(world, cfg)

	seed := uint64(time.Now().UnixNano())
	world.AddSystem(system.NewActivitySystem(world))
	world.AddSystem(system.NewParticleSystemSized(world, cfg.Simulation.ParticleCapacity, seed))
	world.AddSystem(system.NewCascadeSystemShaped(world,
		cfg.Simulation.CascadeLayers, cfg.Simulation.CascadeNodes, seed+1))

	player := audio.NewPlayer()
	player.SetMuted(*muteFlag)
	world.AddSystem(audio.NewSystem(world, player))

	manager.Watch(func(next config.Config) {
		config.ApplyTuning(world, next)
	})

	return sim, player
}

// openRecorder starts session persistence when enabled
func openRecorder(cfg config.Config, world *engine.World, log *zap.Logger) *recorder.Recorder {
	if !cfg.Recorder.Enabled && !*recordFlag {
		return nil
	}
	rec, err := recorder.Open(cfg.Recorder.Path, world, log)
	if err != nil {
		log.Warn("session recording disabled", zap.Error(err))
		return nil
	}
	if err := rec.StartSession(); err != nil {
		log.Warn("session recording disabled", zap.Error(err))
		rec.Close()
		return nil
	}
	world.AddSystem(rec)
	log.Info("session recording started",
		zap.String("path", cfg.Recorder.Path), zap.Int64("session", rec.SessionID()))
	return rec
}

// runServe runs the headless service: scheduler plus HTTP bridge
func runServe(sim *engine.SimContext, script *stage.Script, cfg config.Config, log *zap.Logger) {
	addr := cfg.Server.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	sim.Start()
	defer sim.Stop()

	// No renderer: pace the scheduler with a frame ticker
	pacerStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(parameter.FrameUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pacerStop:
				return
			case <-ticker.C:
				sim.SignalFrameReady()
			}
		}
	}()
	defer close(pacerStop)

	server := web.NewServer(sim.World, script, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving", zap.String("addr", addr))
		errCh <- server.Run(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	}
}

// runDemo runs the interactive terminal experience
func runDemo(sim *engine.SimContext, player *audio.Player, script *stage.Script, log *zap.Logger) {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before surfacing any panic
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nAFTERGLOW CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse()
	screen.Clear()

	if err := player.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing silent", zap.Error(err))
	}

	sim.Start()
	defer sim.Stop()
	sim.SignalFrameReady()

	orch := render.NewOrchestrator()
	orch.Register(render.NewParticlesRenderer(), render.PriorityParticles)
	orch.Register(render.NewCascadeRenderer(), render.PriorityCascade)
	orch.Register(render.NewHUDRenderer(), render.PriorityHUD)

	input := newInputState(sim, script, log)

	eventCh := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-eventCh:
			if !input.handle(ev, screen) {
				return
			}
			sim.Scheduler.DispatchEventsImmediately()

		case <-frameTicker.C:
			width, height := screen.Size()
			ctx := &render.Context{
				Screen:    screen,
				Width:     width,
				Height:    height,
				Snapshot:  sim.Snapshot(),
				Layout:    sim.World.Resource.Cascade.Nodes,
				Script:    script,
				InputText: input.text(),
				Paused:    sim.IsPaused.Load(),
			}
			orch.RenderFrame(ctx)
			sim.SignalFrameReady()
		}
	}
}
