// cmd/phosphor/main.go
package main

import (
	"flag"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/scene"
	"go-phosphor/internal/state"
	"go-phosphor/pkg/render"
	"go-phosphor/pkg/surface"

	"github.com/hajimehoshi/ebiten/v2"
)

type App struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *App) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	scenesPath := flag.String("scenes", "", "YAML file with scenes (built-in scenes if empty or missing)")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address, e.g. localhost:6060")
	seed := flag.Int64("seed", 0, "random seed, 0 means time based")
	menu := flag.Bool("menu", false, "start from the scene menu")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if *pprofAddr != "" {
		go func() {
			log.Error("pprof stopped", "err", http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	scenes, err := scene.LoadOptional(*scenesPath)
	if err != nil {
		log.Error("failed to load scenes", "err", err)
		os.Exit(1)
	}

	sm := state.NewStateMachine(log)
	loop := frame.NewLoop(nil)
	factory := func(w, h int) surface.Surface { return render.NewCanvas(w, h) }
	player, err := state.NewSceneState(sm, scenes, loop, factory, state.EbitenInput{}, log, anim.WithSeed(*seed))
	if err != nil {
		log.Error("failed to mount scene", "err", err)
		os.Exit(1)
	}
	defer player.Close()
	if *menu {
		sm.SetState(state.NewMenuState(sm, player, state.EbitenInput{}))
	} else {
		sm.SetState(player)
	}

	app := &App{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("phosphor")
	ebiten.SetTPS(config.TargetFPS)
	if err := ebiten.RunGame(app); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}
