package main

import (
	"context"
	"log/slog"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/reactive"
	"go-phosphor/internal/scene"
	"go-phosphor/pkg/surface"

	"github.com/gdamore/tcell/v2"
)

var reactiveRunes = map[rune]reactive.State{
	'1': reactive.Idle,
	'2': reactive.Processing,
	'3': reactive.Success,
	'4': reactive.Warning,
	'5': reactive.Error,
}

// player крутит сцены в терминале: кадры собираются в растр и выводятся полублоками.
type player struct {
	scenes  []scene.Scene
	index   int
	loop    *frame.Loop
	stage   *scene.Stage
	shownAt float64
	screen  tcell.Screen
	term    *surface.Terminal
	log     *slog.Logger
	opts    []anim.Option
	cancel  context.CancelFunc
	pressed bool
}

func interactive(ctx context.Context, scenes []scene.Scene, start int, fps float64, log *slog.Logger, opts []anim.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := &player{
		scenes: scenes,
		loop:   frame.NewLoop(nil),
		screen: screen,
		term:   surface.NewTerminal(screen),
		log:    log,
		opts:   opts,
		cancel: cancel,
	}
	if err := p.show(start); err != nil {
		return err
	}
	defer func() { p.stage.Destroy() }()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frame.Run(ctx, p.loop, fps, func(ts float64) {
		for drained := false; !drained; {
			select {
			case ev := <-events:
				p.handle(ev)
			default:
				drained = true
			}
		}
		if d := p.stage.Scene.DurationMs; d > 0 && ts-p.shownAt >= d {
			p.next(1)
		}
		p.term.Present(compose(p.stage).Image())
		screen.Show()
	})
}

func (p *player) show(i int) error {
	n := len(p.scenes)
	i = ((i % n) + n) % n
	st, err := scene.Mount(p.scenes[i], rasters, p.loop, p.opts...)
	if err != nil {
		return err
	}
	if p.stage != nil {
		p.stage.Destroy()
	}
	p.stage, p.index = st, i
	p.shownAt = p.loop.Now()
	st.Start()
	return nil
}

func (p *player) next(d int) {
	if err := p.show(p.index + d); err != nil {
		p.log.Error("scene switch failed", "err", err)
		p.shownAt = p.loop.Now()
	}
}

func (p *player) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			p.cancel()
		case tcell.KeyRight:
			p.next(1)
		case tcell.KeyLeft:
			p.next(-1)
		case tcell.KeyRune:
			if st, ok := reactiveRunes[ev.Rune()]; ok {
				p.stage.SetReactive(st)
				return
			}
			switch ev.Rune() {
			case 'q':
				p.cancel()
			case 'n':
				p.next(1)
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if !down || p.pressed {
			p.pressed = down
			return
		}
		p.pressed = true
		cols, rows := p.screen.Size()
		x, y := ev.Position()
		sx := (float64(x) + 0.5) * config.ScreenWidth / float64(cols)
		sy := (float64(y) + 0.5) * config.ScreenHeight / float64(rows)
		p.stage.PointerDown(sx, sy)
	case *tcell.EventResize:
		p.screen.Sync()
	}
}
