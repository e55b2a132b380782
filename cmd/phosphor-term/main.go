// cmd/phosphor-term/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/scene"

	"fortio.org/cli"
)

func main() {
	scenesPath := flag.String("scenes", "", "YAML file with scenes (built-in scenes if empty or missing)")
	sceneName := flag.String("scene", "", "scene name or index to start with")
	snapshot := flag.String("snapshot", "", "render headless and write a PNG to this path")
	at := flag.Float64("at", 2000, "time in ms for -snapshot and -print")
	printSummary := flag.Bool("print", false, "render headless and print a text summary")
	fps := flag.Float64("fps", 30, "frames per second in the terminal")
	seed := flag.Int64("seed", 1, "random seed, 0 means time based")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	cli.Main()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opts := []anim.Option{anim.WithLogger(log), anim.WithSeed(*seed)}

	scenes, err := scene.LoadOptional(*scenesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	start, err := pick(scenes, *sceneName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *snapshot != "" || *printSummary {
		st, err := renderAt(scenes[start], *at, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer st.Destroy()
		if *snapshot != "" {
			if err := compose(st).SavePNG(*snapshot); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		if *printSummary {
			fmt.Println(summary(st, *at))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := interactive(ctx, scenes, start, *fps, log, opts); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pick находит сцену по имени или номеру; пустая строка — первая.
func pick(scenes []scene.Scene, name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	for i, sc := range scenes {
		if sc.Name == name {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(scenes) {
		return i, nil
	}
	return 0, fmt.Errorf("no scene %q", name)
}
