package main

import (
	"fmt"
	"strings"
	"time"

	"go-phosphor/internal/anim"
	"go-phosphor/internal/config"
	"go-phosphor/internal/frame"
	"go-phosphor/internal/scene"
	"go-phosphor/internal/waveform"
	"go-phosphor/pkg/surface"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	"github.com/guptarohit/asciigraph"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true).MarginBottom(1)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	rectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(20)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

func rasters(w, h int) surface.Surface { return surface.NewRaster(w, h) }

// renderAt проигрывает сцену на ручных часах до момента atMs кадрами 60 Гц.
func renderAt(sc scene.Scene, atMs float64, opts []anim.Option) (*scene.Stage, error) {
	clock := frame.NewManualClock()
	loop := frame.NewLoop(clock)
	st, err := scene.Mount(sc, rasters, loop, opts...)
	if err != nil {
		return nil, err
	}
	st.Start()
	frameMs := config.FrameMs
	step := time.Duration(frameMs * float64(time.Millisecond))
	for loop.Tick() < atMs {
		clock.Advance(step)
	}
	return st, nil
}

// compose собирает растры слоёв в один кадр размером с экран.
func compose(st *scene.Stage) *gg.Context {
	dc := gg.NewContext(config.ScreenWidth, config.ScreenHeight)
	bg := st.Theme.Background
	dc.SetRGB255(int(bg.R), int(bg.G), int(bg.B))
	dc.Clear()
	for _, in := range st.Instances {
		if r, ok := in.Surface.(*surface.Raster); ok {
			dc.DrawImage(r.Image(), in.Layer.Rect.X, in.Layer.Rect.Y)
		}
	}
	return dc
}

// summary — текстовый отчёт: слои сцены и график осциллографа, если он есть.
func summary(st *scene.Stage, atMs float64) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s @ %.0fms (%s)", st.Scene.Name, atMs, st.Theme.Name)))
	b.WriteString("\n")
	for _, in := range st.Instances {
		r := in.Layer.Rect
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			kindStyle.Render(string(in.Layer.Kind)),
			rectStyle.Render(fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)),
			valueStyle.Render(in.Status()),
		))
		b.WriteString("\n")
	}
	for _, in := range st.Find(scene.KindWaveform) {
		data := in.Anim.(*waveform.Waveform).Data()
		if len(data) < 2 {
			continue
		}
		chart := asciigraph.Plot(data, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("waveform"))
		b.WriteString(graphStyle.Render(chart))
		b.WriteString("\n")
	}
	return b.String()
}
