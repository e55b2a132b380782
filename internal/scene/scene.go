// Package scene описывает наборы анимаций в YAML и собирает их на поверхностях хоста.
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind — вид анимации слоя.
type Kind string

const (
	KindDotMatrix Kind = "dotmatrix"
	KindRain      Kind = "matrixrain"
	KindParticles Kind = "particles"
	KindWaveform  Kind = "waveform"
	KindRipple    Kind = "ripple"
	KindGauge     Kind = "gauge"
)

var ErrUnknownKind = errors.New("unknown animation kind")

// File — корень файла сцен.
type File struct {
	Scenes []Scene `yaml:"scenes"`
}

type Scene struct {
	Name       string  `yaml:"name"`
	Theme      string  `yaml:"theme,omitempty"`
	DurationMs float64 `yaml:"duration_ms,omitempty"` // 0 — пока не переключат вручную
	Layers     []Layer `yaml:"layers"`
}

// Rect — область слоя на экране хоста.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && y >= float64(r.Y) && x < float64(r.X+r.W) && y < float64(r.Y+r.H)
}

// Layer — одна анимация сцены. Заполняется ровно одно поле по Kind.
type Layer struct {
	Kind  Kind    `yaml:"kind"`
	Rect  Rect    `yaml:"rect"`
	Color string  `yaml:"color,omitempty"` // "#rrggbb", по умолчанию цвет темы
	Glow  float64 `yaml:"glow,omitempty"`

	DotMatrix *DotMatrixSpec `yaml:"dotmatrix,omitempty"`
	Rain      *RainSpec      `yaml:"matrixrain,omitempty"`
	Particles *ParticleSpec  `yaml:"particles,omitempty"`
	Waveform  *WaveformSpec  `yaml:"waveform,omitempty"`
	Ripple    *RippleSpec    `yaml:"ripple,omitempty"`
	Gauge     *GaugeSpec     `yaml:"gauge,omitempty"`
}

type DotMatrixSpec struct {
	Text        string   `yaml:"text"`
	MsPerPixel  float64  `yaml:"ms_per_pixel,omitempty"`
	RevealSpeed float64  `yaml:"reveal_speed,omitempty"`
	Loop        bool     `yaml:"loop,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Effects     []string `yaml:"effects,omitempty"`
	Reactive    string   `yaml:"reactive,omitempty"` // начальное состояние; пусто — выключено
	PixelSize   float64  `yaml:"pixel_size,omitempty"`
	Spacing     float64  `yaml:"spacing,omitempty"`
}

type RainSpec struct {
	FontSize float64 `yaml:"font_size,omitempty"`
	Trail    int     `yaml:"trail,omitempty"`
	Density  float64 `yaml:"density,omitempty"`
	SpeedMin float64 `yaml:"speed_min,omitempty"`
	SpeedMax float64 `yaml:"speed_max,omitempty"`
	Charset  string  `yaml:"charset,omitempty"`
}

type ForceSpec struct {
	Type     string  `yaml:"type"`
	Strength float64 `yaml:"strength"`
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
}

type ParticleSpec struct {
	X         float64     `yaml:"x,omitempty"` // 0,0 — центр слоя
	Y         float64     `yaml:"y,omitempty"`
	Rate      float64     `yaml:"rate,omitempty"`
	Direction float64     `yaml:"direction,omitempty"`
	Spread    float64     `yaml:"spread,omitempty"`
	SpeedMin  float64     `yaml:"speed_min,omitempty"`
	SpeedMax  float64     `yaml:"speed_max,omitempty"`
	LifeMin   float64     `yaml:"life_min,omitempty"`
	LifeMax   float64     `yaml:"life_max,omitempty"`
	Max       int         `yaml:"max,omitempty"`
	Shape     string      `yaml:"shape,omitempty"`
	Burst     int         `yaml:"burst,omitempty"` // сразу после старта
	Forces    []ForceSpec `yaml:"forces,omitempty"`
}

type GeneratorSpec struct {
	Amplitude  float64 `yaml:"amplitude"`
	Frequency  float64 `yaml:"frequency"`
	Noise      float64 `yaml:"noise,omitempty"`
	IntervalMs float64 `yaml:"interval_ms"`
}

type WaveformSpec struct {
	MaxPoints int            `yaml:"max_points,omitempty"`
	Min       float64        `yaml:"min"`
	Max       float64        `yaml:"max"`
	Smooth    *bool          `yaml:"smooth,omitempty"`
	Grid      *bool          `yaml:"grid,omitempty"`
	Data      []float64      `yaml:"data,omitempty"`
	Generator *GeneratorSpec `yaml:"generator,omitempty"`
}

type RippleSpec struct {
	Speed          float64 `yaml:"speed,omitempty"`
	FadeRate       float64 `yaml:"fade_rate,omitempty"`
	MaxRadius      float64 `yaml:"max_radius,omitempty"`
	MaxWaves       int     `yaml:"max_waves,omitempty"`
	AutoIntervalMs float64 `yaml:"auto_interval_ms,omitempty"`
	Click          *bool   `yaml:"click,omitempty"`
	Echoes         *int    `yaml:"echoes,omitempty"`
}

type GaugeSpec struct {
	Value    float64 `yaml:"value"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Label    string  `yaml:"label,omitempty"`
	Units    string  `yaml:"units,omitempty"`
	Warning  float64 `yaml:"warning,omitempty"`
	Critical float64 `yaml:"critical,omitempty"`
}

// Parse разбирает и проверяет файл сцен.
func Parse(data []byte) ([]Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenes: %w", err)
	}
	if len(f.Scenes) == 0 {
		return nil, errors.New("scene file has no scenes")
	}
	for i, sc := range f.Scenes {
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("scene %d (%q): %w", i, sc.Name, err)
		}
	}
	return f.Scenes, nil
}

// Load читает файл сцен.
func Load(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional читает path, если он задан и существует; иначе — встроенные сцены.
func LoadOptional(path string) ([]Scene, error) {
	if path == "" {
		return Default(), nil
	}
	scenes, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return scenes, err
}

// Validate проверяет, что у каждого слоя есть параметры своего вида.
func (s Scene) Validate() error {
	if len(s.Layers) == 0 {
		return errors.New("no layers")
	}
	for i, l := range s.Layers {
		if l.Rect.W <= 0 || l.Rect.H <= 0 {
			return fmt.Errorf("layer %d: empty rect %+v", i, l.Rect)
		}
		var ok bool
		switch l.Kind {
		case KindDotMatrix:
			ok = l.DotMatrix != nil
		case KindRain:
			ok = true
		case KindParticles:
			ok = true
		case KindWaveform:
			ok = true
		case KindRipple:
			ok = true
		case KindGauge:
			ok = l.Gauge != nil
		default:
			return fmt.Errorf("layer %d: %w %q", i, ErrUnknownKind, l.Kind)
		}
		if !ok {
			return fmt.Errorf("layer %d: %s needs a %q section", i, l.Kind, l.Kind)
		}
	}
	return nil
}

// Marshal сериализует сцены обратно в YAML (для -dump в хостах).
func Marshal(scenes []Scene) ([]byte, error) {
	return yaml.Marshal(File{Scenes: scenes})
}
