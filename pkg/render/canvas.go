package render

import (
	"image/color"
	"math"

	"go-phosphor/pkg/surface"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Canvas — поверхность surface.Surface поверх offscreen *ebiten.Image. Анимации рисуют в неё
// из Update (через frame.Loop), а хост копирует Image() на экран в Draw.
type Canvas struct {
	img      *ebiten.Image
	whiteImg *ebiten.Image
	vs       []ebiten.Vertex
	is       []uint16
	face     font.Face
}

func NewCanvas(w, h int) *Canvas {
	whiteImg := ebiten.NewImage(1, 1)
	whiteImg.Fill(color.White)
	e := &Canvas{
		whiteImg: whiteImg,
		vs:       make([]ebiten.Vertex, 0, 64),
		is:       make([]uint16, 0, 96),
		face:     basicfont.Face7x13,
	}
	e.Resize(w, h)
	return e
}

// Image возвращает offscreen-изображение кадра.
func (e *Canvas) Image() *ebiten.Image { return e.img }

func (e *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if e.img != nil {
		e.img.Deallocate()
	}
	e.img = ebiten.NewImage(w, h)
}

func (e *Canvas) Size() (int, int) {
	b := e.img.Bounds()
	return b.Dx(), b.Dy()
}

func (e *Canvas) Clear(c color.RGBA) {
	c.A = 255
	e.img.Fill(c)
}

func (e *Canvas) FillRect(x, y, w, h float64, st surface.Style) {
	vector.DrawFilledRect(e.img, float32(x), float32(y), float32(w), float32(h), st.NRGBA(1), true)
}

func (e *Canvas) FillCircle(cx, cy, r float64, st surface.Style) {
	if st.ShadowBlur > 0 {
		for k := 1; k <= surface.GlowSteps; k++ {
			gr, ga := surface.GlowLayer(r, st.ShadowBlur, k)
			vector.DrawFilledCircle(e.img, float32(cx), float32(cy), float32(gr), st.GlowNRGBA(ga), true)
		}
	}
	vector.DrawFilledCircle(e.img, float32(cx), float32(cy), float32(r), st.NRGBA(1), true)
}

func (e *Canvas) StrokeCircle(cx, cy, r float64, st surface.Style) {
	path := vector.Path{}
	path.Arc(float32(cx), float32(cy), float32(r), 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	e.strokeGlow(&path, st)
}

func (e *Canvas) StrokeArc(cx, cy, r, a0, a1 float64, st surface.Style) {
	path := vector.Path{}
	path.Arc(float32(cx), float32(cy), float32(r), float32(a0), float32(a1), vector.Clockwise)
	e.strokeGlow(&path, st)
}

func (e *Canvas) StrokeLine(x0, y0, x1, y1 float64, st surface.Style) {
	path := vector.Path{}
	path.MoveTo(float32(x0), float32(y0))
	path.LineTo(float32(x1), float32(y1))
	e.strokeGlow(&path, st)
}

func (e *Canvas) StrokePath(p *surface.Path, st surface.Style) {
	if p.Len() == 0 {
		return
	}
	path := vector.Path{}
	for _, op := range p.Ops() {
		switch op.Kind {
		case surface.OpMove:
			path.MoveTo(float32(op.X), float32(op.Y))
		case surface.OpLine:
			path.LineTo(float32(op.X), float32(op.Y))
		case surface.OpQuad:
			path.QuadTo(float32(op.CX), float32(op.CY), float32(op.X), float32(op.Y))
		}
	}
	e.strokeGlow(&path, st)
}

func (e *Canvas) FillText(s string, x, y float64, st surface.Style) {
	text.Draw(e.img, s, e.face, int(x), int(y), st.NRGBA(1))
}

func (e *Canvas) strokeGlow(path *vector.Path, st surface.Style) {
	width := st.LineWidth
	if width <= 0 {
		width = 1
	}
	if st.ShadowBlur > 0 {
		for k := 1; k <= surface.GlowSteps; k++ {
			gw, ga := surface.GlowLayer(width/2, st.ShadowBlur, k)
			e.stroke(path, gw*2, st.GlowNRGBA(ga))
		}
	}
	e.stroke(path, width, st.NRGBA(1))
}

// stroke триангулирует путь и рисует его одним DrawTriangles с белой текстурой 1x1.
func (e *Canvas) stroke(path *vector.Path, width float64, c color.NRGBA) {
	e.vs, e.is = path.AppendVerticesAndIndicesForStroke(e.vs[:0], e.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	for i := range e.vs {
		e.vs[i].SrcX = 0
		e.vs[i].SrcY = 0
		e.vs[i].ColorR = float32(c.R) / 255
		e.vs[i].ColorG = float32(c.G) / 255
		e.vs[i].ColorB = float32(c.B) / 255
		e.vs[i].ColorA = float32(c.A) / 255
	}
	e.img.DrawTriangles(e.vs, e.is, e.whiteImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}
