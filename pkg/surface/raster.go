package surface

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Raster — программная поверхность на gg: рисует в image.RGBA без окна.
// Подходит для снимков в PNG и вывода в терминал.
type Raster struct {
	dc *gg.Context
}

func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.dc = gg.NewContext(w, h)
	r.dc.SetFontFace(basicfont.Face7x13)
}

func (r *Raster) Size() (int, int) { return r.dc.Width(), r.dc.Height() }

// Image возвращает текущий кадр. Изображение перерисовывается на месте.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// SavePNG сохраняет текущий кадр.
func (r *Raster) SavePNG(path string) error { return r.dc.SavePNG(path) }

func (r *Raster) setColor(c color.NRGBA) {
	r.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

func (r *Raster) Clear(c color.RGBA) {
	r.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 255)
	r.dc.Clear()
}

func (r *Raster) FillRect(x, y, w, h float64, st Style) {
	r.setColor(st.NRGBA(1))
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) FillCircle(cx, cy, rad float64, st Style) {
	if st.ShadowBlur > 0 {
		for k := 1; k <= GlowSteps; k++ {
			gr, ga := GlowLayer(rad, st.ShadowBlur, k)
			r.setColor(st.GlowNRGBA(ga))
			r.dc.DrawCircle(cx, cy, gr)
			r.dc.Fill()
		}
	}
	r.setColor(st.NRGBA(1))
	r.dc.DrawCircle(cx, cy, rad)
	r.dc.Fill()
}

// strokeGlow обводит текущий путь широкими полупрозрачными линиями, затем основной.
func (r *Raster) strokeGlow(build func(), st Style) {
	width := st.LineWidth
	if width <= 0 {
		width = 1
	}
	if st.ShadowBlur > 0 {
		for k := 1; k <= GlowSteps; k++ {
			gw, ga := GlowLayer(width/2, st.ShadowBlur, k)
			build()
			r.setColor(st.GlowNRGBA(ga))
			r.dc.SetLineWidth(gw * 2)
			r.dc.Stroke()
		}
	}
	build()
	r.setColor(st.NRGBA(1))
	r.dc.SetLineWidth(width)
	r.dc.Stroke()
}

func (r *Raster) StrokeCircle(cx, cy, rad float64, st Style) {
	r.strokeGlow(func() { r.dc.DrawCircle(cx, cy, rad) }, st)
}

func (r *Raster) StrokeArc(cx, cy, rad, a0, a1 float64, st Style) {
	r.strokeGlow(func() {
		r.dc.NewSubPath()
		r.dc.DrawArc(cx, cy, rad, a0, a1)
	}, st)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1 float64, st Style) {
	r.strokeGlow(func() { r.dc.DrawLine(x0, y0, x1, y1) }, st)
}

func (r *Raster) StrokePath(p *Path, st Style) {
	if p.Len() == 0 {
		return
	}
	r.strokeGlow(func() {
		for _, op := range p.Ops() {
			switch op.Kind {
			case OpMove:
				r.dc.MoveTo(op.X, op.Y)
			case OpLine:
				r.dc.LineTo(op.X, op.Y)
			case OpQuad:
				r.dc.QuadraticTo(op.CX, op.CY, op.X, op.Y)
			}
		}
	}, st)
}

func (r *Raster) FillText(s string, x, y float64, st Style) {
	r.setColor(st.NRGBA(1))
	r.dc.DrawString(s, x, y)
}
