package surface

import "image/color"

// Call — один записанный вызов рисования.
type Call struct {
	Op    string
	Args  []float64
	Text  string
	Style Style
	Path  []PathOp
}

// Recorder — Surface, который ничего не рисует, а запоминает вызовы.
// Используется в тестах анимаций.
type Recorder struct {
	w, h  int
	calls []Call
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) Resize(w, h int) {
	r.w, r.h = w, h
}

func (r *Recorder) record(op string, st Style, args ...float64) {
	r.calls = append(r.calls, Call{Op: op, Args: args, Style: st})
}

func (r *Recorder) Clear(c color.RGBA) {
	r.calls = append(r.calls, Call{Op: "clear", Style: Style{Color: c, Alpha: 1}})
}

func (r *Recorder) FillRect(x, y, w, h float64, st Style) {
	r.record("fillRect", st, x, y, w, h)
}

func (r *Recorder) FillCircle(cx, cy, rad float64, st Style) {
	r.record("fillCircle", st, cx, cy, rad)
}

func (r *Recorder) StrokeCircle(cx, cy, rad float64, st Style) {
	r.record("strokeCircle", st, cx, cy, rad)
}

func (r *Recorder) StrokeArc(cx, cy, rad, a0, a1 float64, st Style) {
	r.record("strokeArc", st, cx, cy, rad, a0, a1)
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64, st Style) {
	r.record("strokeLine", st, x0, y0, x1, y1)
}

func (r *Recorder) StrokePath(p *Path, st Style) {
	ops := append([]PathOp(nil), p.Ops()...)
	r.calls = append(r.calls, Call{Op: "strokePath", Style: st, Path: ops})
}

func (r *Recorder) FillText(s string, x, y float64, st Style) {
	r.calls = append(r.calls, Call{Op: "fillText", Text: s, Args: []float64{x, y}, Style: st})
}

// Calls возвращает все вызовы с момента последнего Reset.
func (r *Recorder) Calls() []Call { return r.calls }

// Count — сколько было вызовов op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter возвращает вызовы op в порядке записи.
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// SinceLastClear возвращает вызовы после последнего Clear, то есть последний кадр.
func (r *Recorder) SinceLastClear() []Call {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Op == "clear" {
			return r.calls[i+1:]
		}
	}
	return r.calls
}

func (r *Recorder) Reset() { r.calls = r.calls[:0] }
