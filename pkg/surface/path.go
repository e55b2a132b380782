package surface

// OpKind — вид сегмента пути.
type OpKind int

const (
	OpMove OpKind = iota
	OpLine
	OpQuad
)

// PathOp — один сегмент. Для OpQuad (CX, CY) — контрольная точка.
type PathOp struct {
	Kind   OpKind
	CX, CY float64
	X, Y   float64
}

// Path — переиспользуемый путь: Reset сохраняет ёмкость, чтобы не аллоцировать каждый кадр.
type Path struct {
	ops []PathOp
}

func (p *Path) Reset() { p.ops = p.ops[:0] }

func (p *Path) MoveTo(x, y float64) {
	p.ops = append(p.ops, PathOp{Kind: OpMove, X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	p.ops = append(p.ops, PathOp{Kind: OpLine, X: x, Y: y})
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.ops = append(p.ops, PathOp{Kind: OpQuad, CX: cx, CY: cy, X: x, Y: y})
}

// Ops возвращает сегменты пути. Срез принадлежит Path.
func (p *Path) Ops() []PathOp { return p.ops }

func (p *Path) Len() int { return len(p.ops) }
