// Package pattern считает, в каком порядке и когда загораются пиксели символа.
//
// Каждый узор обходит все 35 клеток сетки 5x7 ровно по одному разу, поэтому
// бюджет символа одинаков для всех узоров: 35 слотов по msPerPixel. Узор
// меняет только порядок.
package pattern

import (
	"sort"

	"go-phosphor/internal/glyph"
	"go-phosphor/internal/utils"
)

// Type — имя узора проявления.
type Type string

const (
	Sequential Type = "sequential"
	Reverse    Type = "reverse"
	Column     Type = "column"
	Diagonal   Type = "diagonal"
	CenterOut  Type = "center-out"
	Spiral     Type = "spiral"
	Random     Type = "random"
)

// Cells — число пикселей в символе.
const Cells = glyph.Rows * glyph.Cols

// All перечисляет известные узоры.
func All() []Type {
	return []Type{Sequential, Reverse, Column, Diagonal, CenterOut, Spiral, Random}
}

// Normalize возвращает p или Sequential для неизвестного имени.
func Normalize(p Type) Type {
	switch p {
	case Sequential, Reverse, Column, Diagonal, CenterOut, Spiral, Random:
		return p
	}
	return Sequential
}

// Timing — окно [Start, End) проявления пикселя, мс.
type Timing struct {
	Start float64
	End   float64
}

// order[row*Cols+col] — номер шага, на котором загорается клетка.
type order [Cells]int

type key struct {
	pattern Type
	length  int
}

// Calculator кеширует порядки обхода по паре (узор, длина текста).
type Calculator struct {
	seed   int64
	cache  map[key][]order
	active map[Type]key
}

// geometric — порядки, не зависящие от номера символа; считаются один раз.
var geometric = map[Type]order{}

func init() {
	geometric[Sequential] = build(func(r, c int) (int, int) { return r*glyph.Cols + c, 0 })
	geometric[Reverse] = build(func(r, c int) (int, int) { return Cells - 1 - (r*glyph.Cols + c), 0 })
	geometric[Column] = build(func(r, c int) (int, int) { return c*glyph.Rows + r, 0 })
	geometric[Diagonal] = build(func(r, c int) (int, int) { return r + c, r })
	geometric[CenterOut] = build(func(r, c int) (int, int) {
		dr, dc := r-glyph.Rows/2, c-glyph.Cols/2
		return dr*dr + dc*dc, r*glyph.Cols + c
	})
	geometric[Spiral] = spiral()
}

// NewCalculator создаёт калькулятор. Сид задаёт узор random; 0 заменяется на 1,
// чтобы порядок был воспроизводимым.
func NewCalculator(seed int64) *Calculator {
	if seed == 0 {
		seed = 1
	}
	return &Calculator{
		seed:   seed,
		cache:  make(map[key][]order),
		active: make(map[Type]key),
	}
}

// PreCalculate строит и запоминает порядки для всех символов текста.
func (c *Calculator) PreCalculate(p Type, textLength int) {
	p = Normalize(p)
	if textLength < 0 {
		textLength = 0
	}
	k := key{pattern: p, length: textLength}
	c.active[p] = k
	if _, ok := c.cache[k]; ok {
		return
	}
	orders := make([]order, textLength)
	for i := range orders {
		orders[i] = c.orderFor(p, i)
	}
	c.cache[k] = orders
}

// PixelTiming возвращает окно пикселя (row, col) символа charIndex
// без учёта сжатых символов: Start = rank*ms + charIndex*35*ms.
func (c *Calculator) PixelTiming(charIndex, row, col int, p Type, msPerPixel float64) Timing {
	p = Normalize(p)
	rank := c.rank(p, charIndex, row, col)
	start := float64(rank)*msPerPixel + float64(charIndex*Cells)*msPerPixel
	return Timing{Start: start, End: start + msPerPixel}
}

// Rank — номер шага клетки (row, col) в порядке обхода символа charIndex.
func (c *Calculator) Rank(charIndex, row, col int, p Type) int {
	return c.rank(Normalize(p), charIndex, row, col)
}

func (c *Calculator) rank(p Type, charIndex, row, col int) int {
	idx := row*glyph.Cols + col
	if idx < 0 || idx >= Cells {
		return 0
	}
	if k, ok := c.active[p]; ok && charIndex >= 0 && charIndex < k.length {
		return c.cache[k][charIndex][idx]
	}
	o := c.orderFor(p, charIndex)
	return o[idx]
}

// ClearCache сбрасывает все запомненные порядки.
func (c *Calculator) ClearCache() {
	c.cache = make(map[key][]order)
	c.active = make(map[Type]key)
}

// Cached — сколько пар (узор, длина) лежит в кеше.
func (c *Calculator) Cached() int {
	return len(c.cache)
}

func (c *Calculator) orderFor(p Type, charIndex int) order {
	if p != Random {
		return geometric[p]
	}
	mixed := c.seed*1_000_003 + int64(charIndex)
	if mixed == 0 {
		mixed = 1
	}
	var o order
	for step, cell := range utils.NewPRNGService(mixed).Perm(Cells) {
		o[cell] = step
	}
	return o
}

// build сортирует клетки по ключу (основной, вторичный) и нумерует их.
func build(keyOf func(row, col int) (int, int)) order {
	type cell struct{ idx, k1, k2 int }
	cells := make([]cell, 0, Cells)
	for r := 0; r < glyph.Rows; r++ {
		for c := 0; c < glyph.Cols; c++ {
			k1, k2 := keyOf(r, c)
			cells = append(cells, cell{idx: r*glyph.Cols + c, k1: k1, k2: k2})
		}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].k1 != cells[j].k1 {
			return cells[i].k1 < cells[j].k1
		}
		return cells[i].k2 < cells[j].k2
	})
	var o order
	for step, cl := range cells {
		o[cl.idx] = step
	}
	return o
}

// spiral обходит сетку по часовой стрелке от левого верхнего угла внутрь.
func spiral() order {
	var o order
	top, bottom, left, right := 0, glyph.Rows-1, 0, glyph.Cols-1
	step := 0
	visit := func(r, c int) {
		o[r*glyph.Cols+c] = step
		step++
	}
	for top <= bottom && left <= right {
		for c := left; c <= right; c++ {
			visit(top, c)
		}
		top++
		for r := top; r <= bottom; r++ {
			visit(r, right)
		}
		right--
		if top <= bottom {
			for c := right; c >= left; c-- {
				visit(bottom, c)
			}
			bottom--
		}
		if left <= right {
			for r := bottom; r >= top; r-- {
				visit(r, left)
			}
			left++
		}
	}
	return o
}
