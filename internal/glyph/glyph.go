// internal/glyph/glyph.go
package glyph

import "unicode"

const (
	Cols = 5
	Rows = 7
)

// Bitmap — символ 5x7: по строке на байт, бит 4 — левый столбец.
type Bitmap [Rows]uint8

// On — горит ли пиксель (row, col).
func (b Bitmap) On(row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false
	}
	return b[row]&(1<<(Cols-1-col)) != 0
}

// Count — число горящих пикселей.
func (b Bitmap) Count() int {
	n := 0
	for _, r := range b {
		for ; r != 0; r &= r - 1 {
			n++
		}
	}
	return n
}

// Blank — пустой символ (пробел).
var Blank Bitmap

// Unknown — рамка для символов, которых нет в таблице.
var Unknown = compile([Rows]string{
	"#####",
	"#...#",
	"#...#",
	"#...#",
	"#...#",
	"#...#",
	"#####",
})

// table заполняется один раз при инициализации пакета и дальше только читается.
var table = map[rune]Bitmap{}

func init() {
	for r, rows := range source {
		table[r] = compile(rows)
	}
}

func compile(rows [Rows]string) Bitmap {
	var b Bitmap
	for i, row := range rows {
		for j := 0; j < Cols && j < len(row); j++ {
			if row[j] == '#' {
				b[i] |= 1 << (Cols - 1 - j)
			}
		}
	}
	return b
}

// Lookup возвращает битмап символа. Строчные буквы рисуются заглавными,
// пробельные символы — пустыми, неизвестные — рамкой.
func Lookup(r rune) Bitmap {
	if b, ok := table[r]; ok {
		return b
	}
	if unicode.IsSpace(r) {
		return Blank
	}
	if b, ok := table[unicode.ToUpper(r)]; ok {
		return b
	}
	return Unknown
}

// Has — есть ли символ в таблице (без учёта регистра).
func Has(r rune) bool {
	_, ok := table[unicode.ToUpper(r)]
	return ok
}
