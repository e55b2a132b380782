package surface

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// HalfBlock — верхняя половина ячейки: цвет символа — верхний пиксель, фон — нижний.
const HalfBlock = '▀'

// Terminal выводит растровый кадр на экран tcell: одна ячейка — два пикселя по вертикали.
type Terminal struct {
	screen tcell.Screen
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// PixelSize — размер растра, который ровно ложится на экран (ширина, высота*2).
func (t *Terminal) PixelSize() (int, int) {
	cols, rows := t.screen.Size()
	return cols, rows * 2
}

// Present переносит img в ячейки экрана, масштабируя выборкой по центрам.
// Show вызывает хост.
func (t *Terminal) Present(img image.Image) {
	cols, rows := t.screen.Size()
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if cols <= 0 || rows <= 0 || srcW == 0 || srcH == 0 {
		return
	}
	gridH := rows * 2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sx := b.Min.X + (x*srcW+srcW/2)/cols
			top := sample(img, sx, b.Min.Y+((2*y)*srcH+srcH/2)/gridH)
			bottom := sample(img, sx, b.Min.Y+((2*y+1)*srcH+srcH/2)/gridH)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, y, HalfBlock, nil, style)
		}
	}
}

func sample(img image.Image, x, y int) color.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.RGBAAt(x, y)
	}
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
