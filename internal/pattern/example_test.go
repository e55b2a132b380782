package pattern_test

import (
	"fmt"

	"go-phosphor/internal/pattern"
)

func ExampleCalculator_PixelTiming() {
	c := pattern.NewCalculator(1)
	c.PreCalculate(pattern.Sequential, 2)

	// второй символ, верхняя строка, средний столбец
	t := c.PixelTiming(1, 0, 2, pattern.Sequential, 15)
	fmt.Println(t.Start, t.End)

	// в обратном порядке левый верхний пиксель загорается последним
	t = c.PixelTiming(0, 0, 0, pattern.Reverse, 15)
	fmt.Println(t.Start, t.End)
	// Output:
	// 555 570
	// 510 525
}
