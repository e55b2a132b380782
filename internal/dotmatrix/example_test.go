package dotmatrix_test

import (
	"fmt"

	"go-phosphor/internal/dotmatrix"
)

func ExampleOffsets() {
	fmt.Println(dotmatrix.Offsets([]rune("A B")))
	fmt.Println(dotmatrix.Offsets([]rune("AXB")))
	// Output:
	// [0 35 38]
	// [0 35 70]
}
