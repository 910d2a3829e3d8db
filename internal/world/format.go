package world

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

type vecString r2.Vec

func (v vecString) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// FormatVec renders a position for logs.
func FormatVec(v r2.Vec) string { return vecString(v).String() }
