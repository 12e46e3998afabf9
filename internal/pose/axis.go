package pose

import (
	"fmt"
	"strings"
)

// Axis selects one spatial axis.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func (a Axis) valid() bool {
	return a >= X && a <= Z
}

// ParseAxis accepts "x", "y" or "z" in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, fmt.Errorf("pose: parse axis %q: %w", s, ErrInvalidAxis)
}
