package geometry

// Scale is the viewport ratio between a displayed surface and the native
// coordinate space behind it. It is derived per draw, never stored.
type Scale struct {
	X float64
	Y float64
}

// UnitScale maps coordinates through unchanged.
var UnitScale = Scale{X: 1, Y: 1}

// ScaleFor derives the viewport scale from a displayed size and a native
// size. Zero native dimensions yield the unit scale so a draw issued before
// video metadata arrives stays harmless.
func ScaleFor(displayW, displayH, nativeW, nativeH float64) Scale {
	if nativeW <= 0 || nativeH <= 0 {
		return UnitScale
	}
	return Scale{X: displayW / nativeW, Y: displayH / nativeH}
}

// Apply maps a native-space point into the displayed surface.
func (s Scale) Apply(p Point) Point {
	return Point{X: p.X * s.X, Y: p.Y * s.Y}
}
