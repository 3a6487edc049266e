package render

// DrawLine rasterizes the segment (x0, y0)–(x1, y1) into dst with
// Bresenham's algorithm, using integer arithmetic only.
//
// Exactly max(|dx|, |dy|)+1 pixels are written, each once, and they form an
// 8-connected path. The pixel set does not depend on which endpoint comes
// first. Pixels outside dst are left to its bounds check.
func DrawLine(dst PixelSink, x0, y0, x1, y1 int, c Color) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		// Iterate along y instead so every major step writes a pixel.
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	ystep := 1
	if dy < 0 {
		ystep = -1
	}
	derr2 := 2 * abs(dy)
	err2 := 0

	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			dst.Set(y, x, c)
		} else {
			dst.Set(x, y, c)
		}
		err2 += derr2
		if err2 > dx {
			y += ystep
			err2 -= 2 * dx
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
