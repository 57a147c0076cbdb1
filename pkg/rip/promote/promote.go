// Package promote implements the 4x4 neighborhood dot-size promoter: a
// dense enough neighborhood forces a non-max dot to the maximum dot size.
package promote

import "github.com/nocairip/rip/pkg/rip/halftone"

// denseThreshold is the minimum count of inked cells (out of 16) in a
// pixel's 4x4 window that triggers promotion to the maximum dot size.
const denseThreshold = 12

// Promote operates in place on dm. For every interior pixel (1 <= x <=
// W-3, 1 <= y <= H-3) that isn't already DotLarge, it counts inked
// (non-zero) cells in the 4x4 window rows y-1..y+2, cols x-1..x+2; if
// the count is >= 12 the pixel is promoted to DotLarge. Boundary cells
// are left untouched. Scan order is row-major and deterministic,
// required for byte-exact reproducibility against reference output --
// a promoted cell that was 0 becomes inked and counts toward the windows
// of pixels scanned after it, so a different order could change the
// result.
func Promote(dm *halftone.DotMap) {
	w, h := dm.Width, dm.Height
	if w < 4 || h < 4 {
		return
	}

	for y := 1; y <= h-3; y++ {
		for x := 1; x <= w-3; x++ {
			idx := y*w + x
			if dm.Dots[idx] == halftone.DotLarge {
				continue
			}

			count := 0
			for wy := y - 1; wy <= y+2; wy++ {
				row := wy * w
				for wx := x - 1; wx <= x+2; wx++ {
					if dm.Dots[row+wx] != halftone.DotNone {
						count++
					}
				}
			}

			if count >= denseThreshold {
				dm.Dots[idx] = halftone.DotLarge
			}
		}
	}
}
