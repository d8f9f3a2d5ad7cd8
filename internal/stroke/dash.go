package stroke

import "github.com/0xDB6/Avalonia/media"

// SplitDashes cuts a polyline into the "on" runs of a dash pattern.
// pattern alternates on/off lengths and must have even length with a
// positive total; phase shifts the pattern start along the line. The
// returned runs are open polylines to be stroked with caps.
func SplitDashes(pts []media.Point, closed bool, pattern []float64, phase float64) [][]media.Point {
	if len(pts) < 2 || len(pattern) == 0 {
		return nil
	}

	// Dash fields are exported, so a caller-built pattern can carry
	// negative entries; a negative remaining length would walk the
	// segment cursor backwards. Treat them as zero.
	for _, d := range pattern {
		if d < 0 {
			clamped := make([]float64, len(pattern))
			for i, v := range pattern {
				if v > 0 {
					clamped[i] = v
				}
			}
			pattern = clamped
			break
		}
	}

	total := 0.0
	for _, d := range pattern {
		total += d
	}
	if total <= 0 {
		return nil
	}

	if closed && pts[0] != pts[len(pts)-1] {
		pts = append(append([]media.Point{}, pts...), pts[0])
	}

	// Position within the pattern cycle.
	phase = remainder(phase, total)
	idx := 0
	remaining := pattern[idx]
	for phase > 0 {
		if phase < remaining {
			remaining -= phase
			break
		}
		phase -= remaining
		idx = (idx + 1) % len(pattern)
		remaining = pattern[idx]
	}
	on := idx%2 == 0

	var (
		runs    [][]media.Point
		current []media.Point
	)
	if on {
		current = append(current, pts[0])
	}

	flush := func() {
		if len(current) >= 2 {
			runs = append(runs, current)
		}
		current = nil
	}

	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		segLen := p0.Distance(p1)
		if segLen == 0 {
			continue
		}
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			boundary := p0.Lerp(p1, pos/segLen)
			if on {
				current = append(current, boundary)
				flush()
			} else {
				current = append(current, boundary)
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= segLen - pos
		if on {
			current = append(current, p1)
		}
	}
	flush()

	return runs
}

func remainder(v, period float64) float64 {
	v -= float64(int(v/period)) * period
	if v < 0 {
		v += period
	}
	return v
}
