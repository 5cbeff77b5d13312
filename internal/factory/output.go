package factory

// Output distribution: after belt routing, each machine with finished output
// pushes its oldest item onto the first qualifying empty belt around its
// footprint. Belts that are actively feeding the machine never qualify, so
// output cannot loop back into its own supply line.

// perimCell is a footprint-relative perimeter offset plus the direction a belt
// there would remember as its source (pointing back into the footprint).
// Diagonal corners of the ring are excluded: no orthogonal projection connects
// them to the footprint.
type perimCell struct {
	dx, dy int
	back   Direction
}

// machinePerimeter lists the edge-adjacent ring around a 2×2 footprint in
// row-major order.
var machinePerimeter = []perimCell{
	{0, -1, Down}, {1, -1, Down},
	{-1, 0, Right}, {2, 0, Left},
	{-1, 1, Right}, {2, 1, Left},
	{0, 2, Up}, {1, 2, Up},
}

func (s *State) distributeOutputs() {
	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			m := s.Grid[y][x].Machine
			if m == nil || m.Kind == Exporter || len(m.Output) == 0 {
				continue
			}
			s.pushOutput(m, x, y)
		}
	}
}

func (s *State) pushOutput(m *Machine, ax, ay int) {
	for _, p := range machinePerimeter {
		bx, by := ax+p.dx, ay+p.dy
		if !InBounds(bx, by) {
			continue
		}
		b := s.Grid[by][bx].Belt
		if b == nil || b.HasItem {
			continue
		}
		if s.feedsFootprint(b, bx, by, ax, ay) {
			continue
		}
		b.Item = m.Output[0]
		b.HasItem = true
		b.Source = p.back
		b.HasSource = true
		m.Output = m.Output[1:]
		return
	}
}

// feedsFootprint reports whether the belt at (bx, by) is an input belt for the
// machine anchored at (ax, ay): its remembered source's forward projection
// lands back inside the 2×2 footprint.
func (s *State) feedsFootprint(b *Belt, bx, by, ax, ay int) bool {
	if !b.HasSource {
		return false
	}
	dx, dy := b.Source.Opposite().Delta()
	fx, fy := bx+dx, by+dy
	return fx >= ax && fx <= ax+1 && fy >= ay && fy <= ay+1
}
