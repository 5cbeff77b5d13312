package factory

// Belt auto-routing. Runs after machine processing as a read-then-apply two
// pass: intents are collected against the pre-move grid, then committed. A
// single in-place pass would let an item move twice in one tick depending on
// scan order.

type beltIntent struct {
	fromX, fromY int
	toX, toY     int
}

// routeBelts moves items already sitting on belts. Machine-feed intents commit
// before belt-to-belt moves; conflicting moves onto the same cell resolve
// first-wins in row-major scan order, the loser stays put for this tick.
func (s *State) routeBelts() {
	var feeds, moves []beltIntent

	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			b := s.Grid[y][x].Belt
			if b == nil || !b.HasItem {
				continue
			}
			if it, feed, ok := s.beltIntent(x, y, b); ok {
				if feed {
					feeds = append(feeds, it)
				} else {
					moves = append(moves, it)
				}
			}
		}
	}

	// Machine feeds first. Capacity is rechecked at apply time: several belts
	// may have targeted the same machine this tick.
	for _, it := range feeds {
		b := s.Grid[it.fromY][it.fromX].Belt
		m := s.Grid[it.toY][it.toX].Machine
		if b == nil || !b.HasItem || m == nil || len(m.Input) >= MaxBuffer {
			continue
		}
		m.Input = append(m.Input, b.Item)
		// The source direction stays behind as a flow hint.
		b.HasItem = false
	}

	claimed := make(map[[2]int]bool, len(moves))
	for _, it := range moves {
		key := [2]int{it.toX, it.toY}
		if claimed[key] {
			continue
		}
		src := s.Grid[it.fromY][it.fromX].Belt
		dst := s.Grid[it.toY][it.toX].Belt
		if src == nil || !src.HasItem || dst == nil || dst.HasItem {
			continue
		}
		dst.Item = src.Item
		dst.HasItem = true
		dst.Source = directionBetween(it.toX, it.toY, it.fromX, it.fromY)
		dst.HasSource = true
		src.HasItem = false
		claimed[key] = true
	}
}

// beltIntent computes where the item on the belt at (x, y) wants to go this
// tick. For each preferred direction in order: an adjacent machine that
// accepts the item and has input room wins; otherwise an adjacent empty belt;
// otherwise the next direction. feed reports a machine-feed intent, whose
// target is the machine's anchor cell.
func (s *State) beltIntent(x, y int, b *Belt) (it beltIntent, feed, ok bool) {
	for _, d := range beltPreference(b) {
		dx, dy := d.Delta()
		nx, ny := x+dx, y+dy
		if !InBounds(nx, ny) {
			continue
		}
		if ax, ay, isMachine := s.AnchorOf(nx, ny); isMachine {
			m := s.Grid[ay][ax].Machine
			if m.Kind.Accepts(b.Item) && len(m.Input) < MaxBuffer {
				return beltIntent{x, y, ax, ay}, true, true
			}
			continue
		}
		if nb := s.Grid[ny][nx].Belt; nb != nil && !nb.HasItem {
			return beltIntent{x, y, nx, ny}, false, true
		}
	}
	return beltIntent{}, false, false
}

// beltPreference orders candidate directions for a belt's item. With a
// remembered source, forward (opposite of source) comes first, then the two
// perpendicular directions; the source itself is never retried. Without one,
// the fixed Right, Down, Left, Up order applies.
func beltPreference(b *Belt) []Direction {
	if !b.HasSource {
		return []Direction{Right, Down, Left, Up}
	}
	forward := b.Source.Opposite()
	dirs := make([]Direction, 0, 3)
	dirs = append(dirs, forward)
	for _, d := range []Direction{Right, Down, Left, Up} {
		if d != forward && d != b.Source {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// directionBetween returns the direction pointing from (fromX, fromY) toward
// the orthogonally adjacent (toX, toY).
func directionBetween(fromX, fromY, toX, toY int) Direction {
	switch {
	case toX > fromX:
		return Right
	case toX < fromX:
		return Left
	case toY > fromY:
		return Down
	default:
		return Up
	}
}
