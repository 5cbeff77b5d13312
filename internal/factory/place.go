package factory

// Player commands: placement, deletion, mode toggles. All validation happens
// before any mutation; a failed command leaves the session untouched and
// returns false.

// Place attempts to apply the active tool at the cursor. Returns whether the
// command took effect.
func (s *State) Place() bool {
	x, y := s.CursorX, s.CursorY
	switch s.Tool {
	case ToolNone:
		return false
	case ToolDelete:
		return s.deleteAt(x, y)
	case ToolBelt:
		return s.placeBelt(x, y)
	default:
		kind, ok := s.Tool.MachineKind()
		if !ok {
			return false
		}
		return s.placeMachine(kind, x, y)
	}
}

// placeMachine writes a 2×2 machine anchored at (x, y). All four footprint
// cells are written together or not at all.
func (s *State) placeMachine(kind MachineKind, x, y int) bool {
	cost := kind.Cost()
	if s.Money < cost {
		s.AddLog("Not enough money!")
		return false
	}
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if !InBounds(x+dx, y+dy) || !s.Grid[y+dy][x+dx].Empty() {
				return false
			}
		}
	}
	s.Money -= cost
	s.Grid[y][x] = Cell{Machine: NewMachine(kind)}
	s.Grid[y][x+1] = Cell{Part: &Part{AnchorX: x, AnchorY: y}}
	s.Grid[y+1][x] = Cell{Part: &Part{AnchorX: x, AnchorY: y}}
	s.Grid[y+1][x+1] = Cell{Part: &Part{AnchorX: x, AnchorY: y}}
	s.Logf("Placed %s (-$%d)", kind, cost)
	if !s.hasAdjacentBelt(x, y) {
		s.AddLog("Hint: no belt adjacent yet")
	}
	return true
}

func (s *State) placeBelt(x, y int) bool {
	if s.Money < BeltCost {
		s.AddLog("Not enough money!")
		return false
	}
	if !s.Grid[y][x].Empty() {
		return false
	}
	s.Money -= BeltCost
	s.Grid[y][x] = Cell{Belt: &Belt{}}
	s.Logf("Placed belt %c", s.BeltDir.Arrow())
	// Convenience for laying straight runs: step the cursor along the current
	// belt direction.
	dx, dy := s.BeltDir.Delta()
	s.CursorX = clamp(s.CursorX+dx, 0, GridW-1)
	s.CursorY = clamp(s.CursorY+dy, 0, GridH-1)
	return true
}

// deleteAt removes whatever occupies (x, y). Machines refund half their cost
// and clear their whole footprint; belts refund a flat amount. Deleting an
// empty cell fails.
func (s *State) deleteAt(x, y int) bool {
	if ax, ay, ok := s.AnchorOf(x, y); ok {
		kind := s.Grid[ay][ax].Machine.Kind
		refund := kind.Cost() / 2
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				s.Grid[ay+dy][ax+dx] = Cell{}
			}
		}
		s.Money += refund
		s.Logf("Deleted %s (+$%d)", kind, refund)
		return true
	}
	if s.Grid[y][x].Belt != nil {
		s.Grid[y][x] = Cell{}
		s.Money += BeltRefund
		s.Logf("Deleted belt (+$%d)", uint64(BeltRefund))
		return true
	}
	return false
}

// ToggleMinerMode flips the Miner under the cursor between iron and copper.
// No-op on anything else.
func (s *State) ToggleMinerMode() {
	m := s.MachineAt(s.CursorX, s.CursorY)
	if m == nil || m.Kind != Miner {
		return
	}
	if m.Mode == ModeIron {
		m.Mode = ModeCopper
	} else {
		m.Mode = ModeIron
	}
	s.Logf("Miner mode: %s", m.Mode)
}

// hasAdjacentBelt reports whether any belt sits on the footprint perimeter of
// the machine anchored at (x, y).
func (s *State) hasAdjacentBelt(x, y int) bool {
	for _, p := range machinePerimeter {
		bx, by := x+p.dx, y+p.dy
		if InBounds(bx, by) && s.Grid[by][bx].Belt != nil {
			return true
		}
	}
	return false
}
