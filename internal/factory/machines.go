package factory

// tickMachines runs one production step for every machine, scanning anchors in
// row-major order.
//
// The progress rules are deliberately asymmetric and observable: a machine
// blocked by a full output buffer keeps its accumulated progress (work in
// flight is preserved), while a machine blocked by empty or insufficient input
// has its progress reset to 0.
func (s *State) tickMachines() {
	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			if m := s.Grid[y][x].Machine; m != nil {
				s.tickMachine(m)
			}
		}
	}
}

func (s *State) tickMachine(m *Machine) {
	m.TotalTicks++
	produced := false

	switch m.Kind {
	case Miner:
		if len(m.Output) < MaxBuffer {
			m.Progress++
			if m.Progress >= m.Kind.RecipeTime() {
				m.Progress = 0
				s.produce(m, m.Mode.Output())
				produced = true
			}
		}

	case Smelter:
		if len(m.Input) == 0 {
			m.Progress = 0
			break
		}
		out, ok := smeltOutput(m.Input[0])
		if !ok {
			// Invalid head item: never consumed, blocks progress at 0.
			m.Progress = 0
			break
		}
		if len(m.Output) < MaxBuffer {
			m.Progress++
			if m.Progress >= m.Kind.RecipeTime() {
				m.Progress = 0
				m.Input = m.Input[1:]
				s.produce(m, out)
				produced = true
			}
		}

	case Assembler:
		if len(m.Input) == 0 {
			m.Progress = 0
			break
		}
		if m.Input[0] != IronPlate {
			m.Progress = 0
			break
		}
		if len(m.Output) < MaxBuffer {
			m.Progress++
			if m.Progress >= m.Kind.RecipeTime() {
				m.Progress = 0
				m.Input = m.Input[1:]
				s.produce(m, Gear)
				produced = true
			}
		}

	case Fabricator:
		// Needs one IronPlate and one CopperPlate present simultaneously,
		// in any buffer order.
		ironIdx := indexOf(m.Input, IronPlate)
		copperIdx := indexOf(m.Input, CopperPlate)
		if ironIdx < 0 || copperIdx < 0 {
			m.Progress = 0
			break
		}
		if len(m.Output) < MaxBuffer {
			m.Progress++
			if m.Progress >= m.Kind.RecipeTime() {
				m.Progress = 0
				m.Input = removeTwo(m.Input, ironIdx, copperIdx)
				s.produce(m, Circuit)
				produced = true
			}
		}

	case Exporter:
		if len(m.Input) == 0 {
			m.Progress = 0
			break
		}
		m.Progress++
		if m.Progress >= m.Kind.RecipeTime() {
			m.Progress = 0
			item := m.Input[0]
			m.Input = m.Input[1:]
			value := item.ExportValue()
			s.Money += value
			s.TotalExported++
			s.TotalEarned += value
			m.Produced++
			m.Revenue += value
			s.ExportFlash = exportFlashTicks
			s.LastExportValue = value
			produced = true
		}
	}

	if m.Progress > 0 || produced {
		m.ActiveTicks++
	}
}

// produce appends one finished item to the machine's output buffer and bumps
// the session counters.
func (s *State) produce(m *Machine, item ItemKind) {
	m.Output = append(m.Output, item)
	m.Produced++
	s.Produced[item]++
}

func indexOf(items []ItemKind, want ItemKind) int {
	for i, it := range items {
		if it == want {
			return i
		}
	}
	return -1
}

// removeTwo drops the items at indices i and j, preserving the order of the
// rest.
func removeTwo(items []ItemKind, i, j int) []ItemKind {
	if i > j {
		i, j = j, i
	}
	out := items[:0]
	for k, it := range items {
		if k == i || k == j {
			continue
		}
		out = append(out, it)
	}
	return out
}
