package factory

// TickN advances the simulation by n discrete steps.
func (s *State) TickN(n uint32) {
	for i := uint32(0); i < n; i++ {
		s.tick()
	}
	s.AnimFrame += n
}

// tick runs one simulation step: machines, then belt routing, then output
// distribution, strictly in that order.
func (s *State) tick() {
	s.tickMachines()
	s.routeBelts()
	s.distributeOutputs()
	s.TotalTicks++
	if s.ExportFlash > 0 {
		s.ExportFlash--
	}
}
