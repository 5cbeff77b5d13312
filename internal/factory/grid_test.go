package factory

import "testing"

func TestDirectionDeltas(t *testing.T) {
	cases := []struct {
		d      Direction
		dx, dy int
	}{
		{Right, 1, 0},
		{Down, 0, 1},
		{Left, -1, 0},
		{Up, 0, -1},
	}
	for _, c := range cases {
		dx, dy := c.d.Delta()
		if dx != c.dx || dy != c.dy {
			t.Errorf("%s delta = (%d,%d), want (%d,%d)", c.d, dx, dy, c.dx, c.dy)
		}
		if abs(dx)+abs(dy) != 1 {
			t.Errorf("%s delta is not a unit axis step", c.d)
		}
	}
}

func TestDirectionOppositeIsInvolution(t *testing.T) {
	for _, d := range []Direction{Right, Down, Left, Up} {
		if d.Opposite().Opposite() != d {
			t.Errorf("opposite(opposite(%s)) != %s", d, d)
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("%s and its opposite do not cancel", d)
		}
	}
}

func TestExportValueOrdering(t *testing.T) {
	if IronPlate.ExportValue() <= IronOre.ExportValue() {
		t.Error("iron plate should be worth more than iron ore")
	}
	if Gear.ExportValue() <= IronPlate.ExportValue() {
		t.Error("gear should be worth more than iron plate")
	}
	if CopperPlate.ExportValue() <= CopperOre.ExportValue() {
		t.Error("copper plate should be worth more than copper ore")
	}
	if Circuit.ExportValue() <= CopperPlate.ExportValue() {
		t.Error("circuit should be worth more than copper plate")
	}
}

func TestMachineAccepts(t *testing.T) {
	for _, item := range []ItemKind{IronOre, IronPlate, Gear, CopperOre, CopperPlate, Circuit} {
		if Miner.Accepts(item) {
			t.Errorf("miner should not accept %s", item)
		}
		if !Exporter.Accepts(item) {
			t.Errorf("exporter should accept %s", item)
		}
	}
	if !Smelter.Accepts(IronOre) || !Smelter.Accepts(CopperOre) {
		t.Error("smelter should accept both ores")
	}
	if Smelter.Accepts(IronPlate) {
		t.Error("smelter should not accept plates")
	}
	if !Assembler.Accepts(IronPlate) || Assembler.Accepts(CopperPlate) {
		t.Error("assembler should accept iron plate only")
	}
	if !Fabricator.Accepts(IronPlate) || !Fabricator.Accepts(CopperPlate) {
		t.Error("fabricator should accept both plates")
	}
	if Fabricator.Accepts(Gear) {
		t.Error("fabricator should not accept gears")
	}
}

func TestMinerModeOutput(t *testing.T) {
	if ModeIron.Output() != IronOre {
		t.Error("iron mode should produce iron ore")
	}
	if ModeCopper.Output() != CopperOre {
		t.Error("copper mode should produce copper ore")
	}
}

func TestNewMachine(t *testing.T) {
	m := NewMachine(Miner)
	if m.Kind != Miner || len(m.Input) != 0 || len(m.Output) != 0 || m.Progress != 0 {
		t.Errorf("fresh machine not empty: %+v", m)
	}
	if m.Mode != ModeIron {
		t.Error("fresh miner should default to iron mode")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
