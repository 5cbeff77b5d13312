package factory

import (
	"testing"

	"tinyfactory/backend/internal/persistence/snapshot"
)

func TestChainMinerToSmelter(t *testing.T) {
	s := NewState()
	putMachine(t, s, Miner, 0, 0)
	putBelt(t, s, 2, 0)
	putBelt(t, s, 3, 0)
	smelter := putMachine(t, s, Smelter, 4, 0)

	s.TickN(40)
	if s.Produced[IronPlate] == 0 {
		t.Fatalf("no iron plate after 40 ticks: smelter in=%v out=%v progress=%d",
			smelter.Input, smelter.Output, smelter.Progress)
	}
}

func TestChainMinerToExporterEarns(t *testing.T) {
	s := NewState()
	putMachine(t, s, Miner, 0, 0)
	putBelt(t, s, 2, 0)
	putBelt(t, s, 3, 0)
	putMachine(t, s, Exporter, 4, 0)
	start := s.Money

	s.TickN(60)
	if s.Money <= start {
		t.Fatalf("money = %d after 60 ticks, want growth past %d", s.Money, start)
	}
	if s.TotalExported == 0 || s.TotalEarned != s.Money-start {
		t.Errorf("totals = (%d exported, $%d earned), want earnings matching the money delta %d",
			s.TotalExported, s.TotalEarned, s.Money-start)
	}
}

func TestTickCountersAdvance(t *testing.T) {
	s := NewState()
	s.TickN(7)
	if s.TotalTicks != 7 {
		t.Errorf("total ticks = %d, want 7", s.TotalTicks)
	}
	if s.AnimFrame != 7 {
		t.Errorf("anim frame = %d, want 7", s.AnimFrame)
	}
}

func TestExportFlashDecays(t *testing.T) {
	s := NewState()
	m := putMachine(t, s, Exporter, 0, 0)
	m.Input = []ItemKind{IronOre}

	s.TickN(5)
	if s.ExportFlash == 0 {
		t.Fatal("flash not lit by the export")
	}
	lit := s.ExportFlash
	s.TickN(uint32(lit))
	if s.ExportFlash != 0 {
		t.Errorf("flash = %d after %d idle ticks, want 0", s.ExportFlash, lit)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewState()
	miner := putMachine(t, s, Miner, 0, 0)
	miner.Mode = ModeCopper
	putBelt(t, s, 2, 0)
	putBelt(t, s, 3, 0)
	putMachine(t, s, Exporter, 4, 0)
	s.Tool = ToolBelt
	s.BeltDir = Down
	s.CursorX, s.CursorY = 7, 9
	s.TickN(33)

	snap := s.ExportSnapshot()
	got, err := ImportSnapshot(snap)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if got.Money != s.Money || got.TotalExported != s.TotalExported || got.TotalEarned != s.TotalEarned {
		t.Errorf("totals differ: got (%d,%d,%d), want (%d,%d,%d)",
			got.Money, got.TotalExported, got.TotalEarned,
			s.Money, s.TotalExported, s.TotalEarned)
	}
	if got.TotalTicks != s.TotalTicks || got.AnimFrame != s.AnimFrame {
		t.Errorf("clocks differ: got (%d,%d), want (%d,%d)",
			got.TotalTicks, got.AnimFrame, s.TotalTicks, s.AnimFrame)
	}
	if got.Tool != ToolBelt || got.BeltDir != Down || got.CursorX != 7 || got.CursorY != 9 {
		t.Errorf("cursor state differs: tool=%v dir=%v at (%d,%d)",
			got.Tool, got.BeltDir, got.CursorX, got.CursorY)
	}
	if got.Produced != s.Produced {
		t.Errorf("produced counters differ: %v vs %v", got.Produced, s.Produced)
	}

	rm := got.Grid[0][0].Machine
	if rm == nil || rm.Kind != Miner || rm.Mode != ModeCopper {
		t.Fatal("miner not restored at its anchor")
	}
	if rm.Produced != miner.Produced || rm.Progress != miner.Progress {
		t.Errorf("miner stats differ: got (%d,%d), want (%d,%d)",
			rm.Produced, rm.Progress, miner.Produced, miner.Progress)
	}
	if _, _, ok := got.AnchorOf(1, 1); !ok {
		t.Error("footprint parts not rebuilt around the anchor")
	}

	ob := s.Grid[0][2].Belt
	nb := got.Grid[0][2].Belt
	if nb == nil || nb.HasItem != ob.HasItem || nb.Item != ob.Item ||
		nb.HasSource != ob.HasSource || nb.Source != ob.Source {
		t.Errorf("belt (2,0) differs: got %+v, want %+v", nb, ob)
	}

	// Both copies must keep simulating identically.
	s.TickN(20)
	got.TickN(20)
	if got.Money != s.Money || got.TotalExported != s.TotalExported {
		t.Errorf("divergence after resume: got (%d,%d), want (%d,%d)",
			got.Money, got.TotalExported, s.Money, s.TotalExported)
	}
}

func TestSnapshotRejectsBadVersion(t *testing.T) {
	s := NewState()
	snap := s.ExportSnapshot()
	snap.Header.Version = 99
	if _, err := ImportSnapshot(snap); err == nil {
		t.Fatal("version 99 accepted")
	}
}

func TestSnapshotRejectsOutOfBoundsMachine(t *testing.T) {
	s := NewState()
	snap := s.ExportSnapshot()
	snap.Machines = append(snap.Machines, snapMachineAt(GridW-1, GridH-1))
	if _, err := ImportSnapshot(snap); err == nil {
		t.Fatal("overhanging machine accepted")
	}
}

func TestSnapshotRejectsOverlappingMachines(t *testing.T) {
	s := NewState()
	snap := s.ExportSnapshot()
	snap.Machines = append(snap.Machines, snapMachineAt(0, 0), snapMachineAt(1, 1))
	if _, err := ImportSnapshot(snap); err == nil {
		t.Fatal("overlapping footprints accepted")
	}
}

func snapMachineAt(x, y int) snapshot.MachineV1 {
	return snapshot.MachineV1{X: x, Y: y, Kind: uint8(Miner)}
}
