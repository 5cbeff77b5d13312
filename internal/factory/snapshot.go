package factory

import (
	"fmt"

	"tinyfactory/backend/internal/persistence/snapshot"
)

const snapshotVersion = 1

// ExportSnapshot captures the session as a versioned DTO.
func (s *State) ExportSnapshot() snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header:          snapshot.Header{Version: snapshotVersion, Tick: s.TotalTicks},
		Money:           s.Money,
		TotalExported:   s.TotalExported,
		TotalEarned:     s.TotalEarned,
		Produced:        append([]uint64(nil), s.Produced[:]...),
		CursorX:         s.CursorX,
		CursorY:         s.CursorY,
		Tool:            uint8(s.Tool),
		BeltDir:         uint8(s.BeltDir),
		Log:             append([]string(nil), s.Log...),
		AnimFrame:       s.AnimFrame,
		TotalTicks:      s.TotalTicks,
		ExportFlash:     s.ExportFlash,
		LastExportValue: s.LastExportValue,
	}
	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			c := &s.Grid[y][x]
			if m := c.Machine; m != nil {
				snap.Machines = append(snap.Machines, snapshot.MachineV1{
					X: x, Y: y,
					Kind:        uint8(m.Kind),
					Mode:        uint8(m.Mode),
					Input:       itemsToBytes(m.Input),
					Output:      itemsToBytes(m.Output),
					Progress:    m.Progress,
					Produced:    m.Produced,
					Revenue:     m.Revenue,
					ActiveTicks: m.ActiveTicks,
					TotalTicks:  m.TotalTicks,
				})
			}
			if b := c.Belt; b != nil {
				snap.Belts = append(snap.Belts, snapshot.BeltV1{
					X: x, Y: y,
					Item:      uint8(b.Item),
					HasItem:   b.HasItem,
					Source:    uint8(b.Source),
					HasSource: b.HasSource,
				})
			}
		}
	}
	return snap
}

// ImportSnapshot rebuilds a session from a snapshot, including the footprint
// parts around every machine anchor.
func ImportSnapshot(snap snapshot.SnapshotV1) (*State, error) {
	if snap.Header.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	s := NewState()
	s.Money = snap.Money
	s.TotalExported = snap.TotalExported
	s.TotalEarned = snap.TotalEarned
	for i, v := range snap.Produced {
		if i < NumItemKinds {
			s.Produced[i] = v
		}
	}
	s.CursorX = clamp(snap.CursorX, 0, GridW-1)
	s.CursorY = clamp(snap.CursorY, 0, GridH-1)
	s.Tool = Tool(snap.Tool)
	s.BeltDir = Direction(snap.BeltDir)
	if len(snap.Log) > 0 {
		s.Log = append([]string(nil), snap.Log...)
	}
	s.AnimFrame = snap.AnimFrame
	s.TotalTicks = snap.TotalTicks
	s.ExportFlash = snap.ExportFlash
	s.LastExportValue = snap.LastExportValue

	for _, mv := range snap.Machines {
		if !InBounds(mv.X, mv.Y) || !InBounds(mv.X+1, mv.Y+1) {
			return nil, fmt.Errorf("machine anchor out of bounds: (%d,%d)", mv.X, mv.Y)
		}
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				if !s.Grid[mv.Y+dy][mv.X+dx].Empty() {
					return nil, fmt.Errorf("machine footprints overlap at (%d,%d)", mv.X+dx, mv.Y+dy)
				}
			}
		}
		m := &Machine{
			Kind:        MachineKind(mv.Kind),
			Mode:        MinerMode(mv.Mode),
			Input:       bytesToItems(mv.Input),
			Output:      bytesToItems(mv.Output),
			Progress:    mv.Progress,
			Produced:    mv.Produced,
			Revenue:     mv.Revenue,
			ActiveTicks: mv.ActiveTicks,
			TotalTicks:  mv.TotalTicks,
		}
		s.Grid[mv.Y][mv.X] = Cell{Machine: m}
		s.Grid[mv.Y][mv.X+1] = Cell{Part: &Part{AnchorX: mv.X, AnchorY: mv.Y}}
		s.Grid[mv.Y+1][mv.X] = Cell{Part: &Part{AnchorX: mv.X, AnchorY: mv.Y}}
		s.Grid[mv.Y+1][mv.X+1] = Cell{Part: &Part{AnchorX: mv.X, AnchorY: mv.Y}}
	}
	for _, bv := range snap.Belts {
		if !InBounds(bv.X, bv.Y) {
			return nil, fmt.Errorf("belt out of bounds: (%d,%d)", bv.X, bv.Y)
		}
		if !s.Grid[bv.Y][bv.X].Empty() {
			return nil, fmt.Errorf("belt overlaps machine at (%d,%d)", bv.X, bv.Y)
		}
		s.Grid[bv.Y][bv.X] = Cell{Belt: &Belt{
			Item:      ItemKind(bv.Item),
			HasItem:   bv.HasItem,
			Source:    Direction(bv.Source),
			HasSource: bv.HasSource,
		}}
	}
	return s, nil
}

func itemsToBytes(items []ItemKind) []uint8 {
	if len(items) == 0 {
		return nil
	}
	out := make([]uint8, len(items))
	for i, it := range items {
		out[i] = uint8(it)
	}
	return out
}

func bytesToItems(raw []uint8) []ItemKind {
	if len(raw) == 0 {
		return nil
	}
	out := make([]ItemKind, len(raw))
	for i, b := range raw {
		out[i] = ItemKind(b)
	}
	return out
}
