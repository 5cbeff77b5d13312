package server

import (
	"tinyfactory/backend/internal/factory"
	"tinyfactory/backend/internal/protocol"
)

// buildView projects the session into the render DTO. Read-only; callers hold
// the session mutex.
func buildView(s *factory.State) protocol.StateView {
	view := protocol.StateView{
		Width:           factory.GridW,
		Height:          factory.GridH,
		Money:           s.Money,
		TotalExported:   s.TotalExported,
		TotalEarned:     s.TotalEarned,
		Produced:        append([]uint64(nil), s.Produced[:]...),
		CursorX:         s.CursorX,
		CursorY:         s.CursorY,
		Tool:            s.Tool.String(),
		BeltDir:         s.BeltDir.String(),
		Tick:            s.TotalTicks,
		AnimFrame:       s.AnimFrame,
		ExportFlash:     s.ExportFlash,
		LastExportValue: s.LastExportValue,
		Log:             append([]string(nil), s.Log...),
	}
	for y := 0; y < factory.GridH; y++ {
		for x := 0; x < factory.GridW; x++ {
			c := &s.Grid[y][x]
			if m := c.Machine; m != nil {
				mv := protocol.MachineView{
					X:           x,
					Y:           y,
					Kind:        m.Kind.String(),
					Progress:    m.Progress,
					RecipeTime:  m.Kind.RecipeTime(),
					Input:       itemNames(m.Input),
					Output:      itemNames(m.Output),
					Produced:    m.Produced,
					Revenue:     m.Revenue,
					Utilization: m.Utilization(),
				}
				if m.Kind == factory.Miner {
					mv.Mode = m.Mode.String()
				}
				view.Machines = append(view.Machines, mv)
			}
			if b := c.Belt; b != nil {
				bv := protocol.BeltView{X: x, Y: y}
				if b.HasItem {
					bv.Item = b.Item.String()
				}
				if b.HasSource {
					bv.Source = b.Source.String()
				}
				view.Belts = append(view.Belts, bv)
			}
		}
	}
	return view
}

func itemNames(items []factory.ItemKind) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}
