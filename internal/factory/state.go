package factory

import "fmt"

// Tool is what the player is currently placing.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolMiner
	ToolSmelter
	ToolAssembler
	ToolExporter
	ToolFabricator
	ToolBelt
	ToolDelete
)

func (t Tool) String() string {
	switch t {
	case ToolMiner:
		return "miner"
	case ToolSmelter:
		return "smelter"
	case ToolAssembler:
		return "assembler"
	case ToolExporter:
		return "exporter"
	case ToolFabricator:
		return "fabricator"
	case ToolBelt:
		return "belt"
	case ToolDelete:
		return "delete"
	default:
		return "none"
	}
}

// MachineKind maps a machine-placement tool to its kind.
func (t Tool) MachineKind() (MachineKind, bool) {
	switch t {
	case ToolMiner:
		return Miner, true
	case ToolSmelter:
		return Smelter, true
	case ToolAssembler:
		return Assembler, true
	case ToolExporter:
		return Exporter, true
	case ToolFabricator:
		return Fabricator, true
	default:
		return 0, false
	}
}

const (
	// StartingMoney is the default bankroll of a fresh session.
	StartingMoney = 50
	// LogMax caps the message log; the oldest entry is evicted beyond it.
	LogMax = 30

	exportFlashTicks = 5
)

// State is the whole factory session: the grid plus session totals, cursor and
// tool state, and the message log. It is single-threaded; the driving shell
// serializes ticks and commands.
type State struct {
	// Grid is indexed [y][x].
	Grid [][]Cell

	Money         uint64
	TotalExported uint64
	TotalEarned   uint64
	Produced      [NumItemKinds]uint64

	CursorX, CursorY int
	Tool             Tool
	BeltDir          Direction

	Log []string

	AnimFrame       uint32
	TotalTicks      uint64
	ExportFlash     uint32
	LastExportValue uint64
}

// NewState returns a fresh session with an empty grid.
func NewState() *State {
	grid := make([][]Cell, GridH)
	for y := range grid {
		grid[y] = make([]Cell, GridW)
	}
	s := &State{
		Grid:    grid,
		Money:   StartingMoney,
		BeltDir: Right,
	}
	s.AddLog("Welcome to Tiny Factory!")
	return s
}

// AddLog appends a message, evicting the oldest beyond LogMax.
func (s *State) AddLog(text string) {
	s.Log = append(s.Log, text)
	if len(s.Log) > LogMax {
		s.Log = s.Log[1:]
	}
}

func (s *State) Logf(format string, args ...any) {
	s.AddLog(fmt.Sprintf(format, args...))
}

// AnchorOf resolves any of a machine's four cells to its anchor coordinate.
func (s *State) AnchorOf(x, y int) (int, int, bool) {
	c := &s.Grid[y][x]
	if c.Machine != nil {
		return x, y, true
	}
	if c.Part != nil {
		return c.Part.AnchorX, c.Part.AnchorY, true
	}
	return 0, 0, false
}

// MachineAt returns the machine occupying (x, y), resolving footprint parts to
// their anchor. Nil if the cell is not part of a machine.
func (s *State) MachineAt(x, y int) *Machine {
	ax, ay, ok := s.AnchorOf(x, y)
	if !ok {
		return nil
	}
	return s.Grid[ay][ax].Machine
}

// MoveCursor translates the cursor by a signed delta, clamped to grid bounds.
// A unit move also re-aims the belt-placement direction to match, so laying a
// run of belts follows the cursor naturally.
func (s *State) MoveCursor(dx, dy int) {
	switch {
	case dx == 1 && dy == 0:
		s.BeltDir = Right
	case dx == -1 && dy == 0:
		s.BeltDir = Left
	case dx == 0 && dy == 1:
		s.BeltDir = Down
	case dx == 0 && dy == -1:
		s.BeltDir = Up
	}
	s.CursorX = clamp(s.CursorX+dx, 0, GridW-1)
	s.CursorY = clamp(s.CursorY+dy, 0, GridH-1)
}

// RotateBelt cycles the belt-placement direction clockwise. Only subsequently
// placed belts are affected.
func (s *State) RotateBelt() {
	s.BeltDir = (s.BeltDir + 1) % 4
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
