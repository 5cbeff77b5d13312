package factory

// Grid dimensions and shared limits.
const (
	GridW = 40
	GridH = 30

	// MaxBuffer bounds every machine's input and output buffer.
	MaxBuffer = 5

	BeltCost   = 2
	BeltRefund = 1
)

// Direction is a cardinal belt direction.
type Direction uint8

const (
	Right Direction = iota
	Down
	Left
	Up
)

// Delta returns the unit (dx, dy) step for this direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, -1
	}
}

// Opposite returns the reverse direction. Opposite is its own inverse.
func (d Direction) Opposite() Direction {
	switch d {
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Down
	}
}

// Arrow returns the display glyph for this direction.
func (d Direction) Arrow() rune {
	switch d {
	case Right:
		return '>'
	case Down:
		return 'v'
	case Left:
		return '<'
	default:
		return '^'
	}
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "up"
	}
}

// ItemKind identifies an item flowing through the factory.
type ItemKind uint8

const (
	IronOre ItemKind = iota
	IronPlate
	Gear
	CopperOre
	CopperPlate
	Circuit

	NumItemKinds = 6
)

func (k ItemKind) String() string {
	switch k {
	case IronOre:
		return "iron_ore"
	case IronPlate:
		return "iron_plate"
	case Gear:
		return "gear"
	case CopperOre:
		return "copper_ore"
	case CopperPlate:
		return "copper_plate"
	default:
		return "circuit"
	}
}

// ExportValue returns the revenue earned when an Exporter consumes this item.
// Processed items are strictly worth more than their inputs.
func (k ItemKind) ExportValue() uint64 {
	switch k {
	case IronOre:
		return 1
	case IronPlate:
		return 5
	case Gear:
		return 20
	case CopperOre:
		return 2
	case CopperPlate:
		return 8
	default:
		return 50
	}
}

// MachineKind identifies a machine type.
type MachineKind uint8

const (
	Miner MachineKind = iota
	Smelter
	Assembler
	Exporter
	Fabricator
)

func (k MachineKind) String() string {
	switch k {
	case Miner:
		return "Miner"
	case Smelter:
		return "Smelter"
	case Assembler:
		return "Assembler"
	case Exporter:
		return "Exporter"
	default:
		return "Fabricator"
	}
}

// Cost is the money deducted when placing this machine.
func (k MachineKind) Cost() uint64 {
	switch k {
	case Miner:
		return 10
	case Smelter:
		return 25
	case Assembler:
		return 50
	case Exporter:
		return 15
	default:
		return 75
	}
}

// RecipeTime is the number of ticks to produce one output unit.
func (k MachineKind) RecipeTime() uint32 {
	switch k {
	case Miner:
		return 10
	case Smelter:
		return 15
	case Assembler:
		return 20
	case Exporter:
		return 5
	default:
		return 25
	}
}

// Accepts reports whether a machine of this kind takes item into its input
// buffer. Miners have no input port; Exporters take anything.
func (k MachineKind) Accepts(item ItemKind) bool {
	switch k {
	case Miner:
		return false
	case Smelter:
		return item == IronOre || item == CopperOre
	case Assembler:
		return item == IronPlate
	case Exporter:
		return true
	default:
		return item == IronPlate || item == CopperPlate
	}
}

// smeltOutput maps an ore to its plate. The Smelter inspects its input head to
// decide what it is producing; anything that is not an ore blocks it.
func smeltOutput(in ItemKind) (ItemKind, bool) {
	switch in {
	case IronOre:
		return IronPlate, true
	case CopperOre:
		return CopperPlate, true
	default:
		return 0, false
	}
}

// MinerMode selects which ore a Miner produces.
type MinerMode uint8

const (
	ModeIron MinerMode = iota
	ModeCopper
)

// Output returns the ore produced in this mode.
func (m MinerMode) Output() ItemKind {
	if m == ModeCopper {
		return CopperOre
	}
	return IronOre
}

func (m MinerMode) String() string {
	if m == ModeCopper {
		return "copper"
	}
	return "iron"
}

// Machine is the record stored at a machine's anchor cell.
type Machine struct {
	Kind MachineKind
	// Mode only matters for Miners.
	Mode MinerMode
	// Input and Output are FIFO buffers, each capped at MaxBuffer.
	Input  []ItemKind
	Output []ItemKind
	// Progress counts ticks accumulated toward the next production cycle.
	Progress uint32

	// Lifetime stats.
	Produced    uint64
	Revenue     uint64
	ActiveTicks uint64
	TotalTicks  uint64
}

// NewMachine returns a machine with empty buffers and zero progress.
func NewMachine(kind MachineKind) *Machine {
	return &Machine{Kind: kind}
}

// Utilization is the fraction of this machine's lifetime it spent working.
func (m *Machine) Utilization() float64 {
	if m.TotalTicks == 0 {
		return 0
	}
	return float64(m.ActiveTicks) / float64(m.TotalTicks)
}

// Belt holds at most one in-transit item plus the direction the current (or
// most recent) occupant arrived from. The source direction outlives the item so
// output distribution can tell input belts from output belts.
type Belt struct {
	Item      ItemKind
	HasItem   bool
	Source    Direction
	HasSource bool
}

// Part is a back-reference from a non-anchor footprint cell to its anchor.
type Part struct {
	AnchorX, AnchorY int
}

// Cell is one grid square. At most one of the pointers is non-nil; all nil
// means empty. Machine data lives only at the anchor; the other three cells of
// a 2×2 footprint hold Parts pointing at it.
type Cell struct {
	Machine *Machine
	Part    *Part
	Belt    *Belt
}

// Empty reports whether nothing occupies this cell.
func (c *Cell) Empty() bool {
	return c.Machine == nil && c.Part == nil && c.Belt == nil
}

// InBounds reports whether (x, y) is on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < GridW && y < GridH
}
