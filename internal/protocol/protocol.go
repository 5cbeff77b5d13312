// Package protocol defines the JSON messages exchanged between the engine
// shell and render clients. The engine itself knows nothing about keys or
// pixels; clients map their input to these actions.
package protocol

import "encoding/json"

// Client -> server actions.
const (
	ActionSelectTool = "select_tool"
	ActionMoveCursor = "move_cursor"
	ActionPlace      = "place"
	ActionRotateBelt = "rotate_belt"
	ActionToggleMode = "toggle_mode"
	ActionSave       = "save"
)

// Server -> client events.
const (
	EventFullState = "full_state"
	EventTick      = "tick"
)

type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SelectToolPayload struct {
	Tool string `json:"tool"`
}

type MoveCursorPayload struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// TickSummary is the cheap per-tick broadcast.
type TickSummary struct {
	Tick          uint64 `json:"tick"`
	Money         uint64 `json:"money"`
	TotalExported uint64 `json:"totalExported"`
	TotalEarned   uint64 `json:"totalEarned"`
}

// StateView is the full render feed: everything the excluded rendering layer
// reads. Cells are sparse; anything absent is empty.
type StateView struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Money         uint64   `json:"money"`
	TotalExported uint64   `json:"totalExported"`
	TotalEarned   uint64   `json:"totalEarned"`
	Produced      []uint64 `json:"produced"`

	CursorX int    `json:"cursorX"`
	CursorY int    `json:"cursorY"`
	Tool    string `json:"tool"`
	BeltDir string `json:"beltDir"`

	Tick            uint64 `json:"tick"`
	AnimFrame       uint32 `json:"animFrame"`
	ExportFlash     uint32 `json:"exportFlash,omitempty"`
	LastExportValue uint64 `json:"lastExportValue,omitempty"`

	Machines []MachineView `json:"machines,omitempty"`
	Belts    []BeltView    `json:"belts,omitempty"`

	Log []string `json:"log,omitempty"`
}

type MachineView struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Kind string `json:"kind"`
	Mode string `json:"mode,omitempty"`

	Progress   uint32 `json:"progress"`
	RecipeTime uint32 `json:"recipeTime"`

	Input  []string `json:"input,omitempty"`
	Output []string `json:"output,omitempty"`

	Produced    uint64  `json:"produced"`
	Revenue     uint64  `json:"revenue,omitempty"`
	Utilization float64 `json:"utilization"`
}

type BeltView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Item   string `json:"item,omitempty"`
	Source string `json:"source,omitempty"`
}
