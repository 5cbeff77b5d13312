// Package snapshot defines the versioned on-disk form of a factory session and
// its codec: a JSON header line followed by a gob body, inside a zstd stream.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	Tick    uint64 `json:"tick"`
}

// SnapshotV1 captures everything needed to resume a session: grid occupants
// (sparse), session totals, and cursor/tool state.
type SnapshotV1 struct {
	Header Header `json:"header"`

	Money         uint64   `json:"money"`
	TotalExported uint64   `json:"total_exported"`
	TotalEarned   uint64   `json:"total_earned"`
	Produced      []uint64 `json:"produced"`

	CursorX int   `json:"cursor_x"`
	CursorY int   `json:"cursor_y"`
	Tool    uint8 `json:"tool"`
	BeltDir uint8 `json:"belt_dir"`

	Log []string `json:"log,omitempty"`

	AnimFrame       uint32 `json:"anim_frame"`
	TotalTicks      uint64 `json:"total_ticks"`
	ExportFlash     uint32 `json:"export_flash,omitempty"`
	LastExportValue uint64 `json:"last_export_value,omitempty"`

	Machines []MachineV1 `json:"machines,omitempty"`
	Belts    []BeltV1    `json:"belts,omitempty"`
}

// MachineV1 is a machine at its anchor cell; footprint parts are rebuilt on
// import.
type MachineV1 struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Kind     uint8   `json:"kind"`
	Mode     uint8   `json:"mode,omitempty"`
	Input    []uint8 `json:"input,omitempty"`
	Output   []uint8 `json:"output,omitempty"`
	Progress uint32  `json:"progress,omitempty"`

	Produced    uint64 `json:"produced,omitempty"`
	Revenue     uint64 `json:"revenue,omitempty"`
	ActiveTicks uint64 `json:"active_ticks,omitempty"`
	TotalTicks  uint64 `json:"total_ticks,omitempty"`
}

type BeltV1 struct {
	X         int   `json:"x"`
	Y         int   `json:"y"`
	Item      uint8 `json:"item,omitempty"`
	HasItem   bool  `json:"has_item,omitempty"`
	Source    uint8 `json:"source,omitempty"`
	HasSource bool  `json:"has_source,omitempty"`
}

func Write(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriter(enc)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func Read(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	// Header line is advisory; the gob body carries it too.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
