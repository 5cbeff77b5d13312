// Package server is the shell around the factory engine: a websocket feed of
// render state plus the input layer that maps client actions onto engine
// commands. The engine is single-threaded; everything here funnels through one
// mutex so ticks and commands never overlap.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tinyfactory/backend/internal/config"
	"tinyfactory/backend/internal/factory"
	"tinyfactory/backend/internal/persistence/indexdb"
	"tinyfactory/backend/internal/persistence/snapshot"
	"tinyfactory/backend/internal/protocol"
)

type Server struct {
	log     *log.Logger
	cfg     config.Config
	dataDir string
	// index may be nil when indexing is disabled.
	index *indexdb.Index

	hub      *Hub
	upgrader websocket.Upgrader

	mu    sync.Mutex
	state *factory.State
}

func New(state *factory.State, cfg config.Config, dataDir string, index *indexdb.Index, logger *log.Logger) *Server {
	return &Server{
		log:     logger,
		cfg:     cfg,
		dataDir: dataDir,
		index:   index,
		hub:     newHub(logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // dev default
		},
		state: state,
	}
}

// Start launches the hub and the tick loop.
func (s *Server) Start() {
	go s.hub.run()
	go s.tickLoop()
}

func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := &Client{
			id:   ClientID(uuid.New().String()),
			conn: conn,
			send: make(chan []byte, 128),
		}
		s.hub.register <- c
		go c.writer()
		go s.reader(c)
		s.sendFullState(c)
	}
}

func (s *Server) tickLoop() {
	interval := time.Second / time.Duration(s.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	for range ticker.C {
		s.mu.Lock()
		s.state.TickN(1)
		if n := s.cfg.SnapshotEveryTicks; n > 0 && s.state.TotalTicks%uint64(n) == 0 {
			if err := s.saveLocked(); err != nil {
				s.log.Printf("autosave: %v", err)
			}
		}
		summary := protocol.TickSummary{
			Tick:          s.state.TotalTicks,
			Money:         s.state.Money,
			TotalExported: s.state.TotalExported,
			TotalEarned:   s.state.TotalEarned,
		}
		view := buildView(s.state)
		s.mu.Unlock()

		s.announce(protocol.EventTick, summary)
		s.announce(protocol.EventFullState, view)
	}
}

func (s *Server) reader(c *Client) {
	defer func() {
		s.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var env protocol.Envelope
		if json.Unmarshal(data, &env) != nil {
			continue
		}
		s.dispatch(c, env)
	}
}

// dispatch applies one client action to the session. Malformed or unknown
// envelopes are dropped; the engine signals failures through its own log.
func (s *Server) dispatch(c *Client, env protocol.Envelope) {
	s.mu.Lock()
	changed := false
	switch env.Type {
	case protocol.ActionSelectTool:
		var p protocol.SelectToolPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			if tool, ok := parseTool(p.Tool); ok {
				s.state.Tool = tool
				changed = true
			}
		}
	case protocol.ActionMoveCursor:
		var p protocol.MoveCursorPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			s.state.MoveCursor(p.DX, p.DY)
			changed = true
		}
	case protocol.ActionPlace:
		changed = s.state.Place()
	case protocol.ActionRotateBelt:
		s.state.RotateBelt()
		changed = true
	case protocol.ActionToggleMode:
		s.state.ToggleMinerMode()
		changed = true
	case protocol.ActionSave:
		if err := s.saveLocked(); err != nil {
			s.log.Printf("save: %v", err)
			s.state.AddLog("Save failed")
		} else {
			s.state.AddLog("Saved")
		}
		changed = true
	}
	var view protocol.StateView
	if changed {
		view = buildView(s.state)
	}
	s.mu.Unlock()

	if changed {
		s.announce(protocol.EventFullState, view)
	}
}

func (s *Server) sendFullState(c *Client) {
	s.mu.Lock()
	view := buildView(s.state)
	s.mu.Unlock()

	b, err := envelope(protocol.EventFullState, view)
	if err != nil {
		return
	}
	c.send <- b
}

// saveLocked writes a snapshot and records it in the index. Callers hold the
// session mutex.
func (s *Server) saveLocked() error {
	snap := s.state.ExportSnapshot()
	path := filepath.Join(s.dataDir, "snapshots", fmt.Sprintf("snap_%09d.zst", snap.Header.Tick))
	if err := snapshot.Write(path, snap); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.RecordSnapshot(snap.Header.Tick, path, snap.Money, snap.TotalExported); err != nil {
			return err
		}
	}
	s.log.Printf("snapshot written: %s", path)
	return nil
}

func (s *Server) announce(eventType string, payload any) {
	b, err := envelope(eventType, payload)
	if err != nil {
		return
	}
	s.hub.broadcast <- b
}

func envelope(eventType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(protocol.Envelope{Type: eventType, Payload: raw})
}

func parseTool(name string) (factory.Tool, bool) {
	switch name {
	case "none":
		return factory.ToolNone, true
	case "miner":
		return factory.ToolMiner, true
	case "smelter":
		return factory.ToolSmelter, true
	case "assembler":
		return factory.ToolAssembler, true
	case "exporter":
		return factory.ToolExporter, true
	case "fabricator":
		return factory.ToolFabricator, true
	case "belt":
		return factory.ToolBelt, true
	case "delete":
		return factory.ToolDelete, true
	default:
		return factory.ToolNone, false
	}
}
