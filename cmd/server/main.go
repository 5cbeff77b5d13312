package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"tinyfactory/backend/internal/config"
	"tinyfactory/backend/internal/factory"
	"tinyfactory/backend/internal/persistence/indexdb"
	"tinyfactory/backend/internal/persistence/snapshot"
	"tinyfactory/backend/internal/server"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configPath = flag.String("config", "./config.yaml", "path to config.yaml")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "resume from the latest indexed snapshot when -snapshot is empty")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite snapshot index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("config not found (%s); using defaults", *configPath)
			cfg = config.Defaults()
		} else {
			logger.Fatalf("load config: %v", err)
		}
	}

	var index *indexdb.Index
	if !*disableDB {
		index, err = indexdb.Open(filepath.Join(*dataDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer index.Close()
	}

	state := bootState(cfg, *snapPath, *loadLatest, index, logger)

	srv := server.New(state, cfg, *dataDir, index, logger)
	srv.Start()

	http.HandleFunc("/ws", srv.Handler())
	logger.Printf("listening on %s", *addr)
	logger.Fatal(http.ListenAndServe(*addr, nil))
}

// bootState resumes from a snapshot when one is available, otherwise starts a
// fresh session.
func bootState(cfg config.Config, snapPath string, loadLatest bool, index *indexdb.Index, logger *log.Logger) *factory.State {
	if snapPath == "" && loadLatest && index != nil {
		row, ok, err := index.LatestSnapshot()
		if err != nil {
			logger.Printf("latest snapshot lookup: %v", err)
		} else if ok {
			snapPath = row.Path
		}
	}
	if snapPath != "" {
		snap, err := snapshot.Read(snapPath)
		if err != nil {
			logger.Fatalf("read snapshot %s: %v", snapPath, err)
		}
		state, err := factory.ImportSnapshot(snap)
		if err != nil {
			logger.Fatalf("import snapshot %s: %v", snapPath, err)
		}
		logger.Printf("resumed from %s (tick %d)", snapPath, snap.Header.Tick)
		return state
	}

	state := factory.NewState()
	state.Money = cfg.StartingMoney
	logger.Printf("fresh session (money %d)", state.Money)
	return state
}
