package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jgrier/quotd/internal/cache"
	"github.com/jgrier/quotd/internal/config"
	"github.com/jgrier/quotd/internal/coord"
	"github.com/jgrier/quotd/internal/endpoint"
	"github.com/jgrier/quotd/internal/logging"
	"github.com/jgrier/quotd/internal/prefs"
	"github.com/jgrier/quotd/internal/quote"
	"github.com/jgrier/quotd/internal/relay"
	"github.com/jgrier/quotd/internal/store"
	"github.com/jgrier/quotd/internal/throttle"
	"github.com/jgrier/quotd/internal/ui"
)

func main() {
	runRelay := flag.Bool("relay", false, "run the local development relay instead of the TUI")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := logging.Init(); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *runRelay {
		if err := relay.ListenAndServe(ctx, cfg.Network.RelayListenAddr, cfg.Network.UpstreamBaseURL); err != nil {
			log.Fatalf("Relay failed: %v", err)
		}
		return
	}

	// Data directory: ~/.quotd/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".quotd")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.Open(filepath.Join(dataDir, "quotd.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	userPrefs := prefs.New(st)
	visitDays := userPrefs.RecordVisit(cache.DayKey(time.Now()))

	netCtx := endpoint.Context{
		DevRelay:        cfg.Network.DevRelay,
		LocalRelayURL:   "http://" + cfg.Network.RelayListenAddr,
		RelayBaseURL:    cfg.Network.RelayBaseURL,
		UpstreamBaseURL: cfg.Network.UpstreamBaseURL,
	}
	timeout := time.Duration(cfg.Network.TimeoutMs) * time.Millisecond
	coordinator := coord.New(netCtx, timeout, throttle.New(), cache.New(st))

	app := ui.NewApp(ui.Commands{
		LoadToday:  func() tea.Cmd { return coordinator.LoadToday(ctx) },
		LoadRandom: func(current quote.Quote) tea.Cmd { return coordinator.LoadRandom(ctx, current) },
		IsCurrent:  coordinator.IsCurrent,
	}, userPrefs, visitDays)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("program error", "error", err)
		log.Fatalf("Error: %v", err)
	}
}
