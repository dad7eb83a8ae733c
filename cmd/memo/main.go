package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/memo/internal/app"
	"github.com/treykane/memo/internal/config"
	"github.com/treykane/memo/internal/editor"
	"github.com/treykane/memo/internal/kvstore"
	"github.com/treykane/memo/internal/logging"
	"github.com/treykane/memo/internal/notefile"
	"github.com/treykane/memo/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	log := logging.New("main")
	defer logging.Close()

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	// A store that cannot be opened is not fatal: memo runs degraded and
	// tells the user through the status line.
	store, err := kvstore.Open(cfg)
	if err != nil {
		log.Warn("open note store, continuing without it", "backend", cfg.Store, "path", cfg.StorePath, "error", err)
		store = kvstore.Disabled{}
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close note store", "error", err)
		}
	}()

	exporter := editor.ExporterFunc(func(content string, now time.Time) (string, error) {
		return notefile.Export(cfg.ExportDir, content, now)
	})

	m := app.New(app.Options{
		Config:   cfg,
		Store:    storage.New(store),
		Exporter: exporter,
	})

	log.Info("memo started", "backend", cfg.Store, "export_dir", cfg.ExportDir)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
