package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ayusman/shikari/internal/app"
	"github.com/ayusman/shikari/internal/capture"
	"github.com/ayusman/shikari/internal/detector"
	"github.com/ayusman/shikari/internal/listener"
	"github.com/ayusman/shikari/internal/server"
	"github.com/ayusman/shikari/internal/store"
	"github.com/ayusman/shikari/internal/tray"
)

// Fallback capture region used when no preset matches. Sized for the target
// application's window docked at the top-left corner of the screen.
var defaultRegion = capture.Region{X: 0, Y: 0, Width: 480, Height: 800}

func main() {
	fmt.Println("Shikari - Color-Hunting Screen Clicker")

	regionName := flag.String("region", "default", "name of the stored region preset to watch")
	addr := flag.String("addr", ":8080", "HTTP control API address (empty to disable)")
	interval := flag.Duration("interval", app.DefaultInterval, "detection cycle period")
	flag.Parse()

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".shikari")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "shikari.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	region := resolveRegion(st, *regionName)
	fmt.Printf("Watching region %dx%d at (%d, %d)\n", region.Width, region.Height, region.X, region.Y)

	// Build the application
	application := app.New(app.Config{
		Store:    st,
		Region:   region,
		Detector: detector.DefaultConfig(),
		Interval: *interval,
	})

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start detection pipeline: %v", err)
	}
	defer application.Stop()

	// System tray
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
	})
	application.OnDetection(func(d detector.Detection) {
		t.SetLastClick(d.X, d.Y)
	})

	// Global keyboard controls
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys := listener.New()
	keys.OnStart(func() {
		application.SetEnabled(true)
		t.SetEnabled(true)
	})
	keys.OnPause(func() {
		application.SetEnabled(false)
		t.SetEnabled(false)
	})
	go keys.Run(ctx)

	// HTTP control API
	if *addr != "" {
		srv := server.New(server.Config{
			Store: st,
			App:   application,
		})
		go func() {
			fmt.Printf("Control API listening on %s\n", *addr)
			if err := srv.ListenAndServe(*addr); err != nil {
				log.Printf("Server failed: %v", err)
			}
		}()
	}

	fmt.Println("Controls: 's' starts, 'p' pauses, quit from the tray menu")

	t.OnQuit(func() {
		application.Stop()
		cancel()
	})

	// Blocks until the tray quits; systray wants the main thread.
	t.Run()
}

// resolveRegion looks up the named region preset, seeding the store with the
// default region on first run.
func resolveRegion(st *store.Store, name string) capture.Region {
	preset, err := st.Regions().GetByName(name)
	if err == nil {
		return capture.Region{X: preset.X, Y: preset.Y, Width: preset.Width, Height: preset.Height}
	}

	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to load region preset %q: %v", name, err)
		return defaultRegion
	}

	log.Printf("Region preset %q not found, using default", name)

	if name == "default" {
		seed := &store.Region{
			ID:     uuid.New().String(),
			Name:   "default",
			X:      defaultRegion.X,
			Y:      defaultRegion.Y,
			Width:  defaultRegion.Width,
			Height: defaultRegion.Height,
		}
		if err := st.Regions().Create(seed); err != nil {
			log.Printf("Failed to seed default region: %v", err)
		}
	}

	return defaultRegion
}
