package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/shikari/internal/app"
	"github.com/ayusman/shikari/internal/capture"
	"github.com/ayusman/shikari/internal/clicker"
	"github.com/ayusman/shikari/internal/server"
	"github.com/ayusman/shikari/internal/store"
	"github.com/ayusman/shikari/internal/testutil"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	region := capture.Region{X: 300, Y: 200, Width: 120, Height: 120}

	application := app.New(app.Config{
		Store:    s,
		Region:   region,
		Interval: 2 * time.Millisecond,
	})

	// A looping frame with one pink target keeps the pipeline busy
	frame := testutil.NewFrame(region.Width, region.Height)
	defer frame.Close()
	testutil.DrawBlob(&frame, 50, 60, 10, 10, testutil.Pink)

	grabber := capture.NewMockGrabber([]*gocv.Mat{&frame}, true)
	sink := clicker.NewMockSink()
	application.SetGrabber(grabber)
	application.SetSink(sink)

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CreateRegionPreset", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/regions",
			"application/json",
			strings.NewReader(`{"name": "game-window", "x": 300, "y": 200, "width": 120, "height": 120}`),
		)
		if err != nil {
			t.Fatalf("create region error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	if err := application.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer application.Stop()

	t.Run("ToggleViaAPI", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/toggle", "application/json", nil)
		if err != nil {
			t.Fatalf("toggle error = %v", err)
		}
		defer resp.Body.Close()

		var toggleResp struct {
			Enabled bool `json:"enabled"`
		}
		json.NewDecoder(resp.Body).Decode(&toggleResp)

		if !toggleResp.Enabled {
			t.Fatal("expected bot to be enabled after toggle")
		}
	})

	// Let the pipeline run a few cycles
	time.Sleep(100 * time.Millisecond)

	t.Run("ClicksLand", func(t *testing.T) {
		clicks := sink.Clicks()
		if len(clicks) == 0 {
			t.Fatal("expected clicks while enabled, got none")
		}

		// Blob center (55, 65) plus region origin plus the vertical bias
		want := clicker.Click{X: 355, Y: 268}
		if clicks[0] != want {
			t.Errorf("click = %+v, want %+v", clicks[0], want)
		}
	})

	t.Run("StatusReportsCounters", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/status")
		if err != nil {
			t.Fatalf("status error = %v", err)
		}
		defer resp.Body.Close()

		var statusResp struct {
			Enabled bool  `json:"enabled"`
			Cycles  int64 `json:"cycles"`
			Clicks  int64 `json:"clicks"`
		}
		json.NewDecoder(resp.Body).Decode(&statusResp)

		if !statusResp.Enabled {
			t.Error("expected enabled in status")
		}
		if statusResp.Cycles == 0 {
			t.Error("expected cycle counter to advance")
		}
		if statusResp.Clicks == 0 {
			t.Error("expected click counter to advance")
		}
	})

	t.Run("PauseRecordsSession", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/toggle", "application/json", nil)
		if err != nil {
			t.Fatalf("toggle error = %v", err)
		}
		resp.Body.Close()

		resp, err = client.Get(ts.URL + "/api/sessions")
		if err != nil {
			t.Fatalf("list sessions error = %v", err)
		}
		defer resp.Body.Close()

		var listResp struct {
			Sessions []struct {
				ID      string `json:"id"`
				EndedAt string `json:"ended_at"`
				Cycles  int64  `json:"cycles"`
				Clicks  int64  `json:"clicks"`
			} `json:"sessions"`
		}
		json.NewDecoder(resp.Body).Decode(&listResp)

		if len(listResp.Sessions) != 1 {
			t.Fatalf("expected 1 session, got %d", len(listResp.Sessions))
		}
		if listResp.Sessions[0].EndedAt == "" {
			t.Error("expected session to be closed after pause")
		}
		if listResp.Sessions[0].Clicks == 0 {
			t.Error("expected session to record clicks")
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_HazardSuppressesClicks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	region := capture.Region{X: 0, Y: 0, Width: 200, Height: 200}

	// Green target with a hazard well inside the exclusion radius
	frame := testutil.NewFrame(region.Width, region.Height)
	defer frame.Close()
	testutil.DrawBlob(&frame, 90, 90, 10, 10, testutil.Green)
	testutil.DrawBlob(&frame, 120, 90, 10, 10, testutil.Hazard)

	application := app.New(app.Config{
		Region:   region,
		Interval: 2 * time.Millisecond,
	})

	grabber := capture.NewMockGrabber([]*gocv.Mat{&frame}, true)
	sink := clicker.NewMockSink()
	application.SetGrabber(grabber)
	application.SetSink(sink)

	if err := application.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer application.Stop()

	application.SetEnabled(true)
	time.Sleep(50 * time.Millisecond)
	application.SetEnabled(false)

	if clicks := sink.Clicks(); len(clicks) != 0 {
		t.Errorf("expected no clicks near a hazard, got %d", len(clicks))
	}

	if stats := application.Stats(); stats.Cycles == 0 {
		t.Error("expected cycles to run even with no clickable targets")
	}
}
