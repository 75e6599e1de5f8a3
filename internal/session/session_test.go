package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/pointing"
)

const testMetadata = `{
	"v_mag_range": [-1.44, 3.0],
	"files": [
		[-1.44, 1.5, "dat_hp_0.json"],
		[1.5, 3.0, "dat_hp_1.json"]
	],
	"pm_epoch": 681472800
}`

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/hp/dat_hp_meta.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testMetadata)
	})
	mux.HandleFunc("/hp/dat_hp_0.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"n": 32349, "p": [101.287, -16.716, 379.21], "m": [-546.01, -1223.08], "v": -1.44, "c": [1,1,1]}]`)
	})
	mux.HandleFunc("/hp/dat_hp_1.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"n": 54061, "p": [165.932, 61.751, 26.54], "m": [-136.46, -35.25], "v": 1.81, "c": [1,1,1]}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestManager(t *testing.T, srv *httptest.Server) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Source = srv.URL + "/hp/dat_hp_meta.json"
	cfg.Frame = pointing.Frame{Lat: 35, Lon: -106.6}
	return NewManager(cfg, catalog.WithHTTPClient(srv.Client()))
}

func TestDeepen_PopulatesSnapshot(t *testing.T) {
	srv := newCatalogServer(t)
	m := newTestManager(t, srv)

	require.False(t, m.HasStars())

	err := m.Deepen(context.Background(), 2.5)
	require.NoError(t, err)

	snap := m.Snapshot()
	require.NotNil(t, snap.LoadedVmag)
	require.Equal(t, 3.0, *snap.LoadedVmag)
	require.Len(t, snap.Stars, 2)
	require.Contains(t, snap.Stars, 32349)
	require.False(t, snap.Failed)
	require.True(t, m.HasStars())
}

func TestDeepen_EmitsEventsInOrder(t *testing.T) {
	srv := newCatalogServer(t)
	m := newTestManager(t, srv)

	require.NoError(t, m.Deepen(context.Background(), 2.5))

	events := m.Snapshot().Events
	require.Len(t, events, 3)
	require.Equal(t, EventMetadataLoaded, events[0].Type)
	require.Equal(t, EventBandMerged, events[1].Type)
	require.Equal(t, EventBandMerged, events[2].Type)
	require.Equal(t, 1.5, events[1].Depth)
	require.Equal(t, 3.0, events[2].Depth)
	require.Equal(t, 2, events[2].Stars)
}

func TestDeepen_FailureRecordedAndSnapshotMarked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Source = srv.URL + "/meta.json"
	m := NewManager(cfg,
		catalog.WithHTTPClient(srv.Client()),
		catalog.WithRetryBudget(0),
	)

	err := m.Deepen(context.Background(), 2.5)
	require.Error(t, err)

	snap := m.Snapshot()
	require.True(t, snap.Failed)
	require.Error(t, snap.LastError)

	events := snap.Events
	require.Len(t, events, 1)
	require.Equal(t, EventLoadFailed, events[0].Type)
	require.NotEmpty(t, events[0].Err)
}

func TestSetSource_ClearsTerminalFailure(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(bad.Close)
	good := newCatalogServer(t)

	cfg := DefaultConfig()
	cfg.Source = bad.URL + "/meta.json"
	m := NewManager(cfg,
		catalog.WithHTTPClient(good.Client()),
		catalog.WithRetryBudget(0),
	)

	require.Error(t, m.Deepen(context.Background(), 2.5))
	require.True(t, m.Snapshot().Failed)

	m.SetSource(good.URL + "/hp/dat_hp_meta.json")
	require.False(t, m.Snapshot().Failed, "failure must clear on source change")

	require.NoError(t, m.Deepen(context.Background(), 1.0))
	require.Contains(t, m.Snapshot().Stars, 32349)
}

func TestSetSource_SameSourceIsNoOp(t *testing.T) {
	srv := newCatalogServer(t)
	m := newTestManager(t, srv)

	before := m.Snapshot()
	m.SetSource(before.Source)
	after := m.Snapshot()

	if diff := cmp.Diff(before.Events, after.Events); diff != "" {
		t.Errorf("events changed on no-op source set (-before +after):\n%s", diff)
	}
}

func TestRecentEvents_RingBufferOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 3
	m := NewManager(cfg)

	m.mu.Lock()
	for i := 1; i <= 5; i++ {
		m.addEvent(Event{Type: EventBandMerged, Depth: float64(i)})
	}
	m.mu.Unlock()

	all := m.RecentEvents(10)
	require.Len(t, all, 3)
	require.Equal(t, []float64{3, 4, 5}, []float64{all[0].Depth, all[1].Depth, all[2].Depth})

	last := m.RecentEvents(1)
	require.Len(t, last, 1)
	require.Equal(t, 5.0, last[0].Depth)
}

func TestSnapshot_FrameRoundTrip(t *testing.T) {
	srv := newCatalogServer(t)
	m := newTestManager(t, srv)

	f := pointing.Frame{Lat: -33.9, Lon: 18.4}
	m.SetFrame(f)

	got := m.Snapshot().Frame
	require.Equal(t, f.Lat, got.Lat)
	require.Equal(t, f.Lon, got.Lon)
}
