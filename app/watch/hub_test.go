package watch

import (
	"testing"
	"time"

	"github.com/lysyi3m/market-comb/app/listing"
	"github.com/lysyi3m/market-comb/app/marketplace"
)

func newTestHub(client marketplace.Client) *Hub {
	store := listing.NewStore(listing.NewMemoryPersistence())
	return NewHub(client, listing.NewNormalizer(client), store, 24*time.Hour)
}

func TestHub_StartStopRestart(t *testing.T) {
	client := &fakeSearchClient{batches: [][]marketplace.RawListing{{}}}
	hub := newTestHub(client)

	config := testConfig(60)

	if err := hub.Start(config); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := hub.Start(config); err == nil {
		t.Error("Starting an already-running watch should fail")
	}

	if err := hub.Stop(config.Name); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	statuses := hub.Statuses()
	if len(statuses) != 1 {
		t.Fatalf("Expected 1 status after stop, got %d", len(statuses))
	}
	if statuses[0].State != StateStopped {
		t.Errorf("Expected stopped state, got %s", statuses[0].State)
	}

	// A stopped monitor is not resumable; restart replaces it.
	if err := hub.Start(config); err != nil {
		t.Fatalf("Restart after stop failed: %v", err)
	}
	if hub.Statuses()[0].State != StateRunning {
		t.Error("Restarted watch should be running")
	}

	hub.StopAll()
}

func TestHub_StopUnknownWatch(t *testing.T) {
	hub := newTestHub(&fakeSearchClient{batches: [][]marketplace.RawListing{{}}})

	if err := hub.Stop("ghost"); err == nil {
		t.Error("Stopping an unknown watch should fail")
	}
}

func TestHub_StatusesSortedByName(t *testing.T) {
	client := &fakeSearchClient{batches: [][]marketplace.RawListing{{}}}
	hub := newTestHub(client)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		config := testConfig(60)
		config.Name = name
		if err := hub.Start(config); err != nil {
			t.Fatalf("Start %s failed: %v", name, err)
		}
	}
	defer hub.StopAll()

	statuses := hub.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("Expected 3 statuses, got %d", len(statuses))
	}
	if statuses[0].Name != "alpha" || statuses[1].Name != "mid" || statuses[2].Name != "zeta" {
		t.Errorf("Statuses not sorted by name: %s, %s, %s", statuses[0].Name, statuses[1].Name, statuses[2].Name)
	}
}
