package state

import (
	"sync"
	"testing"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Default()
	if err != nil {
		t.Fatalf("loading dataset: %v", err)
	}
	return ds
}

func TestSessionIsCreatedLazily(t *testing.T) {
	r := NewRegistry(RegistryParams{Dataset: testDataset(t), PageSize: 5})
	if r.Len() != 0 {
		t.Fatalf("fresh registry should be empty, have %d", r.Len())
	}

	session := r.Session("user_1")
	if session.Browse == nil || session.Cart == nil || session.Wishlist == nil || session.Profile == nil || session.Gate == nil {
		t.Fatalf("session missing pieces: %+v", session)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 session, have %d", r.Len())
	}
	if r.Session("user_1") != session {
		t.Fatal("repeat lookup must return the same session")
	}
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	r := NewRegistry(RegistryParams{Dataset: testDataset(t), PageSize: 5})

	r.Wishlist("user_a").Add("plant-001")
	if r.Wishlist("user_b").Contains("plant-001") {
		t.Fatal("wishlist state leaked across users")
	}

	snapA := r.Browse("user_a").Snapshot()
	if snapA.Page != 1 || len(snapA.Displayed) != 5 {
		t.Fatalf("unexpected initial window: page=%d displayed=%d", snapA.Page, len(snapA.Displayed))
	}
}

func TestDropResetsState(t *testing.T) {
	r := NewRegistry(RegistryParams{Dataset: testDataset(t), PageSize: 5})
	r.Wishlist("user_1").Add("plant-002")
	r.Drop("user_1")
	if r.Wishlist("user_1").Contains("plant-002") {
		t.Fatal("dropped session must not retain wishlist entries")
	}
}

func TestConcurrentFirstTouchYieldsOneSession(t *testing.T) {
	r := NewRegistry(RegistryParams{Dataset: testDataset(t), PageSize: 5})

	var wg sync.WaitGroup
	sessions := make([]*Session, 16)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = r.Session("user_1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(sessions); i++ {
		if sessions[i] != sessions[0] {
			t.Fatal("concurrent first touch produced distinct sessions")
		}
	}
	if r.Len() != 1 {
		t.Fatalf("expected a single session, have %d", r.Len())
	}
}

func TestRegistryToleratesMissingDataset(t *testing.T) {
	r := NewRegistry(RegistryParams{PageSize: 0})
	snap := r.Browse("user_1").Snapshot()
	if len(snap.Displayed) != 0 || snap.HasMore {
		t.Fatalf("empty catalog should yield an empty window: %+v", snap)
	}
}
