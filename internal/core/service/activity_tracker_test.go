package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/base-platform/account-api/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUserRepo, username string, role domain.Role) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	return user
}

func TestActivityTracker_MarkAndQuery(t *testing.T) {
	repo := newStubUserRepo()
	tracker := NewActivityTracker(repo, ActivityTrackerConfig{InactivityTimeout: 30 * time.Minute})

	if tracker.IsActive("alice") {
		t.Fatalf("unknown user must not be active")
	}

	tracker.MarkActive("alice")
	if !tracker.IsActive("alice") {
		t.Fatalf("alice should be active after MarkActive")
	}
	if got := tracker.CountActive(); got != 1 {
		t.Fatalf("expected 1 active, got %d", got)
	}

	tracker.MarkInactive("alice")
	if tracker.IsActive("alice") {
		t.Fatalf("alice should be inactive after MarkInactive")
	}

	// MarkInactive on an absent entry is a no-op.
	tracker.MarkInactive("ghost")
}

func TestActivityTracker_TimeoutEviction(t *testing.T) {
	repo := newStubUserRepo()
	tracker := NewActivityTracker(repo, ActivityTrackerConfig{InactivityTimeout: 30 * time.Minute})

	now := time.Now()
	tracker.now = func() time.Time { return now }

	tracker.MarkActive("alice")
	tracker.MarkActive("bob")
	if got := tracker.CountActive(); got != 2 {
		t.Fatalf("expected 2 active, got %d", got)
	}

	// Refresh bob just before alice goes stale.
	now = now.Add(20 * time.Minute)
	tracker.MarkActive("bob")

	now = now.Add(11 * time.Minute)
	if tracker.IsActive("alice") {
		t.Fatalf("alice should have timed out")
	}
	if !tracker.IsActive("bob") {
		t.Fatalf("bob was refreshed and should still be active")
	}
	if got := tracker.CountActive(); got != 1 {
		t.Fatalf("expected 1 active after eviction, got %d", got)
	}
}

func TestActivityTracker_ListActive_SkipsDeletedUsers(t *testing.T) {
	repo := newStubUserRepo()
	tracker := NewActivityTracker(repo, ActivityTrackerConfig{})

	alice := seedUser(t, repo, "alice", domain.RoleUser)
	seedUser(t, repo, "bob", domain.RoleAdmin)

	tracker.MarkActive("alice")
	tracker.MarkActive("bob")
	tracker.MarkActive("ghost") // never persisted

	if err := repo.Delete(context.Background(), alice.ID); err != nil {
		t.Fatalf("delete alice: %v", err)
	}

	infos, err := tracker.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected only bob, got %+v", infos)
	}
	if infos[0].Username != "bob" || !infos[0].IsAdmin {
		t.Fatalf("unexpected entry: %+v", infos[0])
	}
}

func TestActivityTracker_ListActive_SweepsStaleEntries(t *testing.T) {
	repo := newStubUserRepo()
	tracker := NewActivityTracker(repo, ActivityTrackerConfig{InactivityTimeout: time.Minute})

	seedUser(t, repo, "alice", domain.RoleUser)

	now := time.Now()
	tracker.now = func() time.Time { return now }

	tracker.MarkActive("alice")
	now = now.Add(2 * time.Minute)

	infos, err := tracker.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("stale entry should have been swept, got %+v", infos)
	}
	if got := tracker.CountActive(); got != 0 {
		t.Fatalf("expected 0 active, got %d", got)
	}
}

func TestActivityTracker_ConcurrentMarks(t *testing.T) {
	repo := newStubUserRepo()
	tracker := NewActivityTracker(repo, ActivityTrackerConfig{})

	var wg sync.WaitGroup
	usernames := []string{"alice", "bob", "carol", "dave"}
	for i := 0; i < 100; i++ {
		for _, name := range usernames {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				tracker.MarkActive(name)
				tracker.IsActive(name)
			}(name)
		}
	}
	wg.Wait()

	if got := tracker.CountActive(); got != len(usernames) {
		t.Fatalf("expected %d active, got %d", len(usernames), got)
	}
}
