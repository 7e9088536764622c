package service

import (
	"testing"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
)

func TestCleanupReferencesRemovesDanglingLinks(t *testing.T) {
	gdb := setupServiceDB(t)
	church, _, pianist := seedProgram(t, gdb)

	// Simulate a deleted artist that still has join rows and an
	// orphaned performance date.
	if err := gdb.Delete(&db.Artist{}, pianist.ID).Error; err != nil {
		t.Fatalf("failed to soft delete artist: %v", err)
	}
	if err := gdb.Create(&db.EventDate{EventID: 9999, StartsAt: time.Date(2026, 6, 23, 12, 0, 0, 0, time.UTC)}).Error; err != nil {
		t.Fatalf("failed to seed orphan date: %v", err)
	}
	if err := gdb.Delete(&db.Venue{}, church.ID).Error; err != nil {
		t.Fatalf("failed to soft delete venue: %v", err)
	}

	svc := NewMaintenanceService(gdb)
	report, err := svc.CleanupReferences()
	if err != nil {
		t.Fatalf("CleanupReferences returned error: %v", err)
	}

	if report.DanglingArtistLinks != 1 {
		t.Fatalf("expected 1 dangling artist link removed, got %d", report.DanglingArtistLinks)
	}
	if report.OrphanDates != 1 {
		t.Fatalf("expected 1 orphan date removed, got %d", report.OrphanDates)
	}
	if report.ClearedVenueRefs != 2 {
		t.Fatalf("expected 2 cleared venue refs, got %d", report.ClearedVenueRefs)
	}

	var linkCount int64
	if err := gdb.Table("event_artists").Count(&linkCount).Error; err != nil {
		t.Fatalf("failed to count links: %v", err)
	}
	if linkCount != 0 {
		t.Fatalf("expected join table emptied, got %d rows", linkCount)
	}
}

func TestSyncArtistEventsRemovesStaleLinks(t *testing.T) {
	gdb := setupServiceDB(t)
	_, _, pianist := seedProgram(t, gdb)

	var opening db.Event
	if err := gdb.Where("slug = ?", "apningskonsert").First(&opening).Error; err != nil {
		t.Fatalf("failed to load event: %v", err)
	}

	// The composite primary key on the join table rejects duplicate
	// rows outright, so the sync only has to patch stale endpoints.
	if err := gdb.Exec("INSERT INTO event_artists (event_id, artist_id) VALUES (?, ?)",
		opening.ID, pianist.ID).Error; err == nil {
		t.Fatalf("expected duplicate link insert to be rejected")
	}
	if err := gdb.Exec("INSERT INTO event_artists (event_id, artist_id) VALUES (?, ?)",
		9999, pianist.ID).Error; err != nil {
		t.Fatalf("failed to insert stale link: %v", err)
	}

	svc := NewMaintenanceService(gdb)
	report := svc.SyncArtistEvents()

	if report.Errors != 0 {
		t.Fatalf("expected clean pass, got %d errors", report.Errors)
	}
	if report.Patched != 1 {
		t.Fatalf("expected 1 stale link patched, got %d", report.Patched)
	}

	var linkCount int64
	if err := gdb.Table("event_artists").Count(&linkCount).Error; err != nil {
		t.Fatalf("failed to count links: %v", err)
	}
	if linkCount != 1 {
		t.Fatalf("expected exactly the valid link to remain, got %d rows", linkCount)
	}
}
