package service

import (
	"log"

	"github.com/RKMF/kammerfest/internal/db"
	"gorm.io/gorm"
)

// MaintenanceService hosts best-effort housekeeping over content
// references. None of it is transactional: each patch is applied
// independently, errors are logged and the pass continues.
type MaintenanceService struct {
	db *gorm.DB
}

// CleanupReport counts what a reference cleanup pass removed.
type CleanupReport struct {
	DanglingArtistLinks int64 `json:"danglingArtistLinks"`
	DanglingEventLinks  int64 `json:"danglingEventLinks"`
	ClearedVenueRefs    int64 `json:"clearedVenueRefs"`
	OrphanDates         int64 `json:"orphanDates"`
}

// SyncReport counts what a reference sync pass touched.
type SyncReport struct {
	Patched int `json:"patched"`
	Errors  int `json:"errors"`
}

// NewMaintenanceService creates a MaintenanceService instance.
func NewMaintenanceService(gdb *gorm.DB) *MaintenanceService {
	return &MaintenanceService{db: gdb}
}

// CleanupReferences removes dangling references left behind by
// deleted content: event↔artist links whose endpoint is gone, venue
// references to deleted venues and performance dates whose event no
// longer exists.
func (s *MaintenanceService) CleanupReferences() (CleanupReport, error) {
	var report CleanupReport

	// Soft-deleted rows keep their ids, so the join table has to be
	// checked against deleted_at as well as existence.
	res := s.db.Exec(`DELETE FROM event_artists WHERE artist_id NOT IN (
		SELECT id FROM artists WHERE deleted_at IS NULL)`)
	if res.Error != nil {
		return report, res.Error
	}
	report.DanglingArtistLinks = res.RowsAffected

	res = s.db.Exec(`DELETE FROM event_artists WHERE event_id NOT IN (
		SELECT id FROM events WHERE deleted_at IS NULL)`)
	if res.Error != nil {
		return report, res.Error
	}
	report.DanglingEventLinks = res.RowsAffected

	res = s.db.Model(&db.Event{}).
		Where("venue_id <> 0 AND venue_id NOT IN (SELECT id FROM venues WHERE deleted_at IS NULL)").
		Update("venue_id", 0)
	if res.Error != nil {
		return report, res.Error
	}
	report.ClearedVenueRefs = res.RowsAffected

	res = s.db.Where("event_id NOT IN (SELECT id FROM events WHERE deleted_at IS NULL)").
		Delete(&db.EventDate{})
	if res.Error != nil {
		return report, res.Error
	}
	report.OrphanDates = res.RowsAffected

	return report, nil
}

// SyncArtistEvents reconciles the event↔artist association from both
// sides: every join row is checked against both endpoints and stale
// rows are removed. Duplicate rows cannot occur, the join table's
// composite primary key rejects them on insert. This is a convenience
// pass with no transactional guarantee; rows that fail to patch are
// logged and skipped.
func (s *MaintenanceService) SyncArtistEvents() SyncReport {
	var report SyncReport

	type link struct {
		EventID  uint
		ArtistID uint
	}
	var links []link
	if err := s.db.Table("event_artists").Scan(&links).Error; err != nil {
		log.Printf("reference sync: fetch links: %v", err)
		report.Errors++
		return report
	}

	for _, l := range links {
		var eventCount, artistCount int64
		if err := s.db.Model(&db.Event{}).Where("id = ?", l.EventID).Count(&eventCount).Error; err != nil {
			log.Printf("reference sync: check event %d: %v", l.EventID, err)
			report.Errors++
			continue
		}
		if err := s.db.Model(&db.Artist{}).Where("id = ?", l.ArtistID).Count(&artistCount).Error; err != nil {
			log.Printf("reference sync: check artist %d: %v", l.ArtistID, err)
			report.Errors++
			continue
		}
		if eventCount > 0 && artistCount > 0 {
			continue
		}

		if err := s.db.Exec("DELETE FROM event_artists WHERE event_id = ? AND artist_id = ?",
			l.EventID, l.ArtistID).Error; err != nil {
			log.Printf("reference sync: patch link %d->%d: %v", l.EventID, l.ArtistID, err)
			report.Errors++
			continue
		}
		report.Patched++
	}

	return report
}
