package service

import (
	"testing"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Editor{}, &db.Venue{}, &db.Artist{}, &db.Event{}, &db.EventDate{}, &db.Article{}, &db.Page{}, &db.PageSection{}, &db.SystemSetting{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func seedProgram(t *testing.T, gdb *gorm.DB) (db.Venue, db.Venue, db.Artist) {
	t.Helper()

	church := db.Venue{Slug: "risor-kirke", NameNO: "Risør kirke", NameEN: "Risør Church"}
	hall := db.Venue{Slug: "festivalteltet", NameNO: "Festivalteltet", NameEN: "The Festival Tent"}
	if err := gdb.Create(&church).Error; err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}
	if err := gdb.Create(&hall).Error; err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}

	pianist := db.Artist{Slug: "leif-ove-andsnes", Name: "Leif Ove Andsnes", InstrumentNO: "klaver", InstrumentEN: "piano"}
	if err := gdb.Create(&pianist).Error; err != nil {
		t.Fatalf("failed to seed artist: %v", err)
	}

	day1Morning := time.Date(2026, 6, 23, 11, 0, 0, 0, time.UTC)
	day1Evening := time.Date(2026, 6, 23, 19, 30, 0, 0, time.UTC)
	day2 := time.Date(2026, 6, 24, 19, 30, 0, 0, time.UTC)

	opening := db.Event{
		Slug: "apningskonsert", TitleNO: "Åpningskonsert", TitleEN: "Opening Concert",
		Status: "published", VenueID: church.ID,
		Artists: []db.Artist{pianist},
		Dates:   []db.EventDate{{StartsAt: day1Evening}, {StartsAt: day2}},
	}
	morning := db.Event{
		Slug: "morgenkonsert", TitleNO: "Morgenkonsert",
		Status: "published", VenueID: hall.ID,
		Dates: []db.EventDate{{StartsAt: day1Morning}},
	}
	draft := db.Event{
		Slug: "hemmelig-konsert", TitleNO: "Hemmelig konsert",
		Status: "draft", VenueID: church.ID,
		Dates: []db.EventDate{{StartsAt: day1Evening}},
	}
	for _, event := range []*db.Event{&opening, &morning, &draft} {
		if err := gdb.Create(event).Error; err != nil {
			t.Fatalf("failed to seed event %s: %v", event.Slug, err)
		}
	}

	return church, hall, pianist
}

func TestProgramGroupsByDayAndSortsByStartTime(t *testing.T) {
	gdb := setupServiceDB(t)
	seedProgram(t, gdb)

	svc := NewEventService(gdb)
	days, err := svc.Program(EventFilter{Language: "no"})
	if err != nil {
		t.Fatalf("Program returned error: %v", err)
	}

	if len(days) != 2 {
		t.Fatalf("expected 2 program days, got %d", len(days))
	}
	if days[0].Date != "2026-06-23" || days[1].Date != "2026-06-24" {
		t.Fatalf("days out of order: %q, %q", days[0].Date, days[1].Date)
	}
	if len(days[0].Entries) != 2 {
		t.Fatalf("expected 2 performances on day one, got %d", len(days[0].Entries))
	}
	if days[0].Entries[0].Slug != "morgenkonsert" {
		t.Fatalf("expected morning concert first, got %q", days[0].Entries[0].Slug)
	}
	if days[0].Entries[1].Slug != "apningskonsert" {
		t.Fatalf("expected opening concert second, got %q", days[0].Entries[1].Slug)
	}
	if days[0].Label != "Tirsdag 23. juni" {
		t.Fatalf("unexpected norwegian day label %q", days[0].Label)
	}
}

func TestProgramExcludesDrafts(t *testing.T) {
	gdb := setupServiceDB(t)
	seedProgram(t, gdb)

	svc := NewEventService(gdb)
	days, err := svc.Program(EventFilter{Language: "no"})
	if err != nil {
		t.Fatalf("Program returned error: %v", err)
	}

	for _, day := range days {
		for _, entry := range day.Entries {
			if entry.Slug == "hemmelig-konsert" {
				t.Fatal("draft event leaked into the public program")
			}
		}
	}
}

func TestProgramFiltersByDayAndVenue(t *testing.T) {
	gdb := setupServiceDB(t)
	seedProgram(t, gdb)

	svc := NewEventService(gdb)

	days, err := svc.Program(EventFilter{Day: "2026-06-24", Language: "no"})
	if err != nil {
		t.Fatalf("Program returned error: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2026-06-24" {
		t.Fatalf("day filter failed: %+v", days)
	}

	days, err = svc.Program(EventFilter{VenueSlug: "festivalteltet", Language: "no"})
	if err != nil {
		t.Fatalf("Program returned error: %v", err)
	}
	if len(days) != 1 || len(days[0].Entries) != 1 || days[0].Entries[0].Slug != "morgenkonsert" {
		t.Fatalf("venue filter failed: %+v", days)
	}
}

func TestProgramFiltersByArtistAndPicksLanguage(t *testing.T) {
	gdb := setupServiceDB(t)
	seedProgram(t, gdb)

	svc := NewEventService(gdb)
	days, err := svc.Program(EventFilter{ArtistSlug: "leif-ove-andsnes", Language: "en"})
	if err != nil {
		t.Fatalf("Program returned error: %v", err)
	}

	var total int
	for _, day := range days {
		for _, entry := range day.Entries {
			total++
			if entry.Title != "Opening Concert" {
				t.Fatalf("expected english title, got %q", entry.Title)
			}
			if entry.VenueName != "Risør Church" {
				t.Fatalf("expected english venue name, got %q", entry.VenueName)
			}
		}
	}
	if total != 2 {
		t.Fatalf("expected both performances of the opening concert, got %d", total)
	}
}

func TestEventUpdateReplacesDates(t *testing.T) {
	gdb := setupServiceDB(t)
	church, _, pianist := seedProgram(t, gdb)

	svc := NewEventService(gdb)
	created, err := svc.Create(EventInput{
		Slug: "kammermusikk", TitleNO: "Kammermusikk", VenueID: church.ID,
		ArtistIDs: []uint{pianist.ID},
		Dates:     []EventDateInput{{StartsAt: time.Date(2026, 6, 25, 12, 0, 0, 0, time.UTC)}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(created.ID, EventInput{
		Slug: "kammermusikk", TitleNO: "Kammermusikk", VenueID: church.ID,
		Dates: []EventDateInput{
			{StartsAt: time.Date(2026, 6, 26, 12, 0, 0, 0, time.UTC)},
			{StartsAt: time.Date(2026, 6, 27, 12, 0, 0, 0, time.UTC)},
		},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if len(updated.Dates) != 2 {
		t.Fatalf("expected dates replaced with 2 rows, got %d", len(updated.Dates))
	}
	if len(updated.Artists) != 0 {
		t.Fatalf("expected artist associations replaced, got %d", len(updated.Artists))
	}
}

func TestEventValidation(t *testing.T) {
	gdb := setupServiceDB(t)
	svc := NewEventService(gdb)

	if _, err := svc.Create(EventInput{Slug: "uten-tittel"}); err != ErrTitleRequired {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}

	start := time.Date(2026, 6, 23, 19, 0, 0, 0, time.UTC)
	if _, err := svc.Create(EventInput{
		Slug: "feil-datoer", TitleNO: "Feil datoer",
		Dates: []EventDateInput{{StartsAt: start, EndsAt: start.Add(-time.Hour)}},
	}); err != ErrDateOrder {
		t.Fatalf("expected ErrDateOrder, got %v", err)
	}
}

func TestEventCopyTranslationKeepsExistingEnglish(t *testing.T) {
	gdb := setupServiceDB(t)
	seedProgram(t, gdb)

	svc := NewEventService(gdb)
	created, err := svc.Create(EventInput{
		Slug:          "sensommer",
		TitleNO:       "Sensommerkonsert",
		TitleEN:       "Late Summer Concert",
		DescriptionNO: "Musikk i skumringen.",
		PriceTextNO:   "Kr 350",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	copied, err := svc.CopyTranslation(created.ID)
	if err != nil {
		t.Fatalf("CopyTranslation returned error: %v", err)
	}

	if copied.TitleEN != "Late Summer Concert" {
		t.Fatalf("existing english title was overwritten: %q", copied.TitleEN)
	}
	if copied.DescriptionEN != "Musikk i skumringen." {
		t.Fatalf("empty english description should be mirrored, got %q", copied.DescriptionEN)
	}
	if copied.PriceTextEN != "Kr 350" {
		t.Fatalf("empty english price text should be mirrored, got %q", copied.PriceTextEN)
	}
}

func TestDayLabel(t *testing.T) {
	tuesday := time.Date(2026, 6, 23, 19, 30, 0, 0, time.UTC)

	if got := DayLabel(tuesday, "no"); got != "Tirsdag 23. juni" {
		t.Fatalf("norwegian label = %q", got)
	}
	if got := DayLabel(tuesday, "en"); got != "Tuesday 23 June" {
		t.Fatalf("english label = %q", got)
	}
}
