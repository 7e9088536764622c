package handler_test

import (
	"sync"
	"testing"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/router"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ginOnce sync.Once

func setupHandlerTestDB(t *testing.T) func() {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.Editor{}, &db.Venue{}, &db.Artist{}, &db.Event{}, &db.EventDate{},
		&db.Article{}, &db.Page{}, &db.PageSection{}, &db.SystemSetting{},
	); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	db.DB = gdb

	if err := db.EnsureEditor("tester", "passord123"); err != nil {
		t.Fatalf("failed to seed editor: %v", err)
	}

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return router.SetupRouter(testRouterOptions(t))
}

func testRouterOptions(t *testing.T) router.Options {
	t.Helper()
	return router.Options{
		SessionSecret:   "test-secret",
		UploadDir:       t.TempDir(),
		UploadURLPath:   "/uploads",
		SiteBaseURL:     "http://kammerfest.test",
		TemplateGlob:    "../../web/template/*/*.html",
		RateLimitMax:    60,
		RateLimitWindow: time.Minute,
	}
}

func seedFestival(t *testing.T) {
	t.Helper()

	kirke := db.Venue{Slug: "risor-kirke", NameNO: "Risør kirke", NameEN: "Risør Church", Address: "Prestegata 7, Risør"}
	telt := db.Venue{Slug: "festivalteltet", NameNO: "Festivalteltet", NameEN: "The Festival Tent"}
	if err := db.DB.Create(&kirke).Error; err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}
	if err := db.DB.Create(&telt).Error; err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}

	andsnes := db.Artist{Slug: "leif-ove-andsnes", Name: "Leif Ove Andsnes", InstrumentNO: "Klaver", InstrumentEN: "Piano", Featured: true}
	if err := db.DB.Create(&andsnes).Error; err != nil {
		t.Fatalf("failed to seed artist: %v", err)
	}

	opening := db.Event{
		Slug:    "apningskonsert",
		TitleNO: "Åpningskonsert",
		TitleEN: "Opening Concert",
		Status:  "published",
		VenueID: kirke.ID,
		Artists: []db.Artist{andsnes},
		Dates: []db.EventDate{
			{StartsAt: time.Date(2026, 6, 23, 19, 30, 0, 0, time.UTC)},
		},
	}
	if err := db.DB.Create(&opening).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	morning := db.Event{
		Slug:    "morgenkonsert",
		TitleNO: "Morgenkonsert",
		TitleEN: "Morning Concert",
		Status:  "published",
		VenueID: telt.ID,
		Dates: []db.EventDate{
			{StartsAt: time.Date(2026, 6, 24, 11, 0, 0, 0, time.UTC)},
		},
	}
	if err := db.DB.Create(&morning).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	secret := db.Event{
		Slug:    "hemmelig-konsert",
		TitleNO: "Hemmelig konsert",
		Status:  "draft",
		VenueID: kirke.ID,
		Dates: []db.EventDate{
			{StartsAt: time.Date(2026, 6, 24, 22, 0, 0, 0, time.UTC)},
		},
	}
	if err := db.DB.Create(&secret).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
}
