package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the global database handle shared by services.
var DB *gorm.DB

// Init opens the SQLite content store and runs auto migration.
// An empty databasePath falls back to kammerfest.db.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "kammerfest.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	if err = DB.AutoMigrate(
		&Editor{},
		&Venue{},
		&Artist{},
		&Event{},
		&EventDate{},
		&Article{},
		&Page{},
		&PageSection{},
		&SystemSetting{},
	); err != nil {
		return err
	}

	// Early deployments stored a single bilingual title column; the
	// paired NO/EN columns replaced it.
	migrator := DB.Migrator()
	if migrator.HasColumn(&Event{}, "title") {
		if dropErr := migrator.DropColumn(&Event{}, "title"); dropErr != nil {
			return dropErr
		}
	}

	if err := DB.Model(&Event{}).
		Where("status = '' OR status IS NULL").
		Update("status", "draft").Error; err != nil {
		return err
	}
	if err := DB.Model(&Article{}).
		Where("status = '' OR status IS NULL").
		Update("status", "draft").Error; err != nil {
		return err
	}

	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
