package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the sqlite database and runs the automigration. An empty
// databasePath falls back to the default site.db.
func Open(databasePath string) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "site.db"
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// Migrate creates or updates the tables for every content model.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&Page{},
		&HomePage{},
		&CaseStudyIndexPage{},
		&CaseStudyPage{},
		&CaseStudyGalleryImage{},
		&AboutPage{},
		&SocialLink{},
		&MethodePage{},
		&MethodeStep{},
		&ContactPage{},
		&ContactFormField{},
		&ClientTestimonial{},
		&PressCut{},
		&Tag{},
		&CaseStudyTag{},
		&MediaRef{},
		&SiteSetting{},
	)
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
