package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yuuto7838/adsim/internal/game"
)

// OpenAndMigrate opens the SQLite database at the given path and migrates
// the persisted tables: the credential row (the API key surviving across
// sessions) and the session archive.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Credential{}, &game.SessionArchive{}); err != nil {
		return nil, err
	}
	return db, nil
}
