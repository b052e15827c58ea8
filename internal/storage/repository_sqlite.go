package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yuuto7838/adsim/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps an opened gorm DB in the Repository interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) LoadCredential() (string, error) {
	var c game.Credential
	err := r.db.Order("id").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.APIKey, nil
}

func (r *sqliteRepository) SaveCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("credential key is empty")
	}
	// Single-row table: replace whatever is there.
	if err := r.db.Where("1 = 1").Delete(&game.Credential{}).Error; err != nil {
		return err
	}
	return r.db.Create(&game.Credential{APIKey: key}).Error
}

func (r *sqliteRepository) ClearCredential() error {
	return r.db.Where("1 = 1").Delete(&game.Credential{}).Error
}

func (r *sqliteRepository) AppendArchive(a *game.SessionArchive) error {
	if a == nil {
		return nil
	}
	return r.db.Create(a).Error
}

func (r *sqliteRepository) ListArchive(limit int) ([]game.SessionArchive, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []game.SessionArchive
	if err := r.db.Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
