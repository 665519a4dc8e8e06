package seedbot

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Database interface {
	CreateGenerationRecord(r *GenerationRecord) error
	GetRecentGenerationRecords(limit int) ([]*GenerationRecord, error)
	PurgeGenerationRecords(olderThan time.Time) (int64, error)
}

// GenerationRecord is one image request's terminal outcome.
type GenerationRecord struct {
	ID        uint `gorm:"primaryKey"`
	RequestID string
	GuildID   string
	ChannelID string
	UserID    string
	Prompt    string
	Model     string
	Size      string
	Status    string
	Message   string
	FromCache bool
	CreatedAt time.Time
}

type DB struct {
	*gorm.DB
}

func NewDB(dsn string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(&GenerationRecord{})

	return &DB{db}, nil
}

func (db *DB) CreateGenerationRecord(r *GenerationRecord) error {
	return db.DB.Create(r).Error
}

func (db *DB) GetRecentGenerationRecords(limit int) ([]*GenerationRecord, error) {
	var records []*GenerationRecord
	err := db.DB.Order("created_at desc").Limit(limit).Find(&records).Error
	return records, err
}

func (db *DB) PurgeGenerationRecords(olderThan time.Time) (int64, error) {
	result := db.DB.Where("created_at < ?", olderThan).Delete(&GenerationRecord{})
	return result.RowsAffected, result.Error
}
