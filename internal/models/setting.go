package models

import "time"

// Setting records a release of the dictionary database.
type Setting struct {
	Base
	Date       time.Time `gorm:"uniqueIndex" json:"date"`
	DBVersion  int       `gorm:"column:db_version;not null" json:"db_version"`
	LastWordID int64     `gorm:"column:last_word_id" json:"last_word_id"`
	DBRelease  string    `gorm:"column:db_release;size:16;not null" json:"db_release"`
}

func (Setting) TableName() string {
	return TableSettings
}
