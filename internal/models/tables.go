package models

import "time"

// Table names shared by the mappings, the selectors and the migrations.
const (
	TableAuthors     = "authors"
	TableDefinitions = "definitions"
	TableEvents      = "events"
	TableKeys        = "keys"
	TableSettings    = "settings"
	TableSyllables   = "syllables"
	TableTypes       = "types"
	TableWords       = "words"

	TableConnectAuthors = "connect_authors"
	TableConnectKeys    = "connect_keys"
	TableConnectWords   = "connect_words"
)

// Base holds the columns every dictionary table carries.
type Base struct {
	ID      int64     `gorm:"primaryKey" json:"id"`
	Created time.Time `gorm:"column:created;autoCreateTime;not null" json:"created"`
	Updated time.Time `gorm:"column:updated;autoUpdateTime" json:"updated"`
}

// All returns every mapped entity in migration order.
func All() []any {
	return []any{
		&Author{},
		&Event{},
		&Key{},
		&Setting{},
		&Syllable{},
		&Type{},
		&Word{},
		&Definition{},
	}
}
