package models

import (
	"fmt"
	"time"
)

// Event is a dated milestone of the lexicon. Words point at events through
// the event_id column, not the primary key.
type Event struct {
	Base
	EventID    int64     `gorm:"column:event_id;not null;uniqueIndex" json:"event_id"`
	Name       string    `gorm:"size:64;not null" json:"name"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`
	Definition string    `gorm:"type:text;not null" json:"definition"`
	Annotation string    `gorm:"size:16;not null" json:"annotation"`
	Suffix     string    `gorm:"size:16;not null" json:"suffix"`
}

func (Event) TableName() string {
	return TableEvents
}

func (e Event) String() string {
	return fmt.Sprintf("<Event ID %d %s (%s)>", e.EventID, e.Name, e.Date.Format(time.DateOnly))
}
