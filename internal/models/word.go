package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Word is a dictionary entry. A word is active at event e when it started at
// or before e and has not ended yet, or ended after e. BeforeSave checks the
// event order of struct saves; chk_words_event_order enforces it for column
// updates as well.
type Word struct {
	Base
	IDOld        int64             `gorm:"column:id_old;not null" json:"id_old"`
	TIDOld       *int64            `gorm:"column:TID_old" json:"tid_old,omitempty"`
	Name         string            `gorm:"size:64;not null;index" json:"name"`
	Origin       string            `gorm:"size:128" json:"origin"`
	OriginX      string            `gorm:"column:origin_x;size:64" json:"origin_x"`
	Match        string            `gorm:"size:8" json:"match"`
	Rank         string            `gorm:"size:8" json:"rank"`
	Year         *time.Time        `gorm:"type:date" json:"year,omitempty"`
	Notes        datatypes.JSONMap `json:"notes,omitempty"`
	TypeID       int64             `gorm:"column:type;not null;index" json:"type_id"`
	EventStartID int64             `gorm:"column:event_start;not null;index" json:"event_start_id"`
	EventEndID   *int64            `gorm:"column:event_end;index;check:chk_words_event_order,event_end IS NULL OR event_end >= event_start" json:"event_end_id,omitempty"`

	Type        *Type         `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	EventStart  *Event        `gorm:"foreignKey:EventStartID;references:EventID" json:"event_start,omitempty"`
	EventEnd    *Event        `gorm:"foreignKey:EventEndID;references:EventID" json:"event_end,omitempty"`
	Authors     []*Author     `gorm:"many2many:connect_authors;joinForeignKey:WordID;joinReferences:AuthorID" json:"authors,omitempty"`
	Definitions []*Definition `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"definitions,omitempty"`
	Derivatives []*Word       `gorm:"many2many:connect_words;joinForeignKey:ParentID;joinReferences:ChildID" json:"-"`
	Parents     []*Word       `gorm:"many2many:connect_words;joinForeignKey:ChildID;joinReferences:ParentID" json:"-"`
}

func (Word) TableName() string {
	return TableWords
}

func (w Word) String() string {
	return fmt.Sprintf("<Word ID %d %s>", w.ID, w.Name)
}

// ActiveAt reports whether the word belongs to the lexicon at the given event.
func (w Word) ActiveAt(eventID int64) bool {
	if w.EventStartID > eventID {
		return false
	}
	return w.EventEndID == nil || *w.EventEndID > eventID
}

// Note returns a string value stored in Notes, or "" when absent.
func (w Word) Note(name string) string {
	if w.Notes == nil {
		return ""
	}
	v, ok := w.Notes[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (w *Word) BeforeSave(tx *gorm.DB) error {
	if w.TypeID == 0 && (w.Type == nil || w.Type.ID == 0) {
		return fmt.Errorf("%w: %q", ErrMissingType, w.Name)
	}
	if w.EventEndID != nil && *w.EventEndID < w.EventStartID {
		return fmt.Errorf("%w: %q ends at %d, starts at %d", ErrEventOrder, w.Name, *w.EventEndID, w.EventStartID)
	}
	if w.ID != 0 {
		for _, d := range w.Derivatives {
			if d != nil && d.ID == w.ID {
				return fmt.Errorf("%w: %q", ErrSelfDerivation, w.Name)
			}
		}
	}
	return nil
}
