package models

import "fmt"

type Author struct {
	Base
	Abbreviation string `gorm:"size:64;not null;uniqueIndex" json:"abbreviation"`
	FullName     string `gorm:"column:full_name;size:64" json:"full_name"`
	Notes        string `gorm:"size:128" json:"notes"`

	Contribution []*Word `gorm:"many2many:connect_authors;joinForeignKey:AuthorID;joinReferences:WordID" json:"-"`
}

func (Author) TableName() string {
	return TableAuthors
}

func (a Author) String() string {
	return fmt.Sprintf("<Author ID %d %s (%s)>", a.ID, a.Abbreviation, a.FullName)
}
