package models

import "fmt"

type Key struct {
	Base
	Word     string `gorm:"size:64;not null;uniqueIndex:_word_language_uc" json:"word"`
	Language string `gorm:"size:16;not null;uniqueIndex:_word_language_uc" json:"language"`

	Definitions []*Definition `gorm:"many2many:connect_keys;joinForeignKey:KeyID;joinReferences:DefinitionID" json:"-"`
}

func (Key) TableName() string {
	return TableKeys
}

func (k Key) String() string {
	return fmt.Sprintf("<Key ID %d %s (%s)>", k.ID, k.Word, k.Language)
}
