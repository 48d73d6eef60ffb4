package models

import (
	"fmt"
	"regexp"
	"strconv"
)

// ApprovedCaseTags lists the case tags a definition may carry.
var ApprovedCaseTags = []string{"B", "C", "D", "F", "G", "J", "K", "N", "P", "S", "V"}

// KeyPattern matches «key» markers inside a definition body.
var KeyPattern = regexp.MustCompile(`«(.+?)»`)

type Definition struct {
	Base
	WordID      int64  `gorm:"column:word_id;not null;index" json:"word_id"`
	Position    int    `gorm:"not null" json:"position"`
	Body        string `gorm:"type:text;not null" json:"body"`
	Usage       string `gorm:"size:64" json:"usage"`
	GrammarCode string `gorm:"column:grammar_code;size:8" json:"grammar_code"`
	Slots       *int   `json:"slots,omitempty"`
	CaseTags    string `gorm:"column:case_tags;size:16" json:"case_tags"`
	Language    string `gorm:"size:16" json:"language"`
	Notes       string `gorm:"size:255" json:"notes"`

	SourceWord *Word  `gorm:"foreignKey:WordID" json:"-"`
	Keys       []*Key `gorm:"many2many:connect_keys;joinForeignKey:DefinitionID;joinReferences:KeyID" json:"keys,omitempty"`
}

func (Definition) TableName() string {
	return TableDefinitions
}

func (d Definition) String() string {
	body := []rune(d.Body)
	if len(body) > 20 {
		body = body[:20]
	}
	return fmt.Sprintf("<Definition ID %d/%d %s…>", d.ID, d.WordID, string(body))
}

// Grammar combines slots and grammar code, e.g. "(3v)" or "(n)".
func (d Definition) Grammar() string {
	slots := ""
	if d.Slots != nil && *d.Slots != 0 {
		slots = strconv.Itoa(*d.Slots)
	}
	return "(" + slots + d.GrammarCode + ")"
}

// MarkedKeys returns the words enclosed in «» in the body, in order.
func (d Definition) MarkedKeys() []string {
	matches := KeyPattern.FindAllStringSubmatch(d.Body, -1)
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m[1])
	}
	return keys
}
