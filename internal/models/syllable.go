package models

type Syllable struct {
	Base
	Name    string `gorm:"size:8;not null" json:"name"`
	Type    string `gorm:"column:type;size:32;not null" json:"type"`
	Allowed bool   `json:"allowed"`
}

func (Syllable) TableName() string {
	return TableSyllables
}
