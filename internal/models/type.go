package models

import "fmt"

// Type classifies words. Type is the short code ("C-Prim"), TypeX the
// readable name ("Predicate") and Group the family ("Prim", "Cpx", "Little").
type Type struct {
	Base
	Type        string `gorm:"column:type;size:16;not null" json:"type"`
	TypeX       string `gorm:"column:type_x;size:16;not null" json:"type_x"`
	Group       string `gorm:"column:group;size:16" json:"group"`
	Parentable  bool   `gorm:"not null" json:"parentable"`
	Description string `gorm:"size:255" json:"description"`
}

// Well known type values.
const (
	GroupComplex = "Cpx"
	GroupPrim    = "Prim"
	TypeAffix    = "Afx"
	TypeCompound = "Cpd"
	TypeLittle   = "LW"
	TypeCPrim    = "C-Prim"
	TypeXAffix   = "Affix"
)

func (Type) TableName() string {
	return TableTypes
}

func (t Type) String() string {
	return fmt.Sprintf("<Type ID %d %s (%s)>", t.ID, t.Type, t.TypeX)
}
