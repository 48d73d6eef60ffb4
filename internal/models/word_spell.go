package models

// WordSpell is the spelling projection of a word used by the spell export.
type WordSpell struct {
	Word
}
