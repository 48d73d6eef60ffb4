// Package testutil provides a small seeded dictionary on in-memory sqlite.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loglan_core/internal/database"
	"loglan_core/internal/models"
)

// Word ids of the seeded dictionary.
const (
	Kak int64 = iota + 1
	Kakto
	Kao
	Pru
	Pruci
	Prukao
	Cii
	Flekukfoa
	Lekveo
	Osmio
	Riyhasgru
	Riyvei
	Testuda
)

// Event ids of the seeded dictionary. Words 7-9 appear at EventCleanup,
// words 10-13 end there.
const (
	EventStart int64 = iota + 1
	EventSyllables
	EventDoubledVowels
	EventRandallTrial
	EventCleanup
	EventRepair
)

// NewDB opens an empty, migrated in-memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection would get its own :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.RunMigrations(context.Background(), db, zap.NewNop()))
	return db
}

// NewDictionary opens a database seeded with the fixture dictionary.
func NewDictionary(t testing.TB) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	Seed(t, db)
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func year(y int) *time.Time {
	t := date(y, time.January, 1)
	return &t
}

func ptr[T any](v T) *T {
	return &v
}

func Seed(t testing.TB, db *gorm.DB) {
	t.Helper()

	types := []models.Type{
		{Base: models.Base{ID: 1}, Type: "2-Cpx", TypeX: "Predicate", Group: "Cpx", Parentable: true,
			Description: "Two-term Complex E.g. flicea, from fli(du)+ce(nj)a=liquid-become."},
		{Base: models.Base{ID: 2}, Type: "C-Prim", TypeX: "Predicate", Group: "Prim", Parentable: false,
			Description: "Composite Primitives, drawn from several target languages."},
		{Base: models.Base{ID: 3}, Type: "Afx", TypeX: "Affix", Group: "Little", Parentable: true,
			Description: "Affix."},
		{Base: models.Base{ID: 4}, Type: "3-Cpx", TypeX: "Predicate", Group: "Cpx", Parentable: true},
		{Base: models.Base{ID: 5}, Type: "4-Cpx", TypeX: "Predicate", Group: "Cpx", Parentable: true},
		{Base: models.Base{ID: 6}, Type: "5-Cpx", TypeX: "Predicate", Group: "Cpx", Parentable: true},
		{Base: models.Base{ID: 7}, Type: "D-Prim", TypeX: "Predicate", Group: "Prim", Parentable: false},
		{Base: models.Base{ID: 8}, Type: "L-Prim", TypeX: "Predicate", Group: "Prim", Parentable: false},
		{Base: models.Base{ID: 9}, Type: "Cpd", TypeX: "Predicate", Group: "Cpd", Parentable: true},
		{Base: models.Base{ID: 10}, Type: "LW", TypeX: "Little Word", Group: "Little", Parentable: false},
	}
	require.NoError(t, db.Create(&types).Error)

	events := []models.Event{
		{EventID: EventStart, Name: "Start", Date: date(1975, 1, 1),
			Definition: "The initial vocabulary before updates.", Annotation: "Initial", Suffix: "INIT"},
		{EventID: EventSyllables, Name: "94/2", Date: date(1994, 1, 2),
			Definition: "Any 3+ syllable Complex that is CVC initial must be 'y' hyphenated.", Annotation: "Syllables", Suffix: "SC"},
		{EventID: EventDoubledVowels, Name: "No double vowels in borrowings", Date: date(2013, 1, 1),
			Definition: "Doubled vowels are prohibited from Borrowings.", Annotation: "Doubled Vowels", Suffix: "DV"},
		{EventID: EventRandallTrial, Name: "Randall Trial Words 1", Date: date(2013, 12, 18),
			Definition: "Randall Holmes trial words plus grammar vocab", Annotation: "Randall Trial", Suffix: "RH1"},
		{EventID: EventCleanup, Name: "Randall Dictionary Cleanup", Date: date(2016, 1, 15),
			Definition: "parsed all the words in the dictionary", Annotation: "Randall Cleanup", Suffix: "RDC"},
		{EventID: EventRepair, Name: "Torrua Dictionary Repair", Date: date(2019, 5, 25),
			Definition: "Repair of the dictionary by Torrua and Peter Hill", Annotation: "Torrua Repair", Suffix: "TDR"},
	}
	for i := range events {
		events[i].ID = events[i].EventID
	}
	require.NoError(t, db.Create(&events).Error)

	words := []models.Word{
		{Base: models.Base{ID: Kak}, IDOld: 3869, Name: "kak", TypeID: 3, Origin: "kak(to)",
			EventStartID: EventStart, Rank: "7+", Year: year(1988)},
		{Base: models.Base{ID: Kakto}, IDOld: 3880, Name: "kakto", TypeID: 2,
			Origin:       "3/3R akt | 4/4S acto | 3/3F acte | 2/3E act | 2/3H kam",
			EventStartID: EventStart, Match: "56%", Rank: "1.0", Year: year(1975)},
		{Base: models.Base{ID: Kao}, IDOld: 9983, Name: "kao", TypeID: 3, Origin: "ka(kt)o",
			EventStartID: EventStart, Rank: "7+?", Year: year(1988),
			Notes: datatypes.JSONMap{"author": "(?)", "year": "(?)"}},
		{Base: models.Base{ID: Pru}, IDOld: 7188, Name: "pru", TypeID: 3, Origin: "pru(ci)",
			EventStartID: EventDoubledVowels, Rank: "7+", Year: year(1988)},
		{Base: models.Base{ID: Pruci}, IDOld: 7190, Name: "pruci", TypeID: 2,
			Origin:       "3/4E prove | 2/4C sh yen | 3/6S prueba | 2/5R proba | 2/5F epreuve | 2/5G probe | 2/6J tameshi",
			EventStartID: EventStart, Match: "49%", Rank: "1.9", Year: year(1975)},
		{Base: models.Base{ID: Prukao}, IDOld: 7191, Name: "prukao", TypeID: 1, Origin: "pru(ci)+ka(kt)o",
			OriginX: "test act", EventStartID: EventDoubledVowels, Rank: "1.9", Year: year(1975)},
		{Base: models.Base{ID: Cii}, IDOld: 10091, Name: "cii", TypeID: 10,
			EventStartID: EventCleanup, Year: year(2013), Notes: datatypes.JSONMap{"year": "(to '15)"}},
		{Base: models.Base{ID: Flekukfoa}, IDOld: 10098, Name: "flekukfoa", TypeID: 6,
			Origin: "fle(ti)+kuk(ra)+fo(rm)a", OriginX: "flying quick form",
			EventStartID: EventCleanup, Year: year(2008), Notes: datatypes.JSONMap{"year": "(to '15)"}},
		{Base: models.Base{ID: Lekveo}, IDOld: 10099, Name: "lekveo", TypeID: 5,
			Origin: "le(n)k(i)+ve(sl)o", OriginX: "electricity vessel",
			EventStartID: EventCleanup, Year: year(2008), Notes: datatypes.JSONMap{"year": "(to '15)"}},
		{Base: models.Base{ID: Osmio}, IDOld: 6637, Name: "osmio", TypeID: 8, Origin: "ISV",
			EventStartID: EventStart, EventEndID: ptr(EventCleanup), Rank: "7+", Year: year(1988),
			Notes: datatypes.JSONMap{"year": "(fixed bad joint '16)"}},
		{Base: models.Base{ID: Riyhasgru}, IDOld: 7668, Name: "riyhasgru", TypeID: 5,
			Origin: "rih+y+has(fa)+gru(pa)", OriginX: "few house group",
			EventStartID: EventStart, EventEndID: ptr(EventCleanup), Rank: "7+", Year: year(1999),
			Notes: datatypes.JSONMap{"year": "(corrected CV to CVh '16)"}},
		{Base: models.Base{ID: Riyvei}, IDOld: 7669, Name: "riyvei", TypeID: 4,
			Origin: "rih+y+ve(tc)i", OriginX: "several events",
			EventStartID: EventStart, EventEndID: ptr(EventCleanup), Rank: "7+", Year: year(1999),
			Notes: datatypes.JSONMap{"year": "(corrected CV to CVh '16)"}},
		{Base: models.Base{ID: Testuda}, IDOld: 9036, Name: "testuda", TypeID: 8, Origin: "Lin. Testudines",
			EventStartID: EventStart, EventEndID: ptr(EventCleanup), Rank: "7+", Year: year(1997),
			Notes: datatypes.JSONMap{"year": "(fixed '16)"}},
	}
	require.NoError(t, db.Create(&words).Error)

	authors := []models.Author{
		{Base: models.Base{ID: 1}, Abbreviation: "L4", FullName: "Loglan 4&5",
			Notes: "The printed-on-paper book, 1975 version of the dictionary."},
		{Base: models.Base{ID: 2}, Abbreviation: "JCB", FullName: "James Cooke Brown"},
	}
	require.NoError(t, db.Create(&authors).Error)

	keyWords := []string{"examine", "test", "tester", "testable", "testee", "examination",
		"act", "undertake", "actor", "end", "activity"}
	keys := make([]models.Key, 0, len(keyWords))
	for i, w := range keyWords {
		keys = append(keys, models.Key{Base: models.Base{ID: int64(i + 1)}, Word: w, Language: "en"})
	}
	require.NoError(t, db.Create(&keys).Error)

	definitions := []models.Definition{
		{WordID: Prukao, Position: 1, Body: "K «test»/«examine» B for P with test V.", Slots: ptr(4), CaseTags: "K-BPV", GrammarCode: "v"},
		{WordID: Prukao, Position: 2, Body: "a «tester», one who uses tests.", GrammarCode: "n"},
		{WordID: Prukao, Position: 3, Body: "«testable», of one who/that which is -ed.", Usage: "nu %", GrammarCode: "a"},
		{WordID: Prukao, Position: 4, Body: "a «testee», one who is -ed.", Usage: "nu %", GrammarCode: "n"},
		{WordID: Prukao, Position: 5, Body: "a «test»/«examination», an act of testing.", Usage: "po %", GrammarCode: "n"},
		{WordID: Kakto, Position: 1, Body: "K «act»/«undertake» action V with end/purpose P.", Slots: ptr(3), CaseTags: "K-VP", GrammarCode: "v"},
		{WordID: Kakto, Position: 2, Body: "an «actor», one who seeks ends, general term.", GrammarCode: "n"},
		{WordID: Kakto, Position: 3, Body: "an «end», what an actor seeks, but see {furkao}.", Usage: "fu %", GrammarCode: "n"},
		{WordID: Kakto, Position: 4, Body: "an «act», what an actor does, but see {nurkao}.", Usage: "nu %", GrammarCode: "n"},
		{WordID: Kakto, Position: 5, Body: "an «activity», specific instance.", Usage: "po %", GrammarCode: "n"},
		{WordID: Pruci, Position: 1, Body: "V is a «test»/«examination» for property B in any member of class F.", Slots: ptr(3), CaseTags: "V-BF", GrammarCode: "n"},
		{WordID: Pruci, Position: 2, Body: "«test», test for ... a property ... in a member of ....", GrammarCode: "vt"},
		{WordID: Pruci, Position: 3, Body: "«testable», of classes with -able members.", Usage: "fu %", GrammarCode: "a"},
		{WordID: Pruci, Position: 4, Body: "«testable», of testable properties.", Usage: "nu %", GrammarCode: "a"},
		{WordID: Kak, Position: 1, Body: "a combining form of {kakto}, «act».", GrammarCode: "af"},
		{WordID: Kao, Position: 1, Body: "a combining form of {kakto}, «act».", GrammarCode: "af"},
		{WordID: Pru, Position: 1, Body: "a combining form of {pruci}, «test».", GrammarCode: "af"},
	}
	for i := range definitions {
		definitions[i].ID = int64(i + 1)
		definitions[i].Language = "en"
	}
	require.NoError(t, db.Create(&definitions).Error)

	link(t, db, models.TableConnectAuthors, "author_id", "word_id",
		[][2]int64{{1, Kak}, {1, Kakto}, {1, Kao}, {2, Pru}, {2, Pruci}, {1, Prukao}, {2, Prukao}})
	link(t, db, models.TableConnectKeys, "key_id", "definition_id",
		[][2]int64{{1, 1}, {2, 1}, {3, 2}, {4, 3}, {5, 4}, {6, 5}, {2, 5}, {7, 6}, {8, 6}, {9, 7}, {10, 8},
			{7, 9}, {11, 10}, {6, 11}, {2, 11}, {2, 12}, {4, 13}, {4, 14}, {7, 15}, {7, 16}, {2, 17}})
	link(t, db, models.TableConnectWords, "parent_id", "child_id",
		[][2]int64{{Kakto, Kak}, {Kakto, Kao}, {Kakto, Prukao}, {Pruci, Pru}, {Pruci, Prukao}})

	settings := []models.Setting{
		{Date: time.Date(2020, 10, 9, 9, 10, 20, 0, time.UTC), DBVersion: 2, LastWordID: 10141, DBRelease: "4.5.9"},
	}
	require.NoError(t, db.Create(&settings).Error)

	syllables := []models.Syllable{
		{Name: "vr", Type: "InitialCC", Allowed: true},
		{Name: "zb", Type: "InitialCC", Allowed: true},
		{Name: "zv", Type: "InitialCC", Allowed: true},
		{Name: "cdz", Type: "UnintelligibleCCC"},
		{Name: "cvl", Type: "UnintelligibleCCC"},
		{Name: "ndj", Type: "UnintelligibleCCC"},
	}
	require.NoError(t, db.Create(&syllables).Error)
}

func link(t testing.TB, db *gorm.DB, table, left, right string, pairs [][2]int64) {
	t.Helper()
	rows := make([]map[string]any, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, map[string]any{left: p[0], right: p[1]})
	}
	require.NoError(t, db.Table(table).Create(&rows).Error)
}
