package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loglan_core/internal/config"
	"loglan_core/internal/database"
	"loglan_core/internal/models"
	"loglan_core/internal/testutil"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	cfg := config.Default().Database
	cfg.Driver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "loglan.db")
	return cfg
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = "mysql"

	db, err := database.Open(cfg, zap.NewNop())
	require.ErrorIs(t, err, database.ErrUnsupportedDriver)
	assert.Nil(t, db)

	_, err = database.Connect(context.Background(), sqliteConfig(t), zap.NewNop())
	require.ErrorIs(t, err, database.ErrUnsupportedDriver)
}

func TestEnsureDatabaseExists_SkipsSQLite(t *testing.T) {
	require.NoError(t, database.EnsureDatabaseExists(context.Background(), sqliteConfig(t), zap.NewNop()))
}

func TestRunMigrations(t *testing.T) {
	log := zap.NewNop()
	db, err := database.Open(sqliteConfig(t), log)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db, log) })

	ctx := context.Background()
	require.NoError(t, database.RunMigrations(ctx, db, log))
	// second run must be a no-op
	require.NoError(t, database.RunMigrations(ctx, db, log))

	for _, table := range []string{
		models.TableAuthors, models.TableDefinitions, models.TableEvents, models.TableKeys,
		models.TableSettings, models.TableSyllables, models.TableTypes, models.TableWords,
		models.TableConnectAuthors, models.TableConnectKeys, models.TableConnectWords,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	assert.True(t, db.Migrator().HasIndex(models.TableConnectWords, "index_connect_words_child"))
	assert.True(t, db.Migrator().HasIndex(models.TableKeys, "index_keys_language"))
	assert.True(t, db.Migrator().HasColumn(&models.Word{}, "event_start"))
	assert.True(t, db.Migrator().HasColumn(&models.Word{}, "TID_old"))
}

func TestRunMigrations_ForeignKeys(t *testing.T) {
	log := zap.NewNop()
	db, err := database.Open(sqliteConfig(t), log)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db, log) })
	require.NoError(t, database.RunMigrations(context.Background(), db, log))

	word := models.Word{Name: "kakto", TypeID: 42, EventStartID: 1}
	assert.Error(t, db.Create(&word).Error, "type 42 does not exist")
}

func TestRunMigrations_EventOrderCheck(t *testing.T) {
	db := testutil.NewDictionary(t)
	ctx := context.Background()

	assert.True(t, db.Migrator().HasConstraint(&models.Word{}, "chk_words_event_order"))

	var word models.Word
	require.NoError(t, db.WithContext(ctx).First(&word, testutil.Pru).Error)
	require.Equal(t, testutil.EventDoubledVowels, word.EventStartID)

	err := db.WithContext(ctx).Model(&word).Update("event_end", testutil.EventStart).Error
	assert.Error(t, err, "end event before start event")

	var fresh models.Word
	require.NoError(t, db.WithContext(ctx).First(&fresh, testutil.Pru).Error)
	require.NoError(t, db.WithContext(ctx).Model(&fresh).Update("event_end", testutil.EventRepair).Error)

	var stored models.Word
	require.NoError(t, db.WithContext(ctx).First(&stored, testutil.Pru).Error)
	require.NotNil(t, stored.EventEndID)
	assert.Equal(t, testutil.EventRepair, *stored.EventEndID)
}
