package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loglan_core/internal/config"
	"loglan_core/internal/models"
	"loglan_core/internal/services"
	"loglan_core/internal/testutil"
)

var envKeys = []string{
	"LOG_LEVEL", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD",
	"DB_DATABASE", "DB_SSLMODE", "DB_ADMIN_USER", "DB_ADMIN_PASSWORD", "SQLITE_PATH",
	"DB_MAX_OPEN_CONNS",
}

// dictionaryConfig migrates and seeds a sqlite file and returns a config
// file pointing at it.
func dictionaryConfig(t *testing.T) (configPath, dbPath string) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	dir := t.TempDir()
	dbPath = filepath.Join(dir, "dictionary.db")
	configPath = filepath.Join(dir, "lod.yaml")
	content := "log_level: error\ndatabase:\n  driver: sqlite\n  sqlite_path: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	out, err := execute(t, "--config", configPath, "migrate")
	require.NoError(t, err)
	require.Equal(t, "Schema is up to date\n", out)

	db := openFile(t, dbPath)
	testutil.Seed(t, db)
	closeDB(t, db)
	return configPath, dbPath
}

func openFile(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	return db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestWordsCommand(t *testing.T) {
	cfg, _ := dictionaryConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "by name",
			args: []string{"words", "pru*"},
			want: "4\tpru\tAfx\n5\tpruci\tC-Prim\n6\tprukao\t2-Cpx\n",
		},
		{
			name: "case insensitive",
			args: []string{"words", "PRUCI"},
			want: "5\tpruci\tC-Prim\n",
		},
		{
			name: "case sensitive",
			args: []string{"words", "PRUCI", "--case-sensitive"},
			want: "",
		},
		{
			name: "first event with limit",
			args: []string{"words", "--event", "1", "--limit", "2"},
			want: "1\tkak\tAfx\n2\tkakto\tC-Prim\n",
		},
		{
			name: "latest event by group",
			args: []string{"words", "--event", "0", "--group", "Cpx"},
			want: "8\tflekukfoa\t5-Cpx\n9\tlekveo\t4-Cpx\n6\tprukao\t2-Cpx\n",
		},
		{
			name: "by key",
			args: []string{"words", "--key", "testable", "--lang", "en"},
			want: "5\tpruci\tC-Prim\n6\tprukao\t2-Cpx\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"--config", cfg}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDefinitionsCommand(t *testing.T) {
	cfg, _ := dictionaryConfig(t)

	out, err := execute(t, "--config", cfg, "definitions", "--word", "3")
	require.NoError(t, err)
	assert.Equal(t, "kao\t(af)\ta combining form of {kakto}, «act».\n", out)

	out, err = execute(t, "--config", cfg, "definitions", "actor")
	require.NoError(t, err)
	assert.Equal(t, "kakto\t(n)\tan «actor», one who seeks ends, general term.\n", out)
}

func TestKeysCommand(t *testing.T) {
	cfg, _ := dictionaryConfig(t)

	out, err := execute(t, "--config", cfg, "keys", "test*", "--lang", "en")
	require.NoError(t, err)
	assert.Equal(t, "test\ten\ntestable\ten\ntestee\ten\ntester\ten\n", out)
}

func TestSourcesCommand(t *testing.T) {
	cfg, _ := dictionaryConfig(t)

	out, err := execute(t, "--config", cfg, "sources", "prukao")
	require.NoError(t, err)
	assert.Equal(t, "kakto\npruci\n", out)

	out, err = execute(t, "--config", cfg, "sources", "osmio")
	require.NoError(t, err)
	assert.Equal(t, "osmio: ISV\n", out)

	_, err = execute(t, "--config", cfg, "sources", "nosuchword")
	assert.ErrorContains(t, err, "no word named")
}

func TestLinkCommand(t *testing.T) {
	cfg, dbPath := dictionaryConfig(t)

	out, err := execute(t, "--config", cfg, "link", "--authors", "7", "2")
	require.NoError(t, err)
	assert.Equal(t, "Linked 1 to word 7\n", out)

	_, err = execute(t, "--config", cfg, "link", "1", "x")
	assert.ErrorContains(t, err, "invalid id")

	db := openFile(t, dbPath)
	defer closeDB(t, db)
	var n int64
	require.NoError(t, db.Table(models.TableConnectAuthors).Where("word_id = ?", 7).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestExportCommand(t *testing.T) {
	cfg, _ := dictionaryConfig(t)

	out, err := execute(t, "--config", cfg, "export", "syllables")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 6)

	dir := filepath.Join(t.TempDir(), "export")
	out, err = execute(t, "--config", cfg, "export", "--dir", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
	for _, table := range services.ExportTables {
		assert.FileExists(t, filepath.Join(dir, table+".txt"))
	}

	authors, err := os.ReadFile(filepath.Join(dir, "authors.txt"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(authors)), "\n"), 2)

	_, err = execute(t, "--config", cfg, "export", "nope")
	assert.ErrorIs(t, err, services.ErrUnknownTable)
}

func TestSchemaCommand(t *testing.T) {
	cfg, _ := dictionaryConfig(t)

	out, err := execute(t, "--config", cfg, "schema")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "erDiagram\n"))
	assert.Contains(t, out, "WORDS }o--o{ WORDS")
}

func TestInvalidConfig(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("DB_DRIVER", "oracle")

	_, err := execute(t, "migrate")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
