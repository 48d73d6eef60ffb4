//go:build integration

package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"loglan_core/internal/app"
	"loglan_core/internal/config"
	"loglan_core/internal/database"
	"loglan_core/internal/selectors"
	"loglan_core/internal/testutil"
)

// startPostgres runs a throwaway server. The dictionary database itself is
// left for EnsureDatabaseExists to create.
func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:18-alpine",
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("lod"),
		tcpostgres.WithPassword("lod"),
		tcpostgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.DatabaseConfig{
		Driver:   config.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		User:     "lod",
		Password: "lod",
		Name:     "loglan",
		SSLMode:  "disable",
	}
}

func TestPostgres_Integration(t *testing.T) {
	ctx := context.Background()
	dbCfg := startPostgres(t)
	log := zap.NewNop()

	a, err := app.New(ctx, config.Config{Database: dbCfg}, log)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, database.EnsureDatabaseExists(ctx, dbCfg, log))
	require.NoError(t, a.Migrate(ctx))
	require.NoError(t, a.Migrate(ctx))
	testutil.Seed(t, a.DB)

	t.Run("Selectors", func(t *testing.T) {
		words, err := selectors.Words(a.SelectorOptions(false)...).ByName("PRU*").All(ctx, a.DB)
		require.NoError(t, err)
		assert.Len(t, words, 3)

		words, err = selectors.Words(a.SelectorOptions(true)...).ByName("PRU*").All(ctx, a.DB)
		require.NoError(t, err)
		assert.Empty(t, words)

		n, err := selectors.Words(a.SelectorOptions(false)...).ByEvent(0).Count(ctx, a.DB)
		require.NoError(t, err)
		assert.Equal(t, int64(9), n)

		n, err = selectors.Definitions(a.SelectorOptions(false)...).ByKey("test", "en").Count(ctx, a.DB)
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)
	})

	t.Run("Repositories", func(t *testing.T) {
		w, err := a.Words.Load(ctx, testutil.Prukao)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Len(t, w.Definitions, 5)
		assert.Len(t, w.Parents, 2)

		latest, err := a.Events.LatestID(ctx)
		require.NoError(t, err)
		assert.Equal(t, testutil.EventRepair, latest)
	})

	t.Run("Schema", func(t *testing.T) {
		svc, err := a.Schema(ctx)
		require.NoError(t, err)

		diagram, err := svc.VisualizeSchema(ctx)
		require.NoError(t, err)
		assert.Contains(t, diagram, "WORDS }o--o{ WORDS")
		assert.Contains(t, diagram, "DEFINITIONS ||--o{ WORDS")
		assert.Contains(t, diagram, "varchar name")
	})
}
