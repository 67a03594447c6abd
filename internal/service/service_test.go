package service

import (
	"context"
	"path/filepath"
	"testing"

	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/stretchr/testify/require"
	"github.com/user/actorhub/internal/config"
	"github.com/user/actorhub/internal/repository"
)

func newTestRepo(t *testing.T) *repository.ActorRepository {
	t.Helper()
	db, err := repository.InitDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "service.db"),
	}, true)
	require.NoError(t, err)

	repos := repository.NewRepositories(db)
	t.Cleanup(func() { repos.Close() })
	return repos.Actor
}

func newTestService(t *testing.T) (*ActorService, *repository.ActorRepository) {
	t.Helper()
	repo := newTestRepo(t)
	return NewActorService(repo, lagertest.NewTestLogger("test")), repo
}

func count(t *testing.T, repo *repository.ActorRepository) int64 {
	t.Helper()
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	return n
}
