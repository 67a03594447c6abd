package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/actorhub/internal/config"
	"github.com/user/actorhub/internal/model"
)

func setupRepo(t *testing.T) *ActorRepository {
	t.Helper()
	db, err := InitDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "actors.db"),
	}, true)
	require.NoError(t, err)

	repos := NewRepositories(db)
	t.Cleanup(func() { repos.Close() })
	return repos.Actor
}

func seed(t *testing.T, r *ActorRepository, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, r.Create(context.Background(), &model.Actor{
			Name:   fmt.Sprintf("Actor %02d", i),
			Type:   "Main",
			Rank:   i,
			Source: "test",
		}))
	}
}

func intPtr(v int) *int { return &v }

func ranksOf(actors []model.Actor) []int {
	out := make([]int, 0, len(actors))
	for _, a := range actors {
		out = append(out, a.Rank)
	}
	return out
}

func TestCreate_AssignsIDAndRejectsDuplicateRank(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	a := &model.Actor{Name: "Al Pacino", Type: "Main", Rank: 1, Source: "IMDb"}
	require.NoError(t, r.Create(ctx, a))
	assert.NotEqual(t, uuid.Nil, a.ID)

	dup := &model.Actor{Name: "Robert De Niro", Type: "Main", Rank: 1, Source: "IMDb"}
	assert.ErrorIs(t, r.Create(ctx, dup), ErrDuplicateRank)

	count, err := r.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFindByIDAndRank(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	seed(t, r, 3)

	got, err := r.FindByRank(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Actor 02", got.Name)

	byID, err := r.FindByID(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, got.ID, byID.ID)

	missing, err := r.FindByRank(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = r.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestList(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	seed(t, r, 25)

	tests := []struct {
		name  string
		query model.ActorQuery
		want  []int
	}{
		{
			name:  "second page of ten",
			query: model.ActorQuery{PageNumber: 2, PageSize: 10},
			want:  []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		},
		{
			name:  "past the end is empty",
			query: model.ActorQuery{PageNumber: 4, PageSize: 10},
			want:  []int{},
		},
		{
			name:  "rank range applied when both bounds set",
			query: model.ActorQuery{RankStart: intPtr(5), RankEnd: intPtr(7), PageNumber: 1, PageSize: 10},
			want:  []int{5, 6, 7},
		},
		{
			name:  "single bound is ignored",
			query: model.ActorQuery{RankStart: intPtr(20), PageNumber: 1, PageSize: 3},
			want:  []int{1, 2, 3},
		},
		{
			name:  "name contains",
			query: model.ActorQuery{Name: "Actor 1", PageNumber: 1, PageSize: 100},
			want:  []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
		},
		{
			name:  "defaults when paging unset",
			query: model.ActorQuery{},
			want:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ranksOf(got))
		})
	}
}

func TestUpdate(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	seed(t, r, 2)

	first, err := r.FindByRank(ctx, 1)
	require.NoError(t, err)

	first.Name = "Renamed"
	first.Details = ""
	ok, err := r.Update(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := r.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	first.Rank = 2
	_, err = r.Update(ctx, first)
	assert.ErrorIs(t, err, ErrDuplicateRank)

	ghost := &model.Actor{ID: uuid.New(), Name: "x", Type: "x", Rank: 50, Source: "x"}
	ok, err = r.Update(ctx, ghost)
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := r.FindByID(ctx, ghost.ID)
	require.NoError(t, err)
	assert.Nil(t, missing, "update must not insert")
}

func TestDelete(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	seed(t, r, 1)

	a, err := r.FindByRank(ctx, 1)
	require.NoError(t, err)

	deleted, err := r.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, a.ID, deleted.ID)
	assert.Equal(t, a.Name, deleted.Name)

	again, err := r.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestCreateBatch_SkipsConflictingRanks(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	seed(t, r, 2)

	batch := []model.Actor{
		{Name: "New 2", Type: "Main", Rank: 2, Source: "IMDb"},
		{Name: "New 3", Type: "Main", Rank: 3, Source: "IMDb"},
		{Name: "New 4", Type: "Main", Rank: 4, Source: "IMDb"},
	}
	inserted, err := r.CreateBatch(ctx, batch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, inserted)

	kept, err := r.FindByRank(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Actor 02", kept.Name, "existing rank holder is not overwritten")

	count, err := r.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestExistingRanks(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	seed(t, r, 3)

	taken, err := r.ExistingRanks(ctx, []int{2, 3, 4, 5})
	require.NoError(t, err)
	assert.Len(t, taken, 2)
	assert.Contains(t, taken, 2)
	assert.Contains(t, taken, 3)

	empty, err := r.ExistingRanks(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestList_NameFilterIsLiteral(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	for i, name := range []string{"Al Pacino", "Meryl Streep", "100% Pure", "snake_case", `back\slash`} {
		require.NoError(t, r.Create(ctx, &model.Actor{Name: name, Type: "Main", Rank: i + 1, Source: "test"}))
	}

	tests := []struct {
		filter string
		want   []int
	}{
		{filter: "%", want: []int{3}},
		{filter: "_", want: []int{4}},
		{filter: `\`, want: []int{5}},
		{filter: "0% P", want: []int{3}},
		{filter: "Pacino", want: []int{1}},
		{filter: "x%y", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := r.List(ctx, model.ActorQuery{Name: tt.filter})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ranksOf(got))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_x\\`, escapeLike(`100% _x\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
