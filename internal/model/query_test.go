package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorQueryNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         ActorQuery
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{name: "zero value", in: ActorQuery{}, wantPage: 1, wantSize: DefaultPageSize, wantOffset: 0},
		{name: "second page", in: ActorQuery{PageNumber: 2, PageSize: 10}, wantPage: 2, wantSize: 10, wantOffset: 10},
		{name: "size capped", in: ActorQuery{PageNumber: 3, PageSize: 500}, wantPage: 3, wantSize: MaxPageSize, wantOffset: 200},
		{name: "negative page", in: ActorQuery{PageNumber: -1, PageSize: 5}, wantPage: 1, wantSize: 5, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, q.PageNumber)
			assert.Equal(t, tt.wantSize, q.PageSize)
			assert.Equal(t, tt.wantOffset, q.Offset())
		})
	}
}

func TestActorQueryHasRankRange(t *testing.T) {
	one, five := 1, 5
	assert.True(t, ActorQuery{RankStart: &one, RankEnd: &five}.HasRankRange())
	assert.False(t, ActorQuery{RankStart: &one}.HasRankRange())
	assert.False(t, ActorQuery{RankEnd: &five}.HasRankRange())
}
