package model

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ActorQuery 列表查询条件
type ActorQuery struct {
	Name       string // 名称包含匹配，空串表示不过滤
	RankStart  *int
	RankEnd    *int
	PageNumber int // 从 1 开始
	PageSize   int
}

// HasRankRange 只有起止排名同时给出时才按区间过滤
func (q ActorQuery) HasRankRange() bool {
	return q.RankStart != nil && q.RankEnd != nil
}

// Normalize 填充默认分页参数
func (q ActorQuery) Normalize() ActorQuery {
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset 当前页需要跳过的记录数
func (q ActorQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}
