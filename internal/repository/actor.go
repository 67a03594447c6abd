package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/user/actorhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 100

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

// List 按条件分页查询，始终按排名升序
func (r *ActorRepository) List(ctx context.Context, q model.ActorQuery) ([]model.Actor, error) {
	q = q.Normalize()
	tx := r.db.WithContext(ctx).Model(&model.Actor{})

	if q.Name != "" {
		tx = tx.Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(q.Name)+"%")
	}
	// 只给出一端的区间直接忽略
	if q.HasRankRange() {
		tx = tx.Where("rank >= ? AND rank <= ?", *q.RankStart, *q.RankEnd)
	}

	actors := []model.Actor{}
	err := tx.Order("rank ASC").
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&actors).Error
	return actors, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，名称过滤按字面包含匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// FindByID 根据 ID 查找，不存在返回 nil
func (r *ActorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Actor, error) {
	var actor model.Actor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&actor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// FindByRank 根据排名查找，不存在返回 nil
func (r *ActorRepository) FindByRank(ctx context.Context, rank int) (*model.Actor, error) {
	var actor model.Actor
	err := r.db.WithContext(ctx).Where("rank = ?", rank).First(&actor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// Create 插入一条记录，排名冲突返回 ErrDuplicateRank
func (r *ActorRepository) Create(ctx context.Context, actor *model.Actor) error {
	return translate(r.db.WithContext(ctx).Create(actor).Error)
}

// Update 更新除 ID 外的全部字段，记录不存在时返回 false
func (r *ActorRepository) Update(ctx context.Context, actor *model.Actor) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(actor).
		Select("name", "details", "type", "rank", "source", "updated_at").
		Updates(actor)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete 删除并返回被删除的记录，不存在返回 nil
func (r *ActorRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Actor, error) {
	var deleted *model.Actor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var actor model.Actor
		err := tx.Where("id = ?", id).First(&actor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.Actor{})
		if res.Error != nil {
			return res.Error
		}
		// 并发删除时可能已被别人删掉
		if res.RowsAffected > 0 {
			deleted = &actor
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// ExistingRanks 返回 ranks 中已被占用的排名
func (r *ActorRepository) ExistingRanks(ctx context.Context, ranks []int) (map[int]struct{}, error) {
	taken := make(map[int]struct{})
	if len(ranks) == 0 {
		return taken, nil
	}

	var found []int
	err := r.db.WithContext(ctx).Model(&model.Actor{}).
		Where("rank IN ?", ranks).
		Pluck("rank", &found).Error
	if err != nil {
		return nil, err
	}
	for _, rank := range found {
		taken[rank] = struct{}{}
	}
	return taken, nil
}

// CreateBatch 批量插入，排名冲突的行直接跳过，返回实际插入条数
func (r *ActorRepository) CreateBatch(ctx context.Context, actors []model.Actor) (int64, error) {
	if len(actors) == 0 {
		return 0, nil
	}

	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rank"}},
			DoNothing: true,
		}).CreateInBatches(&actors, batchSize)
		if res.Error != nil {
			return res.Error
		}
		inserted = res.RowsAffected
		return nil
	})
	return inserted, err
}

// Count 记录总数
func (r *ActorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Actor{}).Count(&count).Error
	return count, err
}
