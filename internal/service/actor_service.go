package service

import (
	"context"
	"errors"
	"fmt"

	"code.cloudfoundry.org/lager/v3"
	"github.com/google/uuid"
	"github.com/user/actorhub/internal/model"
	"github.com/user/actorhub/internal/repository"
)

// ActorStore 演员记录存储
// 查询不到时返回 (nil, nil)；排名唯一约束冲突返回 repository.ErrDuplicateRank
type ActorStore interface {
	List(ctx context.Context, q model.ActorQuery) ([]model.Actor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Actor, error)
	FindByRank(ctx context.Context, rank int) (*model.Actor, error)
	Create(ctx context.Context, actor *model.Actor) error
	Update(ctx context.Context, actor *model.Actor) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Actor, error)
}

// ActorInput 创建或更新演员时的可写字段（已通过校验）
type ActorInput struct {
	Name    string
	Details string
	Type    string
	Rank    int
	Source  string
}

func (in ActorInput) applyTo(a *model.Actor) {
	a.Name = in.Name
	a.Details = in.Details
	a.Type = in.Type
	a.Rank = in.Rank
	a.Source = in.Source
}

// ActorService 演员的增删改查，负责维护排名唯一
type ActorService struct {
	store  ActorStore
	logger lager.Logger
}

// NewActorService 创建演员服务
func NewActorService(store ActorStore, logger lager.Logger) *ActorService {
	return &ActorService{store: store, logger: logger.Session("actor-service")}
}

// List 分页查询，按排名升序
func (s *ActorService) List(ctx context.Context, q model.ActorQuery) ([]model.Actor, error) {
	actors, err := s.store.List(ctx, q.Normalize())
	if err != nil {
		return nil, fmt.Errorf("查询演员列表失败: %w", err)
	}
	return actors, nil
}

// GetByID 获取单个演员
func (s *ActorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Actor, error) {
	actor, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询演员失败: %w", err)
	}
	if actor == nil {
		return nil, &model.NotFoundError{ID: id}
	}
	return actor, nil
}

// Create 创建演员，排名已被占用时返回 *model.ConflictError 且不写入
func (s *ActorService) Create(ctx context.Context, in ActorInput) (*model.Actor, error) {
	logger := s.logger.Session("create", lager.Data{"rank": in.Rank})

	holder, err := s.store.FindByRank(ctx, in.Rank)
	if err != nil {
		return nil, fmt.Errorf("查询排名失败: %w", err)
	}
	if holder != nil {
		logger.Info("rank-taken", lager.Data{"holder": holder.ID})
		return nil, &model.ConflictError{Rank: in.Rank}
	}

	actor := &model.Actor{}
	in.applyTo(actor)

	// 检查和写入之间可能被并发请求抢先，由唯一索引兜底
	if err := s.store.Create(ctx, actor); err != nil {
		if errors.Is(err, repository.ErrDuplicateRank) {
			logger.Info("rank-taken-concurrently")
			return nil, &model.ConflictError{Rank: in.Rank}
		}
		return nil, fmt.Errorf("创建演员失败: %w", err)
	}

	logger.Info("created", lager.Data{"id": actor.ID})
	return actor, nil
}

// Update 整体替换演员的可写字段
// 目标不存在返回 *model.NotFoundError，排名被其他演员占用返回 *model.ConflictError
func (s *ActorService) Update(ctx context.Context, id uuid.UUID, in ActorInput) (*model.Actor, error) {
	logger := s.logger.Session("update", lager.Data{"id": id, "rank": in.Rank})

	actor, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询演员失败: %w", err)
	}
	if actor == nil {
		return nil, &model.NotFoundError{ID: id}
	}

	// 保持自己的排名不算冲突
	holder, err := s.store.FindByRank(ctx, in.Rank)
	if err != nil {
		return nil, fmt.Errorf("查询排名失败: %w", err)
	}
	if holder != nil && holder.ID != id {
		logger.Info("rank-taken", lager.Data{"holder": holder.ID})
		return nil, &model.ConflictError{Rank: in.Rank}
	}

	in.applyTo(actor)
	updated, err := s.store.Update(ctx, actor)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRank) {
			logger.Info("rank-taken-concurrently")
			return nil, &model.ConflictError{Rank: in.Rank}
		}
		return nil, fmt.Errorf("更新演员失败: %w", err)
	}
	if !updated {
		// 查询之后被删除
		return nil, &model.NotFoundError{ID: id}
	}

	logger.Info("updated")
	return actor, nil
}

// Delete 删除演员并返回被删除的记录
func (s *ActorService) Delete(ctx context.Context, id uuid.UUID) (*model.Actor, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("删除演员失败: %w", err)
	}
	if deleted == nil {
		return nil, &model.NotFoundError{ID: id}
	}

	s.logger.Info("deleted", lager.Data{"id": id, "rank": deleted.Rank})
	return deleted, nil
}
