package repository

import (
	"context"
	"fmt"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository/dao"
)

type RewardDAO interface {
	Insert(ctx context.Context, reward dao.Reward) (dao.Reward, error)
	FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]dao.Reward, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	SumByType(ctx context.Context, userID uint, rewardType string) (float64, error)
}

type RewardRepository struct {
	dao RewardDAO
}

func NewRewardRepository(dao RewardDAO) *RewardRepository {
	return &RewardRepository{
		dao: dao,
	}
}

func (r *RewardRepository) Create(ctx context.Context, reward domain.Reward) (domain.Reward, error) {
	created, err := r.dao.Insert(ctx, dao.Reward{
		Type:          string(reward.Type),
		UserID:        reward.UserID,
		ChapterReadID: reward.ChapterReadID,
		Amount:        reward.Amount,
		Note:          reward.Note,
	})
	if err != nil {
		return domain.Reward{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RewardRepository) FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.Reward, error) {
	found, err := r.dao.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	rewards := make([]domain.Reward, 0, len(found))
	for _, rw := range found {
		rewards = append(rewards, r.daoToDomain(rw))
	}

	return rewards, nil
}

func (r *RewardRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	count, err := r.dao.CountByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByUserID -> %w", err)
	}

	return count, nil
}

// Summary recomputes the balance from the full ledger. Nothing is cached,
// so the ledger stays the single source of truth.
func (r *RewardRepository) Summary(ctx context.Context, userID uint) (domain.RewardSummary, error) {
	earned, err := r.dao.SumByType(ctx, userID, string(domain.RewardEarn))
	if err != nil {
		return domain.RewardSummary{}, fmt.Errorf("r.dao.SumByType -> %w", err)
	}

	paidOut, err := r.dao.SumByType(ctx, userID, string(domain.RewardPayout))
	if err != nil {
		return domain.RewardSummary{}, fmt.Errorf("r.dao.SumByType -> %w", err)
	}

	spent, err := r.dao.SumByType(ctx, userID, string(domain.RewardSpend))
	if err != nil {
		return domain.RewardSummary{}, fmt.Errorf("r.dao.SumByType -> %w", err)
	}

	return domain.RewardSummary{
		TotalEarned:    earned,
		TotalPaidOut:   paidOut,
		TotalSpent:     spent,
		CurrentBalance: earned - paidOut - spent,
	}, nil
}

func (r *RewardRepository) daoToDomain(rw dao.Reward) domain.Reward {
	reward := domain.Reward{
		ID:            rw.ID,
		Type:          domain.RewardType(rw.Type),
		UserID:        rw.UserID,
		ChapterReadID: rw.ChapterReadID,
		Amount:        rw.Amount,
		Note:          rw.Note,
		CreatedAt:     rw.CreatedAt,
	}

	if rw.ChapterRead != nil {
		reward.ChapterRead = &domain.RewardChapterRead{
			ChapterRead: domain.ChapterRead{
				ID:             rw.ChapterRead.ID,
				BookReadID:     rw.ChapterRead.BookReadID,
				ChapterID:      rw.ChapterRead.ChapterID,
				UserID:         rw.ChapterRead.UserID,
				CompletionDate: rw.ChapterRead.CompletionDate,
			},
			ChapterName:  rw.ChapterRead.Chapter.Name,
			ChapterIndex: rw.ChapterRead.Chapter.ChapterIndex,
			BookID:       rw.ChapterRead.BookRead.BookID,
			BookTitle:    rw.ChapterRead.BookRead.Book.Title,
		}
	}

	return reward
}
