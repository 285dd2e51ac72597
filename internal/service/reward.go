package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mccajr2/reading-rewards/internal/domain"
)

var ErrNonPositiveAmount = errors.New("amount must be positive")

type LedgerRepository interface {
	Create(ctx context.Context, reward domain.Reward) (domain.Reward, error)
	FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.Reward, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	Summary(ctx context.Context, userID uint) (domain.RewardSummary, error)
}

type RewardService struct {
	repo LedgerRepository
}

func NewRewardService(repo LedgerRepository) *RewardService {
	return &RewardService{
		repo: repo,
	}
}

func (s *RewardService) List(ctx context.Context, userID uint, page, perPage int) ([]domain.Reward, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	rewards, err := s.repo.FindByUserID(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	total, err := s.repo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.CountByUserID -> %w", err)
	}

	return rewards, total, nil
}

func (s *RewardService) Summary(ctx context.Context, userID uint) (domain.RewardSummary, error) {
	summary, err := s.repo.Summary(ctx, userID)
	if err != nil {
		return domain.RewardSummary{}, fmt.Errorf("s.repo.Summary -> %w", err)
	}

	return summary, nil
}

// Spend appends a SPEND entry. Rejecting a non-positive amount is the
// only validation rule the ledger has.
func (s *RewardService) Spend(ctx context.Context, userID uint, amount float64, note string) (domain.Reward, error) {
	return s.append(ctx, domain.RewardSpend, userID, amount, note)
}

// Payout appends a parent-initiated PAYOUT entry for a child.
func (s *RewardService) Payout(ctx context.Context, childID uint, amount float64, note string) (domain.Reward, error) {
	return s.append(ctx, domain.RewardPayout, childID, amount, note)
}

func (s *RewardService) append(ctx context.Context, rewardType domain.RewardType, userID uint, amount float64, note string) (domain.Reward, error) {
	if amount <= 0 {
		return domain.Reward{}, ErrNonPositiveAmount
	}

	created, err := s.repo.Create(ctx, domain.Reward{
		Type:   rewardType,
		UserID: userID,
		Amount: amount,
		Note:   note,
	})
	if err != nil {
		return domain.Reward{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
